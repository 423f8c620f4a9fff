package item

import (
	"context"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/id"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/types"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain"
)

// Repository defines the interface for Item persistence.
type Repository interface {
	domain.CatalogRepository[*Item]

	// FindByBarcode retrieves an item by barcode.
	FindByBarcode(ctx context.Context, barcode string) (*Item, error)

	// AdjustQty applies a signed stock delta. Negative deltas are
	// floor-clamped at zero in SQL; must run inside the caller's transaction.
	AdjustQty(ctx context.Context, itemID id.ID, delta types.Quantity) error
}

// PriceRepository persists item price history.
type PriceRepository interface {
	// Insert appends a price row.
	Insert(ctx context.Context, row *PriceRow) error

	// Update rewrites an existing price row.
	Update(ctx context.Context, row *PriceRow) error

	// Delete removes a price row.
	Delete(ctx context.Context, rowID id.ID) error

	// GetByID retrieves one price row.
	GetByID(ctx context.Context, rowID id.ID) (*PriceRow, error)

	// ListByItem returns price history, newest first.
	ListByItem(ctx context.Context, itemID id.ID) ([]PriceRow, error)

	// Current returns the newest price row for an item.
	Current(ctx context.Context, itemID id.ID) (*PriceRow, error)
}
