package customer

import (
	"context"

	"github.com/JHRsoftware/jp-stores-sub001/internal/domain"
)

// Repository defines the interface for Customer persistence.
type Repository interface {
	domain.CatalogRepository[*Customer]

	// FindByNameOrCode retrieves a customer whose name or code equals the
	// given value (case-sensitive exact match, invoice resolver contract).
	FindByNameOrCode(ctx context.Context, value string) (*Customer, error)
}
