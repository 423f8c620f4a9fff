// Package item provides the item catalog and its price history.
// items.qty is the only stock state in the system; invoice and GRN writes
// adjust it inside their own transactions.
package item

import (
	"context"
	"time"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/apperror"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/entity"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/id"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/types"
)

// Item represents a stocked product.
type Item struct {
	entity.Catalog

	// Barcode is the scannable identifier (unique)
	Barcode string `db:"barcode" json:"barcode"`

	// Description is free text shown on product pages
	Description string `db:"description" json:"description,omitempty"`

	// Category groups items for filtering
	Category string `db:"category" json:"category,omitempty"`

	// Qty is current stock on hand; clamped at zero on decrement
	Qty types.Quantity `db:"qty" json:"qty"`

	// QtyType is the unit label ("pcs", "kg", ...)
	QtyType string `db:"qty_type" json:"qtyType,omitempty"`

	// TotalCost is the accumulated purchase cost of stock on hand
	TotalCost types.Money `db:"total_cost" json:"totalCost"`

	// Warranty is the default warranty note carried onto invoice lines
	Warranty string `db:"warranty" json:"warranty,omitempty"`

	// Other is free text
	Other string `db:"other" json:"other,omitempty"`
}

// New creates a new Item.
func New(barcode, name string) *Item {
	it := &Item{
		Catalog: entity.NewCatalog(barcode, name),
		Barcode: barcode,
	}
	return it
}

// Validate implements entity.Validatable.
func (i *Item) Validate(ctx context.Context) error {
	if err := i.Catalog.Validate(ctx); err != nil {
		return err
	}

	if i.Barcode == "" {
		return apperror.NewValidation("barcode is required").
			WithDetail("field", "barcode")
	}

	if i.Qty.IsNegative() {
		return apperror.NewValidation("qty must not be negative").
			WithDetail("field", "qty")
	}

	return nil
}

// PriceRow is one entry in an item's price history.
// The newest row by created_at is the current price.
type PriceRow struct {
	ID        id.ID `db:"id" json:"id"`
	ItemID    id.ID `db:"item_id" json:"itemId"`

	PerItemCost    types.Money `db:"per_item_cost" json:"perItemCost"`
	SellingPrice   types.Money `db:"selling_price" json:"sellingPrice"`
	MarketPrice    types.Money `db:"market_price" json:"marketPrice"`
	WholesalePrice types.Money `db:"wholesale_price" json:"wholesalePrice"`
	RetailPrice    types.Money `db:"retail_price" json:"retailPrice"`

	// Username records who entered the price
	Username string `db:"username" json:"username,omitempty"`

	Other string `db:"other" json:"other,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewPriceRow creates a price history entry for an item.
func NewPriceRow(itemID id.ID) *PriceRow {
	return &PriceRow{
		ID:        id.New(),
		ItemID:    itemID,
		CreatedAt: time.Now().UTC(),
	}
}

// Validate checks price row invariants.
func (p *PriceRow) Validate(ctx context.Context) error {
	if id.IsNil(p.ItemID) {
		return apperror.NewValidation("item is required").
			WithDetail("field", "itemId")
	}
	if p.SellingPrice.IsNegative() || p.MarketPrice.IsNegative() {
		return apperror.NewValidation("prices must not be negative")
	}
	return nil
}
