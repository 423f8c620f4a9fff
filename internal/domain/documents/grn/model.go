// Package grn implements goods-received-note documents. A GRN records stock
// received from a supplier; each line increments item stock on creation, and
// line edits reconcile stock and header cost incrementally rather than by
// delete-and-reinsert.
package grn

import (
	"context"
	"errors"
	"time"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/id"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/types"
)

// GRN is the document header. Cost is computed from lines; Total is
// cost minus discount.
type GRN struct {
	ID            id.ID       `db:"id"`
	GrnNumber     string      `db:"grn_number"`
	InvoiceNumber string      `db:"invoice_number"`
	Date          time.Time   `db:"date"`
	DueDate       *time.Time  `db:"due_date"`
	PoNumber      string      `db:"po_number"`
	SupplierID    *id.ID      `db:"supplier_id"`
	Cost          types.Money `db:"cost"`
	Discount      types.Money `db:"discount"`
	Total         types.Money `db:"total"`
	CreatedAt     time.Time   `db:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at"`
}

// Validate implements entity.Validatable.
func (g *GRN) Validate(_ context.Context) error {
	if g.GrnNumber == "" {
		return errors.New("grn number is required")
	}
	if g.Discount.IsNegative() {
		return errors.New("discount must not be negative")
	}
	return nil
}

// Recompute derives Cost from the lines and Total from cost and discount.
func (g *GRN) Recompute(lines []*Line) {
	cost := types.Zero()
	for _, line := range lines {
		cost = cost.Add(line.Qty.Mul(line.Cost))
	}
	g.Cost = cost
	g.Total = cost.Sub(g.Discount)
}

// Line is one received-stock row. Unlike invoice lines the item link is
// mandatory, a GRN line without an item moves nothing.
type Line struct {
	ID     id.ID          `db:"id"`
	GrnID  id.ID          `db:"grn_id"`
	ItemID id.ID          `db:"item_id"`
	Qty    types.Quantity `db:"qty"`
	Cost   types.Money    `db:"cost"`
}

// Validate checks a single line.
func (l *Line) Validate() error {
	if id.IsNil(l.ItemID) {
		return errors.New("line item is required")
	}
	if !l.Qty.IsPositive() {
		return errors.New("line qty must be positive")
	}
	if l.Cost.IsNegative() {
		return errors.New("line cost must not be negative")
	}
	return nil
}

// HeaderUpdate is the closed set of header fields a caller may change after
// creation. Only non-nil fields are applied; there is no dynamic column
// routing.
type HeaderUpdate struct {
	InvoiceNumber *string
	DueDate       *time.Time
	PoNumber      *string
	Discount      *types.Money
}
