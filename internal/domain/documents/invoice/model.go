// Package invoice implements the invoice document workflows: create, update,
// hold staging and hold-to-invoice conversion. Stock moves in lockstep with
// line writes inside one transaction.
package invoice

import (
	"context"
	"errors"
	"time"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/id"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/types"
)

// Status of an invoice document. A hold is a saved-but-not-finalized invoice
// staged for later completion or discard.
type Status string

const (
	StatusHold      Status = "hold"
	StatusCompleted Status = "completed"
)

// Invoice is the document header. CustomerID is nullable: the customer
// resolver degrades silently, an invoice may carry no customer link.
type Invoice struct {
	ID            id.ID       `db:"id"`
	InvoiceNumber string      `db:"invoice_number"`
	DateTime      time.Time   `db:"date_time"`
	CustomerID    *id.ID      `db:"customer_id"`
	CustomerName  string      `db:"customer_name"`
	NetTotal      types.Money `db:"net_total"`
	TotalDiscount types.Money `db:"total_discount"`
	TotalCost     types.Money `db:"total_cost"`
	TotalProfit   types.Money `db:"total_profit"`
	CashPayment   types.Money `db:"cash_payment"`
	CardPayment   types.Money `db:"card_payment"`
	CardInfo      string      `db:"card_info"`
	UserName      string      `db:"user_name"`
	Status        Status      `db:"status"`
	CreatedAt     time.Time   `db:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at"`
}

// Validate implements entity.Validatable.
func (inv *Invoice) Validate(_ context.Context) error {
	if inv.InvoiceNumber == "" {
		return errors.New("invoice number is required")
	}
	if inv.Status != StatusHold && inv.Status != StatusCompleted {
		return errors.New("status must be 'hold' or 'completed'")
	}
	return nil
}

// IsHold reports whether the document is still a staged hold.
func (inv *Invoice) IsHold() bool {
	return inv.Status == StatusHold
}

// Line is one product row within an invoice or hold. ItemID is nullable:
// free-form lines carry no stock link and never move stock.
type Line struct {
	ID           id.ID          `db:"id"`
	InvoiceID    id.ID          `db:"invoice_id"`
	ItemID       *id.ID         `db:"item_id"`
	Qty          types.Quantity `db:"qty"`
	Warranty     string         `db:"warranty"`
	Cost         types.Money    `db:"cost"`
	MarketPrice  types.Money    `db:"market_price"`
	SellingPrice types.Money    `db:"selling_price"`
	Discount     types.Money    `db:"discount"`
	TotalValue   *types.Money   `db:"total_value"`
	Other        string         `db:"other"`
}

// LineInput is the caller-supplied shape of one line. Discount and Total are
// optional; absent values are derived, see BuildLine.
type LineInput struct {
	ItemID       *id.ID
	Qty          types.Quantity
	Warranty     string
	Cost         types.Money
	MarketPrice  types.Money
	SellingPrice types.Money
	Discount     *types.Money
	Total        *types.Money
	Other        string
}

// BuildLine materializes a stored line from caller input.
//
// Discount priority: explicit value, else market_price - selling_price,
// else zero. TotalValue priority: explicit value, else qty x market_price,
// else qty x selling_price, else NULL. The fallback order is preserved
// exactly from the legacy system and is pending product-owner confirmation.
func BuildLine(invoiceID id.ID, in LineInput) *Line {
	line := &Line{
		ID:           id.New(),
		InvoiceID:    invoiceID,
		ItemID:       in.ItemID,
		Qty:          in.Qty,
		Warranty:     in.Warranty,
		Cost:         in.Cost,
		MarketPrice:  in.MarketPrice,
		SellingPrice: in.SellingPrice,
		Other:        in.Other,
	}

	switch {
	case in.Discount != nil:
		line.Discount = *in.Discount
	case !in.MarketPrice.IsZero() || !in.SellingPrice.IsZero():
		line.Discount = in.MarketPrice.Sub(in.SellingPrice)
	default:
		line.Discount = types.Zero()
	}

	switch {
	case in.Total != nil:
		line.TotalValue = in.Total
	case !in.MarketPrice.IsZero():
		v := in.Qty.Mul(in.MarketPrice)
		line.TotalValue = &v
	case !in.SellingPrice.IsZero():
		v := in.Qty.Mul(in.SellingPrice)
		line.TotalValue = &v
	}

	return line
}
