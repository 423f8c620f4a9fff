package dto

import (
	"time"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/apperror"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/id"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/types"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/documents/grn"
)

// GrnLineRequest is one received line.
type GrnLineRequest struct {
	ItemID string         `json:"itemId"`
	Qty    types.Quantity `json:"qty"`
	Cost   types.Money    `json:"cost"`
}

// CreateGrnRequest for POST /api/grn.
type CreateGrnRequest struct {
	InvoiceNumber string           `json:"invoiceNumber"`
	Date          *time.Time       `json:"date"`
	DueDate       *time.Time       `json:"dueDate"`
	PoNumber      string           `json:"poNumber"`
	SupplierID    *string          `json:"supplierId"`
	Discount      types.Money      `json:"discount"`
	Items         []GrnLineRequest `json:"items"`
}

// ToInput converts the request to the domain create shape.
func (r CreateGrnRequest) ToInput() (grn.CreateInput, error) {
	in := grn.CreateInput{
		InvoiceNumber: r.InvoiceNumber,
		Date:          r.Date,
		DueDate:       r.DueDate,
		PoNumber:      r.PoNumber,
		Discount:      r.Discount,
	}

	supplierID, err := parseOptionalID(r.SupplierID, "supplierId")
	if err != nil {
		return in, err
	}
	in.SupplierID = supplierID

	in.Lines = make([]grn.LineInput, len(r.Items))
	for i, item := range r.Items {
		itemID, err := id.Parse(item.ItemID)
		if err != nil {
			return in, apperror.NewValidation("invalid itemId format").
				WithDetail("line", i)
		}
		in.Lines[i] = grn.LineInput{ItemID: itemID, Qty: item.Qty, Cost: item.Cost}
	}
	return in, nil
}

// UpdateGrnLineRequest for PUT /api/grn/line.
type UpdateGrnLineRequest struct {
	LineID string         `json:"lineId"`
	Qty    types.Quantity `json:"qty"`
	Cost   types.Money    `json:"cost"`
}

// ToInput converts the request to the domain line-update shape.
func (r UpdateGrnLineRequest) ToInput() (grn.UpdateLineInput, error) {
	lineID, err := id.Parse(r.LineID)
	if err != nil {
		return grn.UpdateLineInput{}, apperror.NewValidation("invalid lineId format").
			WithDetail("field", "lineId")
	}
	return grn.UpdateLineInput{LineID: lineID, Qty: r.Qty, Cost: r.Cost}, nil
}

// UpdateGrnHeaderRequest for PUT /api/grn/:id. Only the closed set of
// editable header fields is accepted; absent fields stay untouched.
type UpdateGrnHeaderRequest struct {
	InvoiceNumber *string      `json:"invoiceNumber"`
	DueDate       *time.Time   `json:"dueDate"`
	PoNumber      *string      `json:"poNumber"`
	Discount      *types.Money `json:"discount"`
}

// ToUpdate converts the request to the domain header-update shape.
func (r UpdateGrnHeaderRequest) ToUpdate() grn.HeaderUpdate {
	return grn.HeaderUpdate{
		InvoiceNumber: r.InvoiceNumber,
		DueDate:       r.DueDate,
		PoNumber:      r.PoNumber,
		Discount:      r.Discount,
	}
}

// GrnResponse is the stored header.
type GrnResponse struct {
	ID            string      `json:"id"`
	GrnNumber     string      `json:"grnNumber"`
	InvoiceNumber string      `json:"invoiceNumber,omitempty"`
	Date          time.Time   `json:"date"`
	DueDate       *time.Time  `json:"dueDate,omitempty"`
	PoNumber      string      `json:"poNumber,omitempty"`
	SupplierID    *string     `json:"supplierId,omitempty"`
	Cost          types.Money `json:"cost"`
	Discount      types.Money `json:"discount"`
	Total         types.Money `json:"total"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// FromGrn maps a stored header to its API shape.
func FromGrn(g *grn.GRN) GrnResponse {
	return GrnResponse{
		ID:            g.ID.String(),
		GrnNumber:     g.GrnNumber,
		InvoiceNumber: g.InvoiceNumber,
		Date:          g.Date,
		DueDate:       g.DueDate,
		PoNumber:      g.PoNumber,
		SupplierID:    idToString(g.SupplierID),
		Cost:          g.Cost,
		Discount:      g.Discount,
		Total:         g.Total,
		CreatedAt:     g.CreatedAt,
	}
}

// FromGrns maps a header list.
func FromGrns(gs []*grn.GRN) []GrnResponse {
	out := make([]GrnResponse, len(gs))
	for i, g := range gs {
		out[i] = FromGrn(g)
	}
	return out
}

// GrnLineResponse is one stored line.
type GrnLineResponse struct {
	ID     string         `json:"id"`
	ItemID string         `json:"itemId"`
	Qty    types.Quantity `json:"qty"`
	Cost   types.Money    `json:"cost"`
}

// GrnDetailResponse is the header with its lines.
type GrnDetailResponse struct {
	GrnResponse
	Items []GrnLineResponse `json:"items"`
}

// FromGrnDetail maps a header and its lines.
func FromGrnDetail(g *grn.GRN, lines []*grn.Line) GrnDetailResponse {
	items := make([]GrnLineResponse, len(lines))
	for i, line := range lines {
		items[i] = GrnLineResponse{
			ID:     line.ID.String(),
			ItemID: line.ItemID.String(),
			Qty:    line.Qty,
			Cost:   line.Cost,
		}
	}
	return GrnDetailResponse{
		GrnResponse: FromGrn(g),
		Items:       items,
	}
}
