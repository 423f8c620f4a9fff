package dto

import (
	"time"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/apperror"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/id"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/types"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/documents/invoice"
)

// InvoiceLineRequest is one sale line as the POS client sends it.
// Price fields keep their legacy snake_case names on the wire.
type InvoiceLineRequest struct {
	ItemID       *string        `json:"itemId"`
	Qty          types.Quantity `json:"qty"`
	Warranty     string         `json:"warranty"`
	Cost         types.Money    `json:"cost"`
	MarketPrice  types.Money    `json:"market_price"`
	SellingPrice types.Money    `json:"selling_price"`
	Discount     *types.Money   `json:"discount"`
	Total        *types.Money   `json:"total"`
	Other        string         `json:"other"`
}

// ToInput converts the wire line to the domain shape.
func (r InvoiceLineRequest) ToInput() (invoice.LineInput, error) {
	in := invoice.LineInput{
		Qty:          r.Qty,
		Warranty:     r.Warranty,
		Cost:         r.Cost,
		MarketPrice:  r.MarketPrice,
		SellingPrice: r.SellingPrice,
		Discount:     r.Discount,
		Total:        r.Total,
		Other:        r.Other,
	}
	itemID, err := parseOptionalID(r.ItemID, "itemId")
	if err != nil {
		return in, err
	}
	in.ItemID = itemID
	return in, nil
}

// CreateInvoiceRequest for POST /api/invoice and POST /api/invoice/hold.
type CreateInvoiceRequest struct {
	InvoiceNumber string               `json:"invoiceNumber"`
	Date          *time.Time           `json:"date"`
	CustomerID    *string              `json:"customerId"`
	CustomerName  string               `json:"customerName"`
	NetTotal      types.Money          `json:"netTotal"`
	TotalDiscount types.Money          `json:"totalDiscount"`
	TotalCost     types.Money          `json:"totalCost"`
	TotalProfit   types.Money          `json:"totalProfit"`
	CashPayment   types.Money          `json:"cashPayment"`
	CardPayment   types.Money          `json:"cardPayment"`
	CardInfo      string               `json:"cardInfo"`
	UserName      string               `json:"userName"`
	Items         []InvoiceLineRequest `json:"items"`
}

// ToInput converts the request to the domain create shape.
func (r CreateInvoiceRequest) ToInput() (invoice.CreateInput, error) {
	header, err := r.toHeader()
	if err != nil {
		return invoice.CreateInput{}, err
	}
	lines, err := toLineInputs(r.Items)
	if err != nil {
		return invoice.CreateInput{}, err
	}
	return invoice.CreateInput{Header: header, Lines: lines}, nil
}

func (r CreateInvoiceRequest) toHeader() (invoice.HeaderInput, error) {
	header := invoice.HeaderInput{
		InvoiceNumber: r.InvoiceNumber,
		DateTime:      r.Date,
		CustomerName:  r.CustomerName,
		NetTotal:      r.NetTotal,
		TotalDiscount: r.TotalDiscount,
		TotalCost:     r.TotalCost,
		TotalProfit:   r.TotalProfit,
		CashPayment:   r.CashPayment,
		CardPayment:   r.CardPayment,
		CardInfo:      r.CardInfo,
		UserName:      r.UserName,
	}
	customerID, err := parseOptionalID(r.CustomerID, "customerId")
	if err != nil {
		return header, err
	}
	header.CustomerID = customerID
	return header, nil
}

// UpdateInvoiceRequest for POST /api/invoice/update.
type UpdateInvoiceRequest struct {
	InvoiceID string `json:"invoiceId"`
	CreateInvoiceRequest
}

// ToInput converts the request to the domain update shape.
func (r UpdateInvoiceRequest) ToInput() (invoice.UpdateInput, error) {
	invoiceID, err := id.Parse(r.InvoiceID)
	if err != nil {
		return invoice.UpdateInput{}, apperror.NewValidation("invalid invoiceId format").
			WithDetail("field", "invoiceId")
	}
	header, err := r.toHeader()
	if err != nil {
		return invoice.UpdateInput{}, err
	}
	lines, err := toLineInputs(r.Items)
	if err != nil {
		return invoice.UpdateInput{}, err
	}
	return invoice.UpdateInput{InvoiceID: invoiceID, Header: header, Lines: lines}, nil
}

// ConvertHoldRequest for POST /api/invoice/hold/convert. Empty optional
// fields fall back to the values stored on the hold.
type ConvertHoldRequest struct {
	HoldID        string `json:"holdId"`
	InvoiceNumber string `json:"invoiceNumber"`
	CustomerName  string `json:"customerName"`
	UserName      string `json:"userName"`
}

// ToInput converts the request to the domain convert shape.
func (r ConvertHoldRequest) ToInput() (invoice.ConvertInput, error) {
	holdID, err := id.Parse(r.HoldID)
	if err != nil {
		return invoice.ConvertInput{}, apperror.NewValidation("invalid holdId format").
			WithDetail("field", "holdId")
	}
	return invoice.ConvertInput{
		HoldID:        holdID,
		InvoiceNumber: r.InvoiceNumber,
		CustomerName:  r.CustomerName,
		UserName:      r.UserName,
	}, nil
}

// ConvertHoldResponse for POST /api/invoice/hold/convert.
type ConvertHoldResponse struct {
	Success   bool   `json:"success"`
	InvoiceID string `json:"invoiceId"`
}

// InvoiceResponse is the stored header.
type InvoiceResponse struct {
	ID            string      `json:"id"`
	InvoiceNumber string      `json:"invoiceNumber"`
	Date          time.Time   `json:"date"`
	CustomerID    *string     `json:"customerId,omitempty"`
	CustomerName  string      `json:"customerName,omitempty"`
	NetTotal      types.Money `json:"netTotal"`
	TotalDiscount types.Money `json:"totalDiscount"`
	TotalCost     types.Money `json:"totalCost"`
	TotalProfit   types.Money `json:"totalProfit"`
	CashPayment   types.Money `json:"cashPayment"`
	CardPayment   types.Money `json:"cardPayment"`
	CardInfo      string      `json:"cardInfo,omitempty"`
	UserName      string      `json:"userName"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// FromInvoice maps a stored header to its API shape.
func FromInvoice(inv *invoice.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            inv.ID.String(),
		InvoiceNumber: inv.InvoiceNumber,
		Date:          inv.DateTime,
		CustomerID:    idToString(inv.CustomerID),
		CustomerName:  inv.CustomerName,
		NetTotal:      inv.NetTotal,
		TotalDiscount: inv.TotalDiscount,
		TotalCost:     inv.TotalCost,
		TotalProfit:   inv.TotalProfit,
		CashPayment:   inv.CashPayment,
		CardPayment:   inv.CardPayment,
		CardInfo:      inv.CardInfo,
		UserName:      inv.UserName,
		Status:        string(inv.Status),
		CreatedAt:     inv.CreatedAt,
	}
}

// FromInvoices maps a header list.
func FromInvoices(invs []*invoice.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, len(invs))
	for i, inv := range invs {
		out[i] = FromInvoice(inv)
	}
	return out
}

// InvoiceLineResponse is one stored line.
type InvoiceLineResponse struct {
	ID           string         `json:"id"`
	ItemID       *string        `json:"itemId,omitempty"`
	Qty          types.Quantity `json:"qty"`
	Warranty     string         `json:"warranty,omitempty"`
	Cost         types.Money    `json:"cost"`
	MarketPrice  types.Money    `json:"market_price"`
	SellingPrice types.Money    `json:"selling_price"`
	Discount     types.Money    `json:"discount"`
	TotalValue   *types.Money   `json:"total,omitempty"`
	Other        string         `json:"other,omitempty"`
}

// InvoiceDetailResponse is the header with its full line set.
type InvoiceDetailResponse struct {
	InvoiceResponse
	Items []InvoiceLineResponse `json:"items"`
}

// FromInvoiceDetail maps a header and its lines.
func FromInvoiceDetail(inv *invoice.Invoice, lines []*invoice.Line) InvoiceDetailResponse {
	items := make([]InvoiceLineResponse, len(lines))
	for i, line := range lines {
		items[i] = InvoiceLineResponse{
			ID:           line.ID.String(),
			ItemID:       idToString(line.ItemID),
			Qty:          line.Qty,
			Warranty:     line.Warranty,
			Cost:         line.Cost,
			MarketPrice:  line.MarketPrice,
			SellingPrice: line.SellingPrice,
			Discount:     line.Discount,
			TotalValue:   line.TotalValue,
			Other:        line.Other,
		}
	}
	return InvoiceDetailResponse{
		InvoiceResponse: FromInvoice(inv),
		Items:           items,
	}
}

// StatsRequest for POST /api/invoice/stats.
type StatsRequest struct {
	FilterType string `json:"filterType"`
}

func toLineInputs(items []InvoiceLineRequest) ([]invoice.LineInput, error) {
	lines := make([]invoice.LineInput, len(items))
	for i, item := range items {
		in, err := item.ToInput()
		if err != nil {
			return nil, err
		}
		lines[i] = in
	}
	return lines, nil
}

func parseOptionalID(s *string, field string) (*id.ID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	parsed, err := id.Parse(*s)
	if err != nil {
		return nil, apperror.NewValidation("invalid "+field+" format").
			WithDetail("field", field)
	}
	return &parsed, nil
}

func idToString(v *id.ID) *string {
	if v == nil {
		return nil
	}
	s := v.String()
	return &s
}
