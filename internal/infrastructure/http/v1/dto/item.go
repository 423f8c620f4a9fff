package dto

import (
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/apperror"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/id"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/types"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/catalogs/item"
)

// PriceRequest is one price history row. POST without id inserts a new row;
// with id it updates the existing one.
type PriceRequest struct {
	ID             *string     `json:"id"`
	ItemID         string      `json:"itemId"`
	PerItemCost    types.Money `json:"perItemCost"`
	SellingPrice   types.Money `json:"sellingPrice"`
	MarketPrice    types.Money `json:"marketPrice"`
	WholesalePrice types.Money `json:"wholesalePrice"`
	RetailPrice    types.Money `json:"retailPrice"`
	Username       string      `json:"username"`
	Other          string      `json:"other"`
}

// ToRow converts the request to a price row. The row id stays nil when the
// request carries none; the save path treats a nil id as an insert.
func (r PriceRequest) ToRow() (*item.PriceRow, error) {
	itemID, err := id.Parse(r.ItemID)
	if err != nil {
		return nil, apperror.NewValidation("invalid itemId format").
			WithDetail("field", "itemId")
	}

	row := &item.PriceRow{ItemID: itemID}
	if r.ID != nil && *r.ID != "" {
		rowID, err := id.Parse(*r.ID)
		if err != nil {
			return nil, apperror.NewValidation("invalid id format").
				WithDetail("field", "id")
		}
		row.ID = rowID
	}

	r.fill(row)
	return row, nil
}

// InlineRow builds a price row for the item create path; the item id is
// assigned inside the item transaction.
func (r PriceRequest) InlineRow() *item.PriceRow {
	row := &item.PriceRow{}
	r.fill(row)
	return row
}

func (r PriceRequest) fill(row *item.PriceRow) {
	row.PerItemCost = r.PerItemCost
	row.SellingPrice = r.SellingPrice
	row.MarketPrice = r.MarketPrice
	row.WholesalePrice = r.WholesalePrice
	row.RetailPrice = r.RetailPrice
	row.Username = r.Username
	row.Other = r.Other
}

// HasID reports whether the request targets an existing row.
func (r PriceRequest) HasID() bool {
	return r.ID != nil && *r.ID != ""
}

// CreateItemRequest for POST /api/products/item. An inline price row, when
// present, is written in the same transaction as the item.
type CreateItemRequest struct {
	Barcode     string         `json:"barcode"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Qty         types.Quantity `json:"qty"`
	QtyType     string         `json:"qtyType"`
	TotalCost   types.Money    `json:"totalCost"`
	Warranty    string         `json:"warranty"`
	Other       string         `json:"other"`
	Price       *PriceRequest  `json:"price"`
}

// ToEntity converts the request to a new item.
func (r CreateItemRequest) ToEntity() *item.Item {
	it := item.New(r.Barcode, r.Name)
	it.Description = r.Description
	it.Category = r.Category
	it.Qty = r.Qty
	it.QtyType = r.QtyType
	it.TotalCost = r.TotalCost
	it.Warranty = r.Warranty
	it.Other = r.Other
	return it
}

// UpdateItemRequest for PUT /api/products/item. Absent fields stay untouched;
// qty is adjusted only through invoice and GRN writes, never here.
type UpdateItemRequest struct {
	ID          string  `json:"id"`
	Barcode     *string `json:"barcode"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	QtyType     *string `json:"qtyType"`
	Warranty    *string `json:"warranty"`
	Other       *string `json:"other"`
}

// ApplyTo patches an existing item with the supplied fields.
func (r UpdateItemRequest) ApplyTo(it *item.Item) {
	if r.Barcode != nil {
		it.Barcode = *r.Barcode
		it.Code = *r.Barcode
	}
	if r.Name != nil {
		it.Name = *r.Name
	}
	if r.Description != nil {
		it.Description = *r.Description
	}
	if r.Category != nil {
		it.Category = *r.Category
	}
	if r.QtyType != nil {
		it.QtyType = *r.QtyType
	}
	if r.Warranty != nil {
		it.Warranty = *r.Warranty
	}
	if r.Other != nil {
		it.Other = *r.Other
	}
}
