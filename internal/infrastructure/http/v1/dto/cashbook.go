package dto

import (
	"time"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/types"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/cashbook"
)

// CashbookEntryRequest for POST /api/cashbook. Amounts are signed;
// withdrawals are negative.
type CashbookEntryRequest struct {
	Date   *time.Time  `json:"date"`
	Remark string      `json:"remark"`
	Other  string      `json:"other"`
	Cash   types.Money `json:"cash"`
	Bank   types.Money `json:"bank"`
	User   string      `json:"user"`
}

// ToInput converts the request to the domain shape.
func (r CashbookEntryRequest) ToInput() cashbook.AddInput {
	return cashbook.AddInput{
		Date:     r.Date,
		Remark:   r.Remark,
		Other:    r.Other,
		Cash:     r.Cash,
		Bank:     r.Bank,
		UserName: r.User,
	}
}

// CashbookEntryResponse is one stored ledger row.
type CashbookEntryResponse struct {
	ID     string      `json:"id"`
	Date   time.Time   `json:"date"`
	Remark string      `json:"remark,omitempty"`
	Other  string      `json:"other,omitempty"`
	Cash   types.Money `json:"cash"`
	Bank   types.Money `json:"bank"`
	User   string      `json:"user,omitempty"`
}

// FromCashbookEntry maps a ledger row to its API shape.
func FromCashbookEntry(e *cashbook.Entry) CashbookEntryResponse {
	return CashbookEntryResponse{
		ID:     e.ID.String(),
		Date:   e.Date,
		Remark: e.Remark,
		Other:  e.Other,
		Cash:   e.Cash,
		Bank:   e.Bank,
		User:   e.UserName,
	}
}

// CashbookTotals is the ledger-wide running balance.
type CashbookTotals struct {
	Cash types.Money `json:"cash"`
	Bank types.Money `json:"bank"`
}

// CashbookListResponse for GET /api/cashbook.
type CashbookListResponse struct {
	Success bool                    `json:"success"`
	Data    []CashbookEntryResponse `json:"data"`
	Totals  CashbookTotals          `json:"totals"`
}

// FromCashbook maps entries and totals to the list envelope.
func FromCashbook(entries []*cashbook.Entry, totals cashbook.Totals) CashbookListResponse {
	data := make([]CashbookEntryResponse, len(entries))
	for i, e := range entries {
		data[i] = FromCashbookEntry(e)
	}
	return CashbookListResponse{
		Success: true,
		Data:    data,
		Totals:  CashbookTotals{Cash: totals.Cash, Bank: totals.Bank},
	}
}
