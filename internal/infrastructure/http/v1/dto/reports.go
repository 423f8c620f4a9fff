package dto

import (
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/types"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/reports"
)

// StatsRowResponse keeps the legacy snake_case wire names.
type StatsRowResponse struct {
	Period      string      `json:"period"`
	TotalSales  types.Money `json:"total_sales"`
	TotalProfit types.Money `json:"total_profit"`
}

// StatsResponse for POST /api/invoice/stats.
type StatsResponse struct {
	Success bool               `json:"success"`
	Data    []StatsRowResponse `json:"data"`
}

// FromStats maps aggregated rows to the stats envelope.
func FromStats(rows []reports.StatsRow) StatsResponse {
	data := make([]StatsRowResponse, len(rows))
	for i, row := range rows {
		data[i] = StatsRowResponse{
			Period:      row.Period,
			TotalSales:  row.TotalSales,
			TotalProfit: row.TotalProfit,
		}
	}
	return StatsResponse{Success: true, Data: data}
}

// DashboardResponse for GET /api/dashboard/summary.
type DashboardResponse struct {
	Success       bool        `json:"success"`
	TodaySales    types.Money `json:"todaySales"`
	TodayProfit   types.Money `json:"todayProfit"`
	InvoiceCount  int64       `json:"invoiceCount"`
	ItemCount     int64       `json:"itemCount"`
	CustomerCount int64       `json:"customerCount"`
	CashBalance   types.Money `json:"cashBalance"`
	BankBalance   types.Money `json:"bankBalance"`
}

// FromSummary maps the dashboard snapshot.
func FromSummary(s *reports.Summary) DashboardResponse {
	return DashboardResponse{
		Success:       true,
		TodaySales:    s.TodaySales,
		TodayProfit:   s.TodayProfit,
		InvoiceCount:  s.InvoiceCount,
		ItemCount:     s.ItemCount,
		CustomerCount: s.CustomerCount,
		CashBalance:   s.CashBalance,
		BankBalance:   s.BankBalance,
	}
}
