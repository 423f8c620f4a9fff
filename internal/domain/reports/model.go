// Package reports provides read-only sales analytics: invoice stats grouped
// by period and the dashboard summary.
package reports

import (
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/apperror"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/types"
)

// Granularity is the stats grouping period.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// ParseGranularity validates a caller-supplied filter type.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case GranularityDay, GranularityMonth, GranularityYear:
		return Granularity(s), nil
	default:
		return "", apperror.NewValidation("filterType must be 'day', 'month' or 'year'")
	}
}

// StatsRow is one aggregated period, newest first in query results.
type StatsRow struct {
	Period      string      `db:"period"`
	TotalSales  types.Money `db:"total_sales"`
	TotalProfit types.Money `db:"total_profit"`
}

// Summary is the dashboard snapshot.
type Summary struct {
	TodaySales    types.Money `db:"today_sales"`
	TodayProfit   types.Money `db:"today_profit"`
	InvoiceCount  int64       `db:"invoice_count"`
	ItemCount     int64       `db:"item_count"`
	CustomerCount int64       `db:"customer_count"`
	CashBalance   types.Money `db:"cash_balance"`
	BankBalance   types.Money `db:"bank_balance"`
}
