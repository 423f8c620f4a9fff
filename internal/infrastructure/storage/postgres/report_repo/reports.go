// Package report_repo provides the PostgreSQL implementation of the sales
// analytics queries. Aggregation happens in SQL, not in application code.
package report_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/reports"
	"github.com/JHRsoftware/jp-stores-sub001/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txManager *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txManager: txManager}
}

// SalesStats groups completed invoices by period, newest first. The
// granularity maps to a fixed date_trunc unit and period format; the value
// is never interpolated from caller input.
func (r *ReportRepo) SalesStats(ctx context.Context, granularity reports.Granularity, limit int) ([]reports.StatsRow, error) {
	var unit, format string
	switch granularity {
	case reports.GranularityDay:
		unit, format = "day", "YYYY-MM-DD"
	case reports.GranularityMonth:
		unit, format = "month", "YYYY-MM"
	case reports.GranularityYear:
		unit, format = "year", "YYYY"
	default:
		return nil, fmt.Errorf("unsupported granularity %q", granularity)
	}

	sql := fmt.Sprintf(`
		SELECT
			to_char(date_trunc('%[1]s', date_time), '%[2]s') AS period,
			COALESCE(SUM(net_total), 0)    AS total_sales,
			COALESCE(SUM(total_profit), 0) AS total_profit
		FROM invoices
		WHERE status = 'completed'
		GROUP BY date_trunc('%[1]s', date_time)
		ORDER BY date_trunc('%[1]s', date_time) DESC
		LIMIT $1
	`, unit, format)

	var rows []reports.StatsRow
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, sql, limit); err != nil {
		return nil, fmt.Errorf("sales stats: %w", err)
	}
	return rows, nil
}

// DashboardSummary returns today's figures and overall counts in one round
// trip.
func (r *ReportRepo) DashboardSummary(ctx context.Context) (*reports.Summary, error) {
	const sql = `
		SELECT
			COALESCE((SELECT SUM(net_total) FROM invoices
				WHERE status = 'completed' AND date_time >= date_trunc('day', now())), 0)    AS today_sales,
			COALESCE((SELECT SUM(total_profit) FROM invoices
				WHERE status = 'completed' AND date_time >= date_trunc('day', now())), 0)    AS today_profit,
			(SELECT COUNT(*) FROM invoices WHERE status = 'completed')                       AS invoice_count,
			(SELECT COUNT(*) FROM items WHERE deletion_mark = false)                         AS item_count,
			(SELECT COUNT(*) FROM customers WHERE deletion_mark = false)                     AS customer_count,
			COALESCE((SELECT SUM(cash) FROM cashbook_entries), 0)                            AS cash_balance,
			COALESCE((SELECT SUM(bank) FROM cashbook_entries), 0)                            AS bank_balance
	`

	summary := &reports.Summary{}
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), summary, sql); err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}
	return summary, nil
}
