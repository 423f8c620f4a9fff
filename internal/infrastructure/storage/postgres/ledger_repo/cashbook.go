// Package ledger_repo provides the PostgreSQL implementation of the
// cashbook ledger repository.
package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/cashbook"
	"github.com/JHRsoftware/jp-stores-sub001/internal/infrastructure/storage/postgres"
)

const cashbookTable = "cashbook_entries"

// CashbookRepo implements cashbook.Repository.
type CashbookRepo struct {
	txManager  *postgres.TxManager
	selectCols []string
}

// NewCashbookRepo creates a new cashbook repository.
func NewCashbookRepo(txManager *postgres.TxManager) *CashbookRepo {
	return &CashbookRepo{
		txManager:  txManager,
		selectCols: postgres.ExtractDBColumns[cashbook.Entry](),
	}
}

func (r *CashbookRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Insert appends a ledger entry.
func (r *CashbookRepo) Insert(ctx context.Context, e *cashbook.Entry) error {
	q := r.builder().
		Insert(cashbookTable).
		SetMap(postgres.StructToMap(e))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert cashbook entry: %w", err)
	}
	return nil
}

// List returns entries matching the filter, newest first.
func (r *CashbookRepo) List(ctx context.Context, filter cashbook.ListFilter) ([]*cashbook.Entry, error) {
	q := r.builder().
		Select(r.selectCols...).
		From(cashbookTable).
		OrderBy("date DESC", "created_at DESC")

	if filter.From != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.From})
	}
	if filter.To != nil {
		q = q.Where(squirrel.Lt{"date": *filter.To})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []*cashbook.Entry
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list cashbook entries: %w", err)
	}
	return out, nil
}

// Totals sums the whole ledger in SQL, decimal-exact.
func (r *CashbookRepo) Totals(ctx context.Context) (cashbook.Totals, error) {
	const sql = `
		SELECT
			COALESCE(SUM(cash), 0) AS cash,
			COALESCE(SUM(bank), 0) AS bank
		FROM cashbook_entries
	`

	var totals cashbook.Totals
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &totals, sql); err != nil {
		return cashbook.Totals{}, fmt.Errorf("sum cashbook: %w", err)
	}
	return totals, nil
}
