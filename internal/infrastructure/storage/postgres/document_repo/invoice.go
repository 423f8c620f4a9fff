package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/id"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/documents/invoice"
	"github.com/JHRsoftware/jp-stores-sub001/internal/infrastructure/storage/postgres"
)

const (
	invoiceTable     = "invoices"
	invoiceLineTable = "invoice_lines"
)

// InvoiceRepo implements invoice.Repository for both invoices and holds,
// which share the same tables and differ only by status.
//
// The statement shape honors the schema capability detected at startup:
// without the customer_name column the repo simply never reads or writes it.
type InvoiceRepo struct {
	*BaseDocumentRepo[*invoice.Invoice]
	caps     postgres.Capabilities
	lineCols []string
}

// NewInvoiceRepo creates a new invoice repository.
func NewInvoiceRepo(txManager *postgres.TxManager, caps postgres.Capabilities) *InvoiceRepo {
	cols := postgres.ExtractDBColumns[invoice.Invoice]()
	if !caps.InvoiceCustomerName {
		filtered := cols[:0]
		for _, col := range cols {
			if col != "customer_name" {
				filtered = append(filtered, col)
			}
		}
		cols = filtered
	}

	return &InvoiceRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*invoice.Invoice](
			txManager,
			invoiceTable,
			cols,
			func() *invoice.Invoice { return &invoice.Invoice{} },
		),
		caps:     caps,
		lineCols: postgres.ExtractDBColumns[invoice.Line](),
	}
}

// CreateHeader inserts the invoice row.
func (r *InvoiceRepo) CreateHeader(ctx context.Context, inv *invoice.Invoice) error {
	return r.Create(ctx, inv)
}

// UpdateHeader overwrites the invoice row.
func (r *InvoiceRepo) UpdateHeader(ctx context.Context, inv *invoice.Invoice) error {
	return r.Update(ctx, inv)
}

// List returns headers matching the filter, newest first.
func (r *InvoiceRepo) List(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
	q := r.baseSelect().OrderBy("date_time DESC")

	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		if r.caps.InvoiceCustomerName {
			q = q.Where(squirrel.Or{
				squirrel.ILike{"invoice_number": pattern},
				squirrel.ILike{"customer_name": pattern},
			})
		} else {
			q = q.Where(squirrel.ILike{"invoice_number": pattern})
		}
	}
	if filter.From != nil {
		q = q.Where(squirrel.GtOrEq{"date_time": *filter.From})
	}
	if filter.To != nil {
		q = q.Where(squirrel.Lt{"date_time": *filter.To})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	var out []*invoice.Invoice
	if err := r.SelectList(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteDocument removes the header and all its lines.
func (r *InvoiceRepo) DeleteDocument(ctx context.Context, invoiceID id.ID) error {
	if err := r.DeleteLines(ctx, invoiceID); err != nil {
		return err
	}
	return r.Delete(ctx, invoiceID)
}

// ListLines returns the invoice's lines in insertion order.
func (r *InvoiceRepo) ListLines(ctx context.Context, invoiceID id.ID) ([]*invoice.Line, error) {
	q := r.Builder().
		Select(r.lineCols...).
		From(invoiceLineTable).
		Where(squirrel.Eq{"invoice_id": invoiceID}).
		OrderBy("id ASC")

	var out []*invoice.Line
	if err := r.SelectList(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

// InsertLines batch-inserts lines.
func (r *InvoiceRepo) InsertLines(ctx context.Context, lines []*invoice.Line) error {
	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(invoiceLineTable).
		Columns(r.lineCols...)
	for _, line := range lines {
		data := postgres.StructToMap(line)
		values := make([]any, 0, len(r.lineCols))
		for _, col := range r.lineCols {
			values = append(values, data[col])
		}
		q = q.Values(values...)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build line insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert invoice lines: %w", err)
	}
	return nil
}

// DeleteLines removes all lines of an invoice.
func (r *InvoiceRepo) DeleteLines(ctx context.Context, invoiceID id.ID) error {
	q := r.Builder().
		Delete(invoiceLineTable).
		Where(squirrel.Eq{"invoice_id": invoiceID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build line delete: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete invoice lines: %w", err)
	}
	return nil
}
