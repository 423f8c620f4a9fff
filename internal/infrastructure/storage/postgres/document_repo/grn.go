package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/apperror"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/id"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/documents/grn"
	"github.com/JHRsoftware/jp-stores-sub001/internal/infrastructure/storage/postgres"
)

const (
	grnTable     = "grns"
	grnLineTable = "grn_lines"
)

// GrnRepo implements grn.Repository.
type GrnRepo struct {
	*BaseDocumentRepo[*grn.GRN]
	lineCols []string
}

// NewGrnRepo creates a new GRN repository.
func NewGrnRepo(txManager *postgres.TxManager) *GrnRepo {
	return &GrnRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*grn.GRN](
			txManager,
			grnTable,
			postgres.ExtractDBColumns[grn.GRN](),
			func() *grn.GRN { return &grn.GRN{} },
		),
		lineCols: postgres.ExtractDBColumns[grn.Line](),
	}
}

// CreateHeader inserts the GRN row.
func (r *GrnRepo) CreateHeader(ctx context.Context, g *grn.GRN) error {
	return r.Create(ctx, g)
}

// UpdateHeader overwrites the GRN row.
func (r *GrnRepo) UpdateHeader(ctx context.Context, g *grn.GRN) error {
	return r.Update(ctx, g)
}

// List returns GRNs matching the filter, newest first.
func (r *GrnRepo) List(ctx context.Context, filter grn.ListFilter) ([]*grn.GRN, error) {
	q := r.baseSelect().OrderBy("date DESC")

	if filter.SupplierID != nil {
		q = q.Where(squirrel.Eq{"supplier_id": *filter.SupplierID})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"grn_number": pattern},
			squirrel.ILike{"invoice_number": pattern},
			squirrel.ILike{"po_number": pattern},
		})
	}
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

	var out []*grn.GRN
	if err := r.SelectList(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteDocument removes the header and all its lines.
func (r *GrnRepo) DeleteDocument(ctx context.Context, grnID id.ID) error {
	q := r.Builder().
		Delete(grnLineTable).
		Where(squirrel.Eq{"grn_id": grnID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build line delete: %w", err)
	}
	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete grn lines: %w", err)
	}

	return r.Delete(ctx, grnID)
}

// ListLines returns the GRN's lines in insertion order.
func (r *GrnRepo) ListLines(ctx context.Context, grnID id.ID) ([]*grn.Line, error) {
	q := r.Builder().
		Select(r.lineCols...).
		From(grnLineTable).
		Where(squirrel.Eq{"grn_id": grnID}).
		OrderBy("id ASC")

	var out []*grn.Line
	if err := r.SelectList(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

// GetLine returns one line by id.
func (r *GrnRepo) GetLine(ctx context.Context, lineID id.ID) (*grn.Line, error) {
	q := r.Builder().
		Select(r.lineCols...).
		From(grnLineTable).
		Where(squirrel.Eq{"id": lineID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	line := &grn.Line{}
	if err := pgxscan.Get(ctx, r.querier(ctx), line, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("grn line", lineID.String())
		}
		return nil, fmt.Errorf("get grn line: %w", err)
	}
	return line, nil
}

// InsertLines batch-inserts lines.
func (r *GrnRepo) InsertLines(ctx context.Context, lines []*grn.Line) error {
	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(grnLineTable).
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
		return fmt.Errorf("insert grn lines: %w", err)
	}
	return nil
}

// UpdateLine overwrites one line.
func (r *GrnRepo) UpdateLine(ctx context.Context, line *grn.Line) error {
	data := postgres.StructToMap(line)
	delete(data, "id")

	q := r.Builder().
		Update(grnLineTable).
		SetMap(data).
		Where(squirrel.Eq{"id": line.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build line update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update grn line: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("grn line", line.ID.String())
	}
	return nil
}
