package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/apperror"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/id"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/types"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/catalogs/item"
	"github.com/JHRsoftware/jp-stores-sub001/internal/infrastructure/storage/postgres"
)

const (
	itemTable      = "items"
	itemPriceTable = "item_prices"
)

// ItemRepo implements item.Repository.
type ItemRepo struct {
	*BaseCatalogRepo[*item.Item]
}

// NewItemRepo creates a new item repository.
func NewItemRepo(txManager *postgres.TxManager) *ItemRepo {
	return &ItemRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*item.Item](
			txManager,
			itemTable,
			postgres.ExtractDBColumns[item.Item](),
			func() *item.Item { return &item.Item{} },
		),
	}
}

// FindByBarcode retrieves an item by barcode.
func (r *ItemRepo) FindByBarcode(ctx context.Context, barcode string) (*item.Item, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"barcode": barcode}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	it, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("item", barcode)
		}
		return nil, err
	}
	return it, nil
}

// AdjustQty applies a signed stock delta. The floor clamp lives in SQL so a
// decrement can never drive qty negative; concurrent adjusters serialize on
// the row lock.
func (r *ItemRepo) AdjustQty(ctx context.Context, itemID id.ID, delta types.Quantity) error {
	const sql = `
		UPDATE items
		SET qty = GREATEST(qty + $2, 0), updated_at = now()
		WHERE id = $1
	`

	result, err := r.querier(ctx).Exec(ctx, sql, itemID, delta)
	if err != nil {
		return fmt.Errorf("adjust qty for %s: %w", itemID, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("item", itemID.String())
	}
	return nil
}

// PriceRepo implements item.PriceRepository.
type PriceRepo struct {
	txManager  *postgres.TxManager
	selectCols []string
}

// NewPriceRepo creates a new price history repository.
func NewPriceRepo(txManager *postgres.TxManager) *PriceRepo {
	return &PriceRepo{
		txManager:  txManager,
		selectCols: postgres.ExtractDBColumns[item.PriceRow](),
	}
}

func (r *PriceRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *PriceRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().Select(r.selectCols...).From(itemPriceTable)
}

// Insert appends a price row.
func (r *PriceRepo) Insert(ctx context.Context, row *item.PriceRow) error {
	q := r.builder().
		Insert(itemPriceTable).
		SetMap(postgres.StructToMap(row))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert price row: %w", err)
	}
	return nil
}

// Update overwrites an existing price row.
func (r *PriceRepo) Update(ctx context.Context, row *item.PriceRow) error {
	data := postgres.StructToMap(row)
	delete(data, "id")

	q := r.builder().
		Update(itemPriceTable).
		SetMap(data).
		Where(squirrel.Eq{"id": row.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update price row: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("price", row.ID.String())
	}
	return nil
}

// Delete removes a price row.
func (r *PriceRepo) Delete(ctx context.Context, priceID id.ID) error {
	q := r.builder().
		Delete(itemPriceTable).
		Where(squirrel.Eq{"id": priceID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete price row: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("price", priceID.String())
	}
	return nil
}

// GetByID retrieves one price row.
func (r *PriceRepo) GetByID(ctx context.Context, priceID id.ID) (*item.PriceRow, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": priceID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := &item.PriceRow{}
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("price", priceID.String())
		}
		return nil, fmt.Errorf("get price row: %w", err)
	}
	return row, nil
}

// ListByItem returns the full price history, newest first.
func (r *PriceRepo) ListByItem(ctx context.Context, itemID id.ID) ([]item.PriceRow, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"item_id": itemID}).
		OrderBy("created_at DESC", "id DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []item.PriceRow
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list price rows: %w", err)
	}
	return rows, nil
}

// Current returns the newest price row for the item.
func (r *PriceRepo) Current(ctx context.Context, itemID id.ID) (*item.PriceRow, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"item_id": itemID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := &item.PriceRow{}
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("price", itemID.String())
		}
		return nil, fmt.Errorf("get current price: %w", err)
	}
	return row, nil
}

var (
	_ item.Repository      = (*ItemRepo)(nil)
	_ item.PriceRepository = (*PriceRepo)(nil)
)
