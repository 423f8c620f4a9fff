package item

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/apperror"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/id"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/types"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain"
)

// --- mocks ---

type mockTxManager struct{}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockItemRepo struct {
	items map[id.ID]*Item
}

func newMockItemRepo() *mockItemRepo {
	return &mockItemRepo{items: make(map[id.ID]*Item)}
}

func (m *mockItemRepo) Create(_ context.Context, it *Item) error {
	m.items[it.ID] = it
	return nil
}

func (m *mockItemRepo) GetByID(_ context.Context, itemID id.ID) (*Item, error) {
	it, ok := m.items[itemID]
	if !ok {
		return nil, apperror.NewNotFound("item", itemID.String())
	}
	return it, nil
}

func (m *mockItemRepo) GetByCode(_ context.Context, code string) (*Item, error) {
	for _, it := range m.items {
		if it.Code == code {
			return it, nil
		}
	}
	return nil, apperror.NewNotFound("item", code)
}

func (m *mockItemRepo) Update(_ context.Context, it *Item) error {
	m.items[it.ID] = it
	return nil
}

func (m *mockItemRepo) SetDeletionMark(_ context.Context, itemID id.ID, marked bool) error {
	it, ok := m.items[itemID]
	if !ok {
		return apperror.NewNotFound("item", itemID.String())
	}
	it.DeletionMark = marked
	return nil
}

func (m *mockItemRepo) List(_ context.Context, _ domain.ListFilter) (domain.ListResult[*Item], error) {
	var out []*Item
	for _, it := range m.items {
		out = append(out, it)
	}
	return domain.ListResult[*Item]{Items: out, TotalCount: int64(len(out))}, nil
}

func (m *mockItemRepo) Exists(_ context.Context, itemID id.ID) (bool, error) {
	_, ok := m.items[itemID]
	return ok, nil
}

func (m *mockItemRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	for _, it := range m.items {
		if it.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockItemRepo) FindByBarcode(_ context.Context, barcode string) (*Item, error) {
	for _, it := range m.items {
		if it.Barcode == barcode {
			return it, nil
		}
	}
	return nil, apperror.NewNotFound("item", barcode)
}

func (m *mockItemRepo) AdjustQty(_ context.Context, itemID id.ID, delta types.Quantity) error {
	it, ok := m.items[itemID]
	if !ok {
		return apperror.NewNotFound("item", itemID.String())
	}
	it.Qty = types.ClampQuantity(it.Qty.Add(delta))
	return nil
}

type mockPriceRepo struct {
	rows      []PriceRow
	insertErr error
	updated   []id.ID
}

func (m *mockPriceRepo) Insert(_ context.Context, row *PriceRow) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.rows = append(m.rows, *row)
	return nil
}

func (m *mockPriceRepo) Update(_ context.Context, row *PriceRow) error {
	for i := range m.rows {
		if m.rows[i].ID == row.ID {
			m.rows[i] = *row
			m.updated = append(m.updated, row.ID)
			return nil
		}
	}
	return apperror.NewNotFound("price", row.ID.String())
}

func (m *mockPriceRepo) Delete(_ context.Context, rowID id.ID) error {
	for i := range m.rows {
		if m.rows[i].ID == rowID {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return apperror.NewNotFound("price", rowID.String())
}

func (m *mockPriceRepo) GetByID(_ context.Context, rowID id.ID) (*PriceRow, error) {
	for i := range m.rows {
		if m.rows[i].ID == rowID {
			cp := m.rows[i]
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("price", rowID.String())
}

func (m *mockPriceRepo) ListByItem(_ context.Context, itemID id.ID) ([]PriceRow, error) {
	var out []PriceRow
	for _, row := range m.rows {
		if row.ItemID == itemID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *mockPriceRepo) Current(_ context.Context, itemID id.ID) (*PriceRow, error) {
	var newest *PriceRow
	for i := range m.rows {
		row := &m.rows[i]
		if row.ItemID != itemID {
			continue
		}
		if newest == nil || row.CreatedAt.After(newest.CreatedAt) {
			newest = row
		}
	}
	if newest == nil {
		return nil, apperror.NewNotFound("price", itemID.String())
	}
	cp := *newest
	return &cp, nil
}

var (
	_ Repository      = (*mockItemRepo)(nil)
	_ PriceRepository = (*mockPriceRepo)(nil)
)

func newTestService(repo *mockItemRepo, prices *mockPriceRepo) *Service {
	return NewService(repo, prices, &mockTxManager{}, nil)
}

// --- tests ---

func TestSavePrice_InsertWhenIDUnset(t *testing.T) {
	repo := newMockItemRepo()
	prices := &mockPriceRepo{}
	svc := newTestService(repo, prices)

	it := New("B100", "widget")
	require.NoError(t, repo.Create(context.Background(), it))

	row := &PriceRow{ItemID: it.ID}
	require.NoError(t, svc.SavePrice(context.Background(), row))

	assert.False(t, id.IsNil(row.ID), "insert must assign a fresh id")
	assert.False(t, row.CreatedAt.IsZero())
	require.Len(t, prices.rows, 1)
	assert.Empty(t, prices.updated)
}

func TestSavePrice_UpdateWhenIDSet(t *testing.T) {
	repo := newMockItemRepo()
	prices := &mockPriceRepo{}
	svc := newTestService(repo, prices)

	it := New("B100", "widget")
	require.NoError(t, repo.Create(context.Background(), it))

	row := NewPriceRow(it.ID)
	prices.rows = append(prices.rows, *row)

	require.NoError(t, svc.SavePrice(context.Background(), row))
	assert.Equal(t, []id.ID{row.ID}, prices.updated)
	assert.Len(t, prices.rows, 1)
}

func TestSavePrice_UnknownItem(t *testing.T) {
	svc := newTestService(newMockItemRepo(), &mockPriceRepo{})

	err := svc.SavePrice(context.Background(), &PriceRow{ItemID: id.New()})
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreateWithPrice_PriceFailurePropagates(t *testing.T) {
	repo := newMockItemRepo()
	prices := &mockPriceRepo{insertErr: errors.New("boom")}
	svc := newTestService(repo, prices)

	it := New("B200", "gadget")
	err := svc.CreateWithPrice(context.Background(), it, &PriceRow{})
	require.Error(t, err)
	assert.Empty(t, prices.rows)
}

func TestPriceHistory(t *testing.T) {
	repo := newMockItemRepo()
	prices := &mockPriceRepo{}
	svc := newTestService(repo, prices)

	it := New("B300", "gizmo")
	require.NoError(t, repo.Create(context.Background(), it))

	older := NewPriceRow(it.ID)
	older.CreatedAt = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	newer := NewPriceRow(it.ID)
	newer.CreatedAt = time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	prices.rows = append(prices.rows, *older, *newer)

	rows, err := svc.PriceHistory(context.Background(), it.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	current, err := svc.CurrentPrice(context.Background(), it.ID)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, current.ID)
}
