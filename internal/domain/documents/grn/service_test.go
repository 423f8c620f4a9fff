package grn

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/apperror"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/id"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/types"
	"github.com/JHRsoftware/jp-stores-sub001/pkg/numerator"
)

// --- mocks ---

type mockTxManager struct{}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockRepo struct {
	headers map[id.ID]*GRN
	lines   map[id.ID]*Line // keyed by line id
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		headers: make(map[id.ID]*GRN),
		lines:   make(map[id.ID]*Line),
	}
}

func (m *mockRepo) CreateHeader(_ context.Context, g *GRN) error {
	cp := *g
	m.headers[g.ID] = &cp
	return nil
}

func (m *mockRepo) UpdateHeader(_ context.Context, g *GRN) error {
	if _, ok := m.headers[g.ID]; !ok {
		return apperror.NewNotFound("grn", g.ID.String())
	}
	cp := *g
	m.headers[g.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, grnID id.ID) (*GRN, error) {
	g, ok := m.headers[grnID]
	if !ok {
		return nil, apperror.NewNotFound("grn", grnID.String())
	}
	cp := *g
	return &cp, nil
}

func (m *mockRepo) List(_ context.Context, _ ListFilter) ([]*GRN, error) {
	var out []*GRN
	for _, g := range m.headers {
		cp := *g
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockRepo) DeleteDocument(_ context.Context, grnID id.ID) error {
	delete(m.headers, grnID)
	for lineID, line := range m.lines {
		if line.GrnID == grnID {
			delete(m.lines, lineID)
		}
	}
	return nil
}

func (m *mockRepo) ListLines(_ context.Context, grnID id.ID) ([]*Line, error) {
	var out []*Line
	for _, line := range m.lines {
		if line.GrnID == grnID {
			cp := *line
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockRepo) GetLine(_ context.Context, lineID id.ID) (*Line, error) {
	line, ok := m.lines[lineID]
	if !ok {
		return nil, apperror.NewNotFound("grn line", lineID.String())
	}
	cp := *line
	return &cp, nil
}

func (m *mockRepo) InsertLines(_ context.Context, lines []*Line) error {
	for _, line := range lines {
		cp := *line
		m.lines[line.ID] = &cp
	}
	return nil
}

func (m *mockRepo) UpdateLine(_ context.Context, line *Line) error {
	if _, ok := m.lines[line.ID]; !ok {
		return apperror.NewNotFound("grn line", line.ID.String())
	}
	cp := *line
	m.lines[line.ID] = &cp
	return nil
}

type mockStock struct {
	qty map[id.ID]types.Quantity
}

func newMockStock() *mockStock {
	return &mockStock{qty: make(map[id.ID]types.Quantity)}
}

func (m *mockStock) AdjustQty(_ context.Context, itemID id.ID, delta types.Quantity) error {
	m.qty[itemID] = types.ClampQuantity(m.qty[itemID].Add(delta))
	return nil
}

// seqQuerier backs the numerator with an in-memory counter.
type seqQuerier struct {
	counters map[string]int64
}

type seqRow struct {
	val int64
}

func (r seqRow) Scan(dest ...any) error {
	*(dest[0].(*int64)) = r.val
	return nil
}

func (q *seqQuerier) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	if q.counters == nil {
		q.counters = make(map[string]int64)
	}
	key := args[0].(string)
	inc := int64(1)
	if len(args) > 1 {
		inc = args[1].(int64)
	}
	q.counters[key] += inc
	return seqRow{val: q.counters[key]}
}

func newService(repo *mockRepo, stock *mockStock) *Service {
	return NewService(repo, stock, &mockTxManager{}, numerator.New(&seqQuerier{}), nil)
}

func qty(f float64) types.Quantity { return decimal.NewFromFloat(f) }

func money(v int64) types.Money { return decimal.NewFromInt(v) }

// --- tests ---

func TestCreate(t *testing.T) {
	repo := newMockRepo()
	stock := newMockStock()
	svc := newService(repo, stock)
	ctx := context.Background()

	itemA, itemB := id.New(), id.New()
	stock.qty[itemA] = qty(2)

	grnID, err := svc.Create(ctx, CreateInput{
		InvoiceNumber: "SUP-INV-9",
		Discount:      money(20),
		Lines: []LineInput{
			{ItemID: itemA, Qty: qty(5), Cost: money(10)},
			{ItemID: itemB, Qty: qty(3), Cost: money(40)},
		},
	})
	require.NoError(t, err)

	g := repo.headers[grnID]
	require.NotNil(t, g)
	assert.True(t, strings.HasPrefix(g.GrnNumber, "GRN-"))
	assert.True(t, g.Cost.Equal(money(170)), "5x10 + 3x40, got %s", g.Cost)
	assert.True(t, g.Total.Equal(money(150)), "cost - discount, got %s", g.Total)

	assert.True(t, stock.qty[itemA].Equal(qty(7)))
	assert.True(t, stock.qty[itemB].Equal(qty(3)))
}

func TestCreate_RejectsLineWithoutItem(t *testing.T) {
	svc := newService(newMockRepo(), newMockStock())

	_, err := svc.Create(context.Background(), CreateInput{
		Lines: []LineInput{{Qty: qty(1), Cost: money(5)}},
	})
	assert.True(t, apperror.IsValidation(err))
}

func TestUpdateLine_IncrementalDelta(t *testing.T) {
	repo := newMockRepo()
	stock := newMockStock()
	svc := newService(repo, stock)
	ctx := context.Background()

	itemID := id.New()
	stock.qty[itemID] = qty(5)

	grnID, lineID := id.New(), id.New()
	repo.headers[grnID] = &GRN{
		ID: grnID, GrnNumber: "GRN-1",
		Cost: money(110), Discount: money(10), Total: money(100),
	}
	repo.lines[lineID] = &Line{ID: lineID, GrnID: grnID, ItemID: itemID, Qty: qty(5), Cost: money(10)}

	err := svc.UpdateLine(ctx, UpdateLineInput{LineID: lineID, Qty: qty(8), Cost: money(12)})
	require.NoError(t, err)

	// qty delta +3; cost delta 8x12 - 5x10 = 46.
	assert.True(t, stock.qty[itemID].Equal(qty(8)), "got %s", stock.qty[itemID])

	g := repo.headers[grnID]
	assert.True(t, g.Cost.Equal(money(156)), "110 + 46, got %s", g.Cost)
	assert.True(t, g.Total.Equal(money(146)), "cost - discount, got %s", g.Total)

	line := repo.lines[lineID]
	assert.True(t, line.Qty.Equal(qty(8)))
	assert.True(t, line.Cost.Equal(money(12)))
}

func TestUpdateLine_StockClampOnDecrease(t *testing.T) {
	repo := newMockRepo()
	stock := newMockStock()
	svc := newService(repo, stock)

	itemID := id.New()
	stock.qty[itemID] = qty(2)

	grnID, lineID := id.New(), id.New()
	repo.headers[grnID] = &GRN{ID: grnID, GrnNumber: "GRN-2", Cost: money(100), Total: money(100)}
	repo.lines[lineID] = &Line{ID: lineID, GrnID: grnID, ItemID: itemID, Qty: qty(10), Cost: money(10)}

	err := svc.UpdateLine(context.Background(), UpdateLineInput{LineID: lineID, Qty: qty(1), Cost: money(10)})
	require.NoError(t, err)
	assert.True(t, stock.qty[itemID].IsZero(), "2 - 9 clamps to zero, got %s", stock.qty[itemID])
}

func TestUpdateHeader_ClosedFieldSet(t *testing.T) {
	repo := newMockRepo()
	svc := newService(repo, newMockStock())

	grnID := id.New()
	repo.headers[grnID] = &GRN{
		ID: grnID, GrnNumber: "GRN-3", InvoiceNumber: "OLD",
		Cost: money(200), Discount: money(0), Total: money(200),
	}

	newInvoice := "NEW-REF"
	newDiscount := money(50)
	err := svc.UpdateHeader(context.Background(), grnID, HeaderUpdate{
		InvoiceNumber: &newInvoice,
		Discount:      &newDiscount,
	})
	require.NoError(t, err)

	g := repo.headers[grnID]
	assert.Equal(t, "NEW-REF", g.InvoiceNumber)
	assert.True(t, g.Total.Equal(money(150)), "cost - new discount, got %s", g.Total)
	assert.Equal(t, "GRN-3", g.GrnNumber, "number is not an editable field")
}

func TestDelete_ReversesStock(t *testing.T) {
	repo := newMockRepo()
	stock := newMockStock()
	svc := newService(repo, stock)

	itemID := id.New()
	stock.qty[itemID] = qty(10)

	grnID, lineID := id.New(), id.New()
	repo.headers[grnID] = &GRN{ID: grnID, GrnNumber: "GRN-4"}
	repo.lines[lineID] = &Line{ID: lineID, GrnID: grnID, ItemID: itemID, Qty: qty(4), Cost: money(10)}

	err := svc.Delete(context.Background(), grnID)
	require.NoError(t, err)

	_, exists := repo.headers[grnID]
	assert.False(t, exists)
	assert.True(t, stock.qty[itemID].Equal(qty(6)), "got %s", stock.qty[itemID])
}
