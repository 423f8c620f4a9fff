package invoice

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/apperror"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/id"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/types"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/catalogs/customer"
)

// --- mocks ---

type mockTxManager struct{}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockRepo struct {
	headers map[id.ID]*Invoice
	lines   map[id.ID][]*Line
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		headers: make(map[id.ID]*Invoice),
		lines:   make(map[id.ID][]*Line),
	}
}

func (m *mockRepo) CreateHeader(_ context.Context, inv *Invoice) error {
	cp := *inv
	m.headers[inv.ID] = &cp
	return nil
}

func (m *mockRepo) UpdateHeader(_ context.Context, inv *Invoice) error {
	if _, ok := m.headers[inv.ID]; !ok {
		return apperror.NewNotFound("invoice", inv.ID.String())
	}
	cp := *inv
	m.headers[inv.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, invoiceID id.ID) (*Invoice, error) {
	inv, ok := m.headers[invoiceID]
	if !ok {
		return nil, apperror.NewNotFound("invoice", invoiceID.String())
	}
	cp := *inv
	return &cp, nil
}

func (m *mockRepo) List(_ context.Context, filter ListFilter) ([]*Invoice, error) {
	var out []*Invoice
	for _, inv := range m.headers {
		if filter.Status != "" && inv.Status != filter.Status {
			continue
		}
		cp := *inv
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockRepo) DeleteDocument(_ context.Context, invoiceID id.ID) error {
	delete(m.headers, invoiceID)
	delete(m.lines, invoiceID)
	return nil
}

func (m *mockRepo) ListLines(_ context.Context, invoiceID id.ID) ([]*Line, error) {
	var out []*Line
	for _, line := range m.lines[invoiceID] {
		cp := *line
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockRepo) InsertLines(_ context.Context, lines []*Line) error {
	for _, line := range lines {
		cp := *line
		m.lines[line.InvoiceID] = append(m.lines[line.InvoiceID], &cp)
	}
	return nil
}

func (m *mockRepo) DeleteLines(_ context.Context, invoiceID id.ID) error {
	delete(m.lines, invoiceID)
	return nil
}

// mockStock floor-clamps at zero the way the SQL adjuster does.
type mockStock struct {
	qty map[id.ID]types.Quantity
}

func newMockStock() *mockStock {
	return &mockStock{qty: make(map[id.ID]types.Quantity)}
}

func (m *mockStock) AdjustQty(_ context.Context, itemID id.ID, delta types.Quantity) error {
	next := m.qty[itemID].Add(delta)
	m.qty[itemID] = types.ClampQuantity(next)
	return nil
}

type mockCustomers struct {
	existing  []*customer.Customer
	created   []*customer.Customer
	lookupErr error
	createErr error
}

func (m *mockCustomers) FindByNameOrCode(_ context.Context, value string) (*customer.Customer, error) {
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	for _, c := range m.existing {
		if c.Name == value || c.Code == value {
			return c, nil
		}
	}
	return nil, apperror.NewNotFound("customer", value)
}

func (m *mockCustomers) CreateDirect(_ context.Context, c *customer.Customer) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, c)
	return nil
}

func newService(repo *mockRepo, stock *mockStock, customers *mockCustomers) *Service {
	return NewService(repo, stock, customers, &mockTxManager{}, nil, nil)
}

func qty(f float64) types.Quantity { return decimal.NewFromFloat(f) }

func linePtr(v types.Money) *types.Money { return &v }

// --- tests ---

func TestUpdate_NetStockChange(t *testing.T) {
	repo := newMockRepo()
	stock := newMockStock()
	svc := newService(repo, stock, &mockCustomers{})
	ctx := context.Background()

	itemA, itemB := id.New(), id.New()
	stock.qty[itemA] = qty(10)
	stock.qty[itemB] = qty(5)

	invID := id.New()
	repo.headers[invID] = &Invoice{ID: invID, InvoiceNumber: "INV-1", Status: StatusCompleted}
	repo.lines[invID] = []*Line{
		{ID: id.New(), InvoiceID: invID, ItemID: &itemA, Qty: qty(2)},
		{ID: id.New(), InvoiceID: invID, ItemID: &itemB, Qty: qty(1)},
	}

	err := svc.Update(ctx, UpdateInput{
		InvoiceID: invID,
		Header:    HeaderInput{InvoiceNumber: "INV-1"},
		Lines: []LineInput{
			{ItemID: &itemA, Qty: qty(5)},
		},
	})
	require.NoError(t, err)

	// Net change per item: old qty restored, new qty deducted.
	assert.True(t, stock.qty[itemA].Equal(qty(7)), "item A: 10 + 2 - 5, got %s", stock.qty[itemA])
	assert.True(t, stock.qty[itemB].Equal(qty(6)), "item B: 5 + 1, got %s", stock.qty[itemB])

	lines, _ := repo.ListLines(ctx, invID)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Qty.Equal(qty(5)))
}

func TestCreate_StockClampedAtZero(t *testing.T) {
	repo := newMockRepo()
	stock := newMockStock()
	svc := newService(repo, stock, &mockCustomers{})

	itemID := id.New()
	stock.qty[itemID] = qty(4)

	_, err := svc.Create(context.Background(), CreateInput{
		Header: HeaderInput{InvoiceNumber: "INV-2"},
		Lines: []LineInput{
			{ItemID: &itemID, Qty: qty(10)},
		},
	})
	require.NoError(t, err)
	assert.True(t, stock.qty[itemID].IsZero(), "got %s", stock.qty[itemID])
}

func TestConvertHold(t *testing.T) {
	repo := newMockRepo()
	stock := newMockStock()
	svc := newService(repo, stock, &mockCustomers{})
	ctx := context.Background()

	itemID := id.New()
	stock.qty[itemID] = qty(8)

	holdID := id.New()
	repo.headers[holdID] = &Invoice{
		ID: holdID, InvoiceNumber: "INV-3", CustomerName: "Walk In",
		NetTotal: decimal.NewFromInt(150), Status: StatusHold,
	}
	repo.lines[holdID] = []*Line{
		{ID: id.New(), InvoiceID: holdID, ItemID: &itemID, Qty: qty(3)},
		{ID: id.New(), InvoiceID: holdID, Qty: qty(1), Other: "service fee"},
	}

	newID, err := svc.ConvertHold(ctx, ConvertInput{HoldID: holdID, UserName: "clerk"})
	require.NoError(t, err)

	// Hold and its lines are gone; the converted invoice carries every line.
	_, exists := repo.headers[holdID]
	assert.False(t, exists)
	assert.Empty(t, repo.lines[holdID])

	converted := repo.headers[newID]
	require.NotNil(t, converted)
	assert.Equal(t, StatusCompleted, converted.Status)
	assert.Equal(t, "INV-3", converted.InvoiceNumber)
	assert.Equal(t, "clerk", converted.UserName)
	assert.True(t, converted.NetTotal.Equal(decimal.NewFromInt(150)))

	lines, _ := repo.ListLines(ctx, newID)
	assert.Len(t, lines, 2)
	assert.True(t, stock.qty[itemID].Equal(qty(5)), "got %s", stock.qty[itemID])
}

func TestConvertHold_AlreadyConverted(t *testing.T) {
	repo := newMockRepo()
	svc := newService(repo, newMockStock(), &mockCustomers{})

	invID := id.New()
	repo.headers[invID] = &Invoice{ID: invID, InvoiceNumber: "INV-4", Status: StatusCompleted}

	got, err := svc.ConvertHold(context.Background(), ConvertInput{HoldID: invID})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeHoldConsumed, appErr.Code)
	assert.True(t, id.IsNil(got), "a rejected conversion must return the zero id")
}

func TestDeleteHold_RejectsCompleted(t *testing.T) {
	repo := newMockRepo()
	svc := newService(repo, newMockStock(), &mockCustomers{})

	invID := id.New()
	repo.headers[invID] = &Invoice{ID: invID, InvoiceNumber: "INV-5", Status: StatusCompleted}

	err := svc.DeleteHold(context.Background(), invID)
	assert.True(t, apperror.IsValidation(err))
	_, exists := repo.headers[invID]
	assert.True(t, exists, "completed invoice must not be deleted")
}

func TestResolveCustomer_ExplicitIDUsedAsIs(t *testing.T) {
	repo := newMockRepo()
	customers := &mockCustomers{}
	svc := newService(repo, newMockStock(), customers)

	// No existence check on an explicit id.
	custID := id.New()
	invID, err := svc.Create(context.Background(), CreateInput{
		Header: HeaderInput{InvoiceNumber: "INV-6", CustomerID: &custID},
	})
	require.NoError(t, err)
	require.NotNil(t, repo.headers[invID].CustomerID)
	assert.Equal(t, custID, *repo.headers[invID].CustomerID)
	assert.Empty(t, customers.created)
}

func TestResolveCustomer_ExistingNameMatch(t *testing.T) {
	repo := newMockRepo()
	existing := customer.New("CUS-1", "Acme Traders")
	existing.ID = id.New()
	customers := &mockCustomers{existing: []*customer.Customer{existing}}
	svc := newService(repo, newMockStock(), customers)

	invID, err := svc.Create(context.Background(), CreateInput{
		Header: HeaderInput{InvoiceNumber: "INV-7", CustomerName: "Acme Traders"},
	})
	require.NoError(t, err)
	require.NotNil(t, repo.headers[invID].CustomerID)
	assert.Equal(t, existing.ID, *repo.headers[invID].CustomerID)
	assert.Empty(t, customers.created)
}

func TestResolveCustomer_AutoCreate(t *testing.T) {
	repo := newMockRepo()
	customers := &mockCustomers{}
	svc := newService(repo, newMockStock(), customers)

	invID, err := svc.Create(context.Background(), CreateInput{
		Header: HeaderInput{InvoiceNumber: "INV-8", CustomerName: "New Customer"},
	})
	require.NoError(t, err)
	require.Len(t, customers.created, 1)

	created := customers.created[0]
	assert.Equal(t, "New Customer", created.Name)
	assert.True(t, strings.HasPrefix(created.Code, "CUS-"))
	assert.Equal(t, customer.AutoCreatedNote, created.Note)
	require.NotNil(t, repo.headers[invID].CustomerID)
	assert.Equal(t, created.ID, *repo.headers[invID].CustomerID)
}

func TestResolveCustomer_UnknownNameGetsFixedCode(t *testing.T) {
	repo := newMockRepo()
	customers := &mockCustomers{}
	svc := newService(repo, newMockStock(), customers)

	_, err := svc.Create(context.Background(), CreateInput{
		Header: HeaderInput{InvoiceNumber: "INV-9", CustomerName: "Unknown"},
	})
	require.NoError(t, err)
	require.Len(t, customers.created, 1)
	assert.Equal(t, customer.CodeUnknown, customers.created[0].Code)
}

func TestResolveCustomer_ErrorsAreSwallowed(t *testing.T) {
	repo := newMockRepo()
	customers := &mockCustomers{createErr: errors.New("insert failed")}
	svc := newService(repo, newMockStock(), customers)

	// The invoice still succeeds, just without a customer link.
	invID, err := svc.Create(context.Background(), CreateInput{
		Header: HeaderInput{InvoiceNumber: "INV-10", CustomerName: "Someone New"},
	})
	require.NoError(t, err)
	assert.Nil(t, repo.headers[invID].CustomerID)
}

func TestBuildLine_FallbackPriority(t *testing.T) {
	invID := id.New()

	t.Run("explicit discount and total win", func(t *testing.T) {
		line := BuildLine(invID, LineInput{
			Qty:          qty(2),
			MarketPrice:  decimal.NewFromInt(100),
			SellingPrice: decimal.NewFromInt(90),
			Discount:     linePtr(decimal.NewFromInt(5)),
			Total:        linePtr(decimal.NewFromInt(180)),
		})
		assert.True(t, line.Discount.Equal(decimal.NewFromInt(5)))
		require.NotNil(t, line.TotalValue)
		assert.True(t, line.TotalValue.Equal(decimal.NewFromInt(180)))
	})

	t.Run("derived discount is market minus selling", func(t *testing.T) {
		line := BuildLine(invID, LineInput{
			Qty:          qty(2),
			MarketPrice:  decimal.NewFromInt(100),
			SellingPrice: decimal.NewFromInt(90),
		})
		assert.True(t, line.Discount.Equal(decimal.NewFromInt(10)))
		require.NotNil(t, line.TotalValue)
		assert.True(t, line.TotalValue.Equal(decimal.NewFromInt(200)), "qty x market")
	})

	t.Run("selling price total when no market price", func(t *testing.T) {
		line := BuildLine(invID, LineInput{
			Qty:          qty(3),
			SellingPrice: decimal.NewFromInt(40),
		})
		require.NotNil(t, line.TotalValue)
		assert.True(t, line.TotalValue.Equal(decimal.NewFromInt(120)))
	})

	t.Run("no prices at all leaves total null and discount zero", func(t *testing.T) {
		line := BuildLine(invID, LineInput{Qty: qty(1)})
		assert.Nil(t, line.TotalValue)
		assert.True(t, line.Discount.IsZero())
	})
}
