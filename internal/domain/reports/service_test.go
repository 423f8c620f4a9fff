package reports

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/apperror"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/types"
)

type mockRepo struct {
	rows      []StatsRow
	summary   Summary
	gotLimit  int
	gotPeriod Granularity
}

func (m *mockRepo) SalesStats(_ context.Context, granularity Granularity, limit int) ([]StatsRow, error) {
	m.gotPeriod = granularity
	m.gotLimit = limit
	if len(m.rows) > limit {
		return m.rows[:limit], nil
	}
	return m.rows, nil
}

func (m *mockRepo) DashboardSummary(_ context.Context) (*Summary, error) {
	s := m.summary
	return &s, nil
}

func TestSalesStats_RejectsUnknownFilterType(t *testing.T) {
	svc := NewService(&mockRepo{})

	_, err := svc.SalesStats(context.Background(), "week")
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestSalesStats_CapsAtOneYearOfRows(t *testing.T) {
	repo := &mockRepo{}
	for i := 0; i < 400; i++ {
		repo.rows = append(repo.rows, StatsRow{
			Period:     fmt.Sprintf("2025-%03d", i),
			TotalSales: types.NewMoney(100),
		})
	}
	svc := NewService(repo)

	rows, err := svc.SalesStats(context.Background(), "day")
	require.NoError(t, err)

	assert.Len(t, rows, 365)
	assert.Equal(t, 365, repo.gotLimit)
	assert.Equal(t, GranularityDay, repo.gotPeriod)
}

func TestSalesStats_PassesGranularityThrough(t *testing.T) {
	for _, filterType := range []string{"day", "month", "year"} {
		repo := &mockRepo{rows: []StatsRow{{Period: "2025"}}}
		svc := NewService(repo)

		rows, err := svc.SalesStats(context.Background(), filterType)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, Granularity(filterType), repo.gotPeriod)
	}
}

func TestDashboardSummary(t *testing.T) {
	repo := &mockRepo{summary: Summary{
		TodaySales:   types.NewMoney(1250),
		InvoiceCount: 3,
		CashBalance:  types.NewMoney(800),
	}}
	svc := NewService(repo)

	got, err := svc.DashboardSummary(context.Background())
	require.NoError(t, err)

	assert.True(t, got.TodaySales.Equal(types.NewMoney(1250)))
	assert.Equal(t, int64(3), got.InvoiceCount)
}
