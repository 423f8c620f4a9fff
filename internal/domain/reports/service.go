package reports

import (
	"context"
	"fmt"
)

// maxStatsRows caps the stats window: at most a year of daily rows.
const maxStatsRows = 365

// Repository runs the aggregate queries. Read-only, no transaction needed.
type Repository interface {
	// SalesStats groups completed invoices by period, newest first,
	// at most maxStatsRows rows.
	SalesStats(ctx context.Context, granularity Granularity, limit int) ([]StatsRow, error)

	DashboardSummary(ctx context.Context) (*Summary, error)
}

// Service provides sales analytics.
type Service struct {
	repo Repository
}

// NewService creates the reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SalesStats returns aggregated sales/profit per period.
func (s *Service) SalesStats(ctx context.Context, filterType string) ([]StatsRow, error) {
	granularity, err := ParseGranularity(filterType)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.SalesStats(ctx, granularity, maxStatsRows)
	if err != nil {
		return nil, fmt.Errorf("sales stats: %w", err)
	}
	if len(rows) > maxStatsRows {
		rows = rows[:maxStatsRows]
	}
	return rows, nil
}

// DashboardSummary returns today's figures and overall counts.
func (s *Service) DashboardSummary(ctx context.Context) (*Summary, error) {
	summary, err := s.repo.DashboardSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}
	return summary, nil
}
