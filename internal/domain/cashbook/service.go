package cashbook

import (
	"context"
	"fmt"
	"time"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/id"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/tx"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/types"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain"
)

// ListFilter narrows ledger queries.
type ListFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// DefaultListFilter returns the default paging for ledger lists.
func DefaultListFilter() ListFilter {
	return ListFilter{Limit: 100}
}

// Repository persists ledger entries.
type Repository interface {
	Insert(ctx context.Context, e *Entry) error
	List(ctx context.Context, filter ListFilter) ([]*Entry, error)

	// Totals sums cash and bank across the whole ledger in SQL.
	Totals(ctx context.Context) (Totals, error)
}

// Service provides ledger business logic.
type Service struct {
	repo      Repository
	txManager tx.Manager
	audit     domain.Auditor
}

// NewService creates the cashbook service.
func NewService(repo Repository, txManager tx.Manager, audit domain.Auditor) *Service {
	return &Service{repo: repo, txManager: txManager, audit: audit}
}

// AddInput is the caller-supplied shape of one ledger entry.
type AddInput struct {
	Date     *time.Time
	Remark   string
	Other    string
	Cash     types.Money
	Bank     types.Money
	UserName string
}

// Add appends a ledger entry and returns the stored row.
func (s *Service) Add(ctx context.Context, in AddInput) (*Entry, error) {
	now := time.Now().UTC()
	date := now
	if in.Date != nil {
		date = *in.Date
	}

	entry := &Entry{
		ID:        id.New(),
		Date:      date,
		Remark:    in.Remark,
		Other:     in.Other,
		Cash:      in.Cash,
		Bank:      in.Bank,
		UserName:  in.UserName,
		CreatedAt: now,
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Insert(ctx, entry); err != nil {
			return fmt.Errorf("insert cashbook entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.audit != nil {
		s.audit.Log(ctx, "cashbook", entry.ID, domain.AuditActionCreate, entry)
	}
	return entry, nil
}

// List returns entries matching the filter together with the ledger-wide
// totals.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Entry, Totals, error) {
	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, Totals{}, fmt.Errorf("list cashbook entries: %w", err)
	}
	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, Totals{}, fmt.Errorf("sum cashbook totals: %w", err)
	}
	return entries, totals, nil
}
