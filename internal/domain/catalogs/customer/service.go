package customer

import (
	"context"
	"fmt"
	"time"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/apperror"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/id"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/tx"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain"
	"github.com/JHRsoftware/jp-stores-sub001/pkg/numerator"
)

// Service provides business logic for the Customer catalog.
// Composes domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Customer]
	repo Repository
	num  *numerator.Service
}

// NewService creates a new Customer service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Customer]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  num,
		EntityName: "customer",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		num:            num,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.checkCodeUnique)

	return svc
}

// prepareForCreate handles code generation and uniqueness checks before create.
func (s *Service) prepareForCreate(ctx context.Context, c *Customer) error {
	if c.Code == "" {
		cfg := numerator.DefaultConfig("CUS")
		code, err := s.num.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: numerator.StrategyCached}, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		c.Code = code
	}

	return s.checkCodeUnique(ctx, c)
}

// checkCodeUnique rejects a code already held by a different customer.
func (s *Service) checkCodeUnique(ctx context.Context, c *Customer) error {
	existing, err := s.repo.GetByCode(ctx, c.Code)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != c.ID {
		return apperror.NewDuplicate("customer", "code", c.Code)
	}
	return nil
}

// FindByNameOrCode retrieves a customer by exact name or code match.
func (s *Service) FindByNameOrCode(ctx context.Context, value string) (*Customer, error) {
	return s.repo.FindByNameOrCode(ctx, value)
}

// GenerateCode returns a fresh generated customer code ("CUS-…").
func (s *Service) GenerateCode(ctx context.Context) (string, error) {
	cfg := numerator.DefaultConfig("CUS")
	return s.num.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: numerator.StrategyCached}, time.Now())
}

// CreateDirect inserts a customer without running catalog hooks; used by the
// invoice resolver which generates its own code and tolerates failure.
func (s *Service) CreateDirect(ctx context.Context, c *Customer) error {
	return s.repo.Create(ctx, c)
}

// Exists reports whether a customer with the given ID exists.
func (s *Service) ExistsByID(ctx context.Context, customerID id.ID) (bool, error) {
	return s.CatalogService.Exists(ctx, customerID)
}
