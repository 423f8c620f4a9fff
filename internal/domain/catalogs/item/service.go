package item

import (
	"context"
	"fmt"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/apperror"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/id"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/tx"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain"
	"github.com/JHRsoftware/jp-stores-sub001/pkg/numerator"
)

// Service provides business logic for the Item catalog.
type Service struct {
	*domain.CatalogService[*Item]
	repo      Repository
	priceRepo PriceRepository
	txManager tx.Manager
}

// NewService creates a new Item service.
func NewService(repo Repository, priceRepo PriceRepository, txManager tx.Manager, num *numerator.Service) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Item]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  num,
		EntityName: "item",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		priceRepo:      priceRepo,
		txManager:      txManager,
	}

	base.Hooks().OnBeforeCreate(svc.checkBarcodeUnique)
	base.Hooks().OnBeforeUpdate(svc.checkBarcodeUnique)

	return svc
}

// checkBarcodeUnique rejects a barcode already held by a different item.
// The error names the conflicting record.
func (s *Service) checkBarcodeUnique(ctx context.Context, it *Item) error {
	existing, err := s.repo.FindByBarcode(ctx, it.Barcode)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != it.ID {
		return apperror.NewDuplicate("item", "barcode", it.Barcode).
			WithDetail("existing_item", existing.Name).
			WithDetail("existing_id", existing.ID)
	}
	return nil
}

// CreateWithPrice inserts the item and its initial price row in one
// transaction. All-or-nothing: a failed price write rolls back the item.
func (s *Service) CreateWithPrice(ctx context.Context, it *Item, price *PriceRow) error {
	if err := it.Validate(ctx); err != nil {
		return err
	}
	if err := s.checkBarcodeUnique(ctx, it); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, it); err != nil {
			return fmt.Errorf("create item: %w", err)
		}
		if price != nil {
			price.ItemID = it.ID
			if id.IsNil(price.ID) {
				fresh := NewPriceRow(it.ID)
				price.ID = fresh.ID
				price.CreatedAt = fresh.CreatedAt
			}
			if err := price.Validate(ctx); err != nil {
				return err
			}
			if err := s.priceRepo.Insert(ctx, price); err != nil {
				return fmt.Errorf("insert price row: %w", err)
			}
		}
		return nil
	})
}

// FindByBarcode retrieves an item by barcode.
func (s *Service) FindByBarcode(ctx context.Context, barcode string) (*Item, error) {
	it, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("item", barcode)
		}
		return nil, err
	}
	return it, nil
}

// --- Price history ---

// SavePrice inserts when row.ID is nil, updates otherwise.
func (s *Service) SavePrice(ctx context.Context, row *PriceRow) error {
	if err := row.Validate(ctx); err != nil {
		return err
	}

	exists, err := s.repo.Exists(ctx, row.ItemID)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.NewNotFound("item", row.ItemID.String())
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if id.IsNil(row.ID) {
			fresh := NewPriceRow(row.ItemID)
			row.ID = fresh.ID
			row.CreatedAt = fresh.CreatedAt
			return s.priceRepo.Insert(ctx, row)
		}
		return s.priceRepo.Update(ctx, row)
	})
}

// DeletePrice removes a price row.
func (s *Service) DeletePrice(ctx context.Context, rowID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.priceRepo.Delete(ctx, rowID)
	})
}

// PriceHistory returns all price rows for an item, newest first.
func (s *Service) PriceHistory(ctx context.Context, itemID id.ID) ([]PriceRow, error) {
	return s.priceRepo.ListByItem(ctx, itemID)
}

// CurrentPrice returns the newest price row for an item.
func (s *Service) CurrentPrice(ctx context.Context, itemID id.ID) (*PriceRow, error) {
	return s.priceRepo.Current(ctx, itemID)
}
