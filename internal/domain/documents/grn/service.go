package grn

import (
	"context"
	"fmt"
	"time"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/apperror"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/id"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/tx"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/types"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain"
	"github.com/JHRsoftware/jp-stores-sub001/pkg/numerator"
)

// StockAdjuster applies a signed quantity delta to an item, floor-clamped at
// zero by the implementation. Must join the caller's transaction.
type StockAdjuster interface {
	AdjustQty(ctx context.Context, itemID id.ID, delta types.Quantity) error
}

// Service provides GRN business logic.
type Service struct {
	repo      Repository
	stock     StockAdjuster
	txManager tx.Manager
	num       *numerator.Service
	audit     domain.Auditor
}

// NewService creates the GRN service.
func NewService(repo Repository, stock StockAdjuster, txManager tx.Manager, num *numerator.Service, audit domain.Auditor) *Service {
	return &Service{
		repo:      repo,
		stock:     stock,
		txManager: txManager,
		num:       num,
		audit:     audit,
	}
}

// LineInput is the caller-supplied shape of one received line.
type LineInput struct {
	ItemID id.ID
	Qty    types.Quantity
	Cost   types.Money
}

// CreateInput creates a GRN with its lines.
type CreateInput struct {
	InvoiceNumber string
	Date          *time.Time
	DueDate       *time.Time
	PoNumber      string
	SupplierID    *id.ID
	Discount      types.Money
	Lines         []LineInput
}

// UpdateLineInput edits one line's quantity and unit cost.
type UpdateLineInput struct {
	LineID id.ID
	Qty    types.Quantity
	Cost   types.Money
}

// Create writes the GRN and increments stock for every line, one
// transaction. The GRN number comes from the shared numbering sequence.
func (s *Service) Create(ctx context.Context, in CreateInput) (id.ID, error) {
	now := time.Now().UTC()
	date := now
	if in.Date != nil {
		date = *in.Date
	}

	g := &GRN{
		ID:            id.New(),
		InvoiceNumber: in.InvoiceNumber,
		Date:          date,
		DueDate:       in.DueDate,
		PoNumber:      in.PoNumber,
		SupplierID:    in.SupplierID,
		Discount:      in.Discount,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	number, err := s.num.Next(ctx, "GRN")
	if err != nil {
		return id.Nil(), fmt.Errorf("generate grn number: %w", err)
	}
	g.GrnNumber = number

	lines := make([]*Line, 0, len(in.Lines))
	for i, li := range in.Lines {
		line := &Line{
			ID:     id.New(),
			GrnID:  g.ID,
			ItemID: li.ItemID,
			Qty:    li.Qty,
			Cost:   li.Cost,
		}
		if err := line.Validate(); err != nil {
			return id.Nil(), apperror.NewValidation(err.Error()).WithDetail("line", i)
		}
		lines = append(lines, line)
	}

	g.Recompute(lines)
	if err := g.Validate(ctx); err != nil {
		return id.Nil(), apperror.NewValidation(err.Error())
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateHeader(ctx, g); err != nil {
			return fmt.Errorf("create grn header: %w", err)
		}
		if len(lines) > 0 {
			if err := s.repo.InsertLines(ctx, lines); err != nil {
				return fmt.Errorf("insert grn lines: %w", err)
			}
		}
		for _, line := range lines {
			if err := s.stock.AdjustQty(ctx, line.ItemID, line.Qty); err != nil {
				return fmt.Errorf("increment stock for item %s: %w", line.ItemID, err)
			}
		}
		return nil
	})
	if err != nil {
		return id.Nil(), err
	}

	if s.audit != nil {
		s.audit.Log(ctx, "grn", g.ID, domain.AuditActionCreate, g)
	}
	return g.ID, nil
}

// UpdateLine reconciles one line edit incrementally: the quantity delta
// (newQty - oldQty) moves item stock, and the cost delta
// (newQty x newCost) - (oldQty x oldCost) moves the header cost and total.
func (s *Service) UpdateLine(ctx context.Context, in UpdateLineInput) error {
	if !in.Qty.IsPositive() {
		return apperror.NewValidation("line qty must be positive")
	}
	if in.Cost.IsNegative() {
		return apperror.NewValidation("line cost must not be negative")
	}

	var grnID id.ID
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		line, err := s.repo.GetLine(ctx, in.LineID)
		if err != nil {
			return s.normalizeGetErr(err, "grn line", in.LineID)
		}
		g, err := s.repo.GetByID(ctx, line.GrnID)
		if err != nil {
			return s.normalizeGetErr(err, "grn", line.GrnID)
		}
		grnID = g.ID

		qtyDelta := in.Qty.Sub(line.Qty)
		costDelta := in.Qty.Mul(in.Cost).Sub(line.Qty.Mul(line.Cost))

		line.Qty = in.Qty
		line.Cost = in.Cost
		if err := s.repo.UpdateLine(ctx, line); err != nil {
			return fmt.Errorf("update grn line: %w", err)
		}

		if !qtyDelta.IsZero() {
			if err := s.stock.AdjustQty(ctx, line.ItemID, qtyDelta); err != nil {
				return fmt.Errorf("adjust stock for item %s: %w", line.ItemID, err)
			}
		}

		g.Cost = g.Cost.Add(costDelta)
		g.Total = g.Cost.Sub(g.Discount)
		g.UpdatedAt = time.Now().UTC()
		if err := s.repo.UpdateHeader(ctx, g); err != nil {
			return fmt.Errorf("update grn header: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.audit != nil {
		s.audit.Log(ctx, "grn", grnID, domain.AuditActionUpdate, in)
	}
	return nil
}

// UpdateHeader applies the closed set of editable header fields. A discount
// change recomputes the total from the stored cost.
func (s *Service) UpdateHeader(ctx context.Context, grnID id.ID, upd HeaderUpdate) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		g, err := s.repo.GetByID(ctx, grnID)
		if err != nil {
			return s.normalizeGetErr(err, "grn", grnID)
		}

		if upd.InvoiceNumber != nil {
			g.InvoiceNumber = *upd.InvoiceNumber
		}
		if upd.DueDate != nil {
			g.DueDate = upd.DueDate
		}
		if upd.PoNumber != nil {
			g.PoNumber = *upd.PoNumber
		}
		if upd.Discount != nil {
			if upd.Discount.IsNegative() {
				return apperror.NewValidation("discount must not be negative")
			}
			g.Discount = *upd.Discount
			g.Total = g.Cost.Sub(g.Discount)
		}
		g.UpdatedAt = time.Now().UTC()

		if err := s.repo.UpdateHeader(ctx, g); err != nil {
			return fmt.Errorf("update grn header: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.audit != nil {
		s.audit.Log(ctx, "grn", grnID, domain.AuditActionUpdate, upd)
	}
	return nil
}

// Delete removes a GRN and reverses the stock its lines brought in.
func (s *Service) Delete(ctx context.Context, grnID id.ID) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByID(ctx, grnID); err != nil {
			return s.normalizeGetErr(err, "grn", grnID)
		}
		lines, err := s.repo.ListLines(ctx, grnID)
		if err != nil {
			return fmt.Errorf("read grn lines: %w", err)
		}
		for _, line := range lines {
			if err := s.stock.AdjustQty(ctx, line.ItemID, line.Qty.Neg()); err != nil {
				return fmt.Errorf("reverse stock for item %s: %w", line.ItemID, err)
			}
		}
		return s.repo.DeleteDocument(ctx, grnID)
	})
	if err != nil {
		return err
	}

	if s.audit != nil {
		s.audit.Log(ctx, "grn", grnID, domain.AuditActionDelete, nil)
	}
	return nil
}

// GetByID returns a header with its lines.
func (s *Service) GetByID(ctx context.Context, grnID id.ID) (*GRN, []*Line, error) {
	g, err := s.repo.GetByID(ctx, grnID)
	if err != nil {
		return nil, nil, s.normalizeGetErr(err, "grn", grnID)
	}
	lines, err := s.repo.ListLines(ctx, grnID)
	if err != nil {
		return nil, nil, fmt.Errorf("read grn lines: %w", err)
	}
	return g, lines, nil
}

// List returns GRNs matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*GRN, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) normalizeGetErr(err error, entity string, entityID id.ID) error {
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(entity, entityID.String())
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternal(err).WithDetail("entity", entity).WithDetail("id", entityID.String())
}
