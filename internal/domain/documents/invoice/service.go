package invoice

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/apperror"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/id"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/tx"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/types"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/catalogs/customer"
	"github.com/JHRsoftware/jp-stores-sub001/pkg/logger"
	"github.com/JHRsoftware/jp-stores-sub001/pkg/numerator"
)

// CustomerDirectory is the slice of the customer service the resolver needs.
type CustomerDirectory interface {
	FindByNameOrCode(ctx context.Context, value string) (*customer.Customer, error)
	CreateDirect(ctx context.Context, c *customer.Customer) error
}

// StockAdjuster applies a signed quantity delta to an item. Decrements are
// floor-clamped at zero by the implementation. Must join the caller's
// transaction through the context.
type StockAdjuster interface {
	AdjustQty(ctx context.Context, itemID id.ID, delta types.Quantity) error
}

// Service orchestrates the invoice mutation workflow: resolve customer,
// write header, reconcile lines, adjust stock, all inside one transaction.
type Service struct {
	repo      Repository
	stock     StockAdjuster
	customers CustomerDirectory
	txManager tx.Manager
	num       *numerator.Service
	audit     domain.Auditor
}

// NewService creates the invoice service.
func NewService(
	repo Repository,
	stock StockAdjuster,
	customers CustomerDirectory,
	txManager tx.Manager,
	num *numerator.Service,
	audit domain.Auditor,
) *Service {
	return &Service{
		repo:      repo,
		stock:     stock,
		customers: customers,
		txManager: txManager,
		num:       num,
		audit:     audit,
	}
}

// HeaderInput is the caller-supplied shape of the invoice header.
type HeaderInput struct {
	InvoiceNumber string
	DateTime      *time.Time
	CustomerID    *id.ID
	CustomerName  string
	NetTotal      types.Money
	TotalDiscount types.Money
	TotalCost     types.Money
	TotalProfit   types.Money
	CashPayment   types.Money
	CardPayment   types.Money
	CardInfo      string
	UserName      string
}

// CreateInput creates a new invoice or hold.
type CreateInput struct {
	Header HeaderInput
	Lines  []LineInput
}

// UpdateInput replaces an existing invoice's header and full line set.
type UpdateInput struct {
	InvoiceID id.ID
	Header    HeaderInput
	Lines     []LineInput
}

// ConvertInput finalizes a hold into a completed invoice. Empty fields fall
// back to the hold's stored values.
type ConvertInput struct {
	HoldID        id.ID
	InvoiceNumber string
	CustomerName  string
	UserName      string
}

// resolveCustomer returns a customer id usable as a foreign key, or nil.
//
// An explicit id is used as-is with no existence check. Otherwise the name is
// matched exactly (case-sensitive) against customer name or code; a miss
// auto-creates the customer with a timestamp-derived code. Any lookup or
// create error is logged and swallowed, the invoice proceeds without a
// customer link. Two concurrent writes naming the same new customer may both
// create one; that race is accepted, not coordinated.
func (s *Service) resolveCustomer(ctx context.Context, explicitID *id.ID, name string) *id.ID {
	if explicitID != nil {
		return explicitID
	}
	if name == "" {
		return nil
	}

	found, err := s.customers.FindByNameOrCode(ctx, name)
	if err == nil {
		return &found.ID
	}
	if !apperror.IsNotFound(err) {
		logger.Warn(ctx, "customer lookup failed, proceeding without customer", "name", name, "error", err)
		return nil
	}

	generated := "CUS-" + strconv.FormatInt(time.Now().UnixMilli(), 10)
	created := customer.NewAutoCreated(name, generated)
	if err := s.customers.CreateDirect(ctx, created); err != nil {
		logger.Warn(ctx, "customer auto-create failed, proceeding without customer", "name", name, "error", err)
		return nil
	}
	return &created.ID
}

func (s *Service) buildHeader(in HeaderInput, status Status) *Invoice {
	now := time.Now().UTC()
	dateTime := now
	if in.DateTime != nil {
		dateTime = *in.DateTime
	}
	return &Invoice{
		ID:            id.New(),
		InvoiceNumber: in.InvoiceNumber,
		DateTime:      dateTime,
		CustomerID:    in.CustomerID,
		CustomerName:  in.CustomerName,
		NetTotal:      in.NetTotal,
		TotalDiscount: in.TotalDiscount,
		TotalCost:     in.TotalCost,
		TotalProfit:   in.TotalProfit,
		CashPayment:   in.CashPayment,
		CardPayment:   in.CardPayment,
		CardInfo:      in.CardInfo,
		UserName:      in.UserName,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (s *Service) ensureNumber(ctx context.Context, inv *Invoice) error {
	if inv.InvoiceNumber != "" {
		return nil
	}
	number, err := s.num.Next(ctx, "INV")
	if err != nil {
		return fmt.Errorf("generate invoice number: %w", err)
	}
	inv.InvoiceNumber = number
	return nil
}

// writeLines inserts the built lines and decrements stock for every line
// linked to an item. Runs inside the caller's transaction.
func (s *Service) writeLines(ctx context.Context, invoiceID id.ID, inputs []LineInput, moveStock bool) error {
	if len(inputs) == 0 {
		return nil
	}
	lines := make([]*Line, 0, len(inputs))
	for _, in := range inputs {
		lines = append(lines, BuildLine(invoiceID, in))
	}
	if err := s.repo.InsertLines(ctx, lines); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}
	if !moveStock {
		return nil
	}
	for _, line := range lines {
		if line.ItemID == nil {
			continue
		}
		if err := s.stock.AdjustQty(ctx, *line.ItemID, line.Qty.Neg()); err != nil {
			return fmt.Errorf("decrement stock for item %s: %w", line.ItemID, err)
		}
	}
	return nil
}

// restoreLines returns stock held by the invoice's current lines and deletes
// them. Runs inside the caller's transaction.
func (s *Service) restoreLines(ctx context.Context, invoiceID id.ID, moveStock bool) error {
	current, err := s.repo.ListLines(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("read current lines: %w", err)
	}
	if moveStock {
		for _, line := range current {
			if line.ItemID == nil {
				continue
			}
			if err := s.stock.AdjustQty(ctx, *line.ItemID, line.Qty); err != nil {
				return fmt.Errorf("restore stock for item %s: %w", line.ItemID, err)
			}
		}
	}
	if err := s.repo.DeleteLines(ctx, invoiceID); err != nil {
		return fmt.Errorf("delete lines: %w", err)
	}
	return nil
}

// Create writes a completed invoice: resolved customer, header, lines, stock
// decrements, one transaction.
func (s *Service) Create(ctx context.Context, in CreateInput) (id.ID, error) {
	inv := s.buildHeader(in.Header, StatusCompleted)
	if err := s.ensureNumber(ctx, inv); err != nil {
		return id.Nil(), err
	}
	if err := inv.Validate(ctx); err != nil {
		return id.Nil(), apperror.NewValidation(err.Error())
	}

	inv.CustomerID = s.resolveCustomer(ctx, in.Header.CustomerID, in.Header.CustomerName)

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateHeader(ctx, inv); err != nil {
			return fmt.Errorf("create invoice header: %w", err)
		}
		return s.writeLines(ctx, inv.ID, in.Lines, true)
	})
	if err != nil {
		return id.Nil(), err
	}

	if s.audit != nil {
		s.audit.Log(ctx, "invoice", inv.ID, domain.AuditActionCreate, inv)
	}
	return inv.ID, nil
}

// CreateHold stages a hold: header and lines only, stock untouched until
// conversion. Customer resolution is deferred to conversion as well.
func (s *Service) CreateHold(ctx context.Context, in CreateInput) (id.ID, error) {
	inv := s.buildHeader(in.Header, StatusHold)
	if err := s.ensureNumber(ctx, inv); err != nil {
		return id.Nil(), err
	}
	if err := inv.Validate(ctx); err != nil {
		return id.Nil(), apperror.NewValidation(err.Error())
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateHeader(ctx, inv); err != nil {
			return fmt.Errorf("create hold header: %w", err)
		}
		return s.writeLines(ctx, inv.ID, in.Lines, false)
	})
	if err != nil {
		return id.Nil(), err
	}

	if s.audit != nil {
		s.audit.Log(ctx, "hold", inv.ID, domain.AuditActionCreate, inv)
	}
	return inv.ID, nil
}

// Update makes the stored invoice match the caller's state exactly: stock
// held by the old lines is restored, the old lines are deleted, the new set
// is inserted and deducted. Net stock change per item is the difference of
// new and old quantities.
func (s *Service) Update(ctx context.Context, in UpdateInput) error {
	existing, err := s.repo.GetByID(ctx, in.InvoiceID)
	if err != nil {
		return s.normalizeGetErr(err, in.InvoiceID)
	}

	moveStock := !existing.IsHold()
	custID := s.resolveCustomer(ctx, in.Header.CustomerID, in.Header.CustomerName)

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.restoreLines(ctx, existing.ID, moveStock); err != nil {
			return err
		}

		existing.InvoiceNumber = in.Header.InvoiceNumber
		if in.Header.DateTime != nil {
			existing.DateTime = *in.Header.DateTime
		}
		existing.CustomerID = custID
		existing.CustomerName = in.Header.CustomerName
		existing.NetTotal = in.Header.NetTotal
		existing.TotalDiscount = in.Header.TotalDiscount
		existing.TotalCost = in.Header.TotalCost
		existing.TotalProfit = in.Header.TotalProfit
		existing.CashPayment = in.Header.CashPayment
		existing.CardPayment = in.Header.CardPayment
		existing.CardInfo = in.Header.CardInfo
		existing.UserName = in.Header.UserName
		existing.UpdatedAt = time.Now().UTC()

		if err := existing.Validate(ctx); err != nil {
			return apperror.NewValidation(err.Error())
		}
		if err := s.repo.UpdateHeader(ctx, existing); err != nil {
			return fmt.Errorf("update invoice header: %w", err)
		}

		return s.writeLines(ctx, existing.ID, in.Lines, moveStock)
	})
	if err != nil {
		return err
	}

	if s.audit != nil {
		s.audit.Log(ctx, "invoice", existing.ID, domain.AuditActionUpdate, existing)
	}
	return nil
}

// ConvertHold atomically turns a staged hold into a completed invoice:
// resolve customer, insert the new header and copied lines, decrement stock
// per line, delete the hold. Any failure rolls the whole conversion back and
// leaves the hold intact for retry.
func (s *Service) ConvertHold(ctx context.Context, in ConvertInput) (id.ID, error) {
	hold, err := s.repo.GetByID(ctx, in.HoldID)
	if err != nil {
		return id.Nil(), s.normalizeGetErr(err, in.HoldID)
	}
	if !hold.IsHold() {
		return id.Nil(), apperror.NewBusinessRule(apperror.CodeHoldConsumed, "hold has already been converted")
	}

	number := in.InvoiceNumber
	if number == "" {
		number = hold.InvoiceNumber
	}
	customerName := in.CustomerName
	if customerName == "" {
		customerName = hold.CustomerName
	}
	userName := in.UserName
	if userName == "" {
		userName = hold.UserName
	}

	custID := hold.CustomerID
	if custID == nil {
		custID = s.resolveCustomer(ctx, nil, customerName)
	}

	now := time.Now().UTC()
	converted := &Invoice{
		ID:            id.New(),
		InvoiceNumber: number,
		DateTime:      now,
		CustomerID:    custID,
		CustomerName:  customerName,
		NetTotal:      hold.NetTotal,
		TotalDiscount: hold.TotalDiscount,
		TotalCost:     hold.TotalCost,
		TotalProfit:   hold.TotalProfit,
		CashPayment:   hold.CashPayment,
		CardPayment:   hold.CardPayment,
		CardInfo:      hold.CardInfo,
		UserName:      userName,
		Status:        StatusCompleted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.ensureNumber(ctx, converted); err != nil {
		return id.Nil(), err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		holdLines, err := s.repo.ListLines(ctx, hold.ID)
		if err != nil {
			return fmt.Errorf("read hold lines: %w", err)
		}

		if err := s.repo.CreateHeader(ctx, converted); err != nil {
			return fmt.Errorf("create converted header: %w", err)
		}

		copied := make([]*Line, 0, len(holdLines))
		for _, line := range holdLines {
			dup := *line
			dup.ID = id.New()
			dup.InvoiceID = converted.ID
			copied = append(copied, &dup)
		}
		if len(copied) > 0 {
			if err := s.repo.InsertLines(ctx, copied); err != nil {
				return fmt.Errorf("copy hold lines: %w", err)
			}
		}

		for _, line := range copied {
			if line.ItemID == nil {
				continue
			}
			if err := s.stock.AdjustQty(ctx, *line.ItemID, line.Qty.Neg()); err != nil {
				return fmt.Errorf("decrement stock for item %s: %w", line.ItemID, err)
			}
		}

		if err := s.repo.DeleteDocument(ctx, hold.ID); err != nil {
			return fmt.Errorf("delete hold: %w", err)
		}
		return nil
	})
	if err != nil {
		return id.Nil(), err
	}

	if s.audit != nil {
		s.audit.Log(ctx, "invoice", converted.ID, domain.AuditActionConvert, map[string]any{
			"hold_id":        hold.ID,
			"invoice_number": converted.InvoiceNumber,
		})
	}
	return converted.ID, nil
}

// DeleteHold discards a staged hold. Stock is untouched, a hold never held
// any.
func (s *Service) DeleteHold(ctx context.Context, holdID id.ID) error {
	hold, err := s.repo.GetByID(ctx, holdID)
	if err != nil {
		return s.normalizeGetErr(err, holdID)
	}
	if !hold.IsHold() {
		return apperror.NewValidation("only holds can be discarded")
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.DeleteDocument(ctx, holdID)
	})
	if err != nil {
		return err
	}

	if s.audit != nil {
		s.audit.Log(ctx, "hold", holdID, domain.AuditActionDelete, nil)
	}
	return nil
}

// GetByID returns a header with its lines.
func (s *Service) GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, []*Line, error) {
	inv, err := s.repo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, nil, s.normalizeGetErr(err, invoiceID)
	}
	lines, err := s.repo.ListLines(ctx, invoiceID)
	if err != nil {
		return nil, nil, fmt.Errorf("read invoice lines: %w", err)
	}
	return inv, lines, nil
}

// List returns completed invoices matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Invoice, error) {
	if filter.Status == "" {
		filter.Status = StatusCompleted
	}
	return s.repo.List(ctx, filter)
}

// ListHolds returns all staged holds.
func (s *Service) ListHolds(ctx context.Context) ([]*Invoice, error) {
	filter := DefaultListFilter()
	filter.Status = StatusHold
	return s.repo.List(ctx, filter)
}

func (s *Service) normalizeGetErr(err error, invoiceID id.ID) error {
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound("invoice", invoiceID.String())
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternal(err).WithDetail("invoice_id", invoiceID.String())
}
