package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/apperror"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/id"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/documents/invoice"
	"github.com/JHRsoftware/jp-stores-sub001/internal/infrastructure/http/v1/dto"
)

// InvoiceHandler handles sale invoices and the hold workflow.
type InvoiceHandler struct {
	*BaseHandler
	service *invoice.Service
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(base *BaseHandler, service *invoice.Service) *InvoiceHandler {
	return &InvoiceHandler{BaseHandler: base, service: service}
}

// Create handles POST /api/invoice. The invoice is written as completed:
// header, lines and stock decrements commit in one transaction.
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	invoiceID, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, invoiceID.String())
}

// Update handles POST /api/invoice/update. The full line set is replaced;
// stock moves by the net difference.
func (h *InvoiceHandler) Update(c *gin.Context) {
	var req dto.UpdateInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Update(c.Request.Context(), in); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c)
}

// List handles GET /api/invoice/list.
func (h *InvoiceHandler) List(c *gin.Context) {
	filter := invoice.DefaultListFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", filter.Limit)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.From = parseDateQuery(c.Query("from"))
	filter.To = parseDateQuery(c.Query("to"))

	invoices, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OKData(c, dto.FromInvoices(invoices))
}

// Get handles GET /api/invoice/:id.
func (h *InvoiceHandler) Get(c *gin.Context) {
	invoiceID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	inv, lines, err := h.service.GetByID(c.Request.Context(), invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OKData(c, dto.FromInvoiceDetail(inv, lines))
}

// CreateHold handles POST /api/invoice/hold. Holds park a sale without
// moving stock or resolving the customer; both happen at conversion.
func (h *InvoiceHandler) CreateHold(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	holdID, err := h.service.CreateHold(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, holdID.String())
}

// ListHolds handles GET /api/invoice/hold/list.
func (h *InvoiceHandler) ListHolds(c *gin.Context) {
	holds, err := h.service.ListHolds(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OKData(c, dto.FromInvoices(holds))
}

// ConvertHold handles POST /api/invoice/hold/convert. Conversion writes the
// completed invoice, decrements stock and deletes the hold atomically; on
// any failure the hold stays intact.
func (h *InvoiceHandler) ConvertHold(c *gin.Context) {
	var req dto.ConvertHoldRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	invoiceID, err := h.service.ConvertHold(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ConvertHoldResponse{Success: true, InvoiceID: invoiceID.String()})
}

// DeleteHold handles DELETE /api/invoice/hold/:id. Discarding a hold has no
// stock effect.
func (h *InvoiceHandler) DeleteHold(c *gin.Context) {
	holdID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.DeleteHold(c.Request.Context(), holdID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c)
}

// parseDateQuery accepts RFC3339 timestamps or plain dates.
func parseDateQuery(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t
	}
	return nil
}
