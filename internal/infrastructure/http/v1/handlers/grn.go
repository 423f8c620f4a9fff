package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/apperror"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/id"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/documents/grn"
	"github.com/JHRsoftware/jp-stores-sub001/internal/infrastructure/http/v1/dto"
)

// GrnHandler handles goods received notes.
type GrnHandler struct {
	*BaseHandler
	service *grn.Service
}

// NewGrnHandler creates a new GRN handler.
func NewGrnHandler(base *BaseHandler, service *grn.Service) *GrnHandler {
	return &GrnHandler{BaseHandler: base, service: service}
}

// Create handles POST /api/grn. Every line increments item stock; header
// cost and total are computed from the lines.
func (h *GrnHandler) Create(c *gin.Context) {
	var req dto.CreateGrnRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	grnID, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, grnID.String())
}

// UpdateLine handles PUT /api/grn/line. Stock and header cost move by the
// difference against the stored line, not by re-posting the document.
func (h *GrnHandler) UpdateLine(c *gin.Context) {
	var req dto.UpdateGrnLineRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.UpdateLine(c.Request.Context(), in); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c)
}

// UpdateHeader handles PUT /api/grn/:id.
func (h *GrnHandler) UpdateHeader(c *gin.Context) {
	grnID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateGrnHeaderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.UpdateHeader(c.Request.Context(), grnID, req.ToUpdate()); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c)
}

// List handles GET /api/grn/list.
func (h *GrnHandler) List(c *gin.Context) {
	filter := grn.DefaultListFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", filter.Limit)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.From = parseDateQuery(c.Query("from"))
	filter.To = parseDateQuery(c.Query("to"))

	if supplierID := c.Query("supplierId"); supplierID != "" {
		parsed, err := id.Parse(supplierID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid supplierId format"))
			return
		}
		filter.SupplierID = &parsed
	}

	grns, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OKData(c, dto.FromGrns(grns))
}

// Get handles GET /api/grn/:id.
func (h *GrnHandler) Get(c *gin.Context) {
	grnID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	g, lines, err := h.service.GetByID(c.Request.Context(), grnID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OKData(c, dto.FromGrnDetail(g, lines))
}

// Delete handles DELETE /api/grn/:id. Received stock is reversed.
func (h *GrnHandler) Delete(c *gin.Context) {
	grnID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), grnID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c)
}
