package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/apperror"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/id"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/catalogs/item"
	"github.com/JHRsoftware/jp-stores-sub001/internal/infrastructure/http/v1/dto"
)

// ItemHandler handles products and their price history.
type ItemHandler struct {
	*BaseHandler
	service *item.Service
}

// NewItemHandler creates a new item handler.
func NewItemHandler(base *BaseHandler, service *item.Service) *ItemHandler {
	return &ItemHandler{BaseHandler: base, service: service}
}

// Get handles GET /api/products/item. With a barcode query it returns the
// single matching item; otherwise a paged list.
func (h *ItemHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	if barcode := c.Query("barcode"); barcode != "" {
		it, err := h.service.FindByBarcode(ctx, barcode)
		if err != nil {
			h.Error(c, err)
			return
		}
		h.OKData(c, it)
		return
	}

	filter := domain.DefaultListFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "name")

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Success:    true,
		Data:       result.Items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// GetByID handles GET /api/products/item/:id.
func (h *ItemHandler) GetByID(c *gin.Context) {
	itemID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	it, err := h.service.GetByID(c.Request.Context(), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OKData(c, it)
}

// Create handles POST /api/products/item. A duplicate barcode is rejected
// with an error naming the existing item. An inline price row commits in the
// same transaction as the item.
func (h *ItemHandler) Create(c *gin.Context) {
	var req dto.CreateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	it := req.ToEntity()

	var price *item.PriceRow
	if req.Price != nil {
		price = req.Price.InlineRow()
		if price.Username == "" {
			price.Username = h.Username(c)
		}
	}

	if err := h.service.CreateWithPrice(c.Request.Context(), it, price); err != nil {
		h.Error(c, err)
		return
	}

	h.CreatedData(c, it)
}

// Update handles PUT /api/products/item. A missing id is a 404.
func (h *ItemHandler) Update(c *gin.Context) {
	var req dto.UpdateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	itemID, err := id.Parse(req.ID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format").WithDetail("field", "id"))
		return
	}

	it, err := h.service.GetByID(c.Request.Context(), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(it)

	if err := h.service.Update(c.Request.Context(), it); err != nil {
		h.Error(c, err)
		return
	}

	h.OKData(c, it)
}

// Delete handles DELETE /api/products/item/:id. Items referenced by
// documents are refused, not cascaded.
func (h *ItemHandler) Delete(c *gin.Context) {
	itemID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), itemID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c)
}

// --- Price history ---

// GetPrices handles GET /api/products/price. Requires an itemId query;
// current=true returns only the newest row.
func (h *ItemHandler) GetPrices(c *gin.Context) {
	itemID, err := id.Parse(c.Query("itemId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("itemId query parameter is required"))
		return
	}

	ctx := c.Request.Context()

	if c.Query("current") == "true" {
		row, err := h.service.CurrentPrice(ctx, itemID)
		if err != nil {
			h.Error(c, err)
			return
		}
		h.OKData(c, row)
		return
	}

	rows, err := h.service.PriceHistory(ctx, itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OKData(c, rows)
}

// SavePrice handles POST /api/products/price. Without an id the row is
// inserted; with one it is updated.
func (h *ItemHandler) SavePrice(c *gin.Context) {
	var req dto.PriceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	row, err := req.ToRow()
	if err != nil {
		h.Error(c, err)
		return
	}
	if row.Username == "" {
		row.Username = h.Username(c)
	}

	if err := h.service.SavePrice(c.Request.Context(), row); err != nil {
		h.Error(c, err)
		return
	}

	if req.HasID() {
		h.OKData(c, row)
		return
	}
	h.CreatedData(c, row)
}

// DeletePrice handles DELETE /api/products/price. The row id comes from the
// id query parameter.
func (h *ItemHandler) DeletePrice(c *gin.Context) {
	rowID, err := id.Parse(c.Query("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("id query parameter is required"))
		return
	}

	if err := h.service.DeletePrice(c.Request.Context(), rowID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c)
}
