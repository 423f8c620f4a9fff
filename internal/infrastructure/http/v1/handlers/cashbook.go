package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/cashbook"
	"github.com/JHRsoftware/jp-stores-sub001/internal/infrastructure/http/v1/dto"
)

// CashbookHandler handles the cash/bank ledger.
type CashbookHandler struct {
	*BaseHandler
	service *cashbook.Service
}

// NewCashbookHandler creates a new cashbook handler.
func NewCashbookHandler(base *BaseHandler, service *cashbook.Service) *CashbookHandler {
	return &CashbookHandler{BaseHandler: base, service: service}
}

// Add handles POST /api/cashbook.
func (h *CashbookHandler) Add(c *gin.Context) {
	var req dto.CashbookEntryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in := req.ToInput()
	if in.UserName == "" {
		in.UserName = h.Username(c)
	}

	entry, err := h.service.Add(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.CreatedData(c, dto.FromCashbookEntry(entry))
}

// List handles GET /api/cashbook. The response carries running totals
// alongside the rows; both come from the same read so they agree.
func (h *CashbookHandler) List(c *gin.Context) {
	filter := cashbook.DefaultListFilter()
	filter.Limit = h.ParseIntQuery(c, "limit", filter.Limit)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)

	entries, totals, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromCashbook(entries, totals))
}
