package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/auth"
	"github.com/JHRsoftware/jp-stores-sub001/internal/infrastructure/http/v1/dto"
)

// AuthHandler handles login and account management.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service) *AuthHandler {
	return &AuthHandler{BaseHandler: base, service: service}
}

// Login handles POST /api/login.
// Failed attempts count against the client IP + username pair; five
// failures lock the pair out for fifteen minutes (429).
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Login(c.Request.Context(), c.ClientIP(), req.Username, req.Password)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromLoginResult(result))
}

// CreateUser handles POST /api/users.
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), auth.CreateUserInput{
		Username:    req.Username,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		AccessPages: req.AccessPages,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.CreatedData(c, dto.FromUser(user))
}

// ListUsers handles GET /api/users.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	out := make([]dto.UserResponse, len(users))
	for i, u := range users {
		out[i] = dto.FromUser(u)
	}
	h.OKData(c, out)
}
