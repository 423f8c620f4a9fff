package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/appctx"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/apperror"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/auth"
)

// TokenValidator verifies a bearer token and returns its claims.
type TokenValidator interface {
	VerifyToken(token string) (*auth.Claims, error)
}

// Auth middleware validates JWT tokens and populates user context.
func Auth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		claims, err := validator.VerifyToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		user := &appctx.UserContext{
			UserID:      claims.Subject,
			Username:    claims.Username,
			DisplayName: claims.DisplayName,
			AccessPages: claims.AccessPages,
		}

		ctx := appctx.WithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)

		c.Set("username", user.Username)
		c.Set("access_pages", user.AccessPages)

		c.Next()
	}
}

// RequirePage middleware checks the operator's page grants. The "admin"
// grant implies access to every page.
func RequirePage(page string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := appctx.GetUser(c.Request.Context())
		if user == nil {
			abortUnauthorized(c, "authentication required")
			return
		}

		for _, granted := range user.AccessPages {
			if granted == page || granted == "admin" {
				c.Next()
				return
			}
		}

		_ = c.Error(
			apperror.NewForbidden("page access denied").
				WithDetail("page", page),
		)
		c.Abort()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	_ = c.Error(apperror.NewUnauthorized(message))
	c.Abort()
}
