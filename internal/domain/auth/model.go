// Package auth implements login, JWT session tokens, and the keyed login
// attempt limiter.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/id"
)

// User is an operator account. AccessPages lists the front-end pages the
// user may open; "*" grants everything.
type User struct {
	ID           id.ID     `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	DisplayName  string    `db:"display_name"`
	AccessPages  []string  `db:"access_pages"`
	Active       bool      `db:"active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Validate implements entity.Validatable.
func (u *User) Validate(_ context.Context) error {
	if u.Username == "" {
		return errors.New("username is required")
	}
	if u.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	return nil
}
