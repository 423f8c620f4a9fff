// Package entity provides base types shared by catalogs and documents.
package entity

import (
	"context"
	"time"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/apperror"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// Base contains common fields for all persisted entities.
type Base struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewBase creates a new Base with generated ID.
func NewBase() Base {
	now := time.Now().UTC()
	return Base{
		ID:        id.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Catalog is the base type for reference data: customers, items, suppliers.
type Catalog struct {
	Base

	// Code is a human-readable unique identifier
	Code string `db:"code" json:"code"`

	// Name is the display name
	Name string `db:"name" json:"name"`

	// DeletionMark indicates a soft-deleted record
	DeletionMark bool `db:"deletion_mark" json:"deletionMark"`
}

// NewCatalog creates a new Catalog with generated ID.
func NewCatalog(code, name string) Catalog {
	return Catalog{
		Base: NewBase(),
		Code: code,
		Name: name,
	}
}

// Validate implements Validatable.
func (c *Catalog) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	// Code can be auto-generated, so it is optional at creation.
	return nil
}

// MarkDeleted sets the deletion mark.
func (c *Catalog) MarkDeleted() {
	c.DeletionMark = true
}
