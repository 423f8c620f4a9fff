// Package supplier provides the supplier catalog referenced by GRNs.
package supplier

import (
	"context"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/entity"
)

// Supplier represents a goods supplier.
type Supplier struct {
	entity.Catalog

	Address string `db:"address" json:"address,omitempty"`
	Contact string `db:"contact" json:"contact,omitempty"`
	Email   string `db:"email" json:"email,omitempty"`
	Note    string `db:"note" json:"note,omitempty"`
}

// New creates a new Supplier.
func New(code, name string) *Supplier {
	return &Supplier{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable.
func (s *Supplier) Validate(ctx context.Context) error {
	return s.Catalog.Validate(ctx)
}
