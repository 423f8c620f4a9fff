// Package customer provides the customer catalog.
// Customers are referenced by invoices; records may be auto-created during
// invoice writes when the caller supplies only a display name.
package customer

import (
	"context"
	"regexp"
	"strings"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/apperror"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/entity"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// CodeUnknown is the code given to the walk-in placeholder customer.
const CodeUnknown = "UNKNOWN"

// AutoCreatedNote marks records created lazily during an invoice write.
const AutoCreatedNote = "auto-created during invoice entry"

// Customer represents a buyer on record.
type Customer struct {
	entity.Catalog

	// Address is the free-text postal address
	Address string `db:"address" json:"address"`

	// Contact is the primary phone number
	Contact string `db:"contact" json:"contact"`

	// Email is the primary contact email
	Email string `db:"email" json:"email,omitempty"`

	// TaxID and VATNo are the customer's registration numbers
	TaxID string `db:"tax_id" json:"taxId,omitempty"`
	VATNo string `db:"vat_no" json:"vatNo,omitempty"`

	// Note is a free-form comment; auto-created records carry AutoCreatedNote
	Note string `db:"note" json:"note,omitempty"`
}

// New creates a new Customer with required fields.
func New(code, name string) *Customer {
	return &Customer{
		Catalog: entity.NewCatalog(code, name),
	}
}

// NewAutoCreated builds the record the invoice path writes when no existing
// customer matches. The "unknown" name maps to the fixed UNKNOWN code so the
// walk-in placeholder is recognizable; anything else gets the generated code.
func NewAutoCreated(name, generatedCode string) *Customer {
	code := generatedCode
	if strings.EqualFold(name, "unknown") {
		code = CodeUnknown
	}
	c := New(code, name)
	c.Note = AutoCreatedNote
	return c
}

// Validate implements entity.Validatable.
func (c *Customer) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if c.Email != "" && !emailRE.MatchString(c.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	return nil
}

// IsAutoCreated reports whether the record came from the invoice write path.
func (c *Customer) IsAutoCreated() bool {
	return c.Note == AutoCreatedNote
}
