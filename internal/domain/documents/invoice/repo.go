package invoice

import (
	"context"
	"time"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/id"
)

// ListFilter narrows invoice list queries.
type ListFilter struct {
	Status Status
	Search string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// DefaultListFilter returns the default paging for invoice lists.
func DefaultListFilter() ListFilter {
	return ListFilter{Limit: 50}
}

// Repository persists invoice headers and lines. Write methods must run
// inside the caller's transaction; they join it through the context.
type Repository interface {
	CreateHeader(ctx context.Context, inv *Invoice) error
	UpdateHeader(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error)
	List(ctx context.Context, filter ListFilter) ([]*Invoice, error)

	// DeleteDocument removes the header and all its lines.
	DeleteDocument(ctx context.Context, invoiceID id.ID) error

	ListLines(ctx context.Context, invoiceID id.ID) ([]*Line, error)
	InsertLines(ctx context.Context, lines []*Line) error
	DeleteLines(ctx context.Context, invoiceID id.ID) error
}
