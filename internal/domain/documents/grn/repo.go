package grn

import (
	"context"
	"time"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/id"
)

// ListFilter narrows GRN list queries.
type ListFilter struct {
	SupplierID *id.ID
	Search     string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// DefaultListFilter returns the default paging for GRN lists.
func DefaultListFilter() ListFilter {
	return ListFilter{Limit: 50}
}

// Repository persists GRN headers and lines. Write methods join the caller's
// transaction through the context.
type Repository interface {
	CreateHeader(ctx context.Context, g *GRN) error
	UpdateHeader(ctx context.Context, g *GRN) error
	GetByID(ctx context.Context, grnID id.ID) (*GRN, error)
	List(ctx context.Context, filter ListFilter) ([]*GRN, error)
	DeleteDocument(ctx context.Context, grnID id.ID) error

	ListLines(ctx context.Context, grnID id.ID) ([]*Line, error)
	GetLine(ctx context.Context, lineID id.ID) (*Line, error)
	InsertLines(ctx context.Context, lines []*Line) error
	UpdateLine(ctx context.Context, line *Line) error
}
