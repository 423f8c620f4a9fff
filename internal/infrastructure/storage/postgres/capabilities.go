package postgres

import (
	"context"
	"fmt"

	"github.com/JHRsoftware/jp-stores-sub001/pkg/logger"
)

// Capabilities records optional schema features detected once at startup.
// Repos consult this instead of probing per request: statement shape is
// decided by a startup check, never by catching a failed INSERT.
type Capabilities struct {
	// InvoiceCustomerName reports whether invoices carries the denormalized
	// customer_name column. Older deployments predate the column.
	InvoiceCustomerName bool
}

// DetectCapabilities probes information_schema for optional columns.
func DetectCapabilities(ctx context.Context, pool *Pool) (Capabilities, error) {
	var caps Capabilities

	const q = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.columns
			WHERE table_name = $1 AND column_name = $2
		)
	`

	if err := pool.QueryRow(ctx, q, "invoices", "customer_name").Scan(&caps.InvoiceCustomerName); err != nil {
		return caps, fmt.Errorf("detect invoices.customer_name: %w", err)
	}

	logger.Info(ctx, "schema capabilities detected",
		"invoice_customer_name", caps.InvoiceCustomerName,
	)

	return caps, nil
}
