package domain

import (
	"context"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/id"
)

// AuditAction represents the type of audited operation.
type AuditAction string

const (
	AuditActionCreate  AuditAction = "create"
	AuditActionUpdate  AuditAction = "update"
	AuditActionDelete  AuditAction = "delete"
	AuditActionConvert AuditAction = "convert"
)

// Auditor records document and catalog mutations. Implementations are
// best-effort: Log never returns an error and must not fail the caller.
type Auditor interface {
	Log(ctx context.Context, entityType string, entityID id.ID, action AuditAction, changes any)
}
