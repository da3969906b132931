// Package auditrepo persists the external call audit trail. Records are
// written on the root connection, never inside the caller's transaction:
// an audit entry for a call that happened must survive even when the
// surrounding unit of work rolls back.
package auditrepo

import (
	"context"

	"fulfillment/internal/core/domain/model/audit"

	"gorm.io/gorm"
)

// GormAuditLog implements AuditLog using GORM.
type GormAuditLog struct {
	db *gorm.DB
}

// NewGormAuditLog creates a new GORM audit log.
func NewGormAuditLog(db *gorm.DB) *GormAuditLog {
	return &GormAuditLog{db: db}
}

// Record appends one API call entry. Append-only, no updates.
func (l *GormAuditLog) Record(ctx context.Context, call audit.APICall) error {
	dto := fromDomain(call)
	return l.db.WithContext(ctx).Create(&dto).Error
}
