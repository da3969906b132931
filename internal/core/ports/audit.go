package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/audit"
)

// AuditLog records every external call regardless of outcome. Writes happen
// outside any unit of work: an audit entry must survive even when the
// surrounding business transaction rolls back.
type AuditLog interface {
	Record(ctx context.Context, call audit.APICall) error
}

// FailureSink records unrecoverable errors for manual review. The records
// are consumed by an external notification surface; the engine only writes.
type FailureSink interface {
	Escalate(ctx context.Context, failure audit.Failure) error
}
