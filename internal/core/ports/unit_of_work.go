package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each operation.
// This ensures proper isolation between concurrent invocations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Stage engines use
// it to commit a terminal outcome atomically: the ledger event and its
// companion writes (failure record, shipment update) land together or not
// at all. Client code must explicitly manage the transaction lifecycle.
//
// The audit log is deliberately not part of the unit of work: audit entries
// are written immediately, outside any transaction.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current
	// transaction when one is active.
	OrderRepository() OrderRepository

	// ShipmentRepository returns a ShipmentRepository bound to the current
	// transaction when one is active.
	ShipmentRepository() ShipmentRepository

	// FailureSink returns a FailureSink bound to the current transaction
	// when one is active.
	FailureSink() FailureSink
}
