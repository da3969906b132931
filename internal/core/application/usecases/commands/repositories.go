// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
//
// The stage handlers in this package share one processing discipline: work
// is selected by the order's current ledger status, every external call is
// audited regardless of outcome, and a terminal outcome (ledger event plus
// failure record plus shipment update) commits in a single transaction.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository and status
	// ledger within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ShipmentRepoFactory provides access to shipment claims within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// FailureSinkFactory provides access to the failure escalation sink
	// within a transaction, so a failure record commits atomically with the
	// ledger event that marks the order failed.
	FailureSinkFactory interface {
		FailureSink() ports.FailureSink
	}

	// OrderUoW manages transactions for handlers that touch only the ledger
	// and the failure sink.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		FailureSinkFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ShippingUoW manages transactions across the ledger, shipment claims
	// and the failure sink. Used by the label and tracking stages and by the
	// operator release flow.
	ShippingUoW interface {
		TxManager
		OrderRepoFactory
		ShipmentRepoFactory
		FailureSinkFactory
	}

	// ShippingUoWFactory creates new shipping unit of work instances.
	ShippingUoWFactory interface {
		Create() ShippingUoW
	}
)
