package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for orders and their
// append-only status ledger. The ledger exposes no update or delete
// operations; that absence is the core invariant enabling safe concurrent
// re-runs of the engine.
type OrderRepository interface {
	// Add persists a new order. This is the ingestion boundary: the engine
	// itself never creates orders.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its marketplace identifier.
	Get(ctx context.Context, id string) (*order.Order, error)

	// AppendStatus inserts one immutable ledger event for the order.
	// Fails only on storage errors.
	AppendStatus(ctx context.Context, orderID string, status order.Status, note string) error

	// CurrentStatus derives the order's current status: the event with the
	// latest timestamp, ties broken by insertion order.
	CurrentStatus(ctx context.Context, orderID string) (order.Status, error)

	// History returns the full ledger for an order, oldest first.
	History(ctx context.Context, orderID string) ([]order.StatusEvent, error)

	// SelectByCurrentStatus retrieves all orders whose latest ledger event
	// carries the given status. This predicate is what makes each stage
	// idempotent: an order that has moved on is never selected again.
	SelectByCurrentStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// SelectShippable retrieves orders whose current status is Accepted and
	// which have no shipment claim yet.
	SelectShippable(ctx context.Context) ([]*order.Order, error)
}
