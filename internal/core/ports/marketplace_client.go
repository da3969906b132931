package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// Exchange captures the raw request and response of one external call, in
// the exact form the wire saw them. Clients return it alongside their result
// so every call can be written to the audit log verbatim, success or failure.
type Exchange struct {
	RequestPayload string
	ResponseBody   string
	StatusCode     int
}

// StateClass classifies a marketplace order state for the acceptance
// confirmation loop.
type StateClass int

const (
	// StatePending means the marketplace has not finished processing the
	// acceptance yet; the poll may be retried.
	StatePending StateClass = iota

	// StateAccepted means the order reached a post-acceptance state such as
	// awaiting payment or ready to ship.
	StateAccepted

	// StateCancelled means the marketplace cancelled the order. A terminal
	// outcome, recorded on the ledger without escalation.
	StateCancelled
)

// OrderState is the marketplace's view of an order: the raw state string as
// reported and its classification.
type OrderState struct {
	Raw   string
	Class StateClass
}

// MarketplaceClient is the engine's contract with the order marketplace.
// Every method performs exactly one HTTP call with a bounded timeout and
// returns the Exchange for auditing even when the call fails.
type MarketplaceClient interface {
	// AcceptOrder confirms all order lines of the order with the
	// marketplace.
	AcceptOrder(ctx context.Context, ord *order.Order) (Exchange, error)

	// GetOrderState fetches the marketplace's current state of the order.
	GetOrderState(ctx context.Context, orderID string) (OrderState, Exchange, error)

	// SetTracking submits the carrier code and tracking identifier.
	SetTracking(ctx context.Context, orderID, trackingPin string) (Exchange, error)

	// MarkShipped confirms shipment of the whole order.
	MarkShipped(ctx context.Context, orderID string) (Exchange, error)
}
