package ports

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/shipment"
)

// ErrOrderAlreadyClaimed is returned by Claim when the storage-level
// uniqueness constraint on order_id rejects the insert: another invocation
// holds the claim. The caller skips the order; this is the duplicate-label
// prevention mechanism, not an error to escalate.
var ErrOrderAlreadyClaimed = errors.New("order already claimed by another shipment")

// ShipmentRepository defines the persistence contract for shipment claims.
type ShipmentRepository interface {
	// Claim inserts the shipment row, atomically claiming the order before
	// any external call is made. Returns ErrOrderAlreadyClaimed when a row
	// for the order already exists.
	Claim(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists the one-time label attachment.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// GetByOrderID retrieves the claim for an order.
	GetByOrderID(ctx context.Context, orderID string) (*shipment.Shipment, error)

	// Delete removes a claim. Used only by the operator release flow to
	// make a failed order shippable again; the engine never deletes claims.
	Delete(ctx context.Context, orderID string) error
}
