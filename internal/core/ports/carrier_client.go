package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// CreateShipmentResult is the parsed outcome of a successful carrier
// create-shipment call.
type CreateShipmentResult struct {
	TrackingPin string

	// LabelURL is the carrier's reference to the label artifact. The
	// carrier record is the source of truth; the local download is a cache.
	LabelURL string

	// ResponseDocument is the raw response body, persisted on the shipment.
	ResponseDocument string

	// RecipientName and RecipientPostalCode are the destination fields as
	// echoed by the carrier, compared against the order's stored address by
	// the structural validation gate.
	RecipientName       string
	RecipientPostalCode string
}

// CarrierClient is the engine's contract with the shipping carrier.
type CarrierClient interface {
	// CreateShipment registers a shipment for the order's destination and
	// contents and returns the tracking pin and label reference.
	CreateShipment(ctx context.Context, ord *order.Order) (CreateShipmentResult, Exchange, error)

	// FetchLabel downloads the label artifact behind a carrier reference.
	FetchLabel(ctx context.Context, labelURL string) ([]byte, Exchange, error)

	// VoidShipment cancels a shipment at the carrier. Used by the operator
	// release flow before a claim is removed.
	VoidShipment(ctx context.Context, labelURL string) (Exchange, error)
}

// LabelStore caches downloaded label artifacts locally and returns the
// stored path. The carrier reference remains authoritative.
type LabelStore interface {
	Store(orderID string, artifact []byte) (string, error)
}

// LabelInspector checks a label artifact's content. Implemented by the
// carrier adapter, which knows the artifact format.
type LabelInspector interface {
	// ContainsTrackingPin extracts the artifact's text and reports whether
	// the tracking pin appears in it.
	ContainsTrackingPin(artifact []byte, trackingPin string) (bool, error)
}
