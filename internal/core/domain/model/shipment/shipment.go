// Package shipment provides the Shipment aggregate: the claim record that
// guarantees at most one shipping label per order.
//
// A Shipment row is inserted before any carrier call is made. The order_id
// column carries a storage-level uniqueness constraint, and that constraint
// is the engine's sole concurrency-safety primitive: two invocations racing
// on the same order are resolved by the insert failing for one of them, not
// by application-level locking.
package shipment

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/google/uuid"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was
	// not created through NewShipment or RestoreShipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

	// ErrLabelAlreadyAttached is returned when AttachLabel is called twice.
	// A shipment is created once and updated at most once.
	ErrLabelAlreadyAttached = errors.New("shipment already carries a label")
)

// Shipment is the per-order claim record. It is created empty (order id
// only) to claim the order, then updated exactly once with the tracking pin
// and label references after both content validation gates pass. A claim
// whose label was never attached marks a failed attempt and is deliberately
// kept, so the selection predicate does not re-pick the order.
type Shipment struct {
	id      uuid.UUID
	orderID string

	// trackingPin is the carrier tracking identifier, nil until attached
	trackingPin *string

	// labelURL is the carrier's own reference to the label artifact; the
	// carrier record remains the source of truth and is re-fetchable
	labelURL *string

	// labelPath is the local cache path of the downloaded artifact
	labelPath *string

	// carrierResponse is the raw create-shipment response document
	carrierResponse *string

	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewShipment creates a claim for the given order. The shipment carries no
// label data yet; persisting it is what claims the order.
func NewShipment(orderID string) (*Shipment, error) {
	if orderID == "" {
		return nil, errs.NewValueIsRequiredError("orderID")
	}

	return &Shipment{
		id:        uuid.New(),
		orderID:   orderID,
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreShipment reconstructs a Shipment from persistence.
func RestoreShipment(
	id uuid.UUID,
	orderID string,
	trackingPin, labelURL, labelPath, carrierResponse *string,
	createdAt time.Time,
) (*Shipment, error) {
	if orderID == "" {
		return nil, errs.NewValueIsRequiredError("orderID")
	}

	return &Shipment{
		id:              id,
		orderID:         orderID,
		trackingPin:     trackingPin,
		labelURL:        labelURL,
		labelPath:       labelPath,
		carrierResponse: carrierResponse,
		createdAt:       createdAt,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Shipment was constructed through a constructor.
func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

// ID returns the shipment identifier.
func (s *Shipment) ID() uuid.UUID {
	return s.id
}

// OrderID returns the claimed order's marketplace identifier.
func (s *Shipment) OrderID() string {
	return s.orderID
}

// TrackingPin returns the carrier tracking identifier, or nil for a claim
// whose label was never attached.
func (s *Shipment) TrackingPin() *string {
	return s.trackingPin
}

// LabelURL returns the carrier's reference to the label artifact.
func (s *Shipment) LabelURL() *string {
	return s.labelURL
}

// LabelPath returns the local cache path of the downloaded label.
func (s *Shipment) LabelPath() *string {
	return s.labelPath
}

// CarrierResponse returns the raw create-shipment response document.
func (s *Shipment) CarrierResponse() *string {
	return s.carrierResponse
}

// CreatedAt returns the claim timestamp.
func (s *Shipment) CreatedAt() time.Time {
	return s.createdAt
}

// HasLabel reports whether a validated label is attached.
func (s *Shipment) HasLabel() bool {
	return s.trackingPin != nil
}

// AttachLabel records the validated label onto the claim. Allowed exactly
// once: the tracking pin is unique storage-wide and must not be overwritten.
func (s *Shipment) AttachLabel(trackingPin, labelURL, labelPath, carrierResponse string) error {
	if s.HasLabel() {
		return ErrLabelAlreadyAttached
	}
	if trackingPin == "" {
		return errs.NewValueIsRequiredError("trackingPin")
	}
	if labelURL == "" {
		return errs.NewValueIsRequiredError("labelURL")
	}

	s.trackingPin = &trackingPin
	s.labelURL = &labelURL
	s.labelPath = &labelPath
	s.carrierResponse = &carrierResponse
	return nil
}
