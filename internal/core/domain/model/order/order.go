package order

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/tidwall/gjson"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrRawPayloadIsNotJSON is returned when the captured marketplace
	// payload cannot be parsed.
	ErrRawPayloadIsNotJSON = errors.New("raw order payload is not valid JSON")
)

// Order is a marketplace order as captured at ingestion. The identifier is
// issued by the marketplace and globally unique; the raw payload is the
// original order document and is kept opaque except for the few fields the
// engine needs (shipping address, order lines), which are extracted lazily.
//
// The engine never mutates an Order: its progress is tracked exclusively in
// the append-only status ledger.
type Order struct {
	// id is the marketplace-issued order identifier
	id string

	// rawPayload is the order document captured at ingestion
	rawPayload []byte

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates an Order from a marketplace identifier and the raw order
// document. The identifier must be non-empty and the payload must be valid
// JSON; further field validation is deferred to the accessors because the
// payload shape is owned by the marketplace, not by the engine.
func NewOrder(id string, rawPayload []byte) (*Order, error) {
	if id == "" {
		return nil, errs.NewValueIsRequiredError("id")
	}
	if !gjson.ValidBytes(rawPayload) {
		return nil, errs.NewValueIsInvalidErrorWithCause("rawPayload", ErrRawPayloadIsNotJSON)
	}

	now := time.Now().UTC()
	return &Order{
		id:         id,
		rawPayload: rawPayload,
		createdAt:  now,
		updatedAt:  now,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreOrder reconstructs an Order from persistence.
func RestoreOrder(id string, rawPayload []byte, createdAt, updatedAt time.Time) (*Order, error) {
	if id == "" {
		return nil, errs.NewValueIsRequiredError("id")
	}

	return &Order{
		id:         id,
		rawPayload: rawPayload,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Order was constructed through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their marketplace identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

// ID returns the marketplace-issued order identifier.
func (o *Order) ID() string {
	return o.id
}

// RawPayload returns the order document captured at ingestion.
func (o *Order) RawPayload() []byte {
	return o.rawPayload
}

// CreatedAt returns the ingestion timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last persistence timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ShippingAddress extracts the customer shipping address from the raw
// payload. Returns a validation error when required address fields are
// missing, since a label must never be produced from a partial address.
func (o *Order) ShippingAddress() (ShippingAddress, error) {
	root := gjson.GetBytes(o.rawPayload, "customer.shipping_address")
	if !root.Exists() {
		return ShippingAddress{}, errs.NewValueIsRequiredError("customer.shipping_address")
	}

	return NewShippingAddress(
		root.Get("firstname").String(),
		root.Get("lastname").String(),
		root.Get("street_1").String(),
		root.Get("city").String(),
		root.Get("state").String(),
		root.Get("zip_code").String(),
	)
}

// Lines extracts the order lines from the raw payload. Orders with no lines
// are possible in theory (fully cancelled line sets) and yield an empty slice.
func (o *Order) Lines() []Line {
	raw := gjson.GetBytes(o.rawPayload, "order_lines")
	if !raw.IsArray() {
		return nil
	}

	lines := make([]Line, 0, len(raw.Array()))
	for _, l := range raw.Array() {
		lines = append(lines, Line{
			ID:       l.Get("order_line_id").String(),
			SKU:      l.Get("offer_sku").String(),
			Quantity: int(l.Get("quantity").Int()),
		})
	}
	return lines
}

// Line is one order line of the marketplace order document.
type Line struct {
	ID       string
	SKU      string
	Quantity int
}
