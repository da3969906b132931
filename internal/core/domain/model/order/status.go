package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents a lifecycle state of an order. The current state of an
// order is never stored as a mutable column: it is derived from the latest
// entry of the append-only status ledger.
//
// State transitions:
//
//	pending_acceptance ──> accepted ──> label_created ──> shipped
//	        │                  │              │
//	        ├──> cancelled     └──> shipping_failed
//	        └──> acceptance_failed        │
//	                                      └──> tracking_failed
//
// cancelled, acceptance_failed, shipping_failed, tracking_failed and shipped
// are terminal: no stage selects an order whose latest status is one of them.
type Status string

const (
	// PendingAcceptance is the initial status written by the ingestion
	// collaborator when a new order lands in the database.
	PendingAcceptance Status = "pending_acceptance"

	// Accepted means the marketplace confirmed the order moved to a
	// post-acceptance state.
	Accepted Status = "accepted"

	// Cancelled means the marketplace cancelled the order. A valid terminal
	// outcome, not an escalation.
	Cancelled Status = "cancelled"

	// AcceptanceFailed means the accept call failed or the confirmation poll
	// budget was exhausted. Requires manual review.
	AcceptanceFailed Status = "acceptance_failed"

	// LabelCreated means a carrier shipment exists, its label passed both
	// content validation gates, and the tracking pin is on record.
	LabelCreated Status = "label_created"

	// ShippingFailed means label creation could not be completed. The claim
	// row is kept so the order is not re-selected automatically.
	ShippingFailed Status = "shipping_failed"

	// TrackingFailed means the marketplace rejected the tracking update or
	// the ship confirmation.
	TrackingFailed Status = "tracking_failed"

	// Shipped is the terminal success status.
	Shipped Status = "shipped"
)

func getValidStatuses() map[Status]struct{} {
	return map[Status]struct{}{
		PendingAcceptance: {},
		Accepted:          {},
		Cancelled:         {},
		AcceptanceFailed:  {},
		LabelCreated:      {},
		ShippingFailed:    {},
		TrackingFailed:    {},
		Shipped:           {},
	}
}

// Validate checks that the Status holds one of the defined lifecycle states.
// Used when reconstructing statuses from persistence or API input.
func (s Status) Validate() error {
	if _, ok := getValidStatuses()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

// String returns the ledger representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further stage transition occurs for an order
// whose latest status is s.
func (s Status) IsTerminal() bool {
	switch s {
	case Cancelled, AcceptanceFailed, ShippingFailed, TrackingFailed, Shipped:
		return true
	default:
		return false
	}
}
