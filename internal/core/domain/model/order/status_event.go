package order

import "time"

// StatusEvent is one immutable entry of the append-only status ledger.
// Events are never updated or deleted; the absence of mutation operations is
// what makes concurrent engine runs safe.
//
// The current status of an order is the status of its event with the latest
// timestamp, ties broken by insertion order (Seq).
type StatusEvent struct {
	// Seq is the storage-assigned insertion sequence, used as the tie-break
	// when two events share a timestamp.
	Seq int64

	OrderID   string
	Status    Status
	Note      string
	Timestamp time.Time
}
