// Package order provides domain entities for marketplace orders in the
// fulfillment engine. It implements the Order aggregate together with the
// status model of the append-only lifecycle ledger.
//
// The package includes:
//   - Order: the aggregate holding the marketplace identifier and the raw
//     order document captured at ingestion
//   - ShippingAddress: the destination value object used as the reference
//     for label content validation
//   - Status: the lifecycle states recorded on the ledger
//   - StatusEvent: one immutable ledger entry
//
// Key business rules:
//   - An order's current state is derived from its latest ledger event,
//     never stored as a mutable column
//   - The raw payload is opaque; only the shipping address and order lines
//     are extracted from it
//   - Terminal statuses end all automated processing for an order
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
