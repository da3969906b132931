// Package audit provides the write-only records produced around every
// external call: the API call audit trail and the failure escalations that
// require human intervention. Engine logic writes these records and never
// reads them back; they are consumed by the support surface and by manual
// replay tooling.
package audit

import "time"

// Service names recorded on API call entries.
const (
	ServiceMarketplace = "Marketplace"
	ServiceCarrier     = "Carrier"
)

// Process names recorded on failure escalations, one per stage.
const (
	ProcessOrderAcceptance       = "OrderAcceptance"
	ProcessShippingLabelCreation = "ShippingLabelCreation"
	ProcessTrackingUpdate        = "TrackingUpdate"
	ProcessShipmentRelease       = "ShipmentRelease"
)

// APICall captures one external call: the raw request, the raw response and
// the outcome. Written unconditionally, success or failure.
type APICall struct {
	Service        string
	Operation      string
	RelatedID      string
	RequestPayload string
	ResponseBody   string
	StatusCode     int
	Success        bool
	Timestamp      time.Time
}

// Failure is an unrecoverable error escalated for manual review. It carries
// the payload snapshot verbatim so an operator can replay the work without
// re-querying other tables.
type Failure struct {
	RelatedID   string
	ProcessName string
	Details     string
	Payload     string
	Timestamp   time.Time
}
