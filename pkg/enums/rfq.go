package enums

import "fmt"

// RfqRouteStatus tracks a single supplier routing record for an item RFQ.
type RfqRouteStatus string

const (
	RfqRouteStatusQueued       RfqRouteStatus = "queued"
	RfqRouteStatusSent         RfqRouteStatus = "sent"
	RfqRouteStatusViewed       RfqRouteStatus = "viewed"
	RfqRouteStatusBidSubmitted RfqRouteStatus = "bid_submitted"
	RfqRouteStatusDeclined     RfqRouteStatus = "declined"
	RfqRouteStatusExpired      RfqRouteStatus = "expired"
)

var validRfqRouteStatuses = []RfqRouteStatus{
	RfqRouteStatusQueued,
	RfqRouteStatusSent,
	RfqRouteStatusViewed,
	RfqRouteStatusBidSubmitted,
	RfqRouteStatusDeclined,
	RfqRouteStatusExpired,
}

// activeRfqRouteStatuses are the states that keep an RFQ outstanding.
var activeRfqRouteStatuses = []RfqRouteStatus{
	RfqRouteStatusQueued,
	RfqRouteStatusSent,
	RfqRouteStatusViewed,
	RfqRouteStatusBidSubmitted,
}

// String implements fmt.Stringer.
func (s RfqRouteStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known RfqRouteStatus.
func (s RfqRouteStatus) IsValid() bool {
	for _, candidate := range validRfqRouteStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsActive reports whether a route in this status keeps the RFQ outstanding.
func (s RfqRouteStatus) IsActive() bool {
	for _, candidate := range activeRfqRouteStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ActiveRfqRouteStatuses returns the statuses that count as an active RFQ.
func ActiveRfqRouteStatuses() []RfqRouteStatus {
	return append([]RfqRouteStatus(nil), activeRfqRouteStatuses...)
}

// ParseRfqRouteStatus converts raw input into an RfqRouteStatus.
func ParseRfqRouteStatus(value string) (RfqRouteStatus, error) {
	for _, candidate := range validRfqRouteStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rfq route status %q", value)
}

// BidStatus tracks a supplier bid against an item revision.
type BidStatus string

const (
	BidStatusSubmitted BidStatus = "submitted"
	BidStatusWithdrawn BidStatus = "withdrawn"
	BidStatusStale     BidStatus = "stale"
)

var validBidStatuses = []BidStatus{
	BidStatusSubmitted,
	BidStatusWithdrawn,
	BidStatusStale,
}

// String implements fmt.Stringer.
func (s BidStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known BidStatus.
func (s BidStatus) IsValid() bool {
	for _, candidate := range validBidStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseBidStatus converts raw input into a BidStatus.
func ParseBidStatus(value string) (BidStatus, error) {
	for _, candidate := range validBidStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid bid status %q", value)
}
