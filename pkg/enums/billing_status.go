package enums

import "fmt"

// BillingStatus tracks whether a restaurant's subscription is in good standing.
// Suspended restaurants are withheld from public menu responses.
type BillingStatus string

const (
	BillingStatusActive    BillingStatus = "active"
	BillingStatusPastDue   BillingStatus = "past_due"
	BillingStatusSuspended BillingStatus = "suspended"
)

var validBillingStatuses = []BillingStatus{
	BillingStatusActive,
	BillingStatusPastDue,
	BillingStatusSuspended,
}

// String implements fmt.Stringer.
func (b BillingStatus) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BillingStatus.
func (b BillingStatus) IsValid() bool {
	for _, candidate := range validBillingStatuses {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBillingStatus converts raw input into a BillingStatus.
func ParseBillingStatus(value string) (BillingStatus, error) {
	for _, candidate := range validBillingStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid billing status %q", value)
}
