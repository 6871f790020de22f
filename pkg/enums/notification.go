package enums

import "fmt"

// NotificationType maps to the notification_type enum in Postgres.
type NotificationType string

const (
	NotificationTypeSpecChanged    NotificationType = "spec_changed"
	NotificationTypeRfqUpdate      NotificationType = "rfq_update"
	NotificationTypeBidStale       NotificationType = "bid_stale"
	NotificationTypeTimelineUpdate NotificationType = "timeline_update"
	NotificationTypeSystemAnnounce NotificationType = "system_announcement"
)

var validNotificationTypes = []NotificationType{
	NotificationTypeSpecChanged,
	NotificationTypeRfqUpdate,
	NotificationTypeBidStale,
	NotificationTypeTimelineUpdate,
	NotificationTypeSystemAnnounce,
}

// String implements fmt.Stringer.
func (t NotificationType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known NotificationType.
func (t NotificationType) IsValid() bool {
	for _, candidate := range validNotificationTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseNotificationType converts raw input into a NotificationType.
func ParseNotificationType(value string) (NotificationType, error) {
	for _, candidate := range validNotificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}

// RecipientKind distinguishes who a notification is addressed to.
type RecipientKind string

const (
	RecipientKindUser     RecipientKind = "user"
	RecipientKindSupplier RecipientKind = "supplier"
)

var validRecipientKinds = []RecipientKind{
	RecipientKindUser,
	RecipientKindSupplier,
}

// String implements fmt.Stringer.
func (k RecipientKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known RecipientKind.
func (k RecipientKind) IsValid() bool {
	for _, candidate := range validRecipientKinds {
		if candidate == k {
			return true
		}
	}
	return false
}
