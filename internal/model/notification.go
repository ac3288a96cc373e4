package model

// Notification represents an activity alert delivered by the API.
type Notification struct {
	// ID is the unique identifier for this notification.
	ID string `json:"id"`

	// Date is when the notification was generated, as an ISO-8601 UTC string.
	Date string `json:"date"`

	// Message is the human-readable notification text.
	Message string `json:"message"`

	// User is the ID of the user the notification is about.
	User string `json:"user"`

	// Read indicates whether the user has seen this notification.
	Read bool `json:"read"`

	// IsNew marks entries that were unread when the last fetch completed.
	IsNew bool `json:"isNew"`
}
