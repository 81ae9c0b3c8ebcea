package models

// Notification is a derived alert shown on the dashboard. Notifications are
// recomputed from the reconciled snapshot on every refresh, never stored.
type Notification struct {
	ID        string `json:"id"`
	Type      string `json:"type"` // "urgent", "warning", "info"
	Category  string `json:"category"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Date      string `json:"date"`
	RelatedID string `json:"related_id,omitempty"`
	DaysLeft  int    `json:"days_left"`
}
