package model

import "time"

// NotificationType categorizes notifications for dedup and filtering.
type NotificationType string

// StatusNotificationType keys a notification to the transition that
// produced it. Redelivery of one event dedups against the same key while
// the next transition of the same document still gets through.
func StatusNotificationType(t DocumentType, s Status) NotificationType {
	return NotificationType(string(t) + ":" + string(s))
}

// Notification is a per-recipient message produced by a status transition.
type Notification struct {
	ID                string
	RecipientUserID   string
	RelatedDocumentID string
	Type              NotificationType
	Title             string
	Message           string
	IsRead            bool
	CreatedAt         time.Time
}

// StatusEventState tracks outbox entry processing.
type StatusEventState string

const (
	EventPending     StatusEventState = "PENDING"
	EventDispatching StatusEventState = "DISPATCHING"
	EventDispatched  StatusEventState = "DISPATCHED"
	EventFailed      StatusEventState = "FAILED"
)

// StatusEvent is an outbox record written in the same transaction as a
// status change and drained by the notification worker.
type StatusEvent struct {
	ID           int64
	DocumentID   string
	DocumentType DocumentType
	Number       string
	OldStatus    Status
	NewStatus    Status
	ClientID     string
	State        StatusEventState
	Attempts     int
	CreatedAt    time.Time
	DispatchedAt *time.Time
}
