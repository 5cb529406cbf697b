package repository

import (
	"context"
	"time"

	"github.com/velikanov/docflow/internal/domain/model"
)

// NotificationRepository persists notifications and enforces the dedup
// window at the storage boundary.
type NotificationRepository interface {
	// Create inserts a notification unless one with the same recipient,
	// related document, and type exists within the trailing window; in
	// that case the existing record is returned with created=false.
	Create(ctx context.Context, n *model.Notification, window time.Duration) (*model.Notification, bool, error)

	ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]model.Notification, error)
	MarkRead(ctx context.Context, id, recipientID string) error
}

// StatusEventRepository manages the transition outbox.
type StatusEventRepository interface {
	// SelectBatchForDispatch claims up to limit pending events, marking
	// them in-flight so concurrent workers never double-dispatch.
	SelectBatchForDispatch(ctx context.Context, limit int) ([]model.StatusEvent, error)

	MarkDispatched(ctx context.Context, eventID int64) error

	// MarkFailed records a failed attempt; events past maxAttempts move to
	// the FAILED state and are no longer selected.
	MarkFailed(ctx context.Context, eventID int64, maxAttempts int) error
}
