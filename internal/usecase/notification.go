package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/velikanov/docflow/internal/domain/model"
	"github.com/velikanov/docflow/internal/domain/repository"
)

// notifyRule maps a committed status to the roles that should hear about
// it. The client role resolves to the document's client; the others to all
// active accounts holding the role.
type notifyRule struct {
	Recipients []model.Role
	Message    string
}

// statusNotifications is the single fan-out configuration consumed by every
// transition entry point.
var statusNotifications = map[model.DocumentType]map[model.Status]notifyRule{
	model.TypeOrder: {
		model.StatusSent: {
			Recipients: []model.Role{model.RoleComplectator},
			Message:    "Order invoice has been sent to the client.",
		},
		model.StatusPaid: {
			Recipients: []model.Role{model.RoleExecutor, model.RoleManager},
			Message:    "Order has been paid. A supplier order can be placed.",
		},
		model.StatusNewPlanned: {
			Recipients: []model.Role{model.RoleComplectator, model.RoleExecutor},
			Message:    "Payment received. The order is ready for processing.",
		},
		model.StatusUnderReview: {
			Recipients: []model.Role{model.RoleComplectator, model.RoleExecutor},
			Message:    "The order has been moved to review.",
		},
		model.StatusAwaitingMeasurement: {
			Recipients: []model.Role{model.RoleComplectator, model.RoleExecutor},
			Message:    "The order awaits an on-site measurement.",
		},
		model.StatusAwaitingInvoice: {
			Recipients: []model.Role{model.RoleComplectator, model.RoleExecutor},
			Message:    "The order awaits wholesale invoices from suppliers.",
		},
		model.StatusCompleted: {
			Recipients: []model.Role{model.RoleComplectator, model.RoleExecutor, model.RoleManager, model.RoleClient},
			Message:    "The order is completed and ready for delivery.",
		},
		model.StatusCancelled: {
			Recipients: []model.Role{model.RoleComplectator, model.RoleExecutor},
			Message:    "The order has been cancelled.",
		},
	},
	model.TypeSupplierOrder: {
		model.StatusOrdered: {
			Recipients: []model.Role{model.RoleComplectator, model.RoleExecutor},
			Message:    "The order has been placed with the supplier.",
		},
		model.StatusReceivedFromSupplier: {
			Recipients: []model.Role{model.RoleComplectator, model.RoleExecutor},
			Message:    "Goods have been received from the supplier.",
		},
		model.StatusCompleted: {
			Recipients: []model.Role{model.RoleComplectator, model.RoleExecutor},
			Message:    "The supplier order is completed.",
		},
	},
}

// NotificationUseCase fans a status event out to concrete recipients with
// window-based deduplication.
type NotificationUseCase struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
	dedupWindow   time.Duration
}

// NewNotificationUseCase constructs NotificationUseCase.
func NewNotificationUseCase(notifications repository.NotificationRepository, users repository.UserRepository, dedupWindow time.Duration) *NotificationUseCase {
	if dedupWindow <= 0 {
		dedupWindow = 5 * time.Minute
	}
	return &NotificationUseCase{notifications: notifications, users: users, dedupWindow: dedupWindow}
}

// Dispatch creates notifications for a committed status change. Unknown
// (type, status) pairs are a no-op. An already-notified recipient within
// the dedup window is skipped, which makes redelivery of the same event
// safe.
func (u *NotificationUseCase) Dispatch(ctx context.Context, event model.StatusEvent) error {
	rules, ok := statusNotifications[event.DocumentType]
	if !ok {
		return nil
	}
	rule, ok := rules[event.NewStatus]
	if !ok {
		return nil
	}

	recipients, err := u.resolveRecipients(ctx, rule.Recipients, event.ClientID)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s %s: %s", event.DocumentType, event.Number, event.NewStatus)
	for _, recipientID := range recipients {
		n := &model.Notification{
			ID:                uuid.NewString(),
			RecipientUserID:   recipientID,
			RelatedDocumentID: event.DocumentID,
			Type:              model.StatusNotificationType(event.DocumentType, event.NewStatus),
			Title:             title,
			Message:           rule.Message,
		}
		if _, _, err := u.notifications.Create(ctx, n, u.dedupWindow); err != nil {
			return fmt.Errorf("notify %s: %w", recipientID, err)
		}
	}
	return nil
}

func (u *NotificationUseCase) resolveRecipients(ctx context.Context, roles []model.Role, clientID string) ([]string, error) {
	seen := make(map[string]struct{})
	var recipients []string

	add := func(id string) {
		if id == "" {
			return
		}
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		recipients = append(recipients, id)
	}

	for _, role := range roles {
		if role == model.RoleClient {
			add(clientID)
			continue
		}
		users, err := u.users.ListActiveByRole(ctx, role)
		if err != nil {
			return nil, err
		}
		for _, usr := range users {
			add(usr.ID)
		}
	}
	return recipients, nil
}

// ListForRecipient returns notifications for a recipient, newest first.
func (u *NotificationUseCase) ListForRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]model.Notification, error) {
	return u.notifications.ListByRecipient(ctx, recipientID, unreadOnly)
}

// MarkRead flags a notification as read by its recipient.
func (u *NotificationUseCase) MarkRead(ctx context.Context, id, recipientID string) error {
	return u.notifications.MarkRead(ctx, id, recipientID)
}
