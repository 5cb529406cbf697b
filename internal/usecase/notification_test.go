package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/velikanov/docflow/internal/domain/model"
	testhelpers "github.com/velikanov/docflow/internal/test"
	"github.com/velikanov/docflow/internal/usecase"
)

func newNotificationFixture(t *testing.T) (*usecase.NotificationUseCase, *testhelpers.NotificationRepositoryStub, *testhelpers.UserRepositoryStub) {
	t.Helper()
	notifications := &testhelpers.NotificationRepositoryStub{}
	users := testhelpers.NewUserRepositoryStub()
	return usecase.NewNotificationUseCase(notifications, users, 5*time.Minute), notifications, users
}

func seedUser(t *testing.T, users *testhelpers.UserRepositoryStub, login string, role model.Role) string {
	t.Helper()
	usr, err := users.Create(context.Background(), login, "hash:x", role)
	if err != nil {
		t.Fatalf("seed %s: %v", login, err)
	}
	return usr.ID
}

func paidEvent() model.StatusEvent {
	return model.StatusEvent{
		ID:           1,
		DocumentID:   "o-1",
		DocumentType: model.TypeOrder,
		Number:       "Order-1",
		OldStatus:    model.StatusSent,
		NewStatus:    model.StatusPaid,
		ClientID:     "c-1",
	}
}

func TestNotificationUseCaseDispatchFansOutToRoles(t *testing.T) {
	uc, notifications, users := newNotificationFixture(t)
	executor := seedUser(t, users, "executor", model.RoleExecutor)
	manager := seedUser(t, users, "manager", model.RoleManager)
	seedUser(t, users, "client-acc", model.RoleClient)

	if err := uc.Dispatch(context.Background(), paidEvent()); err != nil {
		t.Fatalf("dispatch returned error: %v", err)
	}

	if len(notifications.Created) != 2 {
		t.Fatalf("expected notifications for executor and manager, got %d", len(notifications.Created))
	}
	recipients := map[string]bool{}
	for _, n := range notifications.Created {
		recipients[n.RecipientUserID] = true
		if n.RelatedDocumentID != "o-1" || n.Type != model.StatusNotificationType(model.TypeOrder, model.StatusPaid) {
			t.Fatalf("unexpected notification %+v", n)
		}
	}
	if !recipients[executor] || !recipients[manager] {
		t.Fatalf("unexpected recipients %v", recipients)
	}
}

func TestNotificationUseCaseDispatchResolvesClientRole(t *testing.T) {
	uc, notifications, users := newNotificationFixture(t)
	seedUser(t, users, "complectator", model.RoleComplectator)
	seedUser(t, users, "executor", model.RoleExecutor)
	seedUser(t, users, "manager", model.RoleManager)

	event := paidEvent()
	event.NewStatus = model.StatusCompleted
	if err := uc.Dispatch(context.Background(), event); err != nil {
		t.Fatalf("dispatch returned error: %v", err)
	}

	// COMPLETED notifies complectator, executor, manager, and the client.
	if len(notifications.Created) != 4 {
		t.Fatalf("expected four notifications, got %d", len(notifications.Created))
	}
	foundClient := false
	for _, n := range notifications.Created {
		if n.RecipientUserID == "c-1" {
			foundClient = true
		}
	}
	if !foundClient {
		t.Fatal("expected the document client among recipients")
	}
}

func TestNotificationUseCaseDispatchSkipsInactive(t *testing.T) {
	uc, notifications, users := newNotificationFixture(t)
	executor := seedUser(t, users, "executor", model.RoleExecutor)
	retired := seedUser(t, users, "retired", model.RoleManager)
	users.ByID[retired].Active = false

	if err := uc.Dispatch(context.Background(), paidEvent()); err != nil {
		t.Fatalf("dispatch returned error: %v", err)
	}
	if len(notifications.Created) != 1 || notifications.Created[0].RecipientUserID != executor {
		t.Fatalf("expected only the active executor, got %+v", notifications.Created)
	}
}

func TestNotificationUseCaseDispatchUnknownPairIsNoop(t *testing.T) {
	uc, notifications, users := newNotificationFixture(t)
	seedUser(t, users, "executor", model.RoleExecutor)

	event := paidEvent()
	event.NewStatus = model.StatusDraft
	if err := uc.Dispatch(context.Background(), event); err != nil {
		t.Fatalf("dispatch returned error: %v", err)
	}
	if len(notifications.Created) != 0 {
		t.Fatalf("expected no notifications for DRAFT, got %d", len(notifications.Created))
	}

	event.DocumentType = model.TypeQuote
	event.NewStatus = model.StatusPaid
	if err := uc.Dispatch(context.Background(), event); err != nil {
		t.Fatalf("dispatch returned error: %v", err)
	}
	if len(notifications.Created) != 0 {
		t.Fatalf("expected no notifications for a quote, got %d", len(notifications.Created))
	}
}

func TestNotificationUseCaseDispatchDeduplicatesRedelivery(t *testing.T) {
	uc, notifications, users := newNotificationFixture(t)
	seedUser(t, users, "executor", model.RoleExecutor)

	if err := uc.Dispatch(context.Background(), paidEvent()); err != nil {
		t.Fatalf("first dispatch returned error: %v", err)
	}
	if err := uc.Dispatch(context.Background(), paidEvent()); err != nil {
		t.Fatalf("redelivery returned error: %v", err)
	}
	if len(notifications.Created) != 1 {
		t.Fatalf("expected redelivery to be deduplicated, got %d notifications", len(notifications.Created))
	}
}

func TestNotificationUseCaseDispatchDeduplicatesOverlappingRoles(t *testing.T) {
	uc, notifications, users := newNotificationFixture(t)
	// One account could match several roles only via the client id, so
	// model the overlap with a client that is also a notified role target.
	executor := seedUser(t, users, "executor", model.RoleExecutor)

	event := paidEvent()
	event.NewStatus = model.StatusCompleted
	event.ClientID = executor
	if err := uc.Dispatch(context.Background(), event); err != nil {
		t.Fatalf("dispatch returned error: %v", err)
	}
	count := 0
	for _, n := range notifications.Created {
		if n.RecipientUserID == executor {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected a single notification for the overlapping recipient, got %d", count)
	}
}

func TestNotificationUseCaseDispatchDeliversConsecutiveTransitions(t *testing.T) {
	uc, notifications, users := newNotificationFixture(t)
	seedUser(t, users, "executor", model.RoleExecutor)
	seedUser(t, users, "complectator", model.RoleComplectator)

	event := paidEvent()
	event.OldStatus = model.StatusUnderReview
	event.NewStatus = model.StatusAwaitingMeasurement
	if err := uc.Dispatch(context.Background(), event); err != nil {
		t.Fatalf("first transition returned error: %v", err)
	}
	event.OldStatus = model.StatusAwaitingMeasurement
	event.NewStatus = model.StatusAwaitingInvoice
	if err := uc.Dispatch(context.Background(), event); err != nil {
		t.Fatalf("second transition returned error: %v", err)
	}

	// Back-to-back transitions of one document within the window are
	// distinct messages; only redelivery of the same transition dedups.
	byStatus := map[model.NotificationType]int{}
	for _, n := range notifications.Created {
		byStatus[n.Type]++
	}
	if byStatus[model.StatusNotificationType(model.TypeOrder, model.StatusAwaitingMeasurement)] != 2 ||
		byStatus[model.StatusNotificationType(model.TypeOrder, model.StatusAwaitingInvoice)] != 2 {
		t.Fatalf("expected both transitions delivered to both recipients, got %v", byStatus)
	}
}

func TestNotificationUseCaseDispatchWindowExpiry(t *testing.T) {
	uc, notifications, users := newNotificationFixture(t)
	seedUser(t, users, "executor", model.RoleExecutor)

	if err := uc.Dispatch(context.Background(), paidEvent()); err != nil {
		t.Fatalf("first dispatch returned error: %v", err)
	}
	for i := range notifications.Created {
		notifications.Created[i].CreatedAt = time.Now().Add(-5*time.Minute - time.Second)
	}
	if err := uc.Dispatch(context.Background(), paidEvent()); err != nil {
		t.Fatalf("second dispatch returned error: %v", err)
	}
	if len(notifications.Created) != 2 {
		t.Fatalf("expected a second record once the window passed, got %d", len(notifications.Created))
	}
}

func TestNotificationUseCaseListAndMarkRead(t *testing.T) {
	uc, _, users := newNotificationFixture(t)
	executor := seedUser(t, users, "executor", model.RoleExecutor)

	if err := uc.Dispatch(context.Background(), paidEvent()); err != nil {
		t.Fatalf("dispatch returned error: %v", err)
	}

	listed, err := uc.ListForRecipient(context.Background(), executor, true)
	if err != nil || len(listed) != 1 {
		t.Fatalf("expected one unread notification, got %v err=%v", listed, err)
	}

	if err := uc.MarkRead(context.Background(), listed[0].ID, executor); err != nil {
		t.Fatalf("mark read returned error: %v", err)
	}

	listed, err = uc.ListForRecipient(context.Background(), executor, true)
	if err != nil || len(listed) != 0 {
		t.Fatalf("expected no unread notifications, got %v err=%v", listed, err)
	}
	listed, err = uc.ListForRecipient(context.Background(), executor, false)
	if err != nil || len(listed) != 1 {
		t.Fatalf("expected the read notification in the full list, got %v err=%v", listed, err)
	}
}
