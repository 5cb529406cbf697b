package app

import (
	"context"

	"github.com/velikanov/docflow/internal/domain/model"
	"github.com/velikanov/docflow/internal/domain/repository"
	pkgAuth "github.com/velikanov/docflow/internal/pkg/auth"
	"github.com/velikanov/docflow/internal/usecase"
)

// DocflowFacade aggregates use cases behind a single application surface
// shared by the HTTP handlers and the outbox worker.
type DocflowFacade struct {
	auth          *usecase.AuthUseCase
	documents     *usecase.DocumentUseCase
	transitions   *usecase.TransitionUseCase
	chains        *usecase.ChainUseCase
	notifications *usecase.NotificationUseCase
	comments      *usecase.CommentUseCase
	history       *usecase.HistoryUseCase

	events           repository.StatusEventRepository
	maxEventAttempts int
}

// NewDocflowFacade constructs the application facade.
func NewDocflowFacade(
	auth *usecase.AuthUseCase,
	documents *usecase.DocumentUseCase,
	transitions *usecase.TransitionUseCase,
	chains *usecase.ChainUseCase,
	notifications *usecase.NotificationUseCase,
	comments *usecase.CommentUseCase,
	history *usecase.HistoryUseCase,
	events repository.StatusEventRepository,
	maxEventAttempts int,
) *DocflowFacade {
	if maxEventAttempts <= 0 {
		maxEventAttempts = 1
	}
	return &DocflowFacade{
		auth:             auth,
		documents:        documents,
		transitions:      transitions,
		chains:           chains,
		notifications:    notifications,
		comments:         comments,
		history:          history,
		events:           events,
		maxEventAttempts: maxEventAttempts,
	}
}

func (f *DocflowFacade) Register(ctx context.Context, login, password string, role model.Role) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password, role)
	return token, err
}

func (f *DocflowFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *DocflowFacade) ParseToken(token string) (pkgAuth.Claims, error) {
	return f.auth.ParseToken(token)
}

func (f *DocflowFacade) CreateDocument(ctx context.Context, p usecase.CreateDocumentParams) (*model.Document, bool, error) {
	return f.documents.CreateOrGet(ctx, p)
}

func (f *DocflowFacade) Document(ctx context.Context, id string) (*model.Document, error) {
	return f.documents.Get(ctx, id)
}

func (f *DocflowFacade) UpdateItems(ctx context.Context, id string, items []model.Item) (*model.Document, error) {
	return f.documents.UpdateItems(ctx, id, items)
}

func (f *DocflowFacade) DeleteDocument(ctx context.Context, id string) error {
	return f.documents.Delete(ctx, id)
}

func (f *DocflowFacade) ChangeStatus(ctx context.Context, p usecase.ChangeStatusParams) (*model.Document, error) {
	return f.transitions.ChangeStatus(ctx, p)
}

func (f *DocflowFacade) ValidTransitions(ctx context.Context, documentID string) ([]model.Status, error) {
	return f.transitions.ValidTransitions(ctx, documentID)
}

func (f *DocflowFacade) AttachProject(ctx context.Context, documentID, fileURL string) error {
	return f.transitions.AttachProject(ctx, documentID, fileURL)
}

func (f *DocflowFacade) Children(ctx context.Context, documentID string) (*usecase.ChainResult, error) {
	return f.chains.Children(ctx, documentID)
}

func (f *DocflowFacade) AddComment(ctx context.Context, documentID, authorID, text string) (*model.Comment, error) {
	return f.comments.Add(ctx, documentID, authorID, text)
}

func (f *DocflowFacade) Comments(ctx context.Context, documentID string) ([]model.Comment, error) {
	return f.comments.List(ctx, documentID)
}

func (f *DocflowFacade) AppendHistory(ctx context.Context, documentID, field, oldValue, newValue, changedBy string) (*model.HistoryEntry, error) {
	return f.history.Append(ctx, documentID, field, oldValue, newValue, changedBy)
}

func (f *DocflowFacade) History(ctx context.Context, documentID string) ([]model.HistoryEntry, error) {
	return f.history.List(ctx, documentID)
}

func (f *DocflowFacade) Notifications(ctx context.Context, recipientID string, unreadOnly bool) ([]model.Notification, error) {
	return f.notifications.ListForRecipient(ctx, recipientID, unreadOnly)
}

func (f *DocflowFacade) MarkNotificationRead(ctx context.Context, id, recipientID string) error {
	return f.notifications.MarkRead(ctx, id, recipientID)
}

func (f *DocflowFacade) EventsForDispatch(ctx context.Context, limit int) ([]model.StatusEvent, error) {
	return f.events.SelectBatchForDispatch(ctx, limit)
}

func (f *DocflowFacade) DispatchStatusEvent(ctx context.Context, event model.StatusEvent) error {
	return f.notifications.Dispatch(ctx, event)
}

func (f *DocflowFacade) MarkEventDispatched(ctx context.Context, eventID int64) error {
	return f.events.MarkDispatched(ctx, eventID)
}

func (f *DocflowFacade) MarkEventFailed(ctx context.Context, eventID int64) error {
	return f.events.MarkFailed(ctx, eventID, f.maxEventAttempts)
}
