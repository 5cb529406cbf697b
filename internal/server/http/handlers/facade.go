package handlers

import (
	"context"

	"github.com/velikanov/docflow/internal/domain/model"
	pkgAuth "github.com/velikanov/docflow/internal/pkg/auth"
	"github.com/velikanov/docflow/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string, role model.Role) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (pkgAuth.Claims, error)
}

// DocumentFacade encapsulates document lifecycle operations exposed via HTTP.
type DocumentFacade interface {
	CreateDocument(ctx context.Context, p usecase.CreateDocumentParams) (*model.Document, bool, error)
	Document(ctx context.Context, id string) (*model.Document, error)
	UpdateItems(ctx context.Context, id string, items []model.Item) (*model.Document, error)
	DeleteDocument(ctx context.Context, id string) error
	ChangeStatus(ctx context.Context, p usecase.ChangeStatusParams) (*model.Document, error)
	ValidTransitions(ctx context.Context, documentID string) ([]model.Status, error)
	AttachProject(ctx context.Context, documentID, fileURL string) error
	Children(ctx context.Context, documentID string) (*usecase.ChainResult, error)
}

// CommentFacade provides comment and audit trail operations.
type CommentFacade interface {
	AddComment(ctx context.Context, documentID, authorID, text string) (*model.Comment, error)
	Comments(ctx context.Context, documentID string) ([]model.Comment, error)
	AppendHistory(ctx context.Context, documentID, field, oldValue, newValue, changedBy string) (*model.HistoryEntry, error)
	History(ctx context.Context, documentID string) ([]model.HistoryEntry, error)
}

// NotificationFacade provides per-recipient notification access.
type NotificationFacade interface {
	Notifications(ctx context.Context, recipientID string, unreadOnly bool) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, id, recipientID string) error
}

// DocflowFacade aggregates the full set of operations used across handlers.
type DocflowFacade interface {
	AuthFacade
	DocumentFacade
	CommentFacade
	NotificationFacade
}
