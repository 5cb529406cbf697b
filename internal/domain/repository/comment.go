package repository

import (
	"context"

	"github.com/velikanov/docflow/internal/domain/model"
)

// CommentRepository stores free-text comments keyed by document id.
type CommentRepository interface {
	Create(ctx context.Context, c *model.Comment) (*model.Comment, error)
	ListByDocument(ctx context.Context, documentID string) ([]model.Comment, error)
}

// HistoryRepository stores the append-only audit trail of field changes.
type HistoryRepository interface {
	Append(ctx context.Context, e *model.HistoryEntry) (*model.HistoryEntry, error)
	ListByDocument(ctx context.Context, documentID string) ([]model.HistoryEntry, error)
}
