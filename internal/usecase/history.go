package usecase

import (
	"context"

	"github.com/google/uuid"

	domainErrors "github.com/velikanov/docflow/internal/domain/errors"
	"github.com/velikanov/docflow/internal/domain/model"
	"github.com/velikanov/docflow/internal/domain/repository"
)

// HistoryUseCase keeps the append-only audit trail of document field
// changes. Entries are written by callers; the transition engine does not
// write them itself.
type HistoryUseCase struct {
	history   repository.HistoryRepository
	documents repository.DocumentRepository
}

// NewHistoryUseCase constructs HistoryUseCase.
func NewHistoryUseCase(history repository.HistoryRepository, documents repository.DocumentRepository) *HistoryUseCase {
	return &HistoryUseCase{history: history, documents: documents}
}

// Append records a field change against an existing document.
func (u *HistoryUseCase) Append(ctx context.Context, documentID, field, oldValue, newValue, changedBy string) (*model.HistoryEntry, error) {
	if field == "" {
		return nil, domainErrors.Validation("field", "is required")
	}

	if _, err := u.documents.GetByID(ctx, documentID); err != nil {
		return nil, err
	}

	return u.history.Append(ctx, &model.HistoryEntry{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		Field:      field,
		OldValue:   oldValue,
		NewValue:   newValue,
		ChangedBy:  changedBy,
	})
}

// List returns the audit trail of a document, newest first.
func (u *HistoryUseCase) List(ctx context.Context, documentID string) ([]model.HistoryEntry, error) {
	if _, err := u.documents.GetByID(ctx, documentID); err != nil {
		return nil, err
	}
	return u.history.ListByDocument(ctx, documentID)
}
