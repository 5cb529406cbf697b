package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/velikanov/docflow/internal/domain/errors"
	"github.com/velikanov/docflow/internal/domain/model"
	"github.com/velikanov/docflow/internal/domain/repository"
)

// CommentUseCase attaches free-text comments to documents.
type CommentUseCase struct {
	comments  repository.CommentRepository
	documents repository.DocumentRepository
}

// NewCommentUseCase constructs CommentUseCase.
func NewCommentUseCase(comments repository.CommentRepository, documents repository.DocumentRepository) *CommentUseCase {
	return &CommentUseCase{comments: comments, documents: documents}
}

// Add validates the target document exists and stores the comment.
func (u *CommentUseCase) Add(ctx context.Context, documentID, authorID, text string) (*model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domainErrors.Validation("text", "is required")
	}

	if _, err := u.documents.GetByID(ctx, documentID); err != nil {
		return nil, err
	}

	return u.comments.Create(ctx, &model.Comment{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		AuthorID:   authorID,
		Text:       text,
	})
}

// List returns the comments of a document, oldest first.
func (u *CommentUseCase) List(ctx context.Context, documentID string) ([]model.Comment, error) {
	if _, err := u.documents.GetByID(ctx, documentID); err != nil {
		return nil, err
	}
	return u.comments.ListByDocument(ctx, documentID)
}
