package usecase_test

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/velikanov/docflow/internal/domain/errors"
	"github.com/velikanov/docflow/internal/domain/model"
	testhelpers "github.com/velikanov/docflow/internal/test"
	"github.com/velikanov/docflow/internal/usecase"
)

func newCommentFixture() (*usecase.CommentUseCase, *testhelpers.CommentRepositoryStub, *testhelpers.DocumentRepositoryStub) {
	comments := &testhelpers.CommentRepositoryStub{}
	documents := testhelpers.NewDocumentRepositoryStub()
	return usecase.NewCommentUseCase(comments, documents), comments, documents
}

func TestCommentUseCaseAdd(t *testing.T) {
	uc, comments, documents := newCommentFixture()
	documents.Add(&model.Document{ID: "o-1", Type: model.TypeOrder, Status: model.StatusDraft})

	comment, err := uc.Add(context.Background(), "o-1", "u-1", "  confirm the colors with the client  ")
	if err != nil {
		t.Fatalf("add returned error: %v", err)
	}
	if comment.Text != "confirm the colors with the client" {
		t.Fatalf("expected trimmed text, got %q", comment.Text)
	}
	if comment.ID == "" {
		t.Fatal("expected comment id assigned")
	}
	if len(comments.Comments) != 1 {
		t.Fatalf("expected one stored comment, got %d", len(comments.Comments))
	}
}

func TestCommentUseCaseAddValidation(t *testing.T) {
	uc, _, documents := newCommentFixture()
	documents.Add(&model.Document{ID: "o-1", Type: model.TypeOrder, Status: model.StatusDraft})

	var validation *domainErrors.ValidationError
	if _, err := uc.Add(context.Background(), "o-1", "u-1", "   "); !errors.As(err, &validation) {
		t.Fatalf("expected validation error for blank text, got %v", err)
	}
	if _, err := uc.Add(context.Background(), "missing", "u-1", "text"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown document, got %v", err)
	}
}

func TestCommentUseCaseList(t *testing.T) {
	uc, _, documents := newCommentFixture()
	documents.Add(&model.Document{ID: "o-1", Type: model.TypeOrder, Status: model.StatusDraft})

	if _, err := uc.Add(context.Background(), "o-1", "u-1", "first"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := uc.Add(context.Background(), "o-1", "u-2", "second"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	listed, err := uc.List(context.Background(), "o-1")
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(listed) != 2 || listed[0].Text != "first" {
		t.Fatalf("unexpected comments %+v", listed)
	}

	if _, err := uc.List(context.Background(), "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
