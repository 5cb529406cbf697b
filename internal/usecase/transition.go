package usecase

import (
	"context"

	domainErrors "github.com/velikanov/docflow/internal/domain/errors"
	"github.com/velikanov/docflow/internal/domain/model"
	"github.com/velikanov/docflow/internal/domain/repository"
	"github.com/velikanov/docflow/internal/domain/status"
)

// ChangeStatusParams describes a status transition request.
type ChangeStatusParams struct {
	DocumentID string
	Status     model.Status
	Notes      string
	// RequireMeasurement resolves a re-entry into UNDER_REVIEW to the next
	// concrete waiting status. Nil means the flag was not supplied.
	RequireMeasurement *bool
}

// TransitionUseCase validates and applies status transitions.
type TransitionUseCase struct {
	documents repository.DocumentRepository
}

// NewTransitionUseCase constructs TransitionUseCase.
func NewTransitionUseCase(documents repository.DocumentRepository) *TransitionUseCase {
	return &TransitionUseCase{documents: documents}
}

// ChangeStatus applies a validated transition. The write is a
// compare-and-swap against the status the document had when loaded; losing
// a race surfaces a conflict the caller is expected to retry from a fresh
// read. The status event for notification fan-out is enqueued inside the
// same transaction as the status write.
func (u *TransitionUseCase) ChangeStatus(ctx context.Context, p ChangeStatusParams) (*model.Document, error) {
	if p.Status == "" {
		return nil, domainErrors.Validation("status", "is required")
	}

	doc, err := u.documents.GetByID(ctx, p.DocumentID)
	if err != nil {
		return nil, err
	}

	if !status.HasStatus(doc.Type) {
		return nil, &domainErrors.InvalidTransitionError{
			DocumentType: string(doc.Type),
			From:         string(doc.Status),
			To:           string(p.Status),
			Reason:       "document type carries no status",
		}
	}

	if !status.Known(doc.Type, p.Status) {
		return nil, domainErrors.Validation("status", "unknown status "+string(p.Status))
	}

	effective := resolveEffectiveStatus(doc, p)

	if !status.CanTransition(doc.Type, doc.Status, effective) {
		return nil, &domainErrors.InvalidTransitionError{
			DocumentType: string(doc.Type),
			From:         string(doc.Status),
			To:           string(p.Status),
		}
	}

	// Entering review requires an attached project/plan artifact even
	// though the table itself would allow the transition.
	if effective == model.StatusUnderReview && doc.ProjectFileURL == nil {
		return nil, &domainErrors.InvalidTransitionError{
			DocumentType: string(doc.Type),
			From:         string(doc.Status),
			To:           string(p.Status),
			Reason:       "a project/plan artifact must be attached before review",
		}
	}

	return u.documents.UpdateStatus(ctx, doc.Type, doc.ID, doc.Status, effective, p.Notes)
}

// resolveEffectiveStatus maps a re-entry into UNDER_REVIEW with an explicit
// require_measurement flag onto the concrete waiting status. This is the
// single documented case where the committed status differs from the
// requested one.
func resolveEffectiveStatus(doc *model.Document, p ChangeStatusParams) model.Status {
	if doc.Status == model.StatusUnderReview && p.Status == model.StatusUnderReview && p.RequireMeasurement != nil {
		if *p.RequireMeasurement {
			return model.StatusAwaitingMeasurement
		}
		return model.StatusAwaitingInvoice
	}
	return p.Status
}

// ValidTransitions reports the legal successor statuses for a document.
func (u *TransitionUseCase) ValidTransitions(ctx context.Context, documentID string) ([]model.Status, error) {
	doc, err := u.documents.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return status.ValidTransitions(doc.Type, doc.Status), nil
}

// AttachProject stores the project/plan artifact reference needed to enter
// review. Only orders carry the artifact.
func (u *TransitionUseCase) AttachProject(ctx context.Context, documentID, fileURL string) error {
	if fileURL == "" {
		return domainErrors.Validation("file_url", "is required")
	}

	doc, err := u.documents.GetByID(ctx, documentID)
	if err != nil {
		return err
	}
	if doc.Type != model.TypeOrder {
		return domainErrors.Validation("type", "project artifacts can only be attached to orders")
	}
	return u.documents.AttachProjectFile(ctx, doc.ID, fileURL)
}
