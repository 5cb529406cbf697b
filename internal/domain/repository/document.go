package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/velikanov/docflow/internal/domain/model"
)

// DocumentRepository persists the four document kinds, each in its own
// collection, behind one tagged-union interface.
type DocumentRepository interface {
	// Create inserts the document. When doc.CartSessionID is set and a
	// non-cancelled document of the same kind already holds that session,
	// the existing document is returned with created=false instead of a
	// duplicate-key error.
	Create(ctx context.Context, doc *model.Document) (*model.Document, bool, error)

	// GetByID checks the four collections in chain order (quote, invoice,
	// order, supplier order) and returns the first match.
	GetByID(ctx context.Context, id string) (*model.Document, error)

	// GetByTypeAndID reads from a single collection.
	GetByTypeAndID(ctx context.Context, t model.DocumentType, id string) (*model.Document, error)

	// FindByCartSession returns the non-cancelled document of kind t
	// created for the given cart session, if any.
	FindByCartSession(ctx context.Context, t model.DocumentType, sessionID string) (*model.Document, error)

	// ListChildren returns direct children of parentID across all four
	// collections, newest first.
	ListChildren(ctx context.Context, parentID string) ([]model.Document, error)

	// UpdateStatus performs a compare-and-swap status write and enqueues a
	// status event in the same transaction. It fails with a conflict when
	// the stored status no longer equals expected.
	UpdateStatus(ctx context.Context, t model.DocumentType, id string, expected, next model.Status, notes string) (*model.Document, error)

	// UpdateItems replaces line items and the derived total.
	UpdateItems(ctx context.Context, t model.DocumentType, id string, items []model.Item, total decimal.Decimal) (*model.Document, error)

	// AttachProjectFile stores the project/plan artifact reference on an
	// order.
	AttachProjectFile(ctx context.Context, id string, fileURL string) error

	// Delete removes the document from its collection.
	Delete(ctx context.Context, t model.DocumentType, id string) error
}
