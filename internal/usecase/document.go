package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/velikanov/docflow/internal/domain/errors"
	"github.com/velikanov/docflow/internal/domain/model"
	"github.com/velikanov/docflow/internal/domain/repository"
	"github.com/velikanov/docflow/internal/domain/status"
	"github.com/velikanov/docflow/internal/pkg/cartsession"
)

// CreateDocumentParams carries everything needed to create a document from
// a checkout submission.
type CreateDocumentParams struct {
	Type              model.DocumentType
	ClientID          string
	Items             []model.Item
	TotalAmount       decimal.Decimal
	ParentDocumentID  *string
	CartSessionID     *string
	Notes             string
	PreventDuplicates bool
}

var numberPrefixes = map[model.DocumentType]string{
	model.TypeQuote:         "KP",
	model.TypeInvoice:       "Invoice",
	model.TypeOrder:         "Order",
	model.TypeSupplierOrder: "SupplierOrder",
}

// DocumentUseCase creates documents idempotently and gates edits/deletes on
// the status machine.
type DocumentUseCase struct {
	documents     repository.DocumentRepository
	clients       repository.ClientRepository
	sessionMaxAge time.Duration
}

// NewDocumentUseCase constructs DocumentUseCase.
func NewDocumentUseCase(documents repository.DocumentRepository, clients repository.ClientRepository, sessionMaxAge time.Duration) *DocumentUseCase {
	if sessionMaxAge <= 0 {
		sessionMaxAge = cartsession.DefaultMaxAge
	}
	return &DocumentUseCase{documents: documents, clients: clients, sessionMaxAge: sessionMaxAge}
}

// CreateOrGet creates a document or returns the one already produced by the
// same cart session. The second return value is false when an existing
// document was matched.
func (u *DocumentUseCase) CreateOrGet(ctx context.Context, p CreateDocumentParams) (*model.Document, bool, error) {
	if err := u.validateCreate(p); err != nil {
		return nil, false, err
	}

	sessionID := ""
	if p.CartSessionID != nil && *p.CartSessionID != "" {
		sessionID = *p.CartSessionID
		if !cartsession.IsValid(sessionID) {
			return nil, false, domainErrors.Validation("cart_session_id", "malformed session id")
		}
	} else {
		sessionID = cartsession.Generate(cartsession.DefaultPrefix)
	}

	if cartsession.IsFresh(sessionID, u.sessionMaxAge) {
		if p.PreventDuplicates {
			existing, err := u.documents.FindByCartSession(ctx, p.Type, sessionID)
			if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
				return nil, false, err
			}
			if existing != nil {
				return existing, false, nil
			}
		}
	} else {
		// A stale session must not be matched to an old document; the
		// checkout is treated as a fresh one under a newly minted session.
		sessionID = cartsession.Generate(cartsession.DefaultPrefix)
	}

	if _, err := u.clients.GetByID(ctx, p.ClientID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, false, fmt.Errorf("client %s: %w", p.ClientID, domainErrors.ErrNotFound)
		}
		return nil, false, err
	}

	if p.ParentDocumentID != nil && *p.ParentDocumentID != "" {
		if _, err := u.documents.GetByID(ctx, *p.ParentDocumentID); err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return nil, false, fmt.Errorf("parent document %s: %w", *p.ParentDocumentID, domainErrors.ErrNotFound)
			}
			return nil, false, err
		}
	}

	doc := &model.Document{
		ID:               uuid.NewString(),
		Type:             p.Type,
		Number:           generateNumber(p.Type),
		Status:           status.Initial(p.Type),
		ParentDocumentID: p.ParentDocumentID,
		CartSessionID:    &sessionID,
		ClientID:         p.ClientID,
		Items:            p.Items,
		TotalAmount:      p.TotalAmount,
		Notes:            p.Notes,
	}

	return u.documents.Create(ctx, doc)
}

// Get returns the document with the given id, whichever collection holds it.
func (u *DocumentUseCase) Get(ctx context.Context, id string) (*model.Document, error) {
	return u.documents.GetByID(ctx, id)
}

// UpdateItems replaces line items while the document is still editable.
// The total is re-derived from the new items.
func (u *DocumentUseCase) UpdateItems(ctx context.Context, id string, items []model.Item) (*model.Document, error) {
	if len(items) == 0 {
		return nil, domainErrors.Validation("items", "at least one item is required")
	}
	if err := validateItems(items); err != nil {
		return nil, err
	}

	doc, err := u.documents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !status.CanEdit(doc.Type, doc.Status) {
		return nil, domainErrors.ErrNotEditable
	}

	return u.documents.UpdateItems(ctx, doc.Type, doc.ID, items, itemsTotal(items))
}

// Delete removes a document while its status still allows deletion.
func (u *DocumentUseCase) Delete(ctx context.Context, id string) error {
	doc, err := u.documents.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !status.CanDelete(doc.Type, doc.Status) {
		return domainErrors.ErrNotDeletable
	}
	return u.documents.Delete(ctx, doc.Type, doc.ID)
}

func (u *DocumentUseCase) validateCreate(p CreateDocumentParams) error {
	if !p.Type.Valid() {
		return domainErrors.Validation("type", "unknown document type "+string(p.Type))
	}
	if p.ClientID == "" {
		return domainErrors.Validation("client_id", "is required")
	}
	if len(p.Items) == 0 {
		return domainErrors.Validation("items", "at least one item is required")
	}
	if err := validateItems(p.Items); err != nil {
		return err
	}
	if p.TotalAmount.LessThanOrEqual(decimal.Zero) {
		return domainErrors.Validation("total_amount", "must be positive")
	}
	if !p.TotalAmount.Equal(itemsTotal(p.Items)) {
		return domainErrors.Validation("total_amount", "does not match the sum of items")
	}
	return nil
}

func validateItems(items []model.Item) error {
	for i, item := range items {
		if item.ProductID == "" {
			return domainErrors.Validation(fmt.Sprintf("items[%d].product_id", i), "is required")
		}
		if item.Quantity <= 0 {
			return domainErrors.Validation(fmt.Sprintf("items[%d].quantity", i), "must be positive")
		}
		if item.UnitPrice.IsNegative() {
			return domainErrors.Validation(fmt.Sprintf("items[%d].unit_price", i), "must not be negative")
		}
	}
	return nil
}

func itemsTotal(items []model.Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

func generateNumber(t model.DocumentType) string {
	// Millisecond timestamps alone collide under concurrent checkouts; the
	// random tail keeps the unique number constraint satisfied.
	suffix := make([]byte, 3)
	_, _ = rand.Read(suffix)
	return fmt.Sprintf("%s-%d-%s", numberPrefixes[t], time.Now().UnixMilli(), hex.EncodeToString(suffix))
}
