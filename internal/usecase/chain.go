package usecase

import (
	"context"

	"github.com/velikanov/docflow/internal/domain/model"
	"github.com/velikanov/docflow/internal/domain/repository"
)

// ChainResult is the direct-children view of a document: a tagged merge of
// all four collections plus per-kind counts.
type ChainResult struct {
	Parent   *model.Document
	Children []model.Document
	Counts   model.ChildCounts
}

// ChainUseCase resolves parent/child links across the four document
// collections. Only direct children are returned, one level deep.
type ChainUseCase struct {
	documents repository.DocumentRepository
}

// NewChainUseCase constructs ChainUseCase.
func NewChainUseCase(documents repository.DocumentRepository) *ChainUseCase {
	return &ChainUseCase{documents: documents}
}

// Children returns every document whose parent is the given id, newest
// first, together with aggregate counts per kind.
func (u *ChainUseCase) Children(ctx context.Context, documentID string) (*ChainResult, error) {
	parent, err := u.documents.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	children, err := u.documents.ListChildren(ctx, parent.ID)
	if err != nil {
		return nil, err
	}

	result := &ChainResult{Parent: parent, Children: children}
	for _, child := range children {
		switch child.Type {
		case model.TypeQuote:
			result.Counts.Quotes++
		case model.TypeInvoice:
			result.Counts.Invoices++
		case model.TypeOrder:
			result.Counts.Orders++
		case model.TypeSupplierOrder:
			result.Counts.SupplierOrders++
		}
	}
	return result, nil
}
