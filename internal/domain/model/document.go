package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType identifies one of the four physically separate document kinds.
type DocumentType string

const (
	TypeQuote         DocumentType = "quote"
	TypeInvoice       DocumentType = "invoice"
	TypeOrder         DocumentType = "order"
	TypeSupplierOrder DocumentType = "supplier_order"
)

// DocumentTypes lists all kinds in canonical chain order.
var DocumentTypes = []DocumentType{TypeQuote, TypeInvoice, TypeOrder, TypeSupplierOrder}

// Valid reports whether t names a known document kind.
func (t DocumentType) Valid() bool {
	switch t {
	case TypeQuote, TypeInvoice, TypeOrder, TypeSupplierOrder:
		return true
	}
	return false
}

// Status is a lifecycle state of a status-bearing document.
// Quotes and invoices carry no status; for them Status is empty.
type Status string

const (
	StatusDraft                Status = "DRAFT"
	StatusSent                 Status = "SENT"
	StatusPaid                 Status = "PAID"
	StatusNewPlanned           Status = "NEW_PLANNED"
	StatusUnderReview          Status = "UNDER_REVIEW"
	StatusAwaitingMeasurement  Status = "AWAITING_MEASUREMENT"
	StatusAwaitingInvoice      Status = "AWAITING_INVOICE"
	StatusPending              Status = "PENDING"
	StatusOrdered              Status = "ORDERED"
	StatusReceivedFromSupplier Status = "RECEIVED_FROM_SUPPLIER"
	StatusCompleted            Status = "COMPLETED"
	StatusCancelled            Status = "CANCELLED"
)

// Item is a single document line item.
type Item struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Document is the common view over the four document kinds. Each kind is
// stored in its own table; Type tags which one a value came from.
type Document struct {
	ID               string
	Type             DocumentType
	Number           string
	Status           Status
	ParentDocumentID *string
	CartSessionID    *string
	ClientID         string
	Items            []Item
	TotalAmount      decimal.Decimal
	Notes            string
	ProjectFileURL   *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ChildCounts aggregates direct children of a document per kind.
type ChildCounts struct {
	Quotes         int `json:"quotes"`
	Invoices       int `json:"invoices"`
	Orders         int `json:"orders"`
	SupplierOrders int `json:"supplier_orders"`
}

// Total returns the number of children across all kinds.
func (c ChildCounts) Total() int {
	return c.Quotes + c.Invoices + c.Orders + c.SupplierOrders
}
