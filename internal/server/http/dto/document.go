package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemPayload is a single document line item on the wire.
type ItemPayload struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateDocumentRequest describes a checkout or document creation payload.
type CreateDocumentRequest struct {
	Type              string          `json:"type"`
	ClientID          string          `json:"client_id"`
	Items             []ItemPayload   `json:"items"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	ParentDocumentID  *string         `json:"parent_document_id,omitempty"`
	CartSessionID     *string         `json:"cart_session_id,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	PreventDuplicates bool            `json:"prevent_duplicates,omitempty"`
}

// ChangeStatusRequest describes a status transition payload.
type ChangeStatusRequest struct {
	Status             string `json:"status"`
	Notes              string `json:"notes,omitempty"`
	RequireMeasurement *bool  `json:"require_measurement,omitempty"`
}

// UpdateItemsRequest replaces the document line items.
type UpdateItemsRequest struct {
	Items []ItemPayload `json:"items"`
}

// AttachProjectRequest stores the project file reference on an order.
type AttachProjectRequest struct {
	ProjectFileURL string `json:"project_file_url"`
}

// DocumentResponse is the common wire form of all document kinds.
type DocumentResponse struct {
	ID               string          `json:"id"`
	Type             string          `json:"type"`
	Number           string          `json:"number"`
	Status           string          `json:"status,omitempty"`
	ParentDocumentID *string         `json:"parent_document_id,omitempty"`
	CartSessionID    *string         `json:"cart_session_id,omitempty"`
	ClientID         string          `json:"client_id"`
	Items            []ItemPayload   `json:"items"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	Notes            string          `json:"notes,omitempty"`
	ProjectFileURL   *string         `json:"project_file_url,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ChildCountsPayload aggregates direct children per kind.
type ChildCountsPayload struct {
	Quotes         int `json:"quotes"`
	Invoices       int `json:"invoices"`
	Orders         int `json:"orders"`
	SupplierOrders int `json:"supplier_orders"`
	Total          int `json:"total"`
}

// ChildrenResponse lists the direct children of a document.
type ChildrenResponse struct {
	Parent   DocumentResponse   `json:"parent"`
	Children []DocumentResponse `json:"children"`
	Counts   ChildCountsPayload `json:"counts"`
}

// TransitionsResponse lists legal next statuses for a document.
type TransitionsResponse struct {
	Status      string   `json:"status"`
	Transitions []string `json:"transitions"`
}
