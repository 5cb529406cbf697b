package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velikanov/docflow/internal/domain/model"
	"github.com/velikanov/docflow/internal/server/http/dto"
	"github.com/velikanov/docflow/internal/usecase"
)

// DocumentHandler manages document lifecycle endpoints.
type DocumentHandler struct {
	facade DocumentFacade
}

// NewDocumentHandler constructs DocumentHandler.
func NewDocumentHandler(facade DocumentFacade) *DocumentHandler {
	return &DocumentHandler{facade: facade}
}

// Create handles POST /api/documents. The same cart session replayed within
// its freshness window returns the already created document with 200
// instead of 201.
func (h *DocumentHandler) Create(c *gin.Context) {
	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	doc, created, err := h.facade.CreateDocument(c.Request.Context(), usecase.CreateDocumentParams{
		Type:              model.DocumentType(req.Type),
		ClientID:          req.ClientID,
		Items:             toItemModels(req.Items),
		TotalAmount:       req.TotalAmount,
		ParentDocumentID:  req.ParentDocumentID,
		CartSessionID:     req.CartSessionID,
		Notes:             req.Notes,
		PreventDuplicates: req.PreventDuplicates,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	c.JSON(status, toDocumentResponse(doc))
}

// Get handles GET /api/documents/:id.
func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.facade.Document(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDocumentResponse(doc))
}

// ChangeStatus handles PUT /api/documents/:id/status.
func (h *DocumentHandler) ChangeStatus(c *gin.Context) {
	var req dto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	doc, err := h.facade.ChangeStatus(c.Request.Context(), usecase.ChangeStatusParams{
		DocumentID:         c.Param("id"),
		Status:             model.Status(req.Status),
		Notes:              req.Notes,
		RequireMeasurement: req.RequireMeasurement,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDocumentResponse(doc))
}

// Transitions handles GET /api/documents/:id/transitions.
func (h *DocumentHandler) Transitions(c *gin.Context) {
	doc, err := h.facade.Document(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	statuses, err := h.facade.ValidTransitions(c.Request.Context(), doc.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := dto.TransitionsResponse{Status: string(doc.Status), Transitions: make([]string, 0, len(statuses))}
	for _, s := range statuses {
		response.Transitions = append(response.Transitions, string(s))
	}
	c.JSON(http.StatusOK, response)
}

// Children handles GET /api/documents/:id/children.
func (h *DocumentHandler) Children(c *gin.Context) {
	result, err := h.facade.Children(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := dto.ChildrenResponse{
		Parent:   toDocumentResponse(result.Parent),
		Children: make([]dto.DocumentResponse, 0, len(result.Children)),
		Counts: dto.ChildCountsPayload{
			Quotes:         result.Counts.Quotes,
			Invoices:       result.Counts.Invoices,
			Orders:         result.Counts.Orders,
			SupplierOrders: result.Counts.SupplierOrders,
			Total:          result.Counts.Total(),
		},
	}
	for i := range result.Children {
		response.Children = append(response.Children, toDocumentResponse(&result.Children[i]))
	}
	c.JSON(http.StatusOK, response)
}

// UpdateItems handles PUT /api/documents/:id/items.
func (h *DocumentHandler) UpdateItems(c *gin.Context) {
	var req dto.UpdateItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	doc, err := h.facade.UpdateItems(c.Request.Context(), c.Param("id"), toItemModels(req.Items))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDocumentResponse(doc))
}

// Delete handles DELETE /api/documents/:id.
func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.facade.DeleteDocument(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AttachProject handles PUT /api/documents/:id/project.
func (h *DocumentHandler) AttachProject(c *gin.Context) {
	var req dto.AttachProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.AttachProject(c.Request.Context(), c.Param("id"), req.ProjectFileURL); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func toItemModels(items []dto.ItemPayload) []model.Item {
	result := make([]model.Item, 0, len(items))
	for _, item := range items {
		result = append(result, model.Item{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return result
}

func toDocumentResponse(doc *model.Document) dto.DocumentResponse {
	items := make([]dto.ItemPayload, 0, len(doc.Items))
	for _, item := range doc.Items {
		items = append(items, dto.ItemPayload{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return dto.DocumentResponse{
		ID:               doc.ID,
		Type:             string(doc.Type),
		Number:           doc.Number,
		Status:           string(doc.Status),
		ParentDocumentID: doc.ParentDocumentID,
		CartSessionID:    doc.CartSessionID,
		ClientID:         doc.ClientID,
		Items:            items,
		TotalAmount:      doc.TotalAmount,
		Notes:            doc.Notes,
		ProjectFileURL:   doc.ProjectFileURL,
		CreatedAt:        doc.CreatedAt,
		UpdatedAt:        doc.UpdatedAt,
	}
}
