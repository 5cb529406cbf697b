package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velikanov/docflow/internal/domain/model"
	"github.com/velikanov/docflow/internal/server/http/dto"
)

// CommentHandler manages per-document comments and the audit trail.
type CommentHandler struct {
	facade CommentFacade
}

// NewCommentHandler constructs CommentHandler.
func NewCommentHandler(facade CommentFacade) *CommentHandler {
	return &CommentHandler{facade: facade}
}

// Add handles POST /api/documents/:id/comments.
func (h *CommentHandler) Add(c *gin.Context) {
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	comment, err := h.facade.AddComment(c.Request.Context(), c.Param("id"), CurrentUserID(c), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCommentResponse(comment))
}

// List handles GET /api/documents/:id/comments.
func (h *CommentHandler) List(c *gin.Context) {
	comments, err := h.facade.Comments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		response = append(response, toCommentResponse(&comments[i]))
	}
	c.JSON(http.StatusOK, response)
}

// AppendHistory handles POST /api/documents/:id/history.
func (h *CommentHandler) AppendHistory(c *gin.Context) {
	var req dto.HistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	entry, err := h.facade.AppendHistory(c.Request.Context(), c.Param("id"), req.Field, req.OldValue, req.NewValue, CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toHistoryResponse(entry))
}

// ListHistory handles GET /api/documents/:id/history.
func (h *CommentHandler) ListHistory(c *gin.Context) {
	entries, err := h.facade.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.HistoryResponse, 0, len(entries))
	for i := range entries {
		response = append(response, toHistoryResponse(&entries[i]))
	}
	c.JSON(http.StatusOK, response)
}

func toCommentResponse(comment *model.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:         comment.ID,
		DocumentID: comment.DocumentID,
		AuthorID:   comment.AuthorID,
		Text:       comment.Text,
		CreatedAt:  comment.CreatedAt,
	}
}

func toHistoryResponse(entry *model.HistoryEntry) dto.HistoryResponse {
	return dto.HistoryResponse{
		ID:         entry.ID,
		DocumentID: entry.DocumentID,
		Field:      entry.Field,
		OldValue:   entry.OldValue,
		NewValue:   entry.NewValue,
		ChangedBy:  entry.ChangedBy,
		CreatedAt:  entry.CreatedAt,
	}
}
