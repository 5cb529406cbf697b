package dto

import "time"

// CommentRequest describes a new comment payload.
type CommentRequest struct {
	Text string `json:"text"`
}

// CommentResponse describes a stored comment.
type CommentResponse struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	AuthorID   string    `json:"author_id"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// HistoryRequest describes an audit trail entry payload.
type HistoryRequest struct {
	Field    string `json:"field"`
	OldValue string `json:"old_value,omitempty"`
	NewValue string `json:"new_value,omitempty"`
}

// HistoryResponse describes a stored audit trail entry.
type HistoryResponse struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	Field      string    `json:"field"`
	OldValue   string    `json:"old_value"`
	NewValue   string    `json:"new_value"`
	ChangedBy  string    `json:"changed_by"`
	CreatedAt  time.Time `json:"created_at"`
}
