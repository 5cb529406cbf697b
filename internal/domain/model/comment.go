package model

import "time"

// Comment is a free-text note attached to a document.
type Comment struct {
	ID         string
	DocumentID string
	AuthorID   string
	Text       string
	CreatedAt  time.Time
}

// HistoryEntry is an append-only record of a document field change.
// Entries are written by callers, not by the transition engine.
type HistoryEntry struct {
	ID         string
	DocumentID string
	Field      string
	OldValue   string
	NewValue   string
	ChangedBy  string
	CreatedAt  time.Time
}
