package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/velikanov/docflow/internal/domain/model"
)

func (r *commentRepository) Create(ctx context.Context, c *model.Comment) (*model.Comment, error) {
	created := *c
	if created.ID == "" {
		created.ID = uuid.NewString()
	}

	err := r.storage.pool.QueryRow(ctx,
		`INSERT INTO document_comments (id, document_id, author_id, text) VALUES ($1, $2, $3, $4) RETURNING created_at`,
		created.ID, created.DocumentID, created.AuthorID, created.Text,
	).Scan(&created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	return &created, nil
}

func (r *commentRepository) ListByDocument(ctx context.Context, documentID string) ([]model.Comment, error) {
	rows, err := r.storage.pool.Query(ctx,
		`SELECT id, document_id, author_id, text, created_at FROM document_comments
         WHERE document_id = $1 ORDER BY created_at`,
		documentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.DocumentID, &c.AuthorID, &c.Text, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *historyRepository) Append(ctx context.Context, e *model.HistoryEntry) (*model.HistoryEntry, error) {
	created := *e
	if created.ID == "" {
		created.ID = uuid.NewString()
	}

	err := r.storage.pool.QueryRow(ctx,
		`INSERT INTO document_history (id, document_id, field, old_value, new_value, changed_by)
         VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`,
		created.ID, created.DocumentID, created.Field, created.OldValue, created.NewValue, created.ChangedBy,
	).Scan(&created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert history entry: %w", err)
	}

	return &created, nil
}

func (r *historyRepository) ListByDocument(ctx context.Context, documentID string) ([]model.HistoryEntry, error) {
	rows, err := r.storage.pool.Query(ctx,
		`SELECT id, document_id, field, old_value, new_value, changed_by, created_at FROM document_history
         WHERE document_id = $1 ORDER BY created_at DESC`,
		documentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.HistoryEntry
	for rows.Next() {
		var e model.HistoryEntry
		if err := rows.Scan(&e.ID, &e.DocumentID, &e.Field, &e.OldValue, &e.NewValue, &e.ChangedBy, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
