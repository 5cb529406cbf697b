package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	domainerrors "github.com/velikanov/docflow/internal/domain/errors"
	"github.com/velikanov/docflow/internal/domain/model"
)

const notificationColumns = "id, recipient_user_id, related_document_id, type, title, message, is_read, created_at"

func scanNotification(row pgx.Row) (*model.Notification, error) {
	var n model.Notification
	var typ string
	err := row.Scan(&n.ID, &n.RecipientUserID, &n.RelatedDocumentID, &typ, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	n.Type = model.NotificationType(typ)
	return &n, nil
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification, window time.Duration) (*model.Notification, bool, error) {
	var (
		result  *model.Notification
		created bool
	)

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		cutoff := time.Now().Add(-window)
		existing, err := scanNotification(tx.QueryRow(ctx,
			`SELECT `+notificationColumns+` FROM notifications
             WHERE recipient_user_id = $1 AND related_document_id = $2 AND type = $3 AND created_at > $4
             ORDER BY created_at DESC LIMIT 1`,
			n.RecipientUserID, n.RelatedDocumentID, string(n.Type), cutoff,
		))
		if err == nil {
			result = existing
			return nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		inserted := *n
		err = tx.QueryRow(ctx,
			`INSERT INTO notifications (id, recipient_user_id, related_document_id, type, title, message)
             VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`,
			n.ID, n.RecipientUserID, n.RelatedDocumentID, string(n.Type), n.Title, n.Message,
		).Scan(&inserted.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert notification: %w", err)
		}

		result = &inserted
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return result, created, nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]model.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE recipient_user_id = $1`
	if unreadOnly {
		query += ` AND is_read = FALSE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.storage.pool.Query(ctx, query, recipientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, *n)
	}
	return notifications, rows.Err()
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, recipientID string) error {
	tag, err := r.storage.pool.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND recipient_user_id = $2`,
		id, recipientID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *statusEventRepository) SelectBatchForDispatch(ctx context.Context, limit int) ([]model.StatusEvent, error) {
	var events []model.StatusEvent

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx,
			`SELECT id, document_id, document_type, number, old_status, new_status, client_id, attempts, created_at
             FROM status_events
             WHERE state = '`+string(model.EventPending)+`'
             ORDER BY created_at
             LIMIT $1
             FOR UPDATE SKIP LOCKED`,
			limit,
		)
		if err != nil {
			return err
		}
		for rows.Next() {
			var (
				e                     model.StatusEvent
				docType, oldSt, newSt string
			)
			if err := rows.Scan(&e.ID, &e.DocumentID, &docType, &e.Number, &oldSt, &newSt, &e.ClientID, &e.Attempts, &e.CreatedAt); err != nil {
				rows.Close()
				return err
			}
			e.DocumentType = model.DocumentType(docType)
			e.OldStatus = model.Status(oldSt)
			e.NewStatus = model.Status(newSt)
			e.State = model.EventPending
			events = append(events, e)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		for i := range events {
			_, err := tx.Exec(ctx,
				`UPDATE status_events SET state = '`+string(model.EventDispatching)+`', attempts = attempts + 1 WHERE id = $1`,
				events[i].ID,
			)
			if err != nil {
				return err
			}
			events[i].State = model.EventDispatching
			events[i].Attempts++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *statusEventRepository) MarkDispatched(ctx context.Context, eventID int64) error {
	_, err := r.storage.pool.Exec(ctx,
		`UPDATE status_events SET state = '`+string(model.EventDispatched)+`', dispatched_at = NOW() WHERE id = $1`,
		eventID,
	)
	return err
}

func (r *statusEventRepository) MarkFailed(ctx context.Context, eventID int64, maxAttempts int) error {
	_, err := r.storage.pool.Exec(ctx,
		`UPDATE status_events
         SET state = CASE WHEN attempts >= $2 THEN '`+string(model.EventFailed)+`' ELSE '`+string(model.EventPending)+`' END
         WHERE id = $1`,
		eventID, maxAttempts,
	)
	return err
}
