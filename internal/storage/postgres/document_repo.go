package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainerrors "github.com/velikanov/docflow/internal/domain/errors"
	"github.com/velikanov/docflow/internal/domain/model"
	"github.com/velikanov/docflow/internal/domain/status"
)

func tableFor(t model.DocumentType) string {
	switch t {
	case model.TypeQuote:
		return "quotes"
	case model.TypeInvoice:
		return "invoices"
	case model.TypeOrder:
		return "orders"
	default:
		return "supplier_orders"
	}
}

const baseDocColumns = "id, number, parent_document_id, cart_session_id, client_id, items, total_amount, notes, created_at, updated_at"

func selectColumns(t model.DocumentType) string {
	switch t {
	case model.TypeOrder:
		return baseDocColumns + ", status, project_file_url"
	case model.TypeSupplierOrder:
		return baseDocColumns + ", status"
	default:
		return baseDocColumns
	}
}

func scanDocument(t model.DocumentType, row pgx.Row) (*model.Document, error) {
	d := model.Document{Type: t}
	var (
		itemsRaw []byte
		total    string
		st       string
	)
	dest := []any{
		&d.ID, &d.Number, &d.ParentDocumentID, &d.CartSessionID, &d.ClientID,
		&itemsRaw, &total, &d.Notes, &d.CreatedAt, &d.UpdatedAt,
	}
	switch t {
	case model.TypeOrder:
		dest = append(dest, &st, &d.ProjectFileURL)
	case model.TypeSupplierOrder:
		dest = append(dest, &st)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(itemsRaw, &d.Items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	amount, err := decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("decode total: %w", err)
	}
	d.TotalAmount = amount
	d.Status = model.Status(st)
	return &d, nil
}

func (r *documentRepository) Create(ctx context.Context, doc *model.Document) (*model.Document, bool, error) {
	table := tableFor(doc.Type)
	itemsRaw, err := json.Marshal(doc.Items)
	if err != nil {
		return nil, false, fmt.Errorf("encode items: %w", err)
	}

	columns := "id, number, parent_document_id, cart_session_id, client_id, items, total_amount, notes"
	placeholders := "$1, $2, $3, $4, $5, $6, $7, $8"
	args := []any{
		doc.ID, doc.Number, doc.ParentDocumentID, doc.CartSessionID, doc.ClientID,
		itemsRaw, doc.TotalAmount.String(), doc.Notes,
	}
	// The conflict target is exactly the cart-session partial index, so only
	// the idempotency race is absorbed; any other unique violation (number,
	// primary key) surfaces as an error.
	conflict := "ON CONFLICT (cart_session_id) WHERE cart_session_id IS NOT NULL"
	if status.HasStatus(doc.Type) {
		columns += ", status"
		placeholders += ", $9"
		args = append(args, string(doc.Status))
		conflict += " AND status <> 'CANCELLED'"
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES (%s) %s DO NOTHING RETURNING created_at, updated_at`,
		table, columns, placeholders, conflict,
	)

	created := *doc
	err = r.storage.pool.QueryRow(ctx, query, args...).Scan(&created.CreatedAt, &created.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// The partial unique index fired: another request already holds
		// this cart session. Hand back the winner.
		if doc.CartSessionID != nil {
			existing, ferr := r.FindByCartSession(ctx, doc.Type, *doc.CartSessionID)
			if ferr == nil {
				return existing, false, nil
			}
			if !errors.Is(ferr, domainerrors.ErrNotFound) {
				return nil, false, ferr
			}
		}
		return nil, false, domainerrors.ErrAlreadyExists
	}
	if err != nil {
		return nil, false, fmt.Errorf("insert %s: %w", table, err)
	}

	return &created, true, nil
}

func (r *documentRepository) GetByTypeAndID(ctx context.Context, t model.DocumentType, id string) (*model.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, selectColumns(t), tableFor(t))
	doc, err := scanDocument(t, r.storage.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *documentRepository) GetByID(ctx context.Context, id string) (*model.Document, error) {
	for _, t := range model.DocumentTypes {
		doc, err := r.GetByTypeAndID(ctx, t, id)
		if errors.Is(err, domainerrors.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return doc, nil
	}
	return nil, domainerrors.ErrNotFound
}

func (r *documentRepository) FindByCartSession(ctx context.Context, t model.DocumentType, sessionID string) (*model.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE cart_session_id = $1`, selectColumns(t), tableFor(t))
	if status.HasStatus(t) {
		query += ` AND status <> 'CANCELLED'`
	}
	query += ` LIMIT 1`

	doc, err := scanDocument(t, r.storage.pool.QueryRow(ctx, query, sessionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *documentRepository) ListChildren(ctx context.Context, parentID string) ([]model.Document, error) {
	var children []model.Document
	for _, t := range model.DocumentTypes {
		query := fmt.Sprintf(
			`SELECT %s FROM %s WHERE parent_document_id = $1 ORDER BY created_at DESC`,
			selectColumns(t), tableFor(t),
		)
		rows, err := r.storage.pool.Query(ctx, query, parentID)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			doc, err := scanDocument(t, rows)
			if err != nil {
				rows.Close()
				return nil, err
			}
			children = append(children, *doc)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, err
		}
	}

	sort.SliceStable(children, func(i, j int) bool {
		return children[i].CreatedAt.After(children[j].CreatedAt)
	})
	return children, nil
}

func (r *documentRepository) UpdateStatus(ctx context.Context, t model.DocumentType, id string, expected, next model.Status, notes string) (*model.Document, error) {
	table := tableFor(t)
	var updated *model.Document

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		query := fmt.Sprintf(
			`UPDATE %s SET status = $1, notes = COALESCE(NULLIF($2, ''), notes), updated_at = NOW()
             WHERE id = $3 AND status = $4 RETURNING %s`,
			table, selectColumns(t),
		)
		doc, err := scanDocument(t, tx.QueryRow(ctx, query, string(next), notes, id, string(expected)))
		if errors.Is(err, pgx.ErrNoRows) {
			var current string
			serr := tx.QueryRow(ctx, fmt.Sprintf(`SELECT status FROM %s WHERE id = $1`, table), id).Scan(&current)
			if errors.Is(serr, pgx.ErrNoRows) {
				return domainerrors.ErrNotFound
			}
			if serr != nil {
				return serr
			}
			return &domainerrors.ConflictError{DocumentID: id, Expected: string(expected), Actual: current}
		}
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO status_events (document_id, document_type, number, old_status, new_status, client_id)
             VALUES ($1, $2, $3, $4, $5, $6)`,
			id, string(t), doc.Number, string(expected), string(next), doc.ClientID,
		)
		if err != nil {
			return fmt.Errorf("enqueue status event: %w", err)
		}

		updated = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *documentRepository) UpdateItems(ctx context.Context, t model.DocumentType, id string, items []model.Item, total decimal.Decimal) (*model.Document, error) {
	itemsRaw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}

	query := fmt.Sprintf(
		`UPDATE %s SET items = $1, total_amount = $2, updated_at = NOW() WHERE id = $3 RETURNING %s`,
		tableFor(t), selectColumns(t),
	)
	doc, err := scanDocument(t, r.storage.pool.QueryRow(ctx, query, itemsRaw, total.String(), id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *documentRepository) AttachProjectFile(ctx context.Context, id string, fileURL string) error {
	tag, err := r.storage.pool.Exec(ctx,
		`UPDATE orders SET project_file_url = $1, updated_at = NOW() WHERE id = $2`,
		fileURL, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *documentRepository) Delete(ctx context.Context, t model.DocumentType, id string) error {
	tag, err := r.storage.pool.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, tableFor(t)), id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}
