package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/velikanov/docflow/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage uses; it lets tests
// swap in pgxmock.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type documentRepository struct {
	storage *Storage
}

type notificationRepository struct {
	storage *Storage
}

type statusEventRepository struct {
	storage *Storage
}

type userRepository struct {
	storage *Storage
}

type clientRepository struct {
	storage *Storage
}

type commentRepository struct {
	storage *Storage
}

type historyRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Documents() repository.DocumentRepository {
	return &documentRepository{storage: s}
}

func (s *Storage) Notifications() repository.NotificationRepository {
	return &notificationRepository{storage: s}
}

func (s *Storage) StatusEvents() repository.StatusEventRepository {
	return &statusEventRepository{storage: s}
}

func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Clients() repository.ClientRepository {
	return &clientRepository{storage: s}
}

func (s *Storage) Comments() repository.CommentRepository {
	return &commentRepository{storage: s}
}

func (s *Storage) History() repository.HistoryRepository {
	return &historyRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id TEXT PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL,
            active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS clients (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS quotes (
            id TEXT PRIMARY KEY,
            number TEXT UNIQUE NOT NULL,
            parent_document_id TEXT,
            cart_session_id TEXT,
            client_id TEXT NOT NULL REFERENCES clients(id),
            items JSONB NOT NULL,
            total_amount NUMERIC(15,2) NOT NULL,
            notes TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS invoices (
            id TEXT PRIMARY KEY,
            number TEXT UNIQUE NOT NULL,
            parent_document_id TEXT,
            cart_session_id TEXT,
            client_id TEXT NOT NULL REFERENCES clients(id),
            items JSONB NOT NULL,
            total_amount NUMERIC(15,2) NOT NULL,
            notes TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            number TEXT UNIQUE NOT NULL,
            parent_document_id TEXT,
            cart_session_id TEXT,
            client_id TEXT NOT NULL REFERENCES clients(id),
            items JSONB NOT NULL,
            total_amount NUMERIC(15,2) NOT NULL,
            notes TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL,
            project_file_url TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS supplier_orders (
            id TEXT PRIMARY KEY,
            number TEXT UNIQUE NOT NULL,
            parent_document_id TEXT,
            cart_session_id TEXT,
            client_id TEXT NOT NULL REFERENCES clients(id),
            items JSONB NOT NULL,
            total_amount NUMERIC(15,2) NOT NULL,
            notes TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS notifications (
            id TEXT PRIMARY KEY,
            recipient_user_id TEXT NOT NULL,
            related_document_id TEXT NOT NULL,
            type TEXT NOT NULL,
            title TEXT NOT NULL,
            message TEXT NOT NULL,
            is_read BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS status_events (
            id BIGSERIAL PRIMARY KEY,
            document_id TEXT NOT NULL,
            document_type TEXT NOT NULL,
            number TEXT NOT NULL,
            old_status TEXT NOT NULL,
            new_status TEXT NOT NULL,
            client_id TEXT NOT NULL,
            state TEXT NOT NULL DEFAULT 'PENDING',
            attempts INTEGER NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            dispatched_at TIMESTAMPTZ
        )`,
		`CREATE TABLE IF NOT EXISTS document_comments (
            id TEXT PRIMARY KEY,
            document_id TEXT NOT NULL,
            author_id TEXT NOT NULL,
            text TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS document_history (
            id TEXT PRIMARY KEY,
            document_id TEXT NOT NULL,
            field TEXT NOT NULL,
            old_value TEXT NOT NULL DEFAULT '',
            new_value TEXT NOT NULL DEFAULT '',
            changed_by TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		// One non-cancelled document per cart session and kind. The race
		// loser of a concurrent checkout retries as a lookup.
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_quotes_cart_session ON quotes(cart_session_id)
            WHERE cart_session_id IS NOT NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_invoices_cart_session ON invoices(cart_session_id)
            WHERE cart_session_id IS NOT NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_orders_cart_session ON orders(cart_session_id)
            WHERE cart_session_id IS NOT NULL AND status <> 'CANCELLED'`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_supplier_orders_cart_session ON supplier_orders(cart_session_id)
            WHERE cart_session_id IS NOT NULL AND status <> 'CANCELLED'`,
		`CREATE INDEX IF NOT EXISTS idx_quotes_parent ON quotes(parent_document_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_invoices_parent ON invoices(parent_document_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_parent ON orders(parent_document_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_supplier_orders_parent ON supplier_orders(parent_document_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_dedup ON notifications(recipient_user_id, related_document_id, type, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_status_events_state ON status_events(state, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_comments_document ON document_comments(document_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_history_document ON document_history(document_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
