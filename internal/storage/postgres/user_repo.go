package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainerrors "github.com/velikanov/docflow/internal/domain/errors"
	"github.com/velikanov/docflow/internal/domain/model"
)

func (r *userRepository) Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.User, error) {
	user := model.User{
		ID:           uuid.NewString(),
		Login:        login,
		PasswordHash: passwordHash,
		Role:         role,
		Active:       true,
	}

	err := r.storage.pool.QueryRow(ctx,
		`INSERT INTO users (id, login, password_hash, role) VALUES ($1, $2, $3, $4) RETURNING created_at`,
		user.ID, login, passwordHash, string(role),
	).Scan(&user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainerrors.ErrAlreadyExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return &user, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	var role string
	err := row.Scan(&u.ID, &u.Login, &u.PasswordHash, &role, &u.Active, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	u.Role = model.Role(role)
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	user, err := scanUser(r.storage.pool.QueryRow(ctx,
		`SELECT id, login, password_hash, role, active, created_at FROM users WHERE login = $1`, login))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := scanUser(r.storage.pool.QueryRow(ctx,
		`SELECT id, login, password_hash, role, active, created_at FROM users WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) ListActiveByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	rows, err := r.storage.pool.Query(ctx,
		`SELECT id, login, password_hash, role, active, created_at FROM users
         WHERE role = $1 AND active = TRUE ORDER BY created_at`,
		string(role),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *clientRepository) Create(ctx context.Context, name, email, phone string) (*model.Client, error) {
	client := model.Client{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
		Phone: phone,
	}

	err := r.storage.pool.QueryRow(ctx,
		`INSERT INTO clients (id, name, email, phone) VALUES ($1, $2, $3, $4) RETURNING created_at`,
		client.ID, name, email, phone,
	).Scan(&client.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert client: %w", err)
	}

	return &client, nil
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*model.Client, error) {
	var c model.Client
	err := r.storage.pool.QueryRow(ctx,
		`SELECT id, name, email, phone, created_at FROM clients WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
