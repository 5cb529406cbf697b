package repository

import (
	"context"

	"github.com/velikanov/docflow/internal/domain/model"
)

// UserRepository describes persistence operations for accounts.
type UserRepository interface {
	Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.User, error)
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	ListActiveByRole(ctx context.Context, role model.Role) ([]model.User, error)
}

// ClientRepository provides access to customer records.
type ClientRepository interface {
	Create(ctx context.Context, name, email, phone string) (*model.Client, error)
	GetByID(ctx context.Context, id string) (*model.Client, error)
}
