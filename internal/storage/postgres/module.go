package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/velikanov/docflow/internal/config"
	"github.com/velikanov/docflow/internal/domain/repository"
)

// Module wires PostgreSQL storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.Factory { return s },
		func(s *Storage) repository.DocumentRepository { return s.Documents() },
		func(s *Storage) repository.NotificationRepository { return s.Notifications() },
		func(s *Storage) repository.StatusEventRepository { return s.StatusEvents() },
		func(s *Storage) repository.UserRepository { return s.Users() },
		func(s *Storage) repository.ClientRepository { return s.Clients() },
		func(s *Storage) repository.CommentRepository { return s.Comments() },
		func(s *Storage) repository.HistoryRepository { return s.History() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
