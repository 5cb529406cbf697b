package usecase

import (
	"go.uber.org/fx"

	"github.com/velikanov/docflow/internal/config"
	"github.com/velikanov/docflow/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	newDocumentUseCase,
	NewTransitionUseCase,
	NewChainUseCase,
	newNotificationUseCase,
	NewCommentUseCase,
	NewHistoryUseCase,
)

func newDocumentUseCase(documents repository.DocumentRepository, clients repository.ClientRepository, cfg *config.Config) *DocumentUseCase {
	return NewDocumentUseCase(documents, clients, cfg.CartSessionMaxAge)
}

func newNotificationUseCase(notifications repository.NotificationRepository, users repository.UserRepository, cfg *config.Config) *NotificationUseCase {
	return NewNotificationUseCase(notifications, users, cfg.DedupWindow)
}
