package di

import (
	"go.uber.org/fx"

	"github.com/velikanov/docflow/internal/app"
	"github.com/velikanov/docflow/internal/config"
	"github.com/velikanov/docflow/internal/logger"
	"github.com/velikanov/docflow/internal/pkg/auth"
	"github.com/velikanov/docflow/internal/server/http/router"
	"github.com/velikanov/docflow/internal/storage/postgres"
	"github.com/velikanov/docflow/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
