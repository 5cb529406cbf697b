package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/velikanov/docflow/internal/config"
	"github.com/velikanov/docflow/internal/domain/repository"
	"github.com/velikanov/docflow/internal/server/http/handlers"
	"github.com/velikanov/docflow/internal/server/http/middleware"
	"github.com/velikanov/docflow/internal/usecase"
	"github.com/velikanov/docflow/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		newFacade,
		func(f *DocflowFacade) handlers.DocflowFacade { return f },
		func(f *DocflowFacade) middleware.TokenParser { return f },
		newHTTPServer,
		newNotificationProcessor,
	),
	fx.Invoke(registerLifecycle),
)

type facadeParams struct {
	fx.In

	Auth          *usecase.AuthUseCase
	Documents     *usecase.DocumentUseCase
	Transitions   *usecase.TransitionUseCase
	Chains        *usecase.ChainUseCase
	Notifications *usecase.NotificationUseCase
	Comments      *usecase.CommentUseCase
	History       *usecase.HistoryUseCase
	Events        repository.StatusEventRepository
	Config        *config.Config
}

func newFacade(p facadeParams) *DocflowFacade {
	return NewDocflowFacade(
		p.Auth,
		p.Documents,
		p.Transitions,
		p.Chains,
		p.Notifications,
		p.Comments,
		p.History,
		p.Events,
		p.Config.MaxEventAttempts,
	)
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type workerParams struct {
	fx.In

	Facade *DocflowFacade
	Config *config.Config
	Logger *slog.Logger
}

func newNotificationProcessor(p workerParams) *worker.NotificationProcessor {
	return worker.NewNotificationProcessor(
		p.Facade,
		p.Config.EventPollInterval,
		p.Config.MaxEventsBatch,
		p.Config.WorkerPoolSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Worker     *worker.NotificationProcessor
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting docflow", slog.String("addr", p.Server.Addr))
			p.Worker.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Worker.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("docflow stopped")
			return nil
		},
	})
}
