package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/tinoe0404/eTuckshop-sub000/internal/adapter/whatsapp"
	"github.com/tinoe0404/eTuckshop-sub000/internal/chat"
	"github.com/tinoe0404/eTuckshop-sub000/internal/config"
	"github.com/tinoe0404/eTuckshop-sub000/internal/server/http/handlers"
	"github.com/tinoe0404/eTuckshop-sub000/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewTuckshopFacade,
		func(f *TuckshopFacade) handlers.TuckshopFacade { return f },
		func(f *TuckshopFacade) chat.Facade { return f },
		newHTTPServer,
		newMessageProcessor,
		func(p *worker.MessageProcessor) handlers.Enqueuer { return p },
	),
	fx.Invoke(registerLifecycle),
)

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

	Pipeline *chat.Pipeline
	Sender   whatsapp.Client
	Config   *config.Config
	Logger   *slog.Logger
}

func newMessageProcessor(p workerParams) *worker.MessageProcessor {
	return worker.NewMessageProcessor(
		p.Pipeline,
		p.Sender,
		p.Config.WorkerPoolSize,
		p.Config.QueueSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Worker     *worker.MessageProcessor
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting tuckshop", slog.String("addr", p.Server.Addr))
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
			p.Logger.Info("tuckshop stopped")
			return nil
		},
	})
}
