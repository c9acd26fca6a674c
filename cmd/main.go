// Package main wires the HTTP and websocket servers of the design
// request tracking service.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/AlexRizo/flowee-bodesa-backend/config"
	"github.com/AlexRizo/flowee-bodesa-backend/internal/blobstore"
	"github.com/AlexRizo/flowee-bodesa-backend/internal/realtime"
	"github.com/AlexRizo/flowee-bodesa-backend/internal/repository"
	"github.com/AlexRizo/flowee-bodesa-backend/internal/transport/http/middleware"
	handlers_fiber "github.com/AlexRizo/flowee-bodesa-backend/internal/transport/http/server/handlers-fiber"
	"github.com/AlexRizo/flowee-bodesa-backend/internal/transport/ws"
	"github.com/AlexRizo/flowee-bodesa-backend/internal/usecase"
	"github.com/AlexRizo/flowee-bodesa-backend/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		panic(err)
	}

	repo, err := repository.New(ctx, "postgres", log, cfg)
	if err != nil {
		log.Errorw("repository initialization error", "error", err)
		return
	}
	if err := repo.OnStart(ctx); err != nil {
		log.Errorw("repository start error", "error", err)
		return
	}
	defer func() {
		_ = repo.OnStop(context.Background())
	}()

	hub := realtime.NewHub(log, cfg.Realtime.ClientBuffer)
	blobs := blobstore.NewClient(log, cfg.Blobstore)

	timeout := cfg.HTTP.RequestTimeout
	uc := usecase.New(log, ctx, repo, blobs, hub, timeout)

	serv := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTP.RequestTimeout,
		WriteTimeout: cfg.HTTP.RequestTimeout,
		BodyLimit:    32 * 1024 * 1024,
	})
	serv.Use(recover.New())
	serv.Use(requestid.New())
	serv.Use(middleware.RequestLogger(log))

	serv.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	apiGroup := serv.Group("/api", middleware.Auth(cfg.Auth.Secret, uc))
	h := handlers_fiber.NewHandler(log, uc)
	h.Register(apiGroup)

	wsServer := &http.Server{
		Addr:    cfg.RealtimeAddr(),
		Handler: ws.NewServer(log, hub, uc, cfg.Auth.Secret, cfg.Realtime.HeartbeatInterval).Handler(),
	}

	go func() {
		if err := serv.Listen(cfg.ServerAddr()); err != nil {
			log.Errorw("failed to start server", "error", err)
		}
	}()
	go func() {
		if err := wsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("failed to start ws server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	done := make(chan struct{})
	go func() {
		_ = serv.Shutdown()
		_ = wsServer.Shutdown(shutdownCtx)
		close(done)
	}()

	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Warnw("server shutdown timeout", "timeout", cfg.Server.ShutdownTimeout)
	}
}
