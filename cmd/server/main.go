package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jacha_aru_api_go/config"
	"jacha_aru_api_go/db"
	"jacha_aru_api_go/handlers"
	"jacha_aru_api_go/logger"
	"jacha_aru_api_go/models"
	"jacha_aru_api_go/services"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 15 * time.Second
	pruneInterval   = time.Hour
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.L().Fatal("failed to load configuration", zap.Error(err))
	}

	logger.Init(logger.Config{Environment: cfg.Environment, Level: cfg.LogLevel, Service: "jacha-aru-api"})
	defer logger.Sync()
	log := logger.Named("server")

	if err := db.Initialize(cfg); err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	services.InitializeStorage(cfg)
	notifier := services.NewResendNotifier(cfg)
	monitor := services.NewLoginMonitor(notifier, cfg.SecurityAlertEmail)

	e := handlers.NewRouter(handlers.Dependencies{
		Config:   cfg,
		Tokens:   services.NewJWTService(cfg.JWTSecret, cfg.JWTTTL),
		Notifier: notifier,
		Monitor:  monitor,
	})
	e.HideBanner = true
	e.HidePort = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		addr := net.JoinHostPort(cfg.ServerHost, cfg.ServerPort)
		log.Info("server starting", zap.String("addr", addr), zap.String("environment", cfg.Environment))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(pruneInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				monitor.Prune()
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", zap.Error(err))
		os.Exit(1)
	}
	log.Info("server stopped")
}
