package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"verifyserver/internal/codestore"
	"verifyserver/internal/config"
	"verifyserver/internal/httpapi"
	"verifyserver/internal/mailer"
	"verifyserver/internal/verify"
)

// Seams for tests.
var (
	loadConfig     = config.Load
	openStore      = codestore.Open
	newSMTP        = mailer.NewSMTP
	listenAndServe = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownServer = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		slog.Error("verifyserver exited", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := openStore(ctx, codestore.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer store.Close()

	mailerSvc, err := newMailer(cfg)
	if err != nil {
		return fmt.Errorf("init mailer: %w", err)
	}

	service := verify.NewService(store, mailerSvc, cfg.SMTPFrom, logger)
	api := httpapi.New(service, buildSettings(cfg), logger)

	srv := buildServer(fmt.Sprintf(":%d", cfg.Port), api.Handler())

	errCh := make(chan error, 1)
	go func() {
		logger.Info("verifyserver listening", slog.String("addr", srv.Addr))
		if err := listenAndServe(srv); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := shutdownServer(srv, shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func buildServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func newMailer(cfg config.Config) (mailer.Mailer, error) {
	if cfg.SMTPHost == "" {
		return &mailer.LogMailer{}, nil
	}
	return newSMTP(mailer.SMTPConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
	})
}

func buildSettings(cfg config.Config) httpapi.Settings {
	return httpapi.Settings{
		RequestIPLimit:  cfg.RequestIPLimit,
		RequestIPWindow: time.Duration(cfg.RequestIPWindow) * time.Minute,
	}
}
