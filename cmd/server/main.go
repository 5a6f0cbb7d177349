package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/tendant/simple-blog/pkg/simpleblog/config"
)

// Config is read from the environment, optionally seeded from a .env file
type Config struct {
	Port             string        `env:"PORT" env-default:"8080"`
	Environment      string        `env:"ENVIRONMENT" env-default:"development"`
	StorageURL       string        `env:"STORAGE_URL" env-default:"memory://"`
	CollectionPrefix string        `env:"COLLECTION_PREFIX" env-default:""`
	CatalogLanguage  string        `env:"CATALOG_LANGUAGE" env-default:"en"`
	AccessKeyID      string        `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey  string        `env:"AWS_SECRET_ACCESS_KEY"`
	RequestTimeout   time.Duration `env:"REQUEST_TIMEOUT" env-default:"60s"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

func main() {
	_ = godotenv.Load()

	var env Config
	if err := cleanenv.ReadEnv(&env); err != nil {
		slog.Error("Failed to read configuration", "err", err)
		os.Exit(1)
	}

	setupLogger(env.Environment)

	cfg, err := config.Load(serverOptions(env)...)
	if err != nil {
		slog.Error("Invalid configuration", "err", err)
		os.Exit(1)
	}

	svc, err := cfg.BuildService(context.Background(), slog.Default())
	if err != nil {
		slog.Error("Failed to build service", "err", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: NewHTTPServer(svc, cfg, env.RequestTimeout).Routes(),
	}

	go func() {
		slog.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment, "storage", cfg.Storage.Type)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), env.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "err", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}

// serverOptions maps the environment onto config options. AWS credentials
// only apply to s3:// storage.
func serverOptions(env Config) []config.Option {
	opts := []config.Option{
		config.WithPort(env.Port),
		config.WithEnvironment(env.Environment),
		config.WithStorageURL(env.StorageURL),
		config.WithCollectionPrefix(env.CollectionPrefix),
		config.WithCatalogLanguage(env.CatalogLanguage),
	}
	if env.AccessKeyID != "" {
		if storage, err := config.ParseStorageURL(env.StorageURL); err == nil && storage.Type == config.StorageS3 {
			opts = append(opts, config.WithS3Credentials(env.AccessKeyID, env.SecretAccessKey))
		}
	}
	return opts
}

func setupLogger(environment string) {
	var handler slog.Handler
	if environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
		})
	}
	slog.SetDefault(slog.New(handler))
}
