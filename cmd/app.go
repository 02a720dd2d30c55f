package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/teemow/tasknotes/internal/auth"
	"github.com/teemow/tasknotes/internal/instrumentation"
	"github.com/teemow/tasknotes/internal/render"
	"github.com/teemow/tasknotes/internal/settings"
	"github.com/teemow/tasknotes/internal/tasks"
)

// app bundles the wired-up components a subcommand needs. Not every
// command uses every field; login for example never builds a client.
type app struct {
	settings   *settings.FileStore
	auth       *auth.Store
	client     *tasks.Client
	controller *render.Controller
	provider   *instrumentation.Provider
	logger     *slog.Logger
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newAuthStore loads persisted settings and restores the token state.
// Commands that only need the auth side stop here.
func newAuthStore(logger *slog.Logger) (*settings.FileStore, *auth.Store, error) {
	store, err := settings.NewFileStore(configPath)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := store.Load()
	if err != nil {
		return nil, nil, err
	}

	clientID := cfg.ClientID
	clientSecret := cfg.ClientSecret
	if env := os.Getenv("GOOGLE_CLIENT_ID"); env != "" {
		clientID = env
	}
	if env := os.Getenv("GOOGLE_CLIENT_SECRET"); env != "" {
		clientSecret = env
	}

	authStore := auth.NewStore(store, logger)
	authStore.SetCredentials(clientID, clientSecret)
	if cfg.Token != nil {
		authStore.SetToken(cfg.Token)
	}
	return store, authStore, nil
}

// newApp wires the full stack for commands that talk to the remote.
func newApp(ctx context.Context) (*app, error) {
	logger := newLogger()

	store, authStore, err := newAuthStore(logger)
	if err != nil {
		return nil, err
	}
	if !authStore.Authenticated() {
		return nil, fmt.Errorf("not signed in; run 'tasknotes login' first")
	}

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version
	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	authStore.SetMetrics(provider.Metrics())

	transport := &auth.Transport{Store: authStore}
	client, err := tasks.NewClient(ctx, tasks.Config{
		HTTPClient: transport.Client(),
		Logger:     logger,
		Metrics:    provider.Metrics(),
	})
	if err != nil {
		return nil, err
	}

	controller := render.NewController(render.ControllerConfig{
		Source:  client,
		Logger:  logger,
		Metrics: provider.Metrics(),
		Tracer:  provider.Tracer("render"),
	})

	return &app{
		settings:   store,
		auth:       authStore,
		client:     client,
		controller: controller,
		provider:   provider,
		logger:     logger,
	}, nil
}

// shutdown flushes instrumentation. Safe on a partially built app.
func (a *app) shutdown(ctx context.Context) {
	if a.provider != nil {
		if err := a.provider.Shutdown(ctx); err != nil {
			a.logger.Warn("instrumentation shutdown failed", slog.String("error", err.Error()))
		}
	}
}
