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

	"github.com/neexbeast/quest-generator/internal/api"
	"github.com/neexbeast/quest-generator/internal/config"
	"github.com/neexbeast/quest-generator/internal/generator"
	"github.com/neexbeast/quest-generator/internal/logging"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stderr, nil)).Error("loading configuration", "err", err)
		os.Exit(1)
	}

	log := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stdout)

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	strategy, err := newStrategy(context.Background(), cfg, generator.NewHTTPClient(cfg.ProviderTimeout))
	if err != nil {
		return err
	}

	// Wire dependencies.
	service := generator.NewService(strategy, log)
	handlers := api.NewHandlers(service, log)
	router := api.NewRouter(handlers, cfg.CORSAllowedOrigin)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.ProviderTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("server goroutine panicked", "recover", r)
				errCh <- fmt.Errorf("server panicked: %v", r)
			}
		}()
		log.Info("server starting",
			"port", cfg.Port,
			"provider", strategy.Name(),
			"health", fmt.Sprintf("http://localhost:%s/health", cfg.Port),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("listening: %w", err)
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("server shut down cleanly")
	return nil
}

// newStrategy picks the provider named by QUEST_PROVIDER.
func newStrategy(ctx context.Context, cfg config.Config, client *http.Client) (generator.Strategy, error) {
	switch cfg.Provider {
	case config.ProviderAnthropic:
		return generator.NewToolStrategy(generator.ToolConfig{
			APIKey:    cfg.AnthropicAPIKey,
			BaseURL:   cfg.AnthropicBaseURL,
			Model:     cfg.AnthropicModel,
			MaxTokens: cfg.MaxTokens,
		}, client), nil
	case config.ProviderGemini:
		s, err := generator.NewJSONStrategy(ctx, generator.JSONConfig{
			APIKey:    cfg.GeminiAPIKey,
			BaseURL:   cfg.GeminiBaseURL,
			Model:     cfg.GeminiModel,
			MaxTokens: cfg.MaxTokens,
		}, client)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
