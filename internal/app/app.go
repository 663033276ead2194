package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/openaac/pictoapi/internal/adapter/llm"
	"github.com/openaac/pictoapi/internal/adapter/postgres"
	"github.com/openaac/pictoapi/internal/adapter/postgres/pecsstore"
	"github.com/openaac/pictoapi/internal/config"
	"github.com/openaac/pictoapi/internal/corpus"
	"github.com/openaac/pictoapi/internal/service/resolver"
	"github.com/openaac/pictoapi/internal/transport/middleware"
	"github.com/openaac/pictoapi/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires the resolution pipeline, and serves HTTP until the
// context is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("default_language", cfg.Corpus.DefaultLanguage),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	store := pecsstore.New(pool, pecsstore.Config{
		PhaseLimit:      cfg.Resolver.FuzzyPhaseLimit,
		PhaseTwoTrigger: cfg.Resolver.FuzzyPhaseTwoTrigger,
	})
	cache := corpus.New(cfg.Corpus.Dir, cfg.Corpus.DefaultLanguage, logger)
	tokenizer := llm.New(cfg.LLM, logger)
	svc := resolver.New(store, cache, tokenizer, cfg.Resolver, cfg.Corpus.DefaultLanguage, logger)

	analyze := rest.NewAnalyzeHandler(svc, logger)
	health := rest.NewHealthHandler(pool, BuildVersion())

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/analyze/process-phrase", analyze.ProcessPhrase)
	mux.HandleFunc("POST /api/v1/analyze/get-options", analyze.GetOptions)
	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
