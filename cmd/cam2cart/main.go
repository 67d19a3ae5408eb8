package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/NaiduBagana/cam2cart/config"
	"github.com/NaiduBagana/cam2cart/internal/db"
	"github.com/NaiduBagana/cam2cart/internal/handlers"
	"github.com/NaiduBagana/cam2cart/internal/loader"
	"github.com/NaiduBagana/cam2cart/internal/metrics"
	"github.com/NaiduBagana/cam2cart/internal/middleware"
	"github.com/NaiduBagana/cam2cart/internal/refresh"
	"github.com/NaiduBagana/cam2cart/internal/state"
	"github.com/NaiduBagana/cam2cart/internal/tracing"
	"github.com/NaiduBagana/cam2cart/logging"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func main() {
	logger := logging.GetSugaredLogger()
	defer logger.Sync()

	cfg := config.GetConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracer, err := tracing.Init(cfg.JaegerEndpoint)
	if err != nil {
		logger.Fatalw("failed to init tracing", "error", err)
	}

	journal := openJournal(ctx, cfg, logger)
	defer journal.Close()

	registry := metrics.NewRegistry()
	store := state.NewStore()
	rm := refresh.NewManager(loader.NewLoader(cfg, logger), store, journal, registry, logger)

	h := handlers.Handler{
		Refresher: rm,
		Views:     store,
		History:   journal,
		Logger:    logger,
	}

	// Initial activation. The page shows the loading screen until it ends.
	go rm.Refresh(ctx)

	server := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: initRouter(h, registry, cfg.CORSOrigins),
	}

	srvErr := make(chan error, 1)
	go func() {
		logger.Infow("server listening", "address", cfg.RunAddress, "orders_url", cfg.OrdersURL)
		srvErr <- server.ListenAndServe()
	}()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorw("server error", "error", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Errorw("server shutdown error", "error", err)
	}
	if err := tracer.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("tracing shutdown error", "error", err)
	}
	logger.Info("server stopped")
}

func openJournal(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) db.Journal {
	if cfg.DatabaseURI == "" {
		logger.Info("DATABASE_URI not set, load journal disabled")
		return db.NopJournal{}
	}

	manager, err := db.NewManager(ctx, cfg)
	if err != nil {
		logger.Warnw("load journal unavailable, continuing without it", "error", err)
		return db.NopJournal{}
	}
	return manager
}

func initRouter(h handlers.Handler, registry *metrics.Registry, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)

	withMiddlewares := func(hf http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, req *http.Request) {
			middleware.Conveyor(
				hf,
				h.Logger,
				middleware.WriteWithCompression,
				middleware.LogRequest,
				middleware.Trace,
			).ServeHTTP(w, req)
		}
	}

	r.Get(`/`, withMiddlewares(h.Page))
	r.Get(`/health`, h.Health)
	r.Method(http.MethodGet, `/metrics`, registry.Handler())

	r.Route(`/api`, func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Get(`/receipt`, withMiddlewares(h.Receipt))
		r.Post(`/receipt/refresh`, withMiddlewares(h.Refresh))
		r.Get(`/receipt/history`, withMiddlewares(h.LoadHistory))
	})

	return r
}
