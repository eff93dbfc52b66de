package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/assetorbit/engine/pkg/handlers/importer"
	enginemiddleware "github.com/assetorbit/engine/pkg/server/middleware"
	"github.com/assetorbit/engine/pkg/services/catalog"
	"github.com/assetorbit/engine/pkg/services/rules"
	"github.com/assetorbit/engine/pkg/services/transform"
)

type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server

	shutdownTimeout time.Duration
}

type Dependencies struct {
	Registry transform.Registry
	Engine   *rules.Engine
	Catalog  catalog.Service
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	handler := importer.NewHandler(
		config.Dependencies.Registry,
		config.Dependencies.Engine,
		config.Dependencies.Catalog,
	)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(enginemiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/sources", handler.ListSources)
		r.Get("/sources/{source}/mappings", handler.GetColumnMappings)
		r.Post("/sources/{source}/transform", handler.TransformRows)
		r.Post("/sources/{source}/validate", handler.ValidateFields)
		r.Post("/classify", handler.Classify)
		r.Post("/rules/test", handler.TestRule)
	})

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

// Router exposes the configured mux, mainly for tests.
func (w *WebAPI) Router() http.Handler {
	return w.router
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
