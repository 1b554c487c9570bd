package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/yigit/studyplan/internal/bootstrap"
	"github.com/yigit/studyplan/internal/config"
)

// Server holds the state for the HTTP server.
type Server struct {
	config *config.Config
	router *gin.Engine
	dbPool *pgxpool.Pool
	deps   *bootstrap.Dependencies
	logger zerolog.Logger
	http   *http.Server
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	dbPool, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, dbPool, lgr)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	router, err := bootstrap.SetupRouter(cfg, deps, lgr)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to setup router: %w", err)
	}

	return &Server{
		config: cfg,
		router: router,
		dbPool: dbPool,
		deps:   deps,
		logger: lgr,
	}, nil
}

// Run starts the HTTP server and background workers, and blocks until
// SIGINT/SIGTERM or a fatal server error, then shuts down gracefully.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	cleanup, err := NewTokenCleanup(s.config.Jobs.TokenCleanup, s.deps.Repos.TokenRepository, s.logger.With().Str("component", "token-cleanup").Logger())
	if err != nil {
		return err
	}

	s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
	return serve(ctx, s.http, []func(context.Context){s.deps.Hub.Run, cleanup.Run}, s.closePool, s.logger)
}

// httpServer is the part of *http.Server that serve drives.
type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// serve runs srv and the workers until ctx ends or srv fails. The server is
// then shut down, and release runs only after every worker has returned.
func serve(ctx context.Context, srv httpServer, workers []func(context.Context), release func(), lgr zerolog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, work := range workers {
		g.Go(func() error {
			work(gctx)
			return nil
		})
	}

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error starting server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		lgr.Info().Msg("Shutdown requested, stopping server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			lgr.Error().Err(err).Msg("HTTP server shutdown error")
			return fmt.Errorf("server shutdown completed with errors: %w", err)
		}
		lgr.Info().Msg("HTTP server gracefully stopped.")
		return nil
	})

	err := g.Wait()
	release()
	lgr.Info().Msg("Server shutdown process complete.")
	return err
}

const shutdownTimeout = 10 * time.Second

func (s *Server) closePool() {
	if s.dbPool != nil {
		s.logger.Info().Msg("Closing database connection pool...")
		s.dbPool.Close()
	}
}
