package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nidhonkar/blockchain-adoption-pro/internal/dashboard"
	"github.com/Nidhonkar/blockchain-adoption-pro/internal/table"
)

// Panels provides the data behind each endpoint.
type Panels interface {
	TransactionCounts(ctx context.Context) (dashboard.Result[*table.TimeSeries], error)
	TransactionCountsMA(ctx context.Context) (dashboard.Result[*table.TimeSeries], error)
	StablecoinCaps(ctx context.Context) (dashboard.Result[*table.Caps], error)
	TransactionsComparison() (*table.TimeSeries, error)
	IndexedAdoption() ([]dashboard.IndexPoint, error)
	Remittance(corridor string, amount float64) (dashboard.RemittanceQuote, error)
	Overview() (dashboard.Overview, error)
	Dataset(name string) (*table.Dataset, error)
}

// Config holds server settings.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Version         string
}

// Server serves the dashboard API.
type Server struct {
	cfg    Config
	panels Panels
	logger *slog.Logger
	engine *gin.Engine
	http   *http.Server
}

// New creates a Server and registers its routes. The gin mode is process-wide
// and left to the caller.
func New(cfg Config, panels Panels, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestID(), accessLog(logger))

	s := &Server{
		cfg:    cfg,
		panels: panels,
		logger: logger,
		engine: engine,
	}
	s.setupRoutes()

	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	api := s.engine.Group("/api")
	api.GET("/health", s.getHealth)
	api.GET("/overview", s.getOverview)
	api.GET("/transactions/live", s.getLiveTransactions)
	api.GET("/transactions/comparison", s.getTransactionsComparison)
	api.GET("/stablecoins", s.getStablecoins)
	api.GET("/adoption/indexed", s.getIndexedAdoption)
	api.GET("/supply", s.getSupply)
	api.GET("/remittance", s.getRemittance)
	api.GET("/datasets", s.listDatasets)
	api.GET("/datasets/:name", s.getDataset)
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting api server", "addr", s.cfg.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown api server: %w", err)
	}
	s.logger.Info("api server stopped")
	return nil
}
