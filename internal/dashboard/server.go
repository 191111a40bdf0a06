// Package dashboard serves the browser dashboard and its JSON API over a
// built warehouse.
package dashboard

import (
	"context"
	_ "embed"
	"errors"
	"net/http"
	"time"

	"github.com/salesdash/salesdash/internal/logging"
	"github.com/salesdash/salesdash/internal/warehouse"
)

//go:embed index.html
var indexHTML []byte

// Config holds the server settings.
type Config struct {
	Addr            string
	RateLimitRPS    float64
	RateLimitBurst  int
	ShutdownTimeout time.Duration
}

// Server is the dashboard HTTP server.
type Server struct {
	cfg     Config
	handler http.Handler
}

// NewServer wires routes and middleware over the warehouse.
func NewServer(wh *warehouse.Warehouse, cfg Config) *Server {
	api := NewAPIHandlers(wh)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", handleIndex)
	mux.HandleFunc("GET /health", api.HandleHealth)
	mux.HandleFunc("GET /api/cities", api.HandleCities)
	mux.HandleFunc("GET /api/popularity", api.HandlePopularity)
	mux.HandleFunc("GET /api/city-profit", api.HandleCityProfit)
	mux.HandleFunc("GET /api/city-years", api.HandleCityYears)

	chain := Chain(
		Recovery(),
		RequestLogger(),
		RateLimit(NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)),
	)

	return &Server{
		cfg:     cfg,
		handler: chain(mux),
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Run serves until ctx is cancelled, then shuts down gracefully within the
// configured timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", s.cfg.Addr).Msg("Dashboard listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		logging.Info().Msg("Shutting down dashboard")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}
