package http

import (
	"context"
	"net/http"
	"sync"

	"finease/internal/middleware/cors"
	"finease/internal/middleware/ratelimit"
	"finease/internal/middleware/trace"
	"finease/internal/services"
)

type Server struct {
	http.Server
	svc     *services.LedgerService
	limiter *ratelimit.Limiter

	shutdownOnce sync.Once
}

// Options tunes the transport middleware. Zero values fall back to the
// middleware defaults.
type Options struct {
	AllowedOrigins    []string
	RequestsPerMinute int
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, svc *services.LedgerService, opts Options) *Server {
	mux := http.NewServeMux()

	limiter := ratelimit.NewLimiter(ratelimit.Config{
		RequestsPerMinute: opts.RequestsPerMinute,
	})

	s := &Server{
		svc:     svc,
		limiter: limiter,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleHealth)

	mux.HandleFunc("GET /transactions", s.handleListTransactions)
	mux.HandleFunc("POST /transactions", s.handleCreateTransaction)
	mux.HandleFunc("GET /transactions/{id}", s.handleGetTransaction)
	mux.HandleFunc("PATCH /transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("PUT /transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("GET /overview", s.handleOverview)
	mux.HandleFunc("GET /report", s.handleCategoryReport)

	var handler http.Handler = mux
	handler = limiter.Middleware(handler)
	handler = trace.NewMiddleware(trace.ClientIP).Middleware(handler)
	handler = cors.NewMiddleware(cors.Config{AllowedOrigins: opts.AllowedOrigins}).Middleware(handler)

	s.Server = http.Server{
		Addr:    addr,
		Handler: handler,
	}

	return s
}

// Shutdown gracefully shuts down the server and its cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.limiter != nil {
			s.limiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
