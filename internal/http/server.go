// Package http exposes the JSON API. Every resource route sits behind the
// session gate; handlers pull the caller's credential from the request
// context and pass it to the services explicitly.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"combine/internal/log"
	"combine/internal/middleware/auth"
	"combine/internal/middleware/ratelimit"
	"combine/internal/middleware/security"
	"combine/internal/middleware/trace"
	"combine/internal/services"
	"combine/internal/sheets"
)

type Server struct {
	http.Server

	users       *services.Users
	accounts    *services.Accounts
	categories  *services.Categories
	allocations *services.Allocations
	ledger      *services.Ledger

	store        sheets.Store
	logger       *log.Logger
	limiter      *ratelimit.Limiter
	storeTimeout time.Duration
	shutdownOnce sync.Once
}

type Options struct {
	Addr              string
	Store             sheets.Store
	Verifier          auth.Verifier
	Logger            *log.Logger
	RequestsPerMinute int
	StoreTimeout      time.Duration
}

// NewServer configures routes and the middleware chain, returning a
// ready-to-run server.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	if opts.StoreTimeout <= 0 {
		opts.StoreTimeout = 15 * time.Second
	}

	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:    opts.Addr,
			Handler: mux,
		},
		users:        services.NewUsers(opts.Store, logger),
		accounts:     services.NewAccounts(opts.Store, logger),
		categories:   services.NewCategories(opts.Store, logger),
		allocations:  services.NewAllocations(opts.Store, logger),
		ledger:       services.NewLedger(opts.Store, logger),
		store:        opts.Store,
		logger:       logger.WithComponent(log.ComponentHTTP),
		limiter:      ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RequestsPerMinute}),
		storeTimeout: opts.StoreTimeout,
	}

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	tracer := trace.NewMiddleware(logger, clientIP)
	gate := auth.Middleware(opts.Verifier, logger.WithComponent(log.ComponentAuth))
	limited := s.limiter.Middleware(clientIP)

	// Order: outermost first. The gate runs last so rejected requests are
	// still traced and rate limited.
	api := func(h http.HandlerFunc) http.Handler {
		return chain(h, headers.Middleware, tracer.Middleware, limited, gate)
	}

	mux.Handle("/users", api(s.handleUsers))
	mux.Handle("/accounts", api(s.handleAccounts))
	mux.Handle("/categories", api(s.handleCategories))
	mux.Handle("/allocation", api(s.handleAllocation))
	mux.Handle("/ledger", api(s.handleLedger))
	mux.Handle("/ledger/export", api(s.handleLedgerExport))
	mux.Handle("/dashboard/summary", api(s.handleDashboardSummary))
	mux.Handle("/sheets/init", api(s.handleSheetsInit))

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	return s
}

func chain(h http.Handler, mw ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

// Shutdown stops the HTTP server and the rate limiter's cleanup goroutine.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// storeContext bounds a request's store work so a stalled backend cannot
// hold the connection open indefinitely.
func (s *Server) storeContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), s.storeTimeout)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
