// Package http exposes the service over a JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	applog "vitien/internal/log"
	"vitien/internal/middleware/ratelimit"
	"vitien/internal/middleware/security"
	"vitien/internal/middleware/tenant"
	"vitien/internal/middleware/trace"
	"vitien/internal/services"
	"vitien/internal/token"
)

type Server struct {
	http.Server

	auth         *services.AuthService
	wallets      *services.WalletService
	transactions *services.TransactionService
	statements   *services.StatementService
	tokens       *token.Manager

	rateLimiter  *ratelimit.Limiter
	shutdownOnce sync.Once
}

// Options carries the collaborators and tunables for NewServer.
type Options struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	DefaultTenantID string

	Auth         *services.AuthService
	Wallets      *services.WalletService
	Transactions *services.TransactionService
	Statements   *services.StatementService
	Tokens       *token.Manager

	RateLimit ratelimit.Config
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(opts Options) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:         opts.Addr,
			ReadTimeout:  opts.ReadTimeout,
			WriteTimeout: opts.WriteTimeout,
		},
		auth:         opts.Auth,
		wallets:      opts.Wallets,
		transactions: opts.Transactions,
		statements:   opts.Statements,
		tokens:       opts.Tokens,
		rateLimiter:  ratelimit.NewLimiter(opts.RateLimit),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /api/auth/google", s.handleLogin)

	mux.Handle("GET /api/wallets", s.authenticated(s.handleListWallets))
	mux.Handle("POST /api/wallets", s.authenticated(s.handleCreateWallet))
	mux.Handle("GET /api/wallets/{id}", s.authenticated(s.handleGetWallet))

	mux.Handle("GET /api/transactions", s.authenticated(s.handleListTransactions))
	mux.Handle("POST /api/transactions", s.authenticated(s.handleCreateTransaction))

	mux.Handle("GET /api/reports/statement", s.authenticated(s.handleStatement))
	mux.Handle("GET /api/reports/statement/export", s.authenticated(s.handleStatementExport))

	ipResolver := security.NewIPResolver()
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	tracer := trace.NewMiddleware(ipResolver.ExtractClientIP)
	// Reads are unthrottled; only writes count against the per-client budget.
	limitWrites := s.rateLimiter.Middleware(ipResolver.ExtractClientIP, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "60")
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
	})
	limited := func(next http.Handler) http.Handler {
		throttled := limitWrites(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
			default:
				throttled.ServeHTTP(w, r)
			}
		})
	}
	tenanted := tenant.Middleware(opts.DefaultTenantID, func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusBadRequest, "invalid tenant id")
	})
	logged := applog.Middleware(applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentHTTP))

	s.Handler = logged(tenanted(tracer.Middleware(limited(headers.Middleware(mux)))))
	return s
}

// Shutdown stops the server and its background cleanup goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}
