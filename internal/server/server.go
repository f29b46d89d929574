// Package server serves the Byteik landing page, its live session endpoint and
// the contact API.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/byteik/site/internal/config"
	"github.com/byteik/site/internal/errors"
	"github.com/byteik/site/internal/i18n"
	"github.com/byteik/site/internal/live"
	"github.com/byteik/site/internal/logging"
	"github.com/byteik/site/internal/sections"
	"github.com/byteik/site/internal/store"
)

// Routes.
const (
	ContactPath = "/api/contact"
	LivePath    = "/live"
	ScriptPath  = "/static/live.js"
	HealthPath  = "/health"
)

// SiteServer serves the site.
type SiteServer struct {
	config   *config.Config
	logger   logging.Logger
	store    store.Store
	bundle   *i18n.Bundle
	registry *sections.Registry
	limiter  *RateLimiter
	ips      *ClientIPs
	live     *live.Handler
	errs     *errors.ErrorHandler

	httpServer   *http.Server
	serverMutex  sync.RWMutex
	isShutdown   bool
	shutdownOnce sync.Once
}

// New creates a site server that saves contact submissions into st.
func New(cfg *config.Config, st store.Store, logger logging.Logger) (*SiteServer, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if st == nil {
		return nil, errors.NewConfigError(errors.ErrCodeConfigInvalid, "server needs a contact store")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	bundle, err := i18n.New(cfg.Site.Locales, cfg.Site.DefaultLocale)
	if err != nil {
		return nil, err
	}

	ips, err := NewClientIPs(cfg.Server.TrustedProxies)
	if err != nil {
		return nil, err
	}

	logger = logger.WithComponent("server")
	s := &SiteServer{
		config:   cfg,
		logger:   logger,
		errs:     errors.NewErrorHandler(logger),
		store:    st,
		bundle:   bundle,
		registry: sections.Default(),
		ips:      ips,
		limiter: NewRateLimiter(&RateLimitConfig{
			RequestsPerMinute: cfg.Contact.RatePerMinute,
			BurstSize:         cfg.Contact.Burst,
			Enabled:           true,
		}, logger),
	}
	s.live = &live.Handler{
		Registry:       s.registry,
		Bundle:         bundle,
		Submitter:      store.Submitter(st),
		Timeout:        cfg.Contact.Timeout,
		Logger:         logger,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Admit:          s.admitLive,
	}
	return s, nil
}

// admitLive spends a token from the contact rate limiter for a submission
// made over the live session. Live and POST submissions share one bucket
// per client.
func (s *SiteServer) admitLive(r *http.Request) error {
	client := s.ips.Of(r)
	d := s.limiter.Allow(client)
	if d.Allowed {
		return nil
	}
	s.logger.Warn(r.Context(), nil, "Rate limit exceeded",
		"client_ip", client,
		"path", r.URL.Path,
		"retry_after", d.RetryAfter.Round(time.Second).String())
	return errors.NewNetworkError(errors.ErrCodeSubmissionFailed, "rate limit exceeded", nil).
		WithContext("client_ip", client)
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *SiteServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /{locale}", s.handleLocale)
	mux.HandleFunc("GET "+HealthPath, s.handleHealth)
	mux.Handle("GET "+ScriptPath, live.Script())
	mux.Handle("GET "+LivePath, s.live)
	mux.Handle("POST "+ContactPath, RateLimitMiddleware(s.limiter, s.ips)(http.HandlerFunc(s.handleContact)))
	mux.HandleFunc("/", s.handleNotFound)

	return s.addMiddleware(mux)
}

func (s *SiteServer) addMiddleware(handler http.Handler) http.Handler {
	secured := SecurityHeadersFor(s.config).Middleware(handler)
	return RecoveryMiddleware(s.logger)(LoggingMiddleware(s.logger, s.ips)(secured))
}

// Start listens on the configured address and serves until Shutdown.
func (s *SiteServer) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Address())
	if err != nil {
		return errors.NewNetworkError(errors.ErrCodeInternalError,
			fmt.Sprintf("listen on %s", s.config.Address()), err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until Shutdown is called.
func (s *SiteServer) Serve(ctx context.Context, listener net.Listener) error {
	s.serverMutex.Lock()
	if s.isShutdown {
		s.serverMutex.Unlock()
		listener.Close()
		return http.ErrServerClosed
	}
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}
	server := s.httpServer
	s.serverMutex.Unlock()

	s.logger.Info(ctx, "Serving site",
		"address", listener.Addr().String(),
		"locales", s.bundle.Locales(),
		"backend", s.config.Contact.Backend)

	if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for open requests and
// contact submissions from live sessions. The store is no longer written to
// once Shutdown returns nil.
func (s *SiteServer) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.serverMutex.Lock()
		s.isShutdown = true
		server := s.httpServer
		s.serverMutex.Unlock()

		s.limiter.Stop()

		if server != nil {
			shutdownErr = server.Shutdown(ctx)
		}
		if err := s.live.Drain(ctx); err != nil {
			s.logger.Warn(ctx, err, "Live submissions still running")
			if shutdownErr == nil {
				shutdownErr = err
			}
		}
		s.logger.Info(ctx, "Site server stopped")
	})
	return shutdownErr
}
