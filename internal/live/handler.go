package live

import (
	"context"
	_ "embed"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/byteik/site/internal/contact"
	"github.com/byteik/site/internal/errors"
	"github.com/byteik/site/internal/i18n"
	"github.com/byteik/site/internal/logging"
	"github.com/byteik/site/internal/sections"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed between two messages from the peer.
	idleWait = 5 * time.Minute

	// Send pings to peer with this period. Must be less than idleWait.
	pingPeriod = 30 * time.Second

	// Maximum message size allowed from peer. A scroll event carries every
	// section's bounds and the contact message can be long.
	maxMessageSize = 16 << 10
)

//go:embed live.js
var script []byte

// Script serves the browser side of the live session.
func Script() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=300")
		_, _ = w.Write(script)
	})
}

// Handler upgrades /live requests and runs one Session per connection. A
// Handler must not be copied after first use.
type Handler struct {
	Registry  *sections.Registry
	Bundle    *i18n.Bundle
	Submitter contact.Submitter
	Timeout   time.Duration
	Logger    logging.Logger
	// AllowedOrigins are host[:port] values accepted besides the request's
	// own host.
	AllowedOrigins []string
	// Admit is asked before every contact submission with the upgrade
	// request of the connection. An error fails the submission.
	Admit func(r *http.Request) error

	mu       sync.Mutex
	draining bool
	done     chan struct{}
	pending  sync.WaitGroup
}

// Drain ends open connections, fails contact submissions that start from
// now on and waits for the running ones. Submissions outlive their
// connection, so a server must drain before closing the store they write to.
func (h *Handler) Drain(ctx context.Context) error {
	h.mu.Lock()
	if !h.draining {
		h.draining = true
		if h.done == nil {
			h.done = make(chan struct{})
		}
		close(h.done)
	}
	h.mu.Unlock()

	done := make(chan struct{})
	go func() {
		h.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Handler) closing() <-chan struct{} {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.done == nil {
		h.done = make(chan struct{})
	}
	return h.done
}

func (h *Handler) begin() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.draining {
		return false
	}
	h.pending.Add(1)
	return true
}

// submitter wraps h.Submitter with admission and drain tracking for the
// connection opened by r.
func (h *Handler) submitter(r *http.Request) contact.Submitter {
	if h.Submitter == nil {
		return nil
	}
	return contact.SubmitterFunc(func(ctx context.Context, form contact.Form) error {
		if !h.begin() {
			return errors.NewNetworkError(errors.ErrCodeSubmissionFailed, "server is shutting down", nil)
		}
		defer h.pending.Done()

		if h.Admit != nil {
			if err := h.Admit(r); err != nil {
				return err
			}
		}
		return h.Submitter.Submit(ctx, form)
	})
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := h.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	logger = logger.WithComponent("live")

	if !h.checkOrigin(r) {
		http.Error(w, "Origin not allowed", http.StatusForbidden)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.AllowedOrigins,
	})
	if err != nil {
		logger.Warn(r.Context(), err, "WebSocket upgrade failed")
		return
	}
	defer conn.CloseNow()
	conn.SetReadLimit(maxMessageSize)

	bundle := h.Bundle
	if bundle == nil {
		bundle = i18n.Default()
	}
	session := NewSession(Config{
		Registry:   h.Registry,
		Translator: bundle.Translator(r.URL.Query().Get("locale")),
		Submitter:  h.submitter(r),
		Timeout:    h.Timeout,
		Logger:     logger,
	})
	defer session.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		select {
		case <-h.closing():
			cancel()
		case <-ctx.Done():
		}
	}()

	go writePump(ctx, cancel, conn, session.Patches(), logger)

	session.Mount(r.URL.Query().Get("fragment"))
	readPump(ctx, conn, session, logger)
	conn.Close(websocket.StatusNormalClosure, "")
}

func readPump(ctx context.Context, conn *websocket.Conn, session *Session, logger logging.Logger) {
	for {
		readCtx, readCancel := context.WithTimeout(ctx, idleWait)
		var ev Event
		err := wsjson.Read(readCtx, conn, &ev)
		readCancel()

		if err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && ctx.Err() == nil {
				logger.Debug(ctx, "Live session read ended", "error", err.Error())
			}
			return
		}

		if err := session.Handle(ctx, ev); err != nil {
			logger.Warn(ctx, err, "Rejected live event", "type", ev.Type)
			if errors.IsValidation(err) {
				session.emit(Patch{Op: OpError, Message: err.Error()})
			}
		}
	}
}

func writePump(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, patches <-chan Patch, logger logging.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cancel()
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case patch, ok := <-patches:
			if !ok {
				return
			}
			writeCtx, writeCancel := context.WithTimeout(ctx, writeWait)
			err := wsjson.Write(writeCtx, conn, patch)
			writeCancel()
			if err != nil {
				logger.Debug(ctx, "Live session write failed", "error", err.Error())
				return
			}

		case <-ticker.C:
			pingCtx, pingCancel := context.WithTimeout(ctx, writeWait)
			err := conn.Ping(pingCtx)
			pingCancel()
			if err != nil {
				return
			}
		}
	}
}

// checkOrigin accepts same-host origins and the configured extra hosts. The
// browser always sends Origin on websocket upgrades.
func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return false
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if originURL.Scheme != "http" && originURL.Scheme != "https" {
		return false
	}

	if originURL.Host == r.Host {
		return true
	}
	for _, allowed := range h.AllowedOrigins {
		if originURL.Host == allowed {
			return true
		}
	}
	return false
}
