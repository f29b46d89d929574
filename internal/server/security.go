package server

import (
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"

	"github.com/byteik/site/internal/config"
	"github.com/byteik/site/internal/errors"
)

const hstsMaxAge = 365 * 24 * 60 * 60

type cspDirective struct {
	name    string
	sources []string
}

// SecurityHeaders is the fixed header set written on every response.
type SecurityHeaders struct {
	static http.Header
	// hsts is only sent over TLS, directly or behind a proxy.
	hsts string
}

// SecurityHeadersFor builds the headers for cfg. The page inlines its
// stylesheet and talks to /live over a websocket on the same host.
func SecurityHeadersFor(cfg *config.Config) *SecurityHeaders {
	static := http.Header{}
	static.Set("Content-Security-Policy", contentSecurityPolicy(cfg))
	static.Set("X-Frame-Options", "DENY")
	static.Set("X-Content-Type-Options", "nosniff")
	static.Set("Referrer-Policy", "strict-origin-when-cross-origin")
	static.Set("Permissions-Policy", "geolocation=(), camera=(), microphone=(), payment=()")

	sh := &SecurityHeaders{static: static}
	if cfg.IsProduction() {
		sh.hsts = "max-age=" + strconv.Itoa(hstsMaxAge) + "; includeSubDomains"
	}
	return sh
}

// Middleware writes the headers before calling next.
func (sh *SecurityHeaders) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for k := range sh.static {
			h.Set(k, sh.static.Get(k))
		}
		if sh.hsts != "" && (r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https") {
			h.Set("Strict-Transport-Security", sh.hsts)
		}
		next.ServeHTTP(w, r)
	})
}

func contentSecurityPolicy(cfg *config.Config) string {
	connect := []string{"'self'", "wss:"}
	if !cfg.IsProduction() {
		connect = append(connect, "ws:")
	}
	for _, origin := range cfg.Server.AllowedOrigins {
		connect = append(connect, "https://"+origin, "wss://"+origin)
	}

	directives := []cspDirective{
		{"default-src", []string{"'self'"}},
		{"script-src", []string{"'self'"}},
		{"style-src", []string{"'self'", "'unsafe-inline'"}},
		{"img-src", []string{"'self'", "data:", "https:"}},
		{"connect-src", connect},
		{"object-src", []string{"'none'"}},
		{"frame-ancestors", []string{"'none'"}},
		{"base-uri", []string{"'self'"}},
		{"form-action", []string{"'self'"}},
	}

	parts := make([]string, len(directives))
	for i, d := range directives {
		parts[i] = d.name + " " + strings.Join(d.sources, " ")
	}
	return strings.Join(parts, "; ")
}

// ClientIPs resolves the client address of a request. Forwarding headers
// are only believed when the peer is a trusted proxy.
type ClientIPs struct {
	trusted []netip.Prefix
}

// NewClientIPs parses the trusted proxy list. A nil *ClientIPs trusts nobody.
func NewClientIPs(proxies []string) (*ClientIPs, error) {
	c := &ClientIPs{}
	for _, raw := range proxies {
		prefix, err := config.ParseProxy(raw)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, errors.ErrCodeConfigInvalid, "trusted proxies")
		}
		c.trusted = append(c.trusted, prefix)
	}
	return c, nil
}

func (c *ClientIPs) isTrusted(raw string) bool {
	if c == nil || len(c.trusted) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(raw)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range c.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// Of returns the client address of r, which keys rate limiting. Behind a
// trusted proxy X-Forwarded-For is walked right to left and the first
// untrusted hop wins; X-Real-IP is the fallback. Otherwise the peer address
// is the client.
func (c *ClientIPs) Of(r *http.Request) string {
	peer := r.RemoteAddr
	if host, _, err := net.SplitHostPort(peer); err == nil {
		peer = host
	}
	if !c.isTrusted(peer) {
		return peer
	}

	var leftmost string
	hops := strings.Split(strings.Join(r.Header.Values("X-Forwarded-For"), ","), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !c.isTrusted(hop) {
			return hop
		}
		leftmost = hop
	}
	if leftmost != "" {
		return leftmost
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	return peer
}
