package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func secureRouter(opt SecurityOptions, pre gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if pre != nil {
		r.Use(pre)
	}
	r.Use(SecurityHeaders(opt))
	r.GET("/chat/sessions", func(c *gin.Context) { c.String(http.StatusOK, "[]") })
	return r
}

func hitSessions(r *gin.Engine, mutate func(*http.Request)) http.Header {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/chat/sessions", nil)
	if mutate != nil {
		mutate(req)
	}
	r.ServeHTTP(w, req)
	return w.Header()
}

func TestSecurityHeaders_Baseline(t *testing.T) {
	r := secureRouter(SecurityOptions{}, func(c *gin.Context) {
		c.Header("X-Request-ID", "rid-123")
		c.Next()
	})
	h := hitSessions(r, nil)

	if h.Get("X-Content-Type-Options") != "nosniff" ||
		h.Get("X-Frame-Options") != "DENY" ||
		h.Get("Referrer-Policy") != "no-referrer" {
		t.Fatalf("baseline headers missing: %#v", h)
	}
	for _, hdr := range []string{
		"Permissions-Policy", "X-Permitted-Cross-Domain-Policies",
		"Cache-Control", "Pragma", "Expires", "Strict-Transport-Security",
	} {
		if h.Get(hdr) != "" {
			t.Fatalf("optional header %s set without opt-in: %q", hdr, h.Get(hdr))
		}
	}
	if h.Get("Access-Control-Expose-Headers") != "X-Request-ID" {
		t.Fatalf("request id not exposed: %q", h.Get("Access-Control-Expose-Headers"))
	}
}

func TestSecurityHeaders_ExposeHeaderMerging(t *testing.T) {
	// Existing exposed headers are appended to, not clobbered.
	r := secureRouter(SecurityOptions{}, func(c *gin.Context) {
		c.Header("X-Request-ID", "rid-abc")
		c.Header("Access-Control-Expose-Headers", "Idempotency-Replayed")
		c.Next()
	})
	if got := hitSessions(r, nil).Get("Access-Control-Expose-Headers"); got != "Idempotency-Replayed, X-Request-ID" {
		t.Fatalf("expose header = %q", got)
	}

	// Already-listed X-Request-ID is left alone.
	r = secureRouter(SecurityOptions{}, func(c *gin.Context) {
		c.Header("X-Request-ID", "rid-xyz")
		c.Header("Access-Control-Expose-Headers", "X-Request-ID, Idempotency-Replayed")
		c.Next()
	})
	if got := hitSessions(r, nil).Get("Access-Control-Expose-Headers"); got != "X-Request-ID, Idempotency-Replayed" {
		t.Fatalf("expose header changed: %q", got)
	}
}

func TestSecurityHeaders_PolicyNoStoreAndHSTS(t *testing.T) {
	r := secureRouter(SecurityOptions{
		EnableHSTS:   true,
		HSTSMaxAge:   24 * time.Hour,
		NoStore:      true,
		EnablePolicy: true,
	}, nil)
	h := hitSessions(r, func(req *http.Request) {
		req.TLS = &tls.ConnectionState{}
	})

	if h.Get("Permissions-Policy") == "" || h.Get("X-Permitted-Cross-Domain-Policies") != "none" {
		t.Fatalf("policy headers missing: %#v", h)
	}
	if h.Get("Cache-Control") != "no-store" || h.Get("Pragma") != "no-cache" || h.Get("Expires") != "0" {
		t.Fatalf("no-store headers missing: %#v", h)
	}
	if got := h.Get("Strict-Transport-Security"); got != "max-age=86400; includeSubDomains; preload" {
		t.Fatalf("hsts = %q", got)
	}
}

func TestSecurityHeaders_HSTSRequiresHTTPS(t *testing.T) {
	opt := SecurityOptions{EnableHSTS: true, HSTSMaxAge: time.Hour}

	// Plain HTTP never gets HSTS even when enabled.
	if got := hitSessions(secureRouter(opt, nil), nil).Get("Strict-Transport-Security"); got != "" {
		t.Fatalf("hsts on plain http: %q", got)
	}

	// X-Forwarded-Proto from the reverse proxy counts as HTTPS.
	h := hitSessions(secureRouter(opt, nil), func(req *http.Request) {
		req.Header.Set("X-Forwarded-Proto", "https")
	})
	if got := h.Get("Strict-Transport-Security"); got != "max-age=3600; includeSubDomains; preload" {
		t.Fatalf("hsts behind proxy = %q", got)
	}
}

func TestIsHTTPS(t *testing.T) {
	plain := httptest.NewRequest(http.MethodGet, "/", nil)
	if isHTTPS(plain) {
		t.Fatalf("plain request reported as https")
	}

	viaTLS := httptest.NewRequest(http.MethodGet, "/", nil)
	viaTLS.TLS = &tls.ConnectionState{}
	if !isHTTPS(viaTLS) {
		t.Fatalf("TLS request not reported as https")
	}

	viaProxy := httptest.NewRequest(http.MethodGet, "/", nil)
	viaProxy.Header.Set("X-Forwarded-Proto", "HTTPS")
	if !isHTTPS(viaProxy) {
		t.Fatalf("forwarded-proto request not reported as https")
	}
}
