// Package security applies response headers suitable for a JSON API.
package security

import (
	"fmt"
	"net/http"
)

type HeadersConfig struct {
	HSTSMaxAge            int
	HSTSIncludeSubdomains bool

	XFrameOptions       string
	XContentTypeOptions string
	ReferrerPolicy      string
	CacheControl        string
}

// DefaultHeadersConfig returns defaults for an API that serves no pages and
// whose responses carry per-user financial data.
func DefaultHeadersConfig() HeadersConfig {
	return HeadersConfig{
		HSTSMaxAge:            31536000,
		HSTSIncludeSubdomains: true,

		XFrameOptions:       "DENY",
		XContentTypeOptions: "nosniff",
		ReferrerPolicy:      "no-referrer",
		CacheControl:        "no-store",
	}
}

type HeadersMiddleware struct {
	config HeadersConfig
}

func NewHeadersMiddleware(config HeadersConfig) *HeadersMiddleware {
	return &HeadersMiddleware{config: config}
}

func (h *HeadersMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers := w.Header()
		headers.Set("X-Content-Type-Options", h.config.XContentTypeOptions)
		headers.Set("X-Frame-Options", h.config.XFrameOptions)
		headers.Set("Referrer-Policy", h.config.ReferrerPolicy)
		if h.config.CacheControl != "" {
			headers.Set("Cache-Control", h.config.CacheControl)
		}
		if r.TLS != nil && h.config.HSTSMaxAge > 0 {
			hsts := fmt.Sprintf("max-age=%d", h.config.HSTSMaxAge)
			if h.config.HSTSIncludeSubdomains {
				hsts += "; includeSubDomains"
			}
			headers.Set("Strict-Transport-Security", hsts)
		}
		next.ServeHTTP(w, r)
	})
}
