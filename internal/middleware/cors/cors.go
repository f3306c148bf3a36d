// Package cors handles cross-origin request headers for the JSON API.
package cors

import (
	"net/http"
	"strings"
)

// Config holds CORS configuration.
type Config struct {
	// AllowedOrigins lists the origins permitted to call the API. Empty
	// means any origin.
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// DefaultConfig permits any origin, which matches a public tracker API
// fronted by browser clients.
func DefaultConfig() Config {
	return Config{
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}
}

// Middleware applies CORS headers and answers preflight requests.
type Middleware struct {
	config Config
}

// NewMiddleware creates a CORS middleware, filling unset fields from the
// defaults.
func NewMiddleware(config Config) *Middleware {
	def := DefaultConfig()
	if len(config.AllowedMethods) == 0 {
		config.AllowedMethods = def.AllowedMethods
	}
	if len(config.AllowedHeaders) == 0 {
		config.AllowedHeaders = def.AllowedHeaders
	}
	return &Middleware{config: config}
}

// Middleware returns the HTTP middleware.
func (m *Middleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && m.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", m.allowOriginValue(origin))
			w.Header().Set("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", strings.Join(m.config.AllowedMethods, ", "))
			w.Header().Set("Access-Control-Allow-Headers", strings.Join(m.config.AllowedHeaders, ", "))
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) originAllowed(origin string) bool {
	if len(m.config.AllowedOrigins) == 0 {
		return true
	}
	for _, allowed := range m.config.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

func (m *Middleware) allowOriginValue(origin string) string {
	if len(m.config.AllowedOrigins) == 0 {
		return "*"
	}
	for _, allowed := range m.config.AllowedOrigins {
		if allowed == "*" {
			return "*"
		}
	}
	return origin
}
