package middleware

import (
	"net/http"
	"strings"
)

const corsMaxAge = "600"

// CORSMiddleware answers preflight requests and tags responses for the
// configured origins. "*" allows any origin.
type CORSMiddleware struct {
	allowAny bool
	origins  map[string]struct{}
}

// NewCORSMiddleware takes a comma-separated origin list
func NewCORSMiddleware(allowedOrigins string) *CORSMiddleware {
	m := &CORSMiddleware{origins: make(map[string]struct{})}
	for _, origin := range strings.Split(allowedOrigins, ",") {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		switch origin {
		case "":
		case "*":
			m.allowAny = true
		default:
			m.origins[origin] = struct{}{}
		}
	}
	if len(m.origins) == 0 {
		m.allowAny = true
	}
	return m
}

func (m *CORSMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		h := w.Header()
		if m.allowAny {
			h.Set("Access-Control-Allow-Origin", "*")
		} else if origin := req.Header.Get("Origin"); origin != "" {
			h.Add("Vary", "Origin")
			if _, ok := m.origins[origin]; ok {
				h.Set("Access-Control-Allow-Origin", origin)
			}
		}
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if req.Method == http.MethodOptions {
			h.Set("Access-Control-Max-Age", corsMaxAge)
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, req)
	})
}
