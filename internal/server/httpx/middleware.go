package httpx

import (
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/taskmanager/internal/common"
)

// statusWriter captures the status code written by a handler for the
// access log.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// requestID tags every request with a generated id, echoes it back in the
// X-Request-Id header, and writes one access-log line per request.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sw, r)

		s.logger.Info(r.Context(), "request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start).String(),
		)
	})
}

// cors allows the SPA, served from another origin, to call the API.
// Preflight requests are answered here and never reach the handlers.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// authenticate is the access middleware for protected routes. A missing
// or malformed Authorization header is a 401; a present but invalid or
// expired token is a 403. On success the decoded claims are attached to
// the request context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			s.writeMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			s.writeMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}

		claims, err := s.tokens.Verify(parts[1])
		if err != nil {
			s.writeMessage(w, http.StatusForbidden, "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(contextWithClaims(r.Context(), claims)))
	})
}

// rateLimit throttles the wrapped handler per client IP. The limiter is
// an external collaborator: when Redis itself fails the request is let
// through with a warning rather than rejected.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := s.limiter.Enforce(r.Context(), clientIP(r)); err != nil {
			if errors.Is(err, common.ErrRateLimited) {
				s.writeMessage(w, http.StatusTooManyRequests, "Too many requests, please try again later.")
				return
			}
			s.logger.Warn(r.Context(), "rate limiter unavailable, failing open", "error", err.Error())
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
