package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/TripleGChat/TG-Backend/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// CORSMiddleware mirrors the client deployment model: the SPA may be served
// from anywhere (Capacitor webview, file://, a CDN), so every origin is
// allowed and preflights short-circuit with 200.
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "authorization, content-type")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequestIDMiddleware tags each request with a UUID, echoed in X-Request-ID
// and stored in the context for log correlation.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		ctx := context.WithValue(r.Context(), utils.ContextRequestIDKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

const (
	// Idle buckets are swept so IP churn (NAT pools, scanners) can't grow the
	// limiter map without bound.
	limiterSweepInterval = 10 * time.Minute
	limiterIdleAfter     = 30 * time.Minute
)

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

type ipLimiter struct {
	mu        sync.Mutex
	entries   map[string]*limiterEntry
	limit     rate.Limit
	burst     int
	lastSweep time.Time
}

func (l *ipLimiter) get(ip string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > limiterSweepInterval {
		for addr, e := range l.entries {
			if now.Sub(e.lastSeen) > limiterIdleAfter {
				delete(l.entries, addr)
			}
		}
		l.lastSweep = now
	}

	e, ok := l.entries[ip]
	if !ok {
		e = &limiterEntry{lim: rate.NewLimiter(l.limit, l.burst)}
		l.entries[ip] = e
	}
	e.lastSeen = now
	return e.lim
}

// RateLimitMiddleware applies a per-IP token bucket. Used on the auth endpoint
// to slow down credential stuffing.
func RateLimitMiddleware(limit rate.Limit, burst int) func(http.Handler) http.Handler {
	limiter := &ipLimiter{
		entries:   make(map[string]*limiterEntry),
		limit:     limit,
		burst:     burst,
		lastSweep: time.Now(),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			if !limiter.get(ip, time.Now()).Allow() {
				utils.RespondError(w, http.StatusTooManyRequests, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// TokenVerifier is implemented by the auth service.
type TokenVerifier interface {
	UserIDFromToken(token string) (uint, error)
}

// BearerAuthMiddleware requires a valid bearer token and injects the user id
// into the request context.
func BearerAuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				utils.RespondError(w, http.StatusUnauthorized, "No token provided")
				return
			}

			userID, err := verifier.UserIDFromToken(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				utils.RespondError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), utils.ContextUserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
