package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/anhbaysgalan1/balatro/internal/application/dto"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey      contextKey = "user_id"
	DisplayNameKey contextKey = "display_name"
)

// AuthMiddleware turns guest tokens into request context values
type AuthMiddleware struct {
	jwtManager *JWTManager
}

func NewAuthMiddleware(jwtManager *JWTManager) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
	}
}

// token reads the bearer header, then ?token= when fromQuery is set. Browsers
// cannot add headers to a websocket upgrade.
func (m *AuthMiddleware) token(r *http.Request, fromQuery bool) string {
	if bearer := m.jwtManager.ExtractTokenFromBearer(r.Header.Get("Authorization")); bearer != "" {
		return bearer
	}
	if fromQuery {
		return r.URL.Query().Get("token")
	}
	return ""
}

// RequireQueryToken rejects requests without a valid token in the header or query string
func (m *AuthMiddleware) RequireQueryToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.jwtManager.ValidateToken(m.token(r, true))
		if err != nil {
			slog.Debug("Rejected token", "path", r.URL.Path, "error", err)
			writeUnauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// OptionalAuth attaches the caller's identity when a valid bearer token is
// present. Missing or bad tokens leave the request anonymous.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw := m.token(r, false); raw != "" {
			if claims, err := m.jwtManager.ValidateToken(raw); err == nil {
				r = r.WithContext(WithClaims(r.Context(), claims))
			}
		}
		next.ServeHTTP(w, r)
	})
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(dto.APIResponse{
		Success: false,
		Message: "User not authenticated",
		Error:   "missing or invalid token",
	})
}

// WithClaims stores the token's user info in the context
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
	return context.WithValue(ctx, DisplayNameKey, claims.DisplayName)
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

func GetDisplayNameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(DisplayNameKey).(string)
	return name, ok
}

// CanActFor reports whether the request may touch userID's data. Anonymous
// requests may; authenticated ones only for their own user.
func CanActFor(ctx context.Context, userID string) bool {
	tokenUser, ok := GetUserIDFromContext(ctx)
	if !ok {
		return true
	}
	return tokenUser.String() == userID
}

// RequestLogger writes one slog line per request. Only the path is logged,
// which keeps websocket tokens out of the access log.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		defer func() {
			slog.Info("HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// SecurityHeaders sets the browser hardening headers. HSTS is skipped for
// local development hosts.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		if !isLocalHost(r.Host) {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}

func isLocalHost(hostport string) bool {
	host, _, err := net.SplitHostPort(hostport)
	if err != nil {
		host = hostport
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
