package middleware

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/socialchef/leftover/internal/config"
)

type contextKey string

const SessionIDKey contextKey = "sessionID"

// Sessions issues and validates HS256-signed session tokens carried in a cookie
// (browser) or an Authorization bearer header (API clients).
type Sessions struct {
	secret     []byte
	issuer     string
	cookieName string
	ttl        time.Duration
	secure     bool
}

// NewSessions builds a session manager from cfg. Without SESSION_SECRET a random
// per-process key is used, so sessions do not survive a restart.
func NewSessions(cfg *config.Config) *Sessions {
	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			panic("failed to generate session secret: " + err.Error())
		}
		slog.Warn("SESSION_SECRET not set, using an ephemeral key")
	}

	cookieName := cfg.Session.CookieName
	if cookieName == "" {
		cookieName = "leftover_session"
	}
	ttl := cfg.Session.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Sessions{
		secret:     secret,
		issuer:     cfg.ServiceName,
		cookieName: cookieName,
		ttl:        ttl,
		secure:     cfg.Env == "production",
	}
}

// Issue signs a token for sessionID.
func (s *Sessions) Issue(sessionID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sessionID,
		"iss": s.issuer,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	})
	return token.SignedString(s.secret)
}

// Parse validates tokenString and returns its session ID.
func (s *Sessions) Parse(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	sessionID, err := token.Claims.GetSubject()
	if err != nil || sessionID == "" {
		return "", fmt.Errorf("missing sub claim")
	}
	return sessionID, nil
}

// Middleware attaches a session ID to every request, starting a new session
// (and setting its cookie) when the request carries no valid token.
func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sessionID, ok := s.fromRequest(r); ok {
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), SessionIDKey, sessionID)))
			return
		}

		sessionID := uuid.New().String()
		token, err := s.Issue(sessionID)
		if err != nil {
			slog.ErrorContext(r.Context(), "Failed to issue session token", "error", err)
			http.Error(w, "Failed to start session", http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     s.cookieName,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			Secure:   s.secure,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   int(s.ttl.Seconds()),
		})
		slog.DebugContext(r.Context(), "Started session", "session_id", sessionID)

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), SessionIDKey, sessionID)))
	})
}

func (s *Sessions) fromRequest(r *http.Request) (string, bool) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			if sessionID, err := s.Parse(parts[1]); err == nil {
				return sessionID, true
			}
		}
	}

	cookie, err := r.Cookie(s.cookieName)
	if err != nil {
		return "", false
	}
	sessionID, err := s.Parse(cookie.Value)
	if err != nil {
		return "", false
	}
	return sessionID, true
}

// GetSessionID extracts the session ID from request context
func GetSessionID(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionIDKey).(string)
	return sessionID, ok && sessionID != ""
}
