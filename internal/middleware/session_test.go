package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/socialchef/leftover/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		ServiceName:   "socialchef-leftover",
		SessionSecret: "test-secret",
		Session:       config.SessionConfig{CookieName: "test_session", TTL: time.Hour},
	}
}

func TestSessionsMiddleware(t *testing.T) {
	cfg := testConfig()
	sessions := NewSessions(cfg)

	createToken := func(secret string, claims jwt.MapClaims) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tokenString, _ := token.SignedString([]byte(secret))
		return tokenString
	}

	validToken, err := sessions.Issue("session-123")
	require.NoError(t, err)

	tests := []struct {
		name          string
		cookie        string
		authHeader    string
		wantSessionID string
		wantNewCookie bool
	}{
		{
			name:          "No token starts a session",
			wantNewCookie: true,
		},
		{
			name:          "Valid cookie",
			cookie:        validToken,
			wantSessionID: "session-123",
		},
		{
			name:          "Valid bearer header",
			authHeader:    "Bearer " + validToken,
			wantSessionID: "session-123",
		},
		{
			name:          "Malformed cookie starts a session",
			cookie:        "invalid-token",
			wantNewCookie: true,
		},
		{
			name: "Expired cookie starts a session",
			cookie: createToken("test-secret", jwt.MapClaims{
				"sub": "session-123",
				"iss": cfg.ServiceName,
				"exp": time.Now().Add(-time.Hour).Unix(),
			}),
			wantNewCookie: true,
		},
		{
			name: "Wrong signature starts a session",
			cookie: createToken("wrong-secret", jwt.MapClaims{
				"sub": "session-123",
				"iss": cfg.ServiceName,
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			wantNewCookie: true,
		},
		{
			name: "Wrong issuer starts a session",
			cookie: createToken("test-secret", jwt.MapClaims{
				"sub": "session-123",
				"iss": "someone-else",
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			wantNewCookie: true,
		},
		{
			name:          "Malformed bearer header starts a session",
			authHeader:    "Bearer",
			wantNewCookie: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotSessionID string
			handler := sessions.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				sessionID, ok := GetSessionID(r.Context())
				assert.True(t, ok, "expected session ID in context")
				gotSessionID = sessionID
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest("GET", "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "test_session", Value: tt.cookie})
			}
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)

			cookies := rr.Result().Cookies()
			if tt.wantNewCookie {
				require.Len(t, cookies, 1)
				assert.Equal(t, "test_session", cookies[0].Name)
				assert.True(t, cookies[0].HttpOnly)

				issuedID, err := sessions.Parse(cookies[0].Value)
				require.NoError(t, err)
				assert.Equal(t, issuedID, gotSessionID)
				assert.NotEqual(t, "session-123", gotSessionID)
			} else {
				assert.Empty(t, cookies)
				assert.Equal(t, tt.wantSessionID, gotSessionID)
			}
		})
	}
}

func TestNewSessionsWithoutSecret(t *testing.T) {
	cfg := testConfig()
	cfg.SessionSecret = ""

	a := NewSessions(cfg)
	b := NewSessions(cfg)

	token, err := a.Issue("session-1")
	require.NoError(t, err)

	id, err := a.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "session-1", id)

	_, err = b.Parse(token)
	assert.Error(t, err, "ephemeral keys differ between managers")
}
