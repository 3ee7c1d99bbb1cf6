package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pearlvault/backend/internal/service"
)

const middlewareTestAddress = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	sessions := service.NewSessionService("test-secret", time.Hour)

	tests := []struct {
		name       string
		authHeader string
		wantCode   int
	}{
		{
			name:       "missing authorization header",
			authHeader: "",
			wantCode:   http.StatusUnauthorized,
		},
		{
			name:       "invalid authorization format - no bearer",
			authHeader: "invalid-token",
			wantCode:   http.StatusUnauthorized,
		},
		{
			name:       "invalid authorization format - wrong prefix",
			authHeader: "Basic invalid-token",
			wantCode:   http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer invalid-jwt-token",
			wantCode:   http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			handler := NewAuthMiddleware(sessions)(next)
			req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.False(t, nextCalled)
		})
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	t.Parallel()

	sessions := service.NewSessionService("test-secret", time.Hour)
	resp, err := sessions.Connect(middlewareTestAddress)
	require.NoError(t, err)

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		assert.Equal(t, middlewareTestAddress, GetWallet(r.Context()))

		session := GetSession(r.Context())
		assert.True(t, session.Connected)
		assert.Equal(t, middlewareTestAddress, session.Address)

		w.WriteHeader(http.StatusOK)
	})

	handler := NewAuthMiddleware(sessions)(next)
	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, nextCalled)
}

func TestGetSession_Unauthenticated(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)

	session := GetSession(req.Context())
	assert.False(t, session.Connected)
	assert.Empty(t, session.Address)
}
