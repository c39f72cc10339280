package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/todoauth/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", time.Second)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLogin_SendsCredentials(t *testing.T) {
	var got credentials
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, map[string]any{
			"token": "tok",
			"user":  map[string]any{"id": "u-1", "email": "a@x.com", "role": "standard", "isDemo": false},
		})
	})

	s, err := c.Login(context.Background(), "a@x.com", []byte("pw1"))
	require.NoError(t, err)
	assert.Equal(t, credentials{Email: "a@x.com", Password: "pw1"}, got)
	assert.Equal(t, &Session{Token: "tok", User: User{ID: "u-1", Email: "a@x.com", Role: "standard"}}, s)
}

func TestDemoLogin_Created(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/demo", r.URL.Path)
		writeJSON(w, http.StatusCreated, map[string]any{
			"token": "demo-tok",
			"user":  map[string]any{"id": "u-2", "email": "demo-1a2b3c4d@todoapp.com", "role": "demo", "isDemo": true},
		})
	})

	s, err := c.DemoLogin(context.Background())
	require.NoError(t, err)
	assert.True(t, s.User.IsDemo)
	assert.Equal(t, "demo", s.User.Role)
}

func TestErrorsMapToSentinels(t *testing.T) {
	tests := []struct {
		status  int
		message string
		want    error
	}{
		{http.StatusBadRequest, "MissingCredentials", common.ErrMissingCredentials},
		{http.StatusUnauthorized, "InvalidCredentials", common.ErrInvalidCredentials},
		{http.StatusBadRequest, "EmailExists", common.ErrEmailExists},
		{http.StatusInternalServerError, "InternalFailure", common.ErrorInternal},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, map[string]string{"message": tt.message})
			})

			_, err := c.Register(context.Background(), "a@x.com", []byte("pw"))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUnexpectedResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	_, err := c.Login(context.Background(), "a@x.com", []byte("pw"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestPing(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
	})
	assert.NoError(t, c.Ping(context.Background()))

	down := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	assert.Error(t, down.Ping(context.Background()))
}
