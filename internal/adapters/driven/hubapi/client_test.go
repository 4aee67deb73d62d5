package hubapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/hublogin/internal/core/domain"
)

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient("localhost:8888")
	assert.ErrorIs(t, err, ErrInvalidBaseURL)

	_, err = NewClient("/relative")
	assert.ErrorIs(t, err, ErrInvalidBaseURL)
}

func TestClient_NormalizeURL(t *testing.T) {
	tests := []struct {
		base string
		path string
		want string
	}{
		{"http://localhost:8888/", "globus-jupyterlab/login", "http://localhost:8888/globus-jupyterlab/login"},
		{"http://localhost:8888", "globus-jupyterlab/login", "http://localhost:8888/globus-jupyterlab/login"},
		{"https://hub.example.org/user/alice/", "/globus-jupyterlab/login", "https://hub.example.org/user/alice/globus-jupyterlab/login"},
		{"http://localhost:8888/", "", "http://localhost:8888/"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			c, err := NewClient(tt.base)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.NormalizeURL(tt.path))
		})
	}
}

func TestClient_Request_Success(t *testing.T) {
	var gotPath, gotQuery, gotAuth, gotXSRF, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		gotXSRF = r.Header.Get("X-XSRFToken")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	c, err := NewClient(server.URL+"/user/alice/", WithToken("tok"), WithXSRFToken("x"))
	require.NoError(t, err)

	body, err := c.Request(context.Background(), "oauth_callback_manual", url.Values{"code": {"abc123"}})

	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
	assert.Equal(t, "/user/alice/globus-jupyterlab/oauth_callback_manual", gotPath)
	assert.Equal(t, "code=abc123", gotQuery)
	assert.Equal(t, "token tok", gotAuth)
	assert.Equal(t, "x", gotXSRF)
	assert.Len(t, gotRequestID, 36)
}

func TestClient_Request_NoTokenHeaders(t *testing.T) {
	var hasAuth, hasXSRF bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		_, hasXSRF = r.Header["X-Xsrftoken"]
	}))
	defer server.Close()

	c, err := NewClient(server.URL)
	require.NoError(t, err)

	_, err = c.Request(context.Background(), "oauth_callback_manual", nil)

	require.NoError(t, err)
	assert.False(t, hasAuth)
	assert.False(t, hasXSRF)
}

func TestClient_Request_Rejected(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantText    string
		wantDetails string
	}{
		{"details field", http.StatusForbidden, `{"details":"bad code"}`, "Forbidden", "bad code"},
		{"message fallback", http.StatusBadRequest, `{"message":"missing code","reason":"Bad"}`, "Bad Request", "missing code"},
		{"reason fallback", http.StatusUnauthorized, `{"reason":"token expired"}`, "Unauthorized", "token expired"},
		{"html body", http.StatusInternalServerError, `<html>oops</html>`, "Internal Server Error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c, err := NewClient(server.URL)
			require.NoError(t, err)

			_, err = c.Request(context.Background(), "oauth_callback_manual", url.Values{"code": {"x"}})

			cbErr, ok := domain.AsCallbackError(err)
			require.True(t, ok, "expected CallbackError, got %v", err)
			assert.Equal(t, tt.status, cbErr.Status)
			assert.Equal(t, tt.wantText, cbErr.StatusText)
			assert.Equal(t, tt.wantDetails, cbErr.Details)
		})
	}
}

func TestClient_Request_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	c, err := NewClient(server.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.Request(ctx, "oauth_callback_manual", nil)

	require.Error(t, err)
	_, ok := domain.AsCallbackError(err)
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_Request_RateLimited(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	c, err := NewClient(server.URL, WithRateLimit(rate.NewLimiter(rate.Every(time.Hour), 1)))
	require.NoError(t, err)

	_, err = c.Request(context.Background(), "oauth_callback_manual", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.Request(ctx, "oauth_callback_manual", nil)

	assert.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_Request_NoRateLimit(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	c, err := NewClient(server.URL, WithRateLimit(nil))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err = c.Request(context.Background(), "oauth_callback_manual", nil)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(5), hits.Load())
}
