package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/things", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "token", r.Header.Get("X-Test"))
		_, _ = w.Write([]byte(`{"name":"ok"}`))
	}))
	defer srv.Close()

	var out struct {
		Name string `json:"name"`
	}
	client := NewClient(srv.URL)
	err := client.GetJSON(context.Background(), "/things",
		url.Values{"page": {"1"}}, map[string]string{"X-Test": "token"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "ok", out.Name)
}

func TestGetJSON_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend exploded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	var out any
	err := NewClient(srv.URL).GetJSON(context.Background(), "/", nil, nil, &out)

	require.Error(t, err)
	statusErr, ok := err.(*StatusError)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Contains(t, statusErr.Snippet, "backend exploded")
}

func TestSnippet_Truncates(t *testing.T) {
	long := strings.Repeat("x", 500)
	assert.Len(t, Snippet([]byte(long)), 200)
	assert.Equal(t, "short", Snippet([]byte("short")))
}
