package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoDecodesJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "/api/customers", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		w.Write([]byte(`[{"id":"c1","full_name":"A"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	var out []struct {
		ID       string `json:"id"`
		FullName string `json:"full_name"`
	}
	q := url.Values{"page": {"2"}}
	require.NoError(t, c.Get(context.Background(), "/api/customers", q, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "c1", out[0].ID)
}

func TestDoEmptyBodyLeavesOutUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	out := map[string]string{"keep": "me"}
	require.NoError(t, c.Get(context.Background(), "/api/customers/c1", nil, &out))
	assert.Equal(t, "me", out["keep"])
}

func TestDoNon2xxReturnsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "customer not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	err := c.Get(context.Background(), "/api/customers/missing", nil, nil)
	var ae *APIError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, http.StatusNotFound, ae.Status)
	assert.Contains(t, ae.Body, "customer not found")
	assert.True(t, IsNotFound(err))
}

func TestDoMalformedBodyIsParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	var out map[string]any
	err := c.Get(context.Background(), "/api/stores", nil, &out)
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
}

func TestDoSendsEncodedBody(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b := make([]byte, r.ContentLength)
		r.Body.Read(b)
		got = string(b)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	require.NoError(t, c.Post(context.Background(), "/api/customers", map[string]string{"full_name": "A"}, nil))
	assert.JSONEq(t, `{"full_name":"A"}`, got)
}

func TestDoHonorsContextCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c := New(srv.URL, 5*time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	err := c.Get(ctx, "/api/customers", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
