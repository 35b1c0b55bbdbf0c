package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/autocare24/admin-portal/internal/apiclient"
	"github.com/autocare24/admin-portal/internal/session"
	"github.com/autocare24/admin-portal/internal/view"
)

// fakeBackend stands in for the AutoCare24 API. Handlers are registered per
// test; every call is recorded as "METHOD /path" for assertions.
type fakeBackend struct {
	mux *http.ServeMux

	mu    sync.Mutex
	calls []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{mux: http.NewServeMux()}
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls = append(f.calls, r.Method+" "+r.URL.Path)
	f.mu.Unlock()
	f.mux.ServeHTTP(w, r)
}

func (f *fakeBackend) called(method, path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == method+" "+path {
			return true
		}
	}
	return false
}

func newTestClient(t *testing.T, backend *fakeBackend) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	view.ResetForTests()
	view.SetBaseDir("../../templates")
	return apiclient.New(srv.URL, 0)
}

func jsonResponse(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func formRequest(method, target string, form url.Values) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func asRole(r *http.Request, role, storeID string) *http.Request {
	return r.WithContext(session.WithClaims(r.Context(), session.Claims{Role: role, StoreID: storeID}))
}
