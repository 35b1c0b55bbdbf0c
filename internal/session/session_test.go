package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithCookies(t *testing.T, w *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestCreateParseRoundTrip(t *testing.T) {
	w := httptest.NewRecorder()
	Create(w, Claims{Role: RoleStore, StoreID: "st_42"})

	got, ok := Parse(requestWithCookies(t, w))
	require.True(t, ok)
	assert.Equal(t, RoleStore, got.Role)
	assert.Equal(t, "st_42", got.StoreID)
}

func TestParseRejectsTamperedPayload(t *testing.T) {
	w := httptest.NewRecorder()
	Create(w, Claims{Role: RoleStore, StoreID: "st_42"})
	c := w.Result().Cookies()[0]

	// swap the payload for an admin claim but keep the old signature
	forged := "YWRtaW58." + strings.SplitN(c.Value, ".", 2)[1]
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: c.Name, Value: forged})

	_, ok := Parse(r)
	assert.False(t, ok)
}

func TestParseRejectsUnknownRole(t *testing.T) {
	w := httptest.NewRecorder()
	Create(w, Claims{Role: "superuser", StoreID: ""})
	_, ok := Parse(requestWithCookies(t, w))
	assert.False(t, ok)
}

func TestParseMissingCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := Parse(r)
	assert.False(t, ok)
}

func TestClearExpiresCookie(t *testing.T) {
	w := httptest.NewRecorder()
	Clear(w)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.True(t, cookies[0].Expires.Unix() <= 0)
}

func TestMiddlewareAttachesClaims(t *testing.T) {
	w := httptest.NewRecorder()
	Create(w, Claims{Role: RoleGarage, StoreID: "g_7"})
	r := requestWithCookies(t, w)

	var got Claims
	var ok bool
	h := Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got, ok = FromContext(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), r)
	require.True(t, ok)
	assert.Equal(t, "g_7", got.StoreID)
}
