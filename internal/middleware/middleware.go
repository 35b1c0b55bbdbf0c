package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/autocare24/admin-portal/internal/session"
)

// Chain applies middlewares right to left so the first listed runs outermost.
func Chain(handler http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

// Subdomain rewrites the root path to a role's login page based on the Host
// header, so each tenant role gets its own entry point on one deployment.
// Prefix match on the literal strings, first match wins; other hosts fall
// through to the default landing page. This is a rewrite, not a redirect:
// the browser's URL bar is unchanged.
func Subdomain(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			switch host := r.Host; {
			case strings.HasPrefix(host, "admin."):
				r.URL.Path = "/admin/login"
			case strings.HasPrefix(host, "garage."):
				r.URL.Path = "/garage/login"
			case strings.HasPrefix(host, "store."):
				r.URL.Path = "/store/login"
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole gates a protected page on the session's role claim. A missing
// or mismatched role redirects to that role's login without a message.
func RequireRole(role, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, ok := session.FromContext(r.Context())
			if !ok || c.Role != role {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestID assigns a request id when the client did not send one and echoes
// it back on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
			r.Header.Set("X-Request-ID", id)
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Logging emits one key=value line per request.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		writer := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(writer, r)
		log.Printf("request method=%s path=%s status=%d duration_ms=%d request_id=%s",
			r.Method, r.URL.Path, writer.status, time.Since(start).Milliseconds(), r.Header.Get("X-Request-ID"))
	})
}

// Recover turns handler panics into a plain 500 so one bad page cannot take
// the process down.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic path=%s err=%v", r.URL.Path, rec)
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
