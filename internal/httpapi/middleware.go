package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/rajneeshshukla1608/yaxis-immigration/internal/domain"
)

type contextKey string

const sessionKey contextKey = "session"

// SessionMiddleware builds the shopper session once at the boundary and hands
// it down through the request context. The user ID comes from the X-User-ID
// header (set by the auth proxy in front of this gateway) and the auth token
// from the session cookie. Cart paths never read ambient per-user state.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := domain.Session{UserID: r.Header.Get("X-User-ID")}
		if cookie, err := r.Cookie("session"); err == nil {
			sess.Token = cookie.Value
		}
		ctx := context.WithValue(r.Context(), sessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFromContext(ctx context.Context) domain.Session {
	if sess, ok := ctx.Value(sessionKey).(domain.Session); ok {
		return sess
	}
	return domain.Session{}
}

// requireSession pulls the session from the context, answering 401 itself
// when the shopper is not identified. The bool tells the handler to bail.
func requireSession(w http.ResponseWriter, r *http.Request) (domain.Session, bool) {
	sess := sessionFromContext(r.Context())
	if !sess.Valid() {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return domain.Session{}, false
	}
	return sess, true
}

// discountToggle reads the shopper's bundle-discount toggle. It defaults to
// on; only an explicit "false" disables it.
func discountToggle(r *http.Request) bool {
	v := r.Header.Get("X-Apply-Discount")
	if v == "" {
		v = r.URL.Query().Get("discount")
	}
	if v == "" {
		return true
	}
	enabled, err := strconv.ParseBool(v)
	if err != nil {
		return true
	}
	return enabled
}
