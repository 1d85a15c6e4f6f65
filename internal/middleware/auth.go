package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/myevents/myevents-go/internal/crypto"
	"github.com/myevents/myevents-go/internal/model"
	"github.com/myevents/myevents-go/internal/repository"
)

// AccessTokenCookie is the cookie the access token travels in when the
// client is a browser; bearer headers work too.
const AccessTokenCookie = "access_token"

type contextKey string

const currentUserKey contextKey = "currentUser"

// UserLoader resolves a token subject to a stored user.
type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// Authenticate returns middleware that resolves the caller's identity
// from the access_token cookie or the Authorization header, validates it
// as an access token, and loads the user into the request context.
// Rejects with 401 for missing/invalid tokens, 404 when the subject no
// longer exists, and 400 for inactive accounts.
func Authenticate(tokens *crypto.TokenManager, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				writeJSONError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			claims, err := tokens.Validate(token, crypto.TokenTypeAccess)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "could not validate credentials")
				return
			}

			user, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					writeJSONError(w, http.StatusNotFound, "user not found")
					return
				}
				writeJSONError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			if !user.IsActive {
				writeJSONError(w, http.StatusBadRequest, "inactive user")
				return
			}

			ctx := context.WithValue(r.Context(), currentUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSuperuser returns middleware that rejects authenticated callers
// lacking superuser privileges. Must run after Authenticate.
func RequireSuperuser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := CurrentUser(r.Context())
		if !ok {
			writeJSONError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		if !user.IsSuperuser {
			writeJSONError(w, http.StatusForbidden, "the user doesn't have enough privileges")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CurrentUser extracts the authenticated user from the request context.
func CurrentUser(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(currentUserKey).(*model.User)
	return user, ok
}

// tokenFromRequest extracts the raw token, preferring the cookie and
// falling back to the Authorization header with an optional Bearer prefix.
func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && strings.TrimSpace(cookie.Value) != "" {
		return cookie.Value
	}

	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	if token, found := strings.CutPrefix(header, "Bearer "); found {
		return strings.TrimSpace(token)
	}
	return header
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
