package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/lifeline/lifeline-api/internal/crypto"
	"github.com/lifeline/lifeline-api/internal/model"
	"github.com/lifeline/lifeline-api/internal/repository"
)

type contextKey string

const identityKey contextKey = "identity"

// TokenVerifier checks bearer tokens.
type TokenVerifier interface {
	Verify(token string) crypto.Verification
}

// UserLookup re-loads the account behind a token.
type UserLookup interface {
	GetByID(ctx context.Context, id model.ID) (*model.User, error)
}

// Authenticate returns middleware that requires a valid Bearer token whose
// user still exists. The user is re-read on every request, so deleting an
// account revokes its outstanding tokens.
func Authenticate(tokens TokenVerifier, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			token = strings.TrimSpace(token)
			if !found || token == "" {
				writeJSONError(w, http.StatusUnauthorized, "Access token required")
				return
			}

			v := tokens.Verify(token)
			switch v.Status {
			case crypto.TokenValid:
			case crypto.TokenMalformed:
				writeJSONError(w, http.StatusUnauthorized, "Invalid token")
				return
			case crypto.TokenExpired:
				writeJSONError(w, http.StatusUnauthorized, "Token expired")
				return
			default:
				err := v.Err
				if err == nil {
					err = errors.New("token verification failed")
				}
				slog.Error("token verification failed", "error", err)
				writeJSONError(w, http.StatusInternalServerError, err.Error())
				return
			}

			id, err := model.ParseID(v.Claims.UserID)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "User not found")
				return
			}

			user, err := users.GetByID(r.Context(), id)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					writeJSONError(w, http.StatusUnauthorized, "User not found")
					return
				}
				slog.Error("loading token user", "error", err, "user_id", v.Claims.UserID)
				writeJSONError(w, http.StatusInternalServerError, err.Error())
				return
			}

			ctx := WithIdentity(r.Context(), user.Identity())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext extracts the authenticated caller from the request context.
func IdentityFromContext(ctx context.Context) (model.Identity, bool) {
	id, ok := ctx.Value(identityKey).(model.Identity)
	return id, ok
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
