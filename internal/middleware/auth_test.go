package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifeline/lifeline-api/internal/crypto"
	"github.com/lifeline/lifeline-api/internal/mocks"
	"github.com/lifeline/lifeline-api/internal/model"
)

type stubVerifier struct {
	result crypto.Verification
}

func (s stubVerifier) Verify(string) crypto.Verification {
	return s.result
}

func seedUser(t *testing.T, users *mocks.UserStore) *model.User {
	t.Helper()
	user := &model.User{
		ID:        model.NewID(),
		FirstName: "Amina",
		LastName:  "Otieno",
		Phone:     "0700123456",
		CreatedAt: time.Now(),
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func protected(tokens TokenVerifier, users UserLookup) http.Handler {
	return Authenticate(tokens, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		json.NewEncoder(w).Encode(id)
	}))
}

func call(h http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["message"]
}

func TestAuthenticate_ValidToken(t *testing.T) {
	users := mocks.NewUserStore()
	user := seedUser(t, users)
	tokens := crypto.NewTokenService("test-secret")
	token, err := tokens.Issue(user)
	require.NoError(t, err)

	rec := call(protected(tokens, users), "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)

	var id model.Identity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &id))
	assert.Equal(t, user.ID, id.ID)
	assert.Equal(t, "0700123456", id.Phone)
	assert.Equal(t, "Amina", id.FirstName)
}

func TestAuthenticate_MissingToken(t *testing.T) {
	h := protected(crypto.NewTokenService("test-secret"), mocks.NewUserStore())

	for _, header := range []string{"", "Bearer ", "Bearer    ", "Token abc"} {
		rec := call(h, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
		assert.Equal(t, "Access token required", message(t, rec), header)
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	users := mocks.NewUserStore()
	user := seedUser(t, users)
	foreign, err := crypto.NewTokenService("other-secret").Issue(user)
	require.NoError(t, err)

	h := protected(crypto.NewTokenService("test-secret"), users)

	for _, token := range []string{"garbage", foreign} {
		rec := call(h, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid token", message(t, rec))
	}
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	h := protected(stubVerifier{crypto.Verification{Status: crypto.TokenExpired}}, mocks.NewUserStore())

	rec := call(h, "Bearer anything")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token expired", message(t, rec))
}

func TestAuthenticate_VerificationFault(t *testing.T) {
	h := protected(crypto.NewTokenService(""), mocks.NewUserStore())

	rec := call(h, "Bearer anything")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, crypto.ErrSecretNotConfigured.Error(), message(t, rec))
}

func TestAuthenticate_DeletedUserIsRejectedEveryTime(t *testing.T) {
	users := mocks.NewUserStore()
	user := seedUser(t, users)
	tokens := crypto.NewTokenService("test-secret")
	token, err := tokens.Issue(user)
	require.NoError(t, err)

	h := protected(tokens, users)
	require.Equal(t, http.StatusOK, call(h, "Bearer "+token).Code)

	users.Remove(user.ID)
	for i := 0; i < 2; i++ {
		rec := call(h, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "User not found", message(t, rec))
	}
}

func TestAuthenticate_BadSubject(t *testing.T) {
	v := crypto.Verification{Status: crypto.TokenValid, Claims: &crypto.Claims{UserID: "42"}}
	rec := call(protected(stubVerifier{v}, mocks.NewUserStore()), "Bearer x")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "User not found", message(t, rec))
}

func TestAuthenticate_StoreFault(t *testing.T) {
	users := mocks.NewUserStore()
	user := seedUser(t, users)
	tokens := crypto.NewTokenService("test-secret")
	token, err := tokens.Issue(user)
	require.NoError(t, err)

	users.Err = errors.New("server selection timeout")
	rec := call(protected(tokens, users), "Bearer "+token)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "server selection timeout", message(t, rec))
}
