package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cinegraph-backend/pkg/auth"
)

const testSecret = "middleware-test-secret"

func newTestValidator(t *testing.T) *auth.JWTValidator {
	t.Helper()
	validator, err := auth.NewJWTValidator(auth.JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     testSecret,
	})
	require.NoError(t, err)
	return validator
}

func mintToken(t *testing.T, username string) string {
	t.Helper()
	generator, err := auth.NewJWTGenerator(auth.JWTGeneratorConfig{
		SecretKey:  testSecret,
		ExpiryTime: time.Hour,
	})
	require.NoError(t, err)
	token, err := generator.GenerateToken(username, nil)
	require.NoError(t, err)
	return token
}

func authHandler(t *testing.T, ipLimit, userLimit int) (http.Handler, *auth.UserContext) {
	t.Helper()

	var seen auth.UserContext
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, err := auth.GetUserFromContext(r.Context()); err == nil {
			seen = *user
		}
		w.WriteHeader(http.StatusOK)
	})

	mw := Authenticate(
		newTestValidator(t),
		auth.NewIPRateLimiter(ipLimit),
		auth.NewUserRateLimiter(userLimit),
		zap.NewNop(),
	)
	return mw(next), &seen
}

func TestAuthenticate(t *testing.T) {
	t.Run("valid token reaches the handler with identity attached", func(t *testing.T) {
		handler, seen := authHandler(t, 10, 10)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/movies", nil)
		req.Header.Set("Authorization", "Bearer "+mintToken(t, "alice"))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "alice", seen.Username)
	})

	t.Run("missing authorization header is rejected", func(t *testing.T) {
		handler, _ := authHandler(t, 10, 10)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/movies", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		handler, _ := authHandler(t, 10, 10)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/movies", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ip budget exhaustion returns 429", func(t *testing.T) {
		handler, _ := authHandler(t, 2, 10)
		token := mintToken(t, "alice")

		var last int
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/movies", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			last = rec.Code
		}

		assert.Equal(t, http.StatusTooManyRequests, last)
	})

	t.Run("write budget is enforced per user while reads pass", func(t *testing.T) {
		handler, _ := authHandler(t, 100, 1)
		token := mintToken(t, "alice")

		post := func() int {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/preferences", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			return rec.Code
		}

		assert.Equal(t, http.StatusOK, post())
		assert.Equal(t, http.StatusTooManyRequests, post())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/movies", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
