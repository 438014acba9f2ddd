package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func userToken(t *testing.T, secret, sub, email string, exp time.Time) string {
	t.Helper()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func echoIdentity(t *testing.T, got *Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserFromContext(r.Context())
		require.True(t, ok)
		*got = id
		w.WriteHeader(http.StatusNoContent)
	})
}

func do(h http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestUserMiddleware(t *testing.T) {
	v := NewVerifier(testSecret)
	var got Identity
	h := v.UserMiddleware(echoIdentity(t, &got))

	rec := do(h, userToken(t, testSecret, "user-1", "ana@example.com", time.Now().Add(time.Hour)))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, Identity{UserID: "user-1", Email: "ana@example.com"}, got)

	tests := map[string]string{
		"missing":      "",
		"wrong secret": userToken(t, "other", "user-1", "", time.Now().Add(time.Hour)),
		"expired":      userToken(t, testSecret, "user-1", "", time.Now().Add(-time.Minute)),
		"no subject":   userToken(t, testSecret, "", "", time.Now().Add(time.Hour)),
		"garbage":      "not-a-jwt",
	}
	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, do(h, tok).Code)
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	v := NewVerifier(testSecret)
	var got Identity
	h := v.AdminMiddleware(echoIdentity(t, &got))

	tok, err := v.IssueAdminToken(7, "admin@example.com", time.Hour, time.Now())
	require.NoError(t, err)
	rec := do(h, tok)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, Identity{UserID: "7", Email: "admin@example.com", Admin: true}, got)

	user := userToken(t, testSecret, "user-1", "", time.Now().Add(time.Hour))
	assert.Equal(t, http.StatusForbidden, do(h, user).Code)

	// admin tokens are not user tokens
	assert.Equal(t, http.StatusUnauthorized, do(v.UserMiddleware(h), tok).Code)
}

func TestRateLimiter(t *testing.T) {
	v := NewVerifier(testSecret)
	lim := NewRateLimiter(2, zap.NewNop())
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := v.UserMiddleware(lim.Middleware(ok))

	u1 := userToken(t, testSecret, "u1", "", time.Now().Add(time.Hour))
	u2 := userToken(t, testSecret, "u2", "", time.Now().Add(time.Hour))

	assert.Equal(t, http.StatusOK, do(h, u1).Code)
	assert.Equal(t, http.StatusOK, do(h, u1).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(h, u1).Code)
	assert.Equal(t, http.StatusOK, do(h, u2).Code)
}

func TestRateLimiterDropsIdleCallers(t *testing.T) {
	lim := NewRateLimiter(1, zap.NewNop())
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	lim.now = func() time.Time { return now }
	lim.lastSweep = now

	assert.True(t, lim.limiter("u1").Allow())
	assert.False(t, lim.limiter("u1").Allow())
	now = now.Add(5 * time.Minute)
	lim.limiter("u2")
	require.Equal(t, 2, lim.size())

	// u1 has been idle past the window, u2 has not
	now = now.Add(limiterIdle - time.Minute)
	lim.limiter("u3")
	assert.Equal(t, 2, lim.size())

	now = now.Add(limiterIdle)
	lim.limiter("u3")
	assert.Equal(t, 1, lim.size())
	assert.True(t, lim.limiter("u1").Allow())
}
