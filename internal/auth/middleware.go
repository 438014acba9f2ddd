package auth

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "spotbook/internal/errors"
	"spotbook/internal/logging"
)

const roleAdmin = "admin"

// Identity is the caller a request acts for.
type Identity struct {
	UserID string
	Email  string
	Admin  bool
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	logging.SetUserID(ctx, id.UserID)
	return context.WithValue(ctx, ctxKey{}, id)
}

func UserFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

// Claims carried by both user and admin tokens. User tokens are issued by the
// identity provider; admin tokens by IssueAdminToken.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

func (v *Verifier) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	return claims, nil
}

// IssueAdminToken signs a short-lived admin token.
func (v *Verifier) IssueAdminToken(adminID int64, email string, ttl time.Duration, now time.Time) (string, error) {
	claims := Claims{
		Email: email,
		Role:  roleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(adminID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

func bearer(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	return tok, tok != ""
}

// UserMiddleware requires a valid user token and stores the caller's identity
// in the request context.
func (v *Verifier) UserMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok, ok := bearer(r)
		if !ok {
			apperrors.WriteJSON(w, apperrors.ErrUnauthorized("missing bearer token"))
			return
		}
		claims, err := v.Parse(tok)
		if err != nil || claims.Role == roleAdmin {
			apperrors.WriteJSON(w, apperrors.ErrUnauthorized("invalid token"))
			return
		}
		id := Identity{UserID: claims.Subject, Email: claims.Email}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

func (v *Verifier) AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok, ok := bearer(r)
		if !ok {
			apperrors.WriteJSON(w, apperrors.ErrUnauthorized("missing bearer token"))
			return
		}
		claims, err := v.Parse(tok)
		if err != nil {
			apperrors.WriteJSON(w, apperrors.ErrUnauthorized("invalid token"))
			return
		}
		if claims.Role != roleAdmin {
			apperrors.WriteJSON(w, apperrors.ErrForbidden("admin access required"))
			return
		}
		id := Identity{UserID: claims.Subject, Email: claims.Email, Admin: true}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}
