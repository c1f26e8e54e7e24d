package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"sikopifasta-backend/internal/domain/apperr"
	"sikopifasta-backend/internal/domain/user"
)

// ErrUnauthenticated is returned for a missing, malformed or expired token.
// It is not an apperr kind: the HTTP layer answers it with 401.
var ErrUnauthenticated = errors.New("unauthenticated")

var ErrInactive = apperr.New(apperr.ErrForbidden, "account is not active")

// Authenticator verifies HS256 bearer tokens issued by the identity provider
// and resolves the subject against the users directory.
type Authenticator struct {
	secret []byte
	issuer string
	users  user.Repository
}

func NewAuthenticator(secret, issuer string, users user.Repository) *Authenticator {
	return &Authenticator{secret: []byte(secret), issuer: issuer, users: users}
}

func (a *Authenticator) parse(raw string) (string, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		return "", errors.Join(ErrUnauthenticated, err)
	}
	uid := strings.TrimSpace(claims.Subject)
	if uid == "" {
		return "", errors.Join(ErrUnauthenticated, errors.New("token has no subject"))
	}
	return uid, nil
}

// Authenticate returns the caller for a raw token. Unknown and inactive
// accounts are Forbidden.
func (a *Authenticator) Authenticate(ctx context.Context, raw string) (user.Caller, error) {
	uid, err := a.parse(raw)
	if err != nil {
		return user.Caller{}, err
	}
	p, err := a.users.GetByUID(ctx, uid)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, user.ErrNotFound):
		return user.Caller{}, apperr.Forbidden("no profile for this account")
	case err != nil:
		return user.Caller{}, apperr.Transport(err)
	case !p.IsActive:
		return user.Caller{}, ErrInactive
	}
	return user.Caller{UID: p.UID, Role: p.Role}, nil
}

// Sign issues a token for uid. Used by tooling and tests.
func Sign(secret, issuer, uid string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   uid,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
