// Package auth verifies the bearer credentials presented by hub clients.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("token not provided")
	ErrInvalidToken = errors.New("invalid token")
)

// nameIdClaim is the user id claim written by the original credential issuer.
const nameIdClaim = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier"

// Verifier turns a bearer credential into an authenticated user id.
type Verifier interface {
	Verify(token string) (string, error)
}

type JWTVerifier struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

var _ Verifier = (*JWTVerifier)(nil)

func NewJWTVerifier(secret []byte, issuer, audience string) *JWTVerifier {
	return &JWTVerifier{
		secret:   secret,
		issuer:   issuer,
		audience: audience,
		ttl:      24 * time.Hour,
	}
}

// Issue signs a token for userId. The hub never issues tokens itself; this
// exists for tooling and tests.
func (v *JWTVerifier) Issue(userId string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userId,
		"iss": v.issuer,
		"aud": v.audience,
		"exp": now.Add(v.ttl).Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

func (v *JWTVerifier) Verify(tokenString string) (string, error) {
	if len(tokenString) == 0 {
		return "", ErrMissingToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}

	if id, ok := claims[nameIdClaim].(string); ok && id != "" {
		return id, nil
	}
	if id, ok := claims["sub"].(string); ok && id != "" {
		return id, nil
	}
	return "", errors.New("missing user id claim")
}
