// File: internal/auth/jwt.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken   = errors.New("missing token")
	ErrInvalidToken   = errors.New("invalid token")
	ErrMissingSubject = errors.New("token has no subject")
)

// Verifier checks session tokens issued by the identity provider.
type Verifier struct {
	secret   []byte
	issuer   string
	audience string
}

type VerifierOption func(*Verifier)

func WithIssuer(issuer string) VerifierOption {
	return func(v *Verifier) { v.issuer = issuer }
}

func WithAudience(audience string) VerifierOption {
	return func(v *Verifier) { v.audience = audience }
}

func NewVerifier(secret []byte, opts ...VerifierOption) *Verifier {
	v := &Verifier{secret: secret}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify validates signature, expiry and the optional issuer/audience, and
// returns the subject claim as the user id.
func (v *Verifier) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrMissingToken
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(v.audience))
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, parserOpts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrMissingSubject
	}
	return claims.Subject, nil
}

// TokenOptions sets the optional registered claims of a minted token.
type TokenOptions struct {
	Issuer   string
	Audience string
}

// GenerateToken mints an HS256 token for local development and tests.
func GenerateToken(subject string, secretKey []byte, ttl time.Duration, opts TokenOptions) (string, error) {
	if subject == "" {
		return "", ErrMissingSubject
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    opts.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	if opts.Audience != "" {
		claims.Audience = jwt.ClaimStrings{opts.Audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}
