package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingToken is returned when no bearer token is present
	ErrMissingToken = errors.New("missing bearer token")

	// ErrInvalidToken is returned when the token fails signature, issuer,
	// audience or shape checks
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned for expired tokens. It matches
	// ErrInvalidToken under errors.Is so both map to the same response.
	ErrTokenExpired = fmt.Errorf("%w: expired", ErrInvalidToken)
)

// RawClaims is the claim set of a verified token, before principal
// resolution normalizes it.
type RawClaims map[string]interface{}

// VerifierConfig holds the token verification parameters.
type VerifierConfig struct {
	Secret   string
	Issuer   string
	Audience string
}

// Verifier validates bearer tokens signed with the shared HS256 secret.
// Verification is purely functional: no I/O, no state beyond the config.
type Verifier struct {
	secret   []byte
	issuer   string
	audience string
}

// NewVerifier creates a new token verifier.
func NewVerifier(cfg VerifierConfig) *Verifier {
	return &Verifier{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
	}
}

// Verify checks the token's signature, expiry, issuer and audience and
// returns its raw claims. All failures map to ErrInvalidToken, with expiry
// distinguished as ErrTokenExpired.
func (v *Verifier) Verify(tokenString string) (RawClaims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.Parse(tokenString,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return v.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return RawClaims(claims), nil
}
