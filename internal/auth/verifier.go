// Package auth verifies identity-provider session tokens.
package auth

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmoren/saasbase/internal/domain"
)

// Identity is the verified subject extracted from a session token. ClerkID
// is always present; the profile claims are optional and empty when the
// token does not carry them.
type Identity struct {
	ClerkID   string
	SessionID string
	Email     string
	Name      string
	ImageURL  string
	ExpiresAt int64
}

// Verifier validates a session token and returns the identity it asserts.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// Config captures the inputs required to construct a Verifier.
type Config struct {
	Mode    string // "clerk" or "static"
	JWKSURL string
	Issuer  string
	Secret  string
}

// NewVerifier constructs the Verifier matching cfg.Mode.
func NewVerifier(cfg Config) (Verifier, error) {
	switch cfg.Mode {
	case "clerk":
		return newClerkVerifier(cfg)
	case "static":
		return NewStaticVerifier(cfg.Secret), nil
	default:
		return nil, fmt.Errorf("unsupported auth mode: %s", cfg.Mode)
	}
}

// StaticVerifier validates HS256 tokens signed with a shared secret. It is
// used for local development and tests, where no Clerk instance exists.
type StaticVerifier struct {
	secret []byte
}

// NewStaticVerifier creates a StaticVerifier with the given shared secret.
func NewStaticVerifier(secret string) *StaticVerifier {
	return &StaticVerifier{secret: []byte(secret)}
}

// Verify parses and validates an HS256 session token.
func (v *StaticVerifier) Verify(_ context.Context, tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, domain.ErrUnauthenticated
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, domain.ErrUnauthenticated
	}

	return identityFromClaims(claims)
}

func identityFromClaims(claims jwt.MapClaims) (Identity, error) {
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return Identity{}, domain.ErrUnauthenticated
	}

	id := Identity{ClerkID: sub}
	id.SessionID, _ = claims["sid"].(string)
	id.Email, _ = claims["email"].(string)
	id.Name, _ = claims["name"].(string)
	id.ImageURL, _ = claims["image_url"].(string)
	if exp, ok := claims["exp"].(float64); ok {
		id.ExpiresAt = int64(exp)
	}
	return id, nil
}
