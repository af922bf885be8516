package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmoren/saasbase/internal/auth"
)

func newJWKSServer(t *testing.T, kid string, key *rsa.PrivateKey) *httptest.Server {
	t.Helper()

	eBytes := big.NewInt(int64(key.PublicKey.E)).Bytes()
	document := map[string]any{
		"keys": []map[string]string{{
			"kid": kid,
			"kty": "RSA",
			"n":   base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(eBytes),
		}},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(document)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func signRS256(t *testing.T, kid string, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestClerkVerifier_Valid(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	srv := newJWKSServer(t, "key-1", key)

	v, err := auth.NewVerifier(auth.Config{Mode: "clerk", JWKSURL: srv.URL})
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}

	token := signRS256(t, "key-1", key, jwt.MapClaims{
		"sub":   "user_clerk",
		"sid":   "sess_9",
		"email": "clerk@example.com",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	id, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id.ClerkID != "user_clerk" {
		t.Fatalf("expected clerk id user_clerk, got %q", id.ClerkID)
	}
	if id.SessionID != "sess_9" {
		t.Fatalf("expected session id sess_9, got %q", id.SessionID)
	}
}

func TestClerkVerifier_UnknownKid(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	srv := newJWKSServer(t, "key-1", key)

	v, err := auth.NewVerifier(auth.Config{Mode: "clerk", JWKSURL: srv.URL})
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}

	token := signRS256(t, "key-2", key, jwt.MapClaims{
		"sub": "user_clerk",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	if _, err := v.Verify(context.Background(), token); err == nil {
		t.Fatal("expected verification to fail for unknown kid")
	}
}

func TestClerkVerifier_WrongIssuer(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	srv := newJWKSServer(t, "key-1", key)

	v, err := auth.NewVerifier(auth.Config{
		Mode:    "clerk",
		JWKSURL: srv.URL,
		Issuer:  "https://expected.example.com",
	})
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}

	token := signRS256(t, "key-1", key, jwt.MapClaims{
		"sub": "user_clerk",
		"iss": "https://other.example.com",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	if _, err := v.Verify(context.Background(), token); err == nil {
		t.Fatal("expected verification to fail for wrong issuer")
	}
}

func TestClerkVerifier_RejectsHS256(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	srv := newJWKSServer(t, "key-1", key)

	v, err := auth.NewVerifier(auth.Config{Mode: "clerk", JWKSURL: srv.URL})
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}

	hs := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user_clerk",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	hs.Header["kid"] = "key-1"
	signed, err := hs.SignedString([]byte("shared"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := v.Verify(context.Background(), signed); err == nil {
		t.Fatal("expected verification to reject HS256 token")
	}
}
