// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Config holds everything the server needs at startup.
//
// The Clerk webhook signing secret is intentionally absent: the webhook
// handler reads CLERK_WEBHOOK_SECRET from the environment at request time,
// so a missing secret surfaces as a 500 on delivery instead of a crash at
// boot.
type Config struct {
	Port         string `validate:"required"`
	DatabasePath string `validate:"required"`

	// AuthMode selects the session token verifier: "clerk" verifies RS256
	// tokens against Clerk's JWKS endpoint, "static" verifies HS256 tokens
	// with SessionSecret (local development and tests).
	AuthMode      string `validate:"required,oneof=clerk static"`
	ClerkJWKSURL  string `validate:"required_if=AuthMode clerk,omitempty,url"`
	ClerkIssuer   string
	SessionSecret string `validate:"required_if=AuthMode static,omitempty,min=32"`
}

// Load reads configuration from the environment and validates it.
func Load() (Config, error) {
	cfg := Config{
		Port:          get("PORT", "8080"),
		DatabasePath:  get("DATABASE_PATH", "saasbase.db"),
		AuthMode:      get("AUTH_MODE", "clerk"),
		ClerkJWKSURL:  os.Getenv("CLERK_JWKS_URL"),
		ClerkIssuer:   os.Getenv("CLERK_ISSUER"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func get(name, fallback string) string {
	if value, ok := os.LookupEnv(name); ok && value != "" {
		return value
	}
	return fallback
}
