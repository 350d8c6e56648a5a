// Package config assembles process configuration from the environment so
// main stays lean. A .env file is honored when present; real environment
// variables win.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	strs "persona/pkg/platform/strings"
)

// Config carries everything cmd/server needs to wire the service.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string
	// DatabaseURL selects the Postgres stores when set; otherwise the
	// in-memory stores are used.
	DatabaseURL string
	// RedisURL selects the Redis used-email ledger when set and no
	// database is configured.
	RedisURL string
	// EmailDomains is the allow-list for persona email hosts.
	EmailDomains []string
	// JWTSigningKey verifies caller identity tokens.
	JWTSigningKey string
	// JWTIssuer is the expected token issuer.
	JWTIssuer string
	// AuditBrokers enables the Kafka audit publisher when non-empty.
	AuditBrokers []string
	// AuditTopic is the Kafka topic for audit events.
	AuditTopic string
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	_ = godotenv.Load()

	return Config{
		Addr:          getenv("PERSONA_ADDR", ":8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		EmailDomains:  splitList(getenv("EMAIL_DOMAINS", "mypersona.tk")),
		JWTSigningKey: getenv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:     getenv("JWT_ISSUER", "persona"),
		AuditBrokers:  splitList(os.Getenv("AUDIT_BROKERS")),
		AuditTopic:    getenv("AUDIT_TOPIC", "persona.audit"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitList parses a comma-separated env value, dropping empties and
// duplicates.
func splitList(v string) []string {
	if v == "" {
		return nil
	}
	return strs.DedupeAndTrim(strings.Split(v, ","))
}
