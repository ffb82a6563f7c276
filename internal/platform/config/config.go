package config

import (
	"os"
	"time"
)

// Server captures process level configuration for the ATM service.
type Server struct {
	Addr          string
	LedgerPath    string
	SeedDir       string
	JWTSigningKey string
	SessionTTL    time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("ATM_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	ledgerPath := os.Getenv("ATM_LEDGER_PATH")
	if ledgerPath == "" {
		ledgerPath = "transactions.log"
	}

	seedDir := os.Getenv("ATM_SEED_DIR")
	if seedDir == "" {
		seedDir = "fingerprints"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	ttl := 5 * time.Minute
	if raw := os.Getenv("ATM_SESSION_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			ttl = parsed
		}
	}

	return Server{
		Addr:          addr,
		LedgerPath:    ledgerPath,
		SeedDir:       seedDir,
		JWTSigningKey: jwtSigningKey,
		SessionTTL:    ttl,
	}
}
