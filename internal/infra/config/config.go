// internal/infra/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all environment-derived settings for the service.
// Values are resolved and normalized exactly once at startup.
type Config struct {
	Port string

	// Chain RPC endpoint. Defaults to the public devnet node.
	RPCEndpoint string

	// Custodial signer material, first match wins:
	// - CUSTODIAL_KEY_SECRET: full Secret Manager version path
	//   ("projects/<P>/secrets/<S>/versions/latest")
	// - CUSTODIAL_KEYPAIR_FILE: local solana-keygen JSON file
	// - CUSTODIAL_KEYPAIR: inline keypair JSON array
	CustodialKeySecret   string
	CustodialKeypairFile string
	CustodialKeypair     string

	// Hard cap on the whole-unit pre-purchase amount per request.
	MaxPrePurchase int64

	// Lamports kept on top of the mint-account rent as a fee cushion
	// when pre-flighting the custodial balance.
	FeeBufferLamports uint64

	// Compute-unit price in micro-lamports. 0 disables the priority fee
	// instruction entirely.
	PriorityFeeMicroLamports uint64

	// Wait between a confirmed create phase and the funding phase so the
	// new accounts are visible on the validating nodes.
	SettleDelay time.Duration

	// Interval between confirmation polls.
	ConfirmPollInterval time.Duration

	// Wall-clock cap on one phase's confirmation wait. Bounds the poll
	// loop even when the RPC endpoint stops answering entirely.
	ConfirmWindow time.Duration

	// Origin allowed by the CORS middleware.
	AllowedOrigin string
}

// Load reads the environment and returns a normalized Config.
func Load() *Config {
	return &Config{
		Port:        getenvDefault("PORT", "8080"),
		RPCEndpoint: getenvDefault("SOLANA_RPC_URL", "https://api.devnet.solana.com"),

		CustodialKeySecret:   getenvTrim("CUSTODIAL_KEY_SECRET"),
		CustodialKeypairFile: getenvTrim("CUSTODIAL_KEYPAIR_FILE"),
		CustodialKeypair:     getenvTrim("CUSTODIAL_KEYPAIR"),

		MaxPrePurchase:           getenvInt64("MAX_PREPURCHASE_AMOUNT", 1_000_000_000),
		FeeBufferLamports:        getenvUint64("FEE_BUFFER_LAMPORTS", 10_000_000),
		PriorityFeeMicroLamports: getenvUint64("PRIORITY_FEE_MICROLAMPORTS", 0),

		SettleDelay:         getenvMillis("SETTLE_DELAY_MS", 2000),
		ConfirmPollInterval: getenvMillis("CONFIRM_POLL_INTERVAL_MS", 1000),
		ConfirmWindow:       getenvMillis("CONFIRM_WINDOW_MS", 90_000),

		AllowedOrigin: getenvDefault("ALLOWED_ORIGIN", "*"),
	}
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvTrim(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func getenvInt64(key string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func getenvUint64(key string, def uint64) uint64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func getenvMillis(key string, defMillis int64) time.Duration {
	return time.Duration(getenvInt64(key, defMillis)) * time.Millisecond
}
