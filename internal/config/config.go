package config

import (
	"os"
	"strconv"
	"time"
)

// Payout holds every tunable of the transfer engine. Values come from the
// environment (godotenv loads .env in each binary's main).
type Payout struct {
	MinAmount          float64
	MaxAmount          float64
	DefaultFeeIMPS     float64
	DefaultFeeNEFT     float64
	DuplicateWindow    time.Duration
	StaleAfter         time.Duration
	AutoRefundAfter    time.Duration
	ReconcileBatchSize int
}

type Provider struct {
	BaseUrl     string
	Token       string
	SenderName  string
	CallTimeout time.Duration
}

func LoadPayout() Payout {
	return Payout{
		MinAmount:          envFloat("PAYOUT_MIN_AMOUNT", 100),
		MaxAmount:          envFloat("PAYOUT_MAX_AMOUNT", 200000),
		DefaultFeeIMPS:     envFloat("DEFAULT_FEE_IMPS", 10),
		DefaultFeeNEFT:     envFloat("DEFAULT_FEE_NEFT", 5),
		DuplicateWindow:    time.Duration(envInt("PAYOUT_DUPLICATE_WINDOW_SECS", 120)) * time.Second,
		StaleAfter:         time.Duration(envInt("PAYOUT_STALE_AFTER_MINS", 5)) * time.Minute,
		AutoRefundAfter:    time.Duration(envInt("PAYOUT_AUTO_REFUND_HOURS", 48)) * time.Hour,
		ReconcileBatchSize: envInt("RECONCILE_BATCH_SIZE", 100),
	}
}

func LoadProvider() Provider {
	return Provider{
		BaseUrl:     getEnv("PROVIDER_BASE_URL", "https://api.transferpartner.example"),
		Token:       os.Getenv("PROVIDER_TOKEN"),
		SenderName:  getEnv("PROVIDER_SENDER_NAME", "Payout Service"),
		CallTimeout: time.Duration(envInt("PROVIDER_TIMEOUT_SECS", 30)) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
