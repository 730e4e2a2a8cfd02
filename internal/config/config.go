package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds every credential and knob the API needs, read once at startup
// and injected into the handlers. Nothing else in the codebase touches the
// environment directly.
type Config struct {
	Port          string
	MongoURI      string
	MongoDB       string
	JWTSecret     string
	AllowedOrigin string

	// Back-office static credentials
	AdminUsername string
	AdminPassword string

	// Razorpay. The webhook secret is deliberately a separate credential from
	// the key secret: the client verify flow and the webhook flow are two
	// distinct trust paths.
	RazorpayKeyID     string
	RazorpayKeySecret string
	WebhookSecret     string

	// Optional integrations
	RedisAddr    string
	GeminiAPIKey string

	ReconcileInterval time.Duration
}

// Load reads the configuration from the environment. MONGO_URI, JWT_SECRET and
// the Razorpay credentials are required; everything else has a default or is
// optional.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getenv("PORT", "5000"),
		MongoURI:          os.Getenv("MONGO_URI"),
		MongoDB:           getenv("MONGO_DB", "hariom_fashion"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AllowedOrigin:     getenv("ALLOWED_ORIGIN", "http://localhost:5173"),
		AdminUsername:     getenv("ADMIN_USERNAME", "admin"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		WebhookSecret:     os.Getenv("RAZORPAY_WEBHOOK_SECRET"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		ReconcileInterval: time.Hour,
	}

	if v := os.Getenv("RECONCILE_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RECONCILE_INTERVAL %q: %w", v, err)
		}
		cfg.ReconcileInterval = d
	}

	switch {
	case cfg.MongoURI == "":
		return nil, fmt.Errorf("MONGO_URI is not set")
	case cfg.JWTSecret == "":
		return nil, fmt.Errorf("JWT_SECRET is not set")
	case cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "":
		return nil, fmt.Errorf("RAZORPAY_KEY_ID / RAZORPAY_KEY_SECRET are not set")
	case cfg.WebhookSecret == "":
		return nil, fmt.Errorf("RAZORPAY_WEBHOOK_SECRET is not set")
	case cfg.AdminPassword == "":
		return nil, fmt.Errorf("ADMIN_PASSWORD is not set")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
