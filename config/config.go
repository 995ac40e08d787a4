package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	Server ServerConfig
	Mpesa  MpesaConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	StaticDir    string
}

// MpesaConfig holds Daraja credentials. ConsumerKey, ConsumerSecret and
// Passkey have no defaults and must come from the environment.
type MpesaConfig struct {
	ConsumerKey       string
	ConsumerSecret    string
	BusinessShortCode string
	Passkey           string
	APIURL            string
	CallbackURL       string
}

// Sandbox reports whether the configured gateway is the Safaricom sandbox.
func (m MpesaConfig) Sandbox() bool {
	return strings.Contains(m.APIURL, "sandbox")
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         envOr("PORT", "3000"),
			Env:          envOr("APP_ENV", "development"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			StaticDir:    envOr("STATIC_DIR", "./web"),
		},
		Mpesa: MpesaConfig{
			ConsumerKey:       os.Getenv("MPESA_CONSUMER_KEY"),
			ConsumerSecret:    os.Getenv("MPESA_CONSUMER_SECRET"),
			BusinessShortCode: envOr("MPESA_SHORTCODE", "174379"),
			Passkey:           os.Getenv("MPESA_PASSKEY"),
			// Production: https://api.safaricom.co.ke
			APIURL:      envOr("MPESA_API_URL", "https://sandbox.safaricom.co.ke"),
			CallbackURL: os.Getenv("MPESA_CALLBACK_URL"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
