package settings

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// StockPolicy decides what checkout does with a line whose requested quantity
// exceeds the product's stock.
type StockPolicy string

const (
	// StockPolicyIgnore records the order item anyway and leaves stock
	// untouched when the guard fails (legacy storefront behavior).
	StockPolicyIgnore StockPolicy = "ignore"
	// StockPolicyRejectLine drops the offending line and reports it.
	StockPolicyRejectLine StockPolicy = "reject_line"
	// StockPolicyRejectOrder fails the whole checkout.
	StockPolicyRejectOrder StockPolicy = "reject_order"
)

// Settings is the process-wide store configuration, loaded once at startup
// from the environment. Replaces the old singleton settings row.
type Settings struct {
	StoreName    string
	ContactEmail string
	FromEmail    string

	SMTPAddr     string // host:port, empty disables outbound mail
	SMTPHost     string
	SMTPUser     string
	SMTPPassword string

	StockPolicy StockPolicy
	SessionTTL  time.Duration
	JWTSecret   string
}

var (
	mu      sync.RWMutex
	current Settings
)

// Init loads settings from the environment. Call after godotenv, before the
// first request.
func Init() error {
	return Reload()
}

// Reload re-reads the environment and swaps the settings atomically.
func Reload() error {
	loaded, err := fromEnv()
	if err != nil {
		return err
	}
	mu.Lock()
	current = loaded
	mu.Unlock()
	return nil
}

// Get returns a copy of the current settings.
func Get() Settings {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

func fromEnv() (Settings, error) {
	s := Settings{
		StoreName:    envOr("STORE_NAME", "Minha Loja"),
		ContactEmail: os.Getenv("STORE_CONTACT_EMAIL"),
		FromEmail:    envOr("STORE_FROM_EMAIL", "loja@localhost"),
		SMTPAddr:     os.Getenv("SMTP_ADDR"),
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
	}

	policy := StockPolicy(envOr("STOCK_POLICY", string(StockPolicyRejectOrder)))
	switch policy {
	case StockPolicyIgnore, StockPolicyRejectLine, StockPolicyRejectOrder:
		s.StockPolicy = policy
	default:
		return Settings{}, fmt.Errorf("invalid STOCK_POLICY %q", policy)
	}

	ttl := envOr("CART_SESSION_TTL", "24h")
	d, err := time.ParseDuration(ttl)
	if err != nil {
		return Settings{}, fmt.Errorf("invalid CART_SESSION_TTL %q: %w", ttl, err)
	}
	s.SessionTTL = d

	return s, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
