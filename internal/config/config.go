package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string
	LogLevel string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret string
	TokenTTL  time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxMaxAttempts  int

	// Zero disables the sweep.
	ExpirySweepInterval time.Duration

	MarketAPIURL   string
	MarketAPIKey   string
	MarketCacheTTL time.Duration
}

// loadEnv looks for a .env file next to the binary's working dir or up to two
// levels above it, falling back to .example.env. A missing file is not an error:
// the process environment may already carry everything.
func loadEnv() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}

	possiblePaths := []string{
		filepath.Join(wd, ".env"),
		filepath.Join(wd, "..", ".env"),
		filepath.Join(wd, "..", "..", ".env"),
	}

	for _, envPath := range possiblePaths {
		if err := godotenv.Load(envPath); err == nil {
			return envPath
		}
	}

	for _, envPath := range possiblePaths {
		examplePath := filepath.Join(filepath.Dir(envPath), ".example.env")
		if err := godotenv.Load(examplePath); err == nil {
			return examplePath
		}
	}

	return ""
}

// Load reads .env (if any) and then the process environment.
// It returns the path of the env file that was applied, empty if none.
func Load() (Config, string, error) {
	envFile := loadEnv()
	cfg, err := FromEnv()
	return cfg, envFile, err
}

func FromEnv() (Config, error) {
	var (
		cfg Config
		err error
	)

	cfg.HTTPPort = getString("HTTP_PORT", "9000")
	cfg.LogLevel = getString("LOG_LEVEL", "info")

	cfg.DBHost = getString("DB_HOST", "localhost")
	if cfg.DBPort, err = getInt("DB_PORT", 5432); err != nil {
		return Config{}, err
	}
	cfg.DBUser = getString("POSTGRES_USER", "postgres")
	cfg.DBPassword = getString("POSTGRES_PASSWORD", "postgres")
	cfg.DBName = getString("POSTGRES_DB", "foodshare")

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 3*time.Hour); err != nil {
		return Config{}, err
	}

	cfg.KafkaBrokers = splitList(os.Getenv("KAFKA_BROKERS"))
	cfg.KafkaTopic = getString("KAFKA_TOPIC", "donation_events")

	if cfg.OutboxPollInterval, err = getDuration("OUTBOX_POLL_INTERVAL", 2*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.OutboxBatchSize, err = getInt("OUTBOX_BATCH_SIZE", 50); err != nil {
		return Config{}, err
	}
	if cfg.OutboxMaxAttempts, err = getInt("OUTBOX_MAX_ATTEMPTS", 5); err != nil {
		return Config{}, err
	}

	if cfg.ExpirySweepInterval, err = getDuration("EXPIRY_SWEEP_INTERVAL", time.Minute); err != nil {
		return Config{}, err
	}

	cfg.MarketAPIURL = getString("MARKET_API_URL", "https://api.data.gov.in/resource/9ef84268-d588-465a-a308-a864a43d0070")
	cfg.MarketAPIKey = os.Getenv("DATA_GOV_API_KEY")
	if cfg.MarketCacheTTL, err = getDuration("MARKET_CACHE_TTL", 30*time.Minute); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
