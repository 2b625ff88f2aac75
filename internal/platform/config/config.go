package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything the server needs from the environment so main
// stays lean.
type Config struct {
	Addr        string
	DatabaseURL string
	Redis       RedisConfig
	Kafka       KafkaConfig

	// StoreTimeout bounds every store call so a slow database surfaces as a
	// typed error instead of a hang.
	StoreTimeout time.Duration

	// RenewalHorizonDays is the look-ahead window for the expiry scanner.
	RenewalHorizonDays int
	// RenewalScanInterval is how often the advisor worker re-runs the scan.
	RenewalScanInterval time.Duration
}

// RedisConfig holds connection settings for the FAQ answer cache. An empty
// URL disables the cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AnswerTTL    time.Duration
}

// KafkaConfig holds settings for the renewal-reminder publisher. Empty
// brokers disable publishing.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Config from environment variables, applying development
// defaults where unset.
func FromEnv() Config {
	return Config{
		Addr:        envString("TRADEGATE_ADDR", ":8080"),
		DatabaseURL: envString("TRADEGATE_DATABASE_URL", ""),
		Redis: RedisConfig{
			URL:          envString("TRADEGATE_REDIS_URL", ""),
			PoolSize:     envInt("TRADEGATE_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("TRADEGATE_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("TRADEGATE_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("TRADEGATE_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("TRADEGATE_REDIS_WRITE_TIMEOUT", 3*time.Second),
			AnswerTTL:    envDuration("TRADEGATE_FAQ_CACHE_TTL", 5*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers: envStringList("TRADEGATE_KAFKA_BROKERS"),
			Topic:   envString("TRADEGATE_KAFKA_REMINDER_TOPIC", "license-renewal-reminders"),
		},
		StoreTimeout:        envDuration("TRADEGATE_STORE_TIMEOUT", 5*time.Second),
		RenewalHorizonDays:  envInt("TRADEGATE_RENEWAL_HORIZON_DAYS", 30),
		RenewalScanInterval: envDuration("TRADEGATE_RENEWAL_SCAN_INTERVAL", time.Hour),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envStringList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
