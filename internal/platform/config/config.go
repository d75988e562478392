// Package config reads process configuration from LEADENGINE_* environment
// variables so main stays lean.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	pstrings "leadengine/pkg/platform/strings"
)

// Storage backends.
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// Sink backends.
const (
	SinkMemory = "memory"
	SinkKafka  = "kafka"
)

// Server is the full process configuration.
type Server struct {
	Addr     string
	Env      string
	LogLevel string

	Storage  string
	Redis    RedisConfig
	Postgres PostgresConfig

	Sink  string
	Kafka KafkaConfig

	// VisitorSigningKey signs visitor cookies as JWTs when set, so a client
	// cannot claim another visitor's storage scope.
	VisitorSigningKey string

	ServiceAreaFile string
	LookupLatency   time.Duration
	PageViewMaxAge  time.Duration
	SecureCookies   bool
	DataLayerLimit  int
}

// RedisConfig configures the Redis visitor store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	KeyTTL       time.Duration
}

// Postgres drivers registered with database/sql.
const (
	DriverPQ  = "postgres"
	DriverPgx = "pgx"
)

// PostgresConfig configures the Postgres visitor store.
type PostgresConfig struct {
	Driver string
	DSN    string
	Table  string
}

// KafkaConfig configures the analytics sink.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// IsDevelopment enables the dataLayer debug endpoint and event debug logs.
func (s Server) IsDevelopment() bool {
	return s.Env == "development"
}

// FromEnv builds the config and validates backend choices.
func FromEnv() (Server, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Server, error) {
	get := func(key, def string) string {
		if v, ok := lookup("LEADENGINE_" + key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	var errs []string
	duration := func(key string, def time.Duration) time.Duration {
		raw := get(key, "")
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			errs = append(errs, fmt.Sprintf("LEADENGINE_%s: invalid duration %q", key, raw))
			return def
		}
		return d
	}
	integer := func(key string, def int) int {
		raw := get(key, "")
		if raw == "" {
			return def
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			errs = append(errs, fmt.Sprintf("LEADENGINE_%s: invalid integer %q", key, raw))
			return def
		}
		return n
	}

	cfg := Server{
		Addr:     get("ADDR", ":8080"),
		Env:      get("ENV", "development"),
		LogLevel: get("LOG_LEVEL", "info"),
		Storage:  get("STORAGE", StorageMemory),
		Redis: RedisConfig{
			URL:          get("REDIS_URL", ""),
			PoolSize:     integer("REDIS_POOL_SIZE", 10),
			MinIdleConns: integer("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			KeyTTL:       duration("REDIS_KEY_TTL", 0),
		},
		Postgres: PostgresConfig{
			Driver: get("POSTGRES_DRIVER", DriverPQ),
			DSN:    get("POSTGRES_DSN", ""),
			Table:  get("POSTGRES_TABLE", "visitor_storage"),
		},
		Sink: get("SINK", SinkMemory),
		Kafka: KafkaConfig{
			Brokers: pstrings.SplitList(get("KAFKA_BROKERS", "")),
			Topic:   get("KAFKA_TOPIC", "leadengine.analytics.events"),
		},
		VisitorSigningKey: get("VISITOR_SIGNING_KEY", ""),
		ServiceAreaFile:   get("SERVICE_AREA_FILE", ""),
		LookupLatency:     duration("LOOKUP_LATENCY", 1500*time.Millisecond),
		PageViewMaxAge:    duration("PAGEVIEW_MAX_AGE", 30*time.Minute),
		SecureCookies:     get("SECURE_COOKIES", "false") == "true",
		DataLayerLimit:    integer("DATALAYER_LIMIT", 1000),
	}

	switch cfg.Storage {
	case StorageMemory:
	case StorageRedis:
		if cfg.Redis.URL == "" {
			errs = append(errs, "LEADENGINE_REDIS_URL is required for redis storage")
		}
	case StoragePostgres:
		if cfg.Postgres.DSN == "" {
			errs = append(errs, "LEADENGINE_POSTGRES_DSN is required for postgres storage")
		}
		if cfg.Postgres.Driver != DriverPQ && cfg.Postgres.Driver != DriverPgx {
			errs = append(errs, fmt.Sprintf("LEADENGINE_POSTGRES_DRIVER: unknown driver %q", cfg.Postgres.Driver))
		}
	default:
		errs = append(errs, fmt.Sprintf("LEADENGINE_STORAGE: unknown backend %q", cfg.Storage))
	}

	switch cfg.Sink {
	case SinkMemory:
	case SinkKafka:
		if len(cfg.Kafka.Brokers) == 0 {
			errs = append(errs, "LEADENGINE_KAFKA_BROKERS is required for kafka sink")
		}
	default:
		errs = append(errs, fmt.Sprintf("LEADENGINE_SINK: unknown backend %q", cfg.Sink))
	}

	if cfg.VisitorSigningKey != "" && len(cfg.VisitorSigningKey) < 32 {
		errs = append(errs, "LEADENGINE_VISITOR_SIGNING_KEY must be at least 32 bytes")
	}

	if len(errs) > 0 {
		return cfg, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}
