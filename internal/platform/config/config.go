package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends for the snapshot store.
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr        string `yaml:"addr"`
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`
}

// API configures the verification backend client.
type API struct {
	BaseURL string        `yaml:"base_url"`
	Key     string        `yaml:"key"`
	Timeout time.Duration `yaml:"timeout"`
}

// Verification configures channel adapters and the wizard.
type Verification struct {
	PollInterval           time.Duration `yaml:"poll_interval"`
	BackgroundCheckTimeout time.Duration `yaml:"background_check_timeout"`
	PhoneResendCooldown    time.Duration `yaml:"phone_resend_cooldown"`
	ScreenshotMaxBytes     int64         `yaml:"screenshot_max_bytes"`
	AllowedImageTypes      []string      `yaml:"allowed_image_types"`
}

// Storage configures snapshot persistence.
type Storage struct {
	Backend     string        `yaml:"backend"`
	Prefix      string        `yaml:"prefix"`
	MaxAge      time.Duration `yaml:"max_age"`
	DatabaseURL string        `yaml:"database_url"`
}

// RedisConfig configures the Redis client.
type RedisConfig struct {
	URL          string        `yaml:"url"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// Kafka configures the verificationComplete event stream.
type Kafka struct {
	Brokers string `yaml:"brokers"`
	Topic   string `yaml:"topic"`
}

// Sessions configures hosted wizard sessions.
type Sessions struct {
	SigningKey string        `yaml:"signing_key"`
	TokenTTL   time.Duration `yaml:"token_ttl"`
	IdleTTL    time.Duration `yaml:"idle_ttl"`
	SweepEvery time.Duration `yaml:"sweep_every"`
}

// Config is the full service configuration.
type Config struct {
	Server       Server       `yaml:"server"`
	API          API          `yaml:"api"`
	Verification Verification `yaml:"verification"`
	Storage      Storage      `yaml:"storage"`
	Redis        RedisConfig  `yaml:"redis"`
	Kafka        Kafka        `yaml:"kafka"`
	Sessions     Sessions     `yaml:"sessions"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: Server{
			Addr:        ":8080",
			Environment: "development",
			LogLevel:    "info",
		},
		API: API{
			BaseURL: "http://localhost:3001/api",
			Timeout: 10 * time.Second,
		},
		Verification: Verification{
			PollInterval:           3 * time.Second,
			BackgroundCheckTimeout: 2 * time.Minute,
			PhoneResendCooldown:    60 * time.Second,
			ScreenshotMaxBytes:     5 << 20,
			AllowedImageTypes:      []string{"image/jpeg", "image/png", "image/webp"},
		},
		Storage: Storage{
			Backend: StorageMemory,
			Prefix:  "casl_",
			MaxAge:  24 * time.Hour,
		},
		Redis: RedisConfig{
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: Kafka{
			Topic: "casl.verification-complete",
		},
		Sessions: Sessions{
			SigningKey: "dev-secret-key-change-in-production",
			TokenTTL:   2 * time.Hour,
			IdleTTL:    30 * time.Minute,
			SweepEvery: time.Minute,
		},
	}
}

// Load reads an optional YAML file over the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}
	applyEnv(&cfg, os.Getenv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv builds a Config from defaults and environment variables so main stays lean.
func FromEnv() Config {
	cfg := Default()
	applyEnv(&cfg, os.Getenv)
	return cfg
}

// Validate rejects combinations the server cannot start with.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case StorageMemory:
	case StorageRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("storage backend redis requires REDIS_URL")
		}
	case StoragePostgres:
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("storage backend postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("api base url is required")
	}
	if c.Verification.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	setString(&cfg.Server.Addr, getenv("CASL_ADDR"))
	setString(&cfg.Server.Environment, getenv("CASL_ENV"))
	setString(&cfg.Server.LogLevel, getenv("LOG_LEVEL"))

	setString(&cfg.API.BaseURL, getenv("CASL_API_URL"))
	setString(&cfg.API.Key, getenv("CASL_API_KEY"))
	setDuration(&cfg.API.Timeout, getenv("CASL_API_TIMEOUT"))

	setDuration(&cfg.Verification.PollInterval, getenv("CASL_POLL_INTERVAL"))
	setDuration(&cfg.Verification.BackgroundCheckTimeout, getenv("CASL_BACKGROUND_CHECK_TIMEOUT"))
	setDuration(&cfg.Verification.PhoneResendCooldown, getenv("CASL_PHONE_RESEND_COOLDOWN"))
	if v := getenv("CASL_SCREENSHOT_MAX_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.Verification.ScreenshotMaxBytes = n
		}
	}
	if v := getenv("CASL_ALLOWED_IMAGE_TYPES"); v != "" {
		var types []string
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, t)
			}
		}
		cfg.Verification.AllowedImageTypes = types
	}

	setString(&cfg.Storage.Backend, getenv("CASL_STORAGE_BACKEND"))
	setString(&cfg.Storage.Prefix, getenv("CASL_STORAGE_PREFIX"))
	setDuration(&cfg.Storage.MaxAge, getenv("CASL_SNAPSHOT_MAX_AGE"))
	setString(&cfg.Storage.DatabaseURL, getenv("DATABASE_URL"))

	setString(&cfg.Redis.URL, getenv("REDIS_URL"))

	setString(&cfg.Kafka.Brokers, getenv("KAFKA_BROKERS"))
	setString(&cfg.Kafka.Topic, getenv("KAFKA_TOPIC"))

	setString(&cfg.Sessions.SigningKey, getenv("SESSION_SIGNING_KEY"))
	setDuration(&cfg.Sessions.TokenTTL, getenv("SESSION_TOKEN_TTL"))
	setDuration(&cfg.Sessions.IdleTTL, getenv("SESSION_IDLE_TTL"))
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v string) {
	if v == "" {
		return
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		*dst = d
	}
}
