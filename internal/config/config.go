package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration for every process in the module.
type Config struct {
	App       AppConfig       `yaml:"app"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Auth      AuthConfig      `yaml:"auth"`
	Auth0     Auth0Config     `yaml:"auth0"`
	Log       LogConfig       `yaml:"log"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type AppConfig struct {
	Name         string        `yaml:"name"`
	Env          string        `yaml:"env"`
	Port         string        `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	SSLMode         string        `yaml:"ssl_mode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnectRetries  int           `yaml:"connect_retries"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type KafkaConfig struct {
	Brokers        []string      `yaml:"brokers"`
	LifecycleTopic string        `yaml:"lifecycle_topic"`
	PollInterval   time.Duration `yaml:"poll_interval"`
	BatchSize      int           `yaml:"batch_size"`
}

// AuthConfig drives token verification. When IssuerURL is set tokens are
// verified as RS256 against the issuer's JWKS, otherwise HMACSecret is used.
type AuthConfig struct {
	IssuerURL       string `yaml:"issuer_url"`
	Audience        string `yaml:"audience"`
	ClaimsNamespace string `yaml:"claims_namespace"`
	HMACSecret      string `yaml:"hmac_secret"`
}

type Auth0Config struct {
	Domain       string `yaml:"domain"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	Connection   string `yaml:"connection"`
	ResultURL    string `yaml:"result_url"`
}

type LogConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

func defaults() Config {
	return Config{
		App: AppConfig{
			Name:         "empms-backend",
			Env:          "development",
			Port:         "3000",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			Name:            "empms",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    10,
			ConnMaxLifetime: time.Hour,
			ConnectRetries:  5,
		},
		Redis: RedisConfig{
			Addr:     "127.0.0.1:6379",
			CacheTTL: 10 * time.Minute,
		},
		Kafka: KafkaConfig{
			LifecycleTopic: "empms.employee.lifecycle.v1",
			PollInterval:   3 * time.Second,
			BatchSize:      50,
		},
		Auth0: Auth0Config{
			Connection: "Username-Password-Authentication",
			ResultURL:  "http://localhost:3000",
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "json",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 5,
			Burst:             10,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and finally environment variables, which always win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Port = getEnv("PORT", cfg.App.Port)
	cfg.App.ReadTimeout = getEnvAsDuration("HTTP_READ_TIMEOUT", cfg.App.ReadTimeout)
	cfg.App.WriteTimeout = getEnvAsDuration("HTTP_WRITE_TIMEOUT", cfg.App.WriteTimeout)
	cfg.App.IdleTimeout = getEnvAsDuration("HTTP_IDLE_TIMEOUT", cfg.App.IdleTimeout)

	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnvAsInt("DB_PORT", cfg.Database.Port)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.Name = getEnv("DB_NAME", cfg.Database.Name)
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", cfg.Database.SSLMode)
	cfg.Database.MaxOpenConns = getEnvAsInt("DB_MAX_OPEN_CONNS", cfg.Database.MaxOpenConns)
	cfg.Database.MaxIdleConns = getEnvAsInt("DB_MAX_IDLE_CONNS", cfg.Database.MaxIdleConns)
	cfg.Database.ConnMaxLifetime = getEnvAsDuration("DB_CONN_MAX_LIFETIME", cfg.Database.ConnMaxLifetime)
	cfg.Database.ConnectRetries = getEnvAsInt("DB_CONNECT_RETRIES", cfg.Database.ConnectRetries)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.CacheTTL = getEnvAsDuration("REDIS_CACHE_TTL", cfg.Redis.CacheTTL)

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.Kafka.Brokers = splitList(brokers)
	}
	cfg.Kafka.LifecycleTopic = getEnv("KAFKA_LIFECYCLE_TOPIC", cfg.Kafka.LifecycleTopic)
	cfg.Kafka.PollInterval = getEnvAsDuration("OUTBOX_POLL_INTERVAL", cfg.Kafka.PollInterval)
	cfg.Kafka.BatchSize = getEnvAsInt("OUTBOX_BATCH_SIZE", cfg.Kafka.BatchSize)

	cfg.Auth.IssuerURL = getEnv("AUTH0_ISSUER_URL", cfg.Auth.IssuerURL)
	cfg.Auth.Audience = getEnv("AUTH0_AUDIENCE", cfg.Auth.Audience)
	cfg.Auth.ClaimsNamespace = getEnv("AUTH_CLAIMS_NAMESPACE", cfg.Auth.ClaimsNamespace)
	cfg.Auth.HMACSecret = getEnv("JWT_SECRET", cfg.Auth.HMACSecret)
	if cfg.Auth.ClaimsNamespace == "" {
		cfg.Auth.ClaimsNamespace = namespaceFromIssuer(cfg.Auth.IssuerURL)
	}

	cfg.Auth0.Domain = getEnv("AUTH0_DOMAIN", cfg.Auth0.Domain)
	cfg.Auth0.ClientID = getEnv("AUTH0_CLIENT_ID", cfg.Auth0.ClientID)
	cfg.Auth0.ClientSecret = getEnv("AUTH0_CLIENT_SECRET", cfg.Auth0.ClientSecret)
	cfg.Auth0.Connection = getEnv("AUTH0_CONNECTION", cfg.Auth0.Connection)
	cfg.Auth0.ResultURL = getEnv("FRONTEND_URL", cfg.Auth0.ResultURL)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Encoding = getEnv("LOG_ENCODING", cfg.Log.Encoding)

	cfg.RateLimit.RequestsPerSecond = getEnvAsFloat("RATE_LIMIT_RPS", cfg.RateLimit.RequestsPerSecond)
	cfg.RateLimit.Burst = getEnvAsInt("RATE_LIMIT_BURST", cfg.RateLimit.Burst)
}

func (c *Config) validate() error {
	if c.App.Port == "" {
		return errors.New("config: app port must be set")
	}
	if c.Auth.IssuerURL == "" && c.Auth.HMACSecret == "" {
		return errors.New("config: either AUTH0_ISSUER_URL or JWT_SECRET must be set")
	}
	if c.Redis.CacheTTL <= 0 {
		return errors.New("config: redis cache ttl must be positive")
	}
	return nil
}

// Configured reports whether the management API credentials are all present.
func (a Auth0Config) Configured() bool {
	return a.Domain != "" && a.ClientID != "" && a.ClientSecret != ""
}

// DSN returns the key/value connection string used by the GORM postgres driver.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

// URL returns the postgres:// form used by golang-migrate.
func (d DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	return u.String()
}

// namespaceFromIssuer derives the custom-claim prefix ("tenant.auth0.com")
// from an issuer URL ("https://tenant.auth0.com/").
func namespaceFromIssuer(issuer string) string {
	if issuer == "" {
		return ""
	}
	u, err := url.Parse(issuer)
	if err != nil || u.Host == "" {
		return strings.TrimSuffix(issuer, "/")
	}
	return u.Host
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsFloat(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return parsed
}
