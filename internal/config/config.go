package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	ENV string
}

type LogConfig struct {
	Level     string
	Format    string
	Component string
	Source    bool
}

type DBConfig struct {
	Driver   string
	DSN      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type GRPCConfig struct {
	Host           string
	Port           string
	RequestTimeout time.Duration
}

type HTTPConfig struct {
	Host string
	Port string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// MatchingConfig tunes discovery page sizes, the per-pair lock and the
// who-liked-me counter cache.
type MatchingConfig struct {
	DiscoveryLimit    int
	DiscoveryMaxLimit int
	PairLockTTL       time.Duration
	PairLockWait      time.Duration
	LikeCountTTL      time.Duration
}

type MediaConfig struct {
	Dir     string
	BaseURL string
}

type Config struct {
	App      AppConfig
	Log      LogConfig
	DB       DBConfig
	Redis    RedisConfig
	GRPC     GRPCConfig
	HTTP     HTTPConfig
	Auth     AuthConfig
	Matching MatchingConfig
	Media    MediaConfig
}

// New loads configuration from the environment, falling back to a .env file
// in the working directory and finally to defaults.
func New() *Config {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// .env is optional
	_ = v.ReadInConfig()

	setDefaults(v)

	cfg := &Config{}

	cfg.App.ENV = strings.ToLower(v.GetString("APP_ENV"))

	// Logger
	cfg.Log.Level = v.GetString("LOG_LEVEL")
	cfg.Log.Format = v.GetString("LOG_FORMAT")
	cfg.Log.Component = v.GetString("LOG_COMPONENT")
	cfg.Log.Source = isTruthy(v.GetString("LOG_SOURCE"))

	// Database
	cfg.DB.Driver = strings.ToLower(v.GetString("DB_DRIVER"))
	cfg.DB.Host = v.GetString("DB_HOST")
	cfg.DB.Port = v.GetString("DB_PORT")
	cfg.DB.User = v.GetString("DB_USER")
	cfg.DB.Password = v.GetString("DB_PASSWORD")
	cfg.DB.Name = v.GetString("DB_NAME")
	cfg.DB.DSN = v.GetString("DB_DSN")
	if cfg.DB.DSN == "" {
		cfg.DB.DSN = cfg.DB.BuildDSN()
	}

	// Redis
	cfg.Redis.Addr = v.GetString("REDIS_ADDR")
	cfg.Redis.Password = v.GetString("REDIS_PASSWORD")
	cfg.Redis.DB = v.GetInt("REDIS_DB")

	// gRPC
	cfg.GRPC.Host = v.GetString("GRPC_HOST")
	cfg.GRPC.Port = v.GetString("GRPC_PORT")
	cfg.GRPC.RequestTimeout = v.GetDuration("GRPC_REQUEST_TIMEOUT")

	// HTTP (media + health)
	cfg.HTTP.Host = v.GetString("HTTP_HOST")
	cfg.HTTP.Port = v.GetString("HTTP_PORT")

	// Auth
	cfg.Auth.JWTSecret = v.GetString("JWT_SECRET")
	cfg.Auth.TokenTTL = v.GetDuration("JWT_TTL")

	// Matching
	cfg.Matching.DiscoveryLimit = v.GetInt("DISCOVERY_LIMIT")
	cfg.Matching.DiscoveryMaxLimit = v.GetInt("DISCOVERY_MAX_LIMIT")
	cfg.Matching.PairLockTTL = v.GetDuration("PAIR_LOCK_TTL")
	cfg.Matching.PairLockWait = v.GetDuration("PAIR_LOCK_WAIT")
	cfg.Matching.LikeCountTTL = v.GetDuration("LIKE_COUNT_TTL")

	// Media
	cfg.Media.Dir = v.GetString("MEDIA_DIR")
	cfg.Media.BaseURL = strings.TrimRight(v.GetString("MEDIA_BASE_URL"), "/")

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_COMPONENT", "match_service")

	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASSWORD", "root")
	v.SetDefault("DB_NAME", "matching")

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("GRPC_HOST", "127.0.0.1")
	v.SetDefault("GRPC_PORT", "50051")
	v.SetDefault("GRPC_REQUEST_TIMEOUT", 5*time.Second)

	v.SetDefault("HTTP_HOST", "127.0.0.1")
	v.SetDefault("HTTP_PORT", "8080")

	v.SetDefault("JWT_SECRET", "development-only-secret-change-me-0123456789")
	v.SetDefault("JWT_TTL", 24*time.Hour)

	v.SetDefault("DISCOVERY_LIMIT", 10)
	v.SetDefault("DISCOVERY_MAX_LIMIT", 50)
	v.SetDefault("PAIR_LOCK_TTL", 5*time.Second)
	v.SetDefault("PAIR_LOCK_WAIT", 3*time.Second)
	v.SetDefault("LIKE_COUNT_TTL", time.Hour)

	v.SetDefault("MEDIA_DIR", "uploads")
	v.SetDefault("MEDIA_BASE_URL", "")
}

// Validate checks values that must not fall back to defaults outside development.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if c.Matching.DiscoveryLimit <= 0 {
		return fmt.Errorf("DISCOVERY_LIMIT must be positive")
	}
	if c.Matching.DiscoveryMaxLimit < c.Matching.DiscoveryLimit {
		return fmt.Errorf("DISCOVERY_MAX_LIMIT must be >= DISCOVERY_LIMIT")
	}
	if c.Matching.PairLockTTL <= 0 || c.Matching.PairLockWait <= 0 {
		return fmt.Errorf("pair lock TTL and wait must be positive")
	}
	if c.IsDevelopment() {
		return nil
	}
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.ENV == "development"
}

// BuildDSN assembles a driver specific connection string from the discrete fields.
func (c *DBConfig) BuildDSN() string {
	switch c.Driver {
	case "postgres":
		return fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			c.Host, c.Port, c.User, c.Password, c.Name,
		)
	case "sqlite":
		return fmt.Sprintf("file:%s.db?_foreign_keys=on", c.Name)
	default:
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
			c.User, c.Password, c.Host, c.Port, c.Name,
		)
	}
}

// Addr returns host:port for the gRPC listener.
func (c GRPCConfig) Addr() string { return c.Host + ":" + c.Port }

// Addr returns host:port for the HTTP listener.
func (c HTTPConfig) Addr() string { return c.Host + ":" + c.Port }

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
