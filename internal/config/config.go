package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	Port                   string
	AllowedOrigin          string
	Backend                string
	DataDir                string
	DatabaseURL            string
	RedisAddr              string
	RedisPassword          string
	RedisDB                int
	MetricsCacheTTLSeconds int
	AuthSecret             string
	OperatorUsername       string
	OperatorPassword       string
	AccessTokenTTLMinutes  int
}

// fileConfig mirrors dropos.toml.
type fileConfig struct {
	Server struct {
		Port          string `toml:"port"`
		AllowedOrigin string `toml:"allowed_origin"`
	} `toml:"server"`
	Storage struct {
		Backend     string `toml:"backend"`
		DataDir     string `toml:"data_dir"`
		DatabaseURL string `toml:"database_url"`
	} `toml:"storage"`
	Redis struct {
		Addr     string `toml:"addr"`
		Password string `toml:"password"`
		DB       int    `toml:"db"`
	} `toml:"redis"`
	Cache struct {
		MetricsTTLSeconds int `toml:"metrics_ttl_seconds"`
	} `toml:"cache"`
	Auth struct {
		Secret                string `toml:"secret"`
		OperatorUsername      string `toml:"operator_username"`
		OperatorPassword      string `toml:"operator_password"`
		AccessTokenTTLMinutes int    `toml:"access_token_ttl_minutes"`
	} `toml:"auth"`
}

func Default() Config {
	return Config{
		Port:                   "8080",
		AllowedOrigin:          "http://127.0.0.1:3000",
		Backend:                BackendSQLite,
		DataDir:                "./data",
		MetricsCacheTTLSeconds: 30,
		OperatorUsername:       "operator",
		AccessTokenTTLMinutes:  480,
	}
}

// Load layers defaults, the optional TOML file at path and the environment.
// A .env file in the working directory is loaded first without overriding
// variables that are already set.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	backendSet := false
	if path != "" {
		var fc fileConfig
		if _, err := toml.DecodeFile(path, &fc); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		backendSet = fc.Storage.Backend != ""
		cfg.apply(fc)
	}

	cfg.Port = getEnv("DROPOS_PORT", cfg.Port)
	cfg.AllowedOrigin = getEnv("ALLOWED_ORIGIN", cfg.AllowedOrigin)
	if v := os.Getenv("DROPOS_BACKEND"); v != "" {
		cfg.Backend = v
		backendSet = true
	}
	cfg.DataDir = getEnv("DROPOS_DATA_DIR", cfg.DataDir)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.RedisDB = getEnvInt("REDIS_DB", cfg.RedisDB, 0)
	cfg.MetricsCacheTTLSeconds = getEnvInt("METRICS_CACHE_TTL_SECONDS", cfg.MetricsCacheTTLSeconds, 1)
	cfg.AuthSecret = strings.TrimSpace(getEnv("AUTH_SECRET", cfg.AuthSecret))
	cfg.OperatorUsername = strings.TrimSpace(getEnv("OPERATOR_USERNAME", cfg.OperatorUsername))
	cfg.OperatorPassword = getEnv("OPERATOR_PASSWORD", cfg.OperatorPassword)
	cfg.AccessTokenTTLMinutes = getEnvInt("ACCESS_TOKEN_TTL_MINUTES", cfg.AccessTokenTTLMinutes, 1)

	if !backendSet && cfg.DatabaseURL != "" {
		cfg.Backend = BackendPostgres
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	switch cfg.Backend {
	case BackendMemory, BackendFile, BackendSQLite, BackendPostgres:
	default:
		return Config{}, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
	if cfg.Backend == BackendPostgres && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("postgres backend requires DATABASE_URL")
	}
	return cfg, nil
}

func (c *Config) apply(fc fileConfig) {
	setString(&c.Port, fc.Server.Port)
	setString(&c.AllowedOrigin, fc.Server.AllowedOrigin)
	setString(&c.Backend, fc.Storage.Backend)
	setString(&c.DataDir, fc.Storage.DataDir)
	setString(&c.DatabaseURL, fc.Storage.DatabaseURL)
	setString(&c.RedisAddr, fc.Redis.Addr)
	setString(&c.RedisPassword, fc.Redis.Password)
	if fc.Redis.DB > 0 {
		c.RedisDB = fc.Redis.DB
	}
	if fc.Cache.MetricsTTLSeconds > 0 {
		c.MetricsCacheTTLSeconds = fc.Cache.MetricsTTLSeconds
	}
	setString(&c.AuthSecret, fc.Auth.Secret)
	setString(&c.OperatorUsername, fc.Auth.OperatorUsername)
	setString(&c.OperatorPassword, fc.Auth.OperatorPassword)
	if fc.Auth.AccessTokenTTLMinutes > 0 {
		c.AccessTokenTTLMinutes = fc.Auth.AccessTokenTTLMinutes
	}
}

func (c Config) Address() string {
	return fmt.Sprintf(":%s", c.Port)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func getEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

// getEnvInt keeps fallback when the variable is unset, malformed or below min.
func getEnvInt(key string, fallback int, min int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < min {
		return fallback
	}
	return n
}
