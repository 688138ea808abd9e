package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

const (
	EnvProduction = "production"

	LimiterMemory = "memory"
	LimiterRedis  = "redis"

	ScopeVoter  = "voter"
	ScopeGlobal = "global"

	minProductionSecretLength = 32
)

type Config struct {
	AppEnv        string        `env:"APP_ENV" default:"development"`
	Port          string        `env:"PORT" default:"8080"`
	AppURL        string        `env:"APP_URL" default:"http://localhost:8080"`
	LogLevel      string        `env:"LOG_LEVEL" default:"info"`
	LogFormat     string        `env:"LOG_FORMAT" default:"text"`
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionMaxAge time.Duration `env:"SESSION_MAX_AGE" default:"720h"` // 30 days

	VoteCooldown   time.Duration `env:"VOTE_COOLDOWN" default:"1s"`
	VoteLimitScope string        `env:"VOTE_LIMIT_SCOPE" default:"voter"`
	VoteLimiter    string        `env:"VOTE_LIMITER" default:"memory"`
	RedisURL       string        `env:"REDIS_URL"`

	TrendInterval time.Duration `env:"TREND_INTERVAL" default:"30s"`
	CloudMinSize  float64       `env:"CLOUD_MIN_SIZE" default:"24"`
	CloudMaxSize  float64       `env:"CLOUD_MAX_SIZE" default:"72"`
	SeedNames     string        `env:"SEED_NAMES" default:"Estella:12,Senturia:10,Sen:8,Astra:6,Mimi:4,Echo:2,Nexus:1"`

	ProfanityWords string `env:"PROFANITY_WORDS"`
	ProfanityFile  string `env:"PROFANITY_FILE"`

	DiscordWebhookURL string `env:"DISCORD_WEBHOOK_URL"`
	VotingDeadline    string `env:"VOTING_DEADLINE"` // RFC 3339, empty means no deadline

	APIRateLimit float64 `env:"API_RATE_LIMIT" default:"10"`
	APIRateBurst int     `env:"API_RATE_BURST" default:"20"`

	WSMaxConnections int     `env:"WS_MAX_CONNECTIONS" default:"10000"`
	WSMaxPerIP       int     `env:"WS_MAX_PER_IP" default:"10"`
	WSConnectRate    float64 `env:"WS_CONNECT_RATE" default:"2"`
	WSConnectBurst   int     `env:"WS_CONNECT_BURST" default:"10"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

// Deadline returns the parsed voting deadline, or the zero time when unset.
func (c *Config) Deadline() time.Time {
	t, _ := parseDeadline(c.VotingDeadline)
	return t
}

func parseDeadline(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func validate(cfg *Config) error {
	if cfg.SessionSecret == "" {
		return errors.New("SESSION_SECRET is required")
	}
	if cfg.IsProduction() && len(cfg.SessionSecret) < minProductionSecretLength {
		return fmt.Errorf("SESSION_SECRET must be at least %d characters in production", minProductionSecretLength)
	}

	if cfg.VoteCooldown <= 0 {
		return errors.New("VOTE_COOLDOWN must be positive")
	}

	switch cfg.VoteLimitScope {
	case ScopeVoter, ScopeGlobal:
	default:
		return fmt.Errorf("VOTE_LIMIT_SCOPE must be %q or %q, got %q", ScopeVoter, ScopeGlobal, cfg.VoteLimitScope)
	}

	switch cfg.VoteLimiter {
	case LimiterMemory:
	case LimiterRedis:
		if cfg.RedisURL == "" {
			return errors.New("REDIS_URL is required when VOTE_LIMITER=redis")
		}
	default:
		return fmt.Errorf("VOTE_LIMITER must be %q or %q, got %q", LimiterMemory, LimiterRedis, cfg.VoteLimiter)
	}

	if cfg.TrendInterval < 0 {
		return errors.New("TREND_INTERVAL must not be negative")
	}

	if cfg.CloudMinSize <= 0 || cfg.CloudMaxSize < cfg.CloudMinSize {
		return fmt.Errorf("cloud sizes must satisfy 0 < CLOUD_MIN_SIZE <= CLOUD_MAX_SIZE, got %g and %g", cfg.CloudMinSize, cfg.CloudMaxSize)
	}

	if _, err := parseDeadline(cfg.VotingDeadline); err != nil {
		return fmt.Errorf("VOTING_DEADLINE must be RFC 3339: %w", err)
	}

	if cfg.DiscordWebhookURL != "" {
		u, err := url.Parse(cfg.DiscordWebhookURL)
		if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
			return errors.New("DISCORD_WEBHOOK_URL must be an absolute http(s) URL")
		}
	}

	if cfg.APIRateLimit <= 0 || cfg.APIRateBurst < 1 {
		return errors.New("API_RATE_LIMIT must be positive and API_RATE_BURST at least 1")
	}

	if cfg.WSMaxConnections < 1 || cfg.WSMaxPerIP < 1 || cfg.WSMaxPerIP > cfg.WSMaxConnections {
		return errors.New("websocket limits must satisfy 1 <= WS_MAX_PER_IP <= WS_MAX_CONNECTIONS")
	}
	if cfg.WSConnectRate <= 0 || cfg.WSConnectBurst < 1 {
		return errors.New("WS_CONNECT_RATE must be positive and WS_CONNECT_BURST at least 1")
	}

	return nil
}
