package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port            int    `yaml:"port"`
	CORSAllowOrigin string `yaml:"cors_allow_origin"` // "*" on write endpoints by default
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"` // optional archive store; empty disables it
}

type CampaignConfig struct {
	Capacity        int `yaml:"capacity"`
	RateLimitPerMin int `yaml:"rate_limit_per_min"`
}

type StripeConfig struct {
	SecretKey     string `yaml:"secret_key"`
	WebhookSecret string `yaml:"webhook_secret"` // empty skips signature checks (dev only)
	Amount        int64  `yaml:"amount"`
	Currency      string `yaml:"currency"`
}

type PaymentConfig struct {
	Stripe StripeConfig `yaml:"stripe"`
}

type AIConfig struct {
	OpenAIKey       string `yaml:"openai_key"`
	GeminiKey       string `yaml:"gemini_key"`
	GeminiURL       string `yaml:"gemini_url"`
	TextModel       string `yaml:"text_model"`
	ImageModel      string `yaml:"image_model"`
	MaxPromptTokens int    `yaml:"max_prompt_tokens"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

type NotifyConfig struct {
	TelegramToken string `yaml:"telegram_token"`
	ChatID        int64  `yaml:"chat_id"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Redis    RedisConfig    `yaml:"redis"`
	Database DatabaseConfig `yaml:"database"`
	Campaign CampaignConfig `yaml:"campaign"`
	Payment  PaymentConfig  `yaml:"payment"`
	AI       AIConfig       `yaml:"ai"`
	Auth     AuthConfig     `yaml:"auth"`
	Notify   NotifyConfig   `yaml:"notify"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	// secrets may be given as ${ENV_VAR} references
	expanded := os.ExpandEnv(string(b))
	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// defaults
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.CORSAllowOrigin == "" {
		cfg.Server.CORSAllowOrigin = "*"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Campaign.Capacity <= 0 {
		cfg.Campaign.Capacity = 100
	}
	if cfg.Campaign.RateLimitPerMin <= 0 {
		cfg.Campaign.RateLimitPerMin = 10
	}
	if cfg.Payment.Stripe.Amount <= 0 {
		cfg.Payment.Stripe.Amount = 500
	}
	if cfg.Payment.Stripe.Currency == "" {
		cfg.Payment.Stripe.Currency = "jpy"
	}
	if cfg.AI.TextModel == "" {
		cfg.AI.TextModel = "gpt-4o-mini"
	}
	if cfg.AI.ImageModel == "" {
		cfg.AI.ImageModel = "dall-e-3"
	}
	if cfg.AI.MaxPromptTokens <= 0 {
		cfg.AI.MaxPromptTokens = 2048
	}
	if cfg.Auth.TokenTTL <= 0 {
		cfg.Auth.TokenTTL = 24 * time.Hour
	}

	// Minimal validation
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}
	if cfg.Payment.Stripe.SecretKey == "" && !dev {
		return nil, errors.New("payment.stripe.secret_key is required outside dev mode")
	}
	if cfg.Auth.JWTSecret == "" {
		if !dev {
			return nil, errors.New("auth.jwt_secret is required outside dev mode")
		}
		cfg.Auth.JWTSecret = "dev-only-insecure-secret"
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
