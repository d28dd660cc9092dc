package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/kevin07696/eway-gateway/internal/adapters/ports"
)

// Mode selects between the eWAY sandbox and production endpoints.
type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
)

// Config holds all application configuration
type Config struct {
	Gateway     GatewayConfig
	Logger      LoggerConfig
	Credentials CredentialsConfig
}

// GatewayConfig holds eWAY gateway configuration
type GatewayConfig struct {
	Mode             Mode
	Timeout          time.Duration
	AllowInsecureTLS bool // opt-out of TLS peer verification; test endpoints only
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // debug, info, warn, error
	Development bool
}

// CredentialsConfig selects where merchant credentials come from.
type CredentialsConfig struct {
	Source string // env, vault, aws

	// Vault settings (Source == "vault")
	VaultAddress string
	VaultToken   string
	VaultPath    string

	// AWS Secrets Manager settings (Source == "aws")
	AWSSecretName string
	AWSRegion     string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Gateway: GatewayConfig{
			Mode:             Mode(getEnv("EWAY_MODE", string(ModeDevelopment))),
			Timeout:          time.Duration(getEnvAsInt("EWAY_TIMEOUT", 60)) * time.Second,
			AllowInsecureTLS: getEnvAsBool("EWAY_ALLOW_INSECURE_TLS", false),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
		},
		Credentials: CredentialsConfig{
			Source:        getEnv("CREDENTIALS_SOURCE", "env"),
			VaultAddress:  getEnv("VAULT_ADDR", ""),
			VaultToken:    getEnv("VAULT_TOKEN", ""),
			VaultPath:     getEnv("EWAY_VAULT_PATH", "eway/merchant"),
			AWSSecretName: getEnv("EWAY_AWS_SECRET_NAME", "eway/merchant"),
			AWSRegion:     getEnv("AWS_REGION", ""),
		},
	}

	switch cfg.Gateway.Mode {
	case ModeDevelopment, ModeProduction:
	default:
		return nil, fmt.Errorf("EWAY_MODE must be %q or %q, got %q", ModeDevelopment, ModeProduction, cfg.Gateway.Mode)
	}

	return cfg, nil
}

// GatewaySettings is the per-call view of the gateway configuration:
// mode, resolved credentials, and transport policy.
type GatewaySettings struct {
	Mode             Mode
	Credentials      ports.Credentials
	Timeout          time.Duration
	AllowInsecureTLS bool
}

// Provider resolves GatewaySettings at call time. The mode is re-read from
// the environment on every call so a deployment can flip between sandbox
// and production without restarting; credentials come from the configured
// CredentialSource, which owns its own caching.
type Provider struct {
	creds            ports.CredentialSource
	timeout          time.Duration
	allowInsecureTLS bool
}

// NewProvider creates a settings provider backed by the given credential
// source and the static transport policy from cfg.
func NewProvider(cfg GatewayConfig, creds ports.CredentialSource) *Provider {
	return &Provider{
		creds:            creds,
		timeout:          cfg.Timeout,
		allowInsecureTLS: cfg.AllowInsecureTLS,
	}
}

// Settings resolves the current gateway settings.
func (p *Provider) Settings(ctx context.Context) (GatewaySettings, error) {
	creds, err := p.creds.Credentials(ctx)
	if err != nil {
		return GatewaySettings{}, fmt.Errorf("failed to resolve merchant credentials: %w", err)
	}

	return GatewaySettings{
		Mode:             Mode(getEnv("EWAY_MODE", string(ModeDevelopment))),
		Credentials:      creds,
		Timeout:          p.timeout,
		AllowInsecureTLS: p.allowInsecureTLS,
	}, nil
}

// Helper functions for environment variables

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
