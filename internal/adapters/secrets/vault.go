package secrets

import (
	"context"
	"fmt"
	"time"

	vault "github.com/hashicorp/vault/api"
	"go.uber.org/zap"

	"github.com/kevin07696/eway-gateway/internal/adapters/ports"
)

// VaultConfig contains configuration for the HashiCorp Vault credential
// source.
type VaultConfig struct {
	// Vault server address (e.g., "https://vault.example.com:8200")
	Address string

	// Authentication method: "token" or "approle"
	AuthMethod string

	// Token for token authentication
	Token string

	// AppRole credentials (if using AppRole auth)
	RoleID   string
	SecretID string

	// Vault namespace (Vault Enterprise)
	Namespace string

	// KV secrets engine mount path (default: "secret")
	MountPath string

	// Path of the credential secret under the mount
	// (default: "eway/merchant")
	SecretPath string

	// KV version: "v1" or "v2" (default: "v2")
	KVVersion string

	// Cache TTL
	CacheTTL time.Duration

	// Enable caching
	EnableCache bool
}

// DefaultVaultConfig returns default configuration for the Vault source.
func DefaultVaultConfig(address string) *VaultConfig {
	return &VaultConfig{
		Address:     address,
		AuthMethod:  "token",
		MountPath:   "secret",
		SecretPath:  "eway/merchant",
		KVVersion:   "v2",
		CacheTTL:    5 * time.Minute,
		EnableCache: true,
	}
}

// vaultCredentialSource resolves the merchant triple from a Vault KV
// secret with the keys customer_id, merchant_id and merchant_password.
type vaultCredentialSource struct {
	client *vault.Client
	config *VaultConfig
	logger *zap.Logger
	cache  *credentialCache
}

// NewVaultCredentialSource creates a Vault-backed credential source.
func NewVaultCredentialSource(ctx context.Context, cfg *VaultConfig, logger *zap.Logger) (ports.CredentialSource, error) {
	vaultConfig := vault.DefaultConfig()
	vaultConfig.Address = cfg.Address

	client, err := vault.NewClient(vaultConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vault client: %w", err)
	}

	if cfg.Namespace != "" {
		client.SetNamespace(cfg.Namespace)
	}

	if err := authenticate(client, cfg); err != nil {
		return nil, fmt.Errorf("failed to authenticate with Vault: %w", err)
	}

	logger.Info("Vault credential source initialized",
		zap.String("address", cfg.Address),
		zap.String("auth_method", cfg.AuthMethod),
		zap.String("mount_path", cfg.MountPath),
		zap.String("secret_path", cfg.SecretPath),
	)

	return &vaultCredentialSource{
		client: client,
		config: cfg,
		logger: logger,
		cache: &credentialCache{
			enabled: cfg.EnableCache,
			ttl:     cfg.CacheTTL,
		},
	}, nil
}

func authenticate(client *vault.Client, cfg *VaultConfig) error {
	switch cfg.AuthMethod {
	case "token":
		if cfg.Token == "" {
			return fmt.Errorf("token is required for token auth")
		}
		client.SetToken(cfg.Token)
		return nil

	case "approle":
		if cfg.RoleID == "" || cfg.SecretID == "" {
			return fmt.Errorf("role_id and secret_id are required for AppRole auth")
		}
		data := map[string]interface{}{
			"role_id":   cfg.RoleID,
			"secret_id": cfg.SecretID,
		}
		resp, err := client.Logical().Write("auth/approle/login", data)
		if err != nil {
			return fmt.Errorf("AppRole login failed: %w", err)
		}
		if resp.Auth == nil {
			return fmt.Errorf("AppRole login returned no auth info")
		}
		client.SetToken(resp.Auth.ClientToken)
		return nil

	default:
		return fmt.Errorf("unsupported auth method: %s", cfg.AuthMethod)
	}
}

// Credentials reads the merchant triple, consulting the cache first.
func (s *vaultCredentialSource) Credentials(ctx context.Context) (ports.Credentials, error) {
	if creds, ok := s.cache.get(); ok {
		s.logger.Debug("merchant credentials served from cache")
		return creds, nil
	}

	var fullPath string
	if s.config.KVVersion == "v2" {
		fullPath = fmt.Sprintf("%s/data/%s", s.config.MountPath, s.config.SecretPath)
	} else {
		fullPath = fmt.Sprintf("%s/%s", s.config.MountPath, s.config.SecretPath)
	}

	startTime := time.Now()
	secret, err := s.client.Logical().ReadWithContext(ctx, fullPath)
	if err != nil {
		s.logger.Error("failed to read merchant credentials from Vault",
			zap.String("path", fullPath),
			zap.Error(err),
		)
		return ports.Credentials{}, fmt.Errorf("failed to read credentials from Vault: %w", err)
	}
	if secret == nil {
		return ports.Credentials{}, fmt.Errorf("credential secret not found: %s", s.config.SecretPath)
	}

	data := secret.Data
	if s.config.KVVersion == "v2" {
		inner, ok := secret.Data["data"].(map[string]interface{})
		if !ok {
			return ports.Credentials{}, fmt.Errorf("invalid secret format from Vault")
		}
		data = inner
	}

	creds := ports.Credentials{
		CustomerID:       stringField(data, "customer_id"),
		MerchantID:       stringField(data, "merchant_id"),
		MerchantPassword: stringField(data, "merchant_password"),
	}
	if creds.CustomerID == "" {
		return ports.Credentials{}, fmt.Errorf("credential secret %s has no customer_id", s.config.SecretPath)
	}

	s.logger.Info("merchant credentials retrieved from Vault",
		zap.String("path", fullPath),
		zap.Duration("elapsed", time.Since(startTime)),
	)

	s.cache.set(creds)
	return creds, nil
}

func stringField(data map[string]interface{}, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}
