package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevin07696/eway-gateway/internal/adapters/ports"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadFromEnv()

	require.NoError(t, err)
	assert.Equal(t, ModeDevelopment, cfg.Gateway.Mode)
	assert.Equal(t, 60*time.Second, cfg.Gateway.Timeout)
	assert.False(t, cfg.Gateway.AllowInsecureTLS)
	assert.Equal(t, "env", cfg.Credentials.Source)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("EWAY_MODE", "production")
	t.Setenv("EWAY_TIMEOUT", "30")
	t.Setenv("EWAY_ALLOW_INSECURE_TLS", "true")

	cfg, err := LoadFromEnv()

	require.NoError(t, err)
	assert.Equal(t, ModeProduction, cfg.Gateway.Mode)
	assert.Equal(t, 30*time.Second, cfg.Gateway.Timeout)
	assert.True(t, cfg.Gateway.AllowInsecureTLS)
}

func TestLoadFromEnv_RejectsUnknownMode(t *testing.T) {
	t.Setenv("EWAY_MODE", "staging")

	_, err := LoadFromEnv()

	assert.Error(t, err)
}

type staticCreds struct {
	creds ports.Credentials
	err   error
}

func (s staticCreds) Credentials(ctx context.Context) (ports.Credentials, error) {
	return s.creds, s.err
}

func TestProvider_Settings_ReReadsModePerCall(t *testing.T) {
	provider := NewProvider(GatewayConfig{Timeout: 60 * time.Second}, staticCreds{
		creds: ports.Credentials{CustomerID: "11438715"},
	})

	t.Setenv("EWAY_MODE", "development")
	settings, err := provider.Settings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ModeDevelopment, settings.Mode)

	t.Setenv("EWAY_MODE", "production")
	settings, err = provider.Settings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ModeProduction, settings.Mode)
	assert.Equal(t, "11438715", settings.Credentials.CustomerID)
}

func TestProvider_Settings_CredentialFailure(t *testing.T) {
	provider := NewProvider(GatewayConfig{}, staticCreds{err: assert.AnError})

	_, err := provider.Settings(context.Background())

	assert.Error(t, err)
}
