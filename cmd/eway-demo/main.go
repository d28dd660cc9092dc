package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kevin07696/eway-gateway/internal/adapters/eway"
	"github.com/kevin07696/eway-gateway/internal/adapters/ports"
	"github.com/kevin07696/eway-gateway/internal/adapters/secrets"
	"github.com/kevin07696/eway-gateway/internal/config"
)

// eway-demo submits one sandbox card payment and prints the outcome. It is
// a smoke test for credentials and connectivity, not a production entry
// point.
func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := initLogger(cfg.Logger)
	defer logger.Sync()

	logger.Info("Starting eWAY gateway demo",
		zap.String("mode", string(cfg.Gateway.Mode)),
		zap.String("credentials_source", cfg.Credentials.Source),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	creds, err := initCredentialSource(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize credential source", zap.Error(err))
	}

	// Metrics endpoint for scraping during longer soak runs.
	if addr := os.Getenv("METRICS_ADDR"); addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			if err := http.ListenAndServe(addr, mux); err != nil {
				logger.Warn("Metrics server stopped", zap.Error(err))
			}
		}()
	}

	provider := config.NewProvider(cfg.Gateway, creds)
	client := eway.NewHTTPClient(cfg.Gateway.Timeout, cfg.Gateway.AllowInsecureTLS)
	gateway := eway.NewHostedPaymentsAdapter(provider, client, logger)

	// eWAY sandbox test card; approves when the amount's cents are 00.
	fields := map[string]string{
		"ewayTotalAmount":       "1000",
		"ewayCardHoldersName":   "Test Cardholder",
		"ewayCardNumber":        "4444333322221111",
		"ewayCardExpiryMonth":   "12",
		"ewayCardExpiryYear":    "30",
		"ewayCVN":               "123",
		"ewayCustomerFirstName": "Test",
		"ewayCustomerLastName":  "Cardholder",
		"ewayCustomerEmail":     "test@example.com",
	}
	fields["ewayCustomerInvoiceRef"] = uuid.NewString()

	result := gateway.Charge(ctx, fields)

	logger.Info("Charge completed",
		zap.String("status", string(result.Status)),
		zap.String("response_code", result.ResponseCode),
		zap.String("response_message", result.ResponseMessage),
		zap.String("transaction_id", result.TransactionID()),
		zap.String("bank_authorisation_id", result.BankAuthorisationID()),
	)

	if !result.Successful() {
		os.Exit(1)
	}
}

func initLogger(cfg config.LoggerConfig) *zap.Logger {
	if cfg.Development {
		logger, _ := zap.NewDevelopment()
		return logger
	}

	zapCfg := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	logger, _ := zapCfg.Build()
	return logger
}

func initCredentialSource(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ports.CredentialSource, error) {
	switch cfg.Credentials.Source {
	case "env":
		return secrets.NewEnvCredentialSource(), nil

	case "vault":
		vaultCfg := secrets.DefaultVaultConfig(cfg.Credentials.VaultAddress)
		vaultCfg.Token = cfg.Credentials.VaultToken
		vaultCfg.SecretPath = cfg.Credentials.VaultPath
		return secrets.NewVaultCredentialSource(ctx, vaultCfg, logger)

	case "aws":
		awsCfg := secrets.DefaultAWSConfig(cfg.Credentials.AWSRegion, cfg.Credentials.AWSSecretName)
		return secrets.NewAWSCredentialSource(ctx, awsCfg, logger)

	default:
		return nil, fmt.Errorf("unsupported credentials source: %s", cfg.Credentials.Source)
	}
}
