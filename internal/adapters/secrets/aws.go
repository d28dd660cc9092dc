package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"go.uber.org/zap"

	"github.com/kevin07696/eway-gateway/internal/adapters/ports"
)

// AWSConfig contains configuration for the AWS Secrets Manager credential
// source.
type AWSConfig struct {
	// AWS Region (e.g., "ap-southeast-2")
	Region string

	// Optional: AWS profile name (for local development)
	Profile string

	// Optional: Custom endpoint (for LocalStack testing)
	Endpoint string

	// Secret id or ARN holding the merchant credential JSON
	SecretID string

	// Cache TTL for the resolved credentials (default: 5 minutes)
	CacheTTL time.Duration

	// Enable caching
	EnableCache bool
}

// DefaultAWSConfig returns default configuration for the AWS source.
func DefaultAWSConfig(region, secretID string) *AWSConfig {
	return &AWSConfig{
		Region:      region,
		SecretID:    secretID,
		CacheTTL:    5 * time.Minute,
		EnableCache: true,
	}
}

// awsCredentialSource resolves the merchant triple from a Secrets Manager
// secret whose SecretString is a JSON document:
//
//	{"customer_id": "...", "merchant_id": "...", "merchant_password": "..."}
type awsCredentialSource struct {
	client *secretsmanager.Client
	config *AWSConfig
	logger *zap.Logger
	cache  *credentialCache
}

// NewAWSCredentialSource creates a Secrets Manager backed credential
// source using the default AWS credential chain (or the configured
// profile).
func NewAWSCredentialSource(ctx context.Context, cfg *AWSConfig, logger *zap.Logger) (ports.CredentialSource, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.Profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	clientOptions := []func(*secretsmanager.Options){}
	if cfg.Endpoint != "" {
		clientOptions = append(clientOptions, func(o *secretsmanager.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	logger.Info("AWS Secrets Manager credential source initialized",
		zap.String("region", cfg.Region),
		zap.String("secret_id", cfg.SecretID),
		zap.Bool("cache_enabled", cfg.EnableCache),
	)

	return &awsCredentialSource{
		client: secretsmanager.NewFromConfig(awsCfg, clientOptions...),
		config: cfg,
		logger: logger,
		cache: &credentialCache{
			enabled: cfg.EnableCache,
			ttl:     cfg.CacheTTL,
		},
	}, nil
}

// Credentials reads the merchant triple, consulting the cache first.
func (s *awsCredentialSource) Credentials(ctx context.Context) (ports.Credentials, error) {
	if creds, ok := s.cache.get(); ok {
		s.logger.Debug("merchant credentials served from cache")
		return creds, nil
	}

	startTime := time.Now()
	result, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(s.config.SecretID),
	})
	if err != nil {
		s.logger.Error("failed to retrieve merchant credentials",
			zap.String("secret_id", s.config.SecretID),
			zap.Error(err),
		)
		return ports.Credentials{}, fmt.Errorf("failed to get secret %s: %w", s.config.SecretID, err)
	}

	var doc struct {
		CustomerID       string `json:"customer_id"`
		MerchantID       string `json:"merchant_id"`
		MerchantPassword string `json:"merchant_password"`
	}
	if err := json.Unmarshal([]byte(aws.ToString(result.SecretString)), &doc); err != nil {
		return ports.Credentials{}, fmt.Errorf("credential secret %s is not valid JSON: %w", s.config.SecretID, err)
	}

	creds := ports.Credentials{
		CustomerID:       doc.CustomerID,
		MerchantID:       doc.MerchantID,
		MerchantPassword: doc.MerchantPassword,
	}
	if creds.CustomerID == "" {
		return ports.Credentials{}, fmt.Errorf("credential secret %s has no customer_id", s.config.SecretID)
	}

	s.logger.Info("merchant credentials retrieved",
		zap.String("secret_id", s.config.SecretID),
		zap.Duration("elapsed", time.Since(startTime)),
	)

	s.cache.set(creds)
	return creds, nil
}
