package secrets

import (
	"context"
	"os"

	"github.com/kevin07696/eway-gateway/internal/adapters/ports"
	pkgerrors "github.com/kevin07696/eway-gateway/pkg/errors"
)

// envCredentialSource reads the merchant credentials from the process
// environment. Simplest possible source; suitable for development and for
// deployments that inject secrets through the environment already.
type envCredentialSource struct{}

// NewEnvCredentialSource creates a credential source backed by the
// EWAY_CUSTOMER_ID, EWAY_MERCHANT_ID and EWAY_MERCHANT_PASSWORD variables.
func NewEnvCredentialSource() ports.CredentialSource {
	return envCredentialSource{}
}

func (envCredentialSource) Credentials(ctx context.Context) (ports.Credentials, error) {
	creds := ports.Credentials{
		CustomerID:       os.Getenv("EWAY_CUSTOMER_ID"),
		MerchantID:       os.Getenv("EWAY_MERCHANT_ID"),
		MerchantPassword: os.Getenv("EWAY_MERCHANT_PASSWORD"),
	}
	if creds.CustomerID == "" {
		return ports.Credentials{}, &pkgerrors.GatewayError{
			Code:     "missing_credentials",
			Message:  "EWAY_CUSTOMER_ID is not set",
			Category: pkgerrors.CategoryCredentials,
		}
	}
	return creds, nil
}
