package ports

import "context"

// Credentials is the merchant identity triple eWAY issues per account.
// CustomerID goes into flat-XML request bodies; the managed-payment and
// rebill SOAP services additionally authenticate with the business centre
// login (MerchantID) and password in the SOAP header.
type Credentials struct {
	CustomerID       string
	MerchantID       string
	MerchantPassword string
}

// CredentialSource retrieves merchant credentials from wherever they are
// kept (environment, Vault, AWS Secrets Manager). Implementations are
// responsible for their own caching; callers invoke this on every gateway
// operation so rotated credentials take effect without a restart.
type CredentialSource interface {
	Credentials(ctx context.Context) (Credentials, error)
}
