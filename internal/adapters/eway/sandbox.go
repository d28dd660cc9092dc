package eway

import (
	aports "github.com/kevin07696/eway-gateway/internal/adapters/ports"
	"github.com/kevin07696/eway-gateway/internal/config"
)

// Development mode swaps the merchant's credentials for eWAY's published
// sandbox identities so no test traffic can carry real credentials.

func flatCustomerID(s config.GatewaySettings) string {
	if s.Mode == config.ModeDevelopment {
		return testCustomerID
	}
	return s.Credentials.CustomerID
}

func managedSettings(s config.GatewaySettings) config.GatewaySettings {
	if s.Mode == config.ModeDevelopment {
		s.Credentials = aports.Credentials{
			CustomerID:       testCustomerID,
			MerchantID:       testManagedLogin,
			MerchantPassword: testManagedPassword,
		}
	}
	return s
}

func rebillSettings(s config.GatewaySettings) config.GatewaySettings {
	if s.Mode == config.ModeDevelopment {
		s.Credentials.CustomerID = testCustomerID
	}
	return s
}
