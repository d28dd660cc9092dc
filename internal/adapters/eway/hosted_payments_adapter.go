package eway

import (
	"context"

	"go.uber.org/zap"

	aports "github.com/kevin07696/eway-gateway/internal/adapters/ports"
	"github.com/kevin07696/eway-gateway/internal/domain/models"
	"github.com/kevin07696/eway-gateway/internal/domain/ports"
)

// HostedPaymentsAdapter drives the flat-XML card payment endpoints: the
// Merchant Hosted Payments CVN service and its refund counterpart.
type HostedPaymentsAdapter struct {
	settings  SettingsSource
	transport *transport
	logger    *zap.Logger
}

var _ ports.CreditCardGateway = (*HostedPaymentsAdapter)(nil)

func NewHostedPaymentsAdapter(settings SettingsSource, client aports.HTTPClient, logger *zap.Logger) *HostedPaymentsAdapter {
	return &HostedPaymentsAdapter{
		settings:  settings,
		transport: newTransport(client, logger),
		logger:    logger,
	}
}

// Charge submits a one-shot card payment. The merchant customer id always
// comes from configuration; a caller-supplied ewayCustomerID is discarded.
func (a *HostedPaymentsAdapter) Charge(ctx context.Context, fields map[string]string) *models.Result {
	settings, err := a.settings.Settings(ctx)
	if err != nil {
		return settingsErrorResult(err)
	}

	overrides := map[string]string{
		"ewayCustomerID": flatCustomerID(settings),
	}
	wire, missing := hostedPaymentSchema.Apply(fields, overrides)
	if len(missing) > 0 {
		return missingFieldsResult(missing)
	}

	env := Envelope{Operation: hostedPaymentSchema.Operation, Fields: wire}
	raw, failure := a.transport.post(ctx, familyFlat, hostedPaymentsURL(settings.Mode), env, settings)
	if failure != nil {
		return failure
	}

	result := parseFlatResponse(raw)
	result.RequestEcho = env.FlatXML()
	return result
}
