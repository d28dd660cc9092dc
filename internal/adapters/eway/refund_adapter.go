package eway

import (
	"context"

	"github.com/kevin07696/eway-gateway/internal/domain/models"
)

// Refund reverses a previous transaction, in whole or in part. The refund
// password is configured per merchant in the eWAY business centre and is
// injected server-side; like the customer id it cannot be supplied through
// fields. The refund service has a single production endpoint regardless of
// mode.
func (a *HostedPaymentsAdapter) Refund(ctx context.Context, refundPassword string, fields map[string]string) *models.Result {
	settings, err := a.settings.Settings(ctx)
	if err != nil {
		return settingsErrorResult(err)
	}

	overrides := map[string]string{
		"ewayCustomerID":     flatCustomerID(settings),
		"ewayRefundPassword": refundPassword,
	}
	wire, missing := refundSchema.Apply(fields, overrides)
	if len(missing) > 0 {
		return missingFieldsResult(missing)
	}

	env := Envelope{Operation: refundSchema.Operation, Fields: wire}
	raw, failure := a.transport.post(ctx, familyFlat, refundURL, env, settings)
	if failure != nil {
		return failure
	}

	result := parseFlatResponse(raw)
	if result.Successful() {
		if v := result.Payload[models.PayloadAmount]; v != "" {
			result.Payload[models.PayloadRefundAmount] = v
		}
	}
	result.RequestEcho = env.FlatXML()
	return result
}
