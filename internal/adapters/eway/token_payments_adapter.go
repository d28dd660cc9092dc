package eway

import (
	"context"

	"go.uber.org/zap"

	aports "github.com/kevin07696/eway-gateway/internal/adapters/ports"
	"github.com/kevin07696/eway-gateway/internal/domain/models"
	"github.com/kevin07696/eway-gateway/internal/domain/ports"
)

// TokenPaymentsAdapter drives the managed customer SOAP service: card
// details are stored gateway-side once and later charged by token, so the
// caller never holds card data beyond the initial create.
type TokenPaymentsAdapter struct {
	settings  SettingsSource
	transport *transport
	logger    *zap.Logger
}

var _ ports.ManagedCustomerGateway = (*TokenPaymentsAdapter)(nil)

func NewTokenPaymentsAdapter(settings SettingsSource, client aports.HTTPClient, logger *zap.Logger) *TokenPaymentsAdapter {
	return &TokenPaymentsAdapter{
		settings:  settings,
		transport: newTransport(client, logger),
		logger:    logger,
	}
}

func (a *TokenPaymentsAdapter) call(ctx context.Context, schema Schema, fields map[string]string) ([]byte, string, *models.Result) {
	settings, err := a.settings.Settings(ctx)
	if err != nil {
		return nil, "", settingsErrorResult(err)
	}
	settings = managedSettings(settings)

	wire, missing := schema.Apply(fields, nil)
	if len(missing) > 0 {
		return nil, "", missingFieldsResult(missing)
	}

	env := Envelope{
		Operation: schema.Operation,
		Namespace: managedPaymentsNamespace,
		Fields:    wire,
	}
	raw, failure := a.transport.post(ctx, familySOAP, managedPaymentsURL(settings.Mode), env, settings)
	if failure != nil {
		return nil, "", failure
	}
	return raw, env.SOAP(soapHeader{}), nil
}

// CreateCustomer stores a customer and their card with the gateway and
// returns the managed customer id to charge by.
func (a *TokenPaymentsAdapter) CreateCustomer(ctx context.Context, fields map[string]string) *models.Result {
	raw, echo, failure := a.call(ctx, createCustomerSchema, fields)
	if failure != nil {
		return failure
	}

	leaves, err := soapLeaves(raw)
	if err != nil {
		return unparsableSOAPResult(raw, err)
	}
	if id := leaves["CreateCustomerResult"]; id != "" {
		return &models.Result{
			Status:      models.StatusSuccess,
			Payload:     map[string]string{models.PayloadManagedCustomerID: id},
			Raw:         raw,
			RequestEcho: echo,
		}
	}

	result := parseManagedPaymentResponse(raw)
	result.RequestEcho = echo
	return result
}

// UpdateCustomer replaces a stored customer's details. The service takes
// the full field set, so unchanged fields must be resubmitted.
func (a *TokenPaymentsAdapter) UpdateCustomer(ctx context.Context, fields map[string]string) *models.Result {
	raw, echo, failure := a.call(ctx, updateCustomerSchema, fields)
	if failure != nil {
		return failure
	}

	leaves, err := soapLeaves(raw)
	if err != nil {
		return unparsableSOAPResult(raw, err)
	}
	switch leaves["UpdateCustomerResult"] {
	case "true":
		return &models.Result{
			Status:      models.StatusSuccess,
			Payload:     map[string]string{models.PayloadManagedCustomerID: fields["managedCustomerID"]},
			Raw:         raw,
			RequestEcho: echo,
		}
	case "false":
		return &models.Result{
			Status:          models.StatusFail,
			ResponseMessage: "eWay could not update the customer.",
			Raw:             raw,
			RequestEcho:     echo,
		}
	}

	result := parseManagedPaymentResponse(raw)
	result.RequestEcho = echo
	return result
}

// QueryCustomer fetches a stored customer's details. The card number comes
// back masked.
func (a *TokenPaymentsAdapter) QueryCustomer(ctx context.Context, managedCustomerID string) *models.Result {
	if managedCustomerID == "" {
		return missingParametersResult([]string{"managedCustomerID"})
	}

	raw, echo, failure := a.call(ctx, queryCustomerSchema, map[string]string{
		"managedCustomerID": managedCustomerID,
	})
	if failure != nil {
		return failure
	}

	leaves, err := soapLeaves(raw)
	if err != nil {
		return unparsableSOAPResult(raw, err)
	}
	if leaves["faultstring"] != "" {
		result := parseManagedPaymentResponse(raw)
		result.RequestEcho = echo
		return result
	}

	payload := make(map[string]string, len(leaves)+1)
	for k, v := range leaves {
		payload[k] = v
	}
	payload[models.PayloadManagedCustomerID] = managedCustomerID

	return &models.Result{
		Status:      models.StatusSuccess,
		Payload:     payload,
		Raw:         raw,
		RequestEcho: echo,
	}
}

// ProcessPayment charges a stored customer by token.
func (a *TokenPaymentsAdapter) ProcessPayment(ctx context.Context, fields map[string]string) *models.Result {
	return a.processPayment(ctx, processPaymentSchema, fields)
}

// ProcessPaymentWithCVN charges a stored customer by token with the card
// verification number collected for this transaction.
func (a *TokenPaymentsAdapter) ProcessPaymentWithCVN(ctx context.Context, fields map[string]string) *models.Result {
	return a.processPayment(ctx, processPaymentWithCVNSchema, fields)
}

func (a *TokenPaymentsAdapter) processPayment(ctx context.Context, schema Schema, fields map[string]string) *models.Result {
	raw, echo, failure := a.call(ctx, schema, fields)
	if failure != nil {
		return failure
	}

	result := parseManagedPaymentResponse(raw)
	if result.Payload != nil && fields["managedCustomerID"] != "" {
		result.Payload[models.PayloadManagedCustomerID] = fields["managedCustomerID"]
	}
	result.RequestEcho = echo
	return result
}
