package eway

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	aports "github.com/kevin07696/eway-gateway/internal/adapters/ports"
	"github.com/kevin07696/eway-gateway/internal/domain/models"
	"github.com/kevin07696/eway-gateway/internal/domain/ports"
)

// RecurringPaymentsAdapter drives the rebill SOAP service: rebill customers
// and the scheduled charge plans (rebill events) attached to them.
type RecurringPaymentsAdapter struct {
	settings  SettingsSource
	transport *transport
	logger    *zap.Logger
}

var _ ports.RecurringPaymentsGateway = (*RecurringPaymentsAdapter)(nil)

func NewRecurringPaymentsAdapter(settings SettingsSource, client aports.HTTPClient, logger *zap.Logger) *RecurringPaymentsAdapter {
	return &RecurringPaymentsAdapter{
		settings:  settings,
		transport: newTransport(client, logger),
		logger:    logger,
	}
}

func (a *RecurringPaymentsAdapter) post(ctx context.Context, operation string, fields []Field) ([]byte, string, *models.Result) {
	settings, err := a.settings.Settings(ctx)
	if err != nil {
		return nil, "", settingsErrorResult(err)
	}
	settings = rebillSettings(settings)

	env := Envelope{Operation: operation, Namespace: rebillNamespace, Fields: fields}
	raw, failure := a.transport.post(ctx, familySOAP, rebillURL(settings.Mode), env, settings)
	if failure != nil {
		return nil, "", failure
	}
	return raw, env.SOAP(soapHeader{}), nil
}

func (a *RecurringPaymentsAdapter) call(ctx context.Context, schema Schema, fields map[string]string) *models.Result {
	wire, missing := schema.Apply(fields, nil)
	if len(missing) > 0 {
		return missingFieldsResult(missing)
	}

	raw, echo, failure := a.post(ctx, schema.Operation, wire)
	if failure != nil {
		return failure
	}

	result := parseRebillResponse(raw)
	result.RequestEcho = echo
	return result
}

// CreateRebillCustomer registers a customer with the rebill service and
// returns their rebill customer id.
func (a *RecurringPaymentsAdapter) CreateRebillCustomer(ctx context.Context, fields map[string]string) *models.Result {
	return a.call(ctx, createRebillCustomerSchema, fields)
}

// UpdateRebillCustomer replaces a rebill customer's details. The service
// takes the full field set, so unchanged fields must be resubmitted.
func (a *RecurringPaymentsAdapter) UpdateRebillCustomer(ctx context.Context, fields map[string]string) *models.Result {
	result := a.call(ctx, updateRebillCustomerSchema, fields)
	if result.Successful() && result.Payload[models.PayloadRebillCustomerID] == "" {
		result.Payload[models.PayloadRebillCustomerID] = fields["RebillCustomerID"]
	}
	return result
}

// DeleteRebillCustomer removes a rebill customer and any events attached
// to them.
func (a *RecurringPaymentsAdapter) DeleteRebillCustomer(ctx context.Context, rebillCustomerID string) *models.Result {
	if rebillCustomerID == "" {
		return missingParametersResult([]string{"RebillCustomerID"})
	}

	raw, echo, failure := a.post(ctx, "DeleteRebillCustomer", []Field{
		{Name: "RebillCustomerID", Value: rebillCustomerID},
	})
	if failure != nil {
		return failure
	}

	result := parseRebillResponse(raw)
	result.RequestEcho = echo
	return result
}

// QueryRebillCustomer fetches a rebill customer's details.
func (a *RecurringPaymentsAdapter) QueryRebillCustomer(ctx context.Context, rebillCustomerID string) *models.Result {
	if rebillCustomerID == "" {
		return missingParametersResult([]string{"RebillCustomerID"})
	}

	raw, echo, failure := a.post(ctx, "QueryRebillCustomer", []Field{
		{Name: "RebillCustomerID", Value: rebillCustomerID},
	})
	if failure != nil {
		return failure
	}

	result := a.parseQuery(raw)
	if result.Successful() {
		result.Payload[models.PayloadRebillCustomerID] = rebillCustomerID
	}
	result.RequestEcho = echo
	return result
}

// CreateRebillEvent attaches a scheduled charge plan to a rebill customer.
// The frequency pseudo-field and free-form dates are expanded to the wire
// interval and date fields before validation, so a schedule like
// {"frequency": "monthly", "RebillStartDate": "May 5th, 2013"} is accepted
// as-is.
func (a *RecurringPaymentsAdapter) CreateRebillEvent(ctx context.Context, fields map[string]string) *models.Result {
	expanded, failure := expandEventFields(fields)
	if failure != nil {
		return failure
	}
	return a.call(ctx, createRebillEventSchema, expanded)
}

// UpdateRebillEvent replaces a rebill event's schedule. The full field set
// is required, the same as UpdateRebillCustomer.
func (a *RecurringPaymentsAdapter) UpdateRebillEvent(ctx context.Context, fields map[string]string) *models.Result {
	expanded, failure := expandEventFields(fields)
	if failure != nil {
		return failure
	}
	result := a.call(ctx, updateRebillEventSchema, expanded)
	if result.Successful() && result.Payload[models.PayloadRebillID] == "" {
		result.Payload[models.PayloadRebillID] = fields["RebillID"]
	}
	return result
}

// DeleteRebillEvent cancels a scheduled charge plan.
func (a *RecurringPaymentsAdapter) DeleteRebillEvent(ctx context.Context, rebillCustomerID, rebillID string) *models.Result {
	if failure := requireEventIDs(rebillCustomerID, rebillID); failure != nil {
		return failure
	}

	raw, echo, failure := a.post(ctx, "DeleteRebillEvent", eventIDFields(rebillCustomerID, rebillID))
	if failure != nil {
		return failure
	}

	result := parseRebillResponse(raw)
	result.RequestEcho = echo
	return result
}

// QueryRebillEvent fetches a rebill event's schedule.
func (a *RecurringPaymentsAdapter) QueryRebillEvent(ctx context.Context, rebillCustomerID, rebillID string) *models.Result {
	if failure := requireEventIDs(rebillCustomerID, rebillID); failure != nil {
		return failure
	}

	raw, echo, failure := a.post(ctx, "QueryRebillEvent", eventIDFields(rebillCustomerID, rebillID))
	if failure != nil {
		return failure
	}

	result := a.parseQuery(raw)
	if result.Successful() {
		result.Payload[models.PayloadRebillCustomerID] = rebillCustomerID
		result.Payload[models.PayloadRebillID] = rebillID
	}
	result.RequestEcho = echo
	return result
}

// QueryNextTransaction reports the next charge the rebill service will
// attempt for an event.
func (a *RecurringPaymentsAdapter) QueryNextTransaction(ctx context.Context, rebillCustomerID, rebillID string) *models.Result {
	if failure := requireEventIDs(rebillCustomerID, rebillID); failure != nil {
		return failure
	}

	raw, echo, failure := a.post(ctx, "QueryNextTransaction", eventIDFields(rebillCustomerID, rebillID))
	if failure != nil {
		return failure
	}

	leaves, err := soapLeaves(raw)
	if err != nil {
		return unparsableSOAPResult(raw, err)
	}
	if leaves["Result"] != "" && leaves["Result"] != "Success" {
		result := parseRebillResponse(raw)
		result.RequestEcho = echo
		return result
	}
	if leaves["faultstring"] != "" {
		result := parseRebillResponse(raw)
		result.RequestEcho = echo
		return result
	}

	return &models.Result{
		Status: models.StatusSuccess,
		NextTransaction: &models.NextTransaction{
			TransactionDate: leaves["TransactionDate"],
			CardHolderName:  leaves["CardHolderName"],
			ExpiryDate:      leaves["ExpiryDate"],
			Amount:          leaves["Amount"],
			Status:          leaves["Status"],
			Type:            leaves["Type"],
		},
		Payload: map[string]string{
			models.PayloadRebillCustomerID: rebillCustomerID,
			models.PayloadRebillID:         rebillID,
		},
		Raw:         raw,
		RequestEcho: echo,
	}
}

// QueryTransactions lists an event's charges, optionally narrowed by date
// range and status. Filter dates accept the same free-form text as the
// schedule dates.
func (a *RecurringPaymentsAdapter) QueryTransactions(ctx context.Context, rebillCustomerID, rebillID string, filters ports.QueryFilters) *models.Result {
	if failure := requireEventIDs(rebillCustomerID, rebillID); failure != nil {
		return failure
	}

	switch filters.Status {
	case "", ports.FilterStatusFuture, ports.FilterStatusPending, ports.FilterStatusSuccessful, ports.FilterStatusFailed:
	default:
		return invalidStatusFilterResult(filters.Status)
	}

	fields := eventIDFields(rebillCustomerID, rebillID)
	var badDates []string
	if filters.StartDate != "" {
		if v, ok := ParseDate(filters.StartDate, DateTargetQuery); ok {
			fields = append(fields, Field{Name: "startDate", Value: v})
		} else {
			badDates = append(badDates, "startDate")
		}
	}
	if filters.EndDate != "" {
		if v, ok := ParseDate(filters.EndDate, DateTargetQuery); ok {
			fields = append(fields, Field{Name: "endDate", Value: v})
		} else {
			badDates = append(badDates, "endDate")
		}
	}
	if len(badDates) > 0 {
		return invalidDatesResult(badDates)
	}
	if filters.Status != "" {
		fields = append(fields, Field{Name: "status", Value: filters.Status})
	}

	raw, echo, failure := a.post(ctx, "QueryTransactions", fields)
	if failure != nil {
		return failure
	}

	leaves, err := soapLeaves(raw)
	if err != nil {
		return unparsableSOAPResult(raw, err)
	}
	if leaves["faultstring"] != "" || (leaves["Result"] != "" && leaves["Result"] != "Success") {
		result := parseRebillResponse(raw)
		result.RequestEcho = echo
		return result
	}

	records, err := soapChildMaps(raw, "QueryTransactionsResult")
	if err != nil {
		return unparsableSOAPResult(raw, err)
	}

	transactions := make([]models.RebillTransaction, 0, len(records))
	for _, rec := range records {
		transactions = append(transactions, models.RebillTransaction{
			TransactionDate: rec["TransactionDate"],
			CardHolderName:  rec["CardHolderName"],
			ExpiryDate:      rec["ExpiryDate"],
			Amount:          rec["Amount"],
			Status:          rec["Status"],
			Type:            rec["Type"],
			Error:           rec["Error"],
		})
	}

	return &models.Result{
		Status:       models.StatusSuccess,
		Transactions: transactions,
		Payload: map[string]string{
			models.PayloadRebillCustomerID: rebillCustomerID,
			models.PayloadRebillID:         rebillID,
		},
		Raw:         raw,
		RequestEcho: echo,
	}
}

// parseQuery interprets a rebill detail query body: the usual Result
// bookkeeping plus one leaf element per record field, carried through to
// the payload under their wire names.
func (a *RecurringPaymentsAdapter) parseQuery(raw []byte) *models.Result {
	leaves, err := soapLeaves(raw)
	if err != nil {
		return unparsableSOAPResult(raw, err)
	}
	if leaves["faultstring"] != "" || leaves["Result"] != "Success" {
		return parseRebillResponse(raw)
	}

	payload := make(map[string]string, len(leaves))
	for k, v := range leaves {
		if rebillBookkeepingElements[k] {
			continue
		}
		payload[k] = v
	}

	return &models.Result{
		Status:  models.StatusSuccess,
		Payload: payload,
		Raw:     raw,
	}
}

func requireEventIDs(rebillCustomerID, rebillID string) *models.Result {
	var missing []string
	if rebillCustomerID == "" {
		missing = append(missing, "RebillCustomerID")
	}
	if rebillID == "" {
		missing = append(missing, "RebillID")
	}
	if len(missing) > 0 {
		return missingParametersResult(missing)
	}
	return nil
}

func eventIDFields(rebillCustomerID, rebillID string) []Field {
	return []Field{
		{Name: "RebillCustomerID", Value: rebillCustomerID},
		{Name: "RebillID", Value: rebillID},
	}
}

// rebillDateFields are expanded from free-form text to the dd/mm/yyyy wire
// format before schema validation.
var rebillDateFields = []string{"RebillInitDate", "RebillStartDate", "RebillEndDate"}

// expandEventFields resolves the frequency pseudo-field and free-form
// dates. A caller that supplies RebillInterval/RebillIntervalType directly
// and no frequency token is passed through untouched.
func expandEventFields(fields map[string]string) (map[string]string, *models.Result) {
	expanded := make(map[string]string, len(fields)+1)
	for k, v := range fields {
		expanded[k] = v
	}

	if token, ok := expanded["frequency"]; ok {
		f, valid := ParseFrequency(token)
		if !valid {
			return nil, invalidFrequencyResult(token)
		}
		expanded["RebillInterval"] = strconv.Itoa(f.Interval)
		expanded["RebillIntervalType"] = strconv.Itoa(int(f.Unit))
		delete(expanded, "frequency")
	}

	var badDates []string
	for _, name := range rebillDateFields {
		if text := expanded[name]; text != "" {
			if v, ok := ParseDate(text, DateTargetRebill); ok {
				expanded[name] = v
			} else {
				badDates = append(badDates, name)
			}
		}
	}
	if len(badDates) > 0 {
		return nil, invalidDatesResult(badDates)
	}

	return expanded, nil
}
