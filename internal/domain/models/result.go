package models

import (
	"github.com/shopspring/decimal"
)

// Status classifies the outcome of a gateway operation.
//
// Approved/Declined are the payment-family outcomes: the gateway was
// reached and either authorized or rejected the transaction. Success/Fail
// are the management-family outcomes (customer and rebill lifecycle calls,
// which have no authorization code space). DataError means the request
// never left the process; GatewayError means the gateway was unreachable or
// answered with something we could not classify.
type Status string

const (
	StatusApproved     Status = "Approved"
	StatusDeclined     Status = "Declined"
	StatusDataError    Status = "Data error"
	StatusGatewayError Status = "Gateway error"
	StatusSuccess      Status = "Success"
	StatusFail         Status = "Fail"
)

// Response codes for locally-generated failures. Distinct from the bank
// code space, which is two-digit.
const (
	CodeGatewayError = "100"
	CodeDataError    = "200"
)

// Payload keys populated by the response parsers.
const (
	PayloadTransactionID       = "transaction-id"
	PayloadBankAuthorisationID = "bank-authorisation-id"
	PayloadAmount              = "amount"
	PayloadRefundAmount        = "refund-amount"
	PayloadManagedCustomerID   = "managed-customer-id"
	PayloadRebillCustomerID    = "rebill-customer-id"
	PayloadRebillID            = "rebill-id"
	PayloadTrxnStatus          = "trxn-status"
	PayloadTrxnReference       = "trxn-reference"
	PayloadHTTPStatus          = "http-status"
	PayloadNetworkError        = "network-error"
	PayloadFaultString         = "fault-string"
)

// NextTransaction describes the upcoming scheduled charge of a rebill event.
type NextTransaction struct {
	TransactionDate string
	CardHolderName  string
	ExpiryDate      string
	Amount          string // in cents
	Status          string
	Type            string
}

// RebillTransaction is one historical or future charge of a rebill event.
type RebillTransaction struct {
	TransactionDate string
	CardHolderName  string
	ExpiryDate      string
	Amount          string // in cents
	Status          string
	Type            string
	Error           string
}

// Result is the normalized outcome of every gateway operation. All failure
// modes -- missing fields, unreachable gateway, declined transaction -- come
// back as a Result rather than an error, so callers branch on Status and
// never have to reconcile two error channels.
//
// Results are created per call and never mutated afterwards.
type Result struct {
	Status          Status
	ResponseCode    string
	ResponseMessage string

	// Payload holds the operation-specific scalar outputs keyed by the
	// Payload* constants, plus any query detail fields.
	Payload map[string]string

	// MissingFields is populated on DataError for missing-field failures,
	// in the schema's declared order.
	MissingFields []string

	// Transactions is populated by QueryTransactions only.
	Transactions []RebillTransaction

	// NextTransaction is populated by QueryNextTransaction only.
	NextTransaction *NextTransaction

	// Raw is the unparsed gateway response body, when one was received.
	Raw []byte

	// RequestEcho is the serialized request envelope, for diagnostics.
	// Credential header values are never echoed.
	RequestEcho string
}

// Successful reports whether the operation reached a positive terminal
// state. Holds exactly when Status is Approved or Success.
func (r *Result) Successful() bool {
	return r.Status == StatusApproved || r.Status == StatusSuccess
}

func (r *Result) payload(key string) string {
	if r.Payload == nil {
		return ""
	}
	return r.Payload[key]
}

// TransactionID returns the gateway transaction number, when present.
func (r *Result) TransactionID() string {
	return r.payload(PayloadTransactionID)
}

// BankAuthorisationID returns the bank authorisation code, when present.
func (r *Result) BankAuthorisationID() string {
	return r.payload(PayloadBankAuthorisationID)
}

// CustomerID returns the managed customer id issued by CreateCustomer.
func (r *Result) CustomerID() string {
	return r.payload(PayloadManagedCustomerID)
}

// RebillCustomerID returns the rebill customer id issued by
// CreateRebillCustomer.
func (r *Result) RebillCustomerID() string {
	return r.payload(PayloadRebillCustomerID)
}

// RebillID returns the rebill event id issued by CreateRebillEvent.
func (r *Result) RebillID() string {
	return r.payload(PayloadRebillID)
}

// Amount returns the gateway-reported amount in dollars. The gateway
// reports amounts in cents; unparsable or absent amounts return zero with
// ok false.
func (r *Result) Amount() (decimal.Decimal, bool) {
	raw := r.payload(PayloadAmount)
	if raw == "" {
		raw = r.payload(PayloadRefundAmount)
	}
	if raw == "" {
		return decimal.Zero, false
	}
	cents, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return cents.Shift(-2), true
}
