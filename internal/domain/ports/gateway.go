package ports

import (
	"context"

	"github.com/kevin07696/eway-gateway/internal/domain/models"
)

// TransactionStatusFilter values accepted by QueryTransactions.
const (
	FilterStatusFuture     = "Future"
	FilterStatusPending    = "Pending"
	FilterStatusSuccessful = "Successful"
	FilterStatusFailed     = "Failed"
)

// QueryFilters narrows a QueryTransactions call. StartDate and EndDate
// accept free-form date text; Status must be one of the FilterStatus
// constants. Zero values mean "no filter".
type QueryFilters struct {
	StartDate string
	EndDate   string
	Status    string
}

// CreditCardGateway is the one-shot card payment surface (the flat-XML
// hosted payments CVN family plus its refund variant).
type CreditCardGateway interface {
	// Charge submits a card payment. Field names are the eWAY wire names
	// (ewayTotalAmount, ewayCardNumber, ...); the merchant customer id is
	// injected from configuration and cannot be overridden by the caller.
	Charge(ctx context.Context, fields map[string]string) *models.Result

	// Refund reverses a previous transaction. refundPassword is the
	// operator-configured refund password, distinct from the business
	// centre login password.
	Refund(ctx context.Context, refundPassword string, fields map[string]string) *models.Result
}

// ManagedCustomerGateway is the token ("managed customer") SOAP surface:
// a processor-side stored card that can be charged without resubmitting
// card data.
type ManagedCustomerGateway interface {
	CreateCustomer(ctx context.Context, fields map[string]string) *models.Result
	UpdateCustomer(ctx context.Context, fields map[string]string) *models.Result
	QueryCustomer(ctx context.Context, managedCustomerID string) *models.Result
	ProcessPayment(ctx context.Context, fields map[string]string) *models.Result
	ProcessPaymentWithCVN(ctx context.Context, fields map[string]string) *models.Result
}

// RecurringPaymentsGateway is the rebill SOAP surface: customers and their
// scheduled recurring charge plans.
type RecurringPaymentsGateway interface {
	CreateRebillCustomer(ctx context.Context, fields map[string]string) *models.Result
	UpdateRebillCustomer(ctx context.Context, fields map[string]string) *models.Result
	DeleteRebillCustomer(ctx context.Context, rebillCustomerID string) *models.Result
	QueryRebillCustomer(ctx context.Context, rebillCustomerID string) *models.Result

	// Rebill event operations accept a "frequency" pseudo-field
	// (weekly, fortnightly, monthly, yearly) which is expanded into
	// RebillInterval/RebillIntervalType before submission.
	CreateRebillEvent(ctx context.Context, fields map[string]string) *models.Result
	UpdateRebillEvent(ctx context.Context, fields map[string]string) *models.Result
	DeleteRebillEvent(ctx context.Context, rebillCustomerID, rebillID string) *models.Result
	QueryRebillEvent(ctx context.Context, rebillCustomerID, rebillID string) *models.Result

	QueryNextTransaction(ctx context.Context, rebillCustomerID, rebillID string) *models.Result
	QueryTransactions(ctx context.Context, rebillCustomerID, rebillID string, filters QueryFilters) *models.Result
}
