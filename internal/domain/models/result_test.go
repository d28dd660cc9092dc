package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_Successful(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusApproved, true},
		{StatusSuccess, true},
		{StatusDeclined, false},
		{StatusDataError, false},
		{StatusGatewayError, false},
		{StatusFail, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			r := &Result{Status: tt.status}
			assert.Equal(t, tt.want, r.Successful())
		})
	}
}

func TestResult_Accessors_NilPayload(t *testing.T) {
	r := &Result{Status: StatusDataError}

	assert.Empty(t, r.TransactionID())
	assert.Empty(t, r.BankAuthorisationID())
	assert.Empty(t, r.CustomerID())
	assert.Empty(t, r.RebillCustomerID())
	assert.Empty(t, r.RebillID())

	_, ok := r.Amount()
	assert.False(t, ok)
}

func TestResult_Amount_CentsToDollars(t *testing.T) {
	r := &Result{Payload: map[string]string{PayloadAmount: "1050"}}

	amount, ok := r.Amount()
	require.True(t, ok)
	assert.Equal(t, "10.5", amount.String())
}

func TestResult_Amount_FallsBackToRefundAmount(t *testing.T) {
	r := &Result{Payload: map[string]string{PayloadRefundAmount: "500"}}

	amount, ok := r.Amount()
	require.True(t, ok)
	assert.Equal(t, "5", amount.String())
}

func TestResult_Amount_NonNumeric(t *testing.T) {
	r := &Result{Payload: map[string]string{PayloadAmount: "ten dollars"}}

	_, ok := r.Amount()
	assert.False(t, ok)
}
