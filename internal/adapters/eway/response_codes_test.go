package eway

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kevin07696/eway-gateway/internal/domain/models"
)

func TestIsApprovedCode(t *testing.T) {
	for _, code := range []string{"00", "08", "10", "11", "16"} {
		assert.True(t, IsApprovedCode(code), "code %s", code)
	}
	for _, code := range []string{"01", "05", "14", "51", "54", "", "0", "100", "200"} {
		assert.False(t, IsApprovedCode(code), "code %s", code)
	}
}

func TestGetResponseCodeInfo_UnknownCodeFallsBackToDeclined(t *testing.T) {
	info := GetResponseCodeInfo("97")

	assert.Equal(t, "97", info.Code)
	assert.Equal(t, "DECLINED", info.Display)
	assert.False(t, info.IsApproved)
}

func TestClassifyFault(t *testing.T) {
	code, message, ok := classifyFault("Error: Invalid managedCustomerID in request")
	assert.True(t, ok)
	assert.Equal(t, models.CodeDataError, code)
	assert.Equal(t, "Error: Invalid managedCustomerID in request", message)

	code, message, ok = classifyFault("The 'CCNumber' element is invalid")
	assert.True(t, ok)
	assert.Equal(t, "14", code)
	assert.Equal(t, "Credit Card number must be valid", message)

	_, _, ok = classifyFault("Server was unable to process request.")
	assert.False(t, ok)
}
