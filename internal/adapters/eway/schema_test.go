package eway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldValue(fields []Field, name string) (string, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

func TestSchema_Apply_EmptyInput_ReportsRequiredInOrder(t *testing.T) {
	_, missing := hostedPaymentSchema.Apply(nil, nil)

	assert.Equal(t, []string{
		"ewayCustomerID",
		"ewayTotalAmount",
		"ewayCardHoldersName",
		"ewayCardNumber",
		"ewayCardExpiryMonth",
		"ewayCardExpiryYear",
		"ewayCVN",
	}, missing)
}

func TestSchema_Apply_ZeroStringIsNotMissing(t *testing.T) {
	input := map[string]string{
		"ewayTotalAmount":     "0",
		"ewayCardHoldersName": "Test Cardholder",
		"ewayCardNumber":      "4444333322221111",
		"ewayCardExpiryMonth": "12",
		"ewayCardExpiryYear":  "30",
		"ewayCVN":             "123",
	}
	overrides := map[string]string{"ewayCustomerID": "11438715"}

	fields, missing := hostedPaymentSchema.Apply(input, overrides)

	assert.Empty(t, missing)
	v, ok := fieldValue(fields, "ewayTotalAmount")
	require.True(t, ok)
	assert.Equal(t, "0", v)
}

func TestSchema_Apply_EmptyStringIsMissing(t *testing.T) {
	input := map[string]string{
		"ewayTotalAmount":     "",
		"ewayCardHoldersName": "Test Cardholder",
		"ewayCardNumber":      "4444333322221111",
		"ewayCardExpiryMonth": "12",
		"ewayCardExpiryYear":  "30",
		"ewayCVN":             "123",
	}
	overrides := map[string]string{"ewayCustomerID": "11438715"}

	_, missing := hostedPaymentSchema.Apply(input, overrides)

	assert.Equal(t, []string{"ewayTotalAmount"}, missing)
}

func TestSchema_Apply_OverridesWinOverInput(t *testing.T) {
	input := map[string]string{
		"ewayCustomerID":      "99999999", // attempted spoof
		"ewayTotalAmount":     "1000",
		"ewayCardHoldersName": "Test Cardholder",
		"ewayCardNumber":      "4444333322221111",
		"ewayCardExpiryMonth": "12",
		"ewayCardExpiryYear":  "30",
		"ewayCVN":             "123",
	}
	overrides := map[string]string{"ewayCustomerID": "11438715"}

	fields, missing := hostedPaymentSchema.Apply(input, overrides)

	require.Empty(t, missing)
	v, _ := fieldValue(fields, "ewayCustomerID")
	assert.Equal(t, "11438715", v)
}

func TestSchema_Apply_UnknownInputKeysAreDropped(t *testing.T) {
	input := map[string]string{
		"ewayTotalAmount":     "1000",
		"ewayCardHoldersName": "Test Cardholder",
		"ewayCardNumber":      "4444333322221111",
		"ewayCardExpiryMonth": "12",
		"ewayCardExpiryYear":  "30",
		"ewayCVN":             "123",
		"notAWireField":       "boom",
	}
	overrides := map[string]string{"ewayCustomerID": "11438715"}

	fields, _ := hostedPaymentSchema.Apply(input, overrides)

	_, ok := fieldValue(fields, "notAWireField")
	assert.False(t, ok)
}

func TestSchema_Apply_DefaultsPreserveWireOrder(t *testing.T) {
	input := map[string]string{
		"ewayCVN":         "123",
		"ewayTotalAmount": "1000",
	}

	fields, _ := hostedPaymentSchema.Apply(input, nil)

	require.Len(t, fields, len(hostedPaymentSchema.Defaults))
	for i, f := range fields {
		assert.Equal(t, hostedPaymentSchema.Defaults[i].Name, f.Name)
	}
}

func TestSchema_Apply_OrderSchema_KnownFieldsFirstThenSorted(t *testing.T) {
	input := map[string]string{
		"zExtra":            "z",
		"amount":            "1000",
		"managedCustomerID": "9876543211000",
		"aExtra":            "a",
	}

	fields, _ := processPaymentSchema.Apply(input, nil)

	var names []string
	for _, f := range fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"managedCustomerID", "amount", "aExtra", "zExtra"}, names)
}

func TestSchema_CreateVariantsOmitIdentityField(t *testing.T) {
	for _, f := range createCustomerSchema.Defaults {
		assert.NotEqual(t, "managedCustomerID", f.Name)
	}
	for _, f := range createRebillCustomerSchema.Defaults {
		assert.NotEqual(t, "RebillCustomerID", f.Name)
	}
	for _, f := range createRebillEventSchema.Defaults {
		assert.NotEqual(t, "RebillID", f.Name)
	}
}
