package eway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvelope_FlatXML(t *testing.T) {
	env := Envelope{
		Operation: "ewaygateway",
		Fields: []Field{
			{Name: "ewayCustomerID", Value: "87654321"},
			{Name: "ewayTotalAmount", Value: "1000"},
			{Name: "ewayCardHoldersName", Value: "Test Cardholder"},
		},
	}

	want := "<?xml version=\"1.0\"?>\n" +
		"<ewaygateway>" +
		"<ewayCustomerID>87654321</ewayCustomerID>" +
		"<ewayTotalAmount>1000</ewayTotalAmount>" +
		"<ewayCardHoldersName>Test Cardholder</ewayCardHoldersName>" +
		"</ewaygateway>"
	assert.Equal(t, want, env.FlatXML())
}

func TestEnvelope_FlatXML_EscapesFreeText(t *testing.T) {
	env := Envelope{
		Operation: "ewaygateway",
		Fields: []Field{
			{Name: "ewayCardHoldersName", Value: `O'Brien <& "Sons">`},
		},
	}

	assert.Contains(t, env.FlatXML(),
		"<ewayCardHoldersName>O&apos;Brien &lt;&amp; &quot;Sons&quot;&gt;</ewayCardHoldersName>")
}

func TestEnvelope_SOAP_CredentialHeader(t *testing.T) {
	env := Envelope{
		Operation: "ProcessPayment",
		Namespace: managedPaymentsNamespace,
		Fields: []Field{
			{Name: "managedCustomerID", Value: "9876543211000"},
			{Name: "amount", Value: "1000"},
		},
	}

	body := env.SOAP(soapHeader{
		CustomerID: "87654321",
		Username:   "test@eway.com.au",
		Password:   "test123",
	})

	assert.Contains(t, body, `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">`)
	assert.Contains(t, body, `<eWAYHeader xmlns="`+managedPaymentsNamespace+`">`)
	assert.Contains(t, body, "<eWAYCustomerID>87654321</eWAYCustomerID>")
	assert.Contains(t, body, "<Username>test@eway.com.au</Username>")
	assert.Contains(t, body, "<Password>test123</Password>")
	assert.Contains(t, body, `<ProcessPayment xmlns="`+managedPaymentsNamespace+`">`)
	assert.Contains(t, body, "<managedCustomerID>9876543211000</managedCustomerID>")
	assert.Contains(t, body, "<amount>1000</amount>")
}

func TestEnvelope_SOAPAction(t *testing.T) {
	env := Envelope{Operation: "CreateRebillCustomer", Namespace: rebillNamespace}
	assert.Equal(t, rebillNamespace+"/CreateRebillCustomer", env.SOAPAction())
}
