package eway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevin07696/eway-gateway/internal/domain/models"
)

func TestSplitTrxnError(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantCode    string
		wantMessage string
	}{
		{
			name:        "approved",
			input:       "00,Transaction Approved(Test Gateway)",
			wantCode:    "00",
			wantMessage: "Transaction Approved(Test Gateway)",
		},
		{
			name:        "declined",
			input:       "05,Do Not Honour",
			wantCode:    "05",
			wantMessage: "Do Not Honour",
		},
		{
			name:        "message with embedded comma",
			input:       "14,Invalid Card Number, please check",
			wantCode:    "14",
			wantMessage: "Invalid Card Number, please check",
		},
		{
			name:        "non numeric left part is all message",
			input:       "Card number is required",
			wantCode:    "",
			wantMessage: "Card number is required",
		},
		{
			name:        "eway error prefix stripped",
			input:       "eWAY Error: Invalid Customer ID",
			wantCode:    "",
			wantMessage: "Invalid Customer ID",
		},
		{
			name:        "prefix stripped case insensitively",
			input:       "EWAY ERROR: something broke",
			wantCode:    "",
			wantMessage: "something broke",
		},
		{
			name:        "empty",
			input:       "",
			wantCode:    "",
			wantMessage: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, message := splitTrxnError(tt.input)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMessage, message)
		})
	}
}

func TestParseFlatResponse_Approved(t *testing.T) {
	raw := []byte(`<ewayResponse>` +
		`<ewayTrxnStatus>True</ewayTrxnStatus>` +
		`<ewayTrxnNumber>10002</ewayTrxnNumber>` +
		`<ewayTrxnReference>ref-1</ewayTrxnReference>` +
		`<ewayAuthCode>123456</ewayAuthCode>` +
		`<ewayTrxnError>00,Transaction Approved(Test Gateway)</ewayTrxnError>` +
		`<ewayReturnAmount>1000</ewayReturnAmount>` +
		`</ewayResponse>`)

	result := parseFlatResponse(raw)

	assert.Equal(t, models.StatusApproved, result.Status)
	assert.True(t, result.Successful())
	assert.Equal(t, "00", result.ResponseCode)
	assert.Equal(t, "Transaction Approved(Test Gateway)", result.ResponseMessage)
	assert.Equal(t, "10002", result.TransactionID())
	assert.Equal(t, "123456", result.BankAuthorisationID())
	assert.Equal(t, "ref-1", result.Payload[models.PayloadTrxnReference])

	amount, ok := result.Amount()
	require.True(t, ok)
	assert.Equal(t, "10", amount.String())
}

func TestParseFlatResponse_Declined(t *testing.T) {
	raw := []byte(`<ewayResponse>` +
		`<ewayTrxnStatus>False</ewayTrxnStatus>` +
		`<ewayTrxnNumber>10003</ewayTrxnNumber>` +
		`<ewayTrxnError>05,Do Not Honour</ewayTrxnError>` +
		`</ewayResponse>`)

	result := parseFlatResponse(raw)

	assert.Equal(t, models.StatusDeclined, result.Status)
	assert.False(t, result.Successful())
	assert.Equal(t, "05", result.ResponseCode)
	assert.Equal(t, "Do Not Honour", result.ResponseMessage)
}

// The approved-code set alone decides the outcome. A response whose status
// flag disagrees with the code keeps the code's verdict.
func TestParseFlatResponse_StatusFlagDoesNotDecide(t *testing.T) {
	raw := []byte(`<ewayResponse>` +
		`<ewayTrxnStatus>False</ewayTrxnStatus>` +
		`<ewayTrxnError>08,Honour With Identification</ewayTrxnError>` +
		`</ewayResponse>`)

	result := parseFlatResponse(raw)

	assert.Equal(t, models.StatusApproved, result.Status)
	assert.Equal(t, "False", result.Payload[models.PayloadTrxnStatus])
}

func TestParseFlatResponse_NotXML(t *testing.T) {
	result := parseFlatResponse([]byte("<html>Bad Gateway</html>"))

	assert.Equal(t, models.StatusGatewayError, result.Status)
	assert.Equal(t, models.CodeGatewayError, result.ResponseCode)
}

func soapFault(fault string) []byte {
	return []byte(`<?xml version="1.0" encoding="utf-8"?>` +
		`<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">` +
		`<soap:Body><soap:Fault>` +
		`<faultcode>soap:Client</faultcode>` +
		`<faultstring>` + fault + `</faultstring>` +
		`</soap:Fault></soap:Body></soap:Envelope>`)
}

func TestParseManagedPaymentResponse_Approved(t *testing.T) {
	raw := []byte(`<?xml version="1.0" encoding="utf-8"?>` +
		`<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">` +
		`<soap:Body>` +
		`<ProcessPaymentResponse xmlns="https://www.eway.com.au/gateway/managedpayment">` +
		`<ewayResponse>` +
		`<ewayTrxnError>00,Transaction Approved(Test CVN Gateway)</ewayTrxnError>` +
		`<ewayTrxnStatus>True</ewayTrxnStatus>` +
		`<ewayTrxnNumber>1011634</ewayTrxnNumber>` +
		`<ewayReturnAmount>1000</ewayReturnAmount>` +
		`<ewayAuthCode>123456</ewayAuthCode>` +
		`</ewayResponse>` +
		`</ProcessPaymentResponse>` +
		`</soap:Body></soap:Envelope>`)

	result := parseManagedPaymentResponse(raw)

	assert.Equal(t, models.StatusApproved, result.Status)
	assert.Equal(t, "00", result.ResponseCode)
	assert.Equal(t, "1011634", result.TransactionID())
	assert.Equal(t, "123456", result.BankAuthorisationID())
}

func TestParseManagedPaymentResponse_KnownFaults(t *testing.T) {
	tests := []struct {
		name        string
		fault       string
		wantStatus  models.Status
		wantCode    string
		wantMessage string
	}{
		{
			name:        "invalid managed customer id",
			fault:       "Error: Invalid managedCustomerID",
			wantStatus:  models.StatusDataError,
			wantCode:    models.CodeDataError,
			wantMessage: "Error: Invalid managedCustomerID",
		},
		{
			name:        "expired card",
			fault:       "Credit Card expiry date must be valid",
			wantStatus:  models.StatusDeclined,
			wantCode:    "54",
			wantMessage: "Credit Card expiry date must be valid",
		},
		{
			name:        "invalid card number gets rewritten message",
			fault:       "The 'CCNumber' element is invalid - The value 'abc' is invalid according to its datatype",
			wantStatus:  models.StatusDeclined,
			wantCode:    "14",
			wantMessage: "Credit Card number must be valid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseManagedPaymentResponse(soapFault(tt.fault))
			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Equal(t, tt.wantCode, result.ResponseCode)
			assert.Equal(t, tt.wantMessage, result.ResponseMessage)
			assert.Equal(t, tt.fault, result.Payload[models.PayloadFaultString])
		})
	}
}

func TestParseManagedPaymentResponse_UnknownFault(t *testing.T) {
	result := parseManagedPaymentResponse(soapFault("Server was unable to process request."))

	assert.Equal(t, models.StatusGatewayError, result.Status)
	assert.Equal(t, models.CodeGatewayError, result.ResponseCode)
	assert.Equal(t, "Server was unable to process request.", result.ResponseMessage)
}

func TestParseRebillResponse_Success(t *testing.T) {
	raw := []byte(`<?xml version="1.0" encoding="utf-8"?>` +
		`<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">` +
		`<soap:Body>` +
		`<CreateRebillCustomerResponse xmlns="http://www.eway.com.au/gateway/rebill/manageRebill">` +
		`<CreateRebillCustomerResult>` +
		`<Result>Success</Result>` +
		`<ErrorSeverity></ErrorSeverity>` +
		`<ErrorDetails></ErrorDetails>` +
		`<RebillCustomerID>60001545</RebillCustomerID>` +
		`</CreateRebillCustomerResult>` +
		`</CreateRebillCustomerResponse>` +
		`</soap:Body></soap:Envelope>`)

	result := parseRebillResponse(raw)

	assert.Equal(t, models.StatusSuccess, result.Status)
	assert.True(t, result.Successful())
	assert.Equal(t, "60001545", result.RebillCustomerID())
}

func TestParseRebillResponse_Fail(t *testing.T) {
	raw := []byte(`<?xml version="1.0" encoding="utf-8"?>` +
		`<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">` +
		`<soap:Body>` +
		`<CreateRebillEventResponse xmlns="http://www.eway.com.au/gateway/rebill/manageRebill">` +
		`<CreateRebillEventResult>` +
		`<Result>Fail</Result>` +
		`<ErrorSeverity>Error</ErrorSeverity>` +
		`<ErrorDetails>Invalid Rebill Start Date</ErrorDetails>` +
		`</CreateRebillEventResult>` +
		`</CreateRebillEventResponse>` +
		`</soap:Body></soap:Envelope>`)

	result := parseRebillResponse(raw)

	assert.Equal(t, models.StatusFail, result.Status)
	assert.False(t, result.Successful())
	assert.Equal(t, "Invalid Rebill Start Date", result.ResponseMessage)
}

func TestSoapLeaves_IgnoresNamespacePrefixes(t *testing.T) {
	raw := []byte(`<s:Envelope xmlns:s="http://schemas.xmlsoap.org/soap/envelope/">` +
		`<s:Body><r:Response xmlns:r="urn:x"><r:Value>42</r:Value></r:Response></s:Body>` +
		`</s:Envelope>`)

	leaves, err := soapLeaves(raw)

	require.NoError(t, err)
	assert.Equal(t, "42", leaves["Value"])
}

func TestSoapChildMaps_TransactionList(t *testing.T) {
	raw := []byte(`<?xml version="1.0" encoding="utf-8"?>` +
		`<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">` +
		`<soap:Body>` +
		`<QueryTransactionsResponse xmlns="http://www.eway.com.au/gateway/rebill/manageRebill">` +
		`<QueryTransactionsResult>` +
		`<rebillTransaction>` +
		`<TransactionDate>2013-05-05T00:00:00</TransactionDate>` +
		`<Amount>1000</Amount>` +
		`<Status>Successful</Status>` +
		`<Type>R</Type>` +
		`</rebillTransaction>` +
		`<rebillTransaction>` +
		`<TransactionDate>2013-06-05T00:00:00</TransactionDate>` +
		`<Amount>1000</Amount>` +
		`<Status>Failed</Status>` +
		`<Type>R</Type>` +
		`<Error>05,Do Not Honour</Error>` +
		`</rebillTransaction>` +
		`</QueryTransactionsResult>` +
		`</QueryTransactionsResponse>` +
		`</soap:Body></soap:Envelope>`)

	records, err := soapChildMaps(raw, "QueryTransactionsResult")

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Successful", records[0]["Status"])
	assert.Equal(t, "05,Do Not Honour", records[1]["Error"])
}

func TestSoapChildMaps_NoParentElement(t *testing.T) {
	records, err := soapChildMaps(soapFault("boom"), "QueryTransactionsResult")

	require.NoError(t, err)
	assert.Empty(t, records)
}
