package eway

import (
	"github.com/kevin07696/eway-gateway/internal/config"
)

// Gateway endpoints. URL selection is a pure function of the mode and is
// resolved on every call.
const (
	hostedPaymentsTestURL = "https://www.eway.com.au/gateway_cvn/xmltest/testpage.asp"
	hostedPaymentsProdURL = "https://www.eway.com.au/gateway_cvn/xmlpayment.asp"

	// The refund service has no sandbox endpoint.
	refundURL = "https://www.eway.com.au/gateway/xmlpaymentrefund.asp"

	managedPaymentsTestURL = "https://www.eway.com.au/gateway/ManagedPaymentService/test/managedcreditcardpayment.asmx"
	managedPaymentsProdURL = "https://www.eway.com.au/gateway/ManagedPaymentService/managedcreditcardpayment.asmx"

	rebillTestURL = "https://www.eway.com.au/gateway/rebill/test/managerebill_test.asmx"
	rebillProdURL = "https://www.eway.com.au/gateway/rebill/manageRebill.asmx"

	managedPaymentsNamespace = "https://www.eway.com.au/gateway/managedpayment"
	rebillNamespace          = "http://www.eway.com.au/gateway/rebill/manageRebill"
)

// Published sandbox credentials, substituted for the merchant's own in
// development mode. See https://www.eway.com.au/Developer/testing/
const (
	testCustomerID      = "87654321"
	testManagedLogin    = "test@eway.com.au"
	testManagedPassword = "test123"
)

func hostedPaymentsURL(m config.Mode) string {
	if m == config.ModeDevelopment {
		return hostedPaymentsTestURL
	}
	return hostedPaymentsProdURL
}

func managedPaymentsURL(m config.Mode) string {
	if m == config.ModeDevelopment {
		return managedPaymentsTestURL
	}
	return managedPaymentsProdURL
}

func rebillURL(m config.Mode) string {
	if m == config.ModeDevelopment {
		return rebillTestURL
	}
	return rebillProdURL
}

// hostedPaymentSchema is the Merchant Hosted Payments CVN contract.
// https://www.eway.com.au/Developer/eway-api/cvn-xml.aspx
var hostedPaymentSchema = Schema{
	Operation: "ewaygateway",
	Defaults: []Field{
		{Name: "ewayCustomerID"},
		{Name: "ewayTotalAmount"},
		{Name: "ewayCustomerFirstName"},
		{Name: "ewayCustomerLastName"},
		{Name: "ewayCustomerEmail"},
		{Name: "ewayCustomerAddress"},
		{Name: "ewayCustomerPostcode"},
		{Name: "ewayCustomerInvoiceDescription"},
		{Name: "ewayCustomerInvoiceRef"},
		{Name: "ewayCardHoldersName"},
		{Name: "ewayCardNumber"},
		{Name: "ewayCardExpiryMonth"},
		{Name: "ewayCardExpiryYear"},
		{Name: "ewayTrxnNumber"}, // echoed back as ewayTrxnReference; use the order id or similar
		{Name: "ewayOption1"},
		{Name: "ewayOption2"},
		{Name: "ewayOption3"},
		{Name: "ewayCVN"},
	},
	Required: []string{
		"ewayCustomerID",
		"ewayTotalAmount",
		"ewayCardHoldersName",
		"ewayCardNumber",
		"ewayCardExpiryMonth",
		"ewayCardExpiryYear",
		"ewayCVN",
	},
}

// refundSchema is the XML Payment Refund contract.
// https://www.eway.com.au/Developer/eway-api/api-refund-credit-card-solution.aspx
var refundSchema = Schema{
	Operation: "ewaygateway",
	Defaults: []Field{
		{Name: "ewayCustomerID"},
		{Name: "ewayTotalAmount"},
		{Name: "ewayCardExpiryMonth"},
		{Name: "ewayCardExpiryYear"},
		{Name: "ewayOriginalTrxnNumber"},
		{Name: "ewayOption1"},
		{Name: "ewayOption2"},
		{Name: "ewayOption3"},
		{Name: "ewayRefundPassword"},
		{Name: "ewayCustomerInvoiceRef"},
	},
	Required: []string{
		"ewayCustomerID",
		"ewayTotalAmount",
		"ewayCardExpiryMonth",
		"ewayCardExpiryYear",
		"ewayOriginalTrxnNumber",
		"ewayRefundPassword",
	},
}

// Managed customer field set; the service expects the full set on create
// and update, empty elements included.
var managedCustomerDefaults = []Field{
	{Name: "managedCustomerID"},
	{Name: "CustomerRef"},
	{Name: "Title"},
	{Name: "FirstName"},
	{Name: "LastName"},
	{Name: "Company"},
	{Name: "JobDesc"},
	{Name: "Email"},
	{Name: "Address"},
	{Name: "Suburb"},
	{Name: "State"},
	{Name: "PostCode"},
	{Name: "Country"},
	{Name: "Phone"},
	{Name: "Mobile"},
	{Name: "Fax"},
	{Name: "URL"},
	{Name: "Comments"},
	{Name: "CCNumber"},
	{Name: "CCNameOnCard"},
	{Name: "CCExpiryMonth"},
	{Name: "CCExpiryYear"},
	{Name: "CVN"},
}

var createCustomerSchema = Schema{
	Operation: "CreateCustomer",
	Defaults:  managedCustomerDefaults[1:], // no managedCustomerID on create
	Required: []string{
		"Title",
		"FirstName",
		"LastName",
		"Country",
		"CCNumber",
		"CCExpiryMonth",
		"CCExpiryYear",
		"CVN",
	},
}

var updateCustomerSchema = Schema{
	Operation: "UpdateCustomer",
	Defaults:  managedCustomerDefaults,
	Required: []string{
		"managedCustomerID",
		"Title",
		"FirstName",
		"LastName",
		"Country",
		"CCNumber",
		"CCExpiryMonth",
		"CCExpiryYear",
		"CVN",
	},
}

var queryCustomerSchema = Schema{
	Operation: "QueryCustomer",
	Order:     []string{"managedCustomerID"},
	Required:  []string{"managedCustomerID"},
}

var processPaymentSchema = Schema{
	Operation: "ProcessPayment",
	Order: []string{
		"managedCustomerID",
		"amount",
		"invoiceReference",
		"invoiceDescription",
	},
	Required: []string{
		"managedCustomerID",
		"amount",
		"invoiceReference",
		"invoiceDescription",
	},
}

var processPaymentWithCVNSchema = Schema{
	Operation: "ProcessPaymentWithCVN",
	Order: []string{
		"managedCustomerID",
		"amount",
		"invoiceReference",
		"invoiceDescription",
		"cvn",
	},
	Required: []string{
		"managedCustomerID",
		"amount",
		"invoiceReference",
		"invoiceDescription",
		"cvn",
	},
}

// Rebill customer field set; the service expects the full set, empty
// elements included.
var rebillCustomerDefaults = []Field{
	{Name: "RebillCustomerID"},
	{Name: "customerTitle"},
	{Name: "customerFirstName"},
	{Name: "customerLastName"},
	{Name: "customerAddress"},
	{Name: "customerSuburb"},
	{Name: "customerState"},
	{Name: "customerCompany"},
	{Name: "customerPostCode"},
	{Name: "customerCountry"},
	{Name: "customerEmail"},
	{Name: "customerFax"},
	{Name: "customerPhone1"},
	{Name: "customerPhone2"},
	{Name: "customerRef"},
	{Name: "customerJobDesc"},
	{Name: "customerComments"},
	{Name: "customerURL"},
}

var requiredRebillCustomer = []string{
	"customerTitle",
	"customerFirstName",
	"customerLastName",
	"customerEmail",
}

var createRebillCustomerSchema = Schema{
	Operation: "CreateRebillCustomer",
	Defaults:  rebillCustomerDefaults[1:],
	Required:  requiredRebillCustomer,
}

var updateRebillCustomerSchema = Schema{
	Operation: "UpdateRebillCustomer",
	Defaults:  rebillCustomerDefaults,
	Required:  append(append([]string{}, requiredRebillCustomer...), "RebillCustomerID"),
}

// Rebill event field set.
var rebillEventDefaults = []Field{
	{Name: "RebillID"},
	{Name: "RebillCustomerID"},
	{Name: "RebillInvRef"},
	{Name: "RebillInvDes"},
	{Name: "RebillCCName"},
	{Name: "RebillCCNumber"},
	{Name: "RebillCCExpMonth"},
	{Name: "RebillCCExpYear"},
	{Name: "RebillInitAmt"},
	{Name: "RebillInitDate"},
	{Name: "RebillRecurAmt"},
	{Name: "RebillStartDate"},
	{Name: "RebillInterval"},
	{Name: "RebillIntervalType"},
	{Name: "RebillEndDate"},
}

var requiredRebillEvent = []string{
	"RebillCustomerID",
	"RebillCCName",
	"RebillCCNumber",
	"RebillCCExpMonth",
	"RebillCCExpYear",
	"RebillInitAmt",
	"RebillInitDate",
	"RebillRecurAmt",
	"RebillStartDate",
	"RebillInterval",
	"RebillIntervalType",
	"RebillEndDate",
}

var createRebillEventSchema = Schema{
	Operation: "CreateRebillEvent",
	Defaults:  rebillEventDefaults[1:],
	Required:  requiredRebillEvent,
}

var updateRebillEventSchema = Schema{
	Operation: "UpdateRebillEvent",
	Defaults:  rebillEventDefaults,
	Required:  append(append([]string{}, requiredRebillEvent...), "RebillID"),
}
