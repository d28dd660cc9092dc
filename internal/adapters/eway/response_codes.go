package eway

import (
	"regexp"

	"github.com/kevin07696/eway-gateway/internal/domain/models"
)

// Approved bank response codes. Approval is decided solely by membership in
// this set; the ewayTrxnStatus boolean the gateway also returns is recorded
// in the payload but never consulted (the two can disagree for unmapped
// codes -- the gateway has always behaved this way and callers depend on it).
// https://www.eway.com.au/Developer/payment-code/transaction-results-response-codes.aspx
var approvedCodes = map[string]bool{
	"00": true, // Transaction Approved
	"08": true, // Honour with Identification
	"10": true, // Approved for Partial Amount
	"11": true, // Approved, VIP
	"16": true, // Approved, Update Track 3
}

// IsApprovedCode reports whether code is in the gateway's approved set.
func IsApprovedCode(code string) bool {
	return approvedCodes[code]
}

// ResponseCodeInfo describes a bank response code for display purposes.
type ResponseCodeInfo struct {
	Code        string
	Display     string
	Description string
	IsApproved  bool
}

// Common bank response codes. Not exhaustive; unknown codes fall back to a
// generic declined entry.
var bankResponseCodes = map[string]ResponseCodeInfo{
	"00": {Code: "00", Display: "APPROVED", Description: "Transaction approved", IsApproved: true},
	"01": {Code: "01", Display: "REFER TO ISSUER", Description: "Refer to card issuer"},
	"04": {Code: "04", Display: "PICK UP CARD", Description: "Pick up card"},
	"05": {Code: "05", Display: "DO NOT HONOUR", Description: "Do not honour"},
	"08": {Code: "08", Display: "HONOUR WITH ID", Description: "Honour with identification", IsApproved: true},
	"10": {Code: "10", Display: "PARTIAL APPROVAL", Description: "Approved for partial amount", IsApproved: true},
	"11": {Code: "11", Display: "APPROVED VIP", Description: "Approved, VIP", IsApproved: true},
	"12": {Code: "12", Display: "INVALID TRANSACTION", Description: "Invalid transaction"},
	"14": {Code: "14", Display: "INVALID CARD NUMBER", Description: "Invalid card number"},
	"16": {Code: "16", Display: "APPROVED TRACK 3", Description: "Approved, update track 3", IsApproved: true},
	"42": {Code: "42", Display: "NO UNIVERSAL ACCOUNT", Description: "No universal account"},
	"51": {Code: "51", Display: "INSUFFICIENT FUNDS", Description: "Insufficient funds"},
	"54": {Code: "54", Display: "EXPIRED CARD", Description: "Expired card"},
	"61": {Code: "61", Display: "OVER LIMIT", Description: "Exceeds withdrawal limit"},
	"91": {Code: "91", Display: "ISSUER UNAVAILABLE", Description: "Card issuer unavailable"},
}

// GetResponseCodeInfo returns display information for a bank response code.
func GetResponseCodeInfo(code string) ResponseCodeInfo {
	if info, ok := bankResponseCodes[code]; ok {
		return info
	}
	return ResponseCodeInfo{
		Code:        code,
		Display:     "DECLINED",
		Description: "Transaction declined",
	}
}

// faultMapping synthesizes a domain code from SOAP fault text. The managed
// payment service reports some input errors only as faults, with no
// structured error-code element; matching the wording is the only bridge
// into the unified code space. Extending coverage means adding a row here,
// not touching the parser.
type faultMapping struct {
	pattern *regexp.Regexp
	code    string
	// message replaces the fault text when non-empty.
	message string
}

var faultMappings = []faultMapping{
	{pattern: regexp.MustCompile(`(?i)Invalid managedCustomerID`), code: models.CodeDataError},
	{pattern: regexp.MustCompile(`(?i)Credit Card expiry date must be valid`), code: "54"},
	{pattern: regexp.MustCompile(`(?i)The 'CCNumber' element is invalid`), code: "14", message: "Credit Card number must be valid"},
}

// classifyFault maps SOAP fault text to a domain code and message.
// Unrecognized wording returns ok false; the caller degrades to an
// unclassified gateway error carrying the raw fault text.
func classifyFault(fault string) (code, message string, ok bool) {
	for _, m := range faultMappings {
		if m.pattern.MatchString(fault) {
			msg := m.message
			if msg == "" {
				msg = fault
			}
			return m.code, msg, true
		}
	}
	return "", "", false
}
