package eway

import (
	"bytes"
	"encoding/xml"
	"io"
	"regexp"
	"strings"

	"github.com/kevin07696/eway-gateway/internal/domain/models"
)

// flatResponse is the flat-XML family response body.
type flatResponse struct {
	XMLName       xml.Name `xml:"ewayResponse"`
	TrxnStatus    string   `xml:"ewayTrxnStatus"`
	TrxnNumber    string   `xml:"ewayTrxnNumber"`
	TrxnReference string   `xml:"ewayTrxnReference"`
	AuthCode      string   `xml:"ewayAuthCode"`
	TrxnError     string   `xml:"ewayTrxnError"`
	ReturnAmount  string   `xml:"ewayReturnAmount"`
	Option1       string   `xml:"ewayTrxnOption1"`
	Option2       string   `xml:"ewayTrxnOption2"`
	Option3       string   `xml:"ewayTrxnOption3"`
}

var (
	numericRe   = regexp.MustCompile(`^[0-9]+$`)
	errPrefixRe = regexp.MustCompile(`(?i)^eWAY Error:\s*`)
)

// splitTrxnError splits the gateway's "<code>,<message>" error field.
// The field is misleadingly named: approvals come through it too
// ("00,Transaction Approved"). When the left part is not numeric the whole
// string is the message and the code is empty.
func splitTrxnError(s string) (code, message string) {
	parts := strings.SplitN(s, ",", 2)
	if numericRe.MatchString(parts[0]) {
		code = parts[0]
		if len(parts) > 1 {
			message = parts[1]
		}
	} else {
		message = s
	}
	message = errPrefixRe.ReplaceAllString(message, "")
	return code, message
}

func statusForCode(code string) models.Status {
	if IsApprovedCode(code) {
		return models.StatusApproved
	}
	return models.StatusDeclined
}

// parseFlatResponse interprets a flat-XML family body. A body that is not
// XML at all is an unclassified gateway error.
func parseFlatResponse(raw []byte) *models.Result {
	var resp flatResponse
	if err := xml.Unmarshal(raw, &resp); err != nil {
		return &models.Result{
			Status:          models.StatusGatewayError,
			ResponseCode:    models.CodeGatewayError,
			ResponseMessage: "eWay returned an unparsable response.",
			Payload:         map[string]string{models.PayloadNetworkError: err.Error()},
			Raw:             raw,
		}
	}

	code, message := splitTrxnError(resp.TrxnError)

	payload := map[string]string{
		models.PayloadTransactionID:       resp.TrxnNumber,
		models.PayloadBankAuthorisationID: resp.AuthCode,
		models.PayloadTrxnStatus:          resp.TrxnStatus,
	}
	if resp.TrxnReference != "" {
		payload[models.PayloadTrxnReference] = resp.TrxnReference
	}
	if resp.ReturnAmount != "" {
		payload[models.PayloadAmount] = resp.ReturnAmount
	}
	if resp.Option1 != "" {
		payload["option1"] = resp.Option1
	}
	if resp.Option2 != "" {
		payload["option2"] = resp.Option2
	}
	if resp.Option3 != "" {
		payload["option3"] = resp.Option3
	}

	return &models.Result{
		Status:          statusForCode(code),
		ResponseCode:    code,
		ResponseMessage: message,
		Payload:         payload,
		Raw:             raw,
	}
}

// soapLeaves flattens a SOAP body into a map of leaf element local names to
// their text. Namespaces are ignored: the operation namespace and the SOAP
// envelope namespace never collide on the element names we read, and the
// fault elements (faultstring) are unqualified. Later occurrences win,
// which matches reading "the" value of a uniquely-named element.
func soapLeaves(raw []byte) (map[string]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))

	type frame struct {
		name     string
		hasChild bool
		text     strings.Builder
	}

	leaves := make(map[string]string)
	var stack []*frame

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if n := len(stack); n > 0 {
				stack[n-1].hasChild = true
			}
			stack = append(stack, &frame{name: t.Name.Local})
		case xml.CharData:
			if n := len(stack); n > 0 {
				stack[n-1].text.Write(t)
			}
		case xml.EndElement:
			n := len(stack)
			if n == 0 {
				continue
			}
			top := stack[n-1]
			stack = stack[:n-1]
			if !top.hasChild {
				leaves[top.name] = strings.TrimSpace(top.text.String())
			}
		}
	}

	return leaves, nil
}

// soapChildMaps returns, for each direct child element of the first element
// named parent, a map of that child's leaf element names to text. Used for
// list-shaped results (QueryTransactionsResult holds one child element per
// transaction).
func soapChildMaps(raw []byte, parent string) ([]map[string]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))

	var (
		results  []map[string]string
		current  map[string]string
		depth    int // depth relative to parent; 0 = outside
		leafName string
		text     strings.Builder
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case depth == 0:
				if t.Name.Local == parent {
					depth = 1
				}
			case depth == 1:
				current = make(map[string]string)
				depth = 2
			default:
				leafName = t.Name.Local
				text.Reset()
				depth++
			}
		case xml.CharData:
			if depth >= 3 {
				text.Write(t)
			}
		case xml.EndElement:
			switch {
			case depth == 1:
				if t.Name.Local == parent {
					return results, nil
				}
			case depth == 2:
				results = append(results, current)
				current = nil
				depth = 1
			case depth >= 3:
				if depth == 3 && leafName != "" {
					current[leafName] = strings.TrimSpace(text.String())
					leafName = ""
				}
				depth--
			}
		}
	}

	return results, nil
}

// parseManagedPaymentResponse interprets a managed-payment SOAP body that
// carries transaction fields (ProcessPayment, ProcessPaymentWithCVN, and
// the failure paths of the customer lifecycle calls).
//
// When the structured ewayTrxnError field yields no code, the body is
// treated as a SOAP fault and the faultstring is matched against the known
// wordings; unmatched faults degrade to an unclassified gateway error with
// the raw fault text as the message.
func parseManagedPaymentResponse(raw []byte) *models.Result {
	leaves, err := soapLeaves(raw)
	if err != nil {
		return unparsableSOAPResult(raw, err)
	}

	code, message := splitTrxnError(leaves["ewayTrxnError"])

	if code == "" {
		fault := leaves["faultstring"]
		if mappedCode, mappedMessage, ok := classifyFault(fault); ok {
			status := models.StatusDeclined
			if mappedCode == models.CodeDataError {
				status = models.StatusDataError
			}
			return &models.Result{
				Status:          status,
				ResponseCode:    mappedCode,
				ResponseMessage: mappedMessage,
				Payload:         map[string]string{models.PayloadFaultString: fault},
				Raw:             raw,
			}
		}

		msg := fault
		if msg == "" {
			msg = message
		}
		if msg == "" {
			msg = "There was an error connecting to eWay."
		}
		return &models.Result{
			Status:          models.StatusGatewayError,
			ResponseCode:    models.CodeGatewayError,
			ResponseMessage: msg,
			Payload:         map[string]string{models.PayloadFaultString: fault},
			Raw:             raw,
		}
	}

	payload := map[string]string{
		models.PayloadTransactionID:       leaves["ewayTrxnNumber"],
		models.PayloadBankAuthorisationID: leaves["ewayAuthCode"],
	}
	if v := leaves["ewayReturnAmount"]; v != "" {
		payload[models.PayloadAmount] = v
	}
	if v := leaves["ewayTrxnStatus"]; v != "" {
		payload[models.PayloadTrxnStatus] = v
	}

	return &models.Result{
		Status:          statusForCode(code),
		ResponseCode:    code,
		ResponseMessage: message,
		Payload:         payload,
		Raw:             raw,
	}
}

// parseRebillResponse interprets a rebill SOAP body. The rebill service has
// no bank code space: a single Result element reads "Success" or "Fail",
// with ErrorDetails on failure.
func parseRebillResponse(raw []byte) *models.Result {
	leaves, err := soapLeaves(raw)
	if err != nil {
		return unparsableSOAPResult(raw, err)
	}

	if leaves["Result"] == "Success" {
		payload := map[string]string{}
		if v := leaves["RebillCustomerID"]; v != "" {
			payload[models.PayloadRebillCustomerID] = v
		}
		if v := leaves["RebillID"]; v != "" {
			payload[models.PayloadRebillID] = v
		}
		return &models.Result{
			Status:  models.StatusSuccess,
			Payload: payload,
			Raw:     raw,
		}
	}

	message := leaves["ErrorDetails"]
	if message == "" {
		message = leaves["faultstring"]
	}
	return &models.Result{
		Status:          models.StatusFail,
		ResponseCode:    models.CodeGatewayError,
		ResponseMessage: message,
		Raw:             raw,
	}
}

// rebillBookkeepingElements are carried on every rebill query result and
// are not part of the queried record.
var rebillBookkeepingElements = map[string]bool{
	"Result":        true,
	"ErrorSeverity": true,
	"ErrorDetails":  true,
}

func unparsableSOAPResult(raw []byte, err error) *models.Result {
	return &models.Result{
		Status:          models.StatusGatewayError,
		ResponseCode:    models.CodeGatewayError,
		ResponseMessage: "eWay returned an unparsable response.",
		Payload:         map[string]string{models.PayloadNetworkError: err.Error()},
		Raw:             raw,
	}
}
