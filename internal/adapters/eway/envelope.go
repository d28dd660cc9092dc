package eway

import (
	"strings"
)

// Envelope is one validated, wire-ordered request ready for serialization.
// Field values have already passed schema validation; they are escaped at
// serialization time, so free-text input (names, addresses) cannot break
// out of its element.
type Envelope struct {
	Operation string
	Namespace string // empty for the flat-XML family
	Fields    []Field
}

const soapEnvelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"

// soapHeader carries the merchant identity on every SOAP call. The managed
// payment and rebill services both use the eWAYHeader element in the
// operation namespace.
type soapHeader struct {
	CustomerID string
	Username   string
	Password   string
}

// FlatXML serializes the envelope for the flat-XML family: a single root
// element with one child text element per field, no attributes, no nesting.
func (e *Envelope) FlatXML() string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\"?>\n")
	b.WriteByte('<')
	b.WriteString(e.Operation)
	b.WriteByte('>')
	writeFields(&b, e.Fields)
	b.WriteString("</")
	b.WriteString(e.Operation)
	b.WriteByte('>')
	return b.String()
}

// SOAP serializes the envelope as a SOAP 1.1 request with the credential
// header. The body root is the operation element in the family namespace;
// children follow schema order.
func (e *Envelope) SOAP(h soapHeader) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>`)
	b.WriteString(`<soap:Envelope xmlns:soap="` + soapEnvelopeNS + `">`)

	b.WriteString(`<soap:Header><eWAYHeader xmlns="` + e.Namespace + `">`)
	writeElement(&b, "eWAYCustomerID", h.CustomerID)
	writeElement(&b, "Username", h.Username)
	writeElement(&b, "Password", h.Password)
	b.WriteString(`</eWAYHeader></soap:Header>`)

	b.WriteString(`<soap:Body>`)
	b.WriteString(`<` + e.Operation + ` xmlns="` + e.Namespace + `">`)
	writeFields(&b, e.Fields)
	b.WriteString(`</` + e.Operation + `>`)
	b.WriteString(`</soap:Body></soap:Envelope>`)
	return b.String()
}

// SOAPAction returns the SOAPAction header value for this operation.
func (e *Envelope) SOAPAction() string {
	return e.Namespace + "/" + e.Operation
}

func writeFields(b *strings.Builder, fields []Field) {
	for _, f := range fields {
		writeElement(b, f.Name, f.Value)
	}
}

func writeElement(b *strings.Builder, name, value string) {
	b.WriteByte('<')
	b.WriteString(name)
	b.WriteByte('>')
	b.WriteString(escapeXML(value))
	b.WriteString("</")
	b.WriteString(name)
	b.WriteByte('>')
}

// escapeXML escapes element text. Covers the five XML metacharacters;
// several gateway fields carry free-text user input.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
