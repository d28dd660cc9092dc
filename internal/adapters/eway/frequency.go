package eway

import (
	"regexp"
	"strings"

	"github.com/araddon/dateparse"
)

// IntervalUnit is the rebill schedule unit, numbered the way the rebill
// service expects it on the wire.
type IntervalUnit int

const (
	IntervalDay   IntervalUnit = 1
	IntervalWeek  IntervalUnit = 2
	IntervalMonth IntervalUnit = 3
	IntervalYear  IntervalUnit = 4
)

// Frequency is a parsed schedule token: charge every Interval Units.
type Frequency struct {
	Interval int
	Unit     IntervalUnit
}

var frequencies = map[string]Frequency{
	"weekly":      {Interval: 1, Unit: IntervalWeek},
	"fortnightly": {Interval: 2, Unit: IntervalWeek},
	"monthly":     {Interval: 1, Unit: IntervalMonth},
	"yearly":      {Interval: 1, Unit: IntervalYear},
}

// ParseFrequency resolves a human schedule token. Only the four tokens
// above are valid; anything else, including "daily", is rejected.
func ParseFrequency(token string) (Frequency, bool) {
	f, ok := frequencies[strings.ToLower(strings.TrimSpace(token))]
	return f, ok
}

// DateTarget selects the wire format a parsed date is rendered in.
type DateTarget int

const (
	// DateTargetRebill renders dd/mm/yyyy, used by the rebill lifecycle
	// calls.
	DateTargetRebill DateTarget = iota
	// DateTargetQuery renders yyyy-mm-dd, used by the transaction query
	// calls.
	DateTargetQuery
)

// ordinalRe matches ordinal day suffixes ("5th", "1st") so that dates like
// "May 5th, 2013" parse.
var ordinalRe = regexp.MustCompile(`\b(\d{1,2})(st|nd|rd|th)\b`)

// ParseDate parses a free-form date ("2013-05-05", "May 5th, 2013",
// "05/05/2013") and renders it for the target wire format.
func ParseDate(text string, target DateTarget) (string, bool) {
	cleaned := ordinalRe.ReplaceAllString(strings.TrimSpace(text), "$1")
	if cleaned == "" {
		return "", false
	}
	t, err := dateparse.ParseAny(cleaned)
	if err != nil {
		return "", false
	}
	if target == DateTargetQuery {
		return t.Format("2006-01-02"), true
	}
	return t.Format("02/01/2006"), true
}
