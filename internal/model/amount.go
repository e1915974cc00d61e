package model

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value. It is written to JSON as a bare number and
// read from either a number or a quoted string. Null, blank and
// unparsable values read as zero so one bad record cannot hide the rest.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps a decimal.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// AmountFromFloat is a convenience for tests and literals.
func AmountFromFloat(f float64) Amount {
	return Amount{Decimal: decimal.NewFromFloat(f)}
}

// Display renders the amount with two decimal places, e.g. "R$ 150.00".
func (a Amount) Display() string {
	return "R$ " + a.StringFixed(2)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	a.Decimal = decimal.Zero

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	text := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return nil
		}
	}

	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return nil
	}

	a.Decimal = d

	return nil
}
