package model

import (
	"encoding/json"
	"time"
)

// Appointment is one scheduled patient visit.
//
// JSON field names follow the persisted collection format, so a stored
// record reads {"id", "paciente", "date", "valor", "tipo"}.
type Appointment struct {
	// ID is assigned once at creation time and never reassigned
	ID string `json:"id"`

	// PatientName is free text and may be empty
	PatientName string `json:"paciente"`

	// Date is kept verbatim as entered; see ParseDate for the accepted layouts
	Date string `json:"date"`

	// Amount is the monetary value of the visit
	Amount Amount `json:"valor"`

	// Frequency is the recurrence of the visit
	Frequency Frequency `json:"tipo"`
}

// Time parses Date in loc. Zoned dates are converted to loc.
func (a Appointment) Time(loc *time.Location) (time.Time, error) {
	return ParseDate(a.Date, loc)
}

// InMonth reports whether the appointment date falls in the same calendar
// month and year as ref, evaluated in ref's location. Unparsable dates
// never match.
func (a Appointment) InMonth(ref time.Time) bool {
	t, err := a.Time(ref.Location())
	if err != nil {
		return false
	}

	return t.Year() == ref.Year() && t.Month() == ref.Month()
}

// UnmarshalJSON decodes one stored record field by field. Only a value that
// is neither an object nor null is an error. Text fields also accept bare
// numbers, and odd amounts or tags fall back to their zero values.
func (a *Appointment) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if raw == nil {
		return nil
	}

	*a = Appointment{
		ID:          looseString(raw["id"]),
		PatientName: looseString(raw["paciente"]),
		Date:        looseString(raw["date"]),
	}

	if v, ok := raw["valor"]; ok {
		_ = a.Amount.UnmarshalJSON(v)
	}

	if v, ok := raw["tipo"]; ok {
		_ = a.Frequency.UnmarshalJSON(v)
	}

	return nil
}

func looseString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}

	var n json.Number
	if json.Unmarshal(raw, &n) == nil {
		return n.String()
	}

	return ""
}
