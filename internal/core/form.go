package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inovacc/consultas/internal/model"
	"github.com/shopspring/decimal"
)

// Form holds the raw text of the create/edit form.
type Form struct {
	// ID is empty for a new appointment
	ID        string
	Patient   string
	Date      string
	Amount    string
	Frequency string
}

// NewID returns a fresh appointment id. UUIDv7 ids embed the creation
// timestamp and increase monotonically within a process.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// only fails when the random source does
		return uuid.NewString()
	}

	return id.String()
}

// FormFromAppointment pre-fills a form for editing.
func FormFromAppointment(a model.Appointment) Form {
	return Form{
		ID:        a.ID,
		Patient:   a.PatientName,
		Date:      a.Date,
		Amount:    a.Amount.String(),
		Frequency: a.Frequency.String(),
	}
}

// ParseAmount parses a non-negative amount, accepting "," as decimal separator.
func ParseAmount(s string) (model.Amount, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)

	if s == "" {
		return model.Amount{}, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}

	if strings.Contains(s, ",") {
		// 1.234,56 -> 1234.56
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return model.Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	if d.IsNegative() {
		return model.Amount{}, fmt.Errorf("%w: must not be negative", ErrInvalidAmount)
	}

	return model.NewAmount(d), nil
}

// BuildAppointment validates the form and returns the record to upsert.
// The date is validated in loc but stored exactly as typed.
func BuildAppointment(f Form, loc *time.Location) (model.Appointment, error) {
	date := strings.TrimSpace(f.Date)
	if _, err := model.ParseDate(date, loc); err != nil {
		return model.Appointment{}, &FieldError{Field: "date", Err: err}
	}

	amount, err := ParseAmount(f.Amount)
	if err != nil {
		return model.Appointment{}, &FieldError{Field: "amount", Err: err}
	}

	freq := model.FrequencyMonthly
	if strings.TrimSpace(f.Frequency) != "" {
		freq, err = model.ParseFrequency(f.Frequency)
		if err != nil {
			return model.Appointment{}, &FieldError{Field: "frequency", Err: err}
		}
	}

	id := f.ID
	if id == "" {
		id = NewID()
	}

	return model.Appointment{
		ID:          id,
		PatientName: strings.TrimSpace(f.Patient),
		Date:        date,
		Amount:      amount,
		Frequency:   freq,
	}, nil
}
