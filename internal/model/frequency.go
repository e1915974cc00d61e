package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFrequency is returned when a frequency tag is not recognised.
var ErrUnknownFrequency = errors.New("unknown frequency")

// Frequency is the recurrence of an appointment.
type Frequency int

const (
	FrequencyMonthly Frequency = iota
	FrequencyBiweekly
)

// Persisted tags. The stored collection uses the Portuguese names.
const (
	wireMonthly  = "mensal"
	wireBiweekly = "quinzenal"
)

var frequencyNames = map[Frequency]string{
	FrequencyMonthly:  wireMonthly,
	FrequencyBiweekly: wireBiweekly,
}

// Frequencies returns every frequency in display order.
func Frequencies() []Frequency {
	return []Frequency{FrequencyMonthly, FrequencyBiweekly}
}

// ParseFrequency accepts the persisted tag or the English name, case-insensitively.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case wireMonthly, "monthly":
		return FrequencyMonthly, nil
	case wireBiweekly, "biweekly":
		return FrequencyBiweekly, nil
	default:
		return FrequencyMonthly, fmt.Errorf("%w: %q", ErrUnknownFrequency, s)
	}
}

// String returns the persisted tag.
func (f Frequency) String() string {
	if name, ok := frequencyNames[f]; ok {
		return name
	}

	return fmt.Sprintf("Frequency(%d)", int(f))
}

// Label returns the capitalised tag shown in the UI.
func (f Frequency) Label() string {
	switch f {
	case FrequencyMonthly:
		return "Mensal"
	case FrequencyBiweekly:
		return "Quinzenal"
	default:
		return f.String()
	}
}

// Next cycles to the following frequency, wrapping around.
func (f Frequency) Next() Frequency {
	all := Frequencies()
	for i, v := range all {
		if v == f {
			return all[(i+1)%len(all)]
		}
	}

	return FrequencyMonthly
}

func (f Frequency) MarshalJSON() ([]byte, error) {
	name, ok := frequencyNames[f]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFrequency, int(f))
	}

	return json.Marshal(name)
}

// UnmarshalJSON reads a persisted tag. Unknown tags and non-string values
// read as FrequencyMonthly, the form's default.
func (f *Frequency) UnmarshalJSON(data []byte) error {
	*f = FrequencyMonthly

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}

	if v, err := ParseFrequency(s); err == nil {
		*f = v
	}

	return nil
}

// Set implements pflag.Value so commands can take --frequency directly.
func (f *Frequency) Set(s string) error {
	v, err := ParseFrequency(s)
	if err != nil {
		return err
	}

	*f = v

	return nil
}

// Type implements pflag.Value.
func (f *Frequency) Type() string {
	return "frequency"
}
