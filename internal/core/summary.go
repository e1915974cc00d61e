package core

import (
	"context"
	"time"

	"github.com/inovacc/consultas/internal/model"
	"github.com/shopspring/decimal"
)

// MonthLister is the part of the store MonthSummary needs.
type MonthLister interface {
	ListForMonth(ctx context.Context, ref time.Time) ([]model.Appointment, error)
}

// FrequencyTotal aggregates the appointments of one frequency.
type FrequencyTotal struct {
	Frequency model.Frequency
	Count     int
	Total     decimal.Decimal
}

// Summary aggregates the appointments of one calendar month.
type Summary struct {
	Year         int
	Month        time.Month
	Count        int
	Total        decimal.Decimal
	ByFrequency  []FrequencyTotal
	Appointments []model.Appointment
}

// MonthSummary totals the appointments dated in ref's month.
func MonthSummary(ctx context.Context, st MonthLister, ref time.Time) (*Summary, error) {
	list, err := st.ListForMonth(ctx, ref)
	if err != nil {
		return nil, err
	}

	s := &Summary{
		Year:         ref.Year(),
		Month:        ref.Month(),
		Count:        len(list),
		Total:        decimal.Zero,
		Appointments: list,
	}

	byFreq := make(map[model.Frequency]*FrequencyTotal)
	for _, f := range model.Frequencies() {
		ft := &FrequencyTotal{Frequency: f, Total: decimal.Zero}
		byFreq[f] = ft
	}

	for _, a := range list {
		s.Total = s.Total.Add(a.Amount.Decimal)

		if ft, ok := byFreq[a.Frequency]; ok {
			ft.Count++
			ft.Total = ft.Total.Add(a.Amount.Decimal)
		}
	}

	for _, f := range model.Frequencies() {
		s.ByFrequency = append(s.ByFrequency, *byFreq[f])
	}

	return s, nil
}
