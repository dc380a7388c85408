// Package adjust computes rent adjustments from IPC and UF indicator series.
//
// The IPC series published by the API carries monthly percentage variations,
// not index levels. The official INE convention accumulates the successive
// monthly variations between two dates, so the adjustment factor is the
// product of (1 + v/100) over every month in the range. Dividing two index
// levels would give a different (wrong) figure.
package adjust

import (
	"math"
	"sort"
	"time"

	"github.com/nicsoto/ArriendoFacil/internal/indicator"
)

// IPCResult describes a compounded IPC adjustment.
type IPCResult struct {
	OriginalAmount float64   `json:"originalAmount"`
	NewAmount      float64   `json:"newAmount"` // rounded to whole CLP
	Variation      float64   `json:"variation"` // accumulated percent, 2 decimals
	MonthsUsed     int       `json:"monthsCount"`
	FirstValue     float64   `json:"ipcStart"` // variation of the first month used
	LastValue      float64   `json:"ipcEnd"`   // variation of the last month used
	FirstDate      time.Time `json:"startDate"`
	LastDate       time.Time `json:"endDate"`
}

// UFResult describes a UF-to-CLP conversion at a date.
type UFResult struct {
	UFAmount  float64   `json:"ufAmount"`
	UFValue   float64   `json:"ufValue"`
	CLPAmount float64   `json:"clpAmount"` // rounded to whole CLP
	Date      time.Time `json:"date"`
}

func monthIndex(t time.Time) int { return t.Year()*12 + int(t.Month()) }

// ResolveMonthly finds the series value for the year and month of date; the
// day is ignored because IPC is published monthly. If the month is absent it
// falls back to the nearest prior month in the series. The second return is
// false when no point at or before the date exists.
func ResolveMonthly(s indicator.Series, date time.Time) (float64, bool) {
	target := monthIndex(date)
	for _, p := range s {
		if monthIndex(p.Date) == target {
			return p.Value, true
		}
	}
	found := false
	var best indicator.Point
	for _, p := range s {
		if monthIndex(p.Date) > target {
			continue
		}
		if !found || p.Date.After(best.Date) {
			best = p
			found = true
		}
	}
	if !found {
		return 0, false
	}
	return best.Value, true
}

// ResolveDaily finds the series value for the exact calendar date. UF is
// published daily, so there is no fallback.
func ResolveDaily(s indicator.Series, date time.Time) (float64, bool) {
	y, m, d := date.Date()
	for _, p := range s {
		py, pm, pd := p.Date.Date()
		if py == y && pm == m && pd == d {
			return p.Value, true
		}
	}
	return 0, false
}

// CompoundIPC accumulates the monthly IPC variations between start and end
// (both months inclusive) and applies the compounded factor to principal.
func CompoundIPC(s indicator.Series, principal float64, start, end time.Time) (IPCResult, error) {
	lo, hi := monthIndex(start), monthIndex(end)
	selected := make([]indicator.Point, 0, len(s))
	for _, p := range s {
		if idx := monthIndex(p.Date); idx >= lo && idx <= hi {
			selected = append(selected, p)
		}
	}
	if len(selected) == 0 {
		min, max := s.MinMaxDates()
		return IPCResult{}, &RangeError{Min: min, Max: max}
	}
	sort.Slice(selected, func(i, j int) bool { return selected[i].Date.Before(selected[j].Date) })

	factor := 1.0
	for _, p := range selected {
		factor *= 1 + p.Value/100
	}
	first, last := selected[0], selected[len(selected)-1]
	return IPCResult{
		OriginalAmount: principal,
		NewAmount:      math.Round(principal * factor),
		Variation:      math.Round((factor-1)*100*100) / 100,
		MonthsUsed:     len(selected),
		FirstValue:     first.Value,
		LastValue:      last.Value,
		FirstDate:      first.Date,
		LastDate:       last.Date,
	}, nil
}

// ConvertUF converts an amount expressed in UF to CLP at the UF value of the
// given date.
func ConvertUF(s indicator.Series, ufAmount float64, date time.Time) (UFResult, error) {
	value, ok := ResolveDaily(s, date)
	if !ok {
		return UFResult{}, ErrValueNotFound
	}
	return UFResult{
		UFAmount:  ufAmount,
		UFValue:   value,
		CLPAmount: math.Round(ufAmount * value),
		Date:      date,
	}, nil
}

// ConvertCLPToUF expresses a CLP amount in UF at the given date's value.
func ConvertCLPToUF(s indicator.Series, clpAmount float64, date time.Time) (UFResult, error) {
	value, ok := ResolveDaily(s, date)
	if !ok {
		return UFResult{}, ErrValueNotFound
	}
	return UFResult{
		UFAmount:  math.Round(clpAmount/value*100) / 100,
		UFValue:   value,
		CLPAmount: clpAmount,
		Date:      date,
	}, nil
}
