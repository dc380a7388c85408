// Package indicator fetches economic indicator series (IPC monthly variations
// and daily UF values) from a mindicador.cl style API.
package indicator

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrFetchFailed marks any transport or non-success response from the
// indicator API. Callers match it with errors.Is.
var ErrFetchFailed = errors.New("indicator fetch failed")

// Point is one observation of an indicator series: a monthly percentage
// variation for IPC, or a daily CLP value for UF.
type Point struct {
	Date  time.Time `json:"fecha"`
	Value float64   `json:"valor"`
}

// Series is a set of indicator points. The API returns them newest first;
// consumers that need chronological order sort explicitly.
type Series []Point

// MinMaxDates returns the earliest and latest observation dates in the series.
func (s Series) MinMaxDates() (min, max time.Time) {
	for i, p := range s {
		if i == 0 || p.Date.Before(min) {
			min = p.Date
		}
		if i == 0 || p.Date.After(max) {
			max = p.Date
		}
	}
	return min, max
}

// Source supplies the two indicator series. Implemented by Client and by
// test fakes.
type Source interface {
	FetchIPC(ctx context.Context) (Series, error)
	FetchUF(ctx context.Context) (Series, error)
}

// FetchError carries which indicator failed and the HTTP status if one was
// received. It matches ErrFetchFailed under errors.Is.
type FetchError struct {
	Indicator string
	Status    int
	Err       error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.Indicator, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.Indicator, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }
