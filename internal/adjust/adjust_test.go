package adjust

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/nicsoto/ArriendoFacil/internal/indicator"
)

func mkDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ipcSeries() indicator.Series {
	// Newest first, like the API publishes it.
	return indicator.Series{
		{Date: mkDate(2024, 6, 1), Value: 0.1},
		{Date: mkDate(2024, 5, 1), Value: 0.3},
		{Date: mkDate(2024, 4, 1), Value: 0.5},
		{Date: mkDate(2024, 3, 1), Value: 0.4},
		{Date: mkDate(2024, 1, 1), Value: 0.2},
	}
}

func TestCompoundIPCSingleMonth(t *testing.T) {
	res, err := CompoundIPC(ipcSeries(), 500000, mkDate(2024, 4, 15), mkDate(2024, 4, 20))
	if err != nil {
		t.Fatalf("compound: %v", err)
	}
	if res.MonthsUsed != 1 {
		t.Fatalf("months used = %d, want 1", res.MonthsUsed)
	}
	if res.NewAmount != 502500 {
		t.Fatalf("new amount = %v, want 502500", res.NewAmount)
	}
	if res.Variation != 0.5 {
		t.Fatalf("variation = %v, want 0.5", res.Variation)
	}
}

func TestCompoundIPCAccumulatesVariations(t *testing.T) {
	// Months 2024-03..2024-06: 0.4, 0.5, 0.3, 0.1 compound multiplicatively.
	res, err := CompoundIPC(ipcSeries(), 450000, mkDate(2024, 3, 1), mkDate(2024, 6, 30))
	if err != nil {
		t.Fatalf("compound: %v", err)
	}
	if res.MonthsUsed != 4 {
		t.Fatalf("months used = %d, want 4", res.MonthsUsed)
	}
	factor := 1.004 * 1.005 * 1.003 * 1.001
	want := math.Round(450000 * factor)
	if res.NewAmount != want {
		t.Fatalf("new amount = %v, want %v", res.NewAmount, want)
	}
	wantVar := math.Round((factor-1)*100*100) / 100
	if res.Variation != wantVar {
		t.Fatalf("variation = %v, want %v", res.Variation, wantVar)
	}
	if !res.FirstDate.Equal(mkDate(2024, 3, 1)) || !res.LastDate.Equal(mkDate(2024, 6, 1)) {
		t.Fatalf("range = %v..%v", res.FirstDate, res.LastDate)
	}
	// A sum of the variations would give a different figure; make sure we do
	// not regress to that.
	additive := math.Round(450000 * (1 + (0.4+0.5+0.3+0.1)/100))
	if res.NewAmount == additive && want != additive {
		t.Fatalf("compounded additively")
	}
}

func TestCompoundIPCIsDeterministic(t *testing.T) {
	first, err := CompoundIPC(ipcSeries(), 450000, mkDate(2024, 3, 1), mkDate(2024, 6, 1))
	if err != nil {
		t.Fatalf("compound: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := CompoundIPC(ipcSeries(), 450000, mkDate(2024, 3, 1), mkDate(2024, 6, 1))
		if err != nil {
			t.Fatalf("compound: %v", err)
		}
		if again != first {
			t.Fatalf("run %d differs: %+v vs %+v", i, again, first)
		}
	}
}

func TestCompoundIPCRangeNotCovered(t *testing.T) {
	_, err := CompoundIPC(ipcSeries(), 450000, mkDate(2020, 1, 1), mkDate(2020, 6, 1))
	if !errors.Is(err, ErrRangeNotCovered) {
		t.Fatalf("err = %v, want ErrRangeNotCovered", err)
	}
	var rangeErr *RangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("err is not a *RangeError: %v", err)
	}
	if !rangeErr.Min.Equal(mkDate(2024, 1, 1)) || !rangeErr.Max.Equal(mkDate(2024, 6, 1)) {
		t.Fatalf("bounds = %v..%v", rangeErr.Min, rangeErr.Max)
	}
}

func TestResolveMonthlyPrefersExactMonth(t *testing.T) {
	// 2024-03 is present, so its own value wins over any prior month.
	v, ok := ResolveMonthly(ipcSeries(), mkDate(2024, 3, 10))
	if !ok {
		t.Fatalf("expected a value")
	}
	if v != 0.4 {
		t.Fatalf("value = %v, want 0.4 (2024-03)", v)
	}
}

func TestResolveMonthlyFallsBackToNearestPrior(t *testing.T) {
	// 2024-02 is missing from the series; the nearest prior month is 2024-01.
	v, ok := ResolveMonthly(ipcSeries(), mkDate(2024, 2, 10))
	if !ok {
		t.Fatalf("expected a value")
	}
	if v != 0.2 {
		t.Fatalf("value = %v, want 0.2 (2024-01)", v)
	}
}

func TestResolveMonthlyBeforeSeries(t *testing.T) {
	if _, ok := ResolveMonthly(ipcSeries(), mkDate(2023, 6, 1)); ok {
		t.Fatalf("expected no value before the series start")
	}
}

func ufSeries() indicator.Series {
	return indicator.Series{
		{Date: mkDate(2025, 3, 2), Value: 38650.12},
		{Date: mkDate(2025, 3, 1), Value: 38642.78},
	}
}

func TestConvertUF(t *testing.T) {
	res, err := ConvertUF(ufSeries(), 16.5, mkDate(2025, 3, 1))
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := math.Round(16.5 * 38642.78)
	if res.CLPAmount != want {
		t.Fatalf("clp = %v, want %v", res.CLPAmount, want)
	}
	if res.UFValue != 38642.78 {
		t.Fatalf("uf value = %v", res.UFValue)
	}
}

func TestConvertUFMissingDate(t *testing.T) {
	// UF is daily with no fallback.
	if _, err := ConvertUF(ufSeries(), 16.5, mkDate(2025, 3, 3)); !errors.Is(err, ErrValueNotFound) {
		t.Fatalf("err = %v, want ErrValueNotFound", err)
	}
}

func TestConvertCLPToUF(t *testing.T) {
	res, err := ConvertCLPToUF(ufSeries(), 650000, mkDate(2025, 3, 2))
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := math.Round(650000/38650.12*100) / 100
	if res.UFAmount != want {
		t.Fatalf("uf = %v, want %v", res.UFAmount, want)
	}
	if res.CLPAmount != 650000 {
		t.Fatalf("clp = %v", res.CLPAmount)
	}
}
