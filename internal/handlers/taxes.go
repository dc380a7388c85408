package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/nicsoto/ArriendoFacil/internal/csvexport"
	"github.com/nicsoto/ArriendoFacil/internal/httpx"
	"github.com/nicsoto/ArriendoFacil/internal/taxes"
)

type TaxHandler struct {
	Calc *taxes.Calculator
}

func NewTaxHandler(calc *taxes.Calculator) *TaxHandler { return &TaxHandler{Calc: calc} }

// yearParam reads ?year=, defaulting to the current year.
func yearParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return time.Now().UTC().Year(), nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1900 || year > 2200 {
		return 0, fmt.Errorf("invalid year %q", raw)
	}
	return year, nil
}

// Summary: GET /taxes/summary?year=
func (h *TaxHandler) Summary(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"year": "expected a four-digit year"})
		return
	}
	summary, err := h.Calc.AnnualSummary(year)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_build_summary", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

// Breakdown: GET /taxes/breakdown?year= returns paid income per calendar month.
func (h *TaxHandler) Breakdown(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"year": "expected a four-digit year"})
		return
	}
	breakdown, err := h.Calc.MonthlyBreakdown(year)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_build_breakdown", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"year": year, "months": breakdown})
}

// Report: GET /taxes/report?year= builds the accountant report with expenses.
func (h *TaxHandler) Report(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"year": "expected a four-digit year"})
		return
	}
	report, err := h.Calc.AccountantReport(year)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_build_report", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

// ExportCSV: GET /taxes/export?year= downloads the annual summary as CSV.
func (h *TaxHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"year": "expected a four-digit year"})
		return
	}
	summary, err := h.Calc.AnnualSummary(year)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_build_summary", nil)
		return
	}
	content, err := csvexport.TaxSummary(summary)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_export_csv", nil)
		return
	}
	httpx.CSVAttachment(w, fmt.Sprintf("resumen-tributario-%d.csv", year), content)
}
