package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nicsoto/ArriendoFacil/internal/adjust"
	"github.com/nicsoto/ArriendoFacil/internal/httpx"
	"github.com/nicsoto/ArriendoFacil/internal/indicator"
	"github.com/nicsoto/ArriendoFacil/internal/store"
)

type CalculatorHandler struct {
	Engine *adjust.Engine
	Store  *store.Store
}

func NewCalculatorHandler(engine *adjust.Engine, st *store.Store) *CalculatorHandler {
	return &CalculatorHandler{Engine: engine, Store: st}
}

// writeAdjustError maps calculation errors onto the API surface. Range errors
// carry the available bounds so the client can tell the user which months
// exist.
func writeAdjustError(w http.ResponseWriter, err error) {
	var rangeErr *adjust.RangeError
	switch {
	case errors.As(err, &rangeErr):
		httpx.JSONError(w, http.StatusUnprocessableEntity, "range_not_covered", map[string]string{
			"min": rangeErr.Min.Format("2006-01"),
			"max": rangeErr.Max.Format("2006-01"),
		})
	case errors.Is(err, adjust.ErrValueNotFound):
		httpx.JSONError(w, http.StatusNotFound, "value_not_found", nil)
	case errors.Is(err, indicator.ErrFetchFailed):
		httpx.JSONError(w, http.StatusBadGateway, "fetch_failed", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "calculation_failed", nil)
	}
}

// IPC: POST /calculator/ipc; compound the monthly IPC variations between two
// dates over a principal.
func (h *CalculatorHandler) IPC(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount    float64 `json:"amount"`
		StartDate string  `json:"startDate"`
		EndDate   string  `json:"endDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	problems := map[string]string{}
	if req.Amount <= 0 {
		problems["amount"] = "must be positive"
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		problems["startDate"] = "expected YYYY-MM-DD"
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		problems["endDate"] = "expected YYYY-MM-DD"
	}
	if len(problems) == 0 && !start.Before(end) {
		problems["endDate"] = "must be after startDate"
	}
	if len(problems) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", problems)
		return
	}
	res, err := h.Engine.IPCAdjustment(r.Context(), req.Amount, start, end)
	if err != nil {
		writeAdjustError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

// UF: POST /calculator/uf; convert a UF amount to CLP at a date.
func (h *CalculatorHandler) UF(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UFAmount float64 `json:"ufAmount"`
		Date     string  `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.UFAmount <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"ufAmount": "must be positive"})
		return
	}
	date := today()
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"date": "expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}
	res, err := h.Engine.UFConversion(r.Context(), req.UFAmount, date)
	if err != nil {
		writeAdjustError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

// CLPToUF: POST /calculator/clp-to-uf; express a CLP amount in UF at a date.
func (h *CalculatorHandler) CLPToUF(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CLPAmount float64 `json:"clpAmount"`
		Date      string  `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.CLPAmount <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"clpAmount": "must be positive"})
		return
	}
	date := today()
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"date": "expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}
	res, err := h.Engine.CLPToUF(r.Context(), req.CLPAmount, date)
	if err != nil {
		writeAdjustError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

// CurrentUF: GET /calculator/uf/current; the latest published UF value.
func (h *CalculatorHandler) CurrentUF(w http.ResponseWriter, r *http.Request) {
	point, err := h.Engine.CurrentUF(r.Context())
	if err != nil {
		writeAdjustError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, point)
}

// NextAdjustment: GET /calculator/next-adjustment?contract_id= returns the
// adjustment due at the contract's first anniversary.
func (h *CalculatorHandler) NextAdjustment(w http.ResponseWriter, r *http.Request) {
	cid := r.URL.Query().Get("contract_id")
	if cid == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"contract_id": "required"})
		return
	}
	c, err := h.Store.GetContract(cid)
	if err != nil {
		writeStoreError(w, err, "failed_to_get_contract")
		return
	}
	res, err := h.Engine.NextAdjustment(r.Context(), c)
	if err != nil {
		writeAdjustError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}
