package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/nicsoto/ArriendoFacil/internal/csvexport"
	"github.com/nicsoto/ArriendoFacil/internal/httpx"
	"github.com/nicsoto/ArriendoFacil/internal/models"
	"github.com/nicsoto/ArriendoFacil/internal/schedule"
	"github.com/nicsoto/ArriendoFacil/internal/store"
)

type PaymentHandler struct {
	Store *store.Store
}

func NewPaymentHandler(st *store.Store) *PaymentHandler { return &PaymentHandler{Store: st} }

// paymentView is a payment with its derived state attached.
type paymentView struct {
	models.Payment
	State    schedule.State `json:"state"`
	DaysLate int            `json:"daysLate"`
}

func withStates(payments []models.Payment) []paymentView {
	now := today()
	views := make([]paymentView, len(payments))
	for i := range payments {
		st := schedule.DeriveState(&payments[i], now)
		views[i] = paymentView{Payment: payments[i], State: st.State, DaysLate: st.DaysLate}
	}
	return views
}

// List: GET /payments; ?contract_id= filters to one contract.
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		payments []models.Payment
		err      error
	)
	if cid := r.URL.Query().Get("contract_id"); cid != "" {
		payments, err = h.Store.ListPaymentsByContract(cid)
	} else {
		payments, err = h.Store.ListPayments()
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_payments", nil)
		return
	}
	views := withStates(payments)
	httpx.JSON(w, http.StatusOK, map[string]any{"items": views, "total": len(views)})
}

// Record: POST /payments/record; marks a payment paid. Recording again
// overwrites date and amount.
func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PaymentID string  `json:"paymentId"`
		PaidDate  string  `json:"paidDate"`
		Amount    float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.PaymentID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"paymentId": "required"})
		return
	}
	paidDate := today()
	if req.PaidDate != "" {
		parsed, err := parseDate(req.PaidDate)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"paidDate": "expected YYYY-MM-DD"})
			return
		}
		paidDate = parsed
	}
	p, err := h.Store.RecordPayment(req.PaymentID, paidDate, req.Amount)
	if err != nil {
		writeStoreError(w, err, "failed_to_record_payment")
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

// Summary: GET /payments/summary?contract_id=
func (h *PaymentHandler) Summary(w http.ResponseWriter, r *http.Request) {
	cid := r.URL.Query().Get("contract_id")
	if cid == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"contract_id": "required"})
		return
	}
	payments, err := h.Store.ListPaymentsByContract(cid)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_payments", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, schedule.Summarize(payments, today()))
}

// ExportCSV: GET /payments/export; the full payment history as CSV.
func (h *PaymentHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	var (
		payments []models.Payment
		err      error
	)
	if cid := r.URL.Query().Get("contract_id"); cid != "" {
		payments, err = h.Store.ListPaymentsByContract(cid)
	} else {
		payments, err = h.Store.ListPayments()
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_payments", nil)
		return
	}
	content, err := csvexport.Payments(h.Store, payments, today())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_export_csv", nil)
		return
	}
	httpx.CSVAttachment(w, "pagos.csv", content)
}
