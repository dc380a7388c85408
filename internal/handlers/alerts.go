package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/nicsoto/ArriendoFacil/internal/alerts"
	"github.com/nicsoto/ArriendoFacil/internal/httpx"
)

type AlertsHandler struct {
	Engine *alerts.Engine
}

func NewAlertsHandler(engine *alerts.Engine) *AlertsHandler { return &AlertsHandler{Engine: engine} }

// List: GET /alerts; all current alerts ordered by severity. The optional
// ack query param holds comma-separated alert IDs to hide from the response.
// Nothing is persisted; the alert reappears on the next request without it.
func (h *AlertsHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Engine.List(today())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_alerts", nil)
		return
	}
	if ack := r.URL.Query().Get("ack"); ack != "" {
		hidden := make(map[string]bool)
		for _, id := range strings.Split(ack, ",") {
			if id = strings.TrimSpace(id); id != "" {
				hidden[id] = true
			}
		}
		kept := list[:0]
		for _, a := range list {
			if !hidden[a.ID] {
				kept = append(kept, a)
			}
		}
		list = kept
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": list, "total": len(list)})
}

// Counts: GET /alerts/counts; badge counters per severity and kind.
func (h *AlertsHandler) Counts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Engine.Counts(today())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_count_alerts", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, counts)
}

// Reminder: POST /alerts/reminder; drafts the reminder mail for a payment.
func (h *AlertsHandler) Reminder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PaymentID string `json:"paymentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.PaymentID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"paymentId": "required"})
		return
	}
	reminder, err := h.Engine.PaymentReminder(req.PaymentID, today())
	if err != nil {
		writeStoreError(w, err, "failed_to_build_reminder")
		return
	}
	httpx.JSON(w, http.StatusOK, reminder)
}
