package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/nicsoto/ArriendoFacil/internal/httpx"
	"github.com/nicsoto/ArriendoFacil/internal/models"
	"github.com/nicsoto/ArriendoFacil/internal/store"
)

type SettingsHandler struct {
	Store *store.Store
}

func NewSettingsHandler(st *store.Store) *SettingsHandler { return &SettingsHandler{Store: st} }

// Get: GET /settings; the singleton settings, created on first access.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Store.GetSettings()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_get_settings", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, settings)
}

// Save: POST /settings; overwrites the singleton settings.
func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var in models.Settings
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if in.Theme != "light" && in.Theme != "dark" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"theme": "must be light or dark"})
		return
	}
	saved, err := h.Store.SaveSettings(&in)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_save_settings", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, saved)
}
