package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nicsoto/ArriendoFacil/internal/httpx"
	"github.com/nicsoto/ArriendoFacil/internal/models"
	"github.com/nicsoto/ArriendoFacil/internal/store"
)

type PropertyHandler struct {
	Store *store.Store
}

func NewPropertyHandler(st *store.Store) *PropertyHandler { return &PropertyHandler{Store: st} }

// List: GET /properties
func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	props, err := h.Store.ListProperties()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_properties", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": props, "total": len(props)})
}

// Create: POST /properties
func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p models.Property
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := h.Store.AddProperty(&p); err != nil {
		if errors.Is(err, store.ErrInvalidInput) {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", err.Error())
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_property", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

// Update: POST /properties/update
func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	var p models.Property
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if p.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"id": "required"})
		return
	}
	if err := h.Store.UpdateProperty(&p); err != nil {
		writeStoreError(w, err, "failed_to_update_property")
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

// Delete: POST /properties/delete
func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"id": "required"})
		return
	}
	if err := h.Store.DeleteProperty(req.ID); err != nil {
		if errors.Is(err, store.ErrPropertyHasContracts) {
			httpx.JSONError(w, http.StatusConflict, "property_has_contracts", nil)
			return
		}
		writeStoreError(w, err, "failed_to_delete_property")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func writeStoreError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	case errors.Is(err, store.ErrInvalidInput):
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", err.Error())
	default:
		httpx.JSONError(w, http.StatusInternalServerError, fallback, nil)
	}
}
