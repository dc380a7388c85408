package handlers

import (
	"net/http"

	"github.com/nicsoto/ArriendoFacil/internal/adjust"
	"github.com/nicsoto/ArriendoFacil/internal/documents"
	"github.com/nicsoto/ArriendoFacil/internal/httpx"
	"github.com/nicsoto/ArriendoFacil/internal/models"
	"github.com/nicsoto/ArriendoFacil/internal/store"
)

type DocumentHandler struct {
	Store     *store.Store
	Generator *documents.Generator
	Engine    *adjust.Engine
}

func NewDocumentHandler(st *store.Store, gen *documents.Generator, engine *adjust.Engine) *DocumentHandler {
	return &DocumentHandler{Store: st, Generator: gen, Engine: engine}
}

// documentContext loads the contract, its property and the landlord settings.
func (h *DocumentHandler) documentContext(w http.ResponseWriter, r *http.Request) (*models.Contract, *models.Property, *models.Settings, bool) {
	cid := r.URL.Query().Get("contract_id")
	if cid == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"contract_id": "required"})
		return nil, nil, nil, false
	}
	contract, err := h.Store.GetContract(cid)
	if err != nil {
		writeStoreError(w, err, "failed_to_get_contract")
		return nil, nil, nil, false
	}
	property, err := h.Store.GetProperty(contract.PropertyID)
	if err != nil {
		writeStoreError(w, err, "failed_to_get_property")
		return nil, nil, nil, false
	}
	settings, err := h.Store.GetSettings()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_get_settings", nil)
		return nil, nil, nil, false
	}
	return contract, property, settings, true
}

// Lease: GET /documents/lease?contract_id= renders the full lease contract
// as a print-ready HTML page.
func (h *DocumentHandler) Lease(w http.ResponseWriter, r *http.Request) {
	contract, property, settings, ok := h.documentContext(w, r)
	if !ok {
		return
	}
	page, err := h.Generator.LeaseContract(documents.LeaseData{
		Contract: contract,
		Property: property,
		Landlord: settings,
		Today:    today(),
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_render_document", nil)
		return
	}
	httpx.HTML(w, http.StatusOK, page)
}

// Annex: GET /documents/annex?contract_id= renders the rent-adjustment
// annex. The new rent comes from the adjustment engine; index fetch failures
// surface as calculator errors.
func (h *DocumentHandler) Annex(w http.ResponseWriter, r *http.Request) {
	contract, property, settings, ok := h.documentContext(w, r)
	if !ok {
		return
	}
	adjustment, err := h.Engine.NextAdjustment(r.Context(), contract)
	if err != nil {
		writeAdjustError(w, err)
		return
	}
	page, err := h.Generator.AdjustmentAnnex(documents.AnnexData{
		Contract:   contract,
		Property:   property,
		Landlord:   settings,
		Adjustment: &adjustment,
		Today:      today(),
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_render_document", nil)
		return
	}
	httpx.HTML(w, http.StatusOK, page)
}

// Termination: GET /documents/termination?contract_id=&reason=
func (h *DocumentHandler) Termination(w http.ResponseWriter, r *http.Request) {
	contract, property, settings, ok := h.documentContext(w, r)
	if !ok {
		return
	}
	page, err := h.Generator.TerminationLetter(documents.TerminationData{
		Contract: contract,
		Property: property,
		Landlord: settings,
		Reason:   r.URL.Query().Get("reason"),
		Today:    today(),
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_render_document", nil)
		return
	}
	httpx.HTML(w, http.StatusOK, page)
}
