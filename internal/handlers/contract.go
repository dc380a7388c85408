package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/nicsoto/ArriendoFacil/internal/httpx"
	"github.com/nicsoto/ArriendoFacil/internal/models"
	"github.com/nicsoto/ArriendoFacil/internal/store"
)

type ContractHandler struct {
	Store *store.Store
}

func NewContractHandler(st *store.Store) *ContractHandler { return &ContractHandler{Store: st} }

// contractReq is the wire form of a lease; dates travel as YYYY-MM-DD.
type contractReq struct {
	ID              string                `json:"id"`
	PropertyID      string                `json:"propertyId"`
	Tenant          models.Person         `json:"tenant"`
	Guarantor       models.Person         `json:"guarantor"`
	StartDate       string                `json:"startDate"`
	EndDate         string                `json:"endDate"`
	MonthlyRent     float64               `json:"monthlyRent"`
	Currency        string                `json:"currency"`
	AdjustmentType  models.AdjustmentType `json:"adjustmentType"`
	Deposit         float64               `json:"deposit"`
	LeaseType       models.LeaseType      `json:"leaseType"`
	Furnished       bool                  `json:"furnished"`
	SubleaseAllowed bool                  `json:"subleaseAllowed"`
	Pets            models.PetsPolicy     `json:"pets"`
	Inventory       string                `json:"inventory"`
}

func (req *contractReq) toModel() (*models.Contract, map[string]string) {
	problems := map[string]string{}
	start, err := parseDate(req.StartDate)
	if err != nil {
		problems["startDate"] = "expected YYYY-MM-DD"
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		problems["endDate"] = "expected YYYY-MM-DD"
	}
	if req.PropertyID == "" {
		problems["propertyId"] = "required"
	}
	if len(problems) > 0 {
		return nil, problems
	}
	c := &models.Contract{
		ID:          req.ID,
		PropertyID:  req.PropertyID,
		Tenant:      req.Tenant,
		Guarantor:   req.Guarantor,
		StartDate:   start,
		EndDate:     end,
		MonthlyRent: req.MonthlyRent,
		Currency:    req.Currency,
		Adjustment:  req.AdjustmentType,
		Deposit:     req.Deposit,
		LeaseType:   req.LeaseType,
		Furnished:   req.Furnished,
		Sublease:    req.SubleaseAllowed,
		Pets:        req.Pets,
		Inventory:   req.Inventory,
	}
	if c.Currency == "" {
		c.Currency = "CLP"
	}
	if c.Adjustment == "" {
		c.Adjustment = models.AdjustmentIPC
	}
	if c.LeaseType == "" {
		c.LeaseType = models.LeaseFixedTerm
	}
	if c.Pets == "" {
		c.Pets = models.PetsForbidden
	}
	return c, nil
}

// List: GET /contracts; ?property_id= filters, ?active=1 limits to active.
func (h *ContractHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		contracts []models.Contract
		err       error
	)
	switch {
	case r.URL.Query().Get("property_id") != "":
		contracts, err = h.Store.ListContractsByProperty(r.URL.Query().Get("property_id"))
	case r.URL.Query().Get("active") == "1":
		contracts, err = h.Store.ListActiveContracts()
	default:
		contracts, err = h.Store.ListContracts()
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_contracts", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": contracts, "total": len(contracts)})
}

// Create: POST /contracts; also generates the payment schedule.
func (h *ContractHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req contractReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	c, problems := req.toModel()
	if problems != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", problems)
		return
	}
	if err := h.Store.AddContract(c); err != nil {
		writeStoreError(w, err, "failed_to_create_contract")
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

// Update: POST /contracts/update
func (h *ContractHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req contractReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"id": "required"})
		return
	}
	c, problems := req.toModel()
	if problems != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", problems)
		return
	}
	existing, err := h.Store.GetContract(req.ID)
	if err != nil {
		writeStoreError(w, err, "failed_to_update_contract")
		return
	}
	c.Status = existing.Status
	c.CreatedAt = existing.CreatedAt
	if err := h.Store.UpdateContract(c); err != nil {
		writeStoreError(w, err, "failed_to_update_contract")
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

// Terminate: POST /contracts/terminate
func (h *ContractHandler) Terminate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"id": "required"})
		return
	}
	c, err := h.Store.TerminateContract(req.ID)
	if err != nil {
		writeStoreError(w, err, "failed_to_terminate_contract")
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

// Delete: POST /contracts/delete; cascades to the contract's payments.
func (h *ContractHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"id": "required"})
		return
	}
	if err := h.Store.DeleteContract(req.ID); err != nil {
		writeStoreError(w, err, "failed_to_delete_contract")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
