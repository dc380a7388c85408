package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/nicsoto/ArriendoFacil/internal/httpx"
	"github.com/nicsoto/ArriendoFacil/internal/store"
)

type BackupHandler struct {
	Store *store.Store
}

func NewBackupHandler(st *store.Store) *BackupHandler { return &BackupHandler{Store: st} }

// Export: GET /backup/export; the full data set as a downloadable snapshot.
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Store.ExportAll()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_export", nil)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="arriendofacil-backup.json"`)
	httpx.JSON(w, http.StatusOK, snap)
}

// Import: POST /backup/import; replaces all data with the snapshot. The
// snapshot is validated before anything is deleted.
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	var snap store.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := h.Store.ImportAll(&snap); err != nil {
		writeStoreError(w, err, "failed_to_import")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"imported": map[string]int{
			"properties": len(snap.Properties),
			"contracts":  len(snap.Contracts),
			"payments":   len(snap.Payments),
		},
	})
}
