// Package server wires the HTTP routes to the handlers.
package server

import (
	"net/http"

	"github.com/nicsoto/ArriendoFacil/internal/adjust"
	"github.com/nicsoto/ArriendoFacil/internal/alerts"
	"github.com/nicsoto/ArriendoFacil/internal/documents"
	"github.com/nicsoto/ArriendoFacil/internal/handlers"
	"github.com/nicsoto/ArriendoFacil/internal/httpx"
	"github.com/nicsoto/ArriendoFacil/internal/indicator"
	"github.com/nicsoto/ArriendoFacil/internal/store"
	"github.com/nicsoto/ArriendoFacil/internal/taxes"
)

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
}

func getPost(get, post http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			get(w, r)
		case http.MethodPost:
			post(w, r)
		default:
			methodNotAllowed(w, "GET,POST")
		}
	}
}

func postOnly(post http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w, "POST")
			return
		}
		post(w, r)
	}
}

// New constructs the root http.Handler with all routes and middlewares applied.
func New(st *store.Store, src indicator.Source) (http.Handler, error) {
	gen, err := documents.NewGenerator()
	if err != nil {
		return nil, err
	}
	engine := adjust.NewEngine(src)
	alertEngine := alerts.NewEngine(st)
	taxCalc := taxes.NewCalculator(st)

	mux := http.NewServeMux()

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := st.DB.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Property endpoints. List/Create via /properties, Update/Delete via
	// /properties/update & /properties/delete for simplicity.
	ph := handlers.NewPropertyHandler(st)
	mux.HandleFunc("/properties", getPost(ph.List, ph.Create))
	mux.HandleFunc("/properties/update", postOnly(ph.Update))
	mux.HandleFunc("/properties/delete", postOnly(ph.Delete))

	// Contract endpoints.
	ch := handlers.NewContractHandler(st)
	mux.HandleFunc("/contracts", getPost(ch.List, ch.Create))
	mux.HandleFunc("/contracts/update", postOnly(ch.Update))
	mux.HandleFunc("/contracts/terminate", postOnly(ch.Terminate))
	mux.HandleFunc("/contracts/delete", postOnly(ch.Delete))

	// Payment endpoints. The schedule itself is generated on contract
	// creation, so only recording and reading live here.
	payh := handlers.NewPaymentHandler(st)
	mux.HandleFunc("/payments", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, "GET")
			return
		}
		payh.List(w, r)
	})
	mux.HandleFunc("/payments/record", postOnly(payh.Record))
	mux.HandleFunc("/payments/summary", payh.Summary)
	mux.HandleFunc("/payments/export", payh.ExportCSV)

	// Calculator endpoints.
	calch := handlers.NewCalculatorHandler(engine, st)
	mux.HandleFunc("/calculator/ipc", postOnly(calch.IPC))
	mux.HandleFunc("/calculator/uf", postOnly(calch.UF))
	mux.HandleFunc("/calculator/clp-to-uf", postOnly(calch.CLPToUF))
	mux.HandleFunc("/calculator/uf/current", calch.CurrentUF)
	mux.HandleFunc("/calculator/next-adjustment", calch.NextAdjustment)

	// Alert endpoints.
	ah := handlers.NewAlertsHandler(alertEngine)
	mux.HandleFunc("/alerts", ah.List)
	mux.HandleFunc("/alerts/counts", ah.Counts)
	mux.HandleFunc("/alerts/reminder", postOnly(ah.Reminder))

	// Tax endpoints.
	th := handlers.NewTaxHandler(taxCalc)
	mux.HandleFunc("/taxes/summary", th.Summary)
	mux.HandleFunc("/taxes/breakdown", th.Breakdown)
	mux.HandleFunc("/taxes/report", th.Report)
	mux.HandleFunc("/taxes/export", th.ExportCSV)

	// Document endpoints (print-ready HTML pages).
	dh := handlers.NewDocumentHandler(st, gen, engine)
	mux.HandleFunc("/documents/lease", dh.Lease)
	mux.HandleFunc("/documents/annex", dh.Annex)
	mux.HandleFunc("/documents/termination", dh.Termination)

	// Settings and backup.
	sh := handlers.NewSettingsHandler(st)
	mux.HandleFunc("/settings", getPost(sh.Get, sh.Save))
	bh := handlers.NewBackupHandler(st)
	mux.HandleFunc("/backup/export", bh.Export)
	mux.HandleFunc("/backup/import", postOnly(bh.Import))

	// Root placeholder.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, werr := w.Write([]byte("ArriendoFacil API - see /health")); werr != nil {
			_ = werr
		}
	})

	return withRecover(mux), nil
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
