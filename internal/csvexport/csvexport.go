// Package csvexport renders payment history and tax summaries as CSV for
// download.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/nicsoto/ArriendoFacil/internal/models"
	"github.com/nicsoto/ArriendoFacil/internal/schedule"
	"github.com/nicsoto/ArriendoFacil/internal/store"
	"github.com/nicsoto/ArriendoFacil/internal/taxes"
)

// Payments renders the payment history with property and tenant context.
// Dangling contract references show as N/A rather than failing the export.
func Payments(st *store.Store, payments []models.Payment, today time.Time) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write([]string{"Fecha", "Propiedad", "Arrendatario", "Monto", "Estado", "Días de atraso"}); err != nil {
		return "", err
	}
	for i := range payments {
		p := &payments[i]
		address, tenant := "N/A", "N/A"
		if c, err := st.GetContract(p.ContractID); err == nil {
			if c.Tenant.Name != "" {
				tenant = c.Tenant.Name
			}
			if prop, err := st.GetProperty(c.PropertyID); err == nil {
				address = prop.Address
			}
		}
		state := schedule.DeriveState(p, today)
		record := []string{
			p.Month,
			address,
			tenant,
			fmt.Sprintf("%.0f", p.Amount),
			state.State.Label(),
			fmt.Sprintf("%d", state.DaysLate),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	return b.String(), w.Error()
}

func yesNo(v bool) string {
	if v {
		return "Sí"
	}
	return "No"
}

// TaxSummary renders the annual summary with per-property rows and totals.
func TaxSummary(summary *taxes.AnnualSummary) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write([]string{"Propiedad", "Dirección", "DFL-2", "Exenta", "Ingresos Anuales"}); err != nil {
		return "", err
	}
	for _, pi := range summary.Properties {
		record := []string{
			string(pi.Property.Type),
			pi.Property.Address,
			yesNo(pi.IsDFL2),
			yesNo(pi.IsExempt),
			fmt.Sprintf("%.0f", pi.TotalIncome),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	totals := [][]string{
		{"", "", "", "Total Ingresos:", fmt.Sprintf("%.0f", summary.TotalIncome)},
		{"", "", "", "Ingresos Exentos:", fmt.Sprintf("%.0f", summary.ExemptIncome)},
		{"", "", "", "Ingresos Tributables:", fmt.Sprintf("%.0f", summary.TaxableIncome)},
	}
	for _, record := range totals {
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	return b.String(), w.Error()
}
