// Package alerts scans contracts and payments and produces the prioritized
// notification list shown on the dashboard: late payments, leases about to
// expire and annual adjustments that have come due.
package alerts

import (
	"fmt"
	"sort"
	"time"

	"github.com/nicsoto/ArriendoFacil/internal/models"
	"github.com/nicsoto/ArriendoFacil/internal/schedule"
	"github.com/nicsoto/ArriendoFacil/internal/store"
)

type Severity string

const (
	SeverityDanger  Severity = "danger"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

func severityRank(s Severity) int {
	switch s {
	case SeverityDanger:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

type Kind string

const (
	KindLatePayment       Kind = "late-payment"
	KindExpiringContract  Kind = "expiring-contract"
	KindPendingAdjustment Kind = "pending-adjustment"
)

// Action is a suggested follow-up the UI layer may execute; the engine never
// performs these itself.
type Action struct {
	Label  string            `json:"label"`
	Action string            `json:"action"`
	Params map[string]string `json:"params"`
}

// Alert is one actionable notification. The ID is derived from kind and
// source entity so repeated queries produce the same identifier.
type Alert struct {
	ID       string   `json:"id"`
	Kind     Kind     `json:"type"`
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Data     any      `json:"data,omitempty"`
	Actions  []Action `json:"actions"`
}

// Engine derives alerts from the current repository contents.
type Engine struct {
	store *store.Store
}

func NewEngine(st *store.Store) *Engine { return &Engine{store: st} }

// List returns all alerts as of today, ordered danger > warning > info, with
// generation order preserved inside each severity (late payments first, then
// expiring leases, then pending adjustments).
func (e *Engine) List(today time.Time) ([]Alert, error) {
	var alerts []Alert

	late, err := e.latePaymentAlerts(today)
	if err != nil {
		return nil, err
	}
	alerts = append(alerts, late...)

	expiring, err := e.expiringContractAlerts(today)
	if err != nil {
		return nil, err
	}
	alerts = append(alerts, expiring...)

	adjustments, err := e.pendingAdjustmentAlerts(today)
	if err != nil {
		return nil, err
	}
	alerts = append(alerts, adjustments...)

	sort.SliceStable(alerts, func(i, j int) bool {
		return severityRank(alerts[i].Severity) < severityRank(alerts[j].Severity)
	})
	return alerts, nil
}

// latePayment pairs a payment with its derived lateness for alert generation.
type latePayment struct {
	Payment  models.Payment   `json:"payment"`
	Contract *models.Contract `json:"contract,omitempty"`
	Property *models.Property `json:"property,omitempty"`
	DaysLate int              `json:"daysLate"`
}

func (e *Engine) latePaymentAlerts(today time.Time) ([]Alert, error) {
	payments, err := e.store.ListPayments()
	if err != nil {
		return nil, err
	}
	var lates []latePayment
	for i := range payments {
		st := schedule.DeriveState(&payments[i], today)
		if st.State != schedule.StateLate {
			continue
		}
		lp := latePayment{Payment: payments[i], DaysLate: st.DaysLate}
		// A dangling contract or property reference is tolerated: the alert
		// is still raised, just without the address.
		if c, err := e.store.GetContract(payments[i].ContractID); err == nil {
			lp.Contract = c
			if p, err := e.store.GetProperty(c.PropertyID); err == nil {
				lp.Property = p
			}
		}
		lates = append(lates, lp)
	}
	sort.SliceStable(lates, func(i, j int) bool { return lates[i].DaysLate > lates[j].DaysLate })

	alerts := make([]Alert, 0, len(lates))
	for _, lp := range lates {
		severity := SeverityWarning
		if lp.DaysLate > 10 {
			severity = SeverityDanger
		}
		addr := "(propiedad desconocida)"
		if lp.Property != nil {
			addr = lp.Property.Address
		}
		alerts = append(alerts, Alert{
			ID:       fmt.Sprintf("late-payment-%s", lp.Payment.ID),
			Kind:     KindLatePayment,
			Severity: severity,
			Title:    "Pago Atrasado",
			Message:  fmt.Sprintf("El arriendo de %s tiene %d días de atraso", addr, lp.DaysLate),
			Data:     lp,
			Actions: []Action{
				{Label: "Enviar recordatorio", Action: "sendReminder", Params: map[string]string{"paymentId": lp.Payment.ID}},
				{Label: "Registrar pago", Action: "recordPayment", Params: map[string]string{"paymentId": lp.Payment.ID}},
			},
		})
	}
	return alerts, nil
}

func (e *Engine) expiringContractAlerts(today time.Time) ([]Alert, error) {
	contracts, err := e.store.ListActiveContracts()
	if err != nil {
		return nil, err
	}
	var alerts []Alert
	for i := range contracts {
		c := &contracts[i]
		days := schedule.DaysBetween(today, c.EndDate)
		if days < 0 || days > 30 {
			continue
		}
		severity := SeverityInfo
		if days <= 15 {
			severity = SeverityWarning
		}
		addr := "(propiedad desconocida)"
		var prop *models.Property
		if p, err := e.store.GetProperty(c.PropertyID); err == nil {
			prop = p
			addr = p.Address
		}
		alerts = append(alerts, Alert{
			ID:       fmt.Sprintf("expiring-contract-%s", c.ID),
			Kind:     KindExpiringContract,
			Severity: severity,
			Title:    "Contrato Próximo a Vencer",
			Message:  fmt.Sprintf("El contrato de %s vence en %d días", addr, days),
			Data:     map[string]any{"contract": c, "property": prop, "daysUntilExpiry": days},
			Actions: []Action{
				{Label: "Generar carta de término", Action: "generateTermination", Params: map[string]string{"contractId": c.ID}},
				{Label: "Renovar contrato", Action: "renewContract", Params: map[string]string{"contractId": c.ID}},
			},
		})
	}
	return alerts, nil
}

func (e *Engine) pendingAdjustmentAlerts(today time.Time) ([]Alert, error) {
	contracts, err := e.store.ListActiveContracts()
	if err != nil {
		return nil, err
	}
	var alerts []Alert
	for i := range contracts {
		c := &contracts[i]
		if c.Adjustment == models.AdjustmentFixed {
			continue
		}
		anniversary := c.AnniversaryDate()
		since := schedule.DaysBetween(anniversary, today)
		// Re-raised on every query within the 30-day window; nothing marks
		// the adjustment as applied.
		if since < 0 || since > 30 {
			continue
		}
		addr := "(propiedad desconocida)"
		var prop *models.Property
		if p, err := e.store.GetProperty(c.PropertyID); err == nil {
			prop = p
			addr = p.Address
		}
		alerts = append(alerts, Alert{
			ID:       fmt.Sprintf("pending-adjustment-%s", c.ID),
			Kind:     KindPendingAdjustment,
			Severity: SeverityInfo,
			Title:    "Reajuste Pendiente",
			Message:  fmt.Sprintf("El contrato de %s requiere reajuste anual", addr),
			Data: map[string]any{
				"contract":             c,
				"property":             prop,
				"anniversaryDate":      anniversary,
				"daysSinceAnniversary": since,
			},
			Actions: []Action{
				{Label: "Calcular reajuste", Action: "calculateAdjustment", Params: map[string]string{"contractId": c.ID}},
				{Label: "Generar anexo", Action: "generateAnnex", Params: map[string]string{"contractId": c.ID}},
			},
		})
	}
	return alerts, nil
}
