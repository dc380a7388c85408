package alerts

import (
	"fmt"
	"strings"
	"time"

	"github.com/nicsoto/ArriendoFacil/internal/money"
	"github.com/nicsoto/ArriendoFacil/internal/schedule"
)

// Counts summarizes the alert list for badges.
type Counts struct {
	Total   int          `json:"total"`
	Danger  int          `json:"danger"`
	Warning int          `json:"warning"`
	Info    int          `json:"info"`
	ByKind  map[Kind]int `json:"byType"`
}

func (e *Engine) Counts(today time.Time) (Counts, error) {
	list, err := e.List(today)
	if err != nil {
		return Counts{}, err
	}
	counts := Counts{Total: len(list), ByKind: map[Kind]int{}}
	for _, a := range list {
		switch a.Severity {
		case SeverityDanger:
			counts.Danger++
		case SeverityWarning:
			counts.Warning++
		case SeverityInfo:
			counts.Info++
		}
		counts.ByKind[a.Kind]++
	}
	return counts, nil
}

// Reminder is a ready-to-send payment reminder message.
type Reminder struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// PaymentReminder drafts the reminder mail for one payment. The UI layer is
// responsible for actually sending it.
func (e *Engine) PaymentReminder(paymentID string, today time.Time) (*Reminder, error) {
	payment, err := e.store.GetPayment(paymentID)
	if err != nil {
		return nil, err
	}
	state := schedule.DeriveState(payment, today)

	tenantName, tenantEmail, address := "arrendatario(a)", "", "la propiedad arrendada"
	if c, err := e.store.GetContract(payment.ContractID); err == nil {
		if c.Tenant.Name != "" {
			tenantName = c.Tenant.Name
		}
		tenantEmail = c.Tenant.Email
		if p, err := e.store.GetProperty(c.PropertyID); err == nil {
			address = p.Address
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Estimado(a) %s:\n\n", tenantName)
	fmt.Fprintf(&b, "Por medio del presente, le recordamos que el pago del arriendo correspondiente al mes de %s se encuentra %s.\n\n",
		payment.Month, strings.ToLower(state.State.Label()))
	b.WriteString("Detalles del pago:\n")
	fmt.Fprintf(&b, "- Propiedad: %s\n", address)
	fmt.Fprintf(&b, "- Monto: %s\n", money.FormatCLP(payment.Amount))
	fmt.Fprintf(&b, "- Fecha de vencimiento: %s\n", payment.DueDate.Format("02-01-2006"))
	if state.DaysLate > 0 {
		fmt.Fprintf(&b, "- Días de atraso: %d\n", state.DaysLate)
	}
	b.WriteString("\nPor favor, regularice su situación a la brevedad.\n\nSaludos cordiales.")

	return &Reminder{
		To:      tenantEmail,
		Subject: fmt.Sprintf("Recordatorio: Pago de arriendo %s", payment.Month),
		Body:    b.String(),
	}, nil
}
