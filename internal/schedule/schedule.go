// Package schedule generates the monthly payment plan of a lease and derives
// the display state of each payment from today's date.
package schedule

import (
	"math"
	"time"

	"github.com/nicsoto/ArriendoFacil/internal/models"
)

// DueDay is the day of the month rent falls due.
const DueDay = 5

// State is the derived status of a payment. Only pending/paid are persisted;
// upcoming and late exist relative to the query date.
type State string

const (
	StateUpcoming State = "upcoming"
	StatePending  State = "pending"
	StateLate     State = "late"
	StatePaid     State = "paid"
)

// Label is the Spanish display name used in reminders and CSV exports.
func (s State) Label() string {
	switch s {
	case StatePaid:
		return "Pagado"
	case StateUpcoming:
		return "Próximo"
	case StateLate:
		return "Atrasado"
	default:
		return "Pendiente"
	}
}

// PaymentState couples the derived state with how many days late it is.
type PaymentState struct {
	State    State `json:"state"`
	DaysLate int   `json:"daysLate"`
}

// Generate builds one pending payment per month covered by the contract,
// starting at the first day of the start month and stopping once the
// iteration date passes the end date. Due date is day 5 of each month.
func Generate(c *models.Contract) []models.Payment {
	var payments []models.Payment
	current := time.Date(c.StartDate.Year(), c.StartDate.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !current.After(c.EndDate) {
		payments = append(payments, models.Payment{
			ContractID: c.ID,
			Month:      current.Format("2006-01"),
			Amount:     c.MonthlyRent,
			DueDate:    time.Date(current.Year(), current.Month(), DueDay, 0, 0, 0, 0, time.UTC),
			Status:     models.PaymentPending,
		})
		current = current.AddDate(0, 1, 0)
	}
	return payments
}

// ContractSummary aggregates a contract's payments. Late payments keep their
// persisted pending status, so they count in both Pending and Late.
type ContractSummary struct {
	Total        int     `json:"total"`
	Paid         int     `json:"paid"`
	Pending      int     `json:"pending"`
	Late         int     `json:"late"`
	TotalPaid    float64 `json:"totalPaid"`
	TotalPending float64 `json:"totalPending"`
}

// Summarize computes the payment summary of a contract as of today.
func Summarize(payments []models.Payment, today time.Time) ContractSummary {
	var s ContractSummary
	s.Total = len(payments)
	for i := range payments {
		p := &payments[i]
		switch p.Status {
		case models.PaymentPaid:
			s.Paid++
			s.TotalPaid += p.Amount
		case models.PaymentPending:
			s.Pending++
			s.TotalPending += p.Amount
		}
		if DeriveState(p, today).State == StateLate {
			s.Late++
		}
	}
	return s
}

// DaysBetween is the difference to − from in whole days, rounded up.
// Negative when to precedes from.
func DaysBetween(from, to time.Time) int {
	return int(math.Ceil(to.Sub(from).Hours() / 24))
}

// DeriveState classifies a payment as of today. A paid payment is PAID
// regardless of dates; otherwise up to 5 days past due counts as pending,
// beyond that it is late. Pure function of its arguments: it must be
// recomputed on every query because today moves.
func DeriveState(p *models.Payment, today time.Time) PaymentState {
	if p.Status == models.PaymentPaid {
		return PaymentState{State: StatePaid}
	}
	diff := DaysBetween(p.DueDate, today)
	switch {
	case diff < 0:
		return PaymentState{State: StateUpcoming}
	case diff <= 5:
		return PaymentState{State: StatePending, DaysLate: diff}
	default:
		return PaymentState{State: StateLate, DaysLate: diff}
	}
}
