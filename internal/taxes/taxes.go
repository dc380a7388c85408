// Package taxes builds the annual SII income summary, applying the DFL-2
// exemption: rental income of the first two qualifying dwellings is exempt,
// from the third on it is taxable (Ley N° 21.420, natural persons only).
package taxes

import (
	"fmt"
	"strings"
	"time"

	"github.com/nicsoto/ArriendoFacil/internal/models"
	"github.com/nicsoto/ArriendoFacil/internal/store"
)

// ExemptDFL2Limit is how many DFL-2 properties keep the exemption.
const ExemptDFL2Limit = 2

// PropertyIncome is one property's paid rental income for a year.
type PropertyIncome struct {
	Property     models.Property `json:"property"`
	TotalIncome  float64         `json:"totalIncome"`
	IsDFL2       bool            `json:"isDFL2"`
	IsExempt     bool            `json:"isExempt"`
	PaymentCount int             `json:"paymentCount"`
}

// AnnualSummary aggregates a tax year across all properties.
type AnnualSummary struct {
	Year             int              `json:"year"`
	TotalIncome      float64          `json:"totalIncome"`
	ExemptIncome     float64          `json:"exemptIncome"`
	TaxableIncome    float64          `json:"taxableIncome"`
	Properties       []PropertyIncome `json:"properties"`
	DFL2Count        int              `json:"dfl2Count"`
	ExemptProperties int              `json:"exemptProperties"`
}

// DeductibleExpenses is a placeholder breakdown until expense tracking lands.
type DeductibleExpenses struct {
	Year           int     `json:"year"`
	Contributions  float64 `json:"contribuciones"`
	Repairs        float64 `json:"reparaciones"`
	Administration float64 `json:"administracion"`
	Other          float64 `json:"otros"`
	Total          float64 `json:"total"`
}

// AccountantReport is the annual summary plus expenses and net income.
type AccountantReport struct {
	AnnualSummary
	Expenses    DeductibleExpenses `json:"expenses"`
	NetIncome   float64            `json:"netIncome"`
	GeneratedAt time.Time          `json:"generatedAt"`
}

// MonthBreakdown is paid income for one calendar month.
type MonthBreakdown struct {
	Month        string  `json:"month"` // YYYY-MM
	Income       float64 `json:"income"`
	PaymentCount int     `json:"paymentCount"`
}

// Calculator computes tax views over the repository.
type Calculator struct {
	store *store.Store
}

func NewCalculator(st *store.Store) *Calculator { return &Calculator{store: st} }

func paidInYear(p *models.Payment, year int) bool {
	return p.Status == models.PaymentPaid && strings.HasPrefix(p.Month, fmt.Sprintf("%04d-", year))
}

// AnnualSummary groups the year's paid income by property and applies the
// DFL-2 exemption to the first two qualifying properties.
func (c *Calculator) AnnualSummary(year int) (*AnnualSummary, error) {
	properties, err := c.store.ListProperties()
	if err != nil {
		return nil, err
	}
	contracts, err := c.store.ListContracts()
	if err != nil {
		return nil, err
	}
	payments, err := c.store.ListPayments()
	if err != nil {
		return nil, err
	}

	contractProperty := make(map[string]string, len(contracts))
	for _, ct := range contracts {
		contractProperty[ct.ID] = ct.PropertyID
	}

	incomeByProperty := make(map[string]*PropertyIncome, len(properties))
	summary := &AnnualSummary{Year: year}
	for _, prop := range properties {
		pi := &PropertyIncome{Property: prop, IsDFL2: prop.IsDFL2}
		incomeByProperty[prop.ID] = pi
	}
	for i := range payments {
		p := &payments[i]
		if !paidInYear(p, year) {
			continue
		}
		propID, ok := contractProperty[p.ContractID]
		if !ok {
			continue // dangling contract reference, skip silently
		}
		if pi, ok := incomeByProperty[propID]; ok {
			pi.TotalIncome += p.Amount
			pi.PaymentCount++
		}
	}

	exempted := 0
	for _, prop := range properties {
		pi := incomeByProperty[prop.ID]
		if pi.IsDFL2 {
			summary.DFL2Count++
			if exempted < ExemptDFL2Limit {
				pi.IsExempt = true
				exempted++
			}
		}
		summary.TotalIncome += pi.TotalIncome
		if pi.IsExempt {
			summary.ExemptIncome += pi.TotalIncome
		}
		summary.Properties = append(summary.Properties, *pi)
	}
	summary.TaxableIncome = summary.TotalIncome - summary.ExemptIncome
	summary.ExemptProperties = exempted
	return summary, nil
}

// DeductibleExpensesFor returns the (currently zero) deductible expense
// structure for the year.
func (c *Calculator) DeductibleExpensesFor(year int) DeductibleExpenses {
	return DeductibleExpenses{Year: year}
}

// AccountantReport combines the summary with deductible expenses.
func (c *Calculator) AccountantReport(year int) (*AccountantReport, error) {
	summary, err := c.AnnualSummary(year)
	if err != nil {
		return nil, err
	}
	expenses := c.DeductibleExpensesFor(year)
	return &AccountantReport{
		AnnualSummary: *summary,
		Expenses:      expenses,
		NetIncome:     summary.TaxableIncome - expenses.Total,
		GeneratedAt:   time.Now().UTC(),
	}, nil
}

// MonthlyBreakdown returns paid income per calendar month of the year.
func (c *Calculator) MonthlyBreakdown(year int) ([]MonthBreakdown, error) {
	payments, err := c.store.ListPayments()
	if err != nil {
		return nil, err
	}
	breakdown := make([]MonthBreakdown, 12)
	for m := 1; m <= 12; m++ {
		breakdown[m-1].Month = fmt.Sprintf("%04d-%02d", year, m)
	}
	for i := range payments {
		p := &payments[i]
		if p.Status != models.PaymentPaid {
			continue
		}
		for m := range breakdown {
			if p.Month == breakdown[m].Month {
				breakdown[m].Income += p.Amount
				breakdown[m].PaymentCount++
			}
		}
	}
	return breakdown, nil
}

// MonthlyIncome is the paid income for one month.
func (c *Calculator) MonthlyIncome(year int, month time.Month) (float64, error) {
	payments, err := c.store.ListPayments()
	if err != nil {
		return 0, err
	}
	target := fmt.Sprintf("%04d-%02d", year, month)
	var total float64
	for i := range payments {
		if payments[i].Status == models.PaymentPaid && payments[i].Month == target {
			total += payments[i].Amount
		}
	}
	return total, nil
}

// AnnualIncome is the paid income for the whole year.
func (c *Calculator) AnnualIncome(year int) (float64, error) {
	payments, err := c.store.ListPayments()
	if err != nil {
		return 0, err
	}
	var total float64
	for i := range payments {
		if paidInYear(&payments[i], year) {
			total += payments[i].Amount
		}
	}
	return total, nil
}
