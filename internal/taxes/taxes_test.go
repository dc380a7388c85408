package taxes

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nicsoto/ArriendoFacil/internal/models"
	"github.com/nicsoto/ArriendoFacil/internal/store"
)

func setupCalculator(t *testing.T) (*Calculator, *store.Store) {
	t.Helper()
	dbi, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := dbi.AutoMigrate(&models.Property{}, &models.Contract{}, &models.Payment{}, &models.Settings{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	st := store.New(dbi)
	return NewCalculator(st), st
}

// addRentedProperty creates a property with a year-long 2025 contract and
// marks every payment of the year paid.
func addRentedProperty(t *testing.T, st *store.Store, address string, dfl2 bool, rent float64) {
	t.Helper()
	p := &models.Property{Type: models.PropertyApartment, Address: address, Size: 60, IsDFL2: dfl2}
	if err := st.AddProperty(p); err != nil {
		t.Fatalf("add property: %v", err)
	}
	c := &models.Contract{
		PropertyID:  p.ID,
		Tenant:      models.Person{Name: "Arrendatario " + address},
		StartDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		MonthlyRent: rent,
		Adjustment:  models.AdjustmentFixed,
		LeaseType:   models.LeaseFixedTerm,
		Pets:        models.PetsForbidden,
	}
	if err := st.AddContract(c); err != nil {
		t.Fatalf("add contract: %v", err)
	}
	payments, err := st.ListPaymentsByContract(c.ID)
	if err != nil {
		t.Fatalf("list payments: %v", err)
	}
	for _, pay := range payments {
		if _, err := st.RecordPayment(pay.ID, pay.DueDate, 0); err != nil {
			t.Fatalf("record payment: %v", err)
		}
	}
}

func TestAnnualSummaryDFL2Exemption(t *testing.T) {
	calc, st := setupCalculator(t)
	// Three DFL-2 properties: only the first two qualify for the exemption.
	addRentedProperty(t, st, "Depto A", true, 400000)
	addRentedProperty(t, st, "Depto B", true, 500000)
	addRentedProperty(t, st, "Depto C", true, 600000)
	addRentedProperty(t, st, "Oficina D", false, 700000)

	summary, err := calc.AnnualSummary(2025)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.DFL2Count != 3 || summary.ExemptProperties != 2 {
		t.Fatalf("dfl2=%d exempt=%d", summary.DFL2Count, summary.ExemptProperties)
	}
	if summary.TotalIncome != 12*(400000+500000+600000+700000) {
		t.Fatalf("total = %v", summary.TotalIncome)
	}
	if summary.ExemptIncome != 12*(400000+500000) {
		t.Fatalf("exempt = %v", summary.ExemptIncome)
	}
	if summary.TaxableIncome != summary.TotalIncome-summary.ExemptIncome {
		t.Fatalf("taxable = %v", summary.TaxableIncome)
	}

	// Exemption follows property listing order.
	if !summary.Properties[0].IsExempt || !summary.Properties[1].IsExempt {
		t.Fatalf("first two DFL-2 properties should be exempt")
	}
	if summary.Properties[2].IsExempt || summary.Properties[3].IsExempt {
		t.Fatalf("third DFL-2 and non-DFL-2 must be taxable")
	}
}

func TestAnnualSummaryIgnoresPendingAndOtherYears(t *testing.T) {
	calc, st := setupCalculator(t)
	p := &models.Property{Type: models.PropertyHouse, Address: "Casa E", Size: 120}
	if err := st.AddProperty(p); err != nil {
		t.Fatalf("add property: %v", err)
	}
	c := &models.Contract{
		PropertyID:  p.ID,
		StartDate:   time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		MonthlyRent: 800000,
		Adjustment:  models.AdjustmentFixed,
		LeaseType:   models.LeaseFixedTerm,
		Pets:        models.PetsForbidden,
	}
	if err := st.AddContract(c); err != nil {
		t.Fatalf("add contract: %v", err)
	}
	payments, _ := st.ListPaymentsByContract(c.ID)
	// Pay 2024-11 and 2025-01; leave 2024-12 and 2025-02 pending.
	for _, pay := range payments {
		if pay.Month == "2024-11" || pay.Month == "2025-01" {
			if _, err := st.RecordPayment(pay.ID, pay.DueDate, 0); err != nil {
				t.Fatalf("record: %v", err)
			}
		}
	}

	summary, err := calc.AnnualSummary(2025)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TotalIncome != 800000 {
		t.Fatalf("total = %v, want only the paid 2025-01 installment", summary.TotalIncome)
	}
}

func TestMonthlyBreakdown(t *testing.T) {
	calc, st := setupCalculator(t)
	addRentedProperty(t, st, "Depto F", false, 450000)

	breakdown, err := calc.MonthlyBreakdown(2025)
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}
	if len(breakdown) != 12 {
		t.Fatalf("got %d months", len(breakdown))
	}
	for _, m := range breakdown {
		if m.Income != 450000 || m.PaymentCount != 1 {
			t.Fatalf("month %s = %+v", m.Month, m)
		}
	}

	income, err := calc.MonthlyIncome(2025, time.March)
	if err != nil {
		t.Fatalf("monthly income: %v", err)
	}
	if income != 450000 {
		t.Fatalf("march = %v", income)
	}
	annual, err := calc.AnnualIncome(2025)
	if err != nil {
		t.Fatalf("annual income: %v", err)
	}
	if annual != 12*450000 {
		t.Fatalf("annual = %v", annual)
	}
}

func TestAccountantReport(t *testing.T) {
	calc, st := setupCalculator(t)
	addRentedProperty(t, st, "Depto G", true, 400000)

	report, err := calc.AccountantReport(2025)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.Expenses.Year != 2025 || report.Expenses.Total != 0 {
		t.Fatalf("expenses = %+v", report.Expenses)
	}
	if report.NetIncome != report.TaxableIncome {
		t.Fatalf("net = %v, taxable = %v", report.NetIncome, report.TaxableIncome)
	}
	if report.GeneratedAt.IsZero() {
		t.Fatalf("missing generation timestamp")
	}
}
