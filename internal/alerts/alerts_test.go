package alerts

import (
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nicsoto/ArriendoFacil/internal/models"
	"github.com/nicsoto/ArriendoFacil/internal/store"
)

func setupTestEngine(t *testing.T) (*Engine, *store.Store) {
	t.Helper()
	dbi, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := dbi.AutoMigrate(&models.Property{}, &models.Contract{}, &models.Payment{}, &models.Settings{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	st := store.New(dbi)
	return NewEngine(st), st
}

func mkDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func addFixture(t *testing.T, st *store.Store, start, end time.Time, adjustment models.AdjustmentType) (*models.Property, *models.Contract) {
	t.Helper()
	p := &models.Property{Type: models.PropertyApartment, Address: "Calle Los Leones 45", Size: 58}
	if err := st.AddProperty(p); err != nil {
		t.Fatalf("add property: %v", err)
	}
	c := &models.Contract{
		PropertyID:  p.ID,
		Tenant:      models.Person{Name: "Juan Pérez", Email: "juan@example.com"},
		StartDate:   start,
		EndDate:     end,
		MonthlyRent: 500000,
		Adjustment:  adjustment,
		LeaseType:   models.LeaseFixedTerm,
		Pets:        models.PetsForbidden,
	}
	if err := st.AddContract(c); err != nil {
		t.Fatalf("add contract: %v", err)
	}
	return p, c
}

func TestLatePaymentSeverity(t *testing.T) {
	engine, st := setupTestEngine(t)
	_, c := addFixture(t, st, mkDate(2025, 1, 1), mkDate(2025, 2, 28), models.AdjustmentFixed)

	// Due dates are 2025-01-05 and 2025-02-05. At 2025-02-13 January is 39
	// days late (danger) and February 8 days late (warning).
	alerts, err := engine.List(mkDate(2025, 2, 13))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var late []Alert
	for _, a := range alerts {
		if a.Kind == KindLatePayment {
			late = append(late, a)
		}
	}
	if len(late) != 2 {
		t.Fatalf("got %d late alerts, want 2", len(late))
	}
	if late[0].Severity != SeverityDanger || late[1].Severity != SeverityWarning {
		t.Fatalf("severities = %s, %s", late[0].Severity, late[1].Severity)
	}
	if !strings.Contains(late[0].Message, "39 días") {
		t.Fatalf("message = %q", late[0].Message)
	}
	if len(late[0].Actions) != 2 || late[0].Actions[0].Action != "sendReminder" {
		t.Fatalf("actions = %+v", late[0].Actions)
	}
	_ = c
}

func TestExpiringContractSeverityWindow(t *testing.T) {
	engine, st := setupTestEngine(t)
	today := mkDate(2025, 6, 1)

	// Ends in 10 days: warning. Ends in 25 days: info. Ends in 60 days: no alert.
	addFixture(t, st, mkDate(2024, 6, 15), today.AddDate(0, 0, 10), models.AdjustmentFixed)
	addFixture(t, st, mkDate(2024, 7, 1), today.AddDate(0, 0, 25), models.AdjustmentFixed)
	addFixture(t, st, mkDate(2024, 8, 1), today.AddDate(0, 0, 60), models.AdjustmentFixed)

	alerts, err := engine.List(today)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var expiring []Alert
	for _, a := range alerts {
		if a.Kind == KindExpiringContract {
			expiring = append(expiring, a)
		}
	}
	if len(expiring) != 2 {
		t.Fatalf("got %d expiring alerts, want 2", len(expiring))
	}
	// Severity sort puts the warning before the info.
	if expiring[0].Severity != SeverityWarning || expiring[1].Severity != SeverityInfo {
		t.Fatalf("severities = %s, %s", expiring[0].Severity, expiring[1].Severity)
	}
}

func TestPendingAdjustmentWindow(t *testing.T) {
	engine, st := setupTestEngine(t)
	today := mkDate(2025, 6, 1)

	// Anniversary 10 days ago: alert. Fixed contract in the window: none.
	addFixture(t, st, today.AddDate(-1, 0, -10), today.AddDate(0, 6, 0), models.AdjustmentIPC)
	addFixture(t, st, today.AddDate(-1, 0, -5), today.AddDate(0, 6, 0), models.AdjustmentFixed)
	// Anniversary 45 days ago: window closed.
	addFixture(t, st, today.AddDate(-1, 0, -45), today.AddDate(0, 6, 0), models.AdjustmentUF)

	alerts, err := engine.List(today)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var pending []Alert
	for _, a := range alerts {
		if a.Kind == KindPendingAdjustment {
			pending = append(pending, a)
		}
	}
	if len(pending) != 1 {
		t.Fatalf("got %d pending-adjustment alerts, want 1", len(pending))
	}
	if pending[0].Severity != SeverityInfo || pending[0].Title != "Reajuste Pendiente" {
		t.Fatalf("alert = %+v", pending[0])
	}

	// The alert repeats while the window is open.
	again, err := engine.List(today.AddDate(0, 0, 3))
	if err != nil {
		t.Fatalf("list again: %v", err)
	}
	found := false
	for _, a := range again {
		if a.ID == pending[0].ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("alert did not repeat within the window")
	}
}

func TestAlertOrderingBySeverity(t *testing.T) {
	engine, st := setupTestEngine(t)
	today := mkDate(2025, 6, 1)

	// One danger late payment, one info expiring contract.
	addFixture(t, st, mkDate(2025, 4, 1), today.AddDate(0, 0, 25), models.AdjustmentFixed)

	alerts, err := engine.List(today)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(alerts) < 2 {
		t.Fatalf("got %d alerts", len(alerts))
	}
	for i := 1; i < len(alerts); i++ {
		if severityRank(alerts[i-1].Severity) > severityRank(alerts[i].Severity) {
			t.Fatalf("alerts out of order at %d: %s after %s", i, alerts[i].Severity, alerts[i-1].Severity)
		}
	}
}

func TestCounts(t *testing.T) {
	engine, st := setupTestEngine(t)
	today := mkDate(2025, 6, 1)
	addFixture(t, st, mkDate(2025, 4, 1), today.AddDate(0, 0, 25), models.AdjustmentFixed)

	counts, err := engine.Counts(today)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts.Total != counts.Danger+counts.Warning+counts.Info {
		t.Fatalf("counts do not add up: %+v", counts)
	}
	if counts.ByKind[KindExpiringContract] != 1 {
		t.Fatalf("expiring count = %d", counts.ByKind[KindExpiringContract])
	}
}

func TestPaymentReminder(t *testing.T) {
	engine, st := setupTestEngine(t)
	_, c := addFixture(t, st, mkDate(2025, 1, 1), mkDate(2025, 3, 31), models.AdjustmentFixed)
	payments, err := st.ListPaymentsByContract(c.ID)
	if err != nil {
		t.Fatalf("list payments: %v", err)
	}

	reminder, err := engine.PaymentReminder(payments[0].ID, mkDate(2025, 1, 20))
	if err != nil {
		t.Fatalf("reminder: %v", err)
	}
	if reminder.To != "juan@example.com" {
		t.Fatalf("to = %q", reminder.To)
	}
	if !strings.Contains(reminder.Subject, "2025-01") {
		t.Fatalf("subject = %q", reminder.Subject)
	}
	if !strings.Contains(reminder.Body, "Juan Pérez") || !strings.Contains(reminder.Body, "Calle Los Leones 45") {
		t.Fatalf("body = %q", reminder.Body)
	}
	if !strings.Contains(reminder.Body, "Días de atraso: 15") {
		t.Fatalf("body lacks lateness: %q", reminder.Body)
	}
}
