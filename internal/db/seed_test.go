package db

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nicsoto/ArriendoFacil/internal/models"
)

func TestSeedIdempotent(t *testing.T) {
	d, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range Migratables() {
		if err := d.AutoMigrate(m); err != nil {
			t.Fatal(err)
		}
	}
	if err := SeedDemoData(d); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := SeedDemoData(d); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	var props, contracts, payments int64
	d.Model(&models.Property{}).Count(&props)
	d.Model(&models.Contract{}).Count(&contracts)
	d.Model(&models.Payment{}).Count(&payments)
	if props != 3 {
		t.Fatalf("properties = %d, want 3", props)
	}
	if contracts != 2 {
		t.Fatalf("contracts = %d, want 2", contracts)
	}
	// Both demo contracts cover 13 calendar months (start month through the
	// month of the end date one year later).
	if payments != 26 {
		t.Fatalf("payments = %d, want 26", payments)
	}
}

func TestIsPostgresDSN(t *testing.T) {
	cases := map[string]bool{
		"postgres://user:pw@host/db":   true,
		"postgresql://user:pw@host/db": true,
		"file:arriendofacil.db":        false,
		"file::memory:?cache=shared":   false,
	}
	for dsn, want := range cases {
		if got := isPostgresDSN(dsn); got != want {
			t.Fatalf("isPostgresDSN(%q) = %v, want %v", dsn, got, want)
		}
	}
}
