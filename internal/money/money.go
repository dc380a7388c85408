// Package money formats CLP amounts and percentages for documents and
// reminders, matching the es-CL locale (thousands separated with dots,
// no cents for pesos).
package money

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse("es-CL"))

// FormatCLP renders a peso amount like "$450.000".
func FormatCLP(amount float64) string {
	return "$" + printer.Sprint(number.Decimal(int64(math.Round(amount))))
}

// FormatUF renders a UF amount with two decimals, e.g. "UF 12,50".
func FormatUF(amount float64) string {
	return "UF " + printer.Sprint(number.Decimal(amount, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// FormatPercent renders a signed percentage with two decimals: "+3,25%".
func FormatPercent(v float64) string {
	s := printer.Sprint(number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	if v > 0 {
		return "+" + s + "%"
	}
	return s + "%"
}

// FormatAmount picks the right formatter for a contract currency code.
func FormatAmount(amount float64, currency string) string {
	if currency == "UF" {
		return FormatUF(amount)
	}
	return FormatCLP(amount)
}
