// Package documents generates the legal paperwork of a lease as print-ready
// HTML: the contract itself, the annual rent-adjustment annex and the
// termination letter. The output is a template for review, not legal advice.
package documents

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/nicsoto/ArriendoFacil/internal/adjust"
	"github.com/nicsoto/ArriendoFacil/internal/models"
	"github.com/nicsoto/ArriendoFacil/internal/money"
)

//go:embed templates/*.html
var templateFS embed.FS

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

func formatDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
}

func monthsBetween(start, end time.Time) int {
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
}

func adjustmentText(t models.AdjustmentType) string {
	switch t {
	case models.AdjustmentIPC:
		return "según la variación del Índice de Precios al Consumidor (IPC) determinado por el Instituto Nacional de Estadísticas"
	case models.AdjustmentUF:
		return "según la variación de la Unidad de Fomento (UF)"
	default:
		return "sin reajuste, manteniéndose el valor inicial"
	}
}

func subleaseClause(c *models.Contract) string {
	if c.Sublease {
		return "Podrá subarrendar el inmueble previa autorización escrita de EL ARRENDADOR."
	}
	return "No podrá subarrendar ni ceder el contrato total o parcialmente sin autorización escrita de EL ARRENDADOR."
}

func petsClause(c *models.Contract) string {
	switch c.Pets {
	case models.PetsAllowed:
		return "Se permite la tenencia de mascotas en el inmueble, siendo EL ARRENDATARIO responsable de cualquier daño que estas pudieran ocasionar."
	case models.PetsRestricted:
		return "Se permite la tenencia de mascotas pequeñas (máximo 10 kg) previa autorización escrita de EL ARRENDADOR, siendo EL ARRENDATARIO responsable de cualquier daño."
	default:
		return "No se permite la tenencia de mascotas en el inmueble."
	}
}

var ordinals = map[int]string{
	11: "UNDÉCIMO",
	12: "DUODÉCIMO",
	13: "DECIMOTERCERO",
	14: "DECIMOCUARTO",
}

// lastClauseNumber shifts the closing clause past the optional furnished and
// inventory clauses.
func lastClauseNumber(c *models.Contract) string {
	n := 11
	if c.Furnished {
		n++
	}
	if c.Inventory != "" {
		n++
	}
	if name, ok := ordinals[n]; ok {
		return name
	}
	return fmt.Sprintf("CLÁUSULA %d", n)
}

func termClause(c *models.Contract) template.HTML {
	start, end := formatDate(c.StartDate), formatDate(c.EndDate)
	var b strings.Builder
	switch c.LeaseType {
	case models.LeaseMonthToMonth:
		fmt.Fprintf(&b, "<p>El presente contrato se celebra <strong>mes a mes</strong>, comenzando el %s.</p>", start)
		b.WriteString("<p>Cualquiera de las partes podrá ponerle término mediante aviso escrito con al menos 30 días de anticipación al término del mes respectivo.</p>")
	case models.LeaseIndefinite:
		fmt.Fprintf(&b, "<p>El presente contrato se celebra por <strong>tiempo indefinido</strong>, comenzando el %s.</p>", start)
		b.WriteString("<p>Conforme a la Ley N° 18.101, EL ARRENDADOR podrá poner término al contrato mediante desahucio judicial o notificación notarial, debiendo dar aviso con la anticipación que corresponda según la duración del arriendo.</p>")
	default:
		fmt.Fprintf(&b, "<p>El plazo del presente contrato será de %d meses, comenzando el %s y finalizando el %s.</p>", monthsBetween(c.StartDate, c.EndDate), start, end)
		b.WriteString("<p>Conforme a la Ley N° 18.101, el plazo mínimo será de un año para propiedades urbanas. En caso de no existir desahucio, se entenderá prorrogado por períodos iguales.</p>")
	}
	return template.HTML(b.String())
}

// Generator renders the embedded document templates.
type Generator struct {
	tmpl *template.Template
}

func NewGenerator() (*Generator, error) {
	funcs := template.FuncMap{
		"formatDate":       formatDate,
		"formatCLP":        money.FormatCLP,
		"formatAmount":     money.FormatAmount,
		"formatPercent":    money.FormatPercent,
		"adjustmentText":   adjustmentText,
		"subleaseClause":   subleaseClause,
		"petsClause":       petsClause,
		"termClause":       termClause,
		"lastClauseNumber": lastClauseNumber,
	}
	tmpl, err := template.New("documents").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Generator{tmpl: tmpl}, nil
}

// LeaseData feeds the lease contract template.
type LeaseData struct {
	Contract *models.Contract
	Property *models.Property
	Landlord *models.Settings
	Today    time.Time
}

func (g *Generator) LeaseContract(data LeaseData) (string, error) {
	return g.render("lease.html", data)
}

// AnnexData feeds the rent-adjustment annex template.
type AnnexData struct {
	Contract   *models.Contract
	Property   *models.Property
	Landlord   *models.Settings
	Adjustment *adjust.Result
	Today      time.Time
	// EffectiveFrom is when the new rent starts ruling, normally the first
	// day of next month.
	EffectiveFrom time.Time
}

func (g *Generator) AdjustmentAnnex(data AnnexData) (string, error) {
	if data.EffectiveFrom.IsZero() {
		next := data.Today.AddDate(0, 1, 0)
		data.EffectiveFrom = time.Date(next.Year(), next.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return g.render("annex.html", data)
}

// TerminationData feeds the termination letter template.
type TerminationData struct {
	Contract *models.Contract
	Property *models.Property
	Landlord *models.Settings
	Reason   string
	Today    time.Time
}

func (g *Generator) TerminationLetter(data TerminationData) (string, error) {
	if data.Reason == "" {
		data.Reason = "término de plazo"
	}
	return g.render("termination.html", data)
}

func (g *Generator) render(name string, data any) (string, error) {
	var b strings.Builder
	if err := g.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
