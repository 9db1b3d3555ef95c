// Package quotation — текстовая котировка по готовому результату расчёта:
// дата, сгенерированный ID и строки операции. Для копирования и отправки в WhatsApp.
package quotation

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"

	"arbicalc/internal/domain"
	"arbicalc/internal/shared/format"
)

const (
	DateLayout  = "02/01/2006 15:04"
	shareURLFmt = "https://wa.me/?text=%s"
)

// Text для буфера обмена, WhatsApp с *жирным*, Summary короткая версия.
type Quotation struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generatedAt"`
	Date        string    `json:"date"`
	Text        string    `json:"text"`
	WhatsApp    string    `json:"whatsapp"`
	Summary     string    `json:"summary"`
	ShareURL    string    `json:"shareUrl"`
}

var detailed = template.Must(template.New("detailed").Funcs(funcs).Parse(
	`{{.B}}COTIZACIÓN DETALLADA{{.B}}

{{.Date}}
ID: {{.ID}}

{{.B}}Detalles de la Operación:{{.B}}
• Total Invertido: {{fixed .R.TotalInvested}} Bs
• Dólares Adquiridos: {{.R.DollarsAcquired}} USD
• Tipo de Cambio: {{.R.ExchangeRate}} Bs/USD

{{.B}}Resultados:{{.B}}
• Valor Final: {{fixed .R.FinalValue}} Bs
• Ganancia Bruta: {{fixed .R.GrossProfit}} Bs
• Comisión LLC ({{.R.LLCCommissionPct}}%): -{{fixed .R.LLCCommissionAmount}} Bs
• Gastos Extra: -{{fixed .R.ExtraExpenses}} Bs
• Comisión de Retiro ({{.R.WithdrawalCommissionPct}}%): -{{fixed .R.WithdrawalCommissionAmount}} Bs
• Ganancia Final: {{.B}}{{fixed .R.ClientProfit}} Bs{{.B}}
• Rentabilidad: {{.B}}{{pct .R.Profitability}}{{.B}}

{{.B}}Resumen:{{.B}}
• Reintegro Total: {{.B}}{{fixed .R.TotalReturn}} Bs{{.B}}

{{.I}}Calculado con la Calculadora de Transacciones Comerciales{{.I}}`))

var summary = template.Must(template.New("summary").Funcs(funcs).Parse(
	`*COTIZACIÓN ESPECIAL*

{{.Date}}
ID: {{.ID}}

*OPERACIÓN:*
• Inversión: {{money .R.TotalInvested}}
• Dólares: {{fixed .R.DollarsAcquired}} USD
• Ganancia: {{money .R.ClientProfit}}
• Total: {{money .R.TotalReturn}}
• Rentabilidad: {{pct .R.Profitability}}

*Sistema de cotizaciones*

(Generado automáticamente)`))

var funcs = template.FuncMap{
	"fixed": format.Fixed2,
	"pct":   format.Percent,
	"money": format.MoneyBO,
}

type view struct {
	B, I string
	Date string
	ID   string
	R    domain.TransactionResult
}

type Generator struct {
	now   func() time.Time
	newID func() string
	loc   *time.Location
}

type Option func(*Generator)

func WithClock(now func() time.Time) Option { return func(g *Generator) { g.now = now } }
func WithIDs(f func() string) Option        { return func(g *Generator) { g.newID = f } }
func WithLocation(l *time.Location) Option {
	return func(g *Generator) {
		if l != nil {
			g.loc = l
		}
	}
}

// La Paz: UTC-4 без перехода на летнее время.
var laPaz = time.FixedZone("BOT", -4*60*60)

func New(opts ...Option) *Generator {
	g := &Generator{now: time.Now, newID: NewID, loc: laPaz}
	for _, o := range opts {
		o(g)
	}
	return g
}

// NewID: "PROF-" + 9 hex-символов в верхнем регистре.
func NewID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "PROF-" + strings.ToUpper(raw[:9])
}

func (g *Generator) Build(res domain.TransactionResult) (Quotation, error) {
	at := g.now().In(g.loc)
	q := Quotation{
		ID:          g.newID(),
		GeneratedAt: at,
		Date:        at.Format(DateLayout),
	}
	base := view{Date: q.Date, ID: q.ID, R: res}

	var err error
	if q.Text, err = render(detailed, base); err != nil {
		return Quotation{}, err
	}
	wa := base
	wa.B, wa.I = "*", "_"
	if q.WhatsApp, err = render(detailed, wa); err != nil {
		return Quotation{}, err
	}
	if q.Summary, err = render(summary, base); err != nil {
		return Quotation{}, err
	}
	q.ShareURL = ShareURL(q.WhatsApp)
	return q, nil
}

// ShareURL: ссылка wa.me с текстом (пробелы как %20, как encodeURIComponent).
func ShareURL(text string) string {
	return fmt.Sprintf(shareURLFmt, strings.ReplaceAll(url.QueryEscape(text), "+", "%20"))
}

func render(t *template.Template, v view) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("quotation %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}
