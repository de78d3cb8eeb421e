// Package pdf genera los documentos PDF con Maroto v2.
//
// Todas las páginas comparten la misma cabecera:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  Razón social + RUC            │  Título + Subtítulo        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  cuerpo del documento                                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Generado el dd/mm/yyyy hh:mm                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/constructora-api/internal/application/ports"
)

var _ ports.PDFWriter = (*Generator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorWeekend = &props.Color{Red: 231, Green: 230, Blue: 230}
	colorStripe  = &props.Color{Red: 242, Green: 246, Blue: 250}
	colorGroup   = &props.Color{Red: 217, Green: 226, Blue: 243}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// Generator implementa ports.PDFWriter usando Maroto v2.
type Generator struct {
	fonts []*entity.CustomFont
}

// NewGenerator construye el generador con la fuente DejaVu registrada.
func NewGenerator() *Generator {
	fonts, _ := customFonts() // fuentes en memoria: Load no lee disco
	return &Generator{fonts: fonts}
}

// page opciones de página de un documento.
type page struct {
	landscape bool
	grid      int // columnas de la grilla; 0 = 12
}

func (g *Generator) newDocument(meta ports.ReportMeta, p page) core.Maroto {
	b := config.NewBuilder().
		WithCustomFonts(g.fonts).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: fontFamily, Size: 9}).
		WithTitle(meta.Title, true).
		WithAuthor(meta.CompanyName, true)
	if p.landscape {
		b = b.WithOrientation(orientation.Horizontal)
	}
	if p.grid > 0 {
		b = b.WithMaxGridSize(p.grid)
	}
	m := maroto.New(b.Build())
	m.AddRows(bannerRow(meta, gridOf(p)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	return m
}

func gridOf(p page) int {
	if p.grid > 0 {
		return p.grid
	}
	return 12
}

// finish agrega el pie y serializa.
func finish(m core.Maroto, meta ports.ReportMeta) ([]byte, error) {
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	if !meta.GeneratedAt.IsZero() {
		m.AddRows(row.New(5).Add(col.New().Add(
			text.New("Generado el "+meta.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 7, Color: colorGray, Top: 1,
			}),
		)))
	}
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// bannerRow: razón social + RUC (izq) y título + subtítulo (der).
func bannerRow(meta ports.ReportMeta, grid int) core.Row {
	left := grid * 7 / 12
	ruc := ""
	if meta.CompanyRUC != "" {
		ruc = "RUC: " + meta.CompanyRUC
	}
	return row.New(18).Add(
		col.New(left).Add(
			text.New(meta.CompanyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(ruc, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(grid-left).Add(
			text.New(strings.ToUpper(meta.Title), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(meta.Subtitle, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 8,
			}),
		),
	)
}

// sectionTitle: rótulo en azul sobre un bloque.
func sectionTitle(label string) core.Row {
	return row.New(7).Add(col.New().Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

// column ancho y alineación de una columna de tabla.
type column struct {
	label string
	size  int
	align align.Type
}

// tableHeaderRow: cabecera blanca sobre fondo azul.
func tableHeaderRow(cols []column) core.Row {
	r := row.New(8)
	for _, c := range cols {
		r.Add(col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return r.WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRow: una fila de datos; bg puede ser nil.
func tableRow(cols []column, values []string, bg *props.Color) core.Row {
	r := row.New(7)
	for i, c := range cols {
		r.Add(col.New(c.size).Add(text.New(values[i], props.Text{
			Size: 8, Align: c.align, Top: 1.5, Left: 1, Right: 1,
		})))
	}
	if bg != nil {
		r.WithStyle(&props.Cell{BackgroundColor: bg})
	}
	return r
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney separa miles con coma y deja dos decimales.
// Ej: 25000 → "25,000.00", -1234.5 → "-1,234.50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	return sign + groupThousands(intPart) + "." + frac
}

func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

// formatQty cantidad sin ceros de relleno: 10 → "10", 2.5 → "2.5".
func formatQty(d decimal.Decimal) string {
	return d.String()
}

func currencySymbol(code string) string {
	if code == "USD" {
		return "US$ "
	}
	return "S/ "
}
