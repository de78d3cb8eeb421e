// Package htmlreport genera la versión imprimible (HTML) de la matriz de asistencia.
// El documento se arma como árbol con etree para que todo el texto salga escapado.
package htmlreport

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/jhoicas/constructora-api/internal/application/ports"
	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/jhoicas/constructora-api/internal/domain/report"
)

const stylesheet = `
body { font-family: Arial, Helvetica, sans-serif; font-size: 11px; color: #222; margin: 16px; }
header h1 { font-size: 16px; margin: 0; color: #1F4E79; }
header p { margin: 2px 0; color: #595959; }
table.matrix { border-collapse: collapse; margin-top: 12px; }
table.matrix th, table.matrix td { border: 1px solid #BFBFBF; padding: 2px 4px; }
table.matrix th { background: #1F4E79; color: #fff; font-weight: bold; text-align: center; }
table.matrix th.weekend { background: #7F7F7F; }
table.matrix td.weekend { background: #EDEDED; }
table.matrix td.day, table.matrix td.num { text-align: center; }
td.asistio { color: #2E7D32; font-weight: bold; }
td.falta { color: #C62828; font-weight: bold; }
td.tardanza { color: #EF6C00; font-weight: bold; }
td.justificado { color: #1565C0; font-weight: bold; }
ul.legend { list-style: none; padding: 0; margin-top: 10px; }
ul.legend li { display: inline; margin-right: 16px; }
footer { margin-top: 12px; color: #7F7F7F; font-size: 9px; }
@media print { body { margin: 0; } @page { size: landscape; } }
`

var (
	statusClass = map[entity.AttendanceStatus]string{
		entity.AttendancePresent:   "asistio",
		entity.AttendanceAbsent:    "falta",
		entity.AttendanceLate:      "tardanza",
		entity.AttendanceJustified: "justificado",
	}
	statusNames = map[entity.AttendanceStatus]string{
		entity.AttendancePresent:   "Asistió",
		entity.AttendanceAbsent:    "Falta",
		entity.AttendanceLate:      "Tardanza",
		entity.AttendanceJustified: "Justificado",
	}
)

// Renderer implementa ports.HTMLWriter.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// AttendanceMatrix misma matriz que el XLSX: una columna por día, totales y porcentaje.
func (r *Renderer) AttendanceMatrix(m *report.AttendanceMatrix, meta ports.ReportMeta) ([]byte, error) {
	doc := etree.NewDocument()
	doc.WriteSettings.CanonicalEndTags = true
	doc.CreateDirective("DOCTYPE html")

	html := doc.CreateElement("html")
	html.CreateAttr("lang", "es")
	head := html.CreateElement("head")
	head.CreateElement("meta").CreateAttr("charset", "utf-8")
	head.CreateElement("title").SetText(meta.Title + " - " + m.Title())
	head.CreateElement("style").SetText(stylesheet)

	body := html.CreateElement("body")
	header := body.CreateElement("header")
	header.CreateElement("h1").SetText(meta.CompanyName)
	if meta.CompanyRUC != "" {
		header.CreateElement("p").SetText("RUC " + meta.CompanyRUC)
	}
	header.CreateElement("p").SetText(meta.Title)
	header.CreateElement("p").SetText(nonEmpty(meta.Subtitle, m.Title()))

	table := body.CreateElement("table")
	table.CreateAttr("class", "matrix")
	matrixHead(table.CreateElement("thead"), m)
	tbody := table.CreateElement("tbody")
	for i, row := range m.Rows {
		matrixRow(tbody.CreateElement("tr"), i+1, row, m.Days)
	}
	if len(m.Rows) == 0 {
		td := tbody.CreateElement("tr").CreateElement("td")
		td.CreateAttr("colspan", fmt.Sprint(4+len(m.Days)+len(entity.AttendanceStatuses)+1))
		td.SetText("Sin empleados activos")
	}

	legend := body.CreateElement("ul")
	legend.CreateAttr("class", "legend")
	for _, st := range entity.AttendanceStatuses {
		legend.CreateElement("li").SetText(report.Glyph(st) + " " + statusNames[st])
	}
	body.CreateElement("footer").SetText("Generado el " + meta.GeneratedAt.Format("02/01/2006 15:04"))

	doc.Indent(1)
	return doc.WriteToBytes()
}

func matrixHead(thead *etree.Element, m *report.AttendanceMatrix) {
	tr := thead.CreateElement("tr")
	for _, h := range []string{"N°", "DNI", "Apellidos y nombres", "Cargo"} {
		tr.CreateElement("th").SetText(h)
	}
	for _, d := range m.Days {
		th := tr.CreateElement("th")
		if d.Weekend {
			th.CreateAttr("class", "weekend")
		}
		th.SetText(d.WeekdayAbbr)
		th.CreateElement("br")
		th.CreateText(fmt.Sprint(d.DayOfMonth))
	}
	for _, st := range entity.AttendanceStatuses {
		tr.CreateElement("th").SetText(statusNames[st])
	}
	tr.CreateElement("th").SetText("% Asist.")
}

func matrixRow(tr *etree.Element, n int, row report.MatrixRow, days []report.Day) {
	cell(tr, "num", fmt.Sprint(n))
	cell(tr, "", row.DocumentNumber)
	cell(tr, "", row.Name)
	cell(tr, "", row.RoleName)
	for i, st := range row.Cells {
		class := "day"
		if days[i].Weekend {
			class += " weekend"
		}
		if c, ok := statusClass[st]; ok {
			class += " " + c
		}
		cell(tr, class, report.Glyph(st))
	}
	for _, st := range entity.AttendanceStatuses {
		cell(tr, "num", fmt.Sprint(row.Totals[st]))
	}
	cell(tr, "num", row.Percent.StringFixed(2)+"%")
}

func cell(tr *etree.Element, class, value string) {
	td := tr.CreateElement("td")
	if class != "" {
		td.CreateAttr("class", class)
	}
	td.SetText(value)
}

func nonEmpty(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

var _ ports.HTMLWriter = (*Renderer)(nil)
