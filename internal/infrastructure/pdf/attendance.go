package pdf

import (
	"fmt"
	"strconv"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/constructora-api/internal/application/ports"
	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/jhoicas/constructora-api/internal/domain/report"
)

var statusColors = map[entity.AttendanceStatus]*props.Color{
	entity.AttendancePresent:   {Red: 46, Green: 125, Blue: 50},
	entity.AttendanceAbsent:    {Red: 198, Green: 40, Blue: 40},
	entity.AttendanceLate:      {Red: 239, Green: 108, Blue: 0},
	entity.AttendanceJustified: {Red: 21, Green: 101, Blue: 192},
}

// Anchos en unidades de grilla; cada día ocupa una.
const (
	nameSize  = 9
	docSize   = 4
	totalSize = 2
	pctSize   = 3
)

// AttendanceMatrix matriz apaisada empleado × día con totales.
func (g *Generator) AttendanceMatrix(m *report.AttendanceMatrix, meta ports.ReportMeta) ([]byte, error) {
	grid := nameSize + docSize + len(m.Days) + totalSize*len(entity.AttendanceStatuses) + pctSize
	doc := g.newDocument(meta, page{landscape: true, grid: grid})

	doc.AddRows(matrixHeaderRow(m.Days))
	for i, r := range m.Rows {
		doc.AddRows(matrixRow(r, m.Days, i%2 == 1))
	}
	if len(m.Rows) == 0 {
		doc.AddRows(row.New(8).Add(col.New().Add(
			text.New("No hay empleados activos.", props.Text{Size: 8, Color: colorGray, Top: 2}),
		)))
	}
	doc.AddRows(legendRow())
	return finish(doc, meta)
}

func cellText(s string, style props.Text) core.Component {
	style.Align = align.Center
	if style.Size == 0 {
		style.Size = 6.5
	}
	style.Top = 1.5
	return text.New(s, style)
}

func matrixHeaderRow(days []report.Day) core.Row {
	head := props.Text{Style: fontstyle.Bold, Size: 6.5, Color: colorWhite}
	r := row.New(9).Add(
		col.New(nameSize).Add(text.New("Apellidos y nombres", props.Text{
			Style: fontstyle.Bold, Size: 7, Color: colorWhite, Top: 3, Left: 1,
		})),
		col.New(docSize).Add(cellText("DNI", head)),
	)
	for _, d := range days {
		c := col.New(1).Add(
			text.New(d.WeekdayAbbr, props.Text{Style: fontstyle.Bold, Size: 5.5, Color: colorWhite, Align: align.Center, Top: 0.5}),
			text.New(strconv.Itoa(d.DayOfMonth), props.Text{Style: fontstyle.Bold, Size: 6.5, Color: colorWhite, Align: align.Center, Top: 4}),
		)
		if d.Weekend {
			c.WithStyle(&props.Cell{BackgroundColor: colorGray})
		}
		r.Add(c)
	}
	for _, st := range entity.AttendanceStatuses {
		r.Add(col.New(totalSize).Add(cellText(report.Glyph(st), head)))
	}
	r.Add(col.New(pctSize).Add(cellText("%", head)))
	return r.WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func matrixRow(mr report.MatrixRow, days []report.Day, striped bool) core.Row {
	r := row.New(6).Add(
		col.New(nameSize).Add(text.New(mr.Name, props.Text{Size: 7, Top: 1.5, Left: 1})),
		col.New(docSize).Add(cellText(mr.DocumentNumber, props.Text{})),
	)
	for i, st := range mr.Cells {
		c := col.New(1)
		if st != "" {
			c.Add(cellText(report.Glyph(st), props.Text{Style: fontstyle.Bold, Color: statusColors[st]}))
		}
		if days[i].Weekend {
			c.WithStyle(&props.Cell{BackgroundColor: colorWeekend})
		}
		r.Add(c)
	}
	for _, st := range entity.AttendanceStatuses {
		r.Add(col.New(totalSize).Add(cellText(strconv.Itoa(mr.Totals[st]), props.Text{})))
	}
	r.Add(col.New(pctSize).Add(cellText(mr.Percent.StringFixed(2)+"%", props.Text{Style: fontstyle.Bold})))
	if striped {
		r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
	}
	return r
}

func legendRow() core.Row {
	r := row.New(8)
	for _, st := range entity.AttendanceStatuses {
		r.Add(col.New().Add(text.New(fmt.Sprintf("%s = %s", report.Glyph(st), statusNames[st]), props.Text{
			Size: 7, Style: fontstyle.Bold, Color: statusColors[st], Top: 3,
		})))
	}
	return r
}

var statusNames = map[entity.AttendanceStatus]string{
	entity.AttendancePresent:   "Asistió",
	entity.AttendanceAbsent:    "Falta",
	entity.AttendanceLate:      "Tardanza",
	entity.AttendanceJustified: "Justificado",
}
