package excel

import (
	"fmt"

	"github.com/jhoicas/constructora-api/internal/application/ports"
	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/jhoicas/constructora-api/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

// Posiciones fijas de la matriz de asistencia.
const (
	matrixHeaderRow = 5
	matrixFixedCols = 4 // N°, DNI, Apellidos y nombres, Cargo
)

// AttendanceMatrix una fila por empleado y una columna por día; fines de semana sombreados.
// Al final van los totales por estado y el porcentaje de asistencia.
func (w *Writer) AttendanceMatrix(m *report.AttendanceMatrix, meta ports.ReportMeta) ([]byte, error) {
	b := newBook("Asistencia")
	firstDay := matrixFixedCols + 1
	firstTotal := firstDay + len(m.Days)
	pctCol := firstTotal + len(entity.AttendanceStatuses)
	b.banner(meta, pctCol)

	head := b.newStyle(headerStyle(colorPrimary))
	headWeekend := b.newStyle(headerStyle("7F7F7F"))
	text := b.newStyle(&excelize.Style{Border: border(colorBorder), Alignment: &excelize.Alignment{Vertical: "center"}})
	number := b.newStyle(&excelize.Style{Border: border(colorBorder), Alignment: &excelize.Alignment{Horizontal: "center"}})
	percent := b.newStyle(&excelize.Style{Border: border(colorBorder), Alignment: &excelize.Alignment{Horizontal: "center"}, CustomNumFmt: ptr(`0.00"%"`)})
	weekend := b.newStyle(&excelize.Style{Border: border(colorBorder), Fill: solid(colorWeekend)})
	glyph := map[entity.AttendanceStatus][2]int{}
	glyphStyle := func(st entity.AttendanceStatus, fill string) int {
		s := &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: statusColors[st]},
			Border:    border(colorBorder),
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		}
		if fill != "" {
			s.Fill = solid(fill)
		}
		return b.newStyle(s)
	}
	for _, st := range entity.AttendanceStatuses {
		glyph[st] = [2]int{glyphStyle(st, ""), glyphStyle(st, colorWeekend)}
	}

	// Encabezado
	r := matrixHeaderRow
	for i, h := range []string{"N°", "DNI", "Apellidos y nombres", "Cargo"} {
		b.set(i+1, r, h)
	}
	b.style(1, r, matrixFixedCols, r, head)
	for i, d := range m.Days {
		c := firstDay + i
		b.set(c, r, fmt.Sprintf("%s\n%d", d.WeekdayAbbr, d.DayOfMonth))
		if d.Weekend {
			b.style(c, r, c, r, headWeekend)
		} else {
			b.style(c, r, c, r, head)
		}
		b.width(c, 4.5)
	}
	for i, st := range entity.AttendanceStatuses {
		b.set(firstTotal+i, r, statusLabels[st])
	}
	b.set(pctCol, r, "% Asist.")
	b.style(firstTotal, r, pctCol, r, head)
	b.height(r, 30)

	for i, wd := range []float64{5, 11, 34, 18} {
		b.width(i+1, wd)
	}
	for c := firstTotal; c <= pctCol; c++ {
		b.width(c, 11)
	}

	// Filas
	for i, row := range m.Rows {
		r := matrixHeaderRow + 1 + i
		b.set(1, r, i+1)
		b.set(2, r, row.DocumentNumber)
		b.set(3, r, row.Name)
		b.set(4, r, row.RoleName)
		b.style(1, r, matrixFixedCols, r, text)
		for j, st := range row.Cells {
			c := firstDay + j
			we := m.Days[j].Weekend
			if st == "" {
				if we {
					b.style(c, r, c, r, weekend)
				} else {
					b.style(c, r, c, r, number)
				}
				continue
			}
			b.set(c, r, report.Glyph(st))
			idx := 0
			if we {
				idx = 1
			}
			b.style(c, r, c, r, glyph[st][idx])
		}
		for k, st := range entity.AttendanceStatuses {
			b.set(firstTotal+k, r, row.Totals[st])
		}
		b.style(firstTotal, r, pctCol-1, r, number)
		b.set(pctCol, r, row.Percent)
		b.style(pctCol, r, pctCol, r, percent)
	}

	// Leyenda
	r = matrixHeaderRow + len(m.Rows) + 2
	for i, st := range entity.AttendanceStatuses {
		b.set(3, r+i, fmt.Sprintf("%s  %s", report.Glyph(st), statusLabels[st]))
		b.style(3, r+i, 3, r+i, glyph[st][0])
	}

	if b.err == nil && len(m.Rows) > 0 {
		top, _ := excelize.CoordinatesToCellName(firstDay, matrixHeaderRow+1)
		b.err = b.f.SetPanes(b.sheet, &excelize.Panes{
			Freeze:      true,
			XSplit:      matrixFixedCols,
			YSplit:      matrixHeaderRow,
			TopLeftCell: top,
			ActivePane:  "bottomRight",
		})
	}
	return b.bytes()
}

func ptr[T any](v T) *T { return &v }
