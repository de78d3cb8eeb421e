package excel

import (
	"github.com/jhoicas/constructora-api/internal/application/ports"
	"github.com/xuri/excelize/v2"
)

var numFormats = map[string]string{
	"date":   "dd/mm/yyyy",
	"money":  "#,##0.00",
	"number": "#,##0.##",
}

// Table exportación de un listado: cabecera en la fila 5 y una fila por registro.
func (w *Writer) Table(t ports.Table, meta ports.ReportMeta) ([]byte, error) {
	sheet := t.Sheet
	if sheet == "" {
		sheet = "Datos"
	}
	b := newBook(sheet)
	last := len(t.Columns)
	if meta.Title == "" {
		meta.Title = t.Title
	}
	b.banner(meta, last)

	head := b.newStyle(headerStyle(colorPrimary))
	styles := make([]int, last)
	for i, c := range t.Columns {
		s := &excelize.Style{Border: border(colorBorder)}
		if f, ok := numFormats[c.Format]; ok {
			s.CustomNumFmt = ptr(f)
		}
		styles[i] = b.newStyle(s)
	}

	const headerRow = 5
	for i, c := range t.Columns {
		b.set(i+1, headerRow, c.Header)
		if c.Width > 0 {
			b.width(i+1, c.Width)
		}
	}
	b.style(1, headerRow, last, headerRow, head)

	for i, row := range t.Rows {
		r := headerRow + 1 + i
		for j, v := range row {
			if j >= last {
				break
			}
			b.set(j+1, r, v)
			b.style(j+1, r, j+1, r, styles[j])
		}
	}
	if b.err == nil && len(t.Rows) > 0 {
		b.err = b.f.AutoFilter(b.sheet, autoFilterRange(last, headerRow+len(t.Rows)), nil)
	}
	return b.bytes()
}

func autoFilterRange(lastCol, lastRow int) string {
	to, _ := excelize.CoordinatesToCellName(lastCol, lastRow)
	return "A5:" + to
}
