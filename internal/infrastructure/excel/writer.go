// Package excel genera y lee libros de Excel con excelize (y extrame/xls para el formato .xls).
package excel

import (
	"fmt"
	"time"

	"github.com/jhoicas/constructora-api/internal/application/ports"
	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var _ ports.SpreadsheetWriter = (*Writer)(nil)

// ── Paleta ────────────────────────────────────────────────────────────────────

const (
	colorPrimary = "00467F"
	colorWeekend = "E7E6E6"
	colorStripe  = "F2F6FA"
	colorGroup   = "D9E2F3"
	colorBorder  = "BFBFBF"
)

var statusColors = map[entity.AttendanceStatus]string{
	entity.AttendancePresent:   "2E7D32",
	entity.AttendanceAbsent:    "C62828",
	entity.AttendanceLate:      "EF6C00",
	entity.AttendanceJustified: "1565C0",
}

var statusLabels = map[entity.AttendanceStatus]string{
	entity.AttendancePresent:   "Asistió",
	entity.AttendanceAbsent:    "Falta",
	entity.AttendanceLate:      "Tardanza",
	entity.AttendanceJustified: "Justificado",
}

// Writer implementa ports.SpreadsheetWriter.
type Writer struct{}

func NewWriter() *Writer { return &Writer{} }

// book envuelve el archivo y la hoja activa para no repetir el nombre en cada llamada.
type book struct {
	f     *excelize.File
	sheet string
	err   error
}

func newBook(sheet string) *book {
	f := excelize.NewFile()
	b := &book{f: f, sheet: sheet}
	b.err = f.SetSheetName("Sheet1", sheet)
	return b
}

// set escribe un valor en (col, row), ambos desde 1; el primer error queda en b.err.
func (b *book) set(col, row int, v any) {
	if b.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		b.err = err
		return
	}
	if v = cellValue(v); v == nil {
		return
	}
	b.err = b.f.SetCellValue(b.sheet, cell, v)
}

func (b *book) style(fromCol, fromRow, toCol, toRow, id int) {
	if b.err != nil {
		return
	}
	from, _ := excelize.CoordinatesToCellName(fromCol, fromRow)
	to, _ := excelize.CoordinatesToCellName(toCol, toRow)
	b.err = b.f.SetCellStyle(b.sheet, from, to, id)
}

func (b *book) merge(fromCol, fromRow, toCol, toRow int) {
	if b.err != nil || (fromCol == toCol && fromRow == toRow) {
		return
	}
	from, _ := excelize.CoordinatesToCellName(fromCol, fromRow)
	to, _ := excelize.CoordinatesToCellName(toCol, toRow)
	b.err = b.f.MergeCell(b.sheet, from, to)
}

func (b *book) width(col int, w float64) {
	if b.err != nil {
		return
	}
	name, _ := excelize.ColumnNumberToName(col)
	b.err = b.f.SetColWidth(b.sheet, name, name, w)
}

func (b *book) height(row int, h float64) {
	if b.err != nil {
		return
	}
	b.err = b.f.SetRowHeight(b.sheet, row, h)
}

func (b *book) newStyle(s *excelize.Style) int {
	if b.err != nil {
		return 0
	}
	id, err := b.f.NewStyle(s)
	b.err = err
	return id
}

// bytes serializa el libro y lo cierra.
func (b *book) bytes() ([]byte, error) {
	defer func() { _ = b.f.Close() }()
	if b.err != nil {
		return nil, fmt.Errorf("excel: %w", b.err)
	}
	buf, err := b.f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serializar: %w", err)
	}
	return buf.Bytes(), nil
}

// banner escribe razón social, título y subtítulo en las filas 1-3, combinadas hasta lastCol.
func (b *book) banner(meta ports.ReportMeta, lastCol int) {
	company := meta.CompanyName
	if meta.CompanyRUC != "" {
		company += "  ·  RUC " + meta.CompanyRUC
	}
	title := b.newStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14, Color: colorPrimary}})
	sub := b.newStyle(&excelize.Style{Font: &excelize.Font{Size: 10, Color: "595959"}})
	lines := []struct {
		text  string
		style int
	}{
		{company, sub},
		{meta.Title, title},
		{meta.Subtitle, sub},
	}
	for i, l := range lines {
		b.set(1, i+1, l.text)
		b.merge(1, i+1, lastCol, i+1)
		b.style(1, i+1, lastCol, i+1, l.style)
	}
}

func border(color string) []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: color, Style: 1},
		{Type: "right", Color: color, Style: 1},
		{Type: "top", Color: color, Style: 1},
		{Type: "bottom", Color: color, Style: 1},
	}
}

func solid(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
}

func headerStyle(fill string) *excelize.Style {
	return &excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 10},
		Fill:      solid(fill),
		Border:    border(colorBorder),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	}
}

// cellValue adapta los tipos de dominio a valores que excelize entiende.
func cellValue(v any) any {
	switch x := v.(type) {
	case decimal.Decimal:
		return x.InexactFloat64()
	case *decimal.Decimal:
		if x == nil {
			return nil
		}
		return x.InexactFloat64()
	case *time.Time:
		if x == nil {
			return nil
		}
		return *x
	}
	return v
}
