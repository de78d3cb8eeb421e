package excel

import (
	"github.com/jhoicas/constructora-api/internal/application/ports"
	"github.com/jhoicas/constructora-api/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const codesHeaderRow = 5

// AccountingCodes códigos contables agrupados por obra. El estilo de cada fila sale
// de su Kind: cabecera de grupo, dato (con franjas alternas) o separador.
func (w *Writer) AccountingCodes(rows []report.AccountingRow, meta ports.ReportMeta) ([]byte, error) {
	b := newBook("Códigos contables")
	headers := []string{"Código de obra", "Código contable", "Nombre", "Descripción", "Fecha de registro"}
	widths := []float64{16, 18, 36, 48, 18}
	last := len(headers)
	b.banner(meta, last)

	head := b.newStyle(headerStyle(colorPrimary))
	group := b.newStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: colorPrimary},
		Fill:      solid(colorGroup),
		Border:    border(colorBorder),
		Alignment: &excelize.Alignment{Vertical: "center"},
	})
	plain := b.newStyle(&excelize.Style{Border: border(colorBorder), Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	striped := b.newStyle(&excelize.Style{Border: border(colorBorder), Fill: solid(colorStripe), Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	date := b.newStyle(&excelize.Style{Border: border(colorBorder), CustomNumFmt: ptr("dd/mm/yyyy")})
	dateStriped := b.newStyle(&excelize.Style{Border: border(colorBorder), Fill: solid(colorStripe), CustomNumFmt: ptr("dd/mm/yyyy")})

	for i, h := range headers {
		b.set(i+1, codesHeaderRow, h)
		b.width(i+1, widths[i])
	}
	b.style(1, codesHeaderRow, last, codesHeaderRow, head)

	for _, row := range rows {
		r := codesHeaderRow + 1 + row.Position
		switch row.Kind {
		case report.RowHeader:
			b.set(1, r, row.Label())
			b.merge(1, r, last, r)
			b.style(1, r, last, r, group)
			b.height(r, 20)
		case report.RowData:
			b.set(1, r, row.WorkCode)
			b.set(2, r, row.Code)
			b.set(3, r, row.Name)
			b.set(4, r, row.Description)
			b.set(5, r, row.RegisteredAt)
			s, d := plain, date
			if row.Striped() {
				s, d = striped, dateStriped
			}
			b.style(1, r, last-1, r, s)
			b.style(last, r, last, r, d)
		case report.RowSeparator:
			b.height(r, 8)
		}
	}
	return b.bytes()
}
