package pdf

import (
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/constructora-api/internal/application/ports"
	"github.com/jhoicas/constructora-api/internal/domain/report"
)

var codesColumns = []column{
	{"Código", 2, align.Left},
	{"Nombre", 4, align.Left},
	{"Descripción", 4, align.Left},
	{"Registro", 2, align.Center},
}

// AccountingCodes códigos contables agrupados por obra.
func (g *Generator) AccountingCodes(rows []report.AccountingRow, meta ports.ReportMeta) ([]byte, error) {
	doc := g.newDocument(meta, page{})
	doc.AddRows(tableHeaderRow(codesColumns))
	for _, r := range rows {
		switch r.Kind {
		case report.RowHeader:
			doc.AddRows(row.New(9).Add(col.New().Add(
				text.New(r.Label(), props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2, Left: 1}),
			)).WithStyle(&props.Cell{BackgroundColor: colorGroup}))
		case report.RowData:
			var bg *props.Color
			if r.Striped() {
				bg = colorStripe
			}
			doc.AddRows(tableRow(codesColumns, []string{
				r.Code,
				r.Name,
				nonEmpty(r.Description, "—"),
				r.RegisteredAt.Format("02/01/2006"),
			}, bg))
		case report.RowSeparator:
			doc.AddRows(row.New(4))
		}
	}
	if len(rows) == 0 {
		doc.AddRows(row.New(8).Add(col.New().Add(
			text.New("No hay códigos contables registrados en el periodo.", props.Text{Size: 8, Color: colorGray, Top: 2}),
		)))
	}
	return finish(doc, meta)
}
