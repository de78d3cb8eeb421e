package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/constructora-api/internal/application/ports"
	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/jhoicas/constructora-api/internal/domain/requisition"
)

var requisitionColumns = []column{
	{"Ítem", 1, align.Center},
	{"Descripción", 4, align.Left},
	{"Und.", 1, align.Center},
	{"Pedido", 1, align.Right},
	{"Entregado", 2, align.Right},
	{"Fecha ent.", 2, align.Center},
	{"Estado", 1, align.Center},
}

// Requisition requerimiento con el detalle de entrega por línea y el avance total.
func (g *Generator) Requisition(r *entity.Requisition, meta ports.ReportMeta) ([]byte, error) {
	doc := g.newDocument(meta, page{})
	_, _, percent := requisition.Progress(r.Lines)

	doc.AddRows(sectionTitle("DATOS DEL REQUERIMIENTO"))
	doc.AddRows(row.New(14).Add(
		col.New(7).Add(
			text.New("Solicitante: "+nonEmpty(r.RequesterName, "—"), props.Text{Style: fontstyle.Bold, Size: 9, Top: 1}),
			text.New("Obra: "+nonEmpty(r.WorkName, "—"), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Fecha: "+r.RequestDate.Format("02/01/2006"), props.Text{Size: 8, Align: align.Right, Top: 1}),
			text.New("Avance: "+percent.StringFixed(2)+"%", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 6, Color: colorPrimary,
			}),
		),
	))

	doc.AddRows(tableHeaderRow(requisitionColumns))
	for i, l := range r.Lines {
		delivered, date := "—", "—"
		if l.DeliveredQuantity != nil {
			delivered = formatQty(*l.DeliveredQuantity)
		}
		if l.DeliveryDate != nil {
			date = l.DeliveryDate.Format("02/01/2006")
		}
		var bg *props.Color
		if i%2 == 1 {
			bg = colorStripe
		}
		doc.AddRows(tableRow(requisitionColumns, []string{
			fmt.Sprint(i + 1),
			l.Description,
			l.Unit,
			formatQty(l.Quantity),
			delivered,
			date,
			string(l.Status),
		}, bg))
	}
	if r.Notes != "" {
		doc.AddRows(sectionTitle("OBSERVACIONES"))
		doc.AddRows(row.New(10).Add(col.New().Add(text.New(r.Notes, props.Text{Size: 8, Top: 1}))))
	}
	return finish(doc, meta)
}
