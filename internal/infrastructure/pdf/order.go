package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/constructora-api/internal/application/ports"
	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/jhoicas/constructora-api/internal/domain/purchasing"
)

var orderColumns = []column{
	{"Ítem", 1, align.Center},
	{"Descripción", 5, align.Left},
	{"Und.", 1, align.Center},
	{"Cant.", 1, align.Right},
	{"P. Unit.", 2, align.Right},
	{"Subtotal", 2, align.Right},
}

// PurchaseOrder orden de compra o servicio con proveedor, líneas y totales.
func (g *Generator) PurchaseOrder(o *entity.PurchaseOrder, meta ports.ReportMeta) ([]byte, error) {
	doc := g.newDocument(meta, page{})
	doc.AddRows(orderInfoRows(o)...)
	doc.AddRows(tableHeaderRow(orderColumns))

	sym := currencySymbol(o.Currency)
	for i, l := range o.Lines {
		var bg *props.Color
		if i%2 == 1 {
			bg = colorStripe
		}
		doc.AddRows(tableRow(orderColumns, []string{
			fmt.Sprint(i + 1),
			l.Description,
			l.Unit,
			formatQty(l.Quantity),
			sym + formatMoney(l.UnitPrice),
			sym + formatMoney(l.Subtotal),
		}, bg))
	}
	doc.AddRows(row.New(3))
	doc.AddRows(totalsRow([][2]string{
		{"Subtotal:", sym + formatMoney(o.Subtotal)},
		{"IGV (18%):", sym + formatMoney(o.Tax)},
		{"TOTAL:", sym + formatMoney(o.Total)},
	}))
	if o.Notes != "" {
		doc.AddRows(sectionTitle("OBSERVACIONES"))
		doc.AddRows(row.New(10).Add(col.New().Add(text.New(o.Notes, props.Text{Size: 8, Top: 1}))))
	}
	return finish(doc, meta)
}

// Quotation cotización estimada: cada línea con el precio de la palabra clave que coincidió.
func (g *Generator) Quotation(q *purchasing.Quotation, meta ports.ReportMeta) ([]byte, error) {
	o := q.Order
	doc := g.newDocument(meta, page{})
	doc.AddRows(orderInfoRows(o)...)

	cols := []column{
		{"Ítem", 1, align.Center},
		{"Descripción", 5, align.Left},
		{"Cant.", 1, align.Right},
		{"Ref.", 1, align.Center},
		{"P. Estimado", 2, align.Right},
		{"Total est.", 2, align.Right},
	}
	doc.AddRows(tableHeaderRow(cols))
	sym := currencySymbol(o.Currency)
	for i, l := range q.Lines {
		var bg *props.Color
		if i%2 == 1 {
			bg = colorStripe
		}
		doc.AddRows(tableRow(cols, []string{
			fmt.Sprint(i + 1),
			l.Description,
			formatQty(l.Quantity),
			nonEmpty(l.Keyword, "—"),
			sym + formatMoney(l.EstimatedPrice),
			sym + formatMoney(l.EstimatedTotal),
		}, bg))
	}
	doc.AddRows(row.New(3))
	doc.AddRows(totalsRow([][2]string{{"TOTAL ESTIMADO:", sym + formatMoney(q.EstimatedTotal)}}))
	doc.AddRows(row.New(8).Add(col.New().Add(text.New(
		"Precios referenciales por palabra clave del producto. No constituye una oferta del proveedor.",
		props.Text{Size: 6.5, Color: colorGray, Top: 3},
	))))
	return finish(doc, meta)
}

// orderInfoRows: proveedor (izq) y datos de la orden (der).
func orderInfoRows(o *entity.PurchaseOrder) []core.Row {
	return []core.Row{
		sectionTitle("PROVEEDOR"),
		row.New(14).Add(
			col.New(7).Add(
				text.New(nonEmpty(o.SupplierName, "—"), props.Text{Style: fontstyle.Bold, Size: 10, Top: 1}),
				text.New("RUC: "+nonEmpty(o.SupplierRUC, "—"), props.Text{Size: 8, Top: 7, Color: colorGray}),
			),
			col.New(5).Add(
				text.New("Fecha: "+o.IssueDate.Format("02/01/2006"), props.Text{Size: 8, Align: align.Right, Top: 1}),
				text.New("Obra: "+nonEmpty(o.WorkName, "—"), props.Text{Size: 8, Align: align.Right, Top: 5}),
				text.New("Estado: "+string(o.Status), props.Text{Size: 8, Align: align.Right, Top: 9, Color: colorGray}),
			),
		),
	}
}

// totalsRow: bloque de totales alineado a la derecha; la última fila resaltada.
func totalsRow(lines [][2]string) core.Row {
	labels := col.New(3)
	values := col.New(3)
	for i, l := range lines {
		style := props.Text{Size: 9, Align: align.Right, Top: float64(i * 5), Right: 2}
		if i == len(lines)-1 {
			style.Style = fontstyle.Bold
			style.Size = 10
			style.Color = colorPrimary
		}
		labels.Add(text.New(l[0], style))
		style.Right = 1
		values.Add(text.New(l[1], style))
	}
	return row.New(float64(len(lines)*5+3)).Add(col.New(6), labels, values)
}
