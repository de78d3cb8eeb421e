package purchasing

import (
	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// IGVRate tasa del IGV.
var IGVRate = decimal.RequireFromString("0.18")

// Totals montos de cabecera de una orden.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals calcula el subtotal de cada línea (cantidad × precio, 2 decimales)
// y los montos de la orden. Sin impuesto, Tax es cero.
func ComputeTotals(lines []entity.OrderLine, includeTax bool) ([]entity.OrderLine, Totals) {
	out := make([]entity.OrderLine, len(lines))
	sub := decimal.Zero
	for i, l := range lines {
		l.Subtotal = l.Quantity.Mul(l.UnitPrice).Round(2)
		sub = sub.Add(l.Subtotal)
		out[i] = l
	}
	t := Totals{Subtotal: sub, Tax: decimal.Zero}
	if includeTax {
		t.Tax = sub.Mul(IGVRate).Round(2)
	}
	t.Total = t.Subtotal.Add(t.Tax)
	return out, t
}
