package purchasing

import (
	"strings"

	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/jhoicas/constructora-api/pkg/textnorm"
	"github.com/shopspring/decimal"
)

// QuotationLine línea con su precio estimado.
type QuotationLine struct {
	entity.OrderLine
	Keyword        string // palabra clave que dio el precio; vacío si ninguna
	EstimatedPrice decimal.Decimal
	EstimatedTotal decimal.Decimal
}

// Quotation cotización estimada de una orden.
type Quotation struct {
	Order          *entity.PurchaseOrder
	Lines          []QuotationLine
	EstimatedTotal decimal.Decimal
}

// EstimateQuotation precio de cada línea según la primera palabra clave (en orden
// de keywords) contenida en su descripción, sin distinguir mayúsculas ni tildes.
// Sin coincidencia el precio estimado es 0.
func EstimateQuotation(o *entity.PurchaseOrder, keywords []string, prices map[string]decimal.Decimal) *Quotation {
	q := &Quotation{Order: o, EstimatedTotal: decimal.Zero}
	for _, l := range o.Lines {
		ql := QuotationLine{OrderLine: l, EstimatedPrice: decimal.Zero}
		name := textnorm.Fold(l.Description)
		for _, k := range keywords {
			if k != "" && strings.Contains(name, k) {
				ql.Keyword = k
				ql.EstimatedPrice = prices[k]
				break
			}
		}
		ql.EstimatedTotal = ql.EstimatedPrice.Mul(l.Quantity).Round(2)
		q.EstimatedTotal = q.EstimatedTotal.Add(ql.EstimatedTotal)
		q.Lines = append(q.Lines, ql)
	}
	return q
}
