package requisition

import (
	"fmt"
	"time"

	"github.com/jhoicas/constructora-api/internal/domain"
	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Estados derivados del requerimiento completo.
const (
	StatusPending   = "pendiente"
	StatusDelivered = "entregado"
	StatusCancelled = "cancelado"
)

var hundred = decimal.NewFromInt(100)

// PercentComplete delivered/requested × 100 con 2 decimales; 0 si no se pidió nada.
func PercentComplete(delivered, requested decimal.Decimal) decimal.Decimal {
	if requested.IsZero() {
		return decimal.Zero
	}
	return delivered.Mul(hundred).Div(requested).Round(2)
}

// Progress suma lo pedido y lo entregado de las líneas no canceladas y calcula el avance.
func Progress(lines []entity.RequisitionLine) (requested, delivered, percent decimal.Decimal) {
	requested, delivered = decimal.Zero, decimal.Zero
	for _, l := range lines {
		if l.Status == entity.LineCancelled {
			continue
		}
		requested = requested.Add(l.Quantity)
		if l.DeliveredQuantity != nil {
			delivered = delivered.Add(*l.DeliveredQuantity)
		}
	}
	return requested, delivered, PercentComplete(delivered, requested)
}

// Status estado agregado: cancelado si todas las líneas lo están, entregado si
// todas las no canceladas se entregaron, pendiente en otro caso.
func Status(lines []entity.RequisitionLine) string {
	if len(lines) == 0 {
		return StatusPending
	}
	cancelled, delivered := 0, 0
	for _, l := range lines {
		switch l.Status {
		case entity.LineCancelled:
			cancelled++
		case entity.LineDelivered:
			delivered++
		}
	}
	switch {
	case cancelled == len(lines):
		return StatusCancelled
	case delivered > 0 && delivered+cancelled == len(lines):
		return StatusDelivered
	}
	return StatusPending
}

// Deliver marca la línea como entregada. Sin cantidad se asume lo pedido; sin fecha se usa now.
func Deliver(l *entity.RequisitionLine, qty *decimal.Decimal, at *time.Time, now time.Time) error {
	if l.Status == entity.LineCancelled {
		return fmt.Errorf("línea %s cancelada: %w", l.ID, domain.ErrInvalidState)
	}
	q := l.Quantity
	if qty != nil {
		q = *qty
	}
	if !q.IsPositive() {
		return domain.NewValidationError("delivered_quantity", "debe ser mayor que cero")
	}
	when := now
	if at != nil {
		when = *at
	}
	l.Status = entity.LineDelivered
	l.DeliveredQuantity = &q
	l.DeliveryDate = &when
	return nil
}

// Cancel anula una línea pendiente.
func Cancel(l *entity.RequisitionLine) error {
	if l.Status == entity.LineDelivered {
		return fmt.Errorf("línea %s ya entregada: %w", l.ID, domain.ErrInvalidState)
	}
	l.Status = entity.LineCancelled
	return nil
}

// AnyDelivered indica si alguna línea ya registra entrega.
func AnyDelivered(lines []entity.RequisitionLine) bool {
	for _, l := range lines {
		if l.Status == entity.LineDelivered {
			return true
		}
	}
	return false
}
