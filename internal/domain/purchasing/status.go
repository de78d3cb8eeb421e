package purchasing

import (
	"fmt"

	"github.com/jhoicas/constructora-api/internal/domain"
	"github.com/jhoicas/constructora-api/internal/domain/entity"
)

// CanTransition indica si la orden puede pasar de from a to.
// Solo se sale de PENDIENTE; APROBADA y ANULADA son finales.
func CanTransition(from, to entity.OrderStatus) bool {
	if from != entity.OrderPending {
		return false
	}
	return to == entity.OrderApproved || to == entity.OrderVoided
}

// EnsureEditable error si la orden ya no admite cambios.
func EnsureEditable(o *entity.PurchaseOrder) error {
	if o.Status != entity.OrderPending {
		return fmt.Errorf("orden %s en estado %s: %w", o.Number, o.Status, domain.ErrInvalidState)
	}
	return nil
}
