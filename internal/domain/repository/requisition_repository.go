package repository

import (
	"context"
	"time"

	"github.com/jhoicas/constructora-api/internal/domain/entity"
)

// RequisitionFilter filtros del listado de requerimientos.
type RequisitionFilter struct {
	WorkID string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// RequisitionRepository persistencia de requerimientos y sus líneas.
type RequisitionRepository interface {
	Create(ctx context.Context, r *entity.Requisition) error
	GetByID(ctx context.Context, id string) (*entity.Requisition, error)
	List(ctx context.Context, f RequisitionFilter) ([]*entity.Requisition, error)
	// UpdateLine guarda estado, cantidad entregada y fecha de entrega.
	UpdateLine(ctx context.Context, l *entity.RequisitionLine) error
	Delete(ctx context.Context, id string) error
}
