package repository

import (
	"context"

	"github.com/jhoicas/constructora-api/internal/domain/entity"
)

// SupplierRepository persistencia de proveedores.
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	GetByRUC(ctx context.Context, ruc string) (*entity.Supplier, error)
	Update(ctx context.Context, s *entity.Supplier) error
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Supplier, error)
	Delete(ctx context.Context, id string) error
}
