package repository

import (
	"context"

	"github.com/jhoicas/constructora-api/internal/domain/entity"
)

// EmployeeFilter filtros del listado de empleados. Limit 0 = sin límite.
type EmployeeFilter struct {
	Active *bool
	RoleID string
	Search string
	Limit  int
	Offset int
}

// RoleRepository persistencia de cargos.
type RoleRepository interface {
	Create(ctx context.Context, r *entity.Role) error
	GetByID(ctx context.Context, id string) (*entity.Role, error)
	Update(ctx context.Context, r *entity.Role) error
	List(ctx context.Context) ([]*entity.Role, error)
	Delete(ctx context.Context, id string) error
}

// EmployeeRepository persistencia de empleados.
type EmployeeRepository interface {
	Create(ctx context.Context, e *entity.Employee) error
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	GetByDocument(ctx context.Context, documentNumber string) (*entity.Employee, error)
	Update(ctx context.Context, e *entity.Employee) error
	List(ctx context.Context, f EmployeeFilter) ([]*entity.Employee, error)
	Delete(ctx context.Context, id string) error
}
