package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/constructora-api/internal/application/dto"
	"github.com/jhoicas/constructora-api/internal/application/ports"
	"github.com/jhoicas/constructora-api/internal/domain"
	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/jhoicas/constructora-api/internal/domain/repository"
)

// EmployeeUseCase CRUD de empleados.
type EmployeeUseCase struct {
	repo  repository.EmployeeRepository
	roles repository.RoleRepository
	now   ports.Clock
}

func NewEmployeeUseCase(repo repository.EmployeeRepository, roles repository.RoleRepository, clock ports.Clock) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo, roles: roles, now: clock}
}

// Create da de alta un empleado; el DNI no puede repetirse.
func (uc *EmployeeUseCase) Create(ctx context.Context, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	hire, err := parseOptionalDate("hire_date", in.HireDate)
	if err != nil {
		return nil, err
	}
	if existing, err := uc.repo.GetByDocument(ctx, in.DocumentNumber); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.checkRole(ctx, in.RoleID); err != nil {
		return nil, err
	}
	now := uc.now()
	e := &entity.Employee{
		ID:             uuid.New().String(),
		DocumentNumber: in.DocumentNumber,
		FirstName:      strings.TrimSpace(in.FirstName),
		LastName:       strings.TrimSpace(in.LastName),
		Email:          in.Email,
		Phone:          in.Phone,
		RoleID:         in.RoleID,
		HireDate:       hire,
		Active:         boolOr(in.Active, true),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return uc.Get(ctx, e.ID)
}

func (uc *EmployeeUseCase) checkRole(ctx context.Context, roleID string) error {
	if roleID == "" {
		return nil
	}
	r, err := uc.roles.GetByID(ctx, roleID)
	if err != nil {
		return err
	}
	if r == nil {
		return domain.NewValidationError("role_id", "el cargo no existe")
	}
	return nil
}

func (uc *EmployeeUseCase) Get(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return ToEmployeeResponse(e), nil
}

// Update edición parcial.
func (uc *EmployeeUseCase) Update(ctx context.Context, id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if in.DocumentNumber != nil && *in.DocumentNumber != e.DocumentNumber {
		other, err := uc.repo.GetByDocument(ctx, *in.DocumentNumber)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, domain.ErrDuplicate
		}
		e.DocumentNumber = *in.DocumentNumber
	}
	if in.FirstName != nil {
		e.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		e.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Email != nil {
		e.Email = *in.Email
	}
	if in.Phone != nil {
		e.Phone = *in.Phone
	}
	if in.RoleID != nil {
		if err := uc.checkRole(ctx, *in.RoleID); err != nil {
			return nil, err
		}
		e.RoleID = *in.RoleID
	}
	if in.HireDate != nil {
		if e.HireDate, err = parseOptionalDate("hire_date", *in.HireDate); err != nil {
			return nil, err
		}
	}
	if in.Active != nil {
		e.Active = *in.Active
	}
	e.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return uc.Get(ctx, id)
}

func (uc *EmployeeUseCase) List(ctx context.Context, q dto.EmployeeListQuery) ([]dto.EmployeeResponse, error) {
	q.DefaultPage()
	list, err := uc.repo.List(ctx, repository.EmployeeFilter{
		Active: q.Active, RoleID: q.RoleID, Search: q.Search, Limit: q.Limit, Offset: q.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *ToEmployeeResponse(e))
	}
	return out, nil
}

func (uc *EmployeeUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// ToEmployeeResponse mapea la entidad a la respuesta de API.
func ToEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:             e.ID,
		DocumentNumber: e.DocumentNumber,
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		FullName:       e.FullName(),
		Email:          e.Email,
		Phone:          e.Phone,
		RoleID:         e.RoleID,
		RoleName:       e.RoleName,
		HireDate:       dto.FormatDate(e.HireDate),
		Active:         e.Active,
	}
}
