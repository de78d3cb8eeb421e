package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/constructora-api/internal/application/dto"
	"github.com/jhoicas/constructora-api/internal/application/ports"
	"github.com/jhoicas/constructora-api/internal/domain"
	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/jhoicas/constructora-api/internal/domain/repository"
)

// RoleUseCase CRUD de cargos.
type RoleUseCase struct {
	repo repository.RoleRepository
	now  ports.Clock
}

func NewRoleUseCase(repo repository.RoleRepository, clock ports.Clock) *RoleUseCase {
	return &RoleUseCase{repo: repo, now: clock}
}

func (uc *RoleUseCase) Create(ctx context.Context, in dto.RoleRequest) (*dto.RoleResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	now := uc.now()
	r := &entity.Role{ID: uuid.New().String(), Name: in.Name, Description: in.Description, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return toRoleResponse(r), nil
}

func (uc *RoleUseCase) Update(ctx context.Context, id string, in dto.RoleRequest) (*dto.RoleResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	r.Name, r.Description, r.UpdatedAt = in.Name, in.Description, uc.now()
	if err := uc.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return toRoleResponse(r), nil
}

func (uc *RoleUseCase) Get(ctx context.Context, id string) (*dto.RoleResponse, error) {
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return toRoleResponse(r), nil
}

func (uc *RoleUseCase) List(ctx context.Context) ([]dto.RoleResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoleResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toRoleResponse(r))
	}
	return out, nil
}

func (uc *RoleUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toRoleResponse(r *entity.Role) *dto.RoleResponse {
	return &dto.RoleResponse{ID: r.ID, Name: r.Name, Description: r.Description}
}
