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

// CategoryUseCase CRUD de categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
	now  ports.Clock
}

func NewCategoryUseCase(repo repository.CategoryRepository, clock ports.Clock) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, now: clock}
}

func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	now := uc.now()
	c := &entity.Category{ID: uuid.New().String(), Name: in.Name, Description: in.Description, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}, nil
}

func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	c.Name, c.Description, c.UpdatedAt = in.Name, in.Description, uc.now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}, nil
}

func (uc *CategoryUseCase) Get(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}, nil
}

func (uc *CategoryUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.CategoryResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description})
	}
	return out, nil
}

func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// ProductUseCase CRUD de productos.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	now        ports.Clock
}

func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository, clock ports.Clock) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories, now: clock}
}

// Create registra un producto; el código es único.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := uc.validate(ctx, in); err != nil {
		return nil, err
	}
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if existing, err := uc.repo.GetByCode(ctx, code); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := uc.now()
	p := &entity.Product{
		ID:          uuid.New().String(),
		CategoryID:  in.CategoryID,
		Code:        code,
		Name:        strings.TrimSpace(in.Name),
		Unit:        in.Unit,
		Description: in.Description,
		Active:      boolOr(in.Active, true),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return ToProductResponse(p), nil
}

func (uc *ProductUseCase) validate(ctx context.Context, in dto.ProductRequest) error {
	if err := dto.Validate(in); err != nil {
		return err
	}
	if in.CategoryID == "" {
		return nil
	}
	c, err := uc.categories.GetByID(ctx, in.CategoryID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.NewValidationError("category_id", "la categoría no existe")
	}
	return nil
}

func (uc *ProductUseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return ToProductResponse(p), nil
}

func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := uc.validate(ctx, in); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	p.CategoryID = in.CategoryID
	p.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	p.Name = strings.TrimSpace(in.Name)
	p.Unit = in.Unit
	p.Description = in.Description
	p.Active = boolOr(in.Active, p.Active)
	p.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return ToProductResponse(p), nil
}

func (uc *ProductUseCase) List(ctx context.Context, q dto.ProductListQuery) ([]dto.ProductResponse, error) {
	q.DefaultPage()
	list, err := uc.repo.List(ctx, repository.ProductFilter{CategoryID: q.CategoryID, Search: q.Search, Limit: q.Limit, Offset: q.Offset})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *ToProductResponse(p))
	}
	return out, nil
}

func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// ToProductResponse mapea la entidad a la respuesta de API.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Code:        p.Code,
		Name:        p.Name,
		Unit:        p.Unit,
		Description: p.Description,
		Active:      p.Active,
	}
}

// SupplierUseCase CRUD de proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
	now  ports.Clock
}

func NewSupplierUseCase(repo repository.SupplierRepository, clock ports.Clock) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, now: clock}
}

// Create registra un proveedor; el RUC es único.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if existing, err := uc.repo.GetByRUC(ctx, in.RUC); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := uc.now()
	s := &entity.Supplier{
		ID:           uuid.New().String(),
		RUC:          in.RUC,
		BusinessName: strings.TrimSpace(in.BusinessName),
		ContactName:  in.ContactName,
		Phone:        in.Phone,
		Email:        in.Email,
		Address:      in.Address,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return ToSupplierResponse(s), nil
}

func (uc *SupplierUseCase) Get(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return ToSupplierResponse(s), nil
}

func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	s.RUC, s.BusinessName, s.ContactName = in.RUC, strings.TrimSpace(in.BusinessName), in.ContactName
	s.Phone, s.Email, s.Address = in.Phone, in.Email, in.Address
	s.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return ToSupplierResponse(s), nil
}

func (uc *SupplierUseCase) List(ctx context.Context, search string, page dto.PageRequest) ([]dto.SupplierResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *ToSupplierResponse(s))
	}
	return out, nil
}

func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// ToSupplierResponse mapea la entidad a la respuesta de API.
func ToSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:           s.ID,
		RUC:          s.RUC,
		BusinessName: s.BusinessName,
		ContactName:  s.ContactName,
		Phone:        s.Phone,
		Email:        s.Email,
		Address:      s.Address,
	}
}
