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

// WorkUseCase obras, códigos contables y el vínculo entre ambos.
type WorkUseCase struct {
	works repository.WorkRepository
	codes repository.AccountingCodeRepository
	now   ports.Clock
}

func NewWorkUseCase(works repository.WorkRepository, codes repository.AccountingCodeRepository, clock ports.Clock) *WorkUseCase {
	return &WorkUseCase{works: works, codes: codes, now: clock}
}

func (uc *WorkUseCase) CreateWork(ctx context.Context, in dto.WorkRequest) (*dto.WorkResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	start, err := parseOptionalDate("start_date", in.StartDate)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	w := &entity.Work{
		ID:        uuid.New().String(),
		Code:      strings.ToUpper(strings.TrimSpace(in.Code)),
		Name:      strings.TrimSpace(in.Name),
		Location:  in.Location,
		StartDate: start,
		Active:    boolOr(in.Active, true),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.works.Create(ctx, w); err != nil {
		return nil, err
	}
	return toWorkResponse(w), nil
}

func (uc *WorkUseCase) GetWork(ctx context.Context, id string) (*dto.WorkResponse, error) {
	w, err := uc.works.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	return toWorkResponse(w), nil
}

func (uc *WorkUseCase) UpdateWork(ctx context.Context, id string, in dto.WorkRequest) (*dto.WorkResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	w, err := uc.works.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	if w.StartDate, err = parseOptionalDate("start_date", in.StartDate); err != nil {
		return nil, err
	}
	w.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	w.Name = strings.TrimSpace(in.Name)
	w.Location = in.Location
	w.Active = boolOr(in.Active, w.Active)
	w.UpdatedAt = uc.now()
	if err := uc.works.Update(ctx, w); err != nil {
		return nil, err
	}
	return toWorkResponse(w), nil
}

func (uc *WorkUseCase) ListWorks(ctx context.Context, activeOnly bool) ([]dto.WorkResponse, error) {
	list, err := uc.works.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WorkResponse, 0, len(list))
	for _, w := range list {
		out = append(out, *toWorkResponse(w))
	}
	return out, nil
}

func (uc *WorkUseCase) DeleteWork(ctx context.Context, id string) error {
	return uc.works.Delete(ctx, id)
}

func toWorkResponse(w *entity.Work) *dto.WorkResponse {
	return &dto.WorkResponse{
		ID:        w.ID,
		Code:      w.Code,
		Name:      w.Name,
		Location:  w.Location,
		StartDate: dto.FormatDate(w.StartDate),
		Active:    w.Active,
	}
}

func (uc *WorkUseCase) CreateCode(ctx context.Context, in dto.AccountingCodeRequest) (*dto.AccountingCodeResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	now := uc.now()
	c := &entity.AccountingCode{
		ID:          uuid.New().String(),
		Code:        strings.TrimSpace(in.Code),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.codes.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCodeResponse(c), nil
}

func (uc *WorkUseCase) UpdateCode(ctx context.Context, id string, in dto.AccountingCodeRequest) (*dto.AccountingCodeResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	c, err := uc.codes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	c.Code, c.Name, c.Description = strings.TrimSpace(in.Code), strings.TrimSpace(in.Name), in.Description
	c.UpdatedAt = uc.now()
	if err := uc.codes.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCodeResponse(c), nil
}

func (uc *WorkUseCase) GetCode(ctx context.Context, id string) (*dto.AccountingCodeResponse, error) {
	c, err := uc.codes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCodeResponse(c), nil
}

func (uc *WorkUseCase) ListCodes(ctx context.Context) ([]dto.AccountingCodeResponse, error) {
	list, err := uc.codes.List(ctx)
	if err != nil {
		return nil, err
	}
	return toCodeResponses(list), nil
}

func (uc *WorkUseCase) DeleteCode(ctx context.Context, id string) error {
	return uc.codes.Delete(ctx, id)
}

// AttachCode vincula un código a una obra; sin fecha se registra hoy.
func (uc *WorkUseCase) AttachCode(ctx context.Context, workID string, in dto.AttachCodeRequest) error {
	if err := dto.Validate(in); err != nil {
		return err
	}
	at, err := parseOptionalDate("registered_at", in.RegisteredAt)
	if err != nil {
		return err
	}
	w, err := uc.works.GetByID(ctx, workID)
	if err != nil {
		return err
	}
	if w == nil {
		return domain.ErrNotFound
	}
	c, err := uc.codes.GetByID(ctx, in.AccountingCodeID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.NewValidationError("accounting_code_id", "el código contable no existe")
	}
	registered := uc.now()
	if at != nil {
		registered = *at
	}
	return uc.codes.Attach(ctx, &entity.WorkAccountingCode{
		ID:               uuid.New().String(),
		WorkID:           workID,
		AccountingCodeID: c.ID,
		RegisteredAt:     registered,
	})
}

func (uc *WorkUseCase) DetachCode(ctx context.Context, workID, codeID string) error {
	ok, err := uc.codes.Detach(ctx, workID, codeID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (uc *WorkUseCase) ListCodesByWork(ctx context.Context, workID string) ([]dto.AccountingCodeResponse, error) {
	list, err := uc.codes.ListByWork(ctx, workID)
	if err != nil {
		return nil, err
	}
	return toCodeResponses(list), nil
}

func toCodeResponse(c *entity.AccountingCode) *dto.AccountingCodeResponse {
	return &dto.AccountingCodeResponse{ID: c.ID, Code: c.Code, Name: c.Name, Description: c.Description}
}

func toCodeResponses(list []*entity.AccountingCode) []dto.AccountingCodeResponse {
	out := make([]dto.AccountingCodeResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCodeResponse(c))
	}
	return out
}
