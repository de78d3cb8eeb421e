// Package requisition requerimientos de materiales y el seguimiento de su entrega.
package requisition

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/constructora-api/internal/application/dto"
	"github.com/jhoicas/constructora-api/internal/application/ports"
	"github.com/jhoicas/constructora-api/internal/domain"
	"github.com/jhoicas/constructora-api/internal/domain/entity"
	po "github.com/jhoicas/constructora-api/internal/domain/purchasing"
	"github.com/jhoicas/constructora-api/internal/domain/report"
	"github.com/jhoicas/constructora-api/internal/domain/repository"
	rq "github.com/jhoicas/constructora-api/internal/domain/requisition"
)

// TxRunner ejecuta fn con los repositorios de requerimientos y numeración atados a una transacción.
type TxRunner interface {
	RunRequisitions(ctx context.Context, fn func(reqs repository.RequisitionRepository, seq repository.SequenceRepository) error) error
}

// Service casos de uso de requerimientos.
type Service struct {
	reqs      repository.RequisitionRepository
	employees repository.EmployeeRepository
	works     repository.WorkRepository
	products  repository.ProductRepository
	tx        TxRunner
	now       ports.Clock
	loc       *time.Location // fecha por defecto de pedido y entrega
}

func NewService(
	reqs repository.RequisitionRepository,
	employees repository.EmployeeRepository,
	works repository.WorkRepository,
	products repository.ProductRepository,
	tx TxRunner,
	clock ports.Clock,
	loc *time.Location,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{reqs: reqs, employees: employees, works: works, products: products, tx: tx, now: clock, loc: loc}
}

// today fecha calendario local, a medianoche UTC como el resto de fechas.
func (s *Service) today() time.Time {
	return report.DateOnly(s.now().In(s.loc))
}

// Create registra el requerimiento con su código RQ-{año}-{NNNN} en una sola transacción.
func (s *Service) Create(ctx context.Context, actorID string, in dto.CreateRequisitionRequest) (*dto.RequisitionResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	emp, err := s.employees.GetByID(ctx, in.RequestedBy)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, domain.NewValidationError("requested_by", "el empleado no existe")
	}
	if in.WorkID != "" {
		w, err := s.works.GetByID(ctx, in.WorkID)
		if err != nil {
			return nil, err
		}
		if w == nil {
			return nil, domain.NewValidationError("work_id", "la obra no existe")
		}
	}

	now := s.now()
	date := s.today()
	if in.RequestDate != "" {
		date, _ = time.Parse(dto.DateLayout, in.RequestDate)
	}
	r := &entity.Requisition{
		ID:          uuid.New().String(),
		WorkID:      in.WorkID,
		RequestedBy: in.RequestedBy,
		RequestDate: date,
		Notes:       in.Notes,
		CreatedBy:   actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for i, l := range in.Lines {
		field := fmt.Sprintf("lines[%d]", i)
		if !l.Quantity.IsPositive() {
			return nil, domain.NewValidationError(field+".quantity", "debe ser mayor que 0")
		}
		if l.ProductID != "" {
			p, err := s.products.GetByID(ctx, l.ProductID)
			if err != nil {
				return nil, err
			}
			if p == nil {
				return nil, domain.NewValidationError(field+".product_id", "el producto no existe")
			}
		}
		r.Lines = append(r.Lines, entity.RequisitionLine{
			ID:            uuid.New().String(),
			RequisitionID: r.ID,
			ProductID:     l.ProductID,
			Description:   l.Description,
			Unit:          l.Unit,
			Quantity:      l.Quantity,
			Status:        entity.LinePending,
		})
	}

	err = s.tx.RunRequisitions(ctx, func(reqs repository.RequisitionRepository, seq repository.SequenceRepository) error {
		n, err := seq.Next(ctx, po.RequisitionPrefix, date.Year())
		if err != nil {
			return err
		}
		r.Code = po.FormatNumber(po.RequisitionPrefix, date.Year(), n)
		return reqs.Create(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, r.ID)
}

// Requisition entidad completa, para el PDF.
func (s *Service) Requisition(ctx context.Context, id string) (*entity.Requisition, error) {
	r, err := s.reqs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (s *Service) Get(ctx context.Context, id string) (*dto.RequisitionResponse, error) {
	r, err := s.Requisition(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToRequisitionResponse(r), nil
}

func (s *Service) List(ctx context.Context, q dto.RequisitionListQuery) ([]dto.RequisitionResponse, error) {
	if err := dto.Validate(q); err != nil {
		return nil, err
	}
	q.DefaultPage()
	from, _ := dto.ParseDate(q.Start)
	to, _ := dto.ParseDate(q.End)
	list, err := s.reqs.List(ctx, repository.RequisitionFilter{
		WorkID: q.WorkID,
		From:   from,
		To:     to,
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.RequisitionResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *ToRequisitionResponse(r))
	}
	return out, nil
}

// DeliverLine registra la entrega de una línea; cantidad y fecha son opcionales.
func (s *Service) DeliverLine(ctx context.Context, id, lineID string, in dto.DeliverLineRequest) (*dto.RequisitionResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	at, err := dto.ParseDate(in.DeliveryDate)
	if err != nil {
		return nil, domain.NewValidationError("delivery_date", "fecha inválida")
	}
	return s.changeLine(ctx, id, lineID, func(l *entity.RequisitionLine) error {
		return rq.Deliver(l, in.DeliveredQuantity, at, s.today())
	})
}

// CancelLine anula una línea que aún no se entregó.
func (s *Service) CancelLine(ctx context.Context, id, lineID string) (*dto.RequisitionResponse, error) {
	return s.changeLine(ctx, id, lineID, rq.Cancel)
}

func (s *Service) changeLine(ctx context.Context, id, lineID string, fn func(*entity.RequisitionLine) error) (*dto.RequisitionResponse, error) {
	r, err := s.Requisition(ctx, id)
	if err != nil {
		return nil, err
	}
	var line *entity.RequisitionLine
	for i := range r.Lines {
		if r.Lines[i].ID == lineID {
			line = &r.Lines[i]
			break
		}
	}
	if line == nil {
		return nil, domain.ErrNotFound
	}
	if err := fn(line); err != nil {
		return nil, err
	}
	if err := s.reqs.UpdateLine(ctx, line); err != nil {
		return nil, err
	}
	return ToRequisitionResponse(r), nil
}

// Delete elimina el requerimiento si ninguna línea fue entregada.
func (s *Service) Delete(ctx context.Context, id string) error {
	r, err := s.Requisition(ctx, id)
	if err != nil {
		return err
	}
	if rq.AnyDelivered(r.Lines) {
		return fmt.Errorf("requerimiento %s con entregas registradas: %w", r.Code, domain.ErrInvalidState)
	}
	return s.reqs.Delete(ctx, id)
}

// ToRequisitionResponse mapea el requerimiento a su DTO con avance y estado agregados.
func ToRequisitionResponse(r *entity.Requisition) *dto.RequisitionResponse {
	requested, delivered, percent := rq.Progress(r.Lines)
	res := &dto.RequisitionResponse{
		ID:              r.ID,
		Code:            r.Code,
		WorkID:          r.WorkID,
		WorkName:        r.WorkName,
		RequestedBy:     r.RequestedBy,
		RequesterName:   r.RequesterName,
		RequestDate:     r.RequestDate.Format(dto.DateLayout),
		Notes:           r.Notes,
		Status:          rq.Status(r.Lines),
		Requested:       requested,
		Delivered:       delivered,
		PercentComplete: percent,
	}
	for _, l := range r.Lines {
		res.Lines = append(res.Lines, dto.RequisitionLineResponse{
			ID:                l.ID,
			ProductID:         l.ProductID,
			Description:       l.Description,
			Unit:              l.Unit,
			Quantity:          l.Quantity,
			DeliveredQuantity: l.DeliveredQuantity,
			DeliveryDate:      dto.FormatDate(l.DeliveryDate),
			Status:            string(l.Status),
		})
	}
	return res
}
