// Package attendance registro diario de asistencia: altas individuales, carga masiva e importación de planillas.
package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/constructora-api/internal/application/dto"
	"github.com/jhoicas/constructora-api/internal/application/ports"
	"github.com/jhoicas/constructora-api/internal/domain"
	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/jhoicas/constructora-api/internal/domain/report"
	"github.com/jhoicas/constructora-api/internal/domain/repository"
	"github.com/rs/zerolog/log"
)

// TxRunner ejecuta fn con el repositorio de asistencias atado a una transacción.
type TxRunner interface {
	RunAttendance(ctx context.Context, fn func(att repository.AttendanceRepository) error) error
}

// Service casos de uso de asistencia.
type Service struct {
	repo      repository.AttendanceRepository
	employees repository.EmployeeRepository
	tx        TxRunner
	sheets    ports.SpreadsheetReader
	now       ports.Clock
	loc       *time.Location // "mes en curso" se calcula en esta zona
}

func NewService(
	repo repository.AttendanceRepository,
	employees repository.EmployeeRepository,
	tx TxRunner,
	sheets ports.SpreadsheetReader,
	clock ports.Clock,
	loc *time.Location,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, employees: employees, tx: tx, sheets: sheets, now: clock, loc: loc}
}

// Register crea el registro del día; si el empleado ya tiene uno para esa fecha devuelve ErrDuplicate.
func (s *Service) Register(ctx context.Context, actorID string, in dto.AttendanceRequest) (*dto.AttendanceResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	date, _ := time.Parse(dto.DateLayout, in.Date)

	emp, err := s.employees.GetByID(ctx, in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, domain.NewValidationError("employee_id", "el empleado no existe")
	}
	existing, err := s.repo.GetByEmployeeAndDate(ctx, in.EmployeeID, date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := s.now()
	a := &entity.Attendance{
		ID:           uuid.New().String(),
		EmployeeID:   in.EmployeeID,
		Date:         date,
		Status:       entity.AttendanceStatus(in.Status),
		Note:         in.Note,
		RegisteredBy: actorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return toResponse(a), nil
}

// Update cambia estado y observación de un registro existente.
func (s *Service) Update(ctx context.Context, actorID, id string, in dto.UpdateAttendanceRequest) (*dto.AttendanceResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	a.Status = entity.AttendanceStatus(in.Status)
	a.Note = in.Note
	a.RegisteredBy = actorID
	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return toResponse(a), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// List registros en [start, end]; sin rango usa el mes en curso.
func (s *Service) List(ctx context.Context, q dto.RangeQuery) ([]dto.AttendanceResponse, error) {
	if err := dto.Validate(q); err != nil {
		return nil, err
	}
	from, to, err := Range(q.Start, q.End, s.now().In(s.loc))
	if err != nil {
		return nil, err
	}
	list, err := s.repo.ListByRange(ctx, from, to, q.EmployeeID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AttendanceResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toResponse(a))
	}
	return out, nil
}

// Range interpreta start/end "YYYY-MM-DD". Si falta alguno se toma el mes de now.
func Range(start, end string, now time.Time) (time.Time, time.Time, error) {
	from, to := report.MonthRange(now)
	if start != "" {
		t, err := time.Parse(dto.DateLayout, start)
		if err != nil {
			return time.Time{}, time.Time{}, domain.NewValidationError("start", "fecha inválida")
		}
		from = t
	}
	if end != "" {
		t, err := time.Parse(dto.DateLayout, end)
		if err != nil {
			return time.Time{}, time.Time{}, domain.NewValidationError("end", "fecha inválida")
		}
		to = t
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, domain.NewValidationError("start", "la fecha inicial es posterior a la final")
	}
	return from, to, nil
}

// BulkUpsert crea o actualiza la asistencia de cada entrada para la fecha dada, en una sola transacción.
// Los empleados inexistentes se informan en Failed y no detienen la carga.
func (s *Service) BulkUpsert(ctx context.Context, actorID string, in dto.BulkAttendanceRequest) (*dto.BulkAttendanceResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	date, _ := time.Parse(dto.DateLayout, in.Date)
	batch := make([]entry, 0, len(in.Entries))
	res := &dto.BulkAttendanceResponse{Failed: []dto.BulkFailure{}}
	for _, e := range in.Entries {
		emp, err := s.employees.GetByID(ctx, e.EmployeeID)
		if err != nil {
			return nil, err
		}
		if emp == nil {
			res.Failed = append(res.Failed, dto.BulkFailure{EmployeeID: e.EmployeeID, Date: in.Date, Reason: "empleado inexistente"})
			continue
		}
		batch = append(batch, entry{employeeID: e.EmployeeID, date: date, status: entity.AttendanceStatus(e.Status), note: e.Note})
	}
	if err := s.upsert(ctx, actorID, batch, res); err != nil {
		return nil, err
	}
	return res, nil
}

type entry struct {
	employeeID string
	date       time.Time
	status     entity.AttendanceStatus
	note       string
}

func (s *Service) upsert(ctx context.Context, actorID string, batch []entry, res *dto.BulkAttendanceResponse) error {
	if len(batch) == 0 {
		return nil
	}
	now := s.now()
	var created, updated int
	err := s.tx.RunAttendance(ctx, func(att repository.AttendanceRepository) error {
		created, updated = 0, 0
		for _, e := range batch {
			existing, err := att.GetByEmployeeAndDate(ctx, e.employeeID, e.date)
			if err != nil {
				return err
			}
			if existing != nil {
				existing.Status = e.status
				existing.Note = e.note
				existing.RegisteredBy = actorID
				existing.UpdatedAt = now
				if err := att.Update(ctx, existing); err != nil {
					return err
				}
				updated++
				continue
			}
			err = att.Create(ctx, &entity.Attendance{
				ID:           uuid.New().String(),
				EmployeeID:   e.employeeID,
				Date:         e.date,
				Status:       e.status,
				Note:         e.note,
				RegisteredBy: actorID,
				CreatedAt:    now,
				UpdatedAt:    now,
			})
			if err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return err
	}
	res.Created += created
	res.Updated += updated
	log.Info().
		Str("component", "attendance").
		Int("created", created).
		Int("updated", updated).
		Int("failed", len(res.Failed)).
		Msg("asistencia: carga masiva aplicada")
	return nil
}

func toResponse(a *entity.Attendance) *dto.AttendanceResponse {
	return &dto.AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		Date:         entity.DateKey(a.Date),
		Status:       string(a.Status),
		Note:         a.Note,
		RegisteredBy: a.RegisteredBy,
		UpdatedAt:    a.UpdatedAt,
	}
}
