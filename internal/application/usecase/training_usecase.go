package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/constructora-api/internal/application/dto"
	"github.com/jhoicas/constructora-api/internal/application/ports"
	"github.com/jhoicas/constructora-api/internal/domain"
	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/jhoicas/constructora-api/internal/domain/repository"
)

// TrainingTx ejecuta fn con el repositorio de capacitaciones atado a una transacción.
type TrainingTx interface {
	RunTrainings(ctx context.Context, fn func(trainings repository.TrainingRepository) error) error
}

// TrainingUseCase capacitaciones y su lista de asistentes.
type TrainingUseCase struct {
	repo      repository.TrainingRepository
	employees repository.EmployeeRepository
	tx        TrainingTx
	now       ports.Clock
}

func NewTrainingUseCase(repo repository.TrainingRepository, employees repository.EmployeeRepository, tx TrainingTx, clock ports.Clock) *TrainingUseCase {
	return &TrainingUseCase{repo: repo, employees: employees, tx: tx, now: clock}
}

// Create registra la capacitación y sus asistentes en una sola transacción.
func (uc *TrainingUseCase) Create(ctx context.Context, in dto.TrainingRequest) (*dto.TrainingResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	date, _ := time.Parse(dto.DateLayout, in.Date)
	attendees, err := uc.attendees(ctx, in.Attendees)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	t := &entity.Training{
		ID:            uuid.New().String(),
		Topic:         in.Topic,
		Description:   in.Description,
		Instructor:    in.Instructor,
		Place:         in.Place,
		Date:          date,
		DurationHours: in.DurationHours,
		CreatedAt:     now,
		UpdatedAt:     now,
		Attendees:     attendees,
	}
	err = uc.tx.RunTrainings(ctx, func(trainings repository.TrainingRepository) error {
		return trainings.Create(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, t.ID)
}

// attendees valida que los empleados existan y no se repitan.
func (uc *TrainingUseCase) attendees(ctx context.Context, in []dto.TrainingAttendeeRequest) ([]entity.TrainingAttendee, error) {
	seen := make(map[string]bool, len(in))
	out := make([]entity.TrainingAttendee, 0, len(in))
	for _, a := range in {
		if seen[a.EmployeeID] {
			return nil, domain.NewValidationError("attendees", "empleado repetido: "+a.EmployeeID)
		}
		seen[a.EmployeeID] = true
		e, err := uc.employees.GetByID(ctx, a.EmployeeID)
		if err != nil {
			return nil, err
		}
		if e == nil {
			return nil, domain.NewValidationError("attendees", "empleado inexistente: "+a.EmployeeID)
		}
		out = append(out, entity.TrainingAttendee{
			ID:         uuid.New().String(),
			EmployeeID: a.EmployeeID,
			Attended:   a.Attended,
			Note:       a.Note,
		})
	}
	return out, nil
}

func (uc *TrainingUseCase) Get(ctx context.Context, id string) (*dto.TrainingResponse, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return toTrainingResponse(t), nil
}

// Update cambia los datos de la capacitación y, si vienen, reemplaza los asistentes.
func (uc *TrainingUseCase) Update(ctx context.Context, id string, in dto.TrainingRequest) (*dto.TrainingResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	var attendees []entity.TrainingAttendee
	if in.Attendees != nil {
		if attendees, err = uc.attendees(ctx, in.Attendees); err != nil {
			return nil, err
		}
	}
	t.Topic, t.Description, t.Instructor, t.Place = in.Topic, in.Description, in.Instructor, in.Place
	t.Date, _ = time.Parse(dto.DateLayout, in.Date)
	t.DurationHours = in.DurationHours
	t.UpdatedAt = uc.now()
	err = uc.tx.RunTrainings(ctx, func(trainings repository.TrainingRepository) error {
		if err := trainings.Update(ctx, t); err != nil {
			return err
		}
		if in.Attendees == nil {
			return nil
		}
		return trainings.ReplaceAttendees(ctx, t.ID, attendees)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, id)
}

// SetAttendees reemplaza la lista de asistentes (marcar asistencia real).
func (uc *TrainingUseCase) SetAttendees(ctx context.Context, id string, in dto.TrainingAttendeesRequest) (*dto.TrainingResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	attendees, err := uc.attendees(ctx, in.Attendees)
	if err != nil {
		return nil, err
	}
	err = uc.tx.RunTrainings(ctx, func(trainings repository.TrainingRepository) error {
		return trainings.ReplaceAttendees(ctx, id, attendees)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, id)
}

func (uc *TrainingUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.TrainingResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TrainingResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *toTrainingResponse(t))
	}
	return out, nil
}

func (uc *TrainingUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toTrainingResponse(t *entity.Training) *dto.TrainingResponse {
	res := &dto.TrainingResponse{
		ID:            t.ID,
		Topic:         t.Topic,
		Description:   t.Description,
		Instructor:    t.Instructor,
		Place:         t.Place,
		Date:          t.Date.Format(dto.DateLayout),
		DurationHours: t.DurationHours,
	}
	for _, a := range t.Attendees {
		res.Attendees = append(res.Attendees, dto.TrainingAttendeeResponse{
			EmployeeID:   a.EmployeeID,
			EmployeeName: a.EmployeeName,
			Attended:     a.Attended,
			Note:         a.Note,
		})
		if a.Attended {
			res.AttendedCount++
		}
	}
	return res
}
