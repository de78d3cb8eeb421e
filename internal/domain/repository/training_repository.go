package repository

import (
	"context"

	"github.com/jhoicas/constructora-api/internal/domain/entity"
)

// TrainingRepository persistencia de capacitaciones y asistentes.
type TrainingRepository interface {
	Create(ctx context.Context, t *entity.Training) error
	GetByID(ctx context.Context, id string) (*entity.Training, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Training, error)
	Update(ctx context.Context, t *entity.Training) error
	Delete(ctx context.Context, id string) error
	// ReplaceAttendees borra y reinserta la lista de asistentes.
	ReplaceAttendees(ctx context.Context, trainingID string, attendees []entity.TrainingAttendee) error
}
