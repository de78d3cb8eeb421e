package repository

import (
	"context"
	"time"

	"github.com/jhoicas/constructora-api/internal/domain/entity"
)

// AttendanceRepository persistencia de asistencias (único por empleado y fecha).
type AttendanceRepository interface {
	Create(ctx context.Context, a *entity.Attendance) error
	GetByID(ctx context.Context, id string) (*entity.Attendance, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*entity.Attendance, error)
	Update(ctx context.Context, a *entity.Attendance) error
	Delete(ctx context.Context, id string) error
	// ListByRange registros con fecha en [from, to]; employeeID vacío = todos.
	ListByRange(ctx context.Context, from, to time.Time, employeeID string) ([]*entity.Attendance, error)
}
