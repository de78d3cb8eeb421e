package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/constructora-api/internal/domain"
	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/jhoicas/constructora-api/internal/domain/repository"
)

var _ repository.TrainingRepository = (*TrainingRepo)(nil)

// TrainingRepo capacitaciones y training_attendees.
type TrainingRepo struct {
	q Querier
}

func NewTrainingRepository(q Querier) *TrainingRepo {
	return &TrainingRepo{q: q}
}

const trainingColumns = `id, topic, description, instructor, place, date, duration_hours, created_at, updated_at`

func scanTraining(row pgx.Row) (*entity.Training, error) {
	var t entity.Training
	if err := row.Scan(&t.ID, &t.Topic, &t.Description, &t.Instructor, &t.Place, &t.Date, &t.DurationHours,
		&t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserta la capacitación y sus asistentes. Usar dentro de una transacción.
func (r *TrainingRepo) Create(ctx context.Context, t *entity.Training) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO trainings (`+trainingColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.Topic, t.Description, t.Instructor, t.Place, dateOnly(t.Date), t.DurationHours, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return mapWriteErr("insert training", err)
	}
	return r.insertAttendees(ctx, t.ID, t.Attendees)
}

func (r *TrainingRepo) insertAttendees(ctx context.Context, trainingID string, attendees []entity.TrainingAttendee) error {
	for _, a := range attendees {
		_, err := r.q.Exec(ctx, `
			INSERT INTO training_attendees (id, training_id, employee_id, attended, note) VALUES ($1, $2, $3, $4, $5)`,
			a.ID, trainingID, a.EmployeeID, a.Attended, a.Note)
		if err != nil {
			return mapWriteErr("insert training attendee", err)
		}
	}
	return nil
}

func (r *TrainingRepo) GetByID(ctx context.Context, id string) (*entity.Training, error) {
	t, err := scanTraining(r.q.QueryRow(ctx, `SELECT `+trainingColumns+` FROM trainings WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get training: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT a.id, a.training_id, a.employee_id, e.last_name || ', ' || e.first_name, a.attended, a.note
		FROM training_attendees a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.training_id = $1
		ORDER BY e.last_name, e.first_name`, id)
	if err != nil {
		return nil, fmt.Errorf("list training attendees: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var a entity.TrainingAttendee
		if err := rows.Scan(&a.ID, &a.TrainingID, &a.EmployeeID, &a.EmployeeName, &a.Attended, &a.Note); err != nil {
			return nil, fmt.Errorf("scan training attendee: %w", err)
		}
		t.Attendees = append(t.Attendees, a)
	}
	return t, rows.Err()
}

func (r *TrainingRepo) List(ctx context.Context, limit, offset int) ([]*entity.Training, error) {
	rows, err := r.q.Query(ctx, `SELECT `+trainingColumns+` FROM trainings ORDER BY date DESC LIMIT $1 OFFSET $2`,
		clampLimit(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list trainings: %w", err)
	}
	defer rows.Close()
	var list []*entity.Training
	for rows.Next() {
		t, err := scanTraining(rows)
		if err != nil {
			return nil, fmt.Errorf("scan training: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *TrainingRepo) Update(ctx context.Context, t *entity.Training) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE trainings SET topic = $2, description = $3, instructor = $4, place = $5, date = $6,
		       duration_hours = $7, updated_at = $8
		WHERE id = $1`,
		t.ID, t.Topic, t.Description, t.Instructor, t.Place, dateOnly(t.Date), t.DurationHours, t.UpdatedAt)
	if err != nil {
		return mapWriteErr("update training", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TrainingRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM trainings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete training: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TrainingRepo) ReplaceAttendees(ctx context.Context, trainingID string, attendees []entity.TrainingAttendee) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM training_attendees WHERE training_id = $1`, trainingID); err != nil {
		return fmt.Errorf("delete training attendees: %w", err)
	}
	return r.insertAttendees(ctx, trainingID, attendees)
}
