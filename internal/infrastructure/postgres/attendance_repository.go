package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/constructora-api/internal/domain"
	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/jhoicas/constructora-api/internal/domain/repository"
)

var _ repository.AttendanceRepository = (*AttendanceRepo)(nil)

// AttendanceRepo asistencias diarias; (employee_id, date) es único.
type AttendanceRepo struct {
	q Querier
}

func NewAttendanceRepository(q Querier) *AttendanceRepo {
	return &AttendanceRepo{q: q}
}

const attendanceColumns = `id, employee_id, date, status, note, registered_by, created_at, updated_at`

func scanAttendance(row pgx.Row) (*entity.Attendance, error) {
	var a entity.Attendance
	var status string
	var registeredBy *string
	if err := row.Scan(&a.ID, &a.EmployeeID, &a.Date, &status, &a.Note, &registeredBy, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.Status = entity.AttendanceStatus(status)
	a.RegisteredBy = derefStr(registeredBy)
	return &a, nil
}

func (r *AttendanceRepo) Create(ctx context.Context, a *entity.Attendance) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO attendances (`+attendanceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.EmployeeID, dateOnly(a.Date), string(a.Status), a.Note, nullIfEmpty(a.RegisteredBy), a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return mapWriteErr("insert attendance", err)
	}
	return nil
}

func (r *AttendanceRepo) GetByID(ctx context.Context, id string) (*entity.Attendance, error) {
	a, err := scanAttendance(r.q.QueryRow(ctx, `SELECT `+attendanceColumns+` FROM attendances WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get attendance: %w", err)
	}
	return a, nil
}

func (r *AttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*entity.Attendance, error) {
	a, err := scanAttendance(r.q.QueryRow(ctx,
		`SELECT `+attendanceColumns+` FROM attendances WHERE employee_id = $1 AND date = $2`,
		employeeID, dateOnly(date)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get attendance by employee/date: %w", err)
	}
	return a, nil
}

func (r *AttendanceRepo) Update(ctx context.Context, a *entity.Attendance) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE attendances SET status = $2, note = $3, registered_by = $4, updated_at = $5 WHERE id = $1`,
		a.ID, string(a.Status), a.Note, nullIfEmpty(a.RegisteredBy), a.UpdatedAt)
	if err != nil {
		return mapWriteErr("update attendance", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AttendanceRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AttendanceRepo) ListByRange(ctx context.Context, from, to time.Time, employeeID string) ([]*entity.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE date BETWEEN $1 AND $2`
	args := []any{dateOnly(from), dateOnly(to)}
	if employeeID != "" {
		query += ` AND employee_id = $3`
		args = append(args, employeeID)
	}
	query += ` ORDER BY date, employee_id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attendances: %w", err)
	}
	defer rows.Close()
	var list []*entity.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
