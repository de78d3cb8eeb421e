package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/constructora-api/internal/domain"
	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/jhoicas/constructora-api/internal/domain/repository"
)

var fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

// ─── empleados / cargos ─────────────────────────────────────────────────────

type memRoles struct{ m map[string]*entity.Role }

func (r *memRoles) Create(_ context.Context, x *entity.Role) error { r.m[x.ID] = x; return nil }
func (r *memRoles) GetByID(_ context.Context, id string) (*entity.Role, error) {
	return r.m[id], nil
}
func (r *memRoles) Update(_ context.Context, x *entity.Role) error { r.m[x.ID] = x; return nil }
func (r *memRoles) List(context.Context) ([]*entity.Role, error) {
	var out []*entity.Role
	for _, x := range r.m {
		out = append(out, x)
	}
	return out, nil
}
func (r *memRoles) Delete(_ context.Context, id string) error { delete(r.m, id); return nil }

type memEmployees struct{ m map[string]*entity.Employee }

func (r *memEmployees) Create(_ context.Context, e *entity.Employee) error {
	r.m[e.ID] = e
	return nil
}
func (r *memEmployees) GetByID(_ context.Context, id string) (*entity.Employee, error) {
	return r.m[id], nil
}
func (r *memEmployees) GetByDocument(_ context.Context, doc string) (*entity.Employee, error) {
	for _, e := range r.m {
		if e.DocumentNumber == doc {
			return e, nil
		}
	}
	return nil, nil
}
func (r *memEmployees) Update(_ context.Context, e *entity.Employee) error {
	if _, ok := r.m[e.ID]; !ok {
		return domain.ErrNotFound
	}
	r.m[e.ID] = e
	return nil
}
func (r *memEmployees) List(_ context.Context, f repository.EmployeeFilter) ([]*entity.Employee, error) {
	var out []*entity.Employee
	for _, e := range r.m {
		if f.Active != nil && e.Active != *f.Active {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
func (r *memEmployees) Delete(_ context.Context, id string) error { delete(r.m, id); return nil }

// ─── capacitaciones ─────────────────────────────────────────────────────────

type memTrainings struct {
	m        map[string]*entity.Training
	failNext bool
}

func (r *memTrainings) Create(_ context.Context, t *entity.Training) error {
	cp := *t
	r.m[t.ID] = &cp
	return nil
}
func (r *memTrainings) GetByID(_ context.Context, id string) (*entity.Training, error) {
	t, ok := r.m[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}
func (r *memTrainings) List(context.Context, int, int) ([]*entity.Training, error) {
	var out []*entity.Training
	for _, t := range r.m {
		out = append(out, t)
	}
	return out, nil
}
func (r *memTrainings) Update(_ context.Context, t *entity.Training) error {
	cp := *t
	cp.Attendees = r.m[t.ID].Attendees
	r.m[t.ID] = &cp
	return nil
}
func (r *memTrainings) Delete(_ context.Context, id string) error { delete(r.m, id); return nil }
func (r *memTrainings) ReplaceAttendees(_ context.Context, id string, a []entity.TrainingAttendee) error {
	if r.failNext {
		return domain.ErrConflict
	}
	r.m[id].Attendees = a
	return nil
}

// memTx ejecuta fn sobre el mismo repo en memoria; si fn falla restaura el estado previo.
type memTx struct{ trainings *memTrainings }

func (tx *memTx) RunTrainings(ctx context.Context, fn func(repository.TrainingRepository) error) error {
	snapshot := make(map[string]*entity.Training, len(tx.trainings.m))
	for k, v := range tx.trainings.m {
		cp := *v
		snapshot[k] = &cp
	}
	if err := fn(tx.trainings); err != nil {
		tx.trainings.m = snapshot
		return err
	}
	return nil
}
