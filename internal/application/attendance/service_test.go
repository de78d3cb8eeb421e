package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/constructora-api/internal/application/dto"
	"github.com/jhoicas/constructora-api/internal/application/ports"
	"github.com/jhoicas/constructora-api/internal/domain"
	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/jhoicas/constructora-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	empA = "a1a1a1a1-0000-4000-8000-000000000001"
	empB = "a1a1a1a1-0000-4000-8000-000000000002"
)

var now = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

type memAttendance struct{ m map[string]*entity.Attendance }

func (r *memAttendance) Create(_ context.Context, a *entity.Attendance) error {
	for _, x := range r.m {
		if x.EmployeeID == a.EmployeeID && x.Date.Equal(a.Date) {
			return domain.ErrDuplicate
		}
	}
	cp := *a
	r.m[a.ID] = &cp
	return nil
}
func (r *memAttendance) GetByID(_ context.Context, id string) (*entity.Attendance, error) {
	a, ok := r.m[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}
func (r *memAttendance) GetByEmployeeAndDate(_ context.Context, emp string, d time.Time) (*entity.Attendance, error) {
	for _, a := range r.m {
		if a.EmployeeID == emp && a.Date.Equal(d) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *memAttendance) Update(_ context.Context, a *entity.Attendance) error {
	if _, ok := r.m[a.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *a
	r.m[a.ID] = &cp
	return nil
}
func (r *memAttendance) Delete(_ context.Context, id string) error {
	if _, ok := r.m[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.m, id)
	return nil
}
func (r *memAttendance) ListByRange(_ context.Context, from, to time.Time, emp string) ([]*entity.Attendance, error) {
	var out []*entity.Attendance
	for _, a := range r.m {
		if a.Date.Before(from) || a.Date.After(to) || (emp != "" && a.EmployeeID != emp) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

type memEmployees struct {
	repository.EmployeeRepository
	m map[string]*entity.Employee
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

type memTx struct {
	repo  *memAttendance
	calls int
	// failOn hace fallar el Create de esa fecha dentro de la transacción.
	failOn time.Time
}

func (tx *memTx) RunAttendance(_ context.Context, fn func(repository.AttendanceRepository) error) error {
	tx.calls++
	snapshot := make(map[string]*entity.Attendance, len(tx.repo.m))
	for k, v := range tx.repo.m {
		snapshot[k] = v
	}
	var att repository.AttendanceRepository = tx.repo
	if !tx.failOn.IsZero() {
		att = failingAttendance{memAttendance: tx.repo, on: tx.failOn}
	}
	if err := fn(att); err != nil {
		tx.repo.m = snapshot
		return err
	}
	return nil
}

type failingAttendance struct {
	*memAttendance
	on time.Time
}

func (r failingAttendance) Create(ctx context.Context, a *entity.Attendance) error {
	if a.Date.Equal(r.on) {
		return errors.New("db down")
	}
	return r.memAttendance.Create(ctx, a)
}

type stubSheet struct {
	rows [][]string
	err  error
}

func (s stubSheet) ReadRows(string, []byte) ([][]string, error) { return s.rows, s.err }

func newService(sheet ports.SpreadsheetReader) (*Service, *memAttendance, *memTx) {
	return newServiceAt(sheet, now, time.UTC)
}

func newServiceAt(sheet ports.SpreadsheetReader, at time.Time, loc *time.Location) (*Service, *memAttendance, *memTx) {
	repo := &memAttendance{m: map[string]*entity.Attendance{}}
	emps := &memEmployees{m: map[string]*entity.Employee{
		empA: {ID: empA, DocumentNumber: "40111222", FirstName: "Ana", LastName: "Quispe", Active: true},
		empB: {ID: empB, DocumentNumber: "40333444", FirstName: "Luis", LastName: "Mamani", Active: true},
	}}
	tx := &memTx{repo: repo}
	return NewService(repo, emps, tx, sheet, ports.FixedClock(at), loc), repo, tx
}

func TestRegister_DuplicateDay(t *testing.T) {
	svc, _, _ := newService(nil)
	ctx := context.Background()
	in := dto.AttendanceRequest{EmployeeID: empA, Date: "2025-03-10", Status: "ASISTIO"}

	res, err := svc.Register(ctx, "user-1", in)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", res.Date)
	assert.Equal(t, "user-1", res.RegisteredBy)

	_, err = svc.Register(ctx, "user-1", in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRegister_InvalidStatus(t *testing.T) {
	svc, _, _ := newService(nil)
	_, err := svc.Register(context.Background(), "u", dto.AttendanceRequest{EmployeeID: empA, Date: "2025-03-10", Status: "VACACIONES"})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "status")
}

func TestUpdate_Missing(t *testing.T) {
	svc, _, _ := newService(nil)
	_, err := svc.Update(context.Background(), "u", "nope", dto.UpdateAttendanceRequest{Status: "FALTA"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_DefaultsToCurrentMonth(t *testing.T) {
	svc, repo, _ := newService(nil)
	ctx := context.Background()
	for _, d := range []string{"2025-02-28", "2025-03-01", "2025-03-31", "2025-04-01"} {
		_, err := svc.Register(ctx, "u", dto.AttendanceRequest{EmployeeID: empA, Date: d, Status: "ASISTIO"})
		require.NoError(t, err)
	}
	require.Len(t, repo.m, 4)

	list, err := svc.List(ctx, dto.RangeQuery{})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestList_CurrentMonthInLocalZone(t *testing.T) {
	lima := time.FixedZone("PET", -5*3600)
	// 1 de abril 02:00 UTC sigue siendo 31 de marzo en Lima.
	svc, _, _ := newServiceAt(nil, time.Date(2025, 4, 1, 2, 0, 0, 0, time.UTC), lima)
	ctx := context.Background()
	for _, d := range []string{"2025-03-31", "2025-04-01"} {
		_, err := svc.Register(ctx, "u", dto.AttendanceRequest{EmployeeID: empA, Date: d, Status: "ASISTIO"})
		require.NoError(t, err)
	}

	list, err := svc.List(ctx, dto.RangeQuery{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "2025-03-31", list[0].Date)
}

func TestRange_StartAfterEnd(t *testing.T) {
	_, _, err := Range("2025-03-10", "2025-03-01", now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBulkUpsert_CreatesUpdatesAndReportsUnknown(t *testing.T) {
	svc, repo, tx := newService(nil)
	ctx := context.Background()
	_, err := svc.Register(ctx, "u", dto.AttendanceRequest{EmployeeID: empA, Date: "2025-03-10", Status: "FALTA"})
	require.NoError(t, err)

	res, err := svc.BulkUpsert(ctx, "u2", dto.BulkAttendanceRequest{
		Date: "2025-03-10",
		Entries: []dto.BulkAttendanceEntry{
			{EmployeeID: empA, Status: "JUSTIFICADO", Note: "cita médica"},
			{EmployeeID: empB, Status: "ASISTIO"},
			{EmployeeID: "a1a1a1a1-0000-4000-8000-0000000000ff", Status: "ASISTIO"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Updated)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, "empleado inexistente", res.Failed[0].Reason)
	assert.Equal(t, 1, tx.calls)

	a, _ := repo.GetByEmployeeAndDate(ctx, empA, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NotNil(t, a)
	assert.Equal(t, entity.AttendanceJustified, a.Status)
	assert.Equal(t, "u2", a.RegisteredBy)
}

func TestImport_AppliesRowsAndReportsBadRows(t *testing.T) {
	svc, repo, tx := newService(stubSheet{rows: [][]string{
		{"DNI", "Fecha", "Estado", "Observación"},
		{"40111222", "2025-03-10", "Asistió", ""},
		{"40333444", "10/03/2025", "tardanza", "tráfico"},
		{"40111222", "45727", "FALTA", ""}, // serial de Excel: 2025-03-11
		{"", "", "", ""},
		{"99999999", "2025-03-10", "ASISTIO", ""},
		{"40333444", "2025-03-11", "vacaciones", ""},
		{"40333444", "ayer", "ASISTIO", ""},
	}})

	res, err := svc.Import(context.Background(), "u", "marzo.xlsx", []byte("x"))
	require.NoError(t, err)

	assert.Equal(t, 3, res.Created)
	assert.Equal(t, 0, res.Updated)
	require.Len(t, res.Failed, 3)
	assert.Equal(t, 6, res.Failed[0].Row)
	assert.Equal(t, "99999999", res.Failed[0].Document)
	assert.Equal(t, 7, res.Failed[1].Row)
	assert.Equal(t, 8, res.Failed[2].Row)

	assert.Equal(t, 1, tx.calls, "toda la planilla en una transacción")
	assert.Len(t, repo.m, 3)
}

func TestImport_FailureRollsBackEveryDate(t *testing.T) {
	svc, repo, tx := newService(stubSheet{rows: [][]string{
		{"DNI", "Fecha", "Estado", "Observación"},
		{"40111222", "2025-03-10", "ASISTIO", ""},
		{"40333444", "2025-03-11", "FALTA", ""},
	}})
	tx.failOn = time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

	res, err := svc.Import(context.Background(), "u", "marzo.xlsx", []byte("x"))
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Empty(t, repo.m, "la fecha ya aplicada también se revierte")
}

func TestImport_RequiresHeader(t *testing.T) {
	svc, _, _ := newService(stubSheet{rows: [][]string{{"40111222", "2025-03-10", "ASISTIO"}}})
	_, err := svc.Import(context.Background(), "u", "a.xlsx", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImport_ReaderError(t *testing.T) {
	svc, _, _ := newService(stubSheet{err: errors.New("formato no soportado")})
	_, err := svc.Import(context.Background(), "u", "a.csv", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseSheetDate(t *testing.T) {
	cases := map[string]string{
		"2025-03-10": "2025-03-10",
		"10/03/2025": "2025-03-10",
		"1/3/2025":   "2025-03-01",
		"45726":      "2025-03-10",
		"45726.5":    "2025-03-10",
	}
	for in, want := range cases {
		got, err := ParseSheetDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, entity.DateKey(got), in)
	}
	_, err := ParseSheetDate("")
	assert.Error(t, err)
}

func TestParseStatus(t *testing.T) {
	st, ok := ParseStatus(" Asistió ")
	assert.True(t, ok)
	assert.Equal(t, entity.AttendancePresent, st)

	_, ok = ParseStatus("libre")
	assert.False(t, ok)
}
