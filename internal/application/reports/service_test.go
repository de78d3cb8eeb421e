package reports

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/jhoicas/constructora-api/internal/application/dto"
	"github.com/jhoicas/constructora-api/internal/application/ports"
	"github.com/jhoicas/constructora-api/internal/domain"
	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/jhoicas/constructora-api/internal/domain/purchasing"
	"github.com/jhoicas/constructora-api/internal/domain/report"
	"github.com/jhoicas/constructora-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─── fakes ──────────────────────────────────────────────────────────────────

type stubEmployees struct {
	repository.EmployeeRepository
	list   []*entity.Employee
	filter repository.EmployeeFilter
}

func (s *stubEmployees) List(_ context.Context, f repository.EmployeeFilter) ([]*entity.Employee, error) {
	s.filter = f
	return s.list, nil
}

type stubAttendance struct {
	repository.AttendanceRepository
	from, to time.Time
}

func (s *stubAttendance) ListByRange(_ context.Context, from, to time.Time, _ string) ([]*entity.Attendance, error) {
	s.from, s.to = from, to
	return nil, nil
}

type stubCodes struct {
	repository.AccountingCodeRepository
	rows     []entity.WorkCodeRow
	from, to *time.Time
}

func (s *stubCodes) ListWorkCodeRows(_ context.Context, from, to *time.Time) ([]entity.WorkCodeRow, error) {
	s.from, s.to = from, to
	return s.rows, nil
}

type stubOrders struct {
	repository.PurchaseOrderRepository
	order *entity.PurchaseOrder
}

func (s stubOrders) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	if s.order != nil && s.order.ID == id {
		return s.order, nil
	}
	return nil, nil
}

func (s stubOrders) List(context.Context, repository.OrderFilter) ([]*entity.PurchaseOrder, error) {
	return []*entity.PurchaseOrder{s.order}, nil
}

type stubRequisitions struct {
	repository.RequisitionRepository
}

func (stubRequisitions) GetByID(context.Context, string) (*entity.Requisition, error) {
	return nil, nil
}

// recorder implementa los tres escritores y guarda lo que recibió.
type recorder struct {
	matrix    *report.AttendanceMatrix
	rows      []report.AccountingRow
	quotation *purchasing.Quotation
	table     ports.Table
	meta      ports.ReportMeta
}

func (r *recorder) AttendanceMatrix(m *report.AttendanceMatrix, meta ports.ReportMeta) ([]byte, error) {
	r.matrix, r.meta = m, meta
	return []byte("matrix"), nil
}
func (r *recorder) AccountingCodes(rows []report.AccountingRow, meta ports.ReportMeta) ([]byte, error) {
	r.rows, r.meta = rows, meta
	return []byte("codes"), nil
}
func (r *recorder) Table(t ports.Table, meta ports.ReportMeta) ([]byte, error) {
	r.table, r.meta = t, meta
	return []byte("table"), nil
}
func (r *recorder) PurchaseOrder(_ *entity.PurchaseOrder, meta ports.ReportMeta) ([]byte, error) {
	r.meta = meta
	return []byte("%PDF"), nil
}
func (r *recorder) Quotation(q *purchasing.Quotation, meta ports.ReportMeta) ([]byte, error) {
	r.quotation, r.meta = q, meta
	return []byte("%PDF"), nil
}
func (r *recorder) Requisition(*entity.Requisition, ports.ReportMeta) ([]byte, error) {
	return []byte("%PDF"), nil
}

type fixture struct {
	svc   *Service
	rec   *recorder
	emps  *stubEmployees
	att   *stubAttendance
	codes *stubCodes
}

func newFixture(t *testing.T, now time.Time) fixture {
	t.Helper()
	lima, err := time.LoadLocation("America/Lima")
	require.NoError(t, err)

	rec := &recorder{}
	f := fixture{
		rec:   rec,
		emps:  &stubEmployees{list: []*entity.Employee{{ID: "e1", FirstName: "Ana", LastName: "Quispe", Active: true}}},
		att:   &stubAttendance{},
		codes: &stubCodes{rows: []entity.WorkCodeRow{{WorkCode: "OB-01", WorkName: "Edificio", Code: "62.1", Name: "Sueldos"}}},
	}
	order := &entity.PurchaseOrder{
		ID: "o1", Number: "S-2025-0007", Type: entity.OrderTypeService, Status: entity.OrderPending,
		Lines: []entity.OrderLine{{Description: "Alquiler de mezcladora", Quantity: decimal.NewFromInt(2)}},
	}
	f.svc = NewService(Deps{
		Employees:    f.emps,
		Attendance:   f.att,
		Codes:        f.codes,
		Orders:       stubOrders{order: order},
		Requisitions: stubRequisitions{},
		XLSX:         rec,
		PDF:          rec,
		HTML:         rec,
		Clock:        ports.FixedClock(now),
		Config: Config{
			CompanyName:       "Constructora Andina SAC",
			CompanyRUC:        "20123456789",
			Location:          lima,
			QuotationKeywords: []string{"mezcladora"},
			QuotationPrices:   map[string]decimal.Decimal{"mezcladora": decimal.NewFromInt(120)},
		},
	})
	return f
}

// ─── tests ──────────────────────────────────────────────────────────────────

func TestAttendanceXLSX_DefaultsToCurrentMonthInLocalZone(t *testing.T) {
	// 1 de abril 03:00 UTC todavía es 31 de marzo en Lima.
	f := newFixture(t, time.Date(2025, 4, 1, 3, 0, 0, 0, time.UTC))

	res, err := f.svc.AttendanceXLSX(context.Background(), dto.RangeQuery{})
	require.NoError(t, err)

	assert.Equal(t, "asistencia_2025-03-01_2025-03-31.xlsx", res.Filename)
	assert.Equal(t, ContentTypeXLSX, res.ContentType)
	assert.Equal(t, "2025-03-01", entity.DateKey(f.att.from))
	assert.Equal(t, "2025-03-31", entity.DateKey(f.att.to))
	require.NotNil(t, f.emps.filter.Active)
	assert.True(t, *f.emps.filter.Active, "solo empleados activos")
	assert.Len(t, f.rec.matrix.Days, 31)
	assert.Equal(t, "Marzo 2025", f.rec.meta.Subtitle)
	assert.Equal(t, "Constructora Andina SAC", f.rec.meta.CompanyName)
}

func TestAttendance_ExplicitRangeAndFormats(t *testing.T) {
	f := newFixture(t, time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC))
	q := dto.RangeQuery{Start: "2025-03-03", End: "2025-03-09"}
	ctx := context.Background()

	pdf, err := f.svc.AttendancePDF(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, "asistencia_2025-03-03_2025-03-09.pdf", pdf.Filename)
	assert.Equal(t, ContentTypePDF, pdf.ContentType)

	html, err := f.svc.AttendanceHTML(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, "asistencia_2025-03-03_2025-03-09.html", html.Filename)
	assert.Len(t, f.rec.matrix.Days, 7)

	_, err = f.svc.AttendanceXLSX(ctx, dto.RangeQuery{Start: "2025-03-09", End: "2025-03-03"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAccountingCodes_Filenames(t *testing.T) {
	f := newFixture(t, time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	all, err := f.svc.AccountingCodesXLSX(ctx, dto.RangeQuery{})
	require.NoError(t, err)
	assert.Equal(t, "codigos_contables.xlsx", all.Filename)
	assert.Nil(t, f.codes.from)
	require.Len(t, f.rec.rows, 3)
	assert.Equal(t, report.RowHeader, f.rec.rows[0].Kind)

	ranged, err := f.svc.AccountingCodesPDF(ctx, dto.RangeQuery{Start: "2025-01-01", End: "2025-03-31"})
	require.NoError(t, err)
	assert.Equal(t, "codigos_contables_2025-01-01_2025-03-31.pdf", ranged.Filename)
	require.NotNil(t, f.codes.from)
	assert.Equal(t, "01/01/2025 al 31/03/2025", f.rec.meta.Subtitle)
}

func TestOrderDocuments(t *testing.T) {
	f := newFixture(t, time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	res, err := f.svc.OrderPDF(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, "orden_S-2025-0007.pdf", res.Filename)
	assert.Equal(t, "Orden de servicio", f.rec.meta.Title)

	res, err = f.svc.QuotationPDF(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, "cotizacion_S-2025-0007.pdf", res.Filename)
	require.NotNil(t, f.rec.quotation)
	assert.True(t, decimal.NewFromInt(240).Equal(f.rec.quotation.EstimatedTotal))

	_, err = f.svc.OrderPDF(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.svc.RequisitionPDF(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExport(t *testing.T) {
	f := newFixture(t, time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	res, err := f.svc.Export(ctx, "employees")
	require.NoError(t, err)
	assert.Equal(t, "employees.xlsx", res.Filename)
	assert.Equal(t, "Empleados", f.rec.table.Sheet)
	require.Len(t, f.rec.table.Rows, 1)
	assert.Equal(t, "Quispe, Ana", f.rec.table.Rows[0][1])
	assert.Nil(t, f.emps.filter.Active, "la exportación incluye inactivos")

	res, err = f.svc.Export(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, "S-2025-0007", f.rec.table.Rows[0][0])

	_, err = f.svc.Export(ctx, "users")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
