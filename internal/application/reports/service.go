// Package reports arma los documentos descargables: matrices de asistencia, códigos
// contables agrupados, PDF de órdenes y requerimientos y exportaciones de listados.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/constructora-api/internal/application/attendance"
	"github.com/jhoicas/constructora-api/internal/application/dto"
	"github.com/jhoicas/constructora-api/internal/application/ports"
	"github.com/jhoicas/constructora-api/internal/domain"
	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/jhoicas/constructora-api/internal/domain/purchasing"
	"github.com/jhoicas/constructora-api/internal/domain/report"
	"github.com/jhoicas/constructora-api/internal/domain/repository"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Tipos de contenido de las descargas.
const (
	ContentTypeXLSX = "application/xlsx"
	ContentTypePDF  = "application/pdf"
	ContentTypeHTML = "text/html; charset=utf-8"
)

// Config datos de cabecera y precios de la cotización estimada.
type Config struct {
	CompanyName       string
	CompanyRUC        string
	Location          *time.Location // zona para "mes en curso"; nil = UTC
	QuotationKeywords []string
	QuotationPrices   map[string]decimal.Decimal
}

// Deps dependencias del servicio de reportes.
type Deps struct {
	Employees    repository.EmployeeRepository
	Attendance   repository.AttendanceRepository
	Codes        repository.AccountingCodeRepository
	Orders       repository.PurchaseOrderRepository
	Requisitions repository.RequisitionRepository
	Products     repository.ProductRepository
	Suppliers    repository.SupplierRepository
	XLSX         ports.SpreadsheetWriter
	PDF          ports.PDFWriter
	HTML         ports.HTMLWriter
	Clock        ports.Clock
	Config       Config
}

// Service generación de reportes.
type Service struct {
	d   Deps
	loc *time.Location
}

func NewService(d Deps) *Service {
	loc := d.Config.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Service{d: d, loc: loc}
}

func (s *Service) meta(title, subtitle string) ports.ReportMeta {
	return ports.ReportMeta{
		CompanyName: s.d.Config.CompanyName,
		CompanyRUC:  s.d.Config.CompanyRUC,
		Title:       title,
		Subtitle:    subtitle,
		GeneratedAt: s.d.Clock().In(s.loc),
	}
}

// ─── Asistencia ─────────────────────────────────────────────────────────────

func (s *Service) attendanceMatrix(ctx context.Context, q dto.RangeQuery) (*report.AttendanceMatrix, error) {
	if err := dto.Validate(q); err != nil {
		return nil, err
	}
	from, to, err := attendance.Range(q.Start, q.End, s.d.Clock().In(s.loc))
	if err != nil {
		return nil, err
	}
	active := true
	employees, err := s.d.Employees.List(ctx, repository.EmployeeFilter{Active: &active})
	if err != nil {
		return nil, err
	}
	records, err := s.d.Attendance.ListByRange(ctx, from, to, "")
	if err != nil {
		return nil, err
	}
	return report.BuildAttendanceMatrix(from, to, employees, records)
}

func attendanceName(m *report.AttendanceMatrix, ext string) string {
	return fmt.Sprintf("asistencia_%s_%s.%s", m.Start.Format(dto.DateLayout), m.End.Format(dto.DateLayout), ext)
}

// AttendanceXLSX matriz de asistencia en Excel.
func (s *Service) AttendanceXLSX(ctx context.Context, q dto.RangeQuery) (*dto.FileResponse, error) {
	m, err := s.attendanceMatrix(ctx, q)
	if err != nil {
		return nil, err
	}
	b, err := s.d.XLSX.AttendanceMatrix(m, s.meta("Reporte de asistencia", m.Title()))
	if err != nil {
		return nil, s.renderErr("asistencia xlsx", err)
	}
	return &dto.FileResponse{Filename: attendanceName(m, "xlsx"), ContentType: ContentTypeXLSX, Content: b}, nil
}

// AttendancePDF matriz de asistencia en PDF apaisado.
func (s *Service) AttendancePDF(ctx context.Context, q dto.RangeQuery) (*dto.FileResponse, error) {
	m, err := s.attendanceMatrix(ctx, q)
	if err != nil {
		return nil, err
	}
	b, err := s.d.PDF.AttendanceMatrix(m, s.meta("Reporte de asistencia", m.Title()))
	if err != nil {
		return nil, s.renderErr("asistencia pdf", err)
	}
	return &dto.FileResponse{Filename: attendanceName(m, "pdf"), ContentType: ContentTypePDF, Content: b}, nil
}

// AttendanceHTML matriz de asistencia imprimible.
func (s *Service) AttendanceHTML(ctx context.Context, q dto.RangeQuery) (*dto.FileResponse, error) {
	m, err := s.attendanceMatrix(ctx, q)
	if err != nil {
		return nil, err
	}
	b, err := s.d.HTML.AttendanceMatrix(m, s.meta("Reporte de asistencia", m.Title()))
	if err != nil {
		return nil, s.renderErr("asistencia html", err)
	}
	return &dto.FileResponse{Filename: attendanceName(m, "html"), ContentType: ContentTypeHTML, Content: b}, nil
}

// ─── Códigos contables ──────────────────────────────────────────────────────

func (s *Service) accountingRows(ctx context.Context, q dto.RangeQuery) ([]report.AccountingRow, string, string, error) {
	if err := dto.Validate(q); err != nil {
		return nil, "", "", err
	}
	from, _ := dto.ParseDate(q.Start)
	to, _ := dto.ParseDate(q.End)
	if from != nil && to != nil && from.After(*to) {
		return nil, "", "", domain.NewValidationError("start", "la fecha inicial es posterior a la final")
	}
	rows, err := s.d.Codes.ListWorkCodeRows(ctx, from, to)
	if err != nil {
		return nil, "", "", err
	}
	base, subtitle := "codigos_contables", "Todas las obras"
	if from != nil && to != nil {
		base = fmt.Sprintf("codigos_contables_%s_%s", q.Start, q.End)
		subtitle = report.PeriodLabel(*from, *to)
	}
	return report.GroupAccountingCodes(rows), base, subtitle, nil
}

// AccountingCodesXLSX códigos contables agrupados por obra.
func (s *Service) AccountingCodesXLSX(ctx context.Context, q dto.RangeQuery) (*dto.FileResponse, error) {
	rows, base, subtitle, err := s.accountingRows(ctx, q)
	if err != nil {
		return nil, err
	}
	b, err := s.d.XLSX.AccountingCodes(rows, s.meta("Códigos contables por obra", subtitle))
	if err != nil {
		return nil, s.renderErr("códigos contables xlsx", err)
	}
	return &dto.FileResponse{Filename: base + ".xlsx", ContentType: ContentTypeXLSX, Content: b}, nil
}

// AccountingCodesPDF mismo reporte en PDF.
func (s *Service) AccountingCodesPDF(ctx context.Context, q dto.RangeQuery) (*dto.FileResponse, error) {
	rows, base, subtitle, err := s.accountingRows(ctx, q)
	if err != nil {
		return nil, err
	}
	b, err := s.d.PDF.AccountingCodes(rows, s.meta("Códigos contables por obra", subtitle))
	if err != nil {
		return nil, s.renderErr("códigos contables pdf", err)
	}
	return &dto.FileResponse{Filename: base + ".pdf", ContentType: ContentTypePDF, Content: b}, nil
}

// ─── Documentos ─────────────────────────────────────────────────────────────

// OrderPDF orden de compra o servicio.
func (s *Service) OrderPDF(ctx context.Context, id string) (*dto.FileResponse, error) {
	o, err := s.d.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	title := "Orden de compra"
	if o.Type == entity.OrderTypeService {
		title = "Orden de servicio"
	}
	b, err := s.d.PDF.PurchaseOrder(o, s.meta(title, o.Number))
	if err != nil {
		return nil, s.renderErr("orden pdf", err)
	}
	return &dto.FileResponse{Filename: "orden_" + o.Number + ".pdf", ContentType: ContentTypePDF, Content: b}, nil
}

// QuotationPDF cotización estimada con los precios configurados por palabra clave.
func (s *Service) QuotationPDF(ctx context.Context, id string) (*dto.FileResponse, error) {
	o, err := s.d.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	q := purchasing.EstimateQuotation(o, s.d.Config.QuotationKeywords, s.d.Config.QuotationPrices)
	b, err := s.d.PDF.Quotation(q, s.meta("Cotización estimada", o.Number))
	if err != nil {
		return nil, s.renderErr("cotización pdf", err)
	}
	return &dto.FileResponse{Filename: "cotizacion_" + o.Number + ".pdf", ContentType: ContentTypePDF, Content: b}, nil
}

// RequisitionPDF requerimiento con el avance de entrega.
func (s *Service) RequisitionPDF(ctx context.Context, id string) (*dto.FileResponse, error) {
	r, err := s.d.Requisitions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	b, err := s.d.PDF.Requisition(r, s.meta("Requerimiento de materiales", r.Code))
	if err != nil {
		return nil, s.renderErr("requerimiento pdf", err)
	}
	return &dto.FileResponse{Filename: "requerimiento_" + r.Code + ".pdf", ContentType: ContentTypePDF, Content: b}, nil
}

func (s *Service) renderErr(what string, err error) error {
	log.Error().Err(err).Str("component", "reports").Str("report", what).Msg("error generando documento")
	return fmt.Errorf("reports: %s: %w", what, err)
}
