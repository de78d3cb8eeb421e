package http

import (
	"context"
	"slices"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/constructora-api/internal/application/dto"
	"github.com/jhoicas/constructora-api/internal/application/reports"
	"github.com/jhoicas/constructora-api/internal/domain/entity"
)

// exportRoles roles que pueden descargar cada listado (además de admin).
var exportRoles = map[string][]string{
	"employees": {entity.RoleRRHH},
	"products":  {entity.RoleLogistica},
	"suppliers": {entity.RoleLogistica, entity.RoleContabilidad},
	"orders":    {entity.RoleLogistica, entity.RoleContabilidad},
}

// ReportHandler descargas de reportes (/api/reports).
type ReportHandler struct {
	svc *reports.Service
}

func NewReportHandler(svc *reports.Service) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// AttendanceXLSX godoc
// @Summary      Matriz de asistencia en Excel
// @Tags         reports
// @Produce      application/xlsx
// @Param        start  query  string  false  "YYYY-MM-DD (por defecto, inicio del mes)"
// @Param        end    query  string  false  "YYYY-MM-DD (por defecto, fin del mes)"
// @Router       /api/reports/attendance.xlsx [get]
func (h *ReportHandler) AttendanceXLSX(c *fiber.Ctx) error {
	return h.byRange(c, h.svc.AttendanceXLSX)
}

func (h *ReportHandler) AttendancePDF(c *fiber.Ctx) error {
	return h.byRange(c, h.svc.AttendancePDF)
}

func (h *ReportHandler) AttendanceHTML(c *fiber.Ctx) error {
	return h.byRange(c, h.svc.AttendanceHTML)
}

// AccountingCodesXLSX GET /api/reports/accounting-codes.xlsx?start=&end= (sin rango: todo)
func (h *ReportHandler) AccountingCodesXLSX(c *fiber.Ctx) error {
	return h.byRange(c, h.svc.AccountingCodesXLSX)
}

func (h *ReportHandler) AccountingCodesPDF(c *fiber.Ctx) error {
	return h.byRange(c, h.svc.AccountingCodesPDF)
}

// Export GET /api/reports/exports/:resource.xlsx
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	resource := c.Params("resource")
	if role := GetRole(c); role != entity.RoleAdmin && !slices.Contains(exportRoles[resource], role) {
		if _, known := exportRoles[resource]; known {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "su rol no tiene acceso a este recurso"})
		}
	}
	f, err := h.svc.Export(c.Context(), resource)
	if err != nil {
		return err
	}
	return sendFile(c, f)
}

func (h *ReportHandler) byRange(c *fiber.Ctx, fn func(ctx context.Context, q dto.RangeQuery) (*dto.FileResponse, error)) error {
	var q dto.RangeQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	f, err := fn(c.Context(), q)
	if err != nil {
		return err
	}
	return sendFile(c, f)
}
