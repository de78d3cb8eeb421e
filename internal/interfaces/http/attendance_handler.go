package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/constructora-api/internal/application/attendance"
	"github.com/jhoicas/constructora-api/internal/application/dto"
)

// AttendanceHandler registro diario, carga masiva e importación (/api/attendance).
type AttendanceHandler struct {
	svc *attendance.Service
}

func NewAttendanceHandler(svc *attendance.Service) *AttendanceHandler {
	return &AttendanceHandler{svc: svc}
}

// List GET /api/attendance?start=&end=&employee_id= (sin rango: mes actual)
func (h *AttendanceHandler) List(c *fiber.Ctx) error {
	var q dto.RangeQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	list, err := h.svc.List(c.Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// Register POST /api/attendance
func (h *AttendanceHandler) Register(c *fiber.Ctx) error {
	var in dto.AttendanceRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.svc.Register(c.Context(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *AttendanceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAttendanceRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.svc.Update(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *AttendanceHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Bulk POST /api/attendance/bulk: crea o actualiza la asistencia de un día.
func (h *AttendanceHandler) Bulk(c *fiber.Ctx) error {
	var in dto.BulkAttendanceRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.svc.BulkUpsert(c.Context(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Import POST /api/attendance/import (multipart, campo "file": .xlsx o .xls)
func (h *AttendanceHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "archivo requerido en el campo file")
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return err
	}
	out, err := h.svc.Import(c.Context(), GetUserID(c), fh.Filename, data)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
