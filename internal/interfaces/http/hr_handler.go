package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/constructora-api/internal/application/dto"
	"github.com/jhoicas/constructora-api/internal/application/usecase"
)

// ── Cargos ──────────────────────────────────────────────────────────────────

// RoleHandler CRUD de cargos (/api/roles).
type RoleHandler struct {
	uc *usecase.RoleUseCase
}

func NewRoleHandler(uc *usecase.RoleUseCase) *RoleHandler {
	return &RoleHandler{uc: uc}
}

func (h *RoleHandler) Create(c *fiber.Ctx) error {
	var in dto.RoleRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *RoleHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (h *RoleHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *RoleHandler) Update(c *fiber.Ctx) error {
	var in dto.RoleRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *RoleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Empleados ───────────────────────────────────────────────────────────────

// EmployeeHandler CRUD de empleados (/api/employees).
type EmployeeHandler struct {
	uc *usecase.EmployeeUseCase
}

func NewEmployeeHandler(uc *usecase.EmployeeUseCase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

// Create POST /api/employees
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/employees?active=true&role_id=&q=&limit=&offset=
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	var q dto.EmployeeListQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	list, err := h.uc.List(c.Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update PUT /api/employees/:id (parcial: solo los campos enviados)
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEmployeeRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Capacitaciones ──────────────────────────────────────────────────────────

// TrainingHandler capacitaciones y asistentes (/api/trainings).
type TrainingHandler struct {
	uc *usecase.TrainingUseCase
}

func NewTrainingHandler(uc *usecase.TrainingUseCase) *TrainingHandler {
	return &TrainingHandler{uc: uc}
}

func (h *TrainingHandler) Create(c *fiber.Ctx) error {
	var in dto.TrainingRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *TrainingHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := bindQuery(c, &page); err != nil {
		return err
	}
	list, err := h.uc.List(c.Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (h *TrainingHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *TrainingHandler) Update(c *fiber.Ctx) error {
	var in dto.TrainingRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// SetAttendees PUT /api/trainings/:id/attendees
func (h *TrainingHandler) SetAttendees(c *fiber.Ctx) error {
	var in dto.TrainingAttendeesRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.SetAttendees(c.Context(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *TrainingHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
