package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/constructora-api/internal/application/dto"
	"github.com/jhoicas/constructora-api/internal/application/usecase"
)

// WorkHandler obras, códigos contables y su vínculo.
type WorkHandler struct {
	uc *usecase.WorkUseCase
}

func NewWorkHandler(uc *usecase.WorkUseCase) *WorkHandler {
	return &WorkHandler{uc: uc}
}

func (h *WorkHandler) CreateWork(c *fiber.Ctx) error {
	var in dto.WorkRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.CreateWork(c.Context(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListWorks GET /api/works?active=true
func (h *WorkHandler) ListWorks(c *fiber.Ctx) error {
	list, err := h.uc.ListWorks(c.Context(), c.QueryBool("active", false))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (h *WorkHandler) GetWork(c *fiber.Ctx) error {
	out, err := h.uc.GetWork(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *WorkHandler) UpdateWork(c *fiber.Ctx) error {
	var in dto.WorkRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateWork(c.Context(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *WorkHandler) DeleteWork(c *fiber.Ctx) error {
	if err := h.uc.DeleteWork(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *WorkHandler) CreateCode(c *fiber.Ctx) error {
	var in dto.AccountingCodeRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.CreateCode(c.Context(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *WorkHandler) ListCodes(c *fiber.Ctx) error {
	list, err := h.uc.ListCodes(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (h *WorkHandler) GetCode(c *fiber.Ctx) error {
	out, err := h.uc.GetCode(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *WorkHandler) UpdateCode(c *fiber.Ctx) error {
	var in dto.AccountingCodeRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateCode(c.Context(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *WorkHandler) DeleteCode(c *fiber.Ctx) error {
	if err := h.uc.DeleteCode(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListWorkCodes GET /api/works/:id/accounting-codes
func (h *WorkHandler) ListWorkCodes(c *fiber.Ctx) error {
	list, err := h.uc.ListCodesByWork(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// AttachCode POST /api/works/:id/accounting-codes
func (h *WorkHandler) AttachCode(c *fiber.Ctx) error {
	var in dto.AttachCodeRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	if err := h.uc.AttachCode(c.Context(), c.Params("id"), in); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusCreated)
}

// DetachCode DELETE /api/works/:id/accounting-codes/:codeId
func (h *WorkHandler) DetachCode(c *fiber.Ctx) error {
	if err := h.uc.DetachCode(c.Context(), c.Params("id"), c.Params("codeId")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
