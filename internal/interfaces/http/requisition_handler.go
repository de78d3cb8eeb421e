package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/constructora-api/internal/application/dto"
	"github.com/jhoicas/constructora-api/internal/application/reports"
	"github.com/jhoicas/constructora-api/internal/application/requisition"
)

// RequisitionHandler requerimientos de materiales (/api/requisitions).
type RequisitionHandler struct {
	svc     *requisition.Service
	reports *reports.Service
}

func NewRequisitionHandler(svc *requisition.Service, rep *reports.Service) *RequisitionHandler {
	return &RequisitionHandler{svc: svc, reports: rep}
}

func (h *RequisitionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRequisitionRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.svc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *RequisitionHandler) List(c *fiber.Ctx) error {
	var q dto.RequisitionListQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	list, err := h.svc.List(c.Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (h *RequisitionHandler) Get(c *fiber.Ctx) error {
	out, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DeliverLine POST /api/requisitions/:id/lines/:lineId/deliver
// Sin cantidad se entrega lo pedido; sin fecha, hoy.
func (h *RequisitionHandler) DeliverLine(c *fiber.Ctx) error {
	var in dto.DeliverLineRequest
	if len(c.Body()) > 0 {
		if err := bindJSON(c, &in); err != nil {
			return err
		}
	}
	out, err := h.svc.DeliverLine(c.Context(), c.Params("id"), c.Params("lineId"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *RequisitionHandler) CancelLine(c *fiber.Ctx) error {
	out, err := h.svc.CancelLine(c.Context(), c.Params("id"), c.Params("lineId"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *RequisitionHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *RequisitionHandler) PDF(c *fiber.Ctx) error {
	f, err := h.reports.RequisitionPDF(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return sendFile(c, f)
}
