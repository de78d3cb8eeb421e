package http

import (
	"encoding/json"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/constructora-api/internal/application/dto"
	"github.com/jhoicas/constructora-api/internal/application/purchasing"
	"github.com/jhoicas/constructora-api/internal/application/reports"
)

// OrderHandler órdenes de compra/servicio y sus adjuntos (/api/orders).
type OrderHandler struct {
	svc     *purchasing.Service
	reports *reports.Service
}

func NewOrderHandler(svc *purchasing.Service, rep *reports.Service) *OrderHandler {
	return &OrderHandler{svc: svc, reports: rep}
}

// Create godoc
// @Summary      Crear orden
// @Description  multipart/form-data con "data" (JSON de la orden), "files[]" y "kinds[]"; o JSON plano sin adjuntos.
// @Tags         orders
// @Accept       mpfd,json
// @Produce      json
// @Success      201  {object}  dto.OrderResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if !isMultipart(c) {
		if err := bindJSON(c, &in); err != nil {
			return err
		}
		out, err := h.svc.Create(c.Context(), GetUserID(c), in, nil)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}

	if err := json.Unmarshal([]byte(c.FormValue("data")), &in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "campo data: JSON inválido")
	}
	files, closeAll, err := uploadedFiles(c)
	if err != nil {
		return err
	}
	defer closeAll()
	out, err := h.svc.Create(c.Context(), GetUserID(c), in, files)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/orders?type=&status=&supplier_id=&work_id=&start=&end=
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var q dto.OrderListQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	list, err := h.svc.List(c.Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	out, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update PUT /api/orders/:id (solo PENDIENTE)
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.svc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ChangeStatus PATCH /api/orders/:id/status
func (h *OrderHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.OrderStatusRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.svc.ChangeStatus(c.Context(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddFiles POST /api/orders/:id/files (multipart: files[] + kinds[])
func (h *OrderHandler) AddFiles(c *fiber.Ctx) error {
	if !isMultipart(c) {
		return fiber.NewError(fiber.StatusBadRequest, "se espera multipart/form-data")
	}
	files, closeAll, err := uploadedFiles(c)
	if err != nil {
		return err
	}
	defer closeAll()
	out, err := h.svc.AddFiles(c.Context(), c.Params("id"), files)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DownloadFile GET /api/orders/:id/files/:fileId
func (h *OrderHandler) DownloadFile(c *fiber.Ctx) error {
	f, err := h.svc.DownloadFile(c.Context(), c.Params("id"), c.Params("fileId"))
	if err != nil {
		return err
	}
	return streamFile(c, f)
}

func (h *OrderHandler) DeleteFile(c *fiber.Ctx) error {
	if err := h.svc.DeleteFile(c.Context(), c.Params("id"), c.Params("fileId")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PDF GET /api/orders/:id/pdf
func (h *OrderHandler) PDF(c *fiber.Ctx) error {
	f, err := h.reports.OrderPDF(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return sendFile(c, f)
}

// Quotation GET /api/orders/:id/quotation
func (h *OrderHandler) Quotation(c *fiber.Ctx) error {
	f, err := h.reports.QuotationPDF(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return sendFile(c, f)
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm)
}

// uploadedFiles abre los archivos de "files[]" y los empareja por posición con "kinds[]".
// Sin tipo explícito el adjunto queda como OTRO.
func uploadedFiles(c *fiber.Ctx) ([]dto.UploadedFile, func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, func() {}, fiber.NewError(fiber.StatusBadRequest, "formulario multipart inválido")
	}
	headers := append(append([]*multipart.FileHeader(nil), form.File["files[]"]...), form.File["files"]...)
	kinds := append(append([]string(nil), form.Value["kinds[]"]...), form.Value["kinds"]...)

	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}
	out := make([]dto.UploadedFile, 0, len(headers))
	for i, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		opened = append(opened, f)
		kind := "OTRO"
		if i < len(kinds) && strings.TrimSpace(kinds[i]) != "" {
			kind = strings.ToUpper(strings.TrimSpace(kinds[i]))
		}
		out = append(out, dto.UploadedFile{
			Kind:        kind,
			Name:        fh.Filename,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Size:        fh.Size,
			Content:     f,
		})
	}
	return out, closeAll, nil
}
