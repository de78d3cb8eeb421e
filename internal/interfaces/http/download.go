package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/constructora-api/internal/application/dto"
)

// sendFile responde un documento generado como adjunto.
func sendFile(c *fiber.Ctx, f *dto.FileResponse) error {
	// Attachment fija el Content-Type por extensión; se reemplaza después
	c.Attachment(f.Filename)
	c.Set(fiber.HeaderContentType, f.ContentType)
	return c.Send(f.Content)
}

// streamFile envía un adjunto guardado en disco; fasthttp cierra Body al terminar.
func streamFile(c *fiber.Ctx, f *dto.FileDownload) error {
	c.Attachment(f.Filename)
	c.Set(fiber.HeaderContentType, f.ContentType)
	return c.SendStream(f.Body, int(f.Size))
}
