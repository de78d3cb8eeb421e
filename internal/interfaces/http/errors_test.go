package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/constructora-api/internal/application/dto"
	"github.com/jhoicas/constructora-api/internal/domain"
)

func TestErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.NewValidationError("ruc", "debe tener 11 dígitos"), 422, "VALIDATION"},
		{fmt.Errorf("orden: %w", domain.ErrNotFound), 404, "NOT_FOUND"},
		{domain.ErrDuplicate, 409, "DUPLICATE"},
		{domain.ErrEmailAlreadyExists, 409, "DUPLICATE"},
		{domain.ErrConflict, 409, "CONFLICT"},
		{fmt.Errorf("%w: la orden está ANULADA", domain.ErrInvalidState), 409, "INVALID_STATE"},
		{domain.ErrUnauthorized, 401, "UNAUTHORIZED"},
		{domain.ErrForbidden, 403, "FORBIDDEN"},
		{errBadBody, 400, "INVALID_BODY"},
		{errors.New("pq: connection refused at 10.0.0.3"), 500, "INTERNAL"},
	}
	for _, tc := range cases {
		app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
		err := tc.err
		app.Get("/", func(*fiber.Ctx) error { return err })

		resp, rerr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
		require.NoError(t, rerr)
		var body dto.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()

		assert.Equal(t, tc.status, resp.StatusCode, tc.err.Error())
		assert.Equal(t, tc.code, body.Code, tc.err.Error())
	}
}

func TestErrorHandler_ValidationFieldsAndSanitized500(t *testing.T) {
	status, body := errorResponse(domain.NewValidationError("lines[0].quantity", "debe ser mayor que 0"))
	assert.Equal(t, 422, status)
	assert.Equal(t, "debe ser mayor que 0", body.Fields["lines[0].quantity"])

	status, body = errorResponse(errors.New("password=secret en la cadena de conexión"))
	assert.Equal(t, 500, status)
	assert.Equal(t, "error interno del servidor", body.Message)
}

func TestSendFile_Headers(t *testing.T) {
	app := fiber.New()
	app.Get("/f", func(c *fiber.Ctx) error {
		return sendFile(c, &dto.FileResponse{
			Filename:    "asistencia_2025-03-01_2025-03-31.xlsx",
			ContentType: "application/xlsx",
			Content:     []byte("PK"),
		})
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/f", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "application/xlsx", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="asistencia_2025-03-01_2025-03-31.xlsx"`, resp.Header.Get("Content-Disposition"))
	b, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "PK", string(b))
}

func TestUploadedFiles_PairsKinds(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("data", `{"type":"COMPRA"}`))
	require.NoError(t, w.WriteField("kinds[]", "factura"))
	for _, name := range []string{"f001.pdf", "guia.pdf"} {
		fw, err := w.CreateFormFile("files[]", name)
		require.NoError(t, err)
		fw.Write([]byte("contenido " + name))
	}
	require.NoError(t, w.Close())

	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		require.True(t, isMultipart(c))
		files, closeAll, err := uploadedFiles(c)
		if err != nil {
			return err
		}
		defer closeAll()
		out := make([]string, 0, len(files))
		for _, f := range files {
			b, _ := io.ReadAll(f.Content)
			out = append(out, f.Kind+":"+f.Name+":"+string(b))
		}
		return c.JSON(out)
	})

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var got []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, []string{
		"FACTURA:f001.pdf:contenido f001.pdf",
		"OTRO:guia.pdf:contenido guia.pdf",
	}, got)
}

func TestUploadedFiles_LeavesFormSlicesIntact(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range []struct{ field, name string }{
		{"files[]", "a.pdf"}, {"files[]", "b.pdf"}, {"files[]", "c.pdf"}, {"files", "d.pdf"},
	} {
		fw, err := w.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		fw.Write([]byte(f.name))
	}
	require.NoError(t, w.Close())

	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		require.NoError(t, err)
		primary := form.File["files[]"]
		backing := primary[:cap(primary)]
		before := make([]*multipart.FileHeader, len(backing))
		copy(before, backing)

		files, closeAll, err := uploadedFiles(c)
		if err != nil {
			return err
		}
		defer closeAll()

		assert.Equal(t, before, backing, "no escribe sobre el arreglo del formulario")
		assert.Len(t, form.File["files[]"], 3)
		names := make([]string, 0, len(files))
		for _, f := range files {
			names = append(names, f.Name)
		}
		return c.JSON(names)
	})

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var got []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, []string{"a.pdf", "b.pdf", "c.pdf", "d.pdf"}, got)
}
