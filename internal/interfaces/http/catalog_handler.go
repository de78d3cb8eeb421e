package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/constructora-api/internal/application/dto"
	"github.com/jhoicas/constructora-api/internal/application/usecase"
)

// CatalogHandler categorías, productos y proveedores.
type CatalogHandler struct {
	categories *usecase.CategoryUseCase
	products   *usecase.ProductUseCase
	suppliers  *usecase.SupplierUseCase
}

func NewCatalogHandler(categories *usecase.CategoryUseCase, products *usecase.ProductUseCase, suppliers *usecase.SupplierUseCase) *CatalogHandler {
	return &CatalogHandler{categories: categories, products: products, suppliers: suppliers}
}

// ── Categorías ──

func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.categories.Create(c.Context(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := bindQuery(c, &page); err != nil {
		return err
	}
	list, err := h.categories.List(c.Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	out, err := h.categories.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.categories.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.categories.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Productos ──

// CreateProduct godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductRequest  true  "code, name, unit"
// @Success      201   {object}  dto.ProductResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.products.Create(c.Context(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListProducts GET /api/products?category_id=&q=&limit=&offset=
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	var q dto.ProductListQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	list, err := h.products.List(c.Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	out, err := h.products.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.products.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.products.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Proveedores ──

func (h *CatalogHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.SupplierRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.suppliers.Create(c.Context(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSuppliers GET /api/suppliers?q=razón social o RUC
func (h *CatalogHandler) ListSuppliers(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := bindQuery(c, &page); err != nil {
		return err
	}
	list, err := h.suppliers.List(c.Context(), c.Query("q"), page)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (h *CatalogHandler) GetSupplier(c *fiber.Ctx) error {
	out, err := h.suppliers.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *CatalogHandler) UpdateSupplier(c *fiber.Ctx) error {
	var in dto.SupplierRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.suppliers.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *CatalogHandler) DeleteSupplier(c *fiber.Ctx) error {
	if err := h.suppliers.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
