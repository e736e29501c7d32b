package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "mercadito/internal/log"
	"mercadito/internal/services"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// POST /api/products/crear-producto
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	caller, ok := CallerIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"msg": "missing or invalid authorization header"})
	}
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.Catalog.Create(in, caller.ID)
	if err != nil {
		return fail(c, "products.create.fail", err)
	}
	applog.Audit(c, "products.create", map[string]any{"product_id": p.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"msg": "product created", "product": p})
}

// GET /api/products/obtener-productos
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.Catalog.List()
	if err != nil {
		return fail(c, "products.list.fail", err)
	}
	return c.JSON(fiber.Map{"msg": "products", "products": products})
}

// GET /api/products/ver-producto/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	p, err := h.Catalog.Get(c.Params("id"))
	if err != nil {
		return fail(c, "products.get.fail", err)
	}
	return c.JSON(fiber.Map{"msg": "product", "product": p})
}

// PUT /api/products/actualizar-producto/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in services.ProductUpdate
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.Catalog.Update(c.Params("id"), in)
	if err != nil {
		return fail(c, "products.update.fail", err)
	}
	applog.Audit(c, "products.update", map[string]any{"product_id": p.ID})
	return c.JSON(fiber.Map{"msg": "product updated", "product": p})
}

// DELETE /api/products/eliminar-producto/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Catalog.Delete(id); err != nil {
		return fail(c, "products.delete.fail", err)
	}
	applog.Audit(c, "products.delete", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"msg": "product deleted"})
}
