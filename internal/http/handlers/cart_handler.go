package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "mercadito/internal/log"
	"mercadito/internal/repos"
	"mercadito/internal/services"
)

type CartHandler struct {
	Cart *services.CartService
}

// GET /api/carts/get-cart
func (h *CartHandler) Get(c *fiber.Ctx) error {
	caller, _ := CallerIdentity(c)
	cart, err := h.Cart.GetOrCreate(caller.ID, caller.Role)
	if err != nil {
		return fail(c, "carts.get.fail", err)
	}
	return c.JSON(fiber.Map{"msg": "cart", "cart": cart})
}

// POST /api/carts/add-to-cart
func (h *CartHandler) Add(c *fiber.Ctx) error {
	caller, _ := CallerIdentity(c)
	var in struct {
		Products []repos.LineInput `json:"products"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	cart, err := h.Cart.AddItems(caller.ID, caller.Role, in.Products)
	if err != nil {
		return fail(c, "carts.add.fail", err)
	}
	applog.Audit(c, "carts.add", map[string]any{"items": len(in.Products)})
	return c.JSON(fiber.Map{"msg": "products added", "cart": cart})
}

// PUT /api/carts/update-cart
func (h *CartHandler) Update(c *fiber.Ctx) error {
	caller, _ := CallerIdentity(c)
	var in struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	cart, err := h.Cart.UpdateItemQuantity(caller.ID, caller.Role, in.ProductID, in.Quantity)
	if err != nil {
		return fail(c, "carts.update.fail", err)
	}
	applog.Audit(c, "carts.update", map[string]any{"product_id": in.ProductID, "qty": in.Quantity})
	return c.JSON(fiber.Map{"msg": "cart updated", "cart": cart})
}

// DELETE /api/carts/remove-from-cart
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	caller, _ := CallerIdentity(c)
	var in struct {
		ProductID string `json:"productId"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	cart, err := h.Cart.RemoveItem(caller.ID, in.ProductID)
	if err != nil {
		return fail(c, "carts.remove.fail", err)
	}
	applog.Audit(c, "carts.remove", map[string]any{"product_id": in.ProductID})
	return c.JSON(fiber.Map{"msg": "product removed", "cart": cart})
}
