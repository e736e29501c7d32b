package handlers

import "github.com/gofiber/fiber/v2"

// DocsHandler serves the HTML API reference at /docs.
type DocsHandler struct{}

type endpoint struct {
	Method, Path, Auth, Desc string
}

var endpoints = []endpoint{
	{"POST", "/api/users/register", "none", "Register a new account (role: buyer or seller)"},
	{"POST", "/api/users/login", "none", "Exchange email/password for a bearer token"},
	{"GET", "/api/users/verifytoken", "bearer", "Decode the caller's token"},
	{"PUT", "/api/users/update/:id", "bearer (self)", "Partial account update"},
	{"POST", "/api/products/crear-producto", "bearer", "Create a product owned by the caller"},
	{"GET", "/api/products/obtener-productos", "none", "List all products"},
	{"GET", "/api/products/ver-producto/:id", "none", "Fetch one product"},
	{"PUT", "/api/products/actualizar-producto/:id", "bearer", "Partial product update"},
	{"DELETE", "/api/products/eliminar-producto/:id", "bearer", "Delete a product"},
	{"GET", "/api/carts/get-cart", "bearer, buyer", "Fetch (or lazily create) the caller's cart"},
	{"POST", "/api/carts/add-to-cart", "bearer, buyer", "Add products; existing lines merge quantities"},
	{"PUT", "/api/carts/update-cart", "bearer, buyer", "Overwrite one line's quantity"},
	{"DELETE", "/api/carts/remove-from-cart", "bearer", "Remove one product from the cart"},
}

func (h *DocsHandler) Page(c *fiber.Ctx) error {
	return c.Render("docs", fiber.Map{"Endpoints": endpoints})
}
