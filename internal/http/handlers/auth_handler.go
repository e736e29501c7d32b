package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "mercadito/internal/log"
	"mercadito/internal/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

// POST /api/users/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in services.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	u, err := h.Auth.Register(in)
	if err != nil {
		return fail(c, "users.register.fail", err)
	}
	applog.Audit(c, "users.register", map[string]any{"user_id": u.ID, "role": u.Role})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"msg": "user registered", "user": u})
}

// POST /api/users/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	token, err := h.Auth.Login(in.Email, in.Password)
	if err != nil {
		return fail(c, "users.login.fail", err)
	}
	applog.Audit(c, "users.login", map[string]any{"email": in.Email})
	return c.JSON(fiber.Map{"token": token})
}

// GET /api/users/verifytoken
func (h *AuthHandler) VerifyToken(c *fiber.Ctx) error {
	id, ok := CallerIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"msg": "invalid or expired token"})
	}
	return c.JSON(fiber.Map{"userId": id.ID, "role": id.Role, "name": id.Name})
}

// PUT /api/users/update/:id — the bearer subject may only update itself.
func (h *AuthHandler) Update(c *fiber.Ctx) error {
	caller, _ := CallerIdentity(c)
	targetID := c.Params("id")
	if caller.ID != targetID {
		applog.Security(c, "users.update.denied", map[string]any{"target": targetID})
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"msg": "access denied"})
	}
	var in services.UpdateUserInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	u, err := h.Auth.UpdateUser(targetID, in)
	if err != nil {
		return fail(c, "users.update.fail", err)
	}
	applog.Audit(c, "users.update", map[string]any{"user_id": u.ID})
	return c.JSON(fiber.Map{"msg": "user updated", "user": u})
}
