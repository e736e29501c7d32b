package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"mercadito/internal/auth"
	"mercadito/internal/domain"
	applog "mercadito/internal/log"
)

// Identity is the decoded bearer credential attached to the request context.
type Identity struct {
	ID   string
	Role string
	Name string
}

const identityKey = "identity"

// RequireAuth parses "Authorization: Bearer <token>" and attaches the
// caller's identity. Missing, malformed or expired tokens are all 401.
func RequireAuth(tokens *auth.Tokens) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"msg": "missing or invalid authorization header"})
		}
		claims, err := tokens.Verify(parts[1])
		if err != nil {
			applog.Security(c, "auth.token.invalid", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"msg": "invalid or expired token"})
		}
		c.Locals(identityKey, Identity{ID: claims.Subject, Role: claims.Role, Name: claims.Name})
		c.Locals("user_id", claims.Subject)
		return c.Next()
	}
}

// RequireBuyer layers the buyer-role gate over RequireAuth.
func RequireBuyer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := CallerIdentity(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"msg": "missing or invalid authorization header"})
		}
		if id.Role != domain.RoleBuyer {
			applog.Security(c, "access.denied.buyer", map[string]any{"role": id.Role})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"msg": "access denied: only buyers may use the cart"})
		}
		return c.Next()
	}
}

// CallerIdentity extracts the authenticated identity set by RequireAuth.
func CallerIdentity(c *fiber.Ctx) (Identity, bool) {
	id, ok := c.Locals(identityKey).(Identity)
	return id, ok
}
