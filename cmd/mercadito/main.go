package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"mercadito/internal/auth"
	"mercadito/internal/config"
	"mercadito/internal/http/handlers"
	applog "mercadito/internal/log"
	"mercadito/internal/repos"
)

func main() {
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)

	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Never leak internals to the client.
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "something went wrong"})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.AllowOrigins}))

	deps := handlers.NewDeps(db, tokens)
	requireAuth := handlers.RequireAuth(tokens)
	requireBuyer := handlers.RequireBuyer()

	loginLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"msg": "too many attempts, retry soon"})
		},
	})

	// ---------- Users ----------
	users := app.Group("/api/users")
	users.Post("/register", deps.AuthHandler.Register)
	users.Post("/login", loginLimiter, deps.AuthHandler.Login)
	users.Get("/verifytoken", requireAuth, deps.AuthHandler.VerifyToken)
	users.Put("/update/:id", requireAuth, deps.AuthHandler.Update)

	// ---------- Products ----------
	// Canonical route names plus the English aliases some clients use.
	products := app.Group("/api/products")
	products.Post("/crear-producto", requireAuth, deps.ProductHandler.Create)
	products.Post("/create", requireAuth, deps.ProductHandler.Create)
	products.Get("/obtener-productos", deps.ProductHandler.List)
	products.Get("/readall", deps.ProductHandler.List)
	products.Get("/ver-producto/:id", deps.ProductHandler.Get)
	products.Put("/actualizar-producto/:id", requireAuth, deps.ProductHandler.Update)
	products.Delete("/eliminar-producto/:id", requireAuth, deps.ProductHandler.Delete)

	// ---------- Carts ----------
	carts := app.Group("/api/carts", requireAuth)
	carts.Get("/get-cart", requireBuyer, deps.CartHandler.Get)
	carts.Post("/add-to-cart", requireBuyer, deps.CartHandler.Add)
	carts.Put("/update-cart", requireBuyer, deps.CartHandler.Update)
	carts.Delete("/remove-from-cart", deps.CartHandler.Remove)

	// ---------- Docs & health ----------
	app.Get("/docs", deps.DocsHandler.Page)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"msg": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
