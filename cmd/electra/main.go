package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"electra/internal/config"
	"electra/internal/http/handlers"
	applog "electra/internal/log"
	"electra/internal/media"
	"electra/internal/repos"
	"electra/internal/services"
)

func main() {
	cfg := config.Load()

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

	store, err := media.NewStore(cfg.MediaDir)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	staffRepo := repos.NewStaffRepo(db)
	authSvc := services.NewAuthService(staffRepo, cfg.JWTSecret, cfg.TokenTTL)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and answer with a generic message; never leak internals
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Something went wrong. Please try again.",
			})
		},
	})
	// Body size guard; order images pass through this limit
	app.Server().MaxRequestBodySize = 5 << 20 // 5 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/media/")
		},
	}))

	// ---------- Media ----------
	mediaDir := cfg.MediaDir
	if !filepath.IsAbs(mediaDir) {
		if abs, err := filepath.Abs(mediaDir); err == nil {
			mediaDir = abs
		}
	}
	log.Printf("[static] /media -> %s", mediaDir)

	// Guarded media to avoid traversal
	app.Get("/media/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		full := filepath.Join(mediaDir, clean)
		return c.SendFile(full, true)
	})

	// ---------- API ----------
	deps := handlers.NewDeps(db, store, authSvc)
	api := app.Group("/api")

	// Public: login, throttled
	api.Post("/staff/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Too many attempts. Please try again later.",
			})
		},
	}), deps.StaffHandler.Login)

	// Everything below requires a bearer token
	api.Use(handlers.RequireAuth(authSvc))

	orders := api.Group("/orders")
	orders.Get("/", deps.OrderHandler.List)
	orders.Get("/mine", deps.OrderHandler.ListMine)
	orders.Get("/status/:status", deps.OrderHandler.ListByStatus)
	orders.Get("/:id", deps.OrderHandler.Get)
	orders.Post("/", deps.OrderHandler.Create)
	orders.Post("/:id/paid", deps.OrderHandler.MarkPaid)
	orders.Put("/:id", deps.OrderHandler.Update)
	orders.Delete("/:id", deps.OrderHandler.Delete)

	products := api.Group("/products")
	products.Get("/", deps.ProductHandler.List)
	products.Get("/category/:category", deps.ProductHandler.ListByCategory)
	products.Get("/:id", deps.ProductHandler.Get)
	products.Post("/", deps.ProductHandler.Create)
	products.Put("/:id", deps.ProductHandler.Update)
	products.Delete("/:id", deps.ProductHandler.Delete)

	staff := api.Group("/staff")
	staff.Get("/", deps.StaffHandler.List)
	staff.Get("/:id", deps.StaffHandler.Get)
	staff.Post("/", handlers.RequireAdmin(), deps.StaffHandler.Create)
	staff.Put("/:id", handlers.RequireAdmin(), deps.StaffHandler.Update)
	staff.Delete("/:id", handlers.RequireAdmin(), deps.StaffHandler.Delete)

	analytics := api.Group("/analytics")
	analytics.Get("/summary", deps.AnalyticsHandler.Summary)
	analytics.Get("/sales-by-category", deps.AnalyticsHandler.SalesByCategory)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
