package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"

	"electra/internal/http/handlers"
	"electra/internal/media"
	"electra/internal/repos"
	"electra/internal/services"
)

// newAPIApp wires the full API surface the way cmd/electra does, against an
// in-memory database with the seeded staff accounts.
func newAPIApp(t *testing.T) (*fiber.App, *media.Store, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store, err := media.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("media store: %v", err)
	}

	staffRepo := repos.NewStaffRepo(db)
	authSvc := services.NewAuthService(staffRepo, "test-secret", time.Hour)
	deps := handlers.NewDeps(db, store, authSvc)

	app := fiber.New()
	app.Use(requestid.New())

	api := app.Group("/api")
	api.Post("/staff/login", deps.StaffHandler.Login)
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

	return app, store, db
}

// doJSON performs a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// login authenticates one of the seeded accounts and returns its token.
func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	resp := doJSON(t, app, "POST", "/api/staff/login", "", map[string]string{
		"email": email, "password": password,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d", email, resp.StatusCode)
	}
	var body struct {
		Token string `json:"token"`
	}
	decode(t, resp, &body)
	if body.Token == "" {
		t.Fatal("login returned empty token")
	}
	return body.Token
}
