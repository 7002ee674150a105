package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
)

type orderJSON struct {
	ID             string  `json:"id"`
	Status         string  `json:"status"`
	Total          float64 `json:"total"`
	IsPaid         bool    `json:"isPaid"`
	PaidAt         string  `json:"paidAt"`
	DispatchDate   string  `json:"dispatchDate"`
	AssignedTo     string  `json:"assignedTo"`
	OrderImage     string  `json:"orderImage"`
	PaymentPending bool    `json:"paymentPending"`
}

func createProduct(t *testing.T, app *fiber.App, token string, name string, stock int) string {
	t.Helper()
	resp := doJSON(t, app, "POST", "/api/products", token, map[string]any{
		"name": name, "description": "test product", "price": 25.0, "category": "lights", "stock": stock,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create product: expected 201, got %d", resp.StatusCode)
	}
	var p struct {
		ID string `json:"id"`
	}
	decode(t, resp, &p)
	return p.ID
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	app, _, _ := newAPIApp(t)
	tok := login(t, app, "admin@electra.test", "Passw0rd!")

	productID := createProduct(t, app, tok, "Tube Light 18W", 5)

	// Create: quantity 3 of stock 5
	resp := doJSON(t, app, "POST", "/api/orders", tok, map[string]any{
		"customerName":     "Mehta Electricals",
		"customerEmail":    "orders@mehta.test",
		"customerPhone":    "022-4455667",
		"paymentCondition": "immediate",
		"total":            75.0,
		"items": []map[string]any{
			{"productId": productID, "productName": "Tube Light 18W", "quantity": 3, "price": 25.0},
		},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create order: expected 201, got %d", resp.StatusCode)
	}
	var o orderJSON
	decode(t, resp, &o)
	if o.Status != "pending" || o.IsPaid || o.PaymentPending || o.Total != 75.0 {
		t.Fatalf("unexpected created order: %+v", o)
	}

	// Stock decremented to 2
	var p struct {
		Stock int `json:"stock"`
	}
	decode(t, doJSON(t, app, "GET", "/api/products/"+productID, tok, nil), &p)
	if p.Stock != 2 {
		t.Fatalf("expected stock 2 after order, got %d", p.Stock)
	}

	// Dispatch stamps the date and, with immediate terms, flags payment pending
	resp = doJSON(t, app, "PUT", "/api/orders/"+o.ID, tok, map[string]string{"status": "dispatched"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("dispatch: expected 200, got %d", resp.StatusCode)
	}
	decode(t, resp, &o)
	if o.DispatchDate == "" || !o.PaymentPending {
		t.Fatalf("dispatched order should stamp date and warn: %+v", o)
	}

	// Status listing sees it
	var dispatched []orderJSON
	decode(t, doJSON(t, app, "GET", "/api/orders/status/dispatched", tok, nil), &dispatched)
	if len(dispatched) != 1 || dispatched[0].ID != o.ID {
		t.Fatalf("status listing mismatch: %+v", dispatched)
	}

	// Mark paid stamps paidAt and clears the warning
	resp = doJSON(t, app, "POST", "/api/orders/"+o.ID+"/paid", tok, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("mark paid: expected 200, got %d", resp.StatusCode)
	}
	decode(t, resp, &o)
	if !o.IsPaid || o.PaidAt == "" || o.PaymentPending {
		t.Fatalf("paid order state wrong: %+v", o)
	}

	// Delete, then the order is gone
	if resp := doJSON(t, app, "DELETE", "/api/orders/"+o.ID, tok, nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("delete order: expected 200, got %d", resp.StatusCode)
	}
	if resp := doJSON(t, app, "GET", "/api/orders/"+o.ID, tok, nil); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("deleted order fetch: expected 404, got %d", resp.StatusCode)
	}
}

func TestOrderValidationSurfacesFieldDetails(t *testing.T) {
	app, _, _ := newAPIApp(t)
	tok := login(t, app, "admin@electra.test", "Passw0rd!")

	resp := doJSON(t, app, "POST", "/api/orders", tok, map[string]any{
		"customerName": "Mehta Electricals",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	var body struct {
		Message string   `json:"message"`
		Details []string `json:"details"`
	}
	decode(t, resp, &body)
	if body.Message != "Validation error" || len(body.Details) == 0 {
		t.Fatalf("expected field-level details, got %+v", body)
	}
}

func TestUnknownStatusSegmentIs400(t *testing.T) {
	app, _, _ := newAPIApp(t)
	tok := login(t, app, "admin@electra.test", "Passw0rd!")

	resp := doJSON(t, app, "GET", "/api/orders/status/shipped", tok, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", resp.StatusCode)
	}
}

func TestMyOrdersScoping(t *testing.T) {
	app, _, _ := newAPIApp(t)
	adminTok := login(t, app, "admin@electra.test", "Passw0rd!")

	productID := createProduct(t, app, adminTok, "Switch Plate", 50)
	item := []map[string]any{{"productId": productID, "productName": "Switch Plate", "quantity": 1, "price": 25.0}}

	mkOrder := func(assignedTo string) string {
		body := map[string]any{
			"customerName":  "Mehta Electricals",
			"customerEmail": "orders@mehta.test",
			"customerPhone": "022-4455667",
			"items":         item,
			"total":         25.0,
		}
		if assignedTo != "" {
			body["assignedTo"] = assignedTo
		}
		resp := doJSON(t, app, "POST", "/api/orders", adminTok, body)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create order: expected 201, got %d", resp.StatusCode)
		}
		var o orderJSON
		decode(t, resp, &o)
		return o.ID
	}

	priyaOrder := mkOrder("st-priya")
	openOrder := mkOrder("")

	// Ravi's queue excludes Priya's assignment but includes the open order
	raviTok := login(t, app, "ravi@electra.test", "Passw0rd!")
	var mine []orderJSON
	decode(t, doJSON(t, app, "GET", "/api/orders/mine", raviTok, nil), &mine)
	ids := map[string]bool{}
	for _, o := range mine {
		ids[o.ID] = true
	}
	if ids[priyaOrder] {
		t.Fatal("ravi's queue must not contain priya's assigned order")
	}
	if !ids[openOrder] {
		t.Fatal("ravi's queue must contain the unassigned order")
	}

	// Admin sees both in the same endpoint
	mine = nil
	decode(t, doJSON(t, app, "GET", "/api/orders/mine", adminTok, nil), &mine)
	if len(mine) != 2 {
		t.Fatalf("admin queue: expected 2 orders, got %d", len(mine))
	}
}

func TestMultipartOrderCreateStoresAndDeletesImage(t *testing.T) {
	app, store, _ := newAPIApp(t)
	tok := login(t, app, "admin@electra.test", "Passw0rd!")

	productID := createProduct(t, app, tok, "Junction Box", 10)

	items, _ := json.Marshal([]map[string]any{
		{"productId": productID, "productName": "Junction Box", "quantity": 2, "price": 25.0},
	})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("customerName", "Mehta Electricals")
	_ = w.WriteField("customerEmail", "orders@mehta.test")
	_ = w.WriteField("customerPhone", "022-4455667")
	_ = w.WriteField("paymentCondition", "days15")
	_ = w.WriteField("total", "50")
	_ = w.WriteField("items", string(items))
	fw, err := w.CreateFormFile("image", "challan.png")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte("\x89PNG fake image bytes")); err != nil {
		t.Fatal(err)
	}
	_ = w.Close()

	req := httptest.NewRequest("POST", "/api/orders", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("multipart create: expected 201, got %d", resp.StatusCode)
	}
	var o orderJSON
	decode(t, resp, &o)
	if o.OrderImage == "" {
		t.Fatalf("expected stored image reference, got %+v", o)
	}
	if _, err := os.Stat(store.Path(o.OrderImage)); err != nil {
		t.Fatalf("image file missing on disk: %v", err)
	}

	// Deleting the order attempts image cleanup too
	if resp := doJSON(t, app, "DELETE", "/api/orders/"+o.ID, tok, nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("delete order: expected 200, got %d", resp.StatusCode)
	}
	if _, err := os.Stat(store.Path(o.OrderImage)); !os.IsNotExist(err) {
		t.Fatalf("image file should be removed, stat err=%v", err)
	}
}
