package handlers

import (
	"encoding/json"
	"strconv"
	"strings"

	applog "electra/internal/log"
	"electra/internal/media"
	"electra/internal/services"
	"electra/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Orders *services.OrderService
	Media  *media.Store
}

// GET /api/orders
func (h *OrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.Orders.List()
	if err != nil {
		return serviceError(c, "orders.list", err, "Orders not available")
	}
	return c.JSON(orders)
}

// GET /api/orders/mine
func (h *OrderHandler) ListMine(c *fiber.Ctx) error {
	claims := claimsFrom(c)
	orders, err := h.Orders.ListForActor(claims.StaffID, claims.Role)
	if err != nil {
		return serviceError(c, "orders.mine", err, "Orders not available")
	}
	return c.JSON(orders)
}

// GET /api/orders/status/:status
func (h *OrderHandler) ListByStatus(c *fiber.Ctx) error {
	status, ok := validate.OrderStatus(c.Params("status"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "Unknown order status")
	}
	orders, err := h.Orders.ListByStatus(status)
	if err != nil {
		return serviceError(c, "orders.list_status", err, "Orders not available")
	}
	return c.JSON(orders)
}

// GET /api/orders/:id
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Order not found")
	}
	o, err := h.Orders.Get(id)
	if err != nil {
		return serviceError(c, "orders.get", err, "Order not found")
	}
	return c.JSON(o)
}

// POST /api/orders — JSON body, or multipart with an "image" field.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in services.OrderInput
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), "multipart/form-data") {
		parsed, err := h.parseMultipart(c)
		if err != nil {
			applog.Security(c, "orders.create.badform", map[string]any{"error": err.Error()})
			return jsonError(c, fiber.StatusBadRequest, "Malformed order form")
		}
		in = parsed
	} else if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Malformed order payload")
	}
	if claims := claimsFrom(c); claims != nil && in.CreatedBy == "" {
		in.CreatedBy = claims.StaffID
	}

	o, clientTotal, err := h.Orders.Create(in)
	if err != nil {
		return serviceError(c, "orders.create", err, "Order not found")
	}
	applog.Audit(c, "orders.create", map[string]any{
		"order_id":     o.ID,
		"server_total": o.Total,
		"client_total": clientTotal,
		"mismatch":     o.Total != clientTotal,
	})
	return c.Status(fiber.StatusCreated).JSON(o)
}

func (h *OrderHandler) parseMultipart(c *fiber.Ctx) (services.OrderInput, error) {
	in := services.OrderInput{
		CustomerName:     c.FormValue("customerName"),
		CustomerEmail:    c.FormValue("customerEmail"),
		CustomerPhone:    c.FormValue("customerPhone"),
		PaymentCondition: c.FormValue("paymentCondition"),
		Notes:            c.FormValue("notes"),
		AssignedTo:       c.FormValue("assignedTo"),
		CreatedBy:        c.FormValue("createdBy"),
	}
	if raw := c.FormValue("items"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.Items); err != nil {
			return in, err
		}
	}
	if raw := c.FormValue("total"); raw != "" {
		t, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return in, err
		}
		in.Total = t
	}
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		ref, err := h.Media.Save(fh)
		if err != nil {
			return in, err
		}
		in.OrderImage = ref
	}
	return in, nil
}

// parseMultipartUpdate maps only the supplied form fields onto the partial
// update, leaving absent fields nil. Line items and total are not updatable.
func (h *OrderHandler) parseMultipartUpdate(c *fiber.Ctx) (services.OrderUpdate, error) {
	var in services.OrderUpdate
	form, err := c.MultipartForm()
	if err != nil {
		return in, err
	}
	fields := map[string]**string{
		"customerName":     &in.CustomerName,
		"customerEmail":    &in.CustomerEmail,
		"customerPhone":    &in.CustomerPhone,
		"status":           &in.Status,
		"paymentCondition": &in.PaymentCondition,
		"notes":            &in.Notes,
		"assignedTo":       &in.AssignedTo,
	}
	for key, dst := range fields {
		if v, ok := formValue(form.Value, key); ok {
			v := v
			*dst = &v
		}
	}
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		ref, err := h.Media.Save(fh)
		if err != nil {
			return in, err
		}
		in.OrderImage = &ref
	}
	return in, nil
}

// formValue reports whether a multipart field was present and its first value.
func formValue(values map[string][]string, key string) (string, bool) {
	vs, ok := values[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// PUT /api/orders/:id — JSON body, or multipart; only supplied fields change.
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Order not found")
	}
	var in services.OrderUpdate
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), "multipart/form-data") {
		parsed, err := h.parseMultipartUpdate(c)
		if err != nil {
			applog.Security(c, "orders.update.badform", map[string]any{"error": err.Error()})
			return jsonError(c, fiber.StatusBadRequest, "Malformed order form")
		}
		in = parsed
	} else if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Malformed order payload")
	}
	o, err := h.Orders.Update(id, in)
	if err != nil {
		return serviceError(c, "orders.update", err, "Order not found")
	}
	applog.Audit(c, "orders.update", map[string]any{"order_id": id, "status": o.Status})
	return c.JSON(o)
}

// POST /api/orders/:id/paid
func (h *OrderHandler) MarkPaid(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Order not found")
	}
	o, err := h.Orders.MarkPaid(id)
	if err != nil {
		return serviceError(c, "orders.paid", err, "Order not found")
	}
	applog.Audit(c, "orders.paid", map[string]any{"order_id": id, "paid_at": o.PaidAt})
	return c.JSON(o)
}

// DELETE /api/orders/:id
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Order not found")
	}
	if err := h.Orders.Delete(id); err != nil {
		return serviceError(c, "orders.delete", err, "Order not found")
	}
	applog.Audit(c, "orders.delete", map[string]any{"order_id": id})
	return c.JSON(fiber.Map{"message": "Order deleted successfully"})
}
