package handlers

import (
	"errors"

	applog "electra/internal/log"
	"electra/internal/services"
	"electra/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type StaffHandler struct {
	Auth  *services.AuthService
	Staff *services.StaffService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/staff/login (public)
func (h *StaffHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Malformed login payload")
	}
	email, ok := validate.Email(req.Email)
	if !ok || req.Password == "" {
		applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email, "reason": "bad_format"})
		return jsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, staff, err := h.Auth.Login(email, req.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return jsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	applog.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.JSON(fiber.Map{"token": token, "staff": staff})
}

// GET /api/staff
func (h *StaffHandler) List(c *fiber.Ctx) error {
	members, err := h.Staff.List()
	if err != nil {
		return serviceError(c, "staff.list", err, "Staff not available")
	}
	return c.JSON(members)
}

// GET /api/staff/:id
func (h *StaffHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Staff member not found")
	}
	st, err := h.Staff.Get(id)
	if err != nil {
		return serviceError(c, "staff.get", err, "Staff member not found")
	}
	return c.JSON(st)
}

// POST /api/staff (admin only)
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	var in services.StaffInput
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Malformed staff payload")
	}
	st, err := h.Staff.Create(in)
	if errors.Is(err, services.ErrEmailTaken) {
		return jsonError(c, fiber.StatusBadRequest, "Email already exists")
	}
	if err != nil {
		return serviceError(c, "staff.create", err, "Staff member not found")
	}
	applog.Audit(c, "staff.create", map[string]any{"staff_id": st.ID, "role": st.Role})
	return c.Status(fiber.StatusCreated).JSON(st)
}

// PUT /api/staff/:id (admin only)
func (h *StaffHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Staff member not found")
	}
	var in services.StaffUpdate
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Malformed staff payload")
	}
	st, err := h.Staff.Update(id, in)
	if errors.Is(err, services.ErrEmailTaken) {
		return jsonError(c, fiber.StatusBadRequest, "Email already exists")
	}
	if err != nil {
		return serviceError(c, "staff.update", err, "Staff member not found")
	}
	applog.Audit(c, "staff.update", map[string]any{"staff_id": id})
	return c.JSON(st)
}

// DELETE /api/staff/:id (admin only; self-deletion rejected)
func (h *StaffHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Staff member not found")
	}
	actorID := ""
	if claims := claimsFrom(c); claims != nil {
		actorID = claims.StaffID
	}
	err := h.Staff.Delete(id, actorID)
	if errors.Is(err, services.ErrSelfDelete) {
		applog.Security(c, "staff.delete.self", map[string]any{"staff_id": id})
		return jsonError(c, fiber.StatusForbidden, "You cannot delete your own account")
	}
	if err != nil {
		return serviceError(c, "staff.delete", err, "Staff member not found")
	}
	applog.Audit(c, "staff.delete", map[string]any{"staff_id": id})
	return c.JSON(fiber.Map{"message": "Staff member deleted successfully"})
}
