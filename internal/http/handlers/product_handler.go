package handlers

import (
	"strconv"
	"strings"

	applog "electra/internal/log"
	"electra/internal/media"
	"electra/internal/services"
	"electra/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
	Media   *media.Store
}

// GET /api/products?q=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.Catalog.List(strings.TrimSpace(c.Query("q")))
	if err != nil {
		return serviceError(c, "products.list", err, "Products not available")
	}
	return c.JSON(products)
}

// GET /api/products/category/:category
func (h *ProductHandler) ListByCategory(c *fiber.Ctx) error {
	category, ok := validate.Category(c.Params("category"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "Unknown product category")
	}
	products, err := h.Catalog.ListByCategory(category)
	if err != nil {
		return serviceError(c, "products.list_category", err, "Products not available")
	}
	return c.JSON(products)
}

// GET /api/products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Product not found")
	}
	p, err := h.Catalog.Get(id)
	if err != nil {
		return serviceError(c, "products.get", err, "Product not found")
	}
	return c.JSON(p)
}

// POST /api/products — JSON body, or multipart with an "image" field.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in services.ProductInput
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), "multipart/form-data") {
		parsed, err := h.parseMultipart(c)
		if err != nil {
			applog.Security(c, "products.create.badform", map[string]any{"error": err.Error()})
			return jsonError(c, fiber.StatusBadRequest, "Malformed product form")
		}
		in = parsed
	} else if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Malformed product payload")
	}

	p, err := h.Catalog.Create(in)
	if err != nil {
		return serviceError(c, "products.create", err, "Product not found")
	}
	applog.Audit(c, "products.create", map[string]any{"product_id": p.ID, "category": p.Category})
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *ProductHandler) parseMultipart(c *fiber.Ctx) (services.ProductInput, error) {
	in := services.ProductInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
	}
	if raw := c.FormValue("price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return in, err
		}
		in.Price = v
	}
	if raw := c.FormValue("stock"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return in, err
		}
		in.Stock = v
	}
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		ref, err := h.Media.Save(fh)
		if err != nil {
			return in, err
		}
		in.Image = ref
	}
	return in, nil
}

// parseMultipartUpdate maps only the supplied form fields onto the partial
// update, leaving absent fields nil.
func (h *ProductHandler) parseMultipartUpdate(c *fiber.Ctx) (services.ProductUpdate, error) {
	var in services.ProductUpdate
	form, err := c.MultipartForm()
	if err != nil {
		return in, err
	}
	if v, ok := formValue(form.Value, "name"); ok {
		in.Name = &v
	}
	if v, ok := formValue(form.Value, "description"); ok {
		in.Description = &v
	}
	if v, ok := formValue(form.Value, "category"); ok {
		in.Category = &v
	}
	if v, ok := formValue(form.Value, "price"); ok {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return in, err
		}
		in.Price = &price
	}
	if v, ok := formValue(form.Value, "stock"); ok {
		stock, err := strconv.Atoi(v)
		if err != nil {
			return in, err
		}
		in.Stock = &stock
	}
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		ref, err := h.Media.Save(fh)
		if err != nil {
			return in, err
		}
		in.Image = &ref
	}
	return in, nil
}

// PUT /api/products/:id — JSON body, or multipart; only supplied fields change.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Product not found")
	}
	var in services.ProductUpdate
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), "multipart/form-data") {
		parsed, err := h.parseMultipartUpdate(c)
		if err != nil {
			applog.Security(c, "products.update.badform", map[string]any{"error": err.Error()})
			return jsonError(c, fiber.StatusBadRequest, "Malformed product form")
		}
		in = parsed
	} else if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Malformed product payload")
	}
	p, err := h.Catalog.Update(id, in)
	if err != nil {
		return serviceError(c, "products.update", err, "Product not found")
	}
	applog.Audit(c, "products.update", map[string]any{"product_id": id, "stock": p.Stock})
	return c.JSON(p)
}

// DELETE /api/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Product not found")
	}
	if err := h.Catalog.Delete(id); err != nil {
		return serviceError(c, "products.delete", err, "Product not found")
	}
	applog.Audit(c, "products.delete", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}
