package stubapi

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler exposes the public catalog endpoints.
type CatalogHandler struct {
	store *Store
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(store *Store) *CatalogHandler {
	return &CatalogHandler{store: store}
}

// Products handles GET /api/products.
func (h *CatalogHandler) Products(c *fiber.Ctx) error {
	return c.JSON(h.store.Products())
}

// Product handles GET /api/products/:id.
func (h *CatalogHandler) Product(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid product id")
	}
	product, err := h.store.Product(id)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// Categories handles GET /api/categories.
func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(h.store.Categories())
}

// Brands handles GET /api/brands.
func (h *CatalogHandler) Brands(c *fiber.Ctx) error {
	return c.JSON(h.store.Brands())
}
