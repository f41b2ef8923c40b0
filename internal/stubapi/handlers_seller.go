package stubapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/storefront/internal/domain"
)

// SellerHandler exposes the seller console endpoints. Routes are gated on
// the seller role by middleware; handlers additionally check ownership.
type SellerHandler struct {
	store *Store
}

// NewSellerHandler constructs handler.
func NewSellerHandler(store *Store) *SellerHandler {
	return &SellerHandler{store: store}
}

// Orders handles GET /api/orders/seller.
func (h *SellerHandler) Orders(c *fiber.Ctx) error {
	account, err := accountFromContext(c, h.store)
	if err != nil {
		return err
	}
	return c.JSON(h.store.SellerOrders(account.ID))
}

// Order handles GET /api/orders/:id/seller.
func (h *SellerHandler) Order(c *fiber.Ctx) error {
	account, err := accountFromContext(c, h.store)
	if err != nil {
		return err
	}
	orderID, err := orderParam(c)
	if err != nil {
		return err
	}

	order, err := h.store.SellerOrder(account.ID, orderID)
	if err != nil {
		return err
	}
	return c.JSON(order)
}

// Ship handles POST /api/orders/:id/ship.
func (h *SellerHandler) Ship(c *fiber.Ctx) error {
	account, err := accountFromContext(c, h.store)
	if err != nil {
		return err
	}
	orderID, err := orderParam(c)
	if err != nil {
		return err
	}

	order, err := h.store.Ship(account.ID, orderID)
	if err != nil {
		return err
	}
	return c.JSON(order)
}

// CreateProduct handles POST /api/seller/products.
func (h *SellerHandler) CreateProduct(c *fiber.Ctx) error {
	account, err := accountFromContext(c, h.store)
	if err != nil {
		return err
	}

	var req domain.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	id, err := h.store.CreateProduct(account.ID, req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(id)
}

// UploadImage handles POST /api/seller/products/:id/images. The file is
// not stored; the stub only records a URL for it.
func (h *SellerHandler) UploadImage(c *fiber.Ctx) error {
	account, err := accountFromContext(c, h.store)
	if err != nil {
		return err
	}
	productID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid product id")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "multipart field 'file' required")
	}

	url := fmt.Sprintf("/uploads/%d/%s-%s", productID, uuid.NewString()[:8], file.Filename)
	if err := h.store.AddProductImage(account.ID, productID, url); err != nil {
		return err
	}
	return c.SendString(url)
}
