package stubapi

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// CartHandler exposes cart endpoints. Carts are addressed purely by cart
// id so guests and authenticated users share the same surface.
type CartHandler struct {
	store *Store
}

// NewCartHandler constructs handler.
func NewCartHandler(store *Store) *CartHandler {
	return &CartHandler{store: store}
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(c *fiber.Ctx) error {
	cartID := c.Query("cartId")
	if cartID == "" {
		return fiber.NewError(http.StatusBadRequest, "cartId required")
	}
	return c.JSON(h.store.CartItems(cartID))
}

// Add handles POST /api/cart/add.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	cartID, variantID, err := cartParams(c)
	if err != nil {
		return err
	}
	qty := c.QueryInt("qty", 1)

	items, err := h.store.AddToCart(cartID, variantID, qty)
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// UpdateQuantity handles PUT /api/cart/quantity.
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	cartID, variantID, err := cartParams(c)
	if err != nil {
		return err
	}
	qty := c.QueryInt("qty", -1)
	if qty < 0 {
		return fiber.NewError(http.StatusBadRequest, "qty required")
	}

	items, err := h.store.UpdateQuantity(cartID, variantID, qty)
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// Remove handles DELETE /api/cart/remove.
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	cartID, variantID, err := cartParams(c)
	if err != nil {
		return err
	}

	items, err := h.store.RemoveItem(cartID, variantID)
	if err != nil {
		return err
	}
	return c.JSON(items)
}

func cartParams(c *fiber.Ctx) (string, int64, error) {
	cartID := c.Query("cartId")
	if cartID == "" {
		return "", 0, fiber.NewError(http.StatusBadRequest, "cartId required")
	}
	variantID, err := strconv.ParseInt(c.Query("variantId"), 10, 64)
	if err != nil {
		return "", 0, fiber.NewError(http.StatusBadRequest, "invalid variantId")
	}
	return cartID, variantID, nil
}
