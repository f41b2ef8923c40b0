package stubapi

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront/internal/domain"
)

// OrdersHandler exposes the customer-side order endpoints.
type OrdersHandler struct {
	store *Store
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(store *Store) *OrdersHandler {
	return &OrdersHandler{store: store}
}

// Checkout handles POST /api/orders/checkout.
func (h *OrdersHandler) Checkout(c *fiber.Ctx) error {
	account, err := accountFromContext(c, h.store)
	if err != nil {
		return err
	}

	cartID := c.Query("cartId")
	if cartID == "" {
		return fiber.NewError(http.StatusBadRequest, "cartId required")
	}

	order, err := h.store.Checkout(account.ID, cartID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(domain.CheckoutResponse{ID: order.ID})
}

// My handles GET /api/orders/my.
func (h *OrdersHandler) My(c *fiber.Ctx) error {
	account, err := accountFromContext(c, h.store)
	if err != nil {
		return err
	}
	return c.JSON(h.store.OrdersFor(account.ID))
}

// ByID handles GET /api/orders/:id.
func (h *OrdersHandler) ByID(c *fiber.Ctx) error {
	account, err := accountFromContext(c, h.store)
	if err != nil {
		return err
	}
	orderID, err := orderParam(c)
	if err != nil {
		return err
	}

	order, err := h.store.OrderFor(account.ID, orderID)
	if err != nil {
		return err
	}
	return c.JSON(order)
}

// Pay handles POST /api/pay/:id (mock payment).
func (h *OrdersHandler) Pay(c *fiber.Ctx) error {
	account, err := accountFromContext(c, h.store)
	if err != nil {
		return err
	}
	orderID, err := orderParam(c)
	if err != nil {
		return err
	}

	order, err := h.store.Pay(account.ID, orderID)
	if err != nil {
		return err
	}
	return c.JSON(order)
}

func orderParam(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(http.StatusBadRequest, "invalid order id")
	}
	return id, nil
}
