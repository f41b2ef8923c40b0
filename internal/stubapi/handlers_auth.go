package stubapi

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront/internal/auth"
	"github.com/spec-kit/storefront/internal/domain"
	apperrors "github.com/spec-kit/storefront/pkg/util"
)

// AuthHandler exposes registration, login and profile endpoints.
type AuthHandler struct {
	store  *Store
	tokens *auth.TokenManager
}

// NewAuthHandler constructs handler.
func NewAuthHandler(store *Store, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{store: store, tokens: tokens}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req domain.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "username and password required")
	}

	if _, err := h.store.Register(req.Username, req.Password); err != nil {
		return err
	}
	return c.SendStatus(http.StatusCreated)
}

// Login handles POST /api/auth/login. The guest cart named in the request
// is merged into the account's persistent cart; the response carries the
// merged cart id alongside the token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req domain.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "username and password required")
	}

	account, err := h.store.Authenticate(req.Username, req.Password)
	if err != nil {
		return err
	}

	cartID := h.store.MergeGuestCart(req.CartID, account)

	token, _, err := h.tokens.GenerateToken(strconv.FormatInt(account.ID, 10), account.Username, account.Role)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	return c.JSON(domain.LoginResponse{Token: token, CartID: cartID})
}

// Profile handles GET /api/profile.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	account, err := accountFromContext(c, h.store)
	if err != nil {
		return err
	}
	return c.JSON(domain.Profile{
		ID:          account.ID,
		Username:    account.Username,
		DisplayName: account.DisplayName,
		Role:        account.Role,
	})
}

// accountFromContext resolves the authenticated principal to its account.
func accountFromContext(c *fiber.Ctx, store *Store) (*Account, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	id, err := strconv.ParseInt(principal.AccountID, 10, 64)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid token subject")
	}
	account, exists := store.AccountByID(id)
	if !exists {
		return nil, apperrors.NewUnauthorized("account not found")
	}
	return account, nil
}
