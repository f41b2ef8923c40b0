package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/session"
	apperrors "github.com/spec-kit/storefront/pkg/util"
)

// Client exposes one typed method per remote operation. Every request
// that needs a cart id reads the effective cart id at issue time, so an
// action taken as a guest and one taken after login route to the right
// carts without any caching.
type Client struct {
	wrapper *Wrapper
	store   *session.Store
	logger  *zap.Logger
}

// NewClient builds a client bound to the given identity store.
func NewClient(baseURL string, store *session.Store, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		wrapper: NewWrapper(baseURL, store),
		store:   store,
		logger:  logger,
	}
}

// Login authenticates, sending the current effective (guest) cart id for
// the server-side merge, and stores the returned session.
func (c *Client) Login(ctx context.Context, username, password string) (*domain.LoginResponse, error) {
	req := domain.LoginRequest{
		Username: username,
		Password: password,
		CartID:   c.store.EffectiveCartID(),
	}

	var resp domain.LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}

	c.store.SetSession(resp.Token, resp.CartID)
	c.logger.Debug("logged in", zap.String("username", username))
	return &resp, nil
}

// Register creates a new account. It does not log in.
func (c *Client) Register(ctx context.Context, username, password string) error {
	req := domain.RegisterRequest{Username: username, Password: password}
	return c.doJSON(ctx, http.MethodPost, "/api/auth/register", req, nil)
}

// Logout clears the stored session. Purely client-side; the guest cart id
// survives.
func (c *Client) Logout() {
	c.store.ClearSession()
}

// Products lists the catalog.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	err := c.doJSON(ctx, http.MethodGet, "/api/products", nil, &out)
	return out, err
}

// Product fetches one product with its variants.
func (c *Client) Product(ctx context.Context, id int64) (*domain.Product, error) {
	var out domain.Product
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Categories lists catalog categories.
func (c *Client) Categories(ctx context.Context) ([]domain.Option, error) {
	var out []domain.Option
	err := c.doJSON(ctx, http.MethodGet, "/api/categories", nil, &out)
	return out, err
}

// Brands lists catalog brands.
func (c *Client) Brands(ctx context.Context) ([]domain.Option, error) {
	var out []domain.Option
	err := c.doJSON(ctx, http.MethodGet, "/api/brands", nil, &out)
	return out, err
}

// Cart fetches the line items of the effective cart.
func (c *Client) Cart(ctx context.Context) ([]domain.CartItem, error) {
	var out []domain.CartItem
	err := c.doJSON(ctx, http.MethodGet, "/api/cart?"+c.cartQuery(nil), nil, &out)
	return out, err
}

// AddToCart puts qty units of a variant into the effective cart.
func (c *Client) AddToCart(ctx context.Context, variantID int64, qty int) error {
	q := c.cartQuery(url.Values{
		"variantId": {strconv.FormatInt(variantID, 10)},
		"qty":       {strconv.Itoa(qty)},
	})
	return c.doJSON(ctx, http.MethodPost, "/api/cart/add?"+q, nil, nil)
}

// UpdateQuantity sets the quantity of a cart line and returns the updated
// line items, which callers use as the fresh cart state.
func (c *Client) UpdateQuantity(ctx context.Context, variantID int64, qty int) ([]domain.CartItem, error) {
	q := c.cartQuery(url.Values{
		"variantId": {strconv.FormatInt(variantID, 10)},
		"qty":       {strconv.Itoa(qty)},
	})
	var out []domain.CartItem
	err := c.doJSON(ctx, http.MethodPut, "/api/cart/quantity?"+q, nil, &out)
	return out, err
}

// RemoveItem drops a cart line and returns the updated line items.
func (c *Client) RemoveItem(ctx context.Context, variantID int64) ([]domain.CartItem, error) {
	q := c.cartQuery(url.Values{
		"variantId": {strconv.FormatInt(variantID, 10)},
	})
	var out []domain.CartItem
	err := c.doJSON(ctx, http.MethodDelete, "/api/cart/remove?"+q, nil, &out)
	return out, err
}

// Checkout places an order from the effective cart. Requires auth.
func (c *Client) Checkout(ctx context.Context) (*domain.CheckoutResponse, error) {
	var out domain.CheckoutResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/orders/checkout?"+c.cartQuery(nil), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyOrders lists the authenticated account's orders.
func (c *Client) MyOrders(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	err := c.doJSON(ctx, http.MethodGet, "/api/orders/my", nil, &out)
	return out, err
}

// Order fetches one order with its items.
func (c *Client) Order(ctx context.Context, id int64) (*domain.Order, error) {
	var out domain.Order
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/orders/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Pay marks an order paid (mock payment).
func (c *Client) Pay(ctx context.Context, id int64) (*domain.Order, error) {
	var out domain.Order
	if err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/api/pay/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile fetches the authenticated account.
func (c *Client) Profile(ctx context.Context) (*domain.Profile, error) {
	var out domain.Profile
	if err := c.doJSON(ctx, http.MethodGet, "/api/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SellerOrders lists orders containing the seller's products.
func (c *Client) SellerOrders(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	err := c.doJSON(ctx, http.MethodGet, "/api/orders/seller", nil, &out)
	return out, err
}

// SellerOrder fetches one order from the seller's view.
func (c *Client) SellerOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var out domain.Order
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/orders/%d/seller", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ship marks an order shipped. Requires the seller role server-side.
func (c *Client) Ship(ctx context.Context, id int64) (*domain.Order, error) {
	var out domain.Order
	if err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/api/orders/%d/ship", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProduct creates a seller product and returns its id.
func (c *Client) CreateProduct(ctx context.Context, req domain.CreateProductRequest) (int64, error) {
	var id int64
	if err := c.doJSON(ctx, http.MethodPost, "/api/seller/products", req, &id); err != nil {
		return 0, err
	}
	return id, nil
}

// UploadProductImage uploads a product image as a multipart form and
// returns the stored image URL.
func (c *Client) UploadProductImage(ctx context.Context, productID int64, filename string, file io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	path := fmt.Sprintf("/api/seller/products/%d/images", productID)
	resp, err := c.wrapper.Do(ctx, http.MethodPost, path, NewFormBody(&buf, mw.FormDataContentType()), nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperrors.NewAPIError(resp.StatusCode, body)
	}
	return strings.TrimSpace(string(body)), nil
}

// cartQuery builds a query string carrying the effective cart id plus any
// extra parameters.
func (c *Client) cartQuery(extra url.Values) string {
	q := url.Values{"cartId": {c.store.EffectiveCartID()}}
	for key, values := range extra {
		q[key] = values
	}
	return q.Encode()
}

// doJSON issues a request through the wrapper, encodes the optional JSON
// body, and decodes the response into out. Non-success statuses become
// DomainErrors; transport failures pass through as *TransportError.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	resp, err := c.wrapper.Do(ctx, method, path, reader, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.NewAPIError(resp.StatusCode, respBody)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}
