package stubapi_test

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/api"
	"github.com/spec-kit/storefront/internal/config"
	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/events"
	"github.com/spec-kit/storefront/internal/session"
	"github.com/spec-kit/storefront/internal/stubapi"
	apperrors "github.com/spec-kit/storefront/pkg/util"
)

func startServer(t *testing.T) string {
	t.Helper()

	srv := stubapi.New(config.StubConfig{
		JWTSecret:             "e2e-secret",
		AccessTokenTTLMinutes: 5,
		BcryptCost:            4,
	}, zap.NewNop())
	srv.Store.Seed(zap.NewNop())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() { _ = srv.Shutdown() })

	return "http://" + ln.Addr().String()
}

func newSessionClient(t *testing.T, baseURL string) (*api.Client, *session.Store) {
	t.Helper()
	store := session.NewStore(t.TempDir(), events.NewBus(), nil)
	return api.NewClient(baseURL, store, nil), store
}

func TestGuestToPaidOrderFlow(t *testing.T) {
	baseURL := startServer(t)
	ctx := context.Background()

	client, store := newSessionClient(t, baseURL)

	products, err := client.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	variant := products[0].Variants[0]

	// browse and fill the cart anonymously
	require.True(t, strings.HasPrefix(store.EffectiveCartID(), "guest_"))
	require.NoError(t, client.AddToCart(ctx, variant.ID, 2))

	items, err := client.Cart(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, products[0].Title, items[0].Title)

	// login merges the guest cart into the account cart
	resp, err := client.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "user_1", resp.CartID)
	assert.Equal(t, "user_1", store.EffectiveCartID())
	role, ok := store.Role()
	require.True(t, ok)
	assert.Equal(t, domain.RoleCustomer, role)

	items, err = client.Cart(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)

	checkout, err := client.Checkout(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), checkout.ID)

	items, err = client.Cart(ctx)
	require.NoError(t, err)
	assert.Empty(t, items, "checkout empties the cart")

	orders, err := client.MyOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, domain.OrderStatusNew, orders[0].Status)

	paid, err := client.Pay(ctx, checkout.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPaid, paid.Status)

	order, err := client.Order(ctx, checkout.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPaid, order.Status)
	require.Len(t, order.Items, 1)
	assert.InDelta(t, variant.Price*2, order.TotalAmount, 0.001)
}

func TestSellerShipsPaidOrder(t *testing.T) {
	baseURL := startServer(t)
	ctx := context.Background()

	customer, _ := newSessionClient(t, baseURL)
	products, err := customer.Products(ctx)
	require.NoError(t, err)
	require.NoError(t, customer.AddToCart(ctx, products[0].Variants[0].ID, 1))
	_, err = customer.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	checkout, err := customer.Checkout(ctx)
	require.NoError(t, err)
	_, err = customer.Pay(ctx, checkout.ID)
	require.NoError(t, err)

	// the seller holds a separate session
	seller, sellerStore := newSessionClient(t, baseURL)
	_, err = seller.Login(ctx, "bob", "secret")
	require.NoError(t, err)
	role, ok := sellerStore.Role()
	require.True(t, ok)
	assert.Equal(t, domain.RoleSeller, role)

	orders, err := seller.SellerOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, checkout.ID, orders[0].ID)

	shipped, err := seller.Ship(ctx, checkout.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, shipped.Status)

	view, err := seller.SellerOrder(ctx, checkout.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, view.Status)
}

func TestCustomerCannotUseSellerRoutes(t *testing.T) {
	baseURL := startServer(t)
	ctx := context.Background()

	client, _ := newSessionClient(t, baseURL)
	products, err := client.Products(ctx)
	require.NoError(t, err)
	require.NoError(t, client.AddToCart(ctx, products[0].Variants[0].ID, 1))
	_, err = client.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	checkout, err := client.Checkout(ctx)
	require.NoError(t, err)

	_, err = client.SellerOrders(ctx)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperrors.ToDomainError(err).HTTPStatus)

	_, err = client.SellerOrder(ctx, checkout.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperrors.ToDomainError(err).HTTPStatus)

	// the seller gate must not leak onto the customer's own order detail
	order, err := client.Order(ctx, checkout.ID)
	require.NoError(t, err)
	assert.Equal(t, checkout.ID, order.ID)
}

func TestCheckoutRequiresAuthentication(t *testing.T) {
	baseURL := startServer(t)
	ctx := context.Background()

	client, _ := newSessionClient(t, baseURL)
	products, err := client.Products(ctx)
	require.NoError(t, err)
	require.NoError(t, client.AddToCart(ctx, products[0].Variants[0].ID, 1))

	_, err = client.Checkout(ctx)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperrors.ToDomainError(err).HTTPStatus)
}

func TestRegisterProfileAndDuplicate(t *testing.T) {
	baseURL := startServer(t)
	ctx := context.Background()

	client, _ := newSessionClient(t, baseURL)
	require.NoError(t, client.Register(ctx, "carol", "hunter2"))

	err := client.Register(ctx, "carol", "hunter2")
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperrors.ToDomainError(err).HTTPStatus)

	_, err = client.Login(ctx, "carol", "hunter2")
	require.NoError(t, err)

	profile, err := client.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "carol", profile.Username)
	assert.Equal(t, domain.RoleCustomer, profile.Role)
}

func TestSellerCreatesProductWithImage(t *testing.T) {
	baseURL := startServer(t)
	ctx := context.Background()

	seller, _ := newSessionClient(t, baseURL)
	_, err := seller.Login(ctx, "bob", "secret")
	require.NoError(t, err)

	id, err := seller.CreateProduct(ctx, domain.CreateProductRequest{
		Title:       "Wool Beanie",
		Description: "Merino beanie for cold commutes.",
		CategoryID:  3,
		BrandID:     2,
		Variants: []domain.CreateVariantRequest{
			{Size: "One Size", Color: "Charcoal", Price: 19.90, Quantity: 30, SKU: "WB-OS-CHR"},
		},
	})
	require.NoError(t, err)
	require.Positive(t, id)

	url, err := seller.UploadProductImage(ctx, id, "beanie.jpg", bytes.NewReader([]byte("jpeg-bytes")))
	require.NoError(t, err)
	assert.Contains(t, url, "/uploads/")

	product, err := seller.Product(ctx, id)
	require.NoError(t, err)
	require.Len(t, product.Images, 1)
	assert.Equal(t, url, product.Images[0])
}
