package stubapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/domain"
	apperrors "github.com/spec-kit/storefront/pkg/util"
)

func newSeededStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(4) // minimal bcrypt cost keeps tests fast
	store.Seed(zap.NewNop())
	return store
}

func firstVariant(t *testing.T, store *Store) (int64, domain.Product) {
	t.Helper()
	products := store.Products()
	require.NotEmpty(t, products)
	require.NotEmpty(t, products[0].Variants)
	return products[0].Variants[0].ID, products[0]
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	store := newSeededStore(t)

	_, err := store.Register("carol", "pw")
	require.NoError(t, err)

	_, err = store.Register("carol", "pw")
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperrors.ToDomainError(err).HTTPStatus)
}

func TestAuthenticateVerifiesPassword(t *testing.T) {
	store := newSeededStore(t)

	account, err := store.Authenticate("alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, account.Role)

	_, err = store.Authenticate("alice", "wrong")
	assert.Error(t, err)
	_, err = store.Authenticate("nobody", "secret")
	assert.Error(t, err)
}

func TestMergeGuestCartSumsQuantities(t *testing.T) {
	store := newSeededStore(t)
	variantID, _ := firstVariant(t, store)

	account, err := store.Authenticate("alice", "secret")
	require.NoError(t, err)

	// one unit already in the account cart, two more in the guest cart
	_, err = store.AddToCart(account.CartID, variantID, 1)
	require.NoError(t, err)
	_, err = store.AddToCart("guest_abc", variantID, 2)
	require.NoError(t, err)

	cartID := store.MergeGuestCart("guest_abc", account)
	assert.Equal(t, account.CartID, cartID)

	items := store.CartItems(cartID)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)

	assert.Empty(t, store.CartItems("guest_abc"), "guest cart is consumed by the merge")
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	store := newSeededStore(t)
	variantID, _ := firstVariant(t, store)

	_, err := store.AddToCart("guest_x", variantID, 2)
	require.NoError(t, err)

	items, err := store.UpdateQuantity("guest_x", variantID, 0)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCheckoutSnapshotsAndEmptiesCart(t *testing.T) {
	store := newSeededStore(t)
	variantID, product := firstVariant(t, store)

	account, err := store.Authenticate("alice", "secret")
	require.NoError(t, err)
	_, err = store.AddToCart(account.CartID, variantID, 2)
	require.NoError(t, err)

	order, err := store.Checkout(account.ID, account.CartID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusNew, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, product.ID, order.Items[0].ProductID)
	assert.InDelta(t, product.Variants[0].Price*2, order.TotalAmount, 0.001)

	assert.Empty(t, store.CartItems(account.CartID))

	_, err = store.Checkout(account.ID, account.CartID)
	assert.Error(t, err, "empty cart cannot be checked out")
}

func TestOrderLifecycleTransitions(t *testing.T) {
	store := newSeededStore(t)
	variantID, _ := firstVariant(t, store)

	customer, err := store.Authenticate("alice", "secret")
	require.NoError(t, err)
	seller, err := store.Authenticate("bob", "secret")
	require.NoError(t, err)

	_, err = store.AddToCart(customer.CartID, variantID, 1)
	require.NoError(t, err)
	order, err := store.Checkout(customer.ID, customer.CartID)
	require.NoError(t, err)

	// shipping before payment is rejected
	_, err = store.Ship(seller.ID, order.ID)
	require.Error(t, err)

	paid, err := store.Pay(customer.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPaid, paid.Status)

	_, err = store.Pay(customer.ID, order.ID)
	assert.Error(t, err, "double payment is rejected")

	shipped, err := store.Ship(seller.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, shipped.Status)

	// an uninvolved seller cannot see or ship the order
	stranger, err := store.CreateAccount("eve", "pw", domain.RoleSeller, nil)
	require.NoError(t, err)
	_, err = store.SellerOrder(stranger.ID, order.ID)
	assert.Error(t, err)
}

func TestCreateProductValidatesOptions(t *testing.T) {
	store := newSeededStore(t)
	seller, err := store.Authenticate("bob", "secret")
	require.NoError(t, err)

	_, err = store.CreateProduct(seller.ID, domain.CreateProductRequest{
		Title:       "Cap",
		Description: "A cap.",
		CategoryID:  999,
		BrandID:     1,
		Variants:    []domain.CreateVariantRequest{{Size: "OS", Color: "Red", Price: 9, Quantity: 1, SKU: "CAP"}},
	})
	require.Error(t, err)

	id, err := store.CreateProduct(seller.ID, domain.CreateProductRequest{
		Title:       "Cap",
		Description: "A cap.",
		CategoryID:  3,
		BrandID:     1,
		Variants:    []domain.CreateVariantRequest{{Size: "OS", Color: "Red", Price: 9, Quantity: 1, SKU: "CAP"}},
	})
	require.NoError(t, err)

	product, err := store.Product(id)
	require.NoError(t, err)
	assert.Equal(t, "Accessories", product.Category)
	assert.Equal(t, "Northwind", product.Brand)

	require.NoError(t, store.AddProductImage(seller.ID, id, "/uploads/x.jpg"))
	err = store.AddProductImage(seller.ID+100, id, "/uploads/y.jpg")
	assert.Error(t, err, "only the owner attaches images")
}
