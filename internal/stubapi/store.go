package stubapi

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/spec-kit/storefront/internal/auth"
	"github.com/spec-kit/storefront/internal/domain"
	apperrors "github.com/spec-kit/storefront/pkg/util"
)

// Account is a registered marketplace account.
type Account struct {
	ID           int64
	Username     string
	DisplayName  *string
	PasswordHash string
	Role         domain.Role
	CartID       string
}

type cartLine struct {
	VariantID int64
	Quantity  int
}

type productRecord struct {
	product  domain.Product
	sellerID int64
}

type orderRecord struct {
	order     domain.Order
	accountID int64
	sellerIDs map[int64]struct{}
}

// Store is the stub server's in-memory state. All access is serialized by
// one mutex; the stub exists for local development and hermetic tests,
// not for scale.
type Store struct {
	mu sync.Mutex

	bcryptCost int

	nextAccountID int64
	nextProductID int64
	nextVariantID int64
	nextOrderID   int64

	accounts   map[string]*Account // by username
	categories []domain.Option
	brands     []domain.Option
	products   map[int64]*productRecord
	variants   map[int64]int64 // variant id -> product id
	carts      map[string][]cartLine
	orders     map[int64]*orderRecord
}

// NewStore initializes empty stub state.
func NewStore(bcryptCost int) *Store {
	return &Store{
		bcryptCost: bcryptCost,
		accounts:   make(map[string]*Account),
		products:   make(map[int64]*productRecord),
		variants:   make(map[int64]int64),
		carts:      make(map[string][]cartLine),
		orders:     make(map[int64]*orderRecord),
	}
}

// Register creates an account with the customer role.
func (s *Store) Register(username, password string) (*Account, error) {
	return s.CreateAccount(username, password, domain.RoleCustomer, nil)
}

// CreateAccount creates an account with an explicit role.
func (s *Store) CreateAccount(username, password string, role domain.Role, displayName *string) (*Account, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[username]; exists {
		return nil, apperrors.NewConflict("username already registered", nil)
	}

	s.nextAccountID++
	account := &Account{
		ID:           s.nextAccountID,
		Username:     username,
		DisplayName:  displayName,
		PasswordHash: hash,
		Role:         role,
		CartID:       fmt.Sprintf("user_%d", s.nextAccountID),
	}
	s.accounts[username] = account
	return account, nil
}

// Authenticate verifies credentials and returns the account.
func (s *Store) Authenticate(username, password string) (*Account, error) {
	s.mu.Lock()
	account, exists := s.accounts[username]
	s.mu.Unlock()

	if !exists {
		return nil, apperrors.NewUnauthorized("invalid username or password")
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid username or password")
	}
	return account, nil
}

// AccountByID looks up an account by numeric id.
func (s *Store) AccountByID(id int64) (*Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, account := range s.accounts {
		if account.ID == id {
			return account, true
		}
	}
	return nil, false
}

// MergeGuestCart folds the lines of a guest cart into the account's
// persistent cart and returns the account cart id. Quantities of shared
// variants are summed; the guest cart is emptied.
func (s *Store) MergeGuestCart(guestCartID string, account *Account) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if guestCartID != "" && guestCartID != account.CartID {
		for _, line := range s.carts[guestCartID] {
			s.addLineLocked(account.CartID, line.VariantID, line.Quantity)
		}
		delete(s.carts, guestCartID)
	}
	return account.CartID
}

// CartItems renders the cart as line items joined with catalog data.
func (s *Store) CartItems(cartID string) []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartItemsLocked(cartID)
}

// AddToCart puts qty units of a variant into the cart.
func (s *Store) AddToCart(cartID string, variantID int64, qty int) ([]domain.CartItem, error) {
	if qty <= 0 {
		return nil, apperrors.NewValidationError("qty must be positive", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.variants[variantID]; !exists {
		return nil, apperrors.NewNotFound("variant", map[string]any{"variantId": variantID})
	}
	s.addLineLocked(cartID, variantID, qty)
	return s.cartItemsLocked(cartID), nil
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
func (s *Store) UpdateQuantity(cartID string, variantID int64, qty int) ([]domain.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[cartID]
	for i := range lines {
		if lines[i].VariantID != variantID {
			continue
		}
		if qty <= 0 {
			s.carts[cartID] = append(lines[:i], lines[i+1:]...)
		} else {
			lines[i].Quantity = qty
		}
		return s.cartItemsLocked(cartID), nil
	}
	return nil, apperrors.NewNotFound("cart item", map[string]any{"variantId": variantID})
}

// RemoveItem drops a line from the cart.
func (s *Store) RemoveItem(cartID string, variantID int64) ([]domain.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[cartID]
	for i := range lines {
		if lines[i].VariantID == variantID {
			s.carts[cartID] = append(lines[:i], lines[i+1:]...)
			return s.cartItemsLocked(cartID), nil
		}
	}
	return nil, apperrors.NewNotFound("cart item", map[string]any{"variantId": variantID})
}

// Checkout snapshots the cart into a NEW order and empties the cart.
func (s *Store) Checkout(accountID int64, cartID string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.cartItemsLocked(cartID)
	if len(items) == 0 {
		return nil, apperrors.NewValidationError("cart is empty", nil)
	}

	s.nextOrderID++
	record := &orderRecord{
		order: domain.Order{
			ID:        s.nextOrderID,
			Status:    domain.OrderStatusNew,
			CreatedAt: time.Now(),
		},
		accountID: accountID,
		sellerIDs: make(map[int64]struct{}),
	}
	for _, item := range items {
		record.order.Items = append(record.order.Items, domain.OrderItem(item))
		record.order.TotalAmount += item.Price * float64(item.Quantity)
		if product, exists := s.products[item.ProductID]; exists {
			record.sellerIDs[product.sellerID] = struct{}{}
		}
	}

	s.orders[record.order.ID] = record
	delete(s.carts, cartID)

	order := record.order
	return &order, nil
}

// OrdersFor lists an account's orders, newest first, without items.
func (s *Store) OrdersFor(accountID int64) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Order
	for _, record := range s.orders {
		if record.accountID != accountID {
			continue
		}
		order := record.order
		order.Items = nil
		out = append(out, order)
	}
	sortOrders(out)
	return out
}

// OrderFor returns one of the account's orders with items.
func (s *Store) OrderFor(accountID, orderID int64) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.orders[orderID]
	if !exists || record.accountID != accountID {
		return nil, apperrors.NewNotFound("order", map[string]any{"id": orderID})
	}
	order := record.order
	return &order, nil
}

// Pay moves one of the account's orders from NEW to PAID.
func (s *Store) Pay(accountID, orderID int64) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.orders[orderID]
	if !exists || record.accountID != accountID {
		return nil, apperrors.NewNotFound("order", map[string]any{"id": orderID})
	}
	if record.order.Status != domain.OrderStatusNew {
		return nil, apperrors.NewConflict("order is not payable", map[string]any{"status": record.order.Status})
	}
	record.order.Status = domain.OrderStatusPaid
	order := record.order
	return &order, nil
}

// SellerOrders lists orders containing the seller's products.
func (s *Store) SellerOrders(sellerID int64) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Order
	for _, record := range s.orders {
		if _, involved := record.sellerIDs[sellerID]; !involved {
			continue
		}
		order := record.order
		order.Items = nil
		out = append(out, order)
	}
	sortOrders(out)
	return out
}

// SellerOrder returns one order from the seller's view, with items.
func (s *Store) SellerOrder(sellerID, orderID int64) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.orders[orderID]
	if !exists {
		return nil, apperrors.NewNotFound("order", map[string]any{"id": orderID})
	}
	if _, involved := record.sellerIDs[sellerID]; !involved {
		return nil, apperrors.NewForbidden("order does not contain your products")
	}
	order := record.order
	return &order, nil
}

// Ship moves a PAID order to SHIPPED on behalf of an involved seller.
func (s *Store) Ship(sellerID, orderID int64) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.orders[orderID]
	if !exists {
		return nil, apperrors.NewNotFound("order", map[string]any{"id": orderID})
	}
	if _, involved := record.sellerIDs[sellerID]; !involved {
		return nil, apperrors.NewForbidden("order does not contain your products")
	}
	if record.order.Status != domain.OrderStatusPaid {
		return nil, apperrors.NewConflict("order is not shippable", map[string]any{"status": record.order.Status})
	}
	record.order.Status = domain.OrderStatusShipped
	order := record.order
	return &order, nil
}

// Categories lists catalog categories.
func (s *Store) Categories() []domain.Option {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Option{}, s.categories...)
}

// Brands lists catalog brands.
func (s *Store) Brands() []domain.Option {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Option{}, s.brands...)
}

// Products lists the catalog.
func (s *Store) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Product, 0, len(s.products))
	for _, record := range s.products {
		out = append(out, record.product)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Product returns one catalog entry.
func (s *Store) Product(id int64) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.products[id]
	if !exists {
		return nil, apperrors.NewNotFound("product", map[string]any{"id": id})
	}
	product := record.product
	return &product, nil
}

// CreateProduct adds a seller product and returns its id.
func (s *Store) CreateProduct(sellerID int64, req domain.CreateProductRequest) (int64, error) {
	if req.Title == "" || req.Description == "" {
		return 0, apperrors.NewValidationError("title and description required", nil)
	}
	if len(req.Variants) == 0 {
		return 0, apperrors.NewValidationError("at least one variant required", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	category, exists := s.optionNameLocked(s.categories, req.CategoryID)
	if !exists {
		return 0, apperrors.NewValidationError("unknown category", map[string]any{"categoryId": req.CategoryID})
	}
	brand, exists := s.optionNameLocked(s.brands, req.BrandID)
	if !exists {
		return 0, apperrors.NewValidationError("unknown brand", map[string]any{"brandId": req.BrandID})
	}

	s.nextProductID++
	product := domain.Product{
		ID:          s.nextProductID,
		Title:       req.Title,
		Description: req.Description,
		Brand:       brand,
		Category:    category,
	}
	for _, v := range req.Variants {
		s.nextVariantID++
		product.Variants = append(product.Variants, domain.Variant{
			ID:       s.nextVariantID,
			Size:     v.Size,
			Color:    v.Color,
			Price:    v.Price,
			Quantity: v.Quantity,
			SKU:      v.SKU,
		})
		s.variants[s.nextVariantID] = product.ID
	}

	s.products[product.ID] = &productRecord{product: product, sellerID: sellerID}
	return product.ID, nil
}

// AddProductImage attaches an image URL to a seller's product.
func (s *Store) AddProductImage(sellerID, productID int64, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.products[productID]
	if !exists {
		return apperrors.NewNotFound("product", map[string]any{"id": productID})
	}
	if record.sellerID != sellerID {
		return apperrors.NewForbidden("not your product")
	}
	record.product.Images = append(record.product.Images, url)
	return nil
}

func (s *Store) addLineLocked(cartID string, variantID int64, qty int) {
	lines := s.carts[cartID]
	for i := range lines {
		if lines[i].VariantID == variantID {
			lines[i].Quantity += qty
			return
		}
	}
	s.carts[cartID] = append(lines, cartLine{VariantID: variantID, Quantity: qty})
}

func (s *Store) cartItemsLocked(cartID string) []domain.CartItem {
	items := []domain.CartItem{}
	for _, line := range s.carts[cartID] {
		productID, exists := s.variants[line.VariantID]
		if !exists {
			continue
		}
		record := s.products[productID]
		for _, variant := range record.product.Variants {
			if variant.ID != line.VariantID {
				continue
			}
			item := domain.CartItem{
				ProductID: productID,
				VariantID: variant.ID,
				Title:     record.product.Title,
				Size:      variant.Size,
				Color:     variant.Color,
				Price:     variant.Price,
				Quantity:  line.Quantity,
			}
			if len(record.product.Images) > 0 {
				item.ImageURL = record.product.Images[0]
			}
			items = append(items, item)
		}
	}
	return items
}

func (s *Store) optionNameLocked(options []domain.Option, id int64) (string, bool) {
	for _, opt := range options {
		if opt.ID == id {
			return opt.Name, true
		}
	}
	return "", false
}

func sortOrders(orders []domain.Order) {
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })
}
