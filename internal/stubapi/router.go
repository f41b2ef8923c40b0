package stubapi

import (
	"net"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/auth"
	"github.com/spec-kit/storefront/internal/config"
	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/observability"
)

// Server bundles the stub marketplace application and its state.
type Server struct {
	App   *fiber.App
	Store *Store
}

// New builds the stub server with middlewares and routes wired.
func New(cfg config.StubConfig, logger *zap.Logger) *Server {
	store := NewStore(cfg.BcryptCost)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	RegisterMiddlewares(app, logger, observability.NewMetrics())

	registerRoutes(app, routeConfig{
		Auth:           NewAuthHandler(store, tokens),
		Catalog:        NewCatalogHandler(store),
		Cart:           NewCartHandler(store),
		Orders:         NewOrdersHandler(store),
		Seller:         NewSellerHandler(store),
		AuthMiddleware: auth.NewAuthMiddleware(tokens),
	})

	return &Server{App: app, Store: store}
}

// Listen serves on the given address.
func (s *Server) Listen(addr string) error {
	return s.App.Listen(addr)
}

// Serve serves on an existing listener (used by tests).
func (s *Server) Serve(ln net.Listener) error {
	return s.App.Listener(ln)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	return s.App.Shutdown()
}

// routeConfig bundles dependencies for route registration.
type routeConfig struct {
	Auth           *AuthHandler
	Catalog        *CatalogHandler
	Cart           *CartHandler
	Orders         *OrdersHandler
	Seller         *SellerHandler
	AuthMiddleware *auth.AuthMiddleware
}

// registerRoutes wires HTTP routes. Auth and role middleware is attached
// per route rather than via Use-style groups, which match by path prefix
// and would drag the seller gate into customer routes. Literal order
// matters for /api/orders: "my", "seller" and "checkout" must precede
// ":id".
func registerRoutes(app *fiber.App, cfg routeConfig) {
	api := app.Group("/api")

	authed := cfg.AuthMiddleware.Handle
	anyRole := auth.RequireAnyRole()
	sellerOnly := auth.RequireRole(domain.RoleSeller)

	api.Post("/auth/register", cfg.Auth.Register)
	api.Post("/auth/login", cfg.Auth.Login)

	api.Get("/products", cfg.Catalog.Products)
	api.Get("/products/:id", cfg.Catalog.Product)
	api.Get("/categories", cfg.Catalog.Categories)
	api.Get("/brands", cfg.Catalog.Brands)

	api.Get("/cart", cfg.Cart.Get)
	api.Post("/cart/add", cfg.Cart.Add)
	api.Put("/cart/quantity", cfg.Cart.UpdateQuantity)
	api.Delete("/cart/remove", cfg.Cart.Remove)

	api.Get("/profile", authed, anyRole, cfg.Auth.Profile)
	api.Post("/orders/checkout", authed, anyRole, cfg.Orders.Checkout)
	api.Get("/orders/my", authed, anyRole, cfg.Orders.My)
	api.Post("/pay/:id", authed, anyRole, cfg.Orders.Pay)

	api.Get("/orders/seller", authed, sellerOnly, cfg.Seller.Orders)
	api.Get("/orders/:id/seller", authed, sellerOnly, cfg.Seller.Order)
	api.Post("/orders/:id/ship", authed, sellerOnly, cfg.Seller.Ship)
	api.Post("/seller/products", authed, sellerOnly, cfg.Seller.CreateProduct)
	api.Post("/seller/products/:id/images", authed, sellerOnly, cfg.Seller.UploadImage)

	api.Get("/orders/:id", authed, anyRole, cfg.Orders.ByID)
}
