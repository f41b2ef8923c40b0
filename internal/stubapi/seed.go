package stubapi

import (
	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/domain"
)

// Seed loads demo accounts and a small catalog so the CLI has something
// to browse out of the box. Accounts: alice/secret (customer) and
// bob/secret (seller).
func (s *Store) Seed(logger *zap.Logger) {
	s.mu.Lock()
	s.categories = []domain.Option{
		{ID: 1, Name: "Sneakers"},
		{ID: 2, Name: "Hoodies"},
		{ID: 3, Name: "Accessories"},
	}
	s.brands = []domain.Option{
		{ID: 1, Name: "Northwind"},
		{ID: 2, Name: "Fjord"},
	}
	s.mu.Unlock()

	displayName := "Bob the Seller"
	if _, err := s.CreateAccount("alice", "secret", domain.RoleCustomer, nil); err != nil {
		logger.Warn("seed account failed", zap.Error(err))
	}
	seller, err := s.CreateAccount("bob", "secret", domain.RoleSeller, &displayName)
	if err != nil {
		logger.Warn("seed account failed", zap.Error(err))
		return
	}

	seedProducts := []domain.CreateProductRequest{
		{
			Title:       "Trail Runner",
			Description: "Lightweight trail sneaker with a grippy sole.",
			CategoryID:  1,
			BrandID:     1,
			Variants: []domain.CreateVariantRequest{
				{Size: "42", Color: "Black", Price: 89.90, Quantity: 12, SKU: "TR-42-BLK"},
				{Size: "44", Color: "Olive", Price: 89.90, Quantity: 7, SKU: "TR-44-OLV"},
			},
		},
		{
			Title:       "Harbor Hoodie",
			Description: "Heavyweight fleece hoodie.",
			CategoryID:  2,
			BrandID:     2,
			Variants: []domain.CreateVariantRequest{
				{Size: "M", Color: "Navy", Price: 59.00, Quantity: 20, SKU: "HH-M-NVY"},
				{Size: "L", Color: "Navy", Price: 59.00, Quantity: 15, SKU: "HH-L-NVY"},
			},
		},
		{
			Title:       "Canvas Tote",
			Description: "Everyday tote, fits a laptop.",
			CategoryID:  3,
			BrandID:     2,
			Variants: []domain.CreateVariantRequest{
				{Size: "One Size", Color: "Natural", Price: 24.50, Quantity: 40, SKU: "CT-OS-NAT"},
			},
		},
	}
	for _, req := range seedProducts {
		if _, err := s.CreateProduct(seller.ID, req); err != nil {
			logger.Warn("seed product failed", zap.Error(err))
		}
	}

	logger.Info("seeded stub catalog",
		zap.Int("products", len(seedProducts)),
		zap.String("customer", "alice"),
		zap.String("seller", "bob"),
	)
}
