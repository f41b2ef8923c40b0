package domain

// Variant is a purchasable configuration of a product.
type Variant struct {
	ID       int64   `json:"id"`
	Size     string  `json:"size"`
	Color    string  `json:"color"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	SKU      string  `json:"sku"`
}

// Product is a catalog entry with its variants.
type Product struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Brand       string    `json:"brand"`
	Category    string    `json:"category"`
	Images      []string  `json:"images"`
	Variants    []Variant `json:"variants"`
}

// Option is a named catalog dimension (category or brand).
type Option struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CreateProductRequest is the seller payload for a new product.
type CreateProductRequest struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	CategoryID  int64                  `json:"categoryId"`
	BrandID     int64                  `json:"brandId"`
	Variants    []CreateVariantRequest `json:"variants"`
}

// CreateVariantRequest describes one variant of a new product.
type CreateVariantRequest struct {
	Size     string  `json:"size"`
	Color    string  `json:"color"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	SKU      string  `json:"sku"`
}

// MinPrice returns the lowest variant price, or zero for an empty list.
func (p Product) MinPrice() float64 {
	if len(p.Variants) == 0 {
		return 0
	}
	min := p.Variants[0].Price
	for _, v := range p.Variants[1:] {
		if v.Price < min {
			min = v.Price
		}
	}
	return min
}
