package domain

// CartItem is one line of a cart as returned by the remote system.
type CartItem struct {
	ProductID int64   `json:"productId"`
	VariantID int64   `json:"variantId"`
	Title     string  `json:"title"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"imageUrl"`
}

// CartTotal sums price*quantity across line items.
func CartTotal(items []CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// CartCount sums quantities across line items.
func CartCount(items []CartItem) int {
	var count int
	for _, it := range items {
		count += it.Quantity
	}
	return count
}
