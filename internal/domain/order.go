package domain

import "time"

// OrderStatus represents order lifecycle states.
type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "NEW"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCanceled  OrderStatus = "CANCELED"
)

// OrderItem is a line item snapshotted from the cart at checkout.
type OrderItem struct {
	ProductID int64   `json:"productId"`
	VariantID int64   `json:"variantId"`
	Title     string  `json:"title"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"imageUrl"`
}

// Order is a placed order.
type Order struct {
	ID          int64       `json:"id"`
	Status      OrderStatus `json:"status"`
	TotalAmount float64     `json:"totalAmount"`
	CreatedAt   time.Time   `json:"createdAt"`
	Items       []OrderItem `json:"items,omitempty"`
}

// CheckoutResponse is the created-order reference returned by checkout.
type CheckoutResponse struct {
	ID int64 `json:"id"`
}
