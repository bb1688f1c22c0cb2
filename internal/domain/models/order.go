package models

// Order status values mirrored from the store pipeline.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Order captures the read-only order snapshot used by exports.
type Order struct {
	ID          int64  `json:"id"`
	OrderNumber string `json:"orderNumber"`
	UserID      int64  `json:"userId"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

// IsCompleted reports whether the order reached its terminal paid state.
func (o Order) IsCompleted() bool {
	return o.Status == OrderStatusCompleted
}

// OrderItem is one product-and-quantity line inside an order.
type OrderItem struct {
	ID        int64 `json:"id"`
	OrderID   int64 `json:"orderId"`
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}
