package models

import "time"

// OrderType is how the customer consumes the order.
type OrderType string

const (
	OrderTypeEatIn    OrderType = "eat-in"
	OrderTypeTakeaway OrderType = "takeaway"
)

// PaymentMethod is how the order was paid. Only cash is accepted at the counter.
type PaymentMethod string

const PaymentMethodCash PaymentMethod = "cash"

// OrderItem represents a single item within an order.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"` // Price at the time of order
}

// Order is a finalized sale. Orders are never modified after creation.
type Order struct {
	ID              string        `json:"order_id"`
	OrderTime       time.Time     `json:"order_time"`
	OrderType       OrderType     `json:"order_type"`
	Items           []OrderItem   `json:"items"`
	TotalAmount     int64         `json:"total_amount"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	PaymentReceived int64         `json:"payment_received"`
	ChangeAmount    int64         `json:"change_amount"`
}
