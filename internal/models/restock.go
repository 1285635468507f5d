package models

import "time"

// RestockStatus is the lifecycle state of a factory restock request.
type RestockStatus string

const (
	RestockStatusPending   RestockStatus = "PENDING"
	RestockStatusDelivered RestockStatus = "DELIVERED"
	RestockStatusCancelled RestockStatus = "CANCELLED"
)

// RestockRequest asks the factory to bake and deliver more of a product.
type RestockRequest struct {
	ID          string        `json:"request_id"`
	ProductID   string        `json:"product_id"`
	ProductName string        `json:"product_name"`
	Quantity    int           `json:"request_quantity"`
	CreatedAt   time.Time     `json:"created_at"`
	ETA         time.Time     `json:"eta_at"`
	Note        string        `json:"note,omitempty"`
	Status      RestockStatus `json:"status"`
}

var restockTransitions = map[RestockStatus]map[RestockStatus]bool{
	RestockStatusPending:   {RestockStatusDelivered: true, RestockStatusCancelled: true},
	RestockStatusDelivered: {},
	RestockStatusCancelled: {},
}

// CanTransition reports whether a request may move from one status to another.
func CanTransition(from, to RestockStatus) bool {
	return restockTransitions[from][to]
}
