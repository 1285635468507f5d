package models

import "time"

// InventoryRecord is the stock state of a single stock-managed product.
type InventoryRecord struct {
	ProductID       string    `json:"product_id" gorm:"primaryKey;type:varchar(36)"`
	CurrentQuantity int       `json:"current_quantity"`
	MinThreshold    int       `json:"min_threshold" validate:"gte=0"`
	LastUpdated     time.Time `json:"last_updated"`
}

// TableName keeps the opening stock table name stable across drivers.
func (InventoryRecord) TableName() string {
	return "inventory"
}

// IsLow reports whether the stock is at or below the reorder threshold.
func (r InventoryRecord) IsLow() bool {
	return r.CurrentQuantity <= r.MinThreshold
}
