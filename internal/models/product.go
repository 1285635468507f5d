package models

// ProductType classifies a catalog item for stock tracking.
type ProductType string

const (
	ProductTypeFood        ProductType = "food"
	ProductTypeDrink       ProductType = "drink"
	ProductTypeAlcohol     ProductType = "alcohol"
	ProductTypeMerchandise ProductType = "merchandise"
)

// Product represents an item in the bakery catalog.
type Product struct {
	ID          string      `json:"product_id" gorm:"primaryKey;type:varchar(36)" validate:"required"`
	Name        string      `json:"name" gorm:"type:varchar(100)" validate:"required,max=100"`
	Price       int64       `json:"price" validate:"gte=0"` // Yen, tax included
	CategoryID  string      `json:"category_id" gorm:"type:varchar(36);index"`
	Type        ProductType `json:"type" gorm:"type:varchar(20)" validate:"required,oneof=food drink alcohol merchandise"`
	IsAlcoholic bool        `json:"is_alcoholic"`
	ImageURL    string      `json:"image_url" validate:"omitempty,max=500"`
	IsActive    bool        `json:"is_active"`
}

// StockManaged reports whether the product is subject to inventory tracking.
// Drinks and alcohol are prepared on demand and never tracked.
func (p Product) StockManaged() bool {
	return p.Type != ProductTypeDrink && p.Type != ProductTypeAlcohol
}

// Category groups products on the terminal.
type Category struct {
	ID   string `json:"category_id" gorm:"primaryKey;type:varchar(36)" validate:"required"`
	Name string `json:"name" gorm:"type:varchar(100)" validate:"required"`
}
