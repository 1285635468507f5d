package models

// CartLine is a product snapshot with the quantity being purchased.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns price times quantity for the line.
func (l CartLine) Subtotal() int64 {
	return l.Product.Price * int64(l.Quantity)
}
