package models

// CartEntry is a point-in-time copy of an item inside one visitor's cart.
// It is never persisted; its only identity is its position in the cart.
// Adding the same item twice produces two entries.
type CartEntry struct {
	ItemID  uint    `json:"item_id"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"` // price at add time
	ImgLink string  `json:"img_link"`
}
