package models

// Item represents a purchasable catalog entry.
//
// The three business codes (EAN, manufacturer, shop) are each unique on their
// own: no two items may share any one of them, even if the other two differ.
// Items are never deleted; the Visible flag retires them from listings while
// keeping order-line history resolvable.
type Item struct {
	ID               uint    `json:"id" gorm:"primaryKey"`
	Name             string  `json:"name" gorm:"type:varchar(250);not null" validate:"required"`
	Description      string  `json:"description" gorm:"type:varchar(5000);not null" validate:"required"`
	Category         string  `json:"category" gorm:"type:varchar(250);not null" validate:"required"`
	SubCategory      string  `json:"sub_category" gorm:"type:varchar(250);not null" validate:"required"`
	Price            float64 `json:"price" gorm:"not null" validate:"gte=0"`
	ImgLink          string  `json:"img_link" gorm:"type:varchar(250);not null" validate:"required"`
	EANCode          int64   `json:"ean_code" gorm:"uniqueIndex;not null" validate:"required"`
	ManufacturerCode string  `json:"manufacturer_code" gorm:"uniqueIndex;type:varchar(250);not null" validate:"required"`
	ShopCode         int64   `json:"shop_code" gorm:"uniqueIndex;not null" validate:"required"`
	Visible          bool    `json:"visible" gorm:"not null;default:true"`
}

// Snapshot copies the fields a cart needs at add time. Later catalog edits do
// not reach entries already in a cart.
func (i *Item) Snapshot() CartEntry {
	return CartEntry{
		ItemID:  i.ID,
		Name:    i.Name,
		Price:   i.Price,
		ImgLink: i.ImgLink,
	}
}
