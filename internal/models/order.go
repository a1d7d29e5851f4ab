package models

import "time"

// Order status starts at StatusPlaced and only ever moves forward, one step
// at a time, through OrderService.AdvanceStatus.
const StatusPlaced = 1

// Delivery and payment methods accepted at checkout.
const (
	DeliveryDPD    = "DPD"
	DeliveryInpost = "INPOST"
	DeliveryUPS    = "UPS"

	PaymentCard           = "CARD"
	PaymentCashOnDelivery = "CASH-ON-DELIVERY"
)

// Order is a placed order header. Purchaser name/surname/email are stored
// denormalized even for logged-in buyers: the profile may later diverge from
// what was typed at checkout. UserID is nil for guest checkout.
type Order struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Total         float64   `json:"total" gorm:"not null"`
	OrderedAt     time.Time `json:"ordered_at" gorm:"not null"`
	Country       string    `json:"country" gorm:"type:varchar(250);not null"`
	City          string    `json:"city" gorm:"type:varchar(250);not null"`
	Street        string    `json:"street" gorm:"type:varchar(250);not null"`
	HouseNumber   string    `json:"house_number" gorm:"type:varchar(250);not null"`
	ZipCode       string    `json:"zip_code" gorm:"type:varchar(250);not null"`
	Delivery      string    `json:"delivery" gorm:"type:varchar(250);not null"`
	PaymentMethod string    `json:"payment_method" gorm:"type:varchar(250);not null"`
	Status        int       `json:"status" gorm:"not null"`
	UserID        *uint     `json:"user_id"`
	Name          string    `json:"name" gorm:"type:varchar(250)"`
	Surname       string    `json:"surname" gorm:"type:varchar(250)"`
	Email         string    `json:"email" gorm:"type:varchar(250)"`

	Lines []OrderLineEntry `json:"lines,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderLineEntry joins one order to one item, one row per purchased unit.
// It carries its own surrogate key precisely so that buying the same item
// twice in one order yields two rows instead of collapsing into one
// association pair.
type OrderLineEntry struct {
	ID      uint `json:"id" gorm:"primaryKey"`
	OrderID uint `json:"order_id" gorm:"index;not null"`
	ItemID  uint `json:"item_id" gorm:"index;not null"`
}
