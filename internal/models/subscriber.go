package models

import "time"

// NewsletterSubscriber is an append-only opt-in record, independent of User.
type NewsletterSubscriber struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	Email    string    `json:"email" gorm:"uniqueIndex;type:varchar(250);not null" validate:"required,email"`
	JoinedAt time.Time `json:"joined_at" gorm:"not null"`
}
