package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by services and handlers. Handlers translate these
// to HTTP statuses with errors.Is; services wrap them with context via %w.
var (
	ErrNotFound           = errors.New("not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrIndexOutOfRange    = errors.New("cart index out of range")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// DuplicateCodeError reports which of an item's three business codes collided
// with an existing item. The checks are independent, so the error always
// names exactly one code.
type DuplicateCodeError struct {
	Code  string // "ean_code", "manufacturer_code" or "shop_code"
	Value string
}

func (e *DuplicateCodeError) Error() string {
	return fmt.Sprintf("item with %s %s already exists", e.Code, e.Value)
}

// DuplicateEmailError reports a uniqueness violation on a user or newsletter
// email.
type DuplicateEmailError struct {
	Email string
}

func (e *DuplicateEmailError) Error() string {
	return fmt.Sprintf("email %s is already registered", e.Email)
}

// ItemResolutionError reports a cart snapshot whose item id no longer
// resolves to a catalog record at checkout time. The whole order is aborted;
// no partial order is written.
type ItemResolutionError struct {
	ItemID uint
}

func (e *ItemResolutionError) Error() string {
	return fmt.Sprintf("cart references item %d which no longer exists", e.ItemID)
}
