package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"sklep/internal/apperr"
	"sklep/internal/models"
	"sklep/internal/repositories"
	"sklep/internal/session"
	"sklep/pkg/rabbitmq"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NotificationSink delivers an email-like message. Delivery is best-effort;
// the order service logs failures and never lets one affect a placed order.
type NotificationSink interface {
	Send(to, subject, body string) error
}

// CheckoutForm carries the shipping and payment fields submitted at
// checkout. Every field is required; delivery and payment are closed sets.
type CheckoutForm struct {
	Name          string `json:"name" validate:"required"`
	Surname       string `json:"surname" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Country       string `json:"country" validate:"required"`
	City          string `json:"city" validate:"required"`
	Street        string `json:"street" validate:"required"`
	HouseNumber   string `json:"house_number" validate:"required"`
	ZipCode       string `json:"zip_code" validate:"required"`
	Delivery      string `json:"delivery" validate:"required,oneof=DPD INPOST UPS"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=CARD CASH-ON-DELIVERY"`
}

// OrderDetailsForm carries the fields the admin order edit may change.
// Status and total are deliberately absent: status moves only through
// AdvanceStatus and the total is fixed at placement.
type OrderDetailsForm struct {
	Name        string `json:"name" validate:"required"`
	Surname     string `json:"surname" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Country     string `json:"country" validate:"required"`
	City        string `json:"city" validate:"required"`
	Street      string `json:"street" validate:"required"`
	HouseNumber string `json:"house_number" validate:"required"`
	ZipCode     string `json:"zip_code" validate:"required"`
}

// OrderService turns carts into persisted orders and runs the admin order
// workflow.
type OrderService struct {
	orderRepo repositories.OrderRepository
	itemRepo  repositories.ItemRepository
	carts     *session.CartStore
	mqClient  *rabbitmq.Client
	sink      NotificationSink
	validate  *validator.Validate
}

// NewOrderService creates a new OrderService. mqClient and sink may be nil;
// both are best-effort collaborators.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	itemRepo repositories.ItemRepository,
	carts *session.CartStore,
	mqClient *rabbitmq.Client,
	sink NotificationSink,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		carts:     carts,
		mqClient:  mqClient,
		sink:      sink,
		validate:  validator.New(),
	}
}

// PlaceOrder turns the visitor's cart into a persisted order.
//
// The total is the rounded sum of the snapshot prices captured when the
// entries were added; the catalog is consulted only to confirm each item id
// still resolves. Any entry that no longer resolves aborts the whole order:
// silently skipping lines would charge a different total than the cart
// showed. Header and line entries go in as one transaction, one line per
// cart entry, duplicates preserved. Only after the order is durable does the
// cart get cleared and the confirmation mail and order.placed event go out,
// both best-effort.
func (s *OrderService) PlaceOrder(visitorID string, form CheckoutForm, userID *uint) (*models.Order, error) {
	entries := s.carts.Entries(visitorID)
	if len(entries) == 0 {
		return nil, apperr.ErrEmptyCart
	}

	if err := s.validate.Struct(form); err != nil {
		return nil, err
	}

	lines := make([]models.OrderLineEntry, 0, len(entries))
	var total float64
	for _, entry := range entries {
		if _, err := s.itemRepo.GetByID(entry.ItemID); err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return nil, &apperr.ItemResolutionError{ItemID: entry.ItemID}
			}
			return nil, fmt.Errorf("failed to resolve cart entry: %w", err)
		}
		lines = append(lines, models.OrderLineEntry{ItemID: entry.ItemID})
		total += entry.Price
	}

	order := &models.Order{
		Total:         round2(total),
		OrderedAt:     time.Now(),
		Country:       titleCase(form.Country),
		City:          titleCase(form.City),
		Street:        titleCase(form.Street),
		HouseNumber:   form.HouseNumber,
		ZipCode:       form.ZipCode,
		Delivery:      form.Delivery,
		PaymentMethod: form.PaymentMethod,
		Status:        models.StatusPlaced,
		UserID:        userID,
		Name:          form.Name,
		Surname:       form.Surname,
		Email:         form.Email,
	}

	if err := s.orderRepo.CreateWithLines(order, lines); err != nil {
		return nil, err
	}

	s.carts.Clear(visitorID)

	s.notify(order)
	s.publishEvent("order.placed", map[string]interface{}{
		"order_id": order.ID,
		"email":    order.Email,
		"total":    order.Total,
		"status":   order.Status,
	})

	return order, nil
}

// GetAllOrders retrieves all orders, sorted by status the way the dashboard
// lists them.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order with its line entries.
func (s *OrderService) GetOrderByID(id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// AdvanceStatus moves the order status forward by exactly one step and
// returns the new value. Nothing else may change the status.
func (s *OrderService) AdvanceStatus(id uint) (int, error) {
	status, err := s.orderRepo.AdvanceStatus(id)
	if err != nil {
		return 0, err
	}

	s.publishEvent("order.status_advanced", map[string]interface{}{
		"order_id": id,
		"status":   status,
	})
	return status, nil
}

// UpdateOrderDetails rewrites the purchaser and address fields of an order
// through the same validated, normalized contract checkout uses.
func (s *OrderService) UpdateOrderDetails(id uint, form OrderDetailsForm) (*models.Order, error) {
	if err := s.validate.Struct(form); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	order.Name = form.Name
	order.Surname = form.Surname
	order.Email = form.Email
	order.Country = titleCase(form.Country)
	order.City = titleCase(form.City)
	order.Street = titleCase(form.Street)
	order.HouseNumber = form.HouseNumber
	order.ZipCode = form.ZipCode

	if err := s.orderRepo.UpdateDetails(order); err != nil {
		return nil, err
	}
	return order, nil
}

// notify sends the confirmation mail, logging failure and moving on.
func (s *OrderService) notify(order *models.Order) {
	if s.sink == nil {
		log.Println("Notification sink is not configured. Skipping order confirmation.")
		return
	}
	body := fmt.Sprintf(
		"Hi %s,\n\nyour order #%d has been placed. Total: %.2f.\nDelivery: %s, payment: %s.\n\nThank you for shopping with us.",
		order.Name, order.ID, order.Total, order.Delivery, order.PaymentMethod,
	)
	if err := s.sink.Send(order.Email, fmt.Sprintf("Order #%d confirmation", order.ID), body); err != nil {
		log.Printf("Warning: failed to send confirmation for order %d: %v", order.ID, err)
	}
}

// publishEvent emits an order lifecycle event, logging failure and moving on.
func (s *OrderService) publishEvent(key string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", key, err)
		return
	}
	if err := s.mqClient.Publish(key, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", key, err)
	}
}

// round2 rounds to two decimal places. Applied once, to the order total;
// never per line.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// titleCase normalizes free-text address fields the way the checkout page
// displays them.
func titleCase(v string) string {
	return cases.Title(language.Und).String(v)
}
