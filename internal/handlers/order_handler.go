package handlers

import (
	"errors"
	"log"

	"sklep/internal/apperr"
	"sklep/internal/middleware"
	"sklep/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles checkout and the admin order workflow.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// RegisterRoutes registers the public checkout route. The router must carry
// the visitor session middleware; auth is optional so guests can buy.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/checkout", h.HandleCheckout)
}

// RegisterAdminRoutes registers the order workflow routes behind the admin
// gate.
func (h *OrderHandler) RegisterAdminRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/:id/advance", h.HandleAdvanceStatus)
	orderRoutes.Put("/:id", h.HandleUpdateOrderDetails)
}

// HandleCheckout turns the visitor's cart into an order.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	var form services.CheckoutForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing checkout body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	order, err := h.service.PlaceOrder(middleware.VisitorID(c), form, middleware.UserID(c))
	if err != nil {
		return placeOrderFailed(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// placeOrderFailed maps placement failures onto the checkout surface.
func placeOrderFailed(c *fiber.Ctx, err error) error {
	if errors.Is(err, apperr.ErrEmptyCart) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "Cart is empty",
		})
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return validationFailed(c, err)
	}
	var stale *apperr.ItemResolutionError
	if errors.As(err, &stale) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "An item in the cart is no longer available",
			"item_id": stale.ItemID,
		})
	}
	log.Printf("Error placing order: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not place order",
	})
}

// HandleGetOrders lists all orders, sorted by status.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		log.Printf("Error getting all orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
		})
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves one order with its line entries.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid order id",
		})
	}

	order, err := h.service.GetOrderByID(uint(id))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		}
		log.Printf("Error getting order %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order",
		})
	}
	return c.JSON(order)
}

// HandleAdvanceStatus moves an order's status forward by one.
func (h *OrderHandler) HandleAdvanceStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid order id",
		})
	}

	status, err := h.service.AdvanceStatus(uint(id))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		}
		log.Printf("Error advancing order %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not advance order status",
		})
	}
	return c.JSON(fiber.Map{
		"id":     id,
		"status": status,
	})
}

// HandleUpdateOrderDetails rewrites purchaser and address fields through the
// validated contract. Status and total are not editable here.
func (h *OrderHandler) HandleUpdateOrderDetails(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid order id",
		})
	}

	var form services.OrderDetailsForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing order edit body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	order, err := h.service.UpdateOrderDetails(uint(id), form)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return validationFailed(c, err)
		}
		if errors.Is(err, apperr.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		}
		log.Printf("Error updating order %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update order",
		})
	}
	return c.JSON(order)
}
