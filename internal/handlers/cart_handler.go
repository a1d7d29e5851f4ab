package handlers

import (
	"errors"
	"log"

	"sklep/internal/apperr"
	"sklep/internal/middleware"
	"sklep/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the visitor's session cart.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// RegisterRoutes registers the cart routes. The router must carry the
// visitor session middleware.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleViewCart)
	cartRoutes.Post("/", h.HandleAddToCart)
	cartRoutes.Delete("/:index", h.HandleRemoveFromCart)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// HandleViewCart returns the cart entries and their running total.
func (h *CartHandler) HandleViewCart(c *fiber.Ctx) error {
	entries, total := h.service.View(middleware.VisitorID(c))
	return c.JSON(fiber.Map{
		"entries": entries,
		"total":   total,
	})
}

// AddToCartRequest represents the request body for adding to the cart.
// Amount defaults to one; each unit becomes its own entry.
type AddToCartRequest struct {
	ItemID uint `json:"item_id"`
	Amount int  `json:"amount"`
}

// HandleAddToCart snapshots an item into the visitor's cart.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-to-cart body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.ItemID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "item_id is required",
		})
	}

	entries, err := h.service.AddItem(middleware.VisitorID(c), req.ItemID, req.Amount)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Item not found",
			})
		}
		log.Printf("Error adding item %d to cart: %v", req.ItemID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add item to cart",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"entries": entries,
	})
}

// HandleRemoveFromCart drops one entry by its position.
func (h *CartHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid cart index",
		})
	}

	if err := h.service.RemoveAt(middleware.VisitorID(c), index); err != nil {
		if errors.Is(err, apperr.ErrIndexOutOfRange) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Cart index out of range",
			})
		}
		log.Printf("Error removing cart entry %d: %v", index, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove cart entry",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Entry removed",
	})
}

// HandleClearCart empties the visitor's cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	h.service.Clear(middleware.VisitorID(c))
	return c.JSON(fiber.Map{
		"message": "Cart cleared",
	})
}
