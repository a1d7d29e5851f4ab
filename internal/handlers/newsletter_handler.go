package handlers

import (
	"errors"
	"log"

	"sklep/internal/apperr"
	"sklep/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// NewsletterHandler handles newsletter opt-ins.
type NewsletterHandler struct {
	service  *services.NewsletterService
	validate *validator.Validate
}

// NewNewsletterHandler creates a new NewsletterHandler.
func NewNewsletterHandler(service *services.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the newsletter routes.
func (h *NewsletterHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/newsletter", h.HandleSubscribe)
}

// SubscribeRequest represents the opt-in request body.
type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleSubscribe appends a subscriber.
func (h *NewsletterHandler) HandleSubscribe(c *fiber.Ctx) error {
	var req SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing subscribe body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	sub, err := h.service.Subscribe(req.Email)
	if err != nil {
		var dup *apperr.DuplicateEmailError
		if errors.As(err, &dup) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Already subscribed",
			})
		}
		log.Printf("Error subscribing %s: %v", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not subscribe",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(sub)
}
