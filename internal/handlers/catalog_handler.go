package handlers

import (
	"errors"
	"log"

	"sklep/internal/apperr"
	"sklep/internal/models"
	"sklep/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles HTTP requests for the item catalog. Browsing is
// public; every mutation sits behind the admin gate.
type CatalogHandler struct {
	service  *services.CatalogService
	validate *validator.Validate
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public browsing routes.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	itemRoutes := router.Group("/items")
	itemRoutes.Get("/", h.HandleListItems)
	itemRoutes.Get("/:id", h.HandleGetItem)
}

// RegisterAdminRoutes registers the catalog mutation routes. The caller is
// expected to pass a router already wrapped in the auth and admin
// middleware.
func (h *CatalogHandler) RegisterAdminRoutes(router fiber.Router) {
	itemRoutes := router.Group("/items")
	itemRoutes.Get("/", h.HandleListAllItems)
	itemRoutes.Post("/", h.HandleCreateItem)
	itemRoutes.Put("/:id", h.HandleUpdateItem)
	itemRoutes.Patch("/:id/visibility", h.HandleToggleVisibility)
}

// HandleListItems lists the visible catalog.
func (h *CatalogHandler) HandleListItems(c *fiber.Ctx) error {
	items, err := h.service.ListItems(false)
	if err != nil {
		log.Printf("Error listing items: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve items",
		})
	}
	return c.JSON(items)
}

// HandleListAllItems lists the whole catalog, hidden items included.
func (h *CatalogHandler) HandleListAllItems(c *fiber.Ctx) error {
	items, err := h.service.ListItems(true)
	if err != nil {
		log.Printf("Error listing all items: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve items",
		})
	}
	return c.JSON(items)
}

// HandleGetItem retrieves a single item.
func (h *CatalogHandler) HandleGetItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid item id",
		})
	}

	item, err := h.service.GetItem(uint(id))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Item not found",
			})
		}
		log.Printf("Error getting item %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve item",
		})
	}
	return c.JSON(item)
}

// HandleCreateItem adds a catalog item.
func (h *CatalogHandler) HandleCreateItem(c *fiber.Ctx) error {
	var item models.Item
	if err := c.BodyParser(&item); err != nil {
		log.Printf("Error parsing item body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	item.ID = 0

	if err := h.validate.Struct(item); err != nil {
		return validationFailed(c, err)
	}

	if err := h.service.CreateItem(&item); err != nil {
		return itemMutationFailed(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleUpdateItem overwrites an item's fields.
func (h *CatalogHandler) HandleUpdateItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid item id",
		})
	}

	var item models.Item
	if err := c.BodyParser(&item); err != nil {
		log.Printf("Error parsing item body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	item.ID = uint(id)

	if err := h.validate.Struct(item); err != nil {
		return validationFailed(c, err)
	}

	if err := h.service.UpdateItem(&item); err != nil {
		return itemMutationFailed(c, err)
	}
	return c.JSON(item)
}

// HandleToggleVisibility flips an item's visibility flag.
func (h *CatalogHandler) HandleToggleVisibility(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid item id",
		})
	}

	visible, err := h.service.ToggleVisibility(uint(id))
	if err != nil {
		return itemMutationFailed(c, err)
	}
	return c.JSON(fiber.Map{
		"id":      id,
		"visible": visible,
	})
}

// itemMutationFailed maps catalog service errors to HTTP responses.
func itemMutationFailed(c *fiber.Ctx, err error) error {
	var dup *apperr.DuplicateCodeError
	if errors.As(err, &dup) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Duplicate item code",
			"code":    dup.Code,
			"error":   dup.Error(),
		})
	}
	if errors.Is(err, apperr.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Item not found",
		})
	}
	log.Printf("Catalog mutation failed: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not update catalog",
	})
}
