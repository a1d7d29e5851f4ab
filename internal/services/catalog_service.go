package services

import (
	"errors"
	"fmt"
	"strconv"

	"sklep/internal/apperr"
	"sklep/internal/models"
	"sklep/internal/repositories"
)

// CatalogService handles business logic for the item catalog. All mutating
// operations are reachable only through the admin gate at the HTTP boundary.
type CatalogService struct {
	repo repositories.ItemRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.ItemRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// CreateItem adds a catalog item after checking each of the three business
// codes on its own. The first collision wins and the returned error names
// the offending code.
//
// The check and the insert are not atomic under concurrent admin additions;
// the unique indexes at the storage layer catch what slips through.
func (s *CatalogService) CreateItem(item *models.Item) error {
	if err := s.checkCodes(item, 0); err != nil {
		return err
	}
	item.Visible = true
	if err := s.repo.Create(item); err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// ListItems retrieves catalog items. Shoppers get visible items only; the
// admin dashboard passes includeHidden.
func (s *CatalogService) ListItems(includeHidden bool) ([]models.Item, error) {
	return s.repo.GetAll(includeHidden)
}

// GetItem retrieves a single item by ID.
func (s *CatalogService) GetItem(id uint) (*models.Item, error) {
	return s.repo.GetByID(id)
}

// UpdateItem overwrites an item's fields, re-running the code-uniqueness
// checks against every other item.
func (s *CatalogService) UpdateItem(item *models.Item) error {
	current, err := s.repo.GetByID(item.ID)
	if err != nil {
		return err
	}
	if err := s.checkCodes(item, item.ID); err != nil {
		return err
	}
	item.Visible = current.Visible // visibility changes only through ToggleVisibility
	if err := s.repo.Update(item); err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	return nil
}

// ToggleVisibility flips the item's visibility flag and returns the new
// state. This is the only retirement path; items with order history are
// never deleted.
func (s *CatalogService) ToggleVisibility(id uint) (bool, error) {
	item, err := s.repo.GetByID(id)
	if err != nil {
		return false, err
	}
	item.Visible = !item.Visible
	if err := s.repo.Update(item); err != nil {
		return false, fmt.Errorf("failed to toggle visibility of item %d: %w", id, err)
	}
	return item.Visible, nil
}

// checkCodes verifies the three business codes independently. selfID is the
// item being updated, so its own codes do not collide with themselves.
func (s *CatalogService) checkCodes(item *models.Item, selfID uint) error {
	existing, err := s.repo.FindByEANCode(item.EANCode)
	if err == nil && existing.ID != selfID {
		return &apperr.DuplicateCodeError{Code: "ean_code", Value: strconv.FormatInt(item.EANCode, 10)}
	}
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return err
	}

	existing, err = s.repo.FindByManufacturerCode(item.ManufacturerCode)
	if err == nil && existing.ID != selfID {
		return &apperr.DuplicateCodeError{Code: "manufacturer_code", Value: item.ManufacturerCode}
	}
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return err
	}

	existing, err = s.repo.FindByShopCode(item.ShopCode)
	if err == nil && existing.ID != selfID {
		return &apperr.DuplicateCodeError{Code: "shop_code", Value: strconv.FormatInt(item.ShopCode, 10)}
	}
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return err
	}
	return nil
}
