package services

import (
	"fmt"
	"strings"

	"bakery/internal/models"
	"bakery/internal/repositories"
	pkgerrors "bakery/pkg/errors"

	"github.com/go-playground/validator/v10"
)

// CategoryAll selects every category in Filter.
const CategoryAll = "all"

// CatalogService holds the catalog snapshot loaded at session start.
type CatalogService struct {
	products   []models.Product
	byID       map[string]models.Product
	categories []models.Category
}

// NewCatalogService loads and validates the catalog once. There is no live refresh.
func NewCatalogService(repo repositories.CatalogRepository) (*CatalogService, error) {
	products, err := repo.ListProducts()
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	categories, err := repo.ListCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	validate := validator.New()
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		if err := validate.Struct(p); err != nil {
			return nil, fmt.Errorf("invalid product %q: %w", p.ID, err)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product ID %q", p.ID)
		}
		byID[p.ID] = p
	}
	for _, c := range categories {
		if err := validate.Struct(c); err != nil {
			return nil, fmt.Errorf("invalid category %q: %w", c.ID, err)
		}
	}

	return &CatalogService{
		products:   products,
		byID:       byID,
		categories: categories,
	}, nil
}

// GetAllProducts returns the catalog in provider order.
func (s *CatalogService) GetAllProducts() []models.Product {
	return append([]models.Product(nil), s.products...)
}

// GetProductByID returns a single product.
func (s *CatalogService) GetProductByID(id string) (models.Product, error) {
	p, ok := s.byID[id]
	if !ok {
		return models.Product{}, pkgerrors.Newf(pkgerrors.CodeNotFound, "product with ID %s not found", id)
	}
	return p, nil
}

// GetCategories returns all categories.
func (s *CatalogService) GetCategories() []models.Category {
	return append([]models.Category(nil), s.categories...)
}

// Filter returns products whose name contains search (case-insensitive) and
// that belong to categoryID. An empty categoryID or CategoryAll matches everything.
func (s *CatalogService) Filter(search, categoryID string) []models.Product {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if categoryID != "" && categoryID != CategoryAll && p.CategoryID != categoryID {
			continue
		}
		out = append(out, p)
	}
	return out
}
