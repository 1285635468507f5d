package services_test

import (
	"testing"

	"bakery/internal/models"
	"bakery/internal/repositories"
	"bakery/internal/services"
	pkgerrors "bakery/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productIDs(products []models.Product) []string {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestCatalogService_Filter(t *testing.T) {
	f := newFixture(t, at(10, 0, 0))

	tests := []struct {
		name     string
		search   string
		category string
		want     []string
	}{
		{name: "everything", want: []string{bread.ID, croissant.ID, melonPan.ID, mystery.ID, beer.ID, coffee.ID, tote.ID}},
		{name: "all keyword", category: services.CategoryAll, want: []string{bread.ID, croissant.ID, melonPan.ID, mystery.ID, beer.ID, coffee.ID, tote.ID}},
		{name: "case-insensitive search", search: "CROISS", want: []string{croissant.ID}},
		{name: "category", category: "c-drink", want: []string{beer.ID, coffee.ID}},
		{name: "search within category", search: "pan", category: "c-bread", want: []string{bread.ID, melonPan.ID}},
		{name: "no match", search: "baguette", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, productIDs(f.catalog.Filter(tt.search, tt.category)))
		})
	}
}

func TestCatalogService_GetProductByID(t *testing.T) {
	f := newFixture(t, at(10, 0, 0))

	p, err := f.catalog.GetProductByID(beer.ID)
	require.NoError(t, err)
	assert.Equal(t, beer, p)

	_, err = f.catalog.GetProductByID("p-nope")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	assert.Len(t, f.catalog.GetCategories(), 3)
}

func TestNewCatalogService_RejectsInvalidCatalog(t *testing.T) {
	tests := []struct {
		name     string
		products []models.Product
	}{
		{name: "duplicate ID", products: []models.Product{bread, bread}},
		{name: "unknown type", products: []models.Product{{ID: "p-x", Name: "X", Type: "furniture"}}},
		{name: "negative price", products: []models.Product{{ID: "p-x", Name: "X", Type: models.ProductTypeFood, Price: -1}}},
		{name: "missing name", products: []models.Product{{ID: "p-x", Type: models.ProductTypeFood}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := services.NewCatalogService(repositories.NewMockCatalogRepository(nil, tt.products, nil))
			assert.Error(t, err)
		})
	}
}
