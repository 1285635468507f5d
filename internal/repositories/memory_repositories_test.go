package repositories_test

import (
	"testing"
	"time"

	"bakery/internal/models"
	"bakery/internal/repositories"
	pkgerrors "bakery/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryInventoryRepository(t *testing.T) {
	repo := repositories.NewMemoryInventoryRepository([]models.InventoryRecord{
		{ProductID: "b", CurrentQuantity: 3},
		{ProductID: "a", CurrentQuantity: 1},
	})

	all, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ProductID)

	rec, err := repo.GetByProductID("b")
	require.NoError(t, err)
	rec.CurrentQuantity = 99 // callers get a copy

	again, _ := repo.GetByProductID("b")
	assert.Equal(t, 3, again.CurrentQuantity)

	require.NoError(t, repo.Save(models.InventoryRecord{ProductID: "b", CurrentQuantity: 7}))
	again, _ = repo.GetByProductID("b")
	assert.Equal(t, 7, again.CurrentQuantity)

	_, err = repo.GetByProductID("zzz")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestMemoryOrderRepository_AppendOnly(t *testing.T) {
	repo := repositories.NewMemoryOrderRepository()
	assert.Equal(t, 0, repo.Count())

	first := models.Order{ID: "ORD-1", OrderTime: time.Now(), Items: []models.OrderItem{{ProductID: "p", Quantity: 1, UnitPrice: 100}}}
	second := models.Order{ID: "ORD-2", OrderTime: time.Now()}
	require.NoError(t, repo.Append(first))
	require.NoError(t, repo.Append(second))
	assert.Equal(t, 2, repo.Count())

	all, err := repo.GetAll()
	require.NoError(t, err)
	assert.Equal(t, "ORD-2", all[0].ID, "most recent first")
	assert.Equal(t, "ORD-1", all[1].ID)

	all[1].Items[0].Quantity = 50
	stored, err := repo.GetByID("ORD-1")
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Items[0].Quantity, "ledger entries cannot be mutated through reads")

	err = repo.Append(first)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))
	assert.Equal(t, 2, repo.Count())

	_, err = repo.GetByID("ORD-404")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestMemoryRestockRepository(t *testing.T) {
	repo := repositories.NewMemoryRestockRepository()
	require.NoError(t, repo.Create(models.RestockRequest{ID: "FR-1", Status: models.RestockStatusPending}))
	require.NoError(t, repo.Create(models.RestockRequest{ID: "FR-2", Status: models.RestockStatusPending}))

	all, err := repo.GetAll()
	require.NoError(t, err)
	assert.Equal(t, "FR-2", all[0].ID)

	require.NoError(t, repo.Update(models.RestockRequest{ID: "FR-1", Status: models.RestockStatusCancelled}))
	got, err := repo.GetByID("FR-1")
	require.NoError(t, err)
	assert.Equal(t, models.RestockStatusCancelled, got.Status)

	err = repo.Update(models.RestockRequest{ID: "FR-9"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestMockCatalogRepository(t *testing.T) {
	repo := repositories.NewMockCatalogRepository(
		[]models.Category{{ID: "2", Name: "Sweets"}, {ID: "1", Name: "Bread"}},
		[]models.Product{{ID: "p1", Name: "Curry Pan"}},
		[]models.InventoryRecord{{ProductID: "p1", CurrentQuantity: 4}},
	)

	categories, err := repo.ListCategories()
	require.NoError(t, err)
	assert.Equal(t, "Bread", categories[0].Name)

	products, _ := repo.ListProducts()
	assert.Len(t, products, 1)
	stock, _ := repo.ListInventory()
	assert.Equal(t, 4, stock[0].CurrentQuantity)
}
