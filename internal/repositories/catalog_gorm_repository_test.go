package repositories_test

import (
	"fmt"
	"testing"
	"time"

	"bakery/internal/models"
	"bakery/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db
}

func TestGORMCatalogRepository_SeedAndList(t *testing.T) {
	repo := repositories.NewGORMCatalogRepository(openTestDB(t))
	require.NoError(t, repo.Migrate())

	categories := []models.Category{{ID: "cat-bread", Name: "Bread"}, {ID: "cat-drink", Name: "Drinks"}}
	products := []models.Product{
		{ID: "p-melon", Name: "Melon Pan", Price: 220, CategoryID: "cat-bread", Type: models.ProductTypeFood, IsActive: true},
		{ID: "p-beer", Name: "Craft Beer", Price: 600, CategoryID: "cat-drink", Type: models.ProductTypeAlcohol, IsAlcoholic: true, IsActive: true},
	}
	stock := []models.InventoryRecord{{ProductID: "p-melon", CurrentQuantity: 12, MinThreshold: 5, LastUpdated: time.Now()}}

	require.NoError(t, repo.Seed(categories, products, stock))

	gotProducts, err := repo.ListProducts()
	require.NoError(t, err)
	assert.Len(t, gotProducts, 2)
	assert.Equal(t, "p-melon", gotProducts[0].ID)
	assert.True(t, gotProducts[1].IsAlcoholic)

	gotCategories, err := repo.ListCategories()
	require.NoError(t, err)
	assert.Equal(t, []models.Category{{ID: "cat-bread", Name: "Bread"}, {ID: "cat-drink", Name: "Drinks"}}, gotCategories)

	gotStock, err := repo.ListInventory()
	require.NoError(t, err)
	require.Len(t, gotStock, 1)
	assert.Equal(t, 12, gotStock[0].CurrentQuantity)
	assert.Equal(t, 5, gotStock[0].MinThreshold)
}

func TestGORMCatalogRepository_SeedIsIdempotent(t *testing.T) {
	repo := repositories.NewGORMCatalogRepository(openTestDB(t))
	require.NoError(t, repo.Migrate())

	products := []models.Product{{ID: "p-1", Name: "Anpan", Price: 180, Type: models.ProductTypeFood}}
	require.NoError(t, repo.Seed(nil, products, nil))

	products[0].Price = 200
	require.NoError(t, repo.Seed(nil, products, nil))

	got, err := repo.ListProducts()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(200), got[0].Price)
}

func TestGORMStaffRepository(t *testing.T) {
	repo := repositories.NewGORMStaffRepository(openTestDB(t))
	require.NoError(t, repo.Migrate())

	staff := &models.Staff{Username: "hanako", Password: "hashed"}
	require.NoError(t, repo.Create(staff))
	assert.NotEmpty(t, staff.ID)

	byName, err := repo.GetByUsername("hanako")
	require.NoError(t, err)
	assert.Equal(t, staff.ID, byName.ID)

	byID, err := repo.GetByID(staff.ID)
	require.NoError(t, err)
	assert.Equal(t, "hanako", byID.Username)

	_, err = repo.GetByUsername("nobody")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	err = repo.Create(&models.Staff{Username: "hanako", Password: "x"})
	assert.Error(t, err, "usernames are unique")
}
