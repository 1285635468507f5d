package main

import (
	"fmt"
	"time"

	"bakery/internal/models"
	"bakery/internal/repositories"
)

var seedCategories = []models.Category{
	{ID: "cat-bread", Name: "Bread"},
	{ID: "cat-pastry", Name: "Pastry"},
	{ID: "cat-sandwich", Name: "Sandwich"},
	{ID: "cat-drink", Name: "Drinks"},
	{ID: "cat-alcohol", Name: "Alcohol"},
	{ID: "cat-goods", Name: "Goods"},
}

var seedProducts = []models.Product{
	{ID: "p-shokupan", Name: "Shokupan", Price: 480, CategoryID: "cat-bread", Type: models.ProductTypeFood, IsActive: true},
	{ID: "p-baguette", Name: "Baguette", Price: 350, CategoryID: "cat-bread", Type: models.ProductTypeFood, IsActive: true},
	{ID: "p-melon-pan", Name: "Melon Pan", Price: 220, CategoryID: "cat-pastry", Type: models.ProductTypeFood, IsActive: true},
	{ID: "p-croissant", Name: "Croissant", Price: 250, CategoryID: "cat-pastry", Type: models.ProductTypeFood, IsActive: true},
	{ID: "p-an-pan", Name: "An Pan", Price: 200, CategoryID: "cat-pastry", Type: models.ProductTypeFood, IsActive: true},
	{ID: "p-curry-pan", Name: "Curry Pan", Price: 260, CategoryID: "cat-pastry", Type: models.ProductTypeFood, IsActive: true},
	{ID: "p-katsu-sando", Name: "Katsu Sando", Price: 580, CategoryID: "cat-sandwich", Type: models.ProductTypeFood, IsActive: true},
	{ID: "p-tamago-sando", Name: "Tamago Sando", Price: 420, CategoryID: "cat-sandwich", Type: models.ProductTypeFood, IsActive: true},
	{ID: "p-coffee", Name: "Blend Coffee", Price: 400, CategoryID: "cat-drink", Type: models.ProductTypeDrink, IsActive: true},
	{ID: "p-cafe-latte", Name: "Cafe Latte", Price: 480, CategoryID: "cat-drink", Type: models.ProductTypeDrink, IsActive: true},
	{ID: "p-craft-beer", Name: "Craft Beer", Price: 700, CategoryID: "cat-alcohol", Type: models.ProductTypeAlcohol, IsAlcoholic: true, IsActive: true},
	{ID: "p-red-wine", Name: "Glass of Red Wine", Price: 650, CategoryID: "cat-alcohol", Type: models.ProductTypeAlcohol, IsAlcoholic: true, IsActive: true},
	{ID: "p-tote-bag", Name: "Tote Bag", Price: 1500, CategoryID: "cat-goods", Type: models.ProductTypeMerchandise, IsActive: true},
}

func seedStock(now time.Time) []models.InventoryRecord {
	levels := map[string][2]int{ // current, threshold
		"p-shokupan":     {12, 4},
		"p-baguette":     {8, 3},
		"p-melon-pan":    {20, 6},
		"p-croissant":    {15, 5},
		"p-an-pan":       {10, 4},
		"p-curry-pan":    {3, 4},
		"p-katsu-sando":  {6, 2},
		"p-tamago-sando": {5, 2},
		"p-tote-bag":     {4, 1},
	}
	records := make([]models.InventoryRecord, 0, len(levels))
	for _, p := range seedProducts {
		lvl, ok := levels[p.ID]
		if !ok {
			continue
		}
		records = append(records, models.InventoryRecord{
			ProductID:       p.ID,
			CurrentQuantity: lvl[0],
			MinThreshold:    lvl[1],
			LastUpdated:     now,
		})
	}
	return records
}

// seedCatalog upserts the demo catalog and its opening stock.
func seedCatalog(repo *repositories.GORMCatalogRepository) error {
	if err := repo.Seed(seedCategories, seedProducts, seedStock(time.Now())); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	return nil
}
