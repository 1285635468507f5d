package services_test

import (
	"testing"
	"time"

	"bakery/internal/clock"
	"bakery/internal/models"
	"bakery/internal/policy"
	"bakery/internal/repositories"
	"bakery/internal/services"
	"bakery/pkg/logger"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(eventType string, payload any) error {
	args := m.Called(eventType, payload)
	return args.Error(0)
}

var (
	bread     = models.Product{ID: "p-bread", Name: "Shokupan", Price: 300, CategoryID: "c-bread", Type: models.ProductTypeFood, IsActive: true}
	croissant = models.Product{ID: "p-croissant", Name: "Croissant", Price: 250, CategoryID: "c-bread", Type: models.ProductTypeFood, IsActive: true}
	melonPan  = models.Product{ID: "p-melon", Name: "Melon Pan", Price: 220, CategoryID: "c-bread", Type: models.ProductTypeFood, IsActive: true}
	mystery   = models.Product{ID: "p-mystery", Name: "Seasonal Special", Price: 500, CategoryID: "c-bread", Type: models.ProductTypeFood, IsActive: true}
	beer      = models.Product{ID: "p-beer", Name: "Craft Beer", Price: 600, CategoryID: "c-drink", Type: models.ProductTypeAlcohol, IsAlcoholic: true, IsActive: true}
	coffee    = models.Product{ID: "p-coffee", Name: "Coffee", Price: 400, CategoryID: "c-drink", Type: models.ProductTypeDrink, IsActive: true}
	tote      = models.Product{ID: "p-tote", Name: "Tote Bag", Price: 1500, CategoryID: "c-goods", Type: models.ProductTypeMerchandise, IsActive: true}
)

type fixture struct {
	clock     *clock.Clock
	publisher *MockPublisher
	orderRepo *repositories.MemoryOrderRepository
	invRepo   *repositories.MemoryInventoryRepository
	catalog   *services.CatalogService
	inventory *services.InventoryService
	cart      *services.CartService
	session   *services.SessionService
	orders    *services.OrderService
	restock   *services.RestockService
	reports   *services.ReportService
}

// at returns 2026-04-01 hh:mm:ss UTC.
func at(hour, minute, second int) time.Time {
	return time.Date(2026, 4, 1, hour, minute, second, 0, time.UTC)
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()

	catalogRepo := repositories.NewMockCatalogRepository(
		[]models.Category{{ID: "c-bread", Name: "Bread"}, {ID: "c-drink", Name: "Drinks"}, {ID: "c-goods", Name: "Goods"}},
		[]models.Product{bread, croissant, melonPan, mystery, beer, coffee, tote},
		nil,
	)
	catalog, err := services.NewCatalogService(catalogRepo)
	require.NoError(t, err)

	clk := clock.New(time.UTC, clock.WithNowFunc(func() time.Time { return now }))
	clk.SetSimulated(now)

	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	log := logger.Nop()
	invRepo := repositories.NewMemoryInventoryRepository([]models.InventoryRecord{
		{ProductID: bread.ID, CurrentQuantity: 5, MinThreshold: 3},
		{ProductID: croissant.ID, CurrentQuantity: 1, MinThreshold: 2},
		{ProductID: melonPan.ID, CurrentQuantity: 2, MinThreshold: 4},
		{ProductID: tote.ID, CurrentQuantity: 0, MinThreshold: 0},
	})
	orderRepo := repositories.NewMemoryOrderRepository()
	gates := policy.DefaultGates()

	inventory := services.NewInventoryService(invRepo, catalog, clk, publisher, nil, log)
	cart := services.NewCartService(catalog, inventory, clk, gates, nil, log)

	return &fixture{
		clock:     clk,
		publisher: publisher,
		orderRepo: orderRepo,
		invRepo:   invRepo,
		catalog:   catalog,
		inventory: inventory,
		cart:      cart,
		session:   services.NewSessionService(clk, gates, log),
		orders:    services.NewOrderService(orderRepo, cart, inventory, clk, publisher, nil, 0, log),
		restock:   services.NewRestockService(repositories.NewMemoryRestockRepository(), catalog, inventory, clk, publisher, log),
		reports:   services.NewReportService(orderRepo, catalog, inventory, clk),
	}
}

func (f *fixture) stock(t *testing.T, productID string) int {
	t.Helper()
	rec, err := f.invRepo.GetByProductID(productID)
	require.NoError(t, err)
	return rec.CurrentQuantity
}
