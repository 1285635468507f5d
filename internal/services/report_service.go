package services

import (
	"sort"
	"sync"
	"time"

	"bakery/internal/clock"
	"bakery/internal/models"
	"bakery/internal/repositories"
)

const (
	dateLayout     = "2006-01-02"
	topProductsMax = 5
	unknownProduct = "Unknown"
)

// DailySummary aggregates the orders of one calendar day.
type DailySummary struct {
	Date     string         `json:"date"`
	Total    int64          `json:"total"`
	EatIn    int64          `json:"eat_in"`
	Takeaway int64          `json:"takeaway"`
	Count    int            `json:"count"`
	Orders   []models.Order `json:"orders"`
}

// ProductSales aggregates the sales of one product.
type ProductSales struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Sales     int64  `json:"sales"`
}

// HourlySales is the revenue taken during one hour of the day.
type HourlySales struct {
	Hour  int   `json:"hour"`
	Sales int64 `json:"sales"`
}

// Dashboard is the overview of a single day.
type Dashboard struct {
	Date          string         `json:"date"`
	DailySales    int64          `json:"daily_sales"`
	OrderCount    int            `json:"order_count"`
	Hourly        []HourlySales  `json:"hourly"`
	EatInSales    int64          `json:"eat_in_sales"`
	TakeawaySales int64          `json:"takeaway_sales"`
	TopProducts   []ProductSales `json:"top_products"`
	LowStock      []StockView    `json:"low_stock"`
}

// SummarizeByDay groups orders by local calendar date, newest date first.
func SummarizeByDay(orders []models.Order, loc *time.Location) []DailySummary {
	byDate := make(map[string]*DailySummary)
	for _, o := range orders {
		date := o.OrderTime.In(loc).Format(dateLayout)
		entry, ok := byDate[date]
		if !ok {
			entry = &DailySummary{Date: date}
			byDate[date] = entry
		}
		entry.Total += o.TotalAmount
		entry.Count++
		entry.Orders = append(entry.Orders, o)
		if o.OrderType == models.OrderTypeEatIn {
			entry.EatIn += o.TotalAmount
		} else {
			entry.Takeaway += o.TotalAmount
		}
	}

	out := make([]DailySummary, 0, len(byDate))
	for _, entry := range byDate {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// AnalyzeProducts totals quantity and revenue per product, best sellers by
// revenue first. Names come from the frozen order items.
func AnalyzeProducts(orders []models.Order) []ProductSales {
	byProduct := make(map[string]*ProductSales)
	for _, o := range orders {
		for _, item := range o.Items {
			entry, ok := byProduct[item.ProductID]
			if !ok {
				entry = &ProductSales{ProductID: item.ProductID, Name: item.Name}
				byProduct[item.ProductID] = entry
			}
			entry.Quantity += item.Quantity
			entry.Sales += item.UnitPrice * int64(item.Quantity)
		}
	}

	out := make([]ProductSales, 0, len(byProduct))
	for _, entry := range byProduct {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sales != out[j].Sales {
			return out[i].Sales > out[j].Sales
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out
}

// BuildDashboard computes the overview for the calendar day containing day.
// names resolves product IDs to current catalog names; lowStock is passed
// through untouched.
func BuildDashboard(orders []models.Order, day time.Time, names func(productID string) (string, bool), lowStock []StockView) Dashboard {
	loc := day.Location()
	date := day.Format(dateLayout)

	d := Dashboard{
		Date:     date,
		Hourly:   make([]HourlySales, 24),
		LowStock: lowStock,
	}
	for h := range d.Hourly {
		d.Hourly[h].Hour = h
	}

	qty := make(map[string]int)
	for _, o := range orders {
		at := o.OrderTime.In(loc)
		if at.Format(dateLayout) != date {
			continue
		}
		d.DailySales += o.TotalAmount
		d.OrderCount++
		d.Hourly[at.Hour()].Sales += o.TotalAmount
		if o.OrderType == models.OrderTypeEatIn {
			d.EatInSales += o.TotalAmount
		} else {
			d.TakeawaySales += o.TotalAmount
		}
		for _, item := range o.Items {
			qty[item.ProductID] += item.Quantity
		}
	}

	top := make([]ProductSales, 0, len(qty))
	for id, n := range qty {
		name, ok := names(id)
		if !ok {
			name = unknownProduct
		}
		top = append(top, ProductSales{ProductID: id, Name: name, Quantity: n})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Quantity != top[j].Quantity {
			return top[i].Quantity > top[j].Quantity
		}
		return top[i].ProductID < top[j].ProductID
	})
	if len(top) > topProductsMax {
		top = top[:topProductsMax]
	}
	d.TopProducts = top
	return d
}

// ReportService serves read-only projections of the order ledger. The ledger
// is append-only, so its length is a sufficient cache key.
type ReportService struct {
	mu        sync.Mutex
	orderRepo repositories.OrderRepository
	catalog   *CatalogService
	inventory *InventoryService
	clock     *clock.Clock

	cachedAt int
	daily    []DailySummary
	products []ProductSales
}

// NewReportService creates a new ReportService.
func NewReportService(orderRepo repositories.OrderRepository, catalog *CatalogService, inventory *InventoryService, clk *clock.Clock) *ReportService {
	return &ReportService{
		orderRepo: orderRepo,
		catalog:   catalog,
		inventory: inventory,
		clock:     clk,
		cachedAt:  -1,
	}
}

// DailySummary returns per-day totals, newest first.
func (s *ReportService) DailySummary() ([]DailySummary, error) {
	if err := s.refresh(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.daily, nil
}

// ProductAnalysis returns per-product totals, best sellers first.
func (s *ReportService) ProductAnalysis() ([]ProductSales, error) {
	if err := s.refresh(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products, nil
}

// Dashboard returns the overview of the terminal's current day.
func (s *ReportService) Dashboard() (Dashboard, error) {
	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return Dashboard{}, err
	}
	low, err := s.inventory.LowStock()
	if err != nil {
		return Dashboard{}, err
	}
	names := func(id string) (string, bool) {
		p, err := s.catalog.GetProductByID(id)
		if err != nil {
			return "", false
		}
		return p.Name, true
	}
	return BuildDashboard(orders, s.clock.Now(), names, low), nil
}

func (s *ReportService) refresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cachedAt == s.orderRepo.Count() {
		return nil
	}
	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return err
	}
	s.daily = SummarizeByDay(orders, s.clock.Location())
	s.products = AnalyzeProducts(orders)
	s.cachedAt = len(orders)
	return nil
}
