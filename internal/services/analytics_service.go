package services

import (
	"electra/internal/domain"

	"github.com/jmoiron/sqlx"
)

type AnalyticsService struct {
	db *sqlx.DB
}

func NewAnalyticsService(db *sqlx.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

type AnalyticsSummary struct {
	TotalOrders       int     `json:"totalOrders"`
	TotalSales        float64 `json:"totalSales"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	PendingOrders     int     `json:"pendingOrders"`
}

func (s *AnalyticsService) Summary() (AnalyticsSummary, error) {
	var out AnalyticsSummary
	row := struct {
		Count   int     `db:"count"`
		Sales   float64 `db:"sales"`
		Pending int     `db:"pending"`
	}{}
	if err := s.db.Get(&row, `
		SELECT
		  COUNT(*)                                             AS count,
		  COALESCE(SUM(total), 0)                              AS sales,
		  COALESCE(SUM(CASE WHEN status = ? THEN 1 END), 0)    AS pending
		FROM orders
	`, domain.StatusPending); err != nil {
		return AnalyticsSummary{}, err
	}
	out.TotalOrders = row.Count
	out.TotalSales = row.Sales
	out.PendingOrders = row.Pending
	if row.Count > 0 {
		out.AverageOrderValue = row.Sales / float64(row.Count)
	}
	return out, nil
}

type CategorySales struct {
	Category string  `db:"category" json:"category"`
	Amount   float64 `db:"amount" json:"amount"`
}

// SalesByCategory sums order line revenue per product category. Line items
// whose product has since been deleted are not attributable and are left out.
func (s *AnalyticsService) SalesByCategory() ([]CategorySales, error) {
	out := []CategorySales{}
	err := s.db.Select(&out, `
		SELECT p.category, SUM(oi.quantity * oi.price) AS amount
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		GROUP BY p.category
		ORDER BY amount DESC
	`)
	return out, err
}
