package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"electra/internal/domain"
	"electra/internal/services"
)

func TestAnalyticsSummary(t *testing.T) {
	db := memdb(t)
	analytics := services.NewAnalyticsService(db)

	// Empty database: all zeros, no division by zero
	sum, err := analytics.Summary()
	require.NoError(t, err)
	require.Zero(t, sum.TotalOrders)
	require.Zero(t, sum.TotalSales)
	require.Zero(t, sum.AverageOrderValue)
	require.Zero(t, sum.PendingOrders)

	svc, prods, _ := newOrderService(t, db)
	seedProduct(t, prods, "fan-basic", 100)
	item := func(qty int, price float64) domain.OrderItem {
		return domain.OrderItem{ProductID: "fan-basic", ProductName: "Ceiling Fan", Quantity: qty, Price: price}
	}

	first, _, err := svc.Create(orderInput(item(2, 100))) // total 200
	require.NoError(t, err)
	_, _, err = svc.Create(orderInput(item(1, 100))) // total 100
	require.NoError(t, err)

	// Move one order out of pending
	dispatched := domain.StatusDispatched
	_, err = svc.Update(first.ID, services.OrderUpdate{Status: &dispatched})
	require.NoError(t, err)

	sum, err = analytics.Summary()
	require.NoError(t, err)
	require.Equal(t, 2, sum.TotalOrders)
	require.Equal(t, 300.0, sum.TotalSales)
	require.Equal(t, 150.0, sum.AverageOrderValue)
	require.Equal(t, 1, sum.PendingOrders)
}

func TestAnalyticsSalesByCategory(t *testing.T) {
	db := memdb(t)
	analytics := services.NewAnalyticsService(db)
	svc, prods, _ := newOrderService(t, db)

	fan := domain.Product{ID: "fan-basic", Name: "Ceiling Fan", Description: "fan", Price: 100, Category: "fans", Stock: 100}
	require.NoError(t, prods.Create(&fan))
	wire := domain.Product{ID: "wire-1mm", Name: "Copper Wire 1mm", Description: "wire", Price: 40, Category: "wires", Stock: 100}
	require.NoError(t, prods.Create(&wire))

	_, _, err := svc.Create(orderInput(
		domain.OrderItem{ProductID: "fan-basic", ProductName: "Ceiling Fan", Quantity: 2, Price: 100},
		domain.OrderItem{ProductID: "wire-1mm", ProductName: "Copper Wire 1mm", Quantity: 3, Price: 40},
	))
	require.NoError(t, err)

	rows, err := analytics.SalesByCategory()
	require.NoError(t, err)

	byCat := map[string]float64{}
	for _, r := range rows {
		byCat[r.Category] = r.Amount
	}
	require.Equal(t, 200.0, byCat["fans"])
	require.Equal(t, 120.0, byCat["wires"])
}
