package handlers

import (
	"electra/internal/media"
	"electra/internal/repos"
	"electra/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	OrderHandler     *OrderHandler
	ProductHandler   *ProductHandler
	StaffHandler     *StaffHandler
	AnalyticsHandler *AnalyticsHandler
}

func NewDeps(db *sqlx.DB, store *media.Store, auth *services.AuthService) *Deps {
	orderRepo := repos.NewOrderRepo(db)
	prodRepo := repos.NewProductRepo(db)
	staffRepo := repos.NewStaffRepo(db)

	orderSvc := services.NewOrderService(orderRepo, staffRepo, store)
	catalogSvc := services.NewCatalogService(prodRepo, store)
	staffSvc := services.NewStaffService(staffRepo)
	analyticsSvc := services.NewAnalyticsService(db)

	return &Deps{
		OrderHandler:     &OrderHandler{Orders: orderSvc, Media: store},
		ProductHandler:   &ProductHandler{Catalog: catalogSvc, Media: store},
		StaffHandler:     &StaffHandler{Auth: auth, Staff: staffSvc},
		AnalyticsHandler: &AnalyticsHandler{Analytics: analyticsSvc},
	}
}
