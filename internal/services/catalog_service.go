package services

import (
	"electra/internal/domain"
	applog "electra/internal/log"
	"electra/internal/media"
	"electra/internal/repos"
	"electra/internal/validate"

	"github.com/google/uuid"
)

type CatalogService struct {
	Products *repos.ProductRepo
	Media    *media.Store
}

func NewCatalogService(products *repos.ProductRepo, store *media.Store) *CatalogService {
	return &CatalogService{Products: products, Media: store}
}

type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	Image       string  `json:"image"`
}

func (s *CatalogService) Create(in ProductInput) (domain.Product, error) {
	var details []string
	name, ok := validate.Name(in.Name)
	if !ok {
		details = append(details, "name is required")
	}
	if in.Description == "" {
		details = append(details, "description is required")
	}
	if in.Price < 0 {
		details = append(details, "price must not be negative")
	}
	cat, ok := validate.Category(in.Category)
	if !ok {
		details = append(details, "category must be one of the known categories")
	}
	if in.Stock < 0 {
		details = append(details, "stock must not be negative")
	}
	if err := validationErr(details); err != nil {
		return domain.Product{}, err
	}

	p := domain.Product{
		ID:          uuid.NewString(),
		Name:        name,
		Description: in.Description,
		Price:       in.Price,
		Category:    cat,
		Stock:       in.Stock,
		Image:       in.Image,
	}
	if err := s.Products.Create(&p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

type ProductUpdate struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Stock       *int     `json:"stock"`
	Image       *string  `json:"image"`
}

// Update applies a partial update. A stock write here is a direct overwrite
// with no version check; it can race with an order-side decrement and the
// last write wins.
func (s *CatalogService) Update(id string, in ProductUpdate) (domain.Product, error) {
	p, err := s.Products.Get(id)
	if err != nil {
		return domain.Product{}, err
	}

	var details []string
	if in.Name != nil {
		if v, ok := validate.Name(*in.Name); ok {
			p.Name = v
		} else {
			details = append(details, "name is required")
		}
	}
	if in.Description != nil {
		if *in.Description == "" {
			details = append(details, "description is required")
		} else {
			p.Description = *in.Description
		}
	}
	if in.Price != nil {
		if *in.Price < 0 {
			details = append(details, "price must not be negative")
		} else {
			p.Price = *in.Price
		}
	}
	if in.Category != nil {
		if v, ok := validate.Category(*in.Category); ok {
			p.Category = v
		} else {
			details = append(details, "category must be one of the known categories")
		}
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			details = append(details, "stock must not be negative")
		} else {
			p.Stock = *in.Stock
		}
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if err := validationErr(details); err != nil {
		return domain.Product{}, err
	}

	if err := s.Products.Update(p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *CatalogService) Delete(id string) error {
	p, err := s.Products.Get(id)
	if err != nil {
		return err
	}
	if p.Image != "" {
		if err := s.Media.Delete(p.Image); err != nil {
			applog.Error(nil, "product.image.delete", err, map[string]any{"product_id": id, "image": p.Image})
		}
	}
	return s.Products.Delete(id)
}

func (s *CatalogService) Get(id string) (domain.Product, error) {
	return s.Products.Get(id)
}

func (s *CatalogService) List(q string) ([]domain.Product, error) {
	return s.Products.List(q)
}

func (s *CatalogService) ListByCategory(category string) ([]domain.Product, error) {
	return s.Products.ListByCategory(category)
}
