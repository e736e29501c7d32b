package services

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"mercadito/internal/domain"
	"mercadito/internal/repos"
	"mercadito/internal/validate"
)

type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Stock       int     `json:"stock"`
}

func (s *CatalogService) Create(in ProductInput, sellerID string) (*domain.Product, error) {
	if in.Name == "" || in.Description == "" || in.Image == "" {
		return nil, fmt.Errorf("%w: name, description and image are required", ErrValidation)
	}
	if in.Price < 0 || in.Stock < 0 {
		return nil, fmt.Errorf("%w: price and stock must not be negative", ErrValidation)
	}
	p := domain.Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
		Stock:       in.Stock,
		SellerID:    sellerID,
	}
	if err := s.Prods.Insert(p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *CatalogService) List() ([]domain.Product, error) {
	return s.Prods.All()
}

func (s *CatalogService) Get(id string) (domain.Product, error) {
	if _, ok := validate.ID(id); !ok {
		return domain.Product{}, ErrNotFound
	}
	p, err := s.Prods.Get(id)
	if err == sql.ErrNoRows {
		return domain.Product{}, ErrNotFound
	}
	return p, err
}

// FindByIDs is the batch lookup the cart uses to validate references before
// any mutation.
func (s *CatalogService) FindByIDs(ids []string) ([]domain.Product, error) {
	return s.Prods.ByIDs(ids)
}

type ProductUpdate struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
	Stock       *int     `json:"stock"`
}

func (s *CatalogService) Update(id string, in ProductUpdate) (*domain.Product, error) {
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
		}
		p.Price = *in.Price
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, fmt.Errorf("%w: stock must not be negative", ErrValidation)
		}
		p.Stock = *in.Stock
	}
	if err := s.Prods.Update(p); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *CatalogService) Delete(id string) error {
	if _, ok := validate.ID(id); !ok {
		return ErrNotFound
	}
	err := s.Prods.Delete(id)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return err
}
