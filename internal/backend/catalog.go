package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

// CatalogService exposes the product and category endpoints through the
// resilient client.
type CatalogService struct {
	rc *Resilient
}

func NewCatalogService(rc *Resilient) *CatalogService {
	return &CatalogService{rc: rc}
}

// ProductInput is the writable subset of a product.
type ProductInput struct {
	Name        string          `json:"name"`
	Category    int64           `json:"category"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Barcode     string          `json:"barcode,omitempty"`
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := s.rc.Do(ctx, http.MethodGet, "/api/products/", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var p Product
	if err := s.rc.Do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d/", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	var p Product
	if err := s.rc.Do(ctx, http.MethodPost, "/api/products/", input, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, input ProductInput) (*Product, error) {
	var p Product
	if err := s.rc.Do(ctx, http.MethodPut, fmt.Sprintf("/api/products/%d/", id), input, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	return s.rc.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/products/%d/", id), nil, nil)
}

func (s *CatalogService) SearchProducts(ctx context.Context, query string) ([]Product, error) {
	params := url.Values{"q": {query}}
	var products []Product
	if err := s.rc.Do(ctx, http.MethodGet, queryPath("/api/products/search/", params), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *CatalogService) ProductsByCategory(ctx context.Context, categoryID int64) ([]Product, error) {
	var products []Product
	path := fmt.Sprintf("/api/products/category/%d/", categoryID)
	if err := s.rc.Do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := s.rc.Do(ctx, http.MethodGet, "/api/categories/", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id int64) (*Category, error) {
	var c Category
	if err := s.rc.Do(ctx, http.MethodGet, fmt.Sprintf("/api/categories/%d/", id), nil, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, input CategoryInput) (*Category, error) {
	var c Category
	if err := s.rc.Do(ctx, http.MethodPost, "/api/categories/", input, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id int64, input CategoryInput) (*Category, error) {
	var c Category
	if err := s.rc.Do(ctx, http.MethodPut, fmt.Sprintf("/api/categories/%d/", id), input, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	return s.rc.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/categories/%d/", id), nil, nil)
}
