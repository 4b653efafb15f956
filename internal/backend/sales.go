package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// SalesService exposes the sale and dashboard endpoints through the
// resilient client.
type SalesService struct {
	rc *Resilient
}

func NewSalesService(rc *Resilient) *SalesService {
	return &SalesService{rc: rc}
}

// SaleLineInput is one line of a sale submission.
type SaleLineInput struct {
	Product  int64           `json:"product"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// CreateSaleInput is the payload for POST /api/sales/create/.
type CreateSaleInput struct {
	Customer      *int64          `json:"customer"`
	Status        string          `json:"status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	ChangeAmount  decimal.Decimal `json:"change_amount"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes"`
	Items         []SaleLineInput `json:"items"`
}

// ListFilter narrows the sales listing.
type ListFilter struct {
	Page      int
	StartDate string
	EndDate   string
	Status    string
}

func (f ListFilter) values() url.Values {
	params := url.Values{}
	page := f.Page
	if page < 1 {
		page = 1
	}
	params.Set("page", strconv.Itoa(page))
	if f.StartDate != "" && f.EndDate != "" {
		params.Set("start_date", f.StartDate)
		params.Set("end_date", f.EndDate)
	}
	if f.Status != "" {
		params.Set("status", f.Status)
	}
	return params
}

func (s *SalesService) List(ctx context.Context, filter ListFilter) ([]Sale, error) {
	var sales []Sale
	if err := s.rc.Do(ctx, http.MethodGet, queryPath("/api/sales/", filter.values()), nil, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

func (s *SalesService) Get(ctx context.Context, id int64) (*Sale, error) {
	var sale Sale
	if err := s.rc.Do(ctx, http.MethodGet, fmt.Sprintf("/api/sales/%d/", id), nil, &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}

// Create submits a finished sale and returns it as recorded by the
// backend, reference number included.
func (s *SalesService) Create(ctx context.Context, input CreateSaleInput) (*Sale, error) {
	var sale Sale
	if err := s.rc.Do(ctx, http.MethodPost, "/api/sales/create/", input, &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}

func (s *SalesService) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := s.rc.Do(ctx, http.MethodGet, "/api/dashboard/stats/", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *SalesService) DailySales(ctx context.Context) ([]SalesPoint, error) {
	var points []SalesPoint
	if err := s.rc.Do(ctx, http.MethodGet, "/api/dashboard/sales/daily/", nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (s *SalesService) WeeklySales(ctx context.Context) ([]SalesPoint, error) {
	var points []SalesPoint
	if err := s.rc.Do(ctx, http.MethodGet, "/api/dashboard/sales/weekly/", nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (s *SalesService) MonthlySales(ctx context.Context) ([]SalesPoint, error) {
	var points []SalesPoint
	if err := s.rc.Do(ctx, http.MethodGet, "/api/dashboard/sales/monthly/", nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}
