package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// CustomerService exposes the customer endpoints through the resilient
// client.
type CustomerService struct {
	rc *Resilient
}

func NewCustomerService(rc *Resilient) *CustomerService {
	return &CustomerService{rc: rc}
}

type CustomerInput struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

func (s *CustomerService) List(ctx context.Context) ([]Customer, error) {
	var customers []Customer
	if err := s.rc.Do(ctx, http.MethodGet, "/api/customers/", nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (s *CustomerService) Get(ctx context.Context, id int64) (*Customer, error) {
	var c Customer
	if err := s.rc.Do(ctx, http.MethodGet, fmt.Sprintf("/api/customers/%d/", id), nil, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CustomerService) Create(ctx context.Context, input CustomerInput) (*Customer, error) {
	var c Customer
	if err := s.rc.Do(ctx, http.MethodPost, "/api/customers/", input, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CustomerService) Update(ctx context.Context, id int64, input CustomerInput) (*Customer, error) {
	var c Customer
	if err := s.rc.Do(ctx, http.MethodPut, fmt.Sprintf("/api/customers/%d/", id), input, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	return s.rc.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/customers/%d/", id), nil, nil)
}

func (s *CustomerService) Search(ctx context.Context, query string) ([]Customer, error) {
	params := url.Values{"q": {query}}
	var customers []Customer
	if err := s.rc.Do(ctx, http.MethodGet, queryPath("/api/customers/search/", params), nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}
