package backend

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserProfile mirrors the backend's user serializer.
type UserProfile struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Product as served by the backend. Price arrives as a JSON string
// (decimal field); shopspring handles both string and number forms.
type Product struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Category     int64           `json:"category"`
	CategoryName string          `json:"category_name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	Image        string          `json:"image"`
	Barcode      string          `json:"barcode"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type Customer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type SaleItem struct {
	ID          int64           `json:"id"`
	Product     int64           `json:"product"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

type Sale struct {
	ID            int64           `json:"id"`
	ReferenceNo   string          `json:"reference_no"`
	Customer      *int64          `json:"customer"`
	CustomerName  string          `json:"customer_name"`
	User          int64           `json:"user"`
	UserName      string          `json:"user_name"`
	Status        string          `json:"status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	ChangeAmount  decimal.Decimal `json:"change_amount"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Items         []SaleItem      `json:"items"`
}

// DashboardStats aggregates the numbers shown on the dashboard screen.
type DashboardStats struct {
	TodaySalesCount  int             `json:"today_sales_count"`
	TodaySalesAmount decimal.Decimal `json:"today_sales_amount"`
	TotalProducts    int             `json:"total_products"`
	TotalCategories  int             `json:"total_categories"`
	TotalCustomers   int             `json:"total_customers"`
	LowStock         int             `json:"low_stock"`
	TopProducts      []TopProduct    `json:"top_products"`
}

type TopProduct struct {
	ProductName string `json:"product__name"`
	Sold        int    `json:"sold"`
}

// SalesPoint is one bucket in the daily/weekly/monthly sales series.
type SalesPoint struct {
	Date      string          `json:"date,omitempty"`
	Day       string          `json:"day,omitempty"`
	Week      string          `json:"week,omitempty"`
	StartDate string          `json:"start_date,omitempty"`
	EndDate   string          `json:"end_date,omitempty"`
	Month     string          `json:"month,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Count     int             `json:"count"`
}

// RegisterInput carries the fields accepted by POST /api/register/.
type RegisterInput struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// ProfileUpdate carries the mutable profile fields for PUT /api/profile/.
type ProfileUpdate struct {
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Password  string `json:"password,omitempty"`
}
