package checkout

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CheckoutHandler defines the cart endpoints exposed to the UI layer
type CheckoutHandler interface {
	GetCart(c *gin.Context)
	AddItem(c *gin.Context)
	UpdateQuantity(c *gin.Context)
	RemoveItem(c *gin.Context)
	ClearCart(c *gin.Context)
	Summary(c *gin.Context)
	SetCustomer(c *gin.Context)
	SetPaymentMethod(c *gin.Context)
	SetNotes(c *gin.Context)
	Submit(c *gin.Context)
}

// AddItemRequest adds a product to the cart. The product is looked up in
// the catalog so the cart records the price the server quotes right now.
type AddItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity"`
}

// UpdateQuantityRequest replaces a line's quantity
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SetCustomerRequest attaches a customer; null detaches
type SetCustomerRequest struct {
	CustomerID *int64 `json:"customer_id"`
}

// SetPaymentMethodRequest selects how the sale is settled
type SetPaymentMethodRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// SetNotesRequest replaces the sale notes
type SetNotesRequest struct {
	Notes string `json:"notes"`
}

// SubmitRequest finalizes the sale with the amounts tendered
type SubmitRequest struct {
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	ChangeAmount decimal.Decimal `json:"change_amount"`
}
