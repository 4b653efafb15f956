package checkout

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Kiash254/pos-terminal/internal/backend"
	"github.com/Kiash254/pos-terminal/internal/cart"
	"github.com/Kiash254/pos-terminal/pkg/logger"
	"github.com/Kiash254/pos-terminal/pkg/response"
)

type handler struct {
	cart    *cart.Engine
	catalog *backend.CatalogService
	sales   *backend.SalesService
	logger  logger.Logger
}

// NewHandler creates a new instance of CheckoutHandler
func NewHandler(e *cart.Engine, catalog *backend.CatalogService, sales *backend.SalesService, l logger.Logger) CheckoutHandler {
	return &handler{cart: e, catalog: catalog, sales: sales, logger: l}
}

func (h *handler) GetCart(c *gin.Context) {
	response.Success(c, gin.H{
		"items": h.cart.Items(),
		"total": h.cart.Total(),
	})
}

func (h *handler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	// Fetch the product so the line records today's catalog price.
	product, err := h.catalog.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		c.Error(err)
		return
	}

	err = h.cart.AddItem(c.Request.Context(), cart.Product{
		ID:    product.ID,
		Name:  product.Name,
		Price: product.Price,
	}, req.Quantity)
	if err != nil {
		c.Error(err)
		return
	}

	h.GetCart(c)
}

func (h *handler) UpdateQuantity(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid product id")
		return
	}
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	h.cart.UpdateQuantity(c.Request.Context(), productID, req.Quantity)
	h.GetCart(c)
}

func (h *handler) RemoveItem(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid product id")
		return
	}

	h.cart.RemoveItem(c.Request.Context(), productID)
	h.GetCart(c)
}

func (h *handler) ClearCart(c *gin.Context) {
	h.cart.Clear(c.Request.Context())
	response.Success(c, gin.H{"items": []cart.Line{}, "total": h.cart.Total()})
}

func (h *handler) Summary(c *gin.Context) {
	response.Success(c, h.cart.Summary())
}

func (h *handler) SetCustomer(c *gin.Context) {
	var req SetCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	h.cart.SetCustomer(c.Request.Context(), req.CustomerID)
	response.Success(c, h.cart.Summary())
}

func (h *handler) SetPaymentMethod(c *gin.Context) {
	var req SetPaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	switch m := cart.PaymentMethod(req.PaymentMethod); m {
	case cart.PaymentCash, cart.PaymentCard, cart.PaymentMpesa, cart.PaymentOther:
		h.cart.SetPaymentMethod(c.Request.Context(), m)
		response.Success(c, h.cart.Summary())
	default:
		response.Error(c, http.StatusBadRequest, "unknown payment method")
	}
}

func (h *handler) SetNotes(c *gin.Context) {
	var req SetNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	h.cart.SetNotes(c.Request.Context(), req.Notes)
	response.Success(c, h.cart.Summary())
}

// Submit posts the cart's projection to the backend as a completed sale
// and clears the cart only after the backend has accepted it.
func (h *handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	sub := h.cart.Summary()
	if len(sub.Items) == 0 {
		response.Error(c, http.StatusBadRequest, "cart is empty")
		return
	}

	items := make([]backend.SaleLineInput, 0, len(sub.Items))
	for _, it := range sub.Items {
		items = append(items, backend.SaleLineInput{
			Product:  it.Product,
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}

	sale, err := h.sales.Create(c.Request.Context(), backend.CreateSaleInput{
		Customer:      sub.Customer,
		Status:        "COMPLETED",
		TotalAmount:   sub.TotalAmount,
		PaidAmount:    req.PaidAmount,
		ChangeAmount:  req.ChangeAmount,
		PaymentMethod: string(sub.PaymentMethod),
		Notes:         sub.Notes,
		Items:         items,
	})
	if err != nil {
		c.Error(err)
		return
	}

	h.cart.Clear(c.Request.Context())
	h.logger.Info("sale submitted", "reference", sale.ReferenceNo, "total", sale.TotalAmount)
	response.Created(c, sale)
}
