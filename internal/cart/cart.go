package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Kiash254/pos-terminal/pkg/logger"
	"github.com/Kiash254/pos-terminal/pkg/store"
)

// ErrInvalidQuantity is returned when a caller asks to add a non-positive
// quantity. A zero-quantity line is never created.
var ErrInvalidQuantity = errors.New("cart: quantity must be a positive integer")

// PaymentMethod enumerates how a sale is settled.
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "CASH"
	PaymentCard  PaymentMethod = "CARD"
	PaymentMpesa PaymentMethod = "MPESA"
	PaymentOther PaymentMethod = "OTHER"
)

// Product is the slice of a catalog product the cart needs: identity and
// the price at the moment it is added.
type Product struct {
	ID    int64
	Name  string
	Price decimal.Decimal
}

// Line is one product entry in the in-progress sale. UnitPrice is fixed at
// add time; LineTotal always equals UnitPrice * Quantity.
type Line struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// state is the persisted shape of the cart. It is serialized as one blob
// so a crash between mutation and write loses at most the last operation.
type state struct {
	ID            string        `json:"id"`
	Lines         []Line        `json:"items"`
	CustomerID    *int64        `json:"customer"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Notes         string        `json:"notes"`
}

// SubmissionItem is one line of a sale submission, in the backend's wire
// shape.
type SubmissionItem struct {
	Product  int64           `json:"product"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Submission is a pure projection of the cart, computed on demand and
// never mutated in place.
type Submission struct {
	Reference     string           `json:"reference"`
	Items         []SubmissionItem `json:"items"`
	Customer      *int64           `json:"customer"`
	TotalAmount   decimal.Decimal  `json:"total_amount"`
	PaymentMethod PaymentMethod    `json:"payment_method"`
	Notes         string           `json:"notes"`
}

// Engine owns the terminal's single in-progress sale. All operations are
// synchronous and serialized by one mutex, so mutations apply in call
// order with no partial-update visibility. Every mutation re-serializes
// the whole cart to the persistent store.
type Engine struct {
	store store.Store
	log   logger.Logger

	mu sync.Mutex
	st state
}

func NewEngine(st store.Store, log logger.Logger) *Engine {
	return &Engine{
		store: st,
		log:   log.Named("cart"),
		st:    emptyState(),
	}
}

func emptyState() state {
	return state{
		ID:            uuid.NewString(),
		PaymentMethod: PaymentCash,
	}
}

// Load rehydrates the cart persisted by a previous run. A missing or
// undecodable blob reads as an empty cart, never a hard failure.
func (e *Engine) Load(ctx context.Context) {
	b, err := e.store.Get(ctx, store.KeyCart)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			e.log.Warn("reading persisted cart failed", "error", err)
		}
		return
	}
	var st state
	if err := json.Unmarshal(b, &st); err != nil {
		e.log.Warn("persisted cart is unreadable, starting empty", "error", err)
		return
	}
	if st.ID == "" {
		st.ID = uuid.NewString()
	}
	if st.PaymentMethod == "" {
		st.PaymentMethod = PaymentCash
	}
	e.mu.Lock()
	e.st = st
	e.mu.Unlock()
}

// AddItem merges the product into the cart: an existing line for the same
// product has its quantity incremented, otherwise a new line is appended
// with the product's current price recorded as the line's unit price.
func (e *Engine) AddItem(ctx context.Context, p Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	merged := false
	for i := range e.st.Lines {
		if e.st.Lines[i].ProductID == p.ID {
			e.st.Lines[i].Quantity += quantity
			e.st.Lines[i].LineTotal = e.st.Lines[i].UnitPrice.Mul(decimal.NewFromInt(int64(e.st.Lines[i].Quantity)))
			merged = true
			break
		}
	}
	if !merged {
		e.st.Lines = append(e.st.Lines, Line{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  quantity,
			LineTotal: p.Price.Mul(decimal.NewFromInt(int64(quantity))),
		})
	}

	e.persist(ctx)
	return nil
}

// UpdateQuantity replaces the quantity of the matching line, recomputing
// its total from the line's recorded unit price, not the product's current
// one. A quantity of zero or below removes the line. An unknown product id
// is a no-op, so repeated calls with a stale id are idempotent.
func (e *Engine) UpdateQuantity(ctx context.Context, productID int64, quantity int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.st.Lines {
		if e.st.Lines[i].ProductID != productID {
			continue
		}
		if quantity < 1 {
			e.st.Lines = append(e.st.Lines[:i], e.st.Lines[i+1:]...)
		} else {
			e.st.Lines[i].Quantity = quantity
			e.st.Lines[i].LineTotal = e.st.Lines[i].UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
		}
		e.persist(ctx)
		return
	}
}

// RemoveItem drops the matching line; absent ids are a no-op.
func (e *Engine) RemoveItem(ctx context.Context, productID int64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.st.Lines {
		if e.st.Lines[i].ProductID == productID {
			e.st.Lines = append(e.st.Lines[:i], e.st.Lines[i+1:]...)
			e.persist(ctx)
			return
		}
	}
}

// Clear resets the cart to its terminal state: no lines, no customer,
// cash payment, empty notes. Called after a submitted or abandoned sale.
func (e *Engine) Clear(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.st = emptyState()
	e.persist(ctx)
}

// Total is the sum of all line totals; zero for an empty cart.
func (e *Engine) Total() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.total()
}

func (e *Engine) total() decimal.Decimal {
	sum := decimal.Zero
	for i := range e.st.Lines {
		sum = sum.Add(e.st.Lines[i].LineTotal)
	}
	return sum
}

// Summary projects the cart into a sale submission. It does not mutate
// the cart.
func (e *Engine) Summary() Submission {
	e.mu.Lock()
	defer e.mu.Unlock()

	items := make([]SubmissionItem, 0, len(e.st.Lines))
	for _, l := range e.st.Lines {
		items = append(items, SubmissionItem{
			Product:  l.ProductID,
			Quantity: l.Quantity,
			Price:    l.UnitPrice,
		})
	}
	return Submission{
		Reference:     e.st.ID,
		Items:         items,
		Customer:      e.st.CustomerID,
		TotalAmount:   e.total(),
		PaymentMethod: e.st.PaymentMethod,
		Notes:         e.st.Notes,
	}
}

// Items returns a copy of the current lines, in insertion order.
func (e *Engine) Items() []Line {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Line, len(e.st.Lines))
	copy(out, e.st.Lines)
	return out
}

func (e *Engine) SetCustomer(ctx context.Context, customerID *int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.st.CustomerID = customerID
	e.persist(ctx)
}

func (e *Engine) SetPaymentMethod(ctx context.Context, method PaymentMethod) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.st.PaymentMethod = method
	e.persist(ctx)
}

func (e *Engine) SetNotes(ctx context.Context, notes string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.st.Notes = notes
	e.persist(ctx)
}

// persist writes the whole cart as one blob. Callers hold the mutex.
func (e *Engine) persist(ctx context.Context) {
	b, err := json.Marshal(e.st)
	if err == nil {
		err = e.store.Set(ctx, store.KeyCart, b)
	}
	if err != nil {
		e.log.Error("persisting cart failed", "error", err)
	}
}
