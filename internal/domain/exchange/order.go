package exchange

import (
	"errors"
	"fmt"
)

// Quantity is an order quantity that may be unbounded. Market makers place
// orders with no quantity limit; representing that as an explicit case avoids
// overflow when arithmetic is performed against a magic maximum value.
type Quantity struct {
	units     int
	unbounded bool
}

// QuantityOf returns a bounded quantity of n units
func QuantityOf(n int) Quantity {
	return Quantity{units: n}
}

// Unbounded returns the unlimited quantity
func Unbounded() Quantity {
	return Quantity{unbounded: true}
}

// IsUnbounded reports whether the quantity has no limit
func (q Quantity) IsUnbounded() bool {
	return q.unbounded
}

// Units returns the bounded unit count; 0 for unbounded quantities
func (q Quantity) Units() int {
	return q.units
}

// IsExhausted reports whether nothing remains. An unbounded quantity never
// exhausts on its own.
func (q Quantity) IsExhausted() bool {
	return !q.unbounded && q.units <= 0
}

// Take returns min(q, n) for bounded quantities and n when unbounded
func (q Quantity) Take(n int) int {
	if q.unbounded || q.units > n {
		return n
	}
	return q.units
}

// Sub returns the quantity reduced by n units. Unbounded stays unbounded.
func (q Quantity) Sub(n int) Quantity {
	if q.unbounded {
		return q
	}
	return Quantity{units: q.units - n}
}

func (q Quantity) String() string {
	if q.unbounded {
		return "∞"
	}
	return fmt.Sprintf("%d", q.units)
}

// Order is one outstanding order in a material exchange book
// (immutable value object). Identity is the order id; ordering key is the
// unit price.
type Order struct {
	id       string
	company  string
	quantity Quantity
	price    float64
}

// NewOrder creates a new Order with validation
func NewOrder(id, company string, quantity Quantity, price float64) (Order, error) {
	if id == "" {
		return Order{}, errors.New("order id cannot be empty")
	}
	if price < 0 {
		return Order{}, fmt.Errorf("order %s has negative price", id)
	}
	if !quantity.IsUnbounded() && quantity.Units() < 0 {
		return Order{}, fmt.Errorf("order %s has negative quantity", id)
	}
	return Order{id: id, company: company, quantity: quantity, price: price}, nil
}

func (o Order) ID() string {
	return o.id
}

// Company returns the counterparty identity
func (o Order) Company() string {
	return o.company
}

func (o Order) Quantity() Quantity {
	return o.quantity
}

// Price returns the per-unit price
func (o Order) Price() float64 {
	return o.price
}
