package domain

import "slices"

// A CartLine is one product's entry in the cart. The product snapshot
// is frozen at add time, prices are never refreshed from the catalog.
type CartLine struct {
	Product  Product
	Quantity int
}

// A Cart holds lines keyed by product id in insertion order. Every
// mutation is total: unknown ids make Increase, Decrease and Remove
// no-ops.
type Cart struct {
	lines []CartLine
}

func NewCart() *Cart {
	return &Cart{}
}

func (c *Cart) find(id int64) int {
	return slices.IndexFunc(c.lines, func(l CartLine) bool {
		return l.Product.ID == id
	})
}

// Add accumulates quantity onto an existing line or appends a new one,
// never creating a duplicate line for the same id. A quantity below 1
// is treated as 1.
func (c *Cart) Add(p Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	if i := c.find(p.ID); i >= 0 {
		c.lines[i].Quantity += quantity
		return
	}
	c.lines = append(c.lines, CartLine{Product: p, Quantity: quantity})
}

func (c *Cart) Increase(id int64) {
	if i := c.find(id); i >= 0 {
		c.lines[i].Quantity++
	}
}

// Decrease lowers the quantity by one but never below 1. Removing a
// line at the floor is the caller's explicit decision via [Cart.Remove].
func (c *Cart) Decrease(id int64) {
	if i := c.find(id); i >= 0 && c.lines[i].Quantity > 1 {
		c.lines[i].Quantity--
	}
}

func (c *Cart) Remove(id int64) {
	if i := c.find(id); i >= 0 {
		c.lines = slices.Delete(c.lines, i, i+1)
	}
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) Line(id int64) (CartLine, bool) {
	if i := c.find(id); i >= 0 {
		return c.lines[i], true
	}
	return CartLine{}, false
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []CartLine {
	return slices.Clone(c.lines)
}

// LineCount is the number of distinct lines, the cart badge number.
func (c *Cart) LineCount() int {
	return len(c.lines)
}

func (c *Cart) TotalQuantity() (n int) {
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// TotalPrice sums unit price times quantity over all lines. Lines whose
// snapshot carries an invalid price contribute nothing.
func (c *Cart) TotalPrice() (total float64) {
	for _, l := range c.lines {
		if l.Product.HasValidPrice() {
			total += l.Product.Price * float64(l.Quantity)
		}
	}
	return total
}

// CartView is the read model for rendering the cart badge and page.
type CartView struct {
	Lines         []CartLine
	LineCount     int
	TotalQuantity int
	TotalPrice    float64
}

// Line finds a view line by product id.
func (v CartView) Line(id int64) (CartLine, bool) {
	for _, l := range v.Lines {
		if l.Product.ID == id {
			return l, true
		}
	}
	return CartLine{}, false
}

func (c *Cart) View() CartView {
	return CartView{
		Lines:         c.Lines(),
		LineCount:     c.LineCount(),
		TotalQuantity: c.TotalQuantity(),
		TotalPrice:    c.TotalPrice(),
	}
}
