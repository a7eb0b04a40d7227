package cart

// Line is one product's aggregated quantity within the cart. Name and
// UnitPrice are copied from the catalog at add time so later catalog edits
// never change a cart in progress.
type Line struct {
	ProductID string
	Name      string
	UnitPrice float64
	Qty       int
}

// LineTotal is the line's contribution to the cart total.
func (l Line) LineTotal() float64 {
	return l.UnitPrice * float64(l.Qty)
}

// Cart aggregates one session's pending purchase. It lives only in memory
// and is destroyed by Clear (explicitly or after a successful checkout).
// Cart is not safe for concurrent use; the Registry serializes access.
type Cart struct {
	lines []Line
	index map[string]int // product id -> position in lines
}

func New() *Cart {
	return &Cart{index: make(map[string]int)}
}

// AddOne inserts a line with quantity 1 on the first click for a product
// and increments the quantity on repeat clicks. There is no upper bound.
func (c *Cart) AddOne(productID, name string, unitPrice float64) {
	if i, ok := c.index[productID]; ok {
		c.lines[i].Qty++
		return
	}
	c.index[productID] = len(c.lines)
	c.lines = append(c.lines, Line{
		ProductID: productID,
		Name:      name,
		UnitPrice: unitPrice,
		Qty:       1,
	})
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
	c.index = make(map[string]int)
}

// Empty reports whether the cart holds no lines.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Total is the sum of unit price times quantity over all lines.
func (c *Cart) Total() float64 {
	var total float64
	for _, l := range c.lines {
		total += l.LineTotal()
	}
	return total
}

// Lines returns the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// FlattenItemIDs expands the cart to one product id per purchased unit,
// grouped by line in line order. This is the literal sequence persisted in
// a transaction's items field.
func (c *Cart) FlattenItemIDs() []string {
	var ids []string
	for _, l := range c.lines {
		for i := 0; i < l.Qty; i++ {
			ids = append(ids, l.ProductID)
		}
	}
	return ids
}
