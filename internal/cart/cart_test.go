package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minitill/minitill/internal/cart"
)

func TestAddOneAccumulates(t *testing.T) {
	c := cart.New()
	require.True(t, c.Empty())

	c.AddOne("p1", "Coffee", 45.00)
	require.False(t, c.Empty())

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p1", lines[0].ProductID)
	assert.Equal(t, "Coffee", lines[0].Name)
	assert.Equal(t, 1, lines[0].Qty)
	assert.InDelta(t, 45.00, c.Total(), 1e-9)
}

func TestTwoProductsKeepInsertionOrder(t *testing.T) {
	c := cart.New()
	c.AddOne("p1", "Coffee", 45.00)
	c.AddOne("p1", "Coffee", 45.00)
	c.AddOne("p2", "Tea", 20.00)

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "p1", lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Qty)
	assert.Equal(t, "p2", lines[1].ProductID)
	assert.Equal(t, 1, lines[1].Qty)

	assert.InDelta(t, 110.00, c.Total(), 1e-9)
	assert.Equal(t, []string{"p1", "p1", "p2"}, c.FlattenItemIDs())
}

func TestTotalMatchesLinesForAnySequence(t *testing.T) {
	type click struct {
		id    string
		name  string
		price float64
	}
	tests := []struct {
		name   string
		clicks []click
	}{
		{"single", []click{{"a", "A", 1.5}}},
		{"repeat same", []click{{"a", "A", 1.5}, {"a", "A", 1.5}, {"a", "A", 1.5}}},
		{"interleaved", []click{
			{"a", "A", 9.99}, {"b", "B", 0.01}, {"a", "A", 9.99},
			{"c", "C", 120}, {"b", "B", 0.01},
		}},
		{"zero price", []click{{"free", "Free", 0}, {"free", "Free", 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cart.New()
			for _, cl := range tt.clicks {
				c.AddOne(cl.id, cl.name, cl.price)
			}

			var want float64
			var qtySum int
			for _, l := range c.Lines() {
				want += l.UnitPrice * float64(l.Qty)
				qtySum += l.Qty
			}
			assert.InDelta(t, want, c.Total(), 1e-9)
			assert.Len(t, c.FlattenItemIDs(), qtySum)
			assert.Len(t, c.FlattenItemIDs(), len(tt.clicks))
		})
	}
}

func TestClearWipesEverything(t *testing.T) {
	c := cart.New()
	c.AddOne("p1", "Coffee", 45.00)
	c.AddOne("p2", "Tea", 20.00)

	c.Clear()

	assert.True(t, c.Empty())
	assert.Zero(t, c.Total())
	assert.Empty(t, c.Lines())
	assert.Empty(t, c.FlattenItemIDs())

	// adding after a clear starts from quantity 1 again
	c.AddOne("p1", "Coffee", 45.00)
	require.Len(t, c.Lines(), 1)
	assert.Equal(t, 1, c.Lines()[0].Qty)
}

func TestLinesReturnsCopy(t *testing.T) {
	c := cart.New()
	c.AddOne("p1", "Coffee", 45.00)

	lines := c.Lines()
	lines[0].Qty = 99

	assert.Equal(t, 1, c.Lines()[0].Qty)
}

func TestRegistryScopesCartsPerSession(t *testing.T) {
	r := cart.NewRegistry()

	a := r.Get("session-a")
	b := r.Get("session-b")
	a.AddOne("p1", "Coffee", 45.00)

	assert.True(t, b.Empty())
	assert.Same(t, a, r.Get("session-a"))

	r.Drop("session-a")
	assert.True(t, r.Get("session-a").Empty())
}
