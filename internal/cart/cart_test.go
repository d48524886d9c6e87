package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id, size string, price float64) Item {
	return Item{ProductID: id, Title: "Product " + id, PriceUSD: price, Size: size, Qty: 1}
}

func TestAddMergesSameProductAndSize(t *testing.T) {
	c := New()
	c.Add(item("p1", "US 9", 120))
	c.Add(item("p1", "US 9", 120))

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Qty)
}

func TestAddDifferentSizeIsNewLine(t *testing.T) {
	c := New()
	c.Add(item("p1", "US 9", 120))
	c.Add(item("p1", "US 10", 120))

	require.Len(t, c.Items, 2)
	assert.Equal(t, "US 9", c.Items[0].Size)
	assert.Equal(t, "US 10", c.Items[1].Size)
}

func TestAddPreservesInsertionOrderOnMerge(t *testing.T) {
	c := New()
	c.Add(item("a", "M", 25))
	c.Add(item("b", "L", 65))
	c.Add(item("a", "M", 25)) // merges into the first line, not the end

	require.Len(t, c.Items, 2)
	assert.Equal(t, "a", c.Items[0].ProductID)
	assert.Equal(t, 2, c.Items[0].Qty)
	assert.Equal(t, "b", c.Items[1].ProductID)
}

func TestAddClampsQuantity(t *testing.T) {
	c := New()
	it := item("p1", "M", 25)
	it.Qty = 0
	c.Add(it)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 1, c.Items[0].Qty)
}

func TestUpdateQuantityGuardsZeroAndNegative(t *testing.T) {
	c := New()
	c.Add(item("p1", "M", 25))
	c.UpdateQuantity("p1", "M", 0)
	assert.Equal(t, 1, c.Items[0].Qty)
	c.UpdateQuantity("p1", "M", -1)
	assert.Equal(t, 1, c.Items[0].Qty)
	c.UpdateQuantity("p1", "M", 7)
	assert.Equal(t, 7, c.Items[0].Qty)
}

func TestRemoveMissingIsNoop(t *testing.T) {
	c := New()
	c.Add(item("p1", "M", 25))
	c.Remove("p1", "L")
	c.Remove("zzz", "M")
	require.Len(t, c.Items, 1)

	c.Remove("p1", "M")
	assert.True(t, c.IsEmpty())
}

func TestTotal(t *testing.T) {
	c := New()
	assert.Zero(t, c.Total())

	c.Add(Item{ProductID: "p1", PriceUSD: 120, Size: "US 9", Qty: 2})
	c.Add(Item{ProductID: "p2", PriceUSD: 25, Size: "M", Qty: 3})
	assert.Equal(t, 315.0, c.Total())

	c.UpdateQuantity("p2", "M", 1)
	assert.Equal(t, 265.0, c.Total())

	c.Remove("p1", "US 9")
	assert.Equal(t, 25.0, c.Total())

	c.Clear()
	assert.Zero(t, c.Total())
	assert.Zero(t, c.Count())
}

func TestCount(t *testing.T) {
	c := New()
	c.Add(Item{ProductID: "p1", Size: "M", Qty: 2})
	c.Add(Item{ProductID: "p1", Size: "M", Qty: 3})
	c.Add(Item{ProductID: "p2", Size: "L", Qty: 1})
	assert.Equal(t, 6, c.Count())
}
