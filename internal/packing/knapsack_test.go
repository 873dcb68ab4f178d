package packing

import (
	"testing"

	"github.com/navya-devv/optirelief/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id string, weight, utility, quantity int) models.SupplyItem {
	return models.SupplyItem{ID: id, Name: id, Weight: weight, Utility: utility, Quantity: quantity}
}

func TestOptimize_InvalidCapacity(t *testing.T) {
	_, err := Optimize([]models.SupplyItem{item("a", 1, 5, 1)}, 0)
	require.ErrorIs(t, err, ErrInvalidCapacity)

	_, err = Optimize([]models.SupplyItem{item("a", 1, 5, 1)}, -3)
	require.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestOptimize_InvalidItem(t *testing.T) {
	_, err := Optimize([]models.SupplyItem{item("a", 0, 5, 1)}, 10)
	require.ErrorIs(t, err, ErrInvalidItem)

	_, err = Optimize([]models.SupplyItem{item("a", 2, 11, 1)}, 10)
	require.ErrorIs(t, err, ErrInvalidItem)

	_, err = Optimize([]models.SupplyItem{item("a", 2, 5, -1)}, 10)
	require.ErrorIs(t, err, ErrInvalidItem)
}

func TestOptimize_EmptyCatalogYieldsEmptyResult(t *testing.T) {
	result, err := Optimize(nil, 10)
	require.NoError(t, err)
	assert.Empty(t, result.SelectedItems)
	assert.Zero(t, result.TotalWeight)
	assert.Zero(t, result.TotalUtility)
}

func TestOptimize_BoundedQuantitiesRespected(t *testing.T) {
	// Full availability (2x10 + 3x5 = 35) exceeds the budget, so the DP
	// must pick the best subset within 20.
	items := []models.SupplyItem{
		item("heavy", 10, 6, 2),
		item("light", 5, 4, 3),
	}

	result, err := Optimize(items, 20)
	require.NoError(t, err)

	// 1 x heavy + 2 x light: weight 20, utility 6+8 = 14. Beats
	// 2 x heavy (utility 12) and 3 x light (utility 12).
	assert.Equal(t, 20, result.TotalWeight)
	assert.Equal(t, 14, result.TotalUtility)

	require.Len(t, result.SelectedItems, 2)
	assert.Equal(t, "heavy", result.SelectedItems[0].Item.ID)
	assert.Equal(t, 1, result.SelectedItems[0].SelectedQuantity)
	assert.Equal(t, "light", result.SelectedItems[1].Item.ID)
	assert.Equal(t, 2, result.SelectedItems[1].SelectedQuantity)

	for _, sel := range result.SelectedItems {
		assert.LessOrEqual(t, sel.SelectedQuantity, sel.Item.Quantity)
	}
}

func TestOptimize_NeverExceedsCapacity(t *testing.T) {
	items := []models.SupplyItem{
		item("water", 2, 9, 100),
		item("medkit", 5, 10, 20),
		item("tent", 15, 8, 15),
		item("battery", 1, 5, 200),
	}

	for _, capacity := range []int{1, 7, 23, 50, 120} {
		result, err := Optimize(items, capacity)
		require.NoError(t, err)
		assert.LessOrEqual(t, result.TotalWeight, capacity)
	}
}

func TestOptimize_UtilityMonotoneInCapacity(t *testing.T) {
	items := []models.SupplyItem{
		item("water", 2, 9, 10),
		item("medkit", 5, 10, 4),
		item("radio", 8, 9, 2),
	}

	prev := -1
	for capacity := 1; capacity <= 60; capacity++ {
		result, err := Optimize(items, capacity)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.TotalUtility, prev,
			"capacity %d must not lower utility", capacity)
		prev = result.TotalUtility
	}
}

func TestOptimize_TieBreaksToLowerWeight(t *testing.T) {
	// Both items alone reach utility 6, but the lighter one must win.
	items := []models.SupplyItem{
		item("heavy", 9, 6, 1),
		item("light", 4, 6, 1),
	}

	result, err := Optimize(items, 9)
	require.NoError(t, err)
	assert.Equal(t, 6, result.TotalUtility)
	assert.Equal(t, 4, result.TotalWeight)
	require.Len(t, result.SelectedItems, 1)
	assert.Equal(t, "light", result.SelectedItems[0].Item.ID)
}

func TestOptimize_TieBreaksToCatalogOrder(t *testing.T) {
	// Identical items: the earlier catalog entry is chosen.
	items := []models.SupplyItem{
		item("first", 5, 6, 1),
		item("second", 5, 6, 1),
	}

	result, err := Optimize(items, 5)
	require.NoError(t, err)
	require.Len(t, result.SelectedItems, 1)
	assert.Equal(t, "first", result.SelectedItems[0].Item.ID)
}

func TestOptimize_Efficiency(t *testing.T) {
	result, err := Optimize([]models.SupplyItem{item("a", 5, 10, 2)}, 10)
	require.NoError(t, err)
	assert.Equal(t, 20, result.TotalUtility)
	assert.Equal(t, 200.0, result.Efficiency)
}

func TestOptimize_DoesNotMutateCatalog(t *testing.T) {
	items := []models.SupplyItem{item("water", 2, 9, 100)}
	_, err := Optimize(items, 10)
	require.NoError(t, err)
	assert.Equal(t, 100, items[0].Quantity)
}
