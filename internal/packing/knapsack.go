// Package packing selects supply item quantities under a weight budget.
// This is the bounded knapsack: each catalog item may be taken up to its
// available quantity, solved with dynamic programming over (item,
// capacity) and an inner loop over attainable counts.
package packing

import (
	"errors"
	"fmt"

	"github.com/navya-devv/optirelief/internal/models"
)

var (
	// ErrInvalidCapacity indicates a non-positive weight budget.
	ErrInvalidCapacity = errors.New("packing: capacity must be positive")

	// ErrInvalidItem indicates a catalog entry with non-positive weight,
	// out-of-range utility, or negative quantity.
	ErrInvalidItem = errors.New("packing: invalid supply item")
)

// Selection is one packed item with the number of units chosen.
type Selection struct {
	Item             models.SupplyItem `json:"item"`
	SelectedQuantity int               `json:"selected_quantity"`
}

type Result struct {
	SelectedItems []Selection `json:"selected_items"`
	TotalWeight   int         `json:"total_weight"`
	TotalUtility  int         `json:"total_utility"`
	Efficiency    float64     `json:"efficiency"` // totalUtility / capacity * 100
}

// Optimize maximizes total utility subject to total weight <= capacity.
// Source quantities are never mutated; the result is a selection. Ties
// resolve to the lower total weight, then to earlier catalog entries, so
// output is reproducible. An empty catalog yields a valid empty result.
func Optimize(items []models.SupplyItem, capacity int) (*Result, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	for _, item := range items {
		if item.Weight <= 0 || item.Quantity < 0 || item.Utility < 1 || item.Utility > 10 {
			return nil, fmt.Errorf("%w: %q weight=%d utility=%d quantity=%d",
				ErrInvalidItem, item.Name, item.Weight, item.Utility, item.Quantity)
		}
	}

	n := len(items)
	// util[i][w]: best utility over the first i items within capacity w.
	// weight[i][w]: minimal packed weight achieving that utility.
	// count[i][w]: units of item i-1 chosen in that optimum.
	util := make([][]int, n+1)
	weight := make([][]int, n+1)
	count := make([][]int, n+1)
	for i := 0; i <= n; i++ {
		util[i] = make([]int, capacity+1)
		weight[i] = make([]int, capacity+1)
		count[i] = make([]int, capacity+1)
	}

	for i := 1; i <= n; i++ {
		item := items[i-1]
		for w := 0; w <= capacity; w++ {
			bestU := util[i-1][w]
			bestW := weight[i-1][w]
			bestK := 0

			maxK := item.Quantity
			if byCap := w / item.Weight; byCap < maxK {
				maxK = byCap
			}
			for k := 1; k <= maxK; k++ {
				u := util[i-1][w-k*item.Weight] + k*item.Utility
				tw := weight[i-1][w-k*item.Weight] + k*item.Weight
				// Strict improvement only: full ties keep k of the
				// earliest-considered option, preferring earlier catalog
				// items overall.
				if u > bestU || (u == bestU && tw < bestW) {
					bestU, bestW, bestK = u, tw, k
				}
			}

			util[i][w] = bestU
			weight[i][w] = bestW
			count[i][w] = bestK
		}
	}

	selected := make([]Selection, 0, n)
	w := capacity
	for i := n; i >= 1; i-- {
		k := count[i][w]
		if k > 0 {
			selected = append(selected, Selection{Item: items[i-1], SelectedQuantity: k})
			w -= k * items[i-1].Weight
		}
	}
	// Reconstruction walks items backwards; restore catalog order.
	for i, j := 0, len(selected)-1; i < j; i, j = i+1, j-1 {
		selected[i], selected[j] = selected[j], selected[i]
	}

	return &Result{
		SelectedItems: selected,
		TotalWeight:   weight[n][capacity],
		TotalUtility:  util[n][capacity],
		Efficiency:    float64(util[n][capacity]) / float64(capacity) * 100,
	}, nil
}
