package settings

import (
	"sort"
	"strings"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/inventory"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shopping"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// ReorderPoint is the reorder calculation for one inventory item
type ReorderPoint struct {
	Item           inventory.Item
	ReorderPoint   decimal.Decimal
	Threshold      decimal.Decimal
	SuggestedOrder int
	Priority       shopping.Priority
}

// CalculateReorderPoint applies the reorder rules to one item:
//
//	reorder_point = weekly_sales × reorder_multiplier
//	threshold     = max(reorder_point, low_stock_threshold)
//	suggested     = max(1, ceil(threshold × 2) − quantity) unless priority is low, else 0
//
// An item whose priority is not low always suggests at least one unit.
func CalculateReorderPoint(item inventory.Item, v Values) ReorderPoint {
	reorderPoint := item.WeeklySales.Mul(v.ReorderMultiplier).Round(2)
	threshold := decimal.Max(reorderPoint, decimal.NewFromInt(int64(v.LowStockThreshold)))
	qty := decimal.NewFromInt(int64(item.Quantity))
	priority := reorderPriority(item.Quantity, qty, reorderPoint, threshold, v.CriticalStockThreshold)

	suggested := 0
	if priority != shopping.PriorityLow {
		suggested = 1
		if s := threshold.Mul(two).Ceil().Sub(qty); s.GreaterThan(decimal.NewFromInt(1)) {
			suggested = int(s.IntPart())
		}
	}

	return ReorderPoint{
		Item:           item,
		ReorderPoint:   reorderPoint,
		Threshold:      threshold,
		SuggestedOrder: suggested,
		Priority:       priority,
	}
}

func reorderPriority(quantity int, qty, reorderPoint, threshold decimal.Decimal, critical int) shopping.Priority {
	switch {
	case quantity <= critical:
		return shopping.PriorityCritical
	case qty.LessThanOrEqual(reorderPoint):
		return shopping.PriorityHigh
	case qty.LessThanOrEqual(threshold):
		return shopping.PriorityMedium
	default:
		return shopping.PriorityLow
	}
}

// CalculateReorderPoints runs the calculation for every item, most urgent first then by name
func CalculateReorderPoints(items []inventory.Item, v Values) []ReorderPoint {
	points := make([]ReorderPoint, 0, len(items))
	for _, item := range items {
		points = append(points, CalculateReorderPoint(item, v))
	}
	SortReorderPoints(points)
	return points
}

// SortReorderPoints orders points critical → low, then by item name
func SortReorderPoints(points []ReorderPoint) {
	sort.SliceStable(points, func(i, j int) bool {
		ri, rj := points[i].Priority.Rank(), points[j].Priority.Rank()
		if ri != rj {
			return ri < rj
		}
		return strings.ToLower(points[i].Item.Name) < strings.ToLower(points[j].Item.Name)
	})
}

// SummarizeReorderPoints counts points per priority; every priority is present
func SummarizeReorderPoints(points []ReorderPoint) map[shopping.Priority]int {
	summary := make(map[shopping.Priority]int, 4)
	for _, p := range shopping.Priorities() {
		summary[p] = 0
	}
	for _, p := range points {
		summary[p.Priority]++
	}
	return summary
}
