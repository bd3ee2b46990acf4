// Package forecast merges demand forecasts into inventory rows.
//
// Every function returns a new slice; inputs are never modified.
package forecast

import (
	"fmt"
	"math"
	"time"

	"stockroom/internal/model"
)

// Labels shown in the Forecast column.
const (
	LabelLoading     = "Loading forecast..."
	LabelNone        = "No forecast selected"
	LabelUnavailable = "No forecast available"
	LabelError       = "Error loading forecast"
)

// Windows lists the selectable forecast windows in days. Zero means none.
var Windows = []int{0, 7, 14, 30, 60, 90}

// NextWindow returns the window after days, wrapping around.
func NextWindow(days int) int {
	for i, w := range Windows {
		if w == days {
			return Windows[(i+1)%len(Windows)]
		}
	}
	return Windows[0]
}

// WindowLabel names a window for the selector.
func WindowLabel(days int) string {
	if days == 0 {
		return "No forecast"
	}
	return fmt.Sprintf("%d days", days)
}

// Rows builds inventory items waiting on a forecast.
func Rows(products []model.Product) []model.InventoryItem {
	out := make([]model.InventoryItem, len(products))
	for i, p := range products {
		out[i] = model.InventoryItem{Product: p, Forecast: LabelLoading}
	}
	return out
}

// Label formats a matched forecast.
func Label(f model.ProductForecast) string {
	return fmt.Sprintf("%d units (%d days)", f.TotalPredictedUnits, f.ForecastDays)
}

// Merge attaches forecasts by product id. Items without a match get
// LabelUnavailable.
func Merge(items []model.InventoryItem, forecasts []model.ProductForecast) []model.InventoryItem {
	byID := make(map[string]model.ProductForecast, len(forecasts))
	for _, f := range forecasts {
		byID[f.ProductID] = f
	}
	out := make([]model.InventoryItem, len(items))
	for i, it := range items {
		if f, ok := byID[it.ID]; ok {
			it.Forecast = Label(f)
		} else {
			it.Forecast = LabelUnavailable
		}
		out[i] = it
	}
	return out
}

// Clear sets every item to LabelNone.
func Clear(items []model.InventoryItem) []model.InventoryItem {
	return relabel(items, LabelNone)
}

// Fail sets every item to LabelError.
func Fail(items []model.InventoryItem) []model.InventoryItem {
	return relabel(items, LabelError)
}

// Pending sets every item to LabelLoading.
func Pending(items []model.InventoryItem) []model.InventoryItem {
	return relabel(items, LabelLoading)
}

func relabel(items []model.InventoryItem, label string) []model.InventoryItem {
	out := make([]model.InventoryItem, len(items))
	for i, it := range items {
		it.Forecast = label
		out[i] = it
	}
	return out
}

// HistoryDays is how much sales history Project looks at.
const HistoryDays = 30

// Project forecasts demand from sales history: the average daily units sold
// over the HistoryDays before now, times the window. Products without sales
// in that period get no forecast.
func Project(records []model.SalesRecord, days int, now time.Time) []model.ProductForecast {
	if days <= 0 {
		return nil
	}
	since := now.AddDate(0, 0, -HistoryDays)
	units := make(map[string]int)
	var order []string
	for _, r := range records {
		if r.TransactionDate.Before(since) || r.TransactionDate.After(now) {
			continue
		}
		if _, ok := units[r.ProductID]; !ok {
			order = append(order, r.ProductID)
		}
		units[r.ProductID] += r.QuantitySold
	}

	out := make([]model.ProductForecast, 0, len(order))
	for _, id := range order {
		perDay := float64(units[id]) / HistoryDays
		out = append(out, model.ProductForecast{
			ProductID:           id,
			TotalPredictedUnits: int(math.Round(perDay * float64(days))),
			ForecastDays:        days,
		})
	}
	return out
}
