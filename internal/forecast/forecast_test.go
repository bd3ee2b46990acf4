package forecast

import (
	"reflect"
	"testing"
	"time"

	"stockroom/internal/model"
)

func products() []model.Product {
	return []model.Product{
		{ID: "P0001", Name: "Gourmet Coffee Trio", UnitPrice: 24.99},
		{ID: "P0002", Name: "Metal Floor Lamp", UnitPrice: 89},
		{ID: "P0003", Name: "Family Frozen Lasagna", UnitPrice: 12.49},
	}
}

func labels(items []model.InventoryItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Forecast
	}
	return out
}

func TestRowsStartLoading(t *testing.T) {
	items := Rows(products())
	want := []string{LabelLoading, LabelLoading, LabelLoading}
	if got := labels(items); !reflect.DeepEqual(got, want) {
		t.Errorf("labels = %v, want %v", got, want)
	}
	if items[1].Name != "Metal Floor Lamp" {
		t.Errorf("product fields not carried: %+v", items[1])
	}
}

func TestMerge(t *testing.T) {
	items := Rows(products())
	forecasts := []model.ProductForecast{
		{ProductID: "P0003", TotalPredictedUnits: 42, ForecastDays: 30},
		{ProductID: "P0001", TotalPredictedUnits: 7, ForecastDays: 30},
		{ProductID: "P9999", TotalPredictedUnits: 1, ForecastDays: 30},
	}

	merged := Merge(items, forecasts)
	want := []string{"7 units (30 days)", LabelUnavailable, "42 units (30 days)"}
	if got := labels(merged); !reflect.DeepEqual(got, want) {
		t.Errorf("labels = %v, want %v", got, want)
	}
	if got := labels(items); got[0] != LabelLoading {
		t.Errorf("Merge modified its input: %v", got)
	}
	if len(Merge(nil, forecasts)) != 0 {
		t.Error("Merge(nil) should be empty")
	}
}

func TestRelabel(t *testing.T) {
	items := Merge(Rows(products()), nil)
	tests := []struct {
		name string
		fn   func([]model.InventoryItem) []model.InventoryItem
		want string
	}{
		{"clear", Clear, LabelNone},
		{"fail", Fail, LabelError},
		{"pending", Pending, LabelLoading},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, l := range labels(tt.fn(items)) {
				if l != tt.want {
					t.Errorf("label = %q, want %q", l, tt.want)
				}
			}
			if items[0].Forecast != LabelUnavailable {
				t.Error("input was modified")
			}
		})
	}
}

func TestNextWindow(t *testing.T) {
	got := []int{}
	w := 0
	for range Windows {
		w = NextWindow(w)
		got = append(got, w)
	}
	if want := []int{7, 14, 30, 60, 90, 0}; !reflect.DeepEqual(got, want) {
		t.Errorf("cycle = %v, want %v", got, want)
	}
	if NextWindow(45) != 0 {
		t.Error("unknown window should reset to none")
	}
	if WindowLabel(0) != "No forecast" || WindowLabel(14) != "14 days" {
		t.Error("WindowLabel")
	}
}

func TestProject(t *testing.T) {
	now := time.Date(2025, 5, 31, 12, 0, 0, 0, time.UTC)
	records := []model.SalesRecord{
		{ProductID: "P0002", QuantitySold: 10, TransactionDate: now.AddDate(0, 0, -2)},
		{ProductID: "P0001", QuantitySold: 30, TransactionDate: now.AddDate(0, 0, -1)},
		{ProductID: "P0002", QuantitySold: 5, TransactionDate: now.AddDate(0, 0, -20)},
		{ProductID: "P0003", QuantitySold: 99, TransactionDate: now.AddDate(0, 0, -45)},
	}

	got := Project(records, 14, now)
	want := []model.ProductForecast{
		{ProductID: "P0002", TotalPredictedUnits: 7, ForecastDays: 14},
		{ProductID: "P0001", TotalPredictedUnits: 14, ForecastDays: 14},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Project() = %+v, want %+v", got, want)
	}
	if Project(records, 0, now) != nil {
		t.Error("window 0 should project nothing")
	}
}
