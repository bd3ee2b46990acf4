package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"stockroom/internal/forecast"
	"stockroom/internal/model"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL + "/")
}

func TestListProducts(t *testing.T) {
	var gotRequestID, gotAccept string
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotRequestID = r.Header.Get("X-Request-ID")
		gotAccept = r.Header.Get("Accept")
		io.WriteString(w, `[{"product_id":"P0001","product_name":"Gourmet Coffee Trio","category":"Grocery","unit_price":24.99,"competitor_price":26.5,"current_stock":120}]`)
	})

	products, err := c.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(products) != 1 || products[0].ID != "P0001" || products[0].CurrentStock != 120 {
		t.Fatalf("products = %+v", products)
	}
	if _, err := uuid.Parse(gotRequestID); err != nil {
		t.Errorf("X-Request-ID %q is not a uuid: %v", gotRequestID, err)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q", gotAccept)
	}
}

func TestListForecastsQuery(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("forecast") != "true" || q.Get("days") != "14" {
			t.Errorf("query = %v", q)
		}
		io.WriteString(w, `[
			{"product_id":"P0002","product_name":"Metal Floor Lamp","forecast":{"total_predicted_units":42,"forecast_days":14}},
			{"product_id":"P0003","product_name":"Yoga Mat","forecast":null}
		]`)
	})

	got, err := c.ListForecasts(context.Background(), 14)
	if err != nil {
		t.Fatalf("ListForecasts: %v", err)
	}
	want := model.ProductForecast{ProductID: "P0002", TotalPredictedUnits: 42, ForecastDays: 14}
	if len(got) != 1 || got[0] != want {
		t.Fatalf("forecasts = %+v, want [%+v]", got, want)
	}

	items := forecast.Merge([]model.InventoryItem{
		{Product: model.Product{ID: "P0002"}},
		{Product: model.Product{ID: "P0003"}},
	}, got)
	if items[0].Forecast != "42 units (14 days)" {
		t.Errorf("P0002 forecast = %q", items[0].Forecast)
	}
	if items[1].Forecast != forecast.LabelUnavailable {
		t.Errorf("P0003 forecast = %q, want %q", items[1].Forecast, forecast.LabelUnavailable)
	}
}

func TestGetProductNotFound(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products/P9999" {
			t.Errorf("path = %q", r.URL.Path)
		}
		http.NotFound(w, r)
	})

	_, err := c.GetProduct(context.Background(), "P9999")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestStatusError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.ListSalesRecords(context.Background())
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if se.Code != http.StatusInternalServerError || se.Body != "boom" {
		t.Errorf("status error = %+v", se)
	}
}

func TestMalformedJSON(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{not json`)
	})

	if _, err := c.ListProducts(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestCreateSalesRecord(t *testing.T) {
	date := time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC)
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["product_id"] != "P0004" || body["quantity_sold"] != float64(3) || body["promotion_marker"] != true {
			t.Errorf("body = %v", body)
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":"SO-101","product_id":"P0004","transaction_date":"2025-05-30T00:00:00Z","quantity_sold":3,"unit_price_at_sale":59.99,"discount_applied":5,"promotion_marker":true}`)
	})

	rec, err := c.CreateSalesRecord(context.Background(), model.NewSalesRecord{
		ProductID:       "P0004",
		ProductName:     "Bluetooth Earbuds",
		TransactionDate: date,
		QuantitySold:    3,
		UnitPrice:       59.99,
		Discount:        5,
		Promotion:       true,
	})
	if err != nil {
		t.Fatalf("CreateSalesRecord: %v", err)
	}
	if rec.ID != "SO-101" || rec.ProductName != "Bluetooth Earbuds" || !rec.TransactionDate.Equal(date) {
		t.Errorf("record = %+v", rec)
	}
}

func TestCreateSalesRecordEmptyBody(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rec, err := c.CreateSalesRecord(context.Background(), model.NewSalesRecord{ProductID: "P0001", QuantitySold: 2, UnitPrice: 24.99})
	if err != nil {
		t.Fatalf("CreateSalesRecord: %v", err)
	}
	if rec.ProductID != "P0001" || rec.QuantitySold != 2 {
		t.Errorf("record = %+v", rec)
	}
}

func TestContextCancelled(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.ListProducts(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
