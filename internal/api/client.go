// Package api is the client for the back-office REST service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"stockroom/internal/model"
)

// ErrNotFound is returned for a 404 response.
var ErrNotFound = errors.New("not found")

// StatusError is returned for any other non-2xx response.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("API error: %s: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("API error: %s", e.Status)
}

// Client wraps the products and sales-records endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default 5s-timeout HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 5 * time.Second},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListProducts fetches the product catalogue.
func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/", nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListForecasts fetches demand forecasts over a window of days.
func (c *Client) ListForecasts(ctx context.Context, days int) ([]model.ProductForecast, error) {
	params := url.Values{}
	params.Set("forecast", "true")
	params.Set("days", strconv.Itoa(days))

	var entries []forecastEntry
	if err := c.do(ctx, http.MethodGet, "/api/products/", params, nil, &entries); err != nil {
		return nil, err
	}

	// A null forecast means the service has none for that product.
	forecasts := make([]model.ProductForecast, 0, len(entries))
	for _, e := range entries {
		if e.Forecast == nil {
			continue
		}
		forecasts = append(forecasts, model.ProductForecast{
			ProductID:           e.ProductID,
			TotalPredictedUnits: e.Forecast.TotalPredictedUnits,
			ForecastDays:        e.Forecast.ForecastDays,
		})
	}
	return forecasts, nil
}

// forecastEntry is one element of GET /api/products/?forecast=true&days=N.
type forecastEntry struct {
	ProductID string `json:"product_id"`
	Forecast  *struct {
		TotalPredictedUnits int `json:"total_predicted_units"`
		ForecastDays        int `json:"forecast_days"`
	} `json:"forecast"`
}

// GetProduct fetches one product.
func (c *Client) GetProduct(ctx context.Context, id string) (model.Product, error) {
	var p model.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, nil, &p); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// ListSalesRecords fetches every recorded sale.
func (c *Client) ListSalesRecords(ctx context.Context) ([]model.SalesRecord, error) {
	var records []model.SalesRecord
	if err := c.do(ctx, http.MethodGet, "/api/sales-records/", nil, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CreateSalesRecord posts a sale and returns the stored record. An empty
// response body yields a record built from the request.
func (c *Client) CreateSalesRecord(ctx context.Context, rec model.NewSalesRecord) (model.SalesRecord, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return model.SalesRecord{}, fmt.Errorf("JSON encode error: %w", err)
	}

	created := model.SalesRecord{
		ProductID:       rec.ProductID,
		ProductName:     rec.ProductName,
		TransactionDate: rec.TransactionDate,
		QuantitySold:    rec.QuantitySold,
		UnitPrice:       rec.UnitPrice,
		Discount:        rec.Discount,
		Promotion:       rec.Promotion,
	}
	if err := c.do(ctx, http.MethodPost, "/api/sales-records/", nil, body, &created); err != nil {
		return model.SalesRecord{}, err
	}
	if created.ProductName == "" {
		created.ProductName = rec.ProductName
	}
	return created, nil
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body []byte, out interface{}) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	// Create request
	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Execute request
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("api request failed", "method", method, "url", reqURL, "request_id", requestID, "err", err)
		return fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api request", "method", method, "url", reqURL, "request_id", requestID,
		"status", resp.StatusCode, "elapsed", time.Since(start))

	// Non-2xx response
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return &StatusError{Code: resp.StatusCode, Status: resp.Status, Body: strings.TrimSpace(string(snippet))}
	}

	// Parse response
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read error: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("JSON decode error: %w", err)
	}
	return nil
}
