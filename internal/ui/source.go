package ui

import (
	"context"
	"database/sql"
	"time"

	"stockroom/internal/api"
	"stockroom/internal/db"
	"stockroom/internal/model"
	"stockroom/internal/sales"
)

// DataSource serves the product catalogue, forecasts and sales records.
// The REST client and the local store both satisfy it.
type DataSource interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListForecasts(ctx context.Context, days int) ([]model.ProductForecast, error)
	ListSalesRecords(ctx context.Context) ([]model.SalesRecord, error)
	CreateSalesRecord(ctx context.Context, rec model.NewSalesRecord) (model.SalesRecord, error)
}

var _ DataSource = (*api.Client)(nil)

// LocalSource adapts the SQLite store to DataSource.
type LocalSource struct {
	db  *sql.DB
	now func() time.Time
}

// NewLocalSource wraps an open store.
func NewLocalSource(database *sql.DB) *LocalSource {
	return &LocalSource{db: database, now: time.Now}
}

func (s *LocalSource) ListProducts(ctx context.Context) ([]model.Product, error) {
	return db.ListProducts(s.db)
}

func (s *LocalSource) ListForecasts(ctx context.Context, days int) ([]model.ProductForecast, error) {
	return db.ListForecasts(s.db, days, s.now())
}

func (s *LocalSource) ListSalesRecords(ctx context.Context) ([]model.SalesRecord, error) {
	return db.ListSalesRecords(s.db)
}

func (s *LocalSource) CreateSalesRecord(ctx context.Context, rec model.NewSalesRecord) (model.SalesRecord, error) {
	if err := sales.Check(rec).Err(); err != nil {
		return model.SalesRecord{}, err
	}
	return db.InsertSalesRecord(s.db, rec)
}

func isLocal(src DataSource) bool {
	_, ok := src.(*LocalSource)
	return ok
}

func sourceLabel(src DataSource) string {
	if c, ok := src.(*api.Client); ok {
		return c.BaseURL()
	}
	return "local store"
}
