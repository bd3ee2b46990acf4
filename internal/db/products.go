package db

import (
	"database/sql"
	"fmt"
	"time"

	"stockroom/internal/forecast"
	"stockroom/internal/model"
)

// ListProducts retrieves the product catalogue ordered by id.
func ListProducts(db *sql.DB) ([]model.Product, error) {
	rows, err := db.Query(`
		SELECT id, name, category, unit_price, competitor_price, current_stock
		FROM products
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var results []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.UnitPrice, &p.CompetitorPrice, &p.CurrentStock); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		results = append(results, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}

	return results, nil
}

// GetProduct retrieves a single product by id.
func GetProduct(db *sql.DB, id string) (model.Product, error) {
	var p model.Product
	err := db.QueryRow(`
		SELECT id, name, category, unit_price, competitor_price, current_stock
		FROM products
		WHERE id = ?
	`, id).Scan(&p.ID, &p.Name, &p.Category, &p.UnitPrice, &p.CompetitorPrice, &p.CurrentStock)
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

// InsertProduct adds a catalogue entry.
func InsertProduct(db *sql.DB, p model.Product) error {
	_, err := db.Exec(`
		INSERT INTO products (id, name, category, unit_price, competitor_price, current_stock)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Category, p.UnitPrice, p.CompetitorPrice, p.CurrentStock)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

// ListForecasts projects demand for every product with recent sales.
func ListForecasts(db *sql.DB, days int, now time.Time) ([]model.ProductForecast, error) {
	records, err := ListSalesRecords(db)
	if err != nil {
		return nil, err
	}
	return forecast.Project(records, days, now), nil
}
