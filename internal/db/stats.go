package db

import (
	"database/sql"
	"fmt"

	"stockroom/internal/model"
)

// LowStockThreshold is the stock level below which a product counts as low.
const LowStockThreshold = 25

// GetDashboardStats computes the Dashboard summary.
func GetDashboardStats(db *sql.DB) (model.DashboardStats, error) {
	var s model.DashboardStats

	err := db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN current_stock < ? THEN 1 ELSE 0 END), 0)
		FROM products
	`, LowStockThreshold).Scan(&s.Products, &s.LowStock)
	if err != nil {
		return s, fmt.Errorf("failed to count products: %w", err)
	}

	err = db.QueryRow(`
		SELECT COUNT(DISTINCT o.id), COALESCE(SUM(i.quantity * i.price), 0)
		FROM purchase_orders o
		LEFT JOIN purchase_order_items i ON i.purchase_order_id = o.id
		WHERE o.status = ?
	`, model.StatusOrdered).Scan(&s.OpenOrders, &s.OpenOrderValue)
	if err != nil {
		return s, fmt.Errorf("failed to sum open purchase orders: %w", err)
	}

	var lastSale sql.NullString
	err = db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(ROUND(quantity_sold * unit_price * (100 - discount) / 100, 2)), 0),
		       MAX(transaction_date)
		FROM sales_records
	`).Scan(&s.SalesCount, &s.Revenue, &lastSale)
	if err != nil {
		return s, fmt.Errorf("failed to sum sales: %w", err)
	}
	if lastSale.Valid {
		s.LastSale = parseTimestamp(lastSale.String)
	}

	return s, nil
}
