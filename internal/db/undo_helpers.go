package db

import (
	"database/sql"
	"fmt"

	"stockroom/internal/model"
)

func InsertContactWithID(db *sql.DB, c model.Contact) error {
	query := `
		INSERT INTO contacts (id, kind, company, name, email, phone, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := db.Exec(query, c.ID, c.Kind, c.Company, c.Name, nullIfEmpty(c.Email), nullIfEmpty(c.Phone), nullIfEmpty(c.Notes), timestampOrNow(c.CreatedAt)); err != nil {
		return fmt.Errorf("failed to insert contact with id: %w", err)
	}
	return nil
}

func InsertSalesRecordWithID(db *sql.DB, r model.SalesRecord) error {
	query := `
		INSERT INTO sales_records (id, product_id, transaction_date, quantity_sold, unit_price, discount, promotion, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := db.Exec(query, r.ID, r.ProductID, timestampOrNow(r.TransactionDate), r.QuantitySold, r.UnitPrice, r.Discount, boolToInt(r.Promotion), timestampOrNow(r.CreatedAt)); err != nil {
		return fmt.Errorf("failed to insert sales record with id: %w", err)
	}
	return nil
}

func InsertPurchaseOrderWithID(db *sql.DB, p model.PurchaseOrder) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO purchase_orders (id, supplier_name, order_date, expected_delivery_date, status, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := tx.Exec(query, p.ID, p.SupplierName, formatDate(p.OrderDate), formatDate(p.ExpectedDeliveryDate), p.Status, nullIfEmpty(p.Notes), timestampOrNow(p.CreatedAt)); err != nil {
		return fmt.Errorf("failed to insert purchase order with id: %w", err)
	}
	if err := insertItems(tx, p.ID, p.Items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
