package db

import (
	"database/sql"
	"fmt"

	"stockroom/internal/model"
)

// ListPurchaseOrders retrieves every purchase order with its items, ordered by id.
func ListPurchaseOrders(db *sql.DB) ([]model.PurchaseOrder, error) {
	rows, err := db.Query(`
		SELECT id, supplier_name, order_date, expected_delivery_date, status, COALESCE(notes, ''), created_at
		FROM purchase_orders
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase orders: %w", err)
	}
	defer rows.Close()

	var results []model.PurchaseOrder
	index := make(map[string]int)
	for rows.Next() {
		po, err := scanPurchaseOrder(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase order row: %w", err)
		}
		index[po.ID] = len(results)
		results = append(results, po)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating purchase order rows: %w", err)
	}
	rows.Close()

	items, err := db.Query(`
		SELECT purchase_order_id, name, quantity, price
		FROM purchase_order_items
		ORDER BY purchase_order_id, position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase order items: %w", err)
	}
	defer items.Close()

	for items.Next() {
		var orderID string
		var it model.POItem
		if err := items.Scan(&orderID, &it.Name, &it.Quantity, &it.Price); err != nil {
			return nil, fmt.Errorf("failed to scan purchase order item: %w", err)
		}
		if i, ok := index[orderID]; ok {
			results[i].Items = append(results[i].Items, it)
		}
	}
	if err := items.Err(); err != nil {
		return nil, fmt.Errorf("error iterating purchase order items: %w", err)
	}

	return results, nil
}

// GetPurchaseOrder retrieves a single purchase order with its items.
func GetPurchaseOrder(db *sql.DB, id string) (model.PurchaseOrder, error) {
	row := db.QueryRow(`
		SELECT id, supplier_name, order_date, expected_delivery_date, status, COALESCE(notes, ''), created_at
		FROM purchase_orders
		WHERE id = ?
	`, id)
	po, err := scanPurchaseOrder(row.Scan)
	if err != nil {
		return model.PurchaseOrder{}, fmt.Errorf("failed to get purchase order: %w", err)
	}

	rows, err := db.Query(`
		SELECT name, quantity, price
		FROM purchase_order_items
		WHERE purchase_order_id = ?
		ORDER BY position
	`, id)
	if err != nil {
		return model.PurchaseOrder{}, fmt.Errorf("failed to get purchase order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it model.POItem
		if err := rows.Scan(&it.Name, &it.Quantity, &it.Price); err != nil {
			return model.PurchaseOrder{}, fmt.Errorf("failed to scan purchase order item: %w", err)
		}
		po.Items = append(po.Items, it)
	}
	return po, rows.Err()
}

// NextPurchaseOrderID returns the next free "PO-NNN" id.
func NextPurchaseOrderID(db *sql.DB) (string, error) {
	return nextID(db, "purchase_orders", "PO-")
}

// InsertPurchaseOrder creates a purchase order and its items in one
// transaction. An empty id is assigned from NextPurchaseOrderID.
func InsertPurchaseOrder(db *sql.DB, p model.NewPurchaseOrder) (string, error) {
	if p.ID == "" {
		id, err := NextPurchaseOrderID(db)
		if err != nil {
			return "", err
		}
		p.ID = id
	}
	po := model.PurchaseOrder{
		ID:                   p.ID,
		SupplierName:         p.SupplierName,
		OrderDate:            p.OrderDate,
		ExpectedDeliveryDate: p.ExpectedDeliveryDate,
		Status:               p.Status,
		Items:                p.Items,
		Notes:                p.Notes,
	}
	if err := InsertPurchaseOrderWithID(db, po); err != nil {
		return "", err
	}
	return p.ID, nil
}

// UpdatePurchaseOrder replaces a purchase order and its items.
func UpdatePurchaseOrder(db *sql.DB, p model.NewPurchaseOrder) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE purchase_orders
		SET supplier_name = ?, order_date = ?, expected_delivery_date = ?, status = ?, notes = ?
		WHERE id = ?
	`, p.SupplierName, formatDate(p.OrderDate), formatDate(p.ExpectedDeliveryDate), p.Status, nullIfEmpty(p.Notes), p.ID)
	if err != nil {
		return fmt.Errorf("failed to update purchase order: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("failed to update purchase order: %w", sql.ErrNoRows)
	}

	if _, err := tx.Exec("DELETE FROM purchase_order_items WHERE purchase_order_id = ?", p.ID); err != nil {
		return fmt.Errorf("failed to clear purchase order items: %w", err)
	}
	if err := insertItems(tx, p.ID, p.Items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// SetPurchaseOrderStatus marks an order Ordered or Received.
func SetPurchaseOrderStatus(db *sql.DB, id, status string) error {
	if _, err := db.Exec("UPDATE purchase_orders SET status = ? WHERE id = ?", status, id); err != nil {
		return fmt.Errorf("failed to set purchase order status: %w", err)
	}
	return nil
}

// DeletePurchaseOrder deletes a purchase order and its items.
func DeletePurchaseOrder(db *sql.DB, id string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM purchase_order_items WHERE purchase_order_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete purchase order items: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM purchase_orders WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete purchase order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func scanPurchaseOrder(scan func(dest ...interface{}) error) (model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	var orderDate, expected sql.NullString
	var createdAt string
	if err := scan(&po.ID, &po.SupplierName, &orderDate, &expected, &po.Status, &po.Notes, &createdAt); err != nil {
		return model.PurchaseOrder{}, err
	}
	po.OrderDate = parseDate(orderDate)
	po.ExpectedDeliveryDate = parseDate(expected)
	po.CreatedAt = parseTimestamp(createdAt)
	return po, nil
}

func insertItems(tx *sql.Tx, orderID string, items []model.POItem) error {
	for i, it := range items {
		_, err := tx.Exec(`
			INSERT INTO purchase_order_items (purchase_order_id, position, name, quantity, price)
			VALUES (?, ?, ?, ?, ?)
		`, orderID, i, it.Name, it.Quantity, it.Price)
		if err != nil {
			return fmt.Errorf("failed to insert purchase order item: %w", err)
		}
	}
	return nil
}
