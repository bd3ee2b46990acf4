package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"stockroom/internal/model"
)

const salesRecordColumns = `
	s.id, s.product_id, COALESCE(p.name, ''), s.transaction_date,
	s.quantity_sold, s.unit_price, s.discount, s.promotion, s.created_at`

func scanSalesRecord(scan func(dest ...interface{}) error) (model.SalesRecord, error) {
	var r model.SalesRecord
	var date, createdAt string
	var promotion int
	if err := scan(&r.ID, &r.ProductID, &r.ProductName, &date, &r.QuantitySold, &r.UnitPrice, &r.Discount, &promotion, &createdAt); err != nil {
		return model.SalesRecord{}, err
	}
	r.TransactionDate = parseTimestamp(date)
	r.Promotion = promotion == 1
	r.CreatedAt = parseTimestamp(createdAt)
	return r, nil
}

// ListSalesRecords retrieves all sales, newest first.
func ListSalesRecords(db *sql.DB) ([]model.SalesRecord, error) {
	rows, err := db.Query(`
		SELECT` + salesRecordColumns + `
		FROM sales_records s
		LEFT JOIN products p ON s.product_id = p.id
		ORDER BY s.transaction_date DESC, s.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales records: %w", err)
	}
	defer rows.Close()

	var results []model.SalesRecord
	for rows.Next() {
		r, err := scanSalesRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sales record row: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales record rows: %w", err)
	}

	return results, nil
}

// GetSalesRecord retrieves a single sale by id.
func GetSalesRecord(db *sql.DB, id string) (model.SalesRecord, error) {
	row := db.QueryRow(`
		SELECT`+salesRecordColumns+`
		FROM sales_records s
		LEFT JOIN products p ON s.product_id = p.id
		WHERE s.id = ?
	`, id)
	r, err := scanSalesRecord(row.Scan)
	if err != nil {
		return model.SalesRecord{}, fmt.Errorf("failed to get sales record: %w", err)
	}
	return r, nil
}

// NextSalesRecordID returns the next free "SO-NNN" id.
func NextSalesRecordID(db *sql.DB) (string, error) {
	return nextID(db, "sales_records", "SO-")
}

// InsertSalesRecord records a sale under a fresh id and returns it.
func InsertSalesRecord(db *sql.DB, r model.NewSalesRecord) (model.SalesRecord, error) {
	id, err := NextSalesRecordID(db)
	if err != nil {
		return model.SalesRecord{}, err
	}
	rec := model.SalesRecord{
		ID:              id,
		ProductID:       r.ProductID,
		ProductName:     r.ProductName,
		TransactionDate: r.TransactionDate,
		QuantitySold:    r.QuantitySold,
		UnitPrice:       r.UnitPrice,
		Discount:        r.Discount,
		Promotion:       r.Promotion,
		CreatedAt:       time.Now().UTC().Truncate(time.Second),
	}
	if err := InsertSalesRecordWithID(db, rec); err != nil {
		return model.SalesRecord{}, fmt.Errorf("failed to insert sales record: %w", err)
	}
	return rec, nil
}

// DeleteSalesRecord deletes a sale.
func DeleteSalesRecord(db *sql.DB, id string) error {
	if _, err := db.Exec("DELETE FROM sales_records WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete sales record: %w", err)
	}
	return nil
}

// nextID scans ids of the form prefix+digits and returns the successor of
// the largest, zero-padded to three digits.
func nextID(db *sql.DB, table, prefix string) (string, error) {
	rows, err := db.Query(fmt.Sprintf("SELECT id FROM %s WHERE id LIKE ? || '%%'", table), prefix)
	if err != nil {
		return "", fmt.Errorf("failed to query %s ids: %w", table, err)
	}
	defer rows.Close()

	highest := 0
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("failed to scan %s id: %w", table, err)
		}
		if n, err := strconv.Atoi(strings.TrimPrefix(id, prefix)); err == nil && n > highest {
			highest = n
		}
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("error iterating %s ids: %w", table, err)
	}
	return fmt.Sprintf("%s%03d", prefix, highest+1), nil
}
