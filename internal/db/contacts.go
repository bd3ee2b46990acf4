package db

import (
	"database/sql"
	"fmt"

	"stockroom/internal/model"
)

// ListContacts retrieves vendors or customers, optionally filtered by company
// or contact name.
func ListContacts(db *sql.DB, kind, filter string) ([]model.Contact, error) {
	query := `
		SELECT id, kind, company, name, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(notes, ''), created_at
		FROM contacts
		WHERE kind = ?
		  AND (? = '' OR company LIKE '%' || ? || '%' OR name LIKE '%' || ? || '%')
		ORDER BY company, name
	`

	rows, err := db.Query(query, kind, filter, filter, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var results []model.Contact
	for rows.Next() {
		var c model.Contact
		var createdAt string
		if err := rows.Scan(&c.ID, &c.Kind, &c.Company, &c.Name, &c.Email, &c.Phone, &c.Notes, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact row: %w", err)
		}
		c.CreatedAt = parseTimestamp(createdAt)
		results = append(results, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contact rows: %w", err)
	}

	return results, nil
}

// GetContact retrieves a single contact by ID.
func GetContact(db *sql.DB, id int64) (model.Contact, error) {
	var c model.Contact
	var createdAt string
	err := db.QueryRow(`
		SELECT id, kind, company, name, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(notes, ''), created_at
		FROM contacts
		WHERE id = ?
	`, id).Scan(&c.ID, &c.Kind, &c.Company, &c.Name, &c.Email, &c.Phone, &c.Notes, &createdAt)
	if err != nil {
		return model.Contact{}, fmt.Errorf("failed to get contact: %w", err)
	}
	c.CreatedAt = parseTimestamp(createdAt)
	return c, nil
}

// InsertContact creates a new vendor or customer.
func InsertContact(db *sql.DB, c model.NewContact) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO contacts (kind, company, name, email, phone, notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`, c.Kind, c.Company, c.Name, nullIfEmpty(c.Email), nullIfEmpty(c.Phone), nullIfEmpty(c.Notes))
	if err != nil {
		return 0, fmt.Errorf("failed to insert contact: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return id, nil
}

// UpdateContact updates an existing contact.
func UpdateContact(db *sql.DB, c model.UpdateContact) error {
	_, err := db.Exec(`
		UPDATE contacts
		SET company = ?, name = ?, email = ?, phone = ?, notes = ?
		WHERE id = ?
	`, c.Company, c.Name, nullIfEmpty(c.Email), nullIfEmpty(c.Phone), nullIfEmpty(c.Notes), c.ID)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}
	return nil
}

// DeleteContact deletes a contact.
func DeleteContact(db *sql.DB, id int64) error {
	if _, err := db.Exec("DELETE FROM contacts WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return nil
}
