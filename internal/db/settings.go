package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"stockroom/internal/model"
)

// GetAccount returns the stored account, or a zero Account when none is saved.
func GetAccount(db *sql.DB) (model.Account, error) {
	var a model.Account
	var dob sql.NullString
	err := db.QueryRow("SELECT name, date_of_birth FROM account WHERE id = 1").Scan(&a.Name, &dob)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, nil
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to get account: %w", err)
	}
	a.DateOfBirth = parseDate(dob)
	return a, nil
}

// SaveAccount upserts the account.
func SaveAccount(db *sql.DB, a model.Account) error {
	_, err := db.Exec(`
		INSERT INTO account (id, name, date_of_birth) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, date_of_birth = excluded.date_of_birth
	`, a.Name, formatDate(a.DateOfBirth))
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

// GetProfile returns the stored profile, or a zero Profile when none is saved.
func GetProfile(db *sql.DB) (model.Profile, error) {
	var p model.Profile
	var bio, picture sql.NullString
	var emails string
	err := db.QueryRow(`
		SELECT first_name, last_name, bio, emails, picture_path
		FROM profile
		WHERE id = 1
	`).Scan(&p.FirstName, &p.LastName, &bio, &emails, &picture)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Profile{}, nil
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}
	p.Bio = bio.String
	p.PicturePath = picture.String
	p.Emails = splitEmails(emails)
	return p, nil
}

// SaveProfile upserts the profile.
func SaveProfile(db *sql.DB, p model.Profile) error {
	_, err := db.Exec(`
		INSERT INTO profile (id, first_name, last_name, bio, emails, picture_path) VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			bio = excluded.bio,
			emails = excluded.emails,
			picture_path = excluded.picture_path
	`, p.FirstName, p.LastName, nullIfEmpty(p.Bio), strings.Join(p.Emails, "\n"), nullIfEmpty(p.PicturePath))
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func splitEmails(s string) []string {
	var out []string
	for _, e := range strings.Split(s, "\n") {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}
