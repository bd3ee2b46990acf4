// Package validate holds the field checks shared by every form.
package validate

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

// FieldErrors collects one message per field in insertion order.
type FieldErrors struct {
	fields []string
	msgs   map[string]string
}

// Add records msg for field unless the field already has an error.
func (e *FieldErrors) Add(field, msg string) {
	if e.msgs == nil {
		e.msgs = make(map[string]string)
	}
	if _, ok := e.msgs[field]; ok {
		return
	}
	e.fields = append(e.fields, field)
	e.msgs[field] = msg
}

// Check adds msg for field when ok is false.
func (e *FieldErrors) Check(ok bool, field, msg string) {
	if !ok {
		e.Add(field, msg)
	}
}

// Get returns the message for field, or "".
func (e *FieldErrors) Get(field string) string {
	if e == nil {
		return ""
	}
	return e.msgs[field]
}

// Has reports whether field has an error.
func (e *FieldErrors) Has(field string) bool {
	return e.Get(field) != ""
}

// Fields returns the fields with errors, first error first.
func (e *FieldErrors) Fields() []string {
	if e == nil {
		return nil
	}
	return append([]string(nil), e.fields...)
}

// Len returns the number of fields with errors.
func (e *FieldErrors) Len() int {
	if e == nil {
		return 0
	}
	return len(e.fields)
}

// Err returns e as an error, or nil when there are no errors.
func (e *FieldErrors) Err() error {
	if e.Len() == 0 {
		return nil
	}
	return e
}

func (e *FieldErrors) Error() string {
	parts := make([]string, 0, len(e.fields))
	for _, f := range e.fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.msgs[f]))
	}
	return strings.Join(parts, "; ")
}

// Required reports whether s has non-space content.
func Required(s string) bool {
	return strings.TrimSpace(s) != ""
}

// MaxLen reports whether s is at most n characters.
func MaxLen(s string, n int) bool {
	return utf8.RuneCountInString(s) <= n
}

// Email reports whether s is a bare address like "a@b.co".
func Email(s string) bool {
	s = strings.TrimSpace(s)
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	return at > 0 && strings.Contains(s[at+1:], ".")
}

// Range reports whether min <= v <= max.
func Range(v, min, max float64) bool {
	return v >= min && v <= max
}

// Positive reports whether v > 0.
func Positive(v float64) bool {
	return v > 0
}

// DateLayout is the canonical date input format.
const DateLayout = "2006-01-02"

// Date parses a YYYY-MM-DD date.
func Date(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
