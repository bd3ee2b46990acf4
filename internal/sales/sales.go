// Package sales holds the sales order arithmetic and form rules.
package sales

import (
	"math"
	"strconv"
	"strings"
	"time"

	"stockroom/internal/model"
	"stockroom/internal/validate"
)

// Total is the line total after a percentage discount, rounded to cents.
func Total(quantity int, unitPrice, discountPct float64) float64 {
	subtotal := float64(quantity) * unitPrice
	return math.Round((subtotal-subtotal*discountPct/100)*100) / 100
}

// RecordTotal is Total for a stored record.
func RecordTotal(r model.SalesRecord) float64 {
	return Total(r.QuantitySold, r.UnitPrice, r.Discount)
}

// Input is the raw sales order form.
type Input struct {
	Date        string
	ProductName string
	Quantity    string
	Price       string
	Discount    string
	Promotion   bool
}

// Validate checks the form and converts it. lookup resolves a product name
// to its id; an unknown name is reported on the product field.
func Validate(in Input, lookup func(name string) (string, bool)) (model.NewSalesRecord, *validate.FieldErrors) {
	var errs validate.FieldErrors
	rec := model.NewSalesRecord{
		ProductName: strings.TrimSpace(in.ProductName),
		Promotion:   in.Promotion,
	}

	if !validate.Required(in.Date) {
		errs.Add("date", "Date is required")
	} else if t, ok := validate.Date(in.Date); ok {
		rec.TransactionDate = t
	} else {
		errs.Add("date", "Use YYYY-MM-DD")
	}

	if rec.ProductName == "" {
		errs.Add("productName", "Product name is required")
	} else if id, ok := lookup(rec.ProductName); ok {
		rec.ProductID = id
	} else {
		errs.Add("productName", "Unknown product")
	}

	if q, err := strconv.Atoi(strings.TrimSpace(in.Quantity)); err != nil {
		errs.Add("quantity", "Quantity must be a whole number")
	} else {
		errs.Check(q > 0, "quantity", "Quantity must be positive")
		rec.QuantitySold = q
	}

	if p, err := parseNumber(in.Price); err != nil {
		errs.Add("price", "Price must be a number")
	} else {
		errs.Check(validate.Positive(p), "price", "Price must be positive")
		rec.UnitPrice = p
	}

	// An empty discount means none.
	if strings.TrimSpace(in.Discount) != "" {
		if d, err := parseNumber(in.Discount); err != nil {
			errs.Add("discount", "Discount must be a number")
		} else {
			errs.Check(d >= 0, "discount", "Discount cannot be negative")
			errs.Check(d <= 100, "discount", "Discount cannot exceed 100%")
			rec.Discount = d
		}
	}
	return rec, &errs
}

// Check validates an already typed record, as submitted by non-form callers.
func Check(rec model.NewSalesRecord) *validate.FieldErrors {
	var errs validate.FieldErrors
	errs.Check(!rec.TransactionDate.IsZero(), "date", "Date is required")
	errs.Check(validate.Required(rec.ProductID), "productName", "Product name is required")
	errs.Check(rec.QuantitySold > 0, "quantity", "Quantity must be positive")
	if finite(rec.UnitPrice) {
		errs.Check(validate.Positive(rec.UnitPrice), "price", "Price must be positive")
	} else {
		errs.Add("price", "Price must be a number")
	}
	errs.Check(rec.Discount >= 0, "discount", "Discount cannot be negative")
	errs.Check(rec.Discount <= 100, "discount", "Discount cannot exceed 100%")
	return &errs
}

// Today is the default date shown in a new sales form.
func Today(now time.Time) string {
	return now.Format(validate.DateLayout)
}

func finite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "%")
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, err
	}
	if !finite(f) {
		return 0, strconv.ErrSyntax
	}
	return f, nil
}
