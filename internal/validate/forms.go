package validate

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"stockroom/internal/model"
)

// Limits applied by the profile form.
const (
	MaxBioLength   = 500
	MaxPictureSize = 15 * 1024 * 1024
)

// Contact checks the vendor and customer forms.
func Contact(c model.NewContact) *FieldErrors {
	var errs FieldErrors
	errs.Check(Required(c.Company), "company", "Company name is required")
	errs.Check(Required(c.Name), "name", "Name is required")
	if Required(c.Email) {
		errs.Check(Email(c.Email), "email", "Invalid email format")
	}
	return &errs
}

// Account checks the account form. now bounds the date of birth.
func Account(name, dateOfBirth string, now time.Time) (model.Account, *FieldErrors) {
	var errs FieldErrors
	acct := model.Account{Name: strings.TrimSpace(name)}
	errs.Check(Required(name), "name", "Your name is required")

	switch dob, ok := Date(dateOfBirth); {
	case !Required(dateOfBirth):
		errs.Add("dateOfBirth", "Date of Birth is required")
	case !ok:
		errs.Add("dateOfBirth", "Use YYYY-MM-DD")
	case dob.After(now):
		errs.Add("dateOfBirth", "Date of Birth cannot be in the future")
	default:
		acct.DateOfBirth = dob
	}
	return acct, &errs
}

// Profile checks the profile form.
func Profile(p model.Profile) *FieldErrors {
	var errs FieldErrors
	errs.Check(Required(p.FirstName), "firstName", "First name is required")
	errs.Check(Required(p.LastName), "lastName", "Last name is required")
	errs.Check(MaxLen(p.Bio, MaxBioLength), "bio", fmt.Sprintf("Bio must be less than %d characters", MaxBioLength))

	if len(p.Emails) == 0 {
		errs.Add("emails", "At least one email is required")
	}
	for i, e := range p.Emails {
		field := fmt.Sprintf("emails.%d", i)
		if !Required(e) {
			errs.Add(field, "Email cannot be empty")
			continue
		}
		errs.Check(Email(e), field, "Invalid email format")
	}

	if p.PicturePath != "" {
		if msg := Picture(p.PicturePath); msg != "" {
			errs.Add("picture", msg)
		}
	}
	return &errs
}

// Picture checks a profile picture on disk and returns a message, or "".
func Picture(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return "Picture not found"
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return "Picture not found"
	}
	if info.Size() > MaxPictureSize {
		return fmt.Sprintf("Profile picture must be less than %dMB", MaxPictureSize/(1024*1024))
	}

	head := make([]byte, 512)
	n, _ := f.Read(head)
	switch http.DetectContentType(head[:n]) {
	case "image/png", "image/jpeg":
		return ""
	default:
		return "Unsupported file format. Please upload a PNG, JPG or JPEG image."
	}
}

// PurchaseOrderInput is the raw purchase order form.
type PurchaseOrderInput struct {
	ID                   string
	SupplierName         string
	OrderDate            string
	ExpectedDeliveryDate string
	Status               string
	Items                string
	Notes                string
}

// PurchaseOrder checks the purchase order form and converts it.
func PurchaseOrder(in PurchaseOrderInput) (model.NewPurchaseOrder, *FieldErrors) {
	var errs FieldErrors
	po := model.NewPurchaseOrder{
		ID:           strings.TrimSpace(in.ID),
		SupplierName: strings.TrimSpace(in.SupplierName),
		Status:       strings.TrimSpace(in.Status),
		Notes:        strings.TrimSpace(in.Notes),
	}

	errs.Check(Required(in.SupplierName), "supplierName", "Supplier is required")

	if !Required(in.OrderDate) {
		errs.Add("orderDate", "Order date is required")
	} else if t, ok := Date(in.OrderDate); ok {
		po.OrderDate = t
	} else {
		errs.Add("orderDate", "Use YYYY-MM-DD")
	}

	if Required(in.ExpectedDeliveryDate) {
		t, ok := Date(in.ExpectedDeliveryDate)
		switch {
		case !ok:
			errs.Add("expectedDeliveryDate", "Use YYYY-MM-DD")
		case !po.OrderDate.IsZero() && t.Before(po.OrderDate):
			errs.Add("expectedDeliveryDate", "Expected delivery cannot be before the order date")
		default:
			po.ExpectedDeliveryDate = t
		}
	}

	if po.Status == "" {
		po.Status = model.StatusOrdered
	}
	errs.Check(po.Status == model.StatusOrdered || po.Status == model.StatusReceived,
		"status", "Status must be Ordered or Received")

	items, msg := ParseItems(in.Items)
	if msg != "" {
		errs.Add("items", msg)
	}
	po.Items = items
	return po, &errs
}

// ParseItems parses line items written as "name:qty:price", separated by
// commas or newlines.
func ParseItems(s string) ([]model.POItem, string) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '\n' || r == ';' })
	var items []model.POItem
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		parts := strings.Split(f, ":")
		if len(parts) != 3 {
			return nil, fmt.Sprintf("%q: use name:qty:price", f)
		}
		name := strings.TrimSpace(parts[0])
		if name == "" {
			return nil, fmt.Sprintf("%q: item name is required", f)
		}
		qty, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil || qty <= 0 {
			return nil, fmt.Sprintf("%q: quantity must be a positive whole number", f)
		}
		price, err := strconv.ParseFloat(strings.TrimPrefix(strings.TrimSpace(parts[2]), "$"), 64)
		if err != nil || price < 0 {
			return nil, fmt.Sprintf("%q: price cannot be negative", f)
		}
		items = append(items, model.POItem{Name: name, Quantity: qty, Price: price})
	}
	if len(items) == 0 {
		return nil, "At least one item is required"
	}
	return items, ""
}

// FormatItems is the inverse of ParseItems.
func FormatItems(items []model.POItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s:%d:%s", it.Name, it.Quantity, strconv.FormatFloat(it.Price, 'f', -1, 64)))
	}
	return strings.Join(parts, ", ")
}
