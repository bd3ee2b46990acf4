package model

import (
	"fmt"
	"strings"
	"time"
)

// Product is a catalogue entry as served by GET /api/products/.
type Product struct {
	ID              string  `json:"product_id"`
	Name            string  `json:"product_name"`
	Category        string  `json:"category"`
	UnitPrice       float64 `json:"unit_price"`
	CompetitorPrice float64 `json:"competitor_price"`
	CurrentStock    int     `json:"current_stock"`
}

// ProductForecast is the projected demand for one product.
type ProductForecast struct {
	ProductID           string
	TotalPredictedUnits int
	ForecastDays        int
}

// InventoryItem is a product row on the Inventory screen with its forecast label.
type InventoryItem struct {
	Product
	Forecast string
}

// SalesRecord is a recorded sale.
type SalesRecord struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"product_id"`
	ProductName     string    `json:"product_name,omitempty"`
	TransactionDate time.Time `json:"transaction_date"`
	QuantitySold    int       `json:"quantity_sold"`
	UnitPrice       float64   `json:"unit_price_at_sale"`
	Discount        float64   `json:"discount_applied"`
	Promotion       bool      `json:"promotion_marker"`
	CreatedAt       time.Time `json:"-"`
}

// NewSalesRecord is the payload of POST /api/sales-records/.
type NewSalesRecord struct {
	ProductID       string    `json:"product_id"`
	ProductName     string    `json:"-"`
	TransactionDate time.Time `json:"transaction_date"`
	QuantitySold    int       `json:"quantity_sold"`
	UnitPrice       float64   `json:"unit_price_at_sale"`
	Discount        float64   `json:"discount_applied"`
	Promotion       bool      `json:"promotion_marker"`
}

// Purchase order statuses.
const (
	StatusOrdered  = "Ordered"
	StatusReceived = "Received"
)

// POItem is one line of a purchase order.
type POItem struct {
	Name     string
	Quantity int
	Price    float64
}

// Subtotal is quantity times price.
func (i POItem) Subtotal() float64 {
	return float64(i.Quantity) * i.Price
}

func (i POItem) String() string {
	return fmt.Sprintf("%s x%d @ %.2f", i.Name, i.Quantity, i.Price)
}

// PurchaseOrder is an order placed with a supplier.
type PurchaseOrder struct {
	ID                   string
	SupplierName         string
	OrderDate            time.Time
	ExpectedDeliveryDate time.Time
	Status               string
	Items                []POItem
	Notes                string
	CreatedAt            time.Time
}

// Total sums the line subtotals.
func (p PurchaseOrder) Total() float64 {
	var t float64
	for _, it := range p.Items {
		t += it.Subtotal()
	}
	return t
}

// ItemsSummary is the first item name plus a count of the rest.
func (p PurchaseOrder) ItemsSummary() string {
	switch len(p.Items) {
	case 0:
		return ""
	case 1:
		return p.Items[0].Name
	default:
		return fmt.Sprintf("%s +%d more", p.Items[0].Name, len(p.Items)-1)
	}
}

// NewPurchaseOrder represents data for creating or updating a purchase order.
type NewPurchaseOrder struct {
	ID                   string
	SupplierName         string
	OrderDate            time.Time
	ExpectedDeliveryDate time.Time
	Status               string
	Items                []POItem
	Notes                string
}

// Contact kinds.
const (
	KindVendor   = "vendor"
	KindCustomer = "customer"
)

// Contact is a vendor or a customer.
type Contact struct {
	ID        int64
	Kind      string
	Company   string
	Name      string
	Email     string
	Phone     string
	Notes     string
	CreatedAt time.Time
}

// NewContact represents data for creating a contact.
type NewContact struct {
	Kind    string
	Company string
	Name    string
	Email   string
	Phone   string
	Notes   string
}

// UpdateContact represents data for updating a contact.
type UpdateContact struct {
	ID      int64
	Company string
	Name    string
	Email   string
	Phone   string
	Notes   string
}

// Account holds the account settings.
type Account struct {
	Name        string
	DateOfBirth time.Time
}

// Profile holds the public profile.
type Profile struct {
	FirstName   string
	LastName    string
	Bio         string
	Emails      []string
	PicturePath string
}

// FullName joins first and last name.
func (p Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// DashboardStats summarizes the store for the Dashboard screen.
type DashboardStats struct {
	Products       int
	LowStock       int
	OpenOrders     int
	OpenOrderValue float64
	SalesCount     int
	Revenue        float64
	LastSale       time.Time
}
