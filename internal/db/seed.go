package db

import (
	"database/sql"
	"fmt"
	"time"

	"stockroom/internal/model"
)

// Catalogue is the product list a fresh store starts with.
var Catalogue = []model.Product{
	{ID: "P0001", Name: "Gourmet Coffee Trio", Category: "Grocery", UnitPrice: 24.99, CompetitorPrice: 26.50, CurrentStock: 120},
	{ID: "P0002", Name: "Metal Floor Lamp", Category: "Home", UnitPrice: 89.00, CompetitorPrice: 94.99, CurrentStock: 35},
	{ID: "P0003", Name: "Family Frozen Lasagna", Category: "Grocery", UnitPrice: 12.49, CompetitorPrice: 11.99, CurrentStock: 80},
	{ID: "P0004", Name: "Bluetooth Earbuds", Category: "Electronics", UnitPrice: 59.99, CompetitorPrice: 64.00, CurrentStock: 150},
	{ID: "P0005", Name: "Fresh Berry Yogurt Pack", Category: "Grocery", UnitPrice: 6.99, CompetitorPrice: 7.25, CurrentStock: 200},
	{ID: "P0006", Name: "Mixed Nuts & Fruit Tray", Category: "Grocery", UnitPrice: 18.75, CompetitorPrice: 19.99, CurrentStock: 60},
	{ID: "P0007", Name: "Waterproof BT Speaker", Category: "Electronics", UnitPrice: 45.00, CompetitorPrice: 49.99, CurrentStock: 75},
	{ID: "P0008", Name: "Wired Gaming Mouse", Category: "Electronics", UnitPrice: 29.99, CompetitorPrice: 27.49, CurrentStock: 110},
	{ID: "P0009", Name: "Small Wooden Bookshelf", Category: "Furniture", UnitPrice: 79.00, CompetitorPrice: 85.00, CurrentStock: 18},
	{ID: "P0010", Name: "RC Robot Builder Kit", Category: "Toys", UnitPrice: 54.99, CompetitorPrice: 59.99, CurrentStock: 40},
	{ID: "P0011", Name: "HD Webcam w/ Mic", Category: "Electronics", UnitPrice: 39.99, CompetitorPrice: 42.00, CurrentStock: 65},
	{ID: "P0012", Name: "Men's Dress Shirt", Category: "Apparel", UnitPrice: 34.50, CompetitorPrice: 36.00, CurrentStock: 90},
	{ID: "P0013", Name: "Large Salmon Fillet (3lb)", Category: "Grocery", UnitPrice: 27.99, CompetitorPrice: 29.49, CurrentStock: 24},
	{ID: "P0014", Name: "Kids Learning Tablet", Category: "Toys", UnitPrice: 69.99, CompetitorPrice: 74.99, CurrentStock: 30},
	{ID: "P0015", Name: "Floating Wall Shelves (2)", Category: "Furniture", UnitPrice: 32.00, CompetitorPrice: 29.99, CurrentStock: 45},
	{ID: "P0016", Name: "Gourmet Pasta & Sauce", Category: "Grocery", UnitPrice: 15.49, CompetitorPrice: 16.00, CurrentStock: 85},
	{ID: "P0017", Name: "Quilted Puffer Vest", Category: "Apparel", UnitPrice: 64.00, CompetitorPrice: 69.99, CurrentStock: 38},
	{ID: "P0018", Name: "Studio Monitor Headphones", Category: "Electronics", UnitPrice: 99.00, CompetitorPrice: 109.00, CurrentStock: 22},
	{ID: "P0019", Name: "Cotton Baseball Cap", Category: "Apparel", UnitPrice: 16.99, CompetitorPrice: 15.99, CurrentStock: 140},
	{ID: "P0020", Name: "Giant Craft Box Kit", Category: "Toys", UnitPrice: 24.00, CompetitorPrice: 26.99, CurrentStock: 55},
}

func day(s string) time.Time {
	t, _ := time.Parse(dateLayout, s)
	return t
}

// SamplePurchaseOrders are the purchase orders a fresh store starts with.
var SamplePurchaseOrders = []model.PurchaseOrder{
	{
		ID: "PO-001", SupplierName: "ABC Supplier",
		OrderDate: day("2025-05-10"), ExpectedDeliveryDate: day("2025-05-20"),
		Status: model.StatusOrdered, Notes: "Priority delivery",
		Items: []model.POItem{{Name: "Laptop", Quantity: 5, Price: 1200}, {Name: "Mouse", Quantity: 10, Price: 25}, {Name: "Keyboard", Quantity: 8, Price: 45}},
	},
	{
		ID: "PO-002", SupplierName: "XYZ Manufacturing",
		OrderDate: day("2025-05-05"), ExpectedDeliveryDate: day("2025-05-15"),
		Status: model.StatusReceived,
		Items:  []model.POItem{{Name: "Desk Chair", Quantity: 20, Price: 150}},
	},
	{
		ID: "PO-003", SupplierName: "Office Essentials",
		OrderDate: day("2025-05-08"), ExpectedDeliveryDate: day("2025-05-18"),
		Status: model.StatusOrdered, Notes: "Office supplies for new location",
		Items: []model.POItem{
			{Name: "Paper (Reams)", Quantity: 50, Price: 4.5}, {Name: "Pens (Box)", Quantity: 30, Price: 8},
			{Name: "Stapler", Quantity: 10, Price: 12}, {Name: "Folders", Quantity: 100, Price: 0.75},
		},
	},
	{
		ID: "PO-004", SupplierName: "Tech Wholesale",
		OrderDate: day("2025-04-28"), ExpectedDeliveryDate: day("2025-05-25"),
		Status: model.StatusOrdered, Notes: "For IT department upgrade",
		Items: []model.POItem{{Name: "Monitors", Quantity: 15, Price: 250}, {Name: "Docking Stations", Quantity: 15, Price: 120}},
	},
	{
		ID: "PO-005", SupplierName: "Furniture Plus",
		OrderDate: day("2025-05-01"), ExpectedDeliveryDate: day("2025-06-01"),
		Status: model.StatusReceived, Notes: "Office renovation",
		Items: []model.POItem{{Name: "Standing Desk", Quantity: 5, Price: 350}, {Name: "Bookshelf", Quantity: 3, Price: 180}, {Name: "Filing Cabinet", Quantity: 2, Price: 220}},
	},
}

var sampleContacts = []model.NewContact{
	{Kind: model.KindVendor, Company: "ABC Supplier", Name: "Dana Whitfield", Email: "dana@abcsupplier.com"},
	{Kind: model.KindVendor, Company: "XYZ Manufacturing", Name: "Ravi Patel", Email: "orders@xyzmfg.com"},
	{Kind: model.KindVendor, Company: "Office Essentials", Name: "Maria Gomez"},
	{Kind: model.KindVendor, Company: "Tech Wholesale", Name: "Lee Chen", Phone: "555-0142"},
	{Kind: model.KindVendor, Company: "Furniture Plus", Name: "Sam Okafor"},
	{Kind: model.KindCustomer, Company: "Northside Cafe", Name: "Jo Park", Email: "jo@northside.cafe"},
	{Kind: model.KindCustomer, Company: "Bright Kids Daycare", Name: "Alex Moreno"},
}

// SeedHistoryDays is how many days of sales history Seed writes.
const SeedHistoryDays = 28

// IsEmpty reports whether the store has no products.
func IsEmpty(db *sql.DB) (bool, error) {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM products").Scan(&n); err != nil {
		return false, fmt.Errorf("failed to count products: %w", err)
	}
	return n == 0, nil
}

// Seed fills an empty store with the catalogue, the sample purchase orders,
// vendors, customers and a few weeks of sales ending at now. It does nothing
// when products already exist and reports whether it wrote anything.
func Seed(db *sql.DB, now time.Time) (bool, error) {
	empty, err := IsEmpty(db)
	if err != nil || !empty {
		return false, err
	}

	for _, p := range Catalogue {
		if err := InsertProduct(db, p); err != nil {
			return false, err
		}
	}
	for _, po := range SamplePurchaseOrders {
		if err := InsertPurchaseOrderWithID(db, po); err != nil {
			return false, err
		}
	}
	for _, c := range sampleContacts {
		if _, err := InsertContact(db, c); err != nil {
			return false, err
		}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	discounts := []float64{0, 5, 10}
	for d := 1; d <= SeedHistoryDays; d++ {
		p := Catalogue[(d*7)%len(Catalogue)]
		rec := model.SalesRecord{
			ID:              fmt.Sprintf("SO-%03d", d),
			ProductID:       p.ID,
			TransactionDate: today.AddDate(0, 0, d-SeedHistoryDays-1),
			QuantitySold:    1 + d%5,
			UnitPrice:       p.UnitPrice,
			Discount:        discounts[d%len(discounts)],
			Promotion:       d%4 == 0,
		}
		if err := InsertSalesRecordWithID(db, rec); err != nil {
			return false, err
		}
	}
	return true, nil
}
