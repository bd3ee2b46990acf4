package db

import (
	"database/sql"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"stockroom/internal/model"
)

var seedTime = time.Date(2025, 5, 31, 9, 30, 0, 0, time.UTC)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "stockroom.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seededDB(t *testing.T) *sql.DB {
	t.Helper()
	db := openTestDB(t)
	if ok, err := Seed(db, seedTime); err != nil || !ok {
		t.Fatalf("Seed() = %v, %v", ok, err)
	}
	return db
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stockroom.db")
	for i := 0; i < 2; i++ {
		db, err := Open(path)
		if err != nil {
			t.Fatalf("Open() #%d error = %v", i, err)
		}
		db.Close()
	}
}

func TestSeed(t *testing.T) {
	db := seededDB(t)

	if ok, err := Seed(db, seedTime); err != nil || ok {
		t.Errorf("second Seed() = %v, %v; want false, nil", ok, err)
	}

	products, err := ListProducts(db)
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 20 || products[0].ID != "P0001" || products[19].Name != "Giant Craft Box Kit" {
		t.Errorf("products = %d, first %+v", len(products), products[0])
	}

	orders, err := ListPurchaseOrders(db)
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	if want := []string{"PO-001", "PO-002", "PO-003", "PO-004", "PO-005"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("purchase orders = %v, want %v", ids, want)
	}

	sales, err := ListSalesRecords(db)
	if err != nil {
		t.Fatal(err)
	}
	if len(sales) != SeedHistoryDays {
		t.Errorf("sales = %d, want %d", len(sales), SeedHistoryDays)
	}
	if sales[0].ID != "SO-028" || sales[0].ProductName == "" {
		t.Errorf("newest sale = %+v", sales[0])
	}

	vendors, _ := ListContacts(db, model.KindVendor, "")
	customers, _ := ListContacts(db, model.KindCustomer, "")
	if len(vendors) != 5 || len(customers) != 2 {
		t.Errorf("vendors = %d, customers = %d", len(vendors), len(customers))
	}
}

func TestPurchaseOrderItemsRoundTrip(t *testing.T) {
	db := seededDB(t)

	po, err := GetPurchaseOrder(db, "PO-003")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(po.Items, SamplePurchaseOrders[2].Items) {
		t.Errorf("items = %v", po.Items)
	}
	if po.Total() != 660 {
		t.Errorf("Total() = %v, want 660", po.Total())
	}
	if got := po.OrderDate.Format("2006-01-02"); got != "2025-05-08" {
		t.Errorf("OrderDate = %s", got)
	}
	if po.Notes != "Office supplies for new location" {
		t.Errorf("Notes = %q", po.Notes)
	}
}

func TestPurchaseOrderCRUD(t *testing.T) {
	db := seededDB(t)

	id, err := InsertPurchaseOrder(db, model.NewPurchaseOrder{
		SupplierName: "Tech Wholesale",
		OrderDate:    day("2025-05-12"),
		Status:       model.StatusOrdered,
		Items:        []model.POItem{{Name: "Cables", Quantity: 40, Price: 3.5}},
	})
	if err != nil {
		t.Fatalf("InsertPurchaseOrder() error = %v", err)
	}
	if id != "PO-006" {
		t.Errorf("id = %q, want PO-006", id)
	}

	update := model.NewPurchaseOrder{
		ID:                   id,
		SupplierName:         "Tech Wholesale",
		OrderDate:            day("2025-05-12"),
		ExpectedDeliveryDate: day("2025-05-19"),
		Status:               model.StatusOrdered,
		Items:                []model.POItem{{Name: "Cables", Quantity: 20, Price: 3.5}, {Name: "Adapters", Quantity: 5, Price: 9}},
		Notes:                "split shipment",
	}
	if err := UpdatePurchaseOrder(db, update); err != nil {
		t.Fatalf("UpdatePurchaseOrder() error = %v", err)
	}
	if err := SetPurchaseOrderStatus(db, id, model.StatusReceived); err != nil {
		t.Fatal(err)
	}

	po, err := GetPurchaseOrder(db, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(po.Items) != 2 || po.Items[1].Name != "Adapters" || po.Status != model.StatusReceived || po.Notes != "split shipment" {
		t.Errorf("after update = %+v", po)
	}

	if err := DeletePurchaseOrder(db, id); err != nil {
		t.Fatal(err)
	}
	if _, err := GetPurchaseOrder(db, id); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetPurchaseOrder() after delete error = %v, want sql.ErrNoRows", err)
	}

	if err := InsertPurchaseOrderWithID(db, po); err != nil {
		t.Fatalf("InsertPurchaseOrderWithID() error = %v", err)
	}
	restored, err := GetPurchaseOrder(db, id)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(restored.Items, po.Items) || !restored.CreatedAt.Equal(po.CreatedAt) {
		t.Errorf("restored = %+v, want %+v", restored, po)
	}
}

func TestUpdateMissingPurchaseOrder(t *testing.T) {
	db := openTestDB(t)
	err := UpdatePurchaseOrder(db, model.NewPurchaseOrder{ID: "PO-404", SupplierName: "x", OrderDate: day("2025-01-01"), Status: model.StatusOrdered})
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("UpdatePurchaseOrder() error = %v, want sql.ErrNoRows", err)
	}
}

func TestPurchaseOrderRollsBackOnBadItem(t *testing.T) {
	db := openTestDB(t)
	_, err := InsertPurchaseOrder(db, model.NewPurchaseOrder{
		ID:           "PO-100",
		SupplierName: "ABC Supplier",
		OrderDate:    day("2025-05-12"),
		Status:       model.StatusOrdered,
		Items:        []model.POItem{{Name: "Ok", Quantity: 1, Price: 1}, {Name: "Bad", Quantity: 0, Price: 1}},
	})
	if err == nil {
		t.Fatal("InsertPurchaseOrder() accepted a zero quantity")
	}
	if _, err := GetPurchaseOrder(db, "PO-100"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("partial purchase order left behind: %v", err)
	}
}

func TestSalesRecords(t *testing.T) {
	db := seededDB(t)

	rec, err := InsertSalesRecord(db, model.NewSalesRecord{
		ProductID:       "P0004",
		TransactionDate: day("2025-05-31"),
		QuantitySold:    3,
		UnitPrice:       59.99,
		Discount:        10,
		Promotion:       true,
	})
	if err != nil {
		t.Fatalf("InsertSalesRecord() error = %v", err)
	}
	if rec.ID != "SO-029" {
		t.Errorf("ID = %q, want SO-029", rec.ID)
	}

	got, err := GetSalesRecord(db, rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ProductName != "Bluetooth Earbuds" || !got.Promotion || got.Discount != 10 || !got.TransactionDate.Equal(rec.TransactionDate) {
		t.Errorf("GetSalesRecord() = %+v", got)
	}

	if err := DeleteSalesRecord(db, rec.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := GetSalesRecord(db, rec.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("after delete error = %v", err)
	}
	if err := InsertSalesRecordWithID(db, got); err != nil {
		t.Fatalf("InsertSalesRecordWithID() error = %v", err)
	}
	if again, err := GetSalesRecord(db, rec.ID); err != nil || !reflect.DeepEqual(again, got) {
		t.Errorf("restored = %+v, %v; want %+v", again, err, got)
	}
}

func TestSalesRecordCheckConstraints(t *testing.T) {
	db := seededDB(t)
	_, err := InsertSalesRecord(db, model.NewSalesRecord{ProductID: "P0001", TransactionDate: seedTime, QuantitySold: 1, UnitPrice: 2, Discount: 120})
	if err == nil {
		t.Error("InsertSalesRecord() accepted a 120% discount")
	}
}

func TestContacts(t *testing.T) {
	db := openTestDB(t)

	id, err := InsertContact(db, model.NewContact{Kind: model.KindCustomer, Company: "Northside Cafe", Name: "Jo Park", Email: "jo@northside.cafe"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := InsertContact(db, model.NewContact{Kind: model.KindVendor, Company: "ABC Supplier", Name: "Dana"}); err != nil {
		t.Fatal(err)
	}

	list, err := ListContacts(db, model.KindCustomer, "north")
	if err != nil || len(list) != 1 || list[0].ID != id {
		t.Fatalf("ListContacts() = %+v, %v", list, err)
	}
	if list, _ := ListContacts(db, model.KindCustomer, "ABC"); len(list) != 0 {
		t.Errorf("kind filter leaked vendors: %+v", list)
	}

	if err := UpdateContact(db, model.UpdateContact{ID: id, Company: "Northside Cafe", Name: "Jo Park", Phone: "555-0100"}); err != nil {
		t.Fatal(err)
	}
	c, err := GetContact(db, id)
	if err != nil {
		t.Fatal(err)
	}
	if c.Phone != "555-0100" || c.Email != "" {
		t.Errorf("after update = %+v", c)
	}

	if err := DeleteContact(db, id); err != nil {
		t.Fatal(err)
	}
	if err := InsertContactWithID(db, c); err != nil {
		t.Fatal(err)
	}
	restored, err := GetContact(db, id)
	if err != nil || !reflect.DeepEqual(restored, c) {
		t.Errorf("restored = %+v, %v; want %+v", restored, err, c)
	}
}

func TestSettings(t *testing.T) {
	db := openTestDB(t)

	acct, err := GetAccount(db)
	if err != nil || acct.Name != "" {
		t.Fatalf("GetAccount() on empty store = %+v, %v", acct, err)
	}
	for _, name := range []string{"Sam", "Sam Lee"} {
		if err := SaveAccount(db, model.Account{Name: name, DateOfBirth: day("1990-04-02")}); err != nil {
			t.Fatal(err)
		}
	}
	acct, err = GetAccount(db)
	if err != nil || acct.Name != "Sam Lee" || !acct.DateOfBirth.Equal(day("1990-04-02")) {
		t.Errorf("GetAccount() = %+v, %v", acct, err)
	}

	p := model.Profile{FirstName: "Sam", LastName: "Lee", Emails: []string{"sam@example.com", "ops@example.com"}}
	if err := SaveProfile(db, p); err != nil {
		t.Fatal(err)
	}
	got, err := GetProfile(db)
	if err != nil || !reflect.DeepEqual(got, p) {
		t.Errorf("GetProfile() = %+v, %v; want %+v", got, err, p)
	}
}

func TestDashboardStats(t *testing.T) {
	db := seededDB(t)
	s, err := GetDashboardStats(db)
	if err != nil {
		t.Fatal(err)
	}
	if s.Products != 20 || s.LowStock != 3 {
		t.Errorf("Products=%d LowStock=%d, want 20 and 3", s.Products, s.LowStock)
	}
	if s.OpenOrders != 3 || s.OpenOrderValue != 12820 {
		t.Errorf("OpenOrders=%d OpenOrderValue=%v, want 3 and 12820", s.OpenOrders, s.OpenOrderValue)
	}
	if s.SalesCount != SeedHistoryDays || s.Revenue <= 0 {
		t.Errorf("SalesCount=%d Revenue=%v", s.SalesCount, s.Revenue)
	}
	if want := time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC); !s.LastSale.Equal(want) {
		t.Errorf("LastSale = %v, want %v", s.LastSale, want)
	}
}

func TestListForecasts(t *testing.T) {
	db := seededDB(t)
	forecasts, err := ListForecasts(db, 30, seedTime)
	if err != nil {
		t.Fatal(err)
	}
	if len(forecasts) == 0 {
		t.Fatal("ListForecasts() returned nothing for seeded history")
	}
	var units int
	for _, f := range forecasts {
		if f.ForecastDays != 30 {
			t.Errorf("%s ForecastDays = %d", f.ProductID, f.ForecastDays)
		}
		units += f.TotalPredictedUnits
	}
	// Over a 30 day window the projection equals the units sold in the last 30 days.
	sales, _ := ListSalesRecords(db)
	var sold int
	for _, r := range sales {
		sold += r.QuantitySold
	}
	if units != sold {
		t.Errorf("projected %d units, want %d", units, sold)
	}
}
