package sales

import (
	"math"
	"testing"
	"time"

	"stockroom/internal/model"
)

func lookup(name string) (string, bool) {
	ids := map[string]string{"Gourmet Coffee Trio": "P0001", "Metal Floor Lamp": "P0002"}
	id, ok := ids[name]
	return id, ok
}

func TestTotal(t *testing.T) {
	tests := []struct {
		qty      int
		price    float64
		discount float64
		want     float64
	}{
		{1, 10, 0, 10},
		{3, 19.99, 0, 59.97},
		{3, 19.99, 10, 53.97},
		{2, 12.5, 100, 0},
		{0, 12.5, 0, 0},
		{7, 1.15, 33, 5.39},
	}
	for _, tt := range tests {
		if got := Total(tt.qty, tt.price, tt.discount); got != tt.want {
			t.Errorf("Total(%d, %v, %v) = %v, want %v", tt.qty, tt.price, tt.discount, got, tt.want)
		}
	}
}

func TestRecordTotal(t *testing.T) {
	r := model.SalesRecord{QuantitySold: 4, UnitPrice: 25, Discount: 5}
	if got := RecordTotal(r); got != 95 {
		t.Errorf("RecordTotal() = %v, want 95", got)
	}
}

func TestValidate(t *testing.T) {
	valid := Input{Date: "2025-05-10", ProductName: "Gourmet Coffee Trio", Quantity: "2", Price: "$18.50", Discount: "10"}

	rec, errs := Validate(valid, lookup)
	if errs.Len() != 0 {
		t.Fatalf("Validate() errors = %v", errs)
	}
	if rec.ProductID != "P0001" || rec.QuantitySold != 2 || rec.UnitPrice != 18.5 || rec.Discount != 10 {
		t.Errorf("Validate() = %+v", rec)
	}
	if want := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC); !rec.TransactionDate.Equal(want) {
		t.Errorf("TransactionDate = %v, want %v", rec.TransactionDate, want)
	}

	tests := []struct {
		name  string
		edit  func(*Input)
		field string
		msg   string
	}{
		{"no date", func(in *Input) { in.Date = "" }, "date", "Date is required"},
		{"bad date", func(in *Input) { in.Date = "10/05/2025" }, "date", "Use YYYY-MM-DD"},
		{"no product", func(in *Input) { in.ProductName = " " }, "productName", "Product name is required"},
		{"unknown product", func(in *Input) { in.ProductName = "Teapot" }, "productName", "Unknown product"},
		{"fractional quantity", func(in *Input) { in.Quantity = "1.5" }, "quantity", "Quantity must be a whole number"},
		{"zero quantity", func(in *Input) { in.Quantity = "0" }, "quantity", "Quantity must be positive"},
		{"zero price", func(in *Input) { in.Price = "0" }, "price", "Price must be positive"},
		{"text price", func(in *Input) { in.Price = "cheap" }, "price", "Price must be a number"},
		{"infinite price", func(in *Input) { in.Price = "Inf" }, "price", "Price must be a number"},
		{"NaN price", func(in *Input) { in.Price = "NaN" }, "price", "Price must be a number"},
		{"infinite discount", func(in *Input) { in.Discount = "+Inf" }, "discount", "Discount must be a number"},
		{"negative discount", func(in *Input) { in.Discount = "-1" }, "discount", "Discount cannot be negative"},
		{"large discount", func(in *Input) { in.Discount = "101%" }, "discount", "Discount cannot exceed 100%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.edit(&in)
			_, errs := Validate(in, lookup)
			if got := errs.Get(tt.field); got != tt.msg {
				t.Errorf("error on %s = %q, want %q (all: %v)", tt.field, got, tt.msg, errs)
			}
			if errs.Len() != 1 {
				t.Errorf("got %d errors, want 1: %v", errs.Len(), errs)
			}
		})
	}
}

func TestValidateEmptyDiscount(t *testing.T) {
	in := Input{Date: "2025-05-10", ProductName: "Metal Floor Lamp", Quantity: "1", Price: "40"}
	rec, errs := Validate(in, lookup)
	if errs.Err() != nil {
		t.Fatalf("Validate() error = %v", errs)
	}
	if rec.Discount != 0 {
		t.Errorf("Discount = %v, want 0", rec.Discount)
	}
}

func TestCheck(t *testing.T) {
	rec := model.NewSalesRecord{
		ProductID:       "P0002",
		TransactionDate: time.Now(),
		QuantitySold:    1,
		UnitPrice:       3,
	}
	if errs := Check(rec); errs.Err() != nil {
		t.Fatalf("Check() = %v", errs)
	}
	rec.Discount = 150
	rec.QuantitySold = 0
	errs := Check(rec)
	if !errs.Has("discount") || !errs.Has("quantity") {
		t.Errorf("Check() = %v, want discount and quantity errors", errs)
	}

	rec.UnitPrice = math.Inf(1)
	if got := Check(rec).Get("price"); got != "Price must be a number" {
		t.Errorf("Check(+Inf price) price error = %q", got)
	}
}
