package order

import (
	"encoding/json"
	"testing"
	"time"
)

func TestPatchApply(t *testing.T) {
	rating := 3.0
	base := Order{
		ID:            "1",
		PONumber:      "PO123456",
		VendorID:      new(string),
		Status:        StatusPending,
		QualityRating: &rating,
		Quantity:      30,
	}
	*base.VendorID = "v1"

	var p Patch
	body := `{"status":"completed","delivery_date":"2022-01-09T00:00:00Z","quality_rating":null}`
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := p.Apply(base)

	if got.Status != StatusCompleted {
		t.Fatalf("status: got %s", got.Status)
	}
	want := time.Date(2022, 1, 9, 0, 0, 0, 0, time.UTC)
	if got.DeliveryDate == nil || !got.DeliveryDate.Equal(want) {
		t.Fatalf("delivery_date: got %v", got.DeliveryDate)
	}
	if got.QualityRating != nil {
		t.Fatalf("quality_rating: expected cleared, got %v", *got.QualityRating)
	}
	if got.PONumber != "PO123456" || got.Quantity != 30 || got.Vendor() != "v1" {
		t.Fatalf("untouched fields changed: %+v", got)
	}
	if base.Status != StatusPending {
		t.Fatal("Apply modified its input")
	}
}

func TestFilterMatch(t *testing.T) {
	v := "v1"
	o := Order{VendorID: &v}
	if !(Filter{}).Match(o) {
		t.Fatal("zero filter must match")
	}
	if !(Filter{VendorID: "v1"}).Match(o) {
		t.Fatal("vendor filter must match its vendor")
	}
	if (Filter{VendorID: "v2"}).Match(o) {
		t.Fatal("vendor filter matched another vendor")
	}
	if (Filter{VendorID: "v1"}).Match(Order{}) {
		t.Fatal("vendor filter matched an unassigned order")
	}
}
