package memory

import (
	"context"
	"errors"
	"testing"

	"vendorflow/pkg/vendor"
)

func TestRepository(t *testing.T) {
	ctx := context.Background()
	repo := New()
	v := vendor.Vendor{ID: "1", Profile: vendor.Profile{Name: "Vendor One", VendorCode: "VEND001"}}
	if err := repo.Create(ctx, v); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.UpdateMetrics(ctx, "1", vendor.Metrics{OnTimeDeliveryRate: 50, FulfillmentRate: 100}); err != nil {
		t.Fatalf("update metrics: %v", err)
	}
	if err := repo.UpdateProfile(ctx, "1", vendor.Profile{Name: "Vendor One Updated", VendorCode: "VEND001"}); err != nil {
		t.Fatalf("update profile: %v", err)
	}
	got, err := repo.Get(ctx, "1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Vendor One Updated" {
		t.Fatalf("expected updated name, got %s", got.Name)
	}
	if got.OnTimeDeliveryRate != 50 {
		t.Fatalf("profile update clobbered metrics: %+v", got.Metrics)
	}
	if err := repo.UpdateResponseTime(ctx, "1", 3600); err != nil {
		t.Fatalf("update response time: %v", err)
	}
	got, _ = repo.Get(ctx, "1")
	if got.AverageResponseTime != 3600 || got.FulfillmentRate != 100 {
		t.Fatalf("response time update: got %+v", got.Metrics)
	}
	if err := repo.Delete(ctx, "1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, "1"); !errors.Is(err, vendor.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.UpdateMetrics(ctx, "1", vendor.Metrics{}); !errors.Is(err, vendor.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on metrics update, got %v", err)
	}
}

func TestRepositoryDuplicateCode(t *testing.T) {
	ctx := context.Background()
	repo := New()
	for _, v := range []vendor.Vendor{
		{ID: "1", Profile: vendor.Profile{Name: "A", VendorCode: "VEND001"}},
		{ID: "2", Profile: vendor.Profile{Name: "B", VendorCode: "VEND002"}},
	} {
		if err := repo.Create(ctx, v); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if err := repo.Create(ctx, vendor.Vendor{ID: "3", Profile: vendor.Profile{VendorCode: "VEND001"}}); !errors.Is(err, vendor.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate on create, got %v", err)
	}
	if err := repo.UpdateProfile(ctx, "2", vendor.Profile{VendorCode: "VEND001"}); !errors.Is(err, vendor.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate on update, got %v", err)
	}
	list, _ := repo.List(ctx)
	if len(list) != 2 || list[0].VendorCode != "VEND001" {
		t.Fatalf("list: got %+v", list)
	}
}
