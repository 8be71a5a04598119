package purchasing

import (
	"context"
	"errors"
	"fmt"

	"vendorflow/pkg/otel"
	"vendorflow/pkg/validate"
	"vendorflow/pkg/vendor"
)

// CreateVendor stores a new vendor with zeroed metrics.
func (s *Service) CreateVendor(ctx context.Context, p vendor.Profile) (vendor.Vendor, error) {
	ctx, span := otel.AddSpan(ctx, "purchasing.CreateVendor")
	defer span.End()

	if err := validate.Struct(p); err != nil {
		return vendor.Vendor{}, err
	}
	v := vendor.Vendor{ID: s.newID(), Profile: p}
	if err := s.vendors.Create(ctx, v); err != nil {
		return vendor.Vendor{}, vendorStoreErr(err)
	}
	s.log.Info(ctx, "vendor created", "vendor", v.ID, "code", v.VendorCode)
	return v, nil
}

// GetVendor returns the vendor with id.
func (s *Service) GetVendor(ctx context.Context, id string) (vendor.Vendor, error) {
	return s.vendors.Get(ctx, id)
}

// ListVendors returns every vendor.
func (s *Service) ListVendors(ctx context.Context) ([]vendor.Vendor, error) {
	return s.vendors.List(ctx)
}

// UpdateVendor applies a partial profile update.
func (s *Service) UpdateVendor(ctx context.Context, id string, p vendor.Patch) (vendor.Vendor, error) {
	ctx, span := otel.AddSpan(ctx, "purchasing.UpdateVendor")
	defer span.End()

	v, err := s.vendors.Get(ctx, id)
	if err != nil {
		return vendor.Vendor{}, err
	}
	v.Profile = p.Apply(v.Profile)
	if err := validate.Struct(v.Profile); err != nil {
		return vendor.Vendor{}, err
	}
	if err := s.vendors.UpdateProfile(ctx, id, v.Profile); err != nil {
		return vendor.Vendor{}, vendorStoreErr(err)
	}
	s.log.Info(ctx, "vendor updated", "vendor", id)
	return v, nil
}

// ReplaceVendor is a full profile update; name and vendor_code are required.
func (s *Service) ReplaceVendor(ctx context.Context, id string, p vendor.Patch) (vendor.Vendor, error) {
	missing := map[string]string{}
	if !p.Name.Set {
		missing["name"] = "required"
	}
	if !p.VendorCode.Set {
		missing["vendor_code"] = "required"
	}
	if len(missing) > 0 {
		return vendor.Vendor{}, &validate.Error{Fields: missing}
	}
	return s.UpdateVendor(ctx, id, p)
}

// DeleteVendor detaches the vendor's orders and removes it.
func (s *Service) DeleteVendor(ctx context.Context, id string) error {
	ctx, span := otel.AddSpan(ctx, "purchasing.DeleteVendor")
	defer span.End()

	if _, err := s.vendors.Get(ctx, id); err != nil {
		return err
	}
	if err := s.orders.DetachVendor(ctx, id); err != nil {
		return fmt.Errorf("detaching orders of vendor %s: %w", id, err)
	}
	if err := s.vendors.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info(ctx, "vendor deleted", "vendor", id)
	return nil
}

// Performance returns the stored metrics of vendor id.
func (s *Service) Performance(ctx context.Context, id string) (vendor.Metrics, error) {
	v, err := s.vendors.Get(ctx, id)
	if err != nil {
		return vendor.Metrics{}, err
	}
	return v.Metrics, nil
}

func vendorStoreErr(err error) error {
	if errors.Is(err, vendor.ErrDuplicate) {
		return validate.Field("vendor_code", "unique")
	}
	return err
}
