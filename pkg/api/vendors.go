package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"vendorflow/pkg/otel"
	"vendorflow/pkg/vendor"
)

// listVendorsHandler lists vendors.
// @Summary List vendors
// @Produce json
// @Success 200 {array} vendor.Vendor
// @Security ApiKeyAuth
// @Router /vendors/ [get]
func (a *API) listVendorsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "listVendorsHandler")
	defer span.End()

	vendors, err := a.svc.ListVendors(ctx)
	if err != nil {
		a.fail(w, r.WithContext(ctx), "list vendors", err)
		return
	}
	if vendors == nil {
		vendors = []vendor.Vendor{}
	}
	writeJSON(w, http.StatusOK, vendors)
}

// createVendorHandler creates a vendor. Metric fields in the body are ignored.
// @Summary Create vendor
// @Accept json
// @Produce json
// @Param vendor body vendor.Profile true "Vendor"
// @Success 201 {object} vendor.Vendor
// @Failure 400 {object} validationResponse
// @Security ApiKeyAuth
// @Router /vendors/ [post]
func (a *API) createVendorHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "createVendorHandler")
	defer span.End()

	var p vendor.Profile
	if err := decode(r, &p); err != nil {
		a.fail(w, r, "create vendor", err)
		return
	}
	v, err := a.svc.CreateVendor(ctx, p)
	if err != nil {
		a.fail(w, r.WithContext(ctx), "create vendor", err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

// getVendorHandler retrieves a vendor by ID.
// @Summary Get vendor
// @Produce json
// @Param id path string true "Vendor ID"
// @Success 200 {object} vendor.Vendor
// @Failure 404 {object} errorResponse
// @Security ApiKeyAuth
// @Router /vendors/{id}/ [get]
func (a *API) getVendorHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getVendorHandler")
	defer span.End()

	v, err := a.svc.GetVendor(ctx, mux.Vars(r)["id"])
	if err != nil {
		a.fail(w, r.WithContext(ctx), "get vendor", err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// replaceVendorHandler updates a vendor; name and vendor_code are required.
// @Summary Replace vendor
// @Accept json
// @Produce json
// @Param id path string true "Vendor ID"
// @Param vendor body vendor.Profile true "Vendor"
// @Success 200 {object} vendor.Vendor
// @Failure 400 {object} validationResponse
// @Failure 404 {object} errorResponse
// @Security ApiKeyAuth
// @Router /vendors/{id}/ [put]
func (a *API) replaceVendorHandler(w http.ResponseWriter, r *http.Request) {
	a.updateVendor(w, r, "replaceVendorHandler", a.svc.ReplaceVendor)
}

// patchVendorHandler partially updates a vendor.
// @Summary Patch vendor
// @Accept json
// @Produce json
// @Param id path string true "Vendor ID"
// @Param vendor body vendor.Profile true "Fields to change"
// @Success 200 {object} vendor.Vendor
// @Failure 400 {object} validationResponse
// @Failure 404 {object} errorResponse
// @Security ApiKeyAuth
// @Router /vendors/{id}/ [patch]
func (a *API) patchVendorHandler(w http.ResponseWriter, r *http.Request) {
	a.updateVendor(w, r, "patchVendorHandler", a.svc.UpdateVendor)
}

func (a *API) updateVendor(w http.ResponseWriter, r *http.Request, name string,
	apply func(ctx context.Context, id string, p vendor.Patch) (vendor.Vendor, error)) {
	ctx, span := otel.AddSpan(r.Context(), name)
	defer span.End()

	var p vendor.Patch
	if err := decode(r, &p); err != nil {
		a.fail(w, r, "update vendor", err)
		return
	}
	v, err := apply(ctx, mux.Vars(r)["id"], p)
	if err != nil {
		a.fail(w, r.WithContext(ctx), "update vendor", err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// deleteVendorHandler removes a vendor and detaches its orders.
// @Summary Delete vendor
// @Param id path string true "Vendor ID"
// @Success 204
// @Failure 404 {object} errorResponse
// @Security ApiKeyAuth
// @Router /vendors/{id}/ [delete]
func (a *API) deleteVendorHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "deleteVendorHandler")
	defer span.End()

	if err := a.svc.DeleteVendor(ctx, mux.Vars(r)["id"]); err != nil {
		a.fail(w, r.WithContext(ctx), "delete vendor", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// vendorPerformanceHandler returns the derived performance metrics.
// @Summary Vendor performance
// @Produce json
// @Param id path string true "Vendor ID"
// @Success 200 {object} vendor.Metrics
// @Failure 404 {object} errorResponse
// @Security ApiKeyAuth
// @Router /vendors/{id}/performance/ [get]
func (a *API) vendorPerformanceHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "vendorPerformanceHandler")
	defer span.End()

	m, err := a.svc.Performance(ctx, mux.Vars(r)["id"])
	if err != nil {
		a.fail(w, r.WithContext(ctx), "vendor performance", err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}
