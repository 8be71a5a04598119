package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"vendorflow/pkg/order"
	"vendorflow/pkg/otel"
)

// listOrdersHandler lists purchase orders, optionally for one vendor.
// @Summary List purchase orders
// @Produce json
// @Param vendor query string false "Vendor ID"
// @Success 200 {array} order.Order
// @Security ApiKeyAuth
// @Router /purchase_orders/ [get]
func (a *API) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "listOrdersHandler")
	defer span.End()

	orders, err := a.svc.ListOrders(ctx, order.Filter{VendorID: r.URL.Query().Get("vendor")})
	if err != nil {
		a.fail(w, r.WithContext(ctx), "list orders", err)
		return
	}
	if orders == nil {
		orders = []order.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// createOrderHandler creates a purchase order.
// @Summary Create purchase order
// @Accept json
// @Produce json
// @Param order body order.Order true "Purchase order"
// @Success 201 {object} order.Order
// @Failure 400 {object} validationResponse
// @Security ApiKeyAuth
// @Router /purchase_orders/ [post]
func (a *API) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "createOrderHandler")
	defer span.End()

	var o order.Order
	if err := decode(r, &o); err != nil {
		a.fail(w, r, "create order", err)
		return
	}
	created, err := a.svc.CreateOrder(ctx, o)
	if err != nil {
		a.fail(w, r.WithContext(ctx), "create order", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// getOrderHandler retrieves a purchase order by ID.
// @Summary Get purchase order
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} order.Order
// @Failure 404 {object} errorResponse
// @Security ApiKeyAuth
// @Router /purchase_orders/{id}/ [get]
func (a *API) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getOrderHandler")
	defer span.End()

	o, err := a.svc.GetOrder(ctx, mux.Vars(r)["id"])
	if err != nil {
		a.fail(w, r.WithContext(ctx), "get order", err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// replaceOrderHandler updates a purchase order; required fields must be present.
// @Summary Replace purchase order
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param order body order.Order true "Purchase order"
// @Success 200 {object} order.Order
// @Failure 400 {object} validationResponse
// @Failure 404 {object} errorResponse
// @Security ApiKeyAuth
// @Router /purchase_orders/{id}/ [put]
func (a *API) replaceOrderHandler(w http.ResponseWriter, r *http.Request) {
	a.updateOrder(w, r, "replaceOrderHandler", a.svc.ReplaceOrder)
}

// patchOrderHandler partially updates a purchase order.
// @Summary Patch purchase order
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param order body order.Order true "Fields to change"
// @Success 200 {object} order.Order
// @Failure 400 {object} validationResponse
// @Failure 404 {object} errorResponse
// @Security ApiKeyAuth
// @Router /purchase_orders/{id}/ [patch]
func (a *API) patchOrderHandler(w http.ResponseWriter, r *http.Request) {
	a.updateOrder(w, r, "patchOrderHandler", a.svc.UpdateOrder)
}

func (a *API) updateOrder(w http.ResponseWriter, r *http.Request, name string,
	apply func(ctx context.Context, id string, p order.Patch) (order.Order, error)) {
	ctx, span := otel.AddSpan(r.Context(), name)
	defer span.End()

	var p order.Patch
	if err := decode(r, &p); err != nil {
		a.fail(w, r, "update order", err)
		return
	}
	o, err := apply(ctx, mux.Vars(r)["id"], p)
	if err != nil {
		a.fail(w, r.WithContext(ctx), "update order", err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// deleteOrderHandler removes a purchase order.
// @Summary Delete purchase order
// @Param id path string true "Order ID"
// @Success 204
// @Failure 404 {object} errorResponse
// @Security ApiKeyAuth
// @Router /purchase_orders/{id}/ [delete]
func (a *API) deleteOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "deleteOrderHandler")
	defer span.End()

	if err := a.svc.DeleteOrder(ctx, mux.Vars(r)["id"]); err != nil {
		a.fail(w, r.WithContext(ctx), "delete order", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// acknowledgeOrderHandler records the vendor's acknowledgment of an order.
// @Summary Acknowledge purchase order
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} messageResponse
// @Failure 404 {object} errorResponse
// @Security ApiKeyAuth
// @Router /purchase_orders/{id}/acknowledge/ [post]
func (a *API) acknowledgeOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "acknowledgeOrderHandler")
	defer span.End()

	if _, err := a.svc.Acknowledge(ctx, mux.Vars(r)["id"]); err != nil {
		a.fail(w, r.WithContext(ctx), "acknowledge order", err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Purchase Order acknowledged successfully"})
}
