// Package api exposes the purchasing service over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/trace"

	"vendorflow/pkg/auth"
	"vendorflow/pkg/logger"
	"vendorflow/pkg/order"
	"vendorflow/pkg/otel"
	"vendorflow/pkg/purchasing"
	"vendorflow/pkg/validate"
	"vendorflow/pkg/vendor"
)

// Options configures the HTTP handler.
type Options struct {
	Service *purchasing.Service
	// Sessions backs /users and /login and, unless AuthDisabled, guards
	// the resource routes. It may be nil only when AuthDisabled is set.
	Sessions     *auth.Store
	Log          *logger.Logger
	Tracer       trace.Tracer
	AuthDisabled bool
}

// API holds the handler dependencies.
type API struct {
	svc      *purchasing.Service
	sessions *auth.Store
	log      *logger.Logger
	tracer   trace.Tracer
}

// New builds the router.
func New(opts Options) http.Handler {
	a := &API{svc: opts.Service, sessions: opts.Sessions, log: opts.Log, tracer: opts.Tracer}

	r := mux.NewRouter()
	r.Use(a.traceMiddleware, a.logMiddleware)
	handle(r, "/healthz", a.healthHandler, http.MethodGet)

	if a.sessions != nil {
		handle(r, "/users", a.registerHandler, http.MethodPost)
		handle(r, "/login", a.loginHandler, http.MethodPost)
		logout := auth.Middleware(a.sessions, a.log)(http.HandlerFunc(a.logoutHandler))
		handle(r, "/logout", logout.ServeHTTP, http.MethodPost)
	}

	orders := r.PathPrefix("/purchase_orders").Subrouter()
	vendors := r.PathPrefix("/vendors").Subrouter()
	if !opts.AuthDisabled {
		orders.Use(auth.Middleware(a.sessions, a.log))
		vendors.Use(auth.Middleware(a.sessions, a.log))
	}

	handle(orders, "", a.listOrdersHandler, http.MethodGet)
	handle(orders, "", a.createOrderHandler, http.MethodPost)
	handle(orders, "/{id}", a.getOrderHandler, http.MethodGet)
	handle(orders, "/{id}", a.replaceOrderHandler, http.MethodPut)
	handle(orders, "/{id}", a.patchOrderHandler, http.MethodPatch)
	handle(orders, "/{id}", a.deleteOrderHandler, http.MethodDelete)
	handle(orders, "/{id}/acknowledge", a.acknowledgeOrderHandler, http.MethodPost)

	handle(vendors, "", a.listVendorsHandler, http.MethodGet)
	handle(vendors, "", a.createVendorHandler, http.MethodPost)
	handle(vendors, "/{id}", a.getVendorHandler, http.MethodGet)
	handle(vendors, "/{id}", a.replaceVendorHandler, http.MethodPut)
	handle(vendors, "/{id}", a.patchVendorHandler, http.MethodPatch)
	handle(vendors, "/{id}", a.deleteVendorHandler, http.MethodDelete)
	handle(vendors, "/{id}/performance", a.vendorPerformanceHandler, http.MethodGet)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	return r
}

// handle registers path with and without a trailing slash.
func handle(r *mux.Router, path string, h http.HandlerFunc, method string) {
	r.HandleFunc(path, h).Methods(method)
	r.HandleFunc(path+"/", h).Methods(method)
}

func (a *API) traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.tracer == nil {
			next.ServeHTTP(w, r)
			return
		}
		ctx := otel.InjectTracing(r.Context(), a.tracer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (a *API) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		a.log.Debug(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String())
	})
}

// healthHandler reports liveness.
// @Summary Health check
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (a *API) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorResponse struct {
	Error string `json:"error"`
}

type validationResponse struct {
	Errors map[string]string `json:"errors"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// fail maps service errors onto HTTP responses.
func (a *API) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, validationResponse{Errors: verr.Fields})
	case errors.Is(err, order.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Purchase Order not found"})
	case errors.Is(err, vendor.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Vendor not found"})
	default:
		a.log.Error(r.Context(), op, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// decode reads a JSON body into v, reporting malformed input as a
// validation error.
func decode(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return validate.Field(typeErr.Field, "type")
	}
	return validate.Field("body", "invalid_json")
}
