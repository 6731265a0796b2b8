package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"transfer-backend/internal/handlers"
	"transfer-backend/internal/middleware"
)

func NewRouter(
	customerHandler *handlers.CustomerHandler,
	orderHandler *handlers.OrderHandler,
	invoiceHandler *handlers.InvoiceHandler,
	profileHandler *handlers.CompanyProfileHandler,
	healthHandler *handlers.HealthHandler,
) *mux.Router {
	r := mux.NewRouter()

	// Runs after route matching so the metrics path label can use the
	// route template instead of the raw URL.
	r.Use(middleware.MetricsMiddleware)

	// Health probes
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// API routes - Customers
	customersAPI := r.PathPrefix("/api/customers").Subrouter()
	customersAPI.HandleFunc("", customerHandler.ListCustomers).Methods("GET")
	customersAPI.HandleFunc("", customerHandler.CreateCustomer).Methods("POST")
	customersAPI.HandleFunc("/{id}", customerHandler.GetCustomer).Methods("GET")
	customersAPI.HandleFunc("/{id}", customerHandler.UpdateCustomer).Methods("PATCH")
	customersAPI.HandleFunc("/{id}", customerHandler.DeleteCustomer).Methods("DELETE")

	// API routes - Orders
	ordersAPI := r.PathPrefix("/api/orders").Subrouter()
	ordersAPI.HandleFunc("", orderHandler.ListOrders).Methods("GET")
	ordersAPI.HandleFunc("", orderHandler.CreateOrder).Methods("POST")
	ordersAPI.HandleFunc("/{id}", orderHandler.GetOrder).Methods("GET")
	ordersAPI.HandleFunc("/{id}", orderHandler.UpdateOrder).Methods("PATCH")
	ordersAPI.HandleFunc("/{id}", orderHandler.DeleteOrder).Methods("DELETE")

	// API routes - Invoices
	invoicesAPI := r.PathPrefix("/api/invoices").Subrouter()
	invoicesAPI.HandleFunc("", invoiceHandler.ListInvoices).Methods("GET")
	invoicesAPI.HandleFunc("", invoiceHandler.CreateInvoice).Methods("POST")
	invoicesAPI.HandleFunc("/{id}", invoiceHandler.GetInvoice).Methods("GET")
	invoicesAPI.HandleFunc("/{id}/status", invoiceHandler.SetInvoiceStatus).Methods("PATCH")
	invoicesAPI.HandleFunc("/{id}/pdf", invoiceHandler.GetInvoicePDF).Methods("GET")

	// API routes - Company profile
	profileAPI := r.PathPrefix("/api/company-profile").Subrouter()
	profileAPI.HandleFunc("", profileHandler.GetProfile).Methods("GET")
	profileAPI.HandleFunc("", profileHandler.UpsertProfile).Methods("PUT")

	return r
}
