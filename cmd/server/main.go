package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"transfer-backend/internal/cache"
	"transfer-backend/internal/config"
	"transfer-backend/internal/database"
	"transfer-backend/internal/db"
	"transfer-backend/internal/handlers"
	"transfer-backend/internal/health"
	h "transfer-backend/internal/http"
	"transfer-backend/internal/middleware"
	"transfer-backend/internal/pdf"
	"transfer-backend/internal/repositories"
	"transfer-backend/internal/services"
)

func main() {
	// Parse command-line flags
	port := flag.Int("port", 0, "Server port (overrides config)")
	skipMigrations := flag.Bool("skip-migrations", false, "Skip database migrations on startup")
	flag.Parse()

	// Load configuration
	cfg := config.Load()

	// Override port if specified
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to PostgreSQL
	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (responses will not be cached)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations
	if !*skipMigrations {
		migrator := database.NewMigrator(pool)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := migrator.RunMigrations(ctx); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// Initialize health checker
	healthChecker := health.NewHealthChecker(pool)

	// Initialize repositories
	customerRepo := repositories.NewCustomerRepository(pool)
	orderRepo := repositories.NewOrderRepository(pool)
	invoiceRepo := repositories.NewInvoiceRepository(pool)
	profileRepo := repositories.NewCompanyProfileRepository(pool)

	// Initialize services
	customerService := services.NewCustomerService(customerRepo)
	orderService := services.NewOrderService(orderRepo, customerRepo)
	invoiceService := services.NewInvoiceService(invoiceRepo, customerRepo, orderRepo, cfg.Invoice.Prefix)
	profileService := services.NewCompanyProfileService(profileRepo)
	pdfService := services.NewPDFService(invoiceService, profileService,
		&pdf.ChromeEngine{Path: cfg.PDF.ChromePath}, cfg.PDF.OutputDir)

	// Initialize handlers
	customerHandler := handlers.NewCustomerHandler(customerService)
	orderHandler := handlers.NewOrderHandler(orderService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, pdfService)
	profileHandler := handlers.NewCompanyProfileHandler(profileService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(customerHandler, orderHandler, invoiceHandler, profileHandler, healthHandler)

	// Metrics run inside the router (mux middleware) so the path label
	// reflects route templates.
	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(
		middleware.RequestLogging(
			corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
