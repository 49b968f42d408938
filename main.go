package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"property-backend/auth"
	"property-backend/config"
	"property-backend/controllers"
	"property-backend/routes"
	"property-backend/services"
	"property-backend/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	// Required signing secret (fatal if missing)
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("❌ ERROR: JWT_SECRET environment variable is not set. Cannot issue tokens.")
	}
	log.Println("✅ JWT_SECRET detected.")

	// Connect database (config.ConnectDatabase should set config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	jwtManager := auth.NewJWTManager(jwtSecret, 24*time.Hour)

	// Initialize services
	policyService := services.NewPolicyService(db)
	meterService := services.NewMeterService(db)
	invoiceService := services.NewInvoiceService(db, policyService, meterService)
	moveOutService := services.NewMoveOutService(db, policyService, meterService)
	contractService := services.NewContractService(db)
	tenantService := services.TenantService{}

	// Initialize controllers
	authController := controllers.NewAuthController(jwtManager)
	tenantController := controllers.NewTenantController(tenantService)
	contractController := controllers.NewContractController(contractService)
	policyController := controllers.NewPolicyController(policyService)
	meterController := controllers.NewMeterController(meterService)
	invoiceController := controllers.NewInvoiceController(invoiceService)
	moveOutController := controllers.NewMoveOutController(moveOutService)

	// Build router
	router := routes.SetupRouter(
		authController,
		tenantController,
		contractController,
		policyController,
		meterController,
		invoiceController,
		moveOutController,
		jwtManager,
	)

	// Port from env (prefer), fallback to 8080
	addr := ":" + utils.EnvOrDefault("PORT", "8080")

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
