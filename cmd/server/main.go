package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"hostel-backend/internal/auth"
	"hostel-backend/internal/billing"
	"hostel-backend/internal/cache"
	"hostel-backend/internal/config"
	"hostel-backend/internal/database"
	"hostel-backend/internal/db"
	"hostel-backend/internal/handlers"
	"hostel-backend/internal/health"
	h "hostel-backend/internal/http"
	"hostel-backend/internal/middleware"
	"hostel-backend/internal/repositories"
	"hostel-backend/internal/scheduler"
	"hostel-backend/internal/services"
	"hostel-backend/migrations"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to PostgreSQL
	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (overview reads go straight to Postgres)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations
	// Uses embedded migrations for standalone binary operation
	log.Println("Running database migrations...")
	migrator := database.NewMigrator(pool, migrations.FS, ".")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize health checker
	healthChecker := health.NewHealthChecker(pool)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	hostelRepo := repositories.NewHostelRepository(pool)
	studentRepo := repositories.NewStudentRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)
	overviewRepo := repositories.NewOverviewRepository(pool)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	// Initialize services
	userService := services.NewUserService(userRepo, jwtManager)
	hostelService := services.NewHostelService(hostelRepo)
	studentService := services.NewStudentService(studentRepo, hostelRepo, paymentRepo)
	paymentService := services.NewPaymentService(paymentRepo, studentRepo, hostelRepo)
	overviewService := services.NewOverviewService(overviewRepo)
	receiptService := services.NewReceiptService(paymentRepo, studentRepo, hostelRepo)

	// Initialize the monthly billing job and its scheduler
	billingJob, err := billing.NewJob(userRepo, hostelRepo, studentRepo, paymentRepo)
	if err != nil {
		log.Fatalf("Failed to initialize billing job: %v", err)
	}
	billingService := services.NewBillingService(billingJob, cfg)

	billingScheduler := scheduler.New(billingService, cfg.Billing.Timezone, cfg.Billing.EligibleStatus, cfg.Billing.RunOnStartup)
	billingScheduler.Start()
	defer billingScheduler.Stop()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	hostelHandler := handlers.NewHostelHandler(hostelService)
	studentHandler := handlers.NewStudentHandler(studentService, hostelService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, studentService, hostelService)
	billingHandler := handlers.NewBillingHandler(billingService)
	enrollmentHandler := handlers.NewEnrollmentHandler(studentService)
	receiptHandler := handlers.NewReceiptHandler(receiptService, paymentService, studentService, hostelService)
	overviewHandler := handlers.NewOverviewHandler(overviewService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	// Create router
	router := h.NewRouter(
		authHandler,
		hostelHandler,
		studentHandler,
		paymentHandler,
		billingHandler,
		enrollmentHandler,
		receiptHandler,
		overviewHandler,
		healthHandler,
		authMiddleware,
	)

	// Wrap with panic recovery and metrics middleware
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
