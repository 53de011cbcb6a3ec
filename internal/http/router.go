package http

import (
	"net/http"

	"hostel-backend/internal/handlers"
	"hostel-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	hostelHandler *handlers.HostelHandler,
	studentHandler *handlers.StudentHandler,
	paymentHandler *handlers.PaymentHandler,
	billingHandler *handlers.BillingHandler,
	enrollmentHandler *handlers.EnrollmentHandler,
	receiptHandler *handlers.ReceiptHandler,
	overviewHandler *handlers.OverviewHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Public API routes - QR enrollment (no auth: students scan a code)
	r.HandleFunc("/api/public/enroll/{userId}/{hostelId}", enrollmentHandler.Enroll).Methods("POST")

	// Protected API routes - Hostels
	hostelsAPI := r.PathPrefix("/api/hostels").Subrouter()
	hostelsAPI.Use(authMiddleware.Authenticate)
	hostelsAPI.HandleFunc("", hostelHandler.ListHostels).Methods("GET")
	hostelsAPI.HandleFunc("", hostelHandler.CreateHostel).Methods("POST")
	hostelsAPI.HandleFunc("/{id}", hostelHandler.GetHostel).Methods("GET")
	hostelsAPI.HandleFunc("/{id}", hostelHandler.UpdateHostel).Methods("PUT")
	hostelsAPI.HandleFunc("/{id}", hostelHandler.DeleteHostel).Methods("DELETE")
	hostelsAPI.HandleFunc("/{hostelId}/students", studentHandler.ListStudents).Methods("GET")
	hostelsAPI.HandleFunc("/{hostelId}/students", studentHandler.CreateStudent).Methods("POST")

	// Protected API routes - Students
	studentsAPI := r.PathPrefix("/api/students").Subrouter()
	studentsAPI.Use(authMiddleware.Authenticate)
	studentsAPI.HandleFunc("/{id}", studentHandler.GetStudent).Methods("GET")
	studentsAPI.HandleFunc("/{id}", studentHandler.DeleteStudent).Methods("DELETE")
	studentsAPI.HandleFunc("/{id}/status", studentHandler.UpdateStatus).Methods("PATCH")
	studentsAPI.HandleFunc("/{id}/fees", studentHandler.UpdateFees).Methods("PATCH")
	studentsAPI.HandleFunc("/{id}/payments", paymentHandler.ListPayments).Methods("GET")
	studentsAPI.HandleFunc("/{id}/payments", paymentHandler.CreatePayment).Methods("POST")
	studentsAPI.HandleFunc("/{id}/ledger", paymentHandler.GetLedger).Methods("GET")

	// Protected API routes - Receipts
	paymentsAPI := r.PathPrefix("/api/payments").Subrouter()
	paymentsAPI.Use(authMiddleware.Authenticate)
	paymentsAPI.HandleFunc("/{id}/receipt", receiptHandler.DownloadReceipt).Methods("GET")

	// Protected API routes - Billing trigger
	billingAPI := r.PathPrefix("/api/billing").Subrouter()
	billingAPI.Use(authMiddleware.Authenticate)
	billingAPI.Handle("/run", authMiddleware.RequireSuperadmin(http.HandlerFunc(billingHandler.RunBilling))).Methods("POST")

	// Protected API routes - Superadmin overview
	adminAPI := r.PathPrefix("/api/admin").Subrouter()
	adminAPI.Use(authMiddleware.Authenticate)
	adminAPI.Handle("/overview", authMiddleware.RequireSuperadmin(http.HandlerFunc(overviewHandler.GetOverview))).Methods("GET")

	// Health endpoint (no auth required - for probes)
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
