package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	"github.com/davidgg090/paymentAPI/internal/bank"
	"github.com/davidgg090/paymentAPI/internal/config"
	"github.com/davidgg090/paymentAPI/internal/domain"
	"github.com/davidgg090/paymentAPI/internal/handler"
	"github.com/davidgg090/paymentAPI/internal/repository"
	"github.com/davidgg090/paymentAPI/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *mux.Router
	server *http.Server
	db     *sql.DB
	logger *slog.Logger
	port   string
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	// Initialize database connection
	db, err := sql.Open("postgres", cfg.GetDBConnectionString())
	if err != nil {
		return nil, err
	}

	// Configure connection pool for better performance
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Test database connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if logger != nil {
		logger.Info("Successfully connected to database")
	}

	// Initialize store (Unit of Work)
	store := repository.NewStore(db, logger)

	// Initialize services
	authService := service.NewAuthService(store, cfg.JWTSecret, logger)
	customerService := service.NewCustomerService(store, logger)
	merchantService := service.NewMerchantService(store, logger)
	transactionService := service.NewTransactionService(store, logger)
	processor := service.NewProcessor(store, bank.NewHashVerifier(), logger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	customerHandler := handler.NewCustomerHandler(customerService, transactionService)
	merchantHandler := handler.NewMerchantHandler(merchantService, transactionService)
	transactionHandler := handler.NewTransactionHandler(transactionService, processor)

	// Setup router
	router := mux.NewRouter()

	// Add middleware for logging
	router.Use(loggingMiddleware(logger))

	// Public routes: registration, login, health
	public := router.PathPrefix("/api/v1").Subrouter()
	public.Use(auditMiddleware(store, logger))
	public.HandleFunc("/auth", authHandler.Register).Methods("POST")
	public.HandleFunc("/token", authHandler.Login).Methods("POST")

	// Everything else requires a bearer token
	protected := router.PathPrefix("/api/v1").Subrouter()
	protected.Use(auditMiddleware(store, logger))
	protected.Use(authMiddleware(authService))

	protected.HandleFunc("/auth/me", authHandler.Me).Methods("GET")
	protected.HandleFunc("/auth/{user_id}", authHandler.UpdateUser).Methods("PUT")

	protected.HandleFunc("/customer", customerHandler.List).Methods("GET")
	protected.HandleFunc("/customer", customerHandler.Create).Methods("POST")
	protected.HandleFunc("/customer/{customer_id}", customerHandler.Get).Methods("GET")
	protected.HandleFunc("/customer/{customer_id}", customerHandler.Update).Methods("PUT")
	protected.HandleFunc("/customer/{customer_id}/transactions", customerHandler.Transactions).Methods("GET")

	protected.HandleFunc("/merchant", merchantHandler.List).Methods("GET")
	protected.HandleFunc("/merchant", merchantHandler.Create).Methods("POST")
	protected.HandleFunc("/merchant/{merchant_id}", merchantHandler.Get).Methods("GET")
	protected.HandleFunc("/merchant/{merchant_id}", merchantHandler.Update).Methods("PUT")
	protected.HandleFunc("/merchant/{merchant_id}/transactions", merchantHandler.Transactions).Methods("GET")

	protected.HandleFunc("/transaction", transactionHandler.Create).Methods("POST")
	protected.HandleFunc("/transaction/token/{token}", transactionHandler.GetByToken).Methods("GET")
	protected.HandleFunc("/transaction/process/{token}", transactionHandler.Process).Methods("POST")
	protected.HandleFunc("/transaction/refund/{token}", transactionHandler.Refund).Methods("POST")
	protected.HandleFunc("/transaction/{transaction_id}", transactionHandler.GetByID).Methods("GET")
	protected.HandleFunc("/transaction/{transaction_id}", transactionHandler.Update).Methods("PUT")

	// Health check
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		// Check database connectivity in health check
		if err := db.Ping(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "unhealthy", "error": "database unavailable"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}).Methods("GET")

	return &Server{
		router: router,
		db:     db,
		logger: logger,
	}, nil
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Create response wrapper to capture status code
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(ww, r)

			logger.Info("request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"duration", time.Since(start),
				"user_agent", r.UserAgent(),
			)
		})
	}
}

// authMiddleware resolves the bearer token to a principal and stores it in
// the request context.
func authMiddleware(authService *service.AuthService) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeUnauthorized(w)
				return
			}

			principal, err := authService.Authenticate(token)
			if err != nil {
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), handler.PrincipalContextKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// auditMiddleware records every API request after the response is written.
// The audit sink is best-effort: failures are logged and never block or fail
// the response.
func auditMiddleware(store domain.Store, logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)

			entry := &domain.AuditLog{
				ActivityType: r.Method,
				BearerToken:  bearerToken(r),
				IPAddress:    clientIP(r),
				Path:         r.URL.Path,
				Timestamp:    time.Now().UTC(),
			}

			if entry.BearerToken != "" {
				if stored, err := store.Users().GetAccessToken(entry.BearerToken); err == nil && stored != nil {
					entry.UserID = &stored.UserID
				}
			}

			if err := store.AuditLogs().CreateAuditLog(entry); err != nil {
				logger.Error("Failed to write audit log", "path", entry.Path, "error", err)
			}
		})
	}
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    "unauthorized",
			"message": "could not validate credentials",
		},
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Start starts the HTTP server on the specified port
func (s *Server) Start(port string) (string, error) {
	// Create listener first to get actual port
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return "", err
	}

	// Get the actual port being used
	addr := listener.Addr().(*net.TCPAddr)
	s.port = strconv.Itoa(addr.Port)

	// Create HTTP server
	s.server = &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if s.logger != nil {
		s.logger.Info("Starting server", "port", s.port)
	}

	// Start server in background
	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Error("Server failed to start", "error", err)
			}
		}
	}()

	return s.port, nil
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	if s.logger != nil {
		s.logger.Info("Shutting down server")
	}

	// Close database connection
	if s.db != nil {
		s.db.Close()
	}

	// Shutdown HTTP server
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// GetPort returns the port the server is listening on
func (s *Server) GetPort() string {
	return s.port
}

// GetBaseURL returns the base URL for the server
func (s *Server) GetBaseURL() string {
	return "http://localhost:" + s.port
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *mux.Router {
	return s.router
}

// StartServer starts the server with the given configuration
func StartServer(cfg *config.Config) (*Server, string, error) {
	// Initialize logger - use io.Discard for tests to avoid noise
	var logger *slog.Logger
	if cfg.ServerPort == "0" {
		// Test environment - use discard logger
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	} else {
		// Production environment - use stdout
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}

	server, err := NewServer(cfg, logger)
	if err != nil {
		return nil, "", err
	}

	// Start the server and get the actual port
	port, err := server.Start(cfg.ServerPort)
	if err != nil {
		return nil, "", err
	}

	return server, port, nil
}
