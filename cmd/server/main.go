// ==============================================================================
// PAYMENT INSTRUCTION SERVICE MAIN - cmd/server/main.go
// ==============================================================================
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"payinstr/internal/handler"
	"payinstr/internal/instruction"
	"payinstr/internal/middleware"
	"payinstr/pkg/config"
	"payinstr/pkg/logger"
	"payinstr/pkg/validator"
)

func main() {
	// .env is optional; the deployment may supply the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.NewWithLevel("instruction-service", cfg.Log.Level)

	log.Info("Starting Payment Instruction Service", map[string]interface{}{
		"port": cfg.Server.Port,
	})

	// Initialize service and handlers. The engine is stateless: no database,
	// no cache, accounts arrive in-band on every request.
	service := instruction.NewService(log)
	val := validator.New()
	instructionHandler := handler.NewInstructionHandler(service, val, log)

	// Setup router
	r := mux.NewRouter()

	// Middleware
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Recovery(log))
	r.Use(middleware.CorrelationID)
	r.Use(middleware.NewLoggingMiddleware(log).Log)
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// Routes
	r.HandleFunc("/health", healthCheck).Methods("GET")
	r.HandleFunc("/payment-instructions", instructionHandler.ProcessInstruction).Methods("POST")

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		log.Info("Instruction service started", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down instruction service...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Instruction service forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log.Info("Instruction service stopped gracefully", nil)
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	_ = r
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","service":"instruction","timestamp":"` + time.Now().Format(time.RFC3339) + `"}`))
}
