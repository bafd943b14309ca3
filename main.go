package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"retail-banking/config"
	"retail-banking/handler"
	"retail-banking/service"
	"retail-banking/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Setup signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize the operations journal
	var store storage.Store
	if cfg.DatabaseURL == "" {
		store = storage.NewMemoryStore()
		log.Println("No database configured, keeping the operations journal in memory.")
	} else {
		pg, err := storage.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer pg.Close()
		store = pg
		log.Println("Database connection established and schema initialized.")
	}

	svc := service.New()
	if cfg.SeedDemo {
		if err := svc.SeedDemo(); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
		log.Println("Demo banks and clients registered.")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := handler.NewMetrics(registry)

	// Initialize handlers
	jobs := handler.NewJobHandler(svc, store, metrics)
	r := handler.NewRouter(
		handler.NewBankHandler(svc),
		handler.NewClientHandler(svc),
		handler.NewAccountHandler(svc, store, metrics),
		handler.NewTransactionHandler(svc, store, metrics),
		handler.NewCreditHandler(svc, store, metrics),
		handler.NewQuoteHandler(svc),
		jobs,
		registry,
	)

	if cfg.AccrualInterval > 0 {
		go runSweeps(ctx, jobs, cfg.AccrualInterval)
	}

	// Create and start server
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		log.Printf("Starting server on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Println("Shutting down server...")

	// Create a context for shutdown with a timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// runSweeps accrues interest and settles matured deposits every interval
// until ctx is done.
func runSweeps(ctx context.Context, jobs *handler.JobHandler, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			jobs.RunAccrual(ctx)
			jobs.RunExpiration(ctx)
		}
	}
}
