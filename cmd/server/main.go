/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the schedule engine server. Handles configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (if present) and parse command-line flags
  2. Initialize SQLite store
  3. Create API handler with dependencies
  4. Start the close scheduler
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port            HTTP server port (default: 8080)
  -db              SQLite database path (default: schedule.db)
                   Use ":memory:" for an in-memory database
  -close-interval  How often the scheduler checks for an unclosed
                   period (default: 1h)
  -no-scheduler    Disable the background close scheduler

ENVIRONMENT:
  PORT and DB_PATH override the flag defaults; a .env file in the working
  directory is loaded first. Flags given explicitly win over environment.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop the close scheduler
  2. Stop accepting new connections
  3. Wait for active requests to complete (30s timeout)
  4. Close database connection
  5. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/schedule.db"

  # Run with in-memory database, no background closes
  ./server -db=":memory:" -no-scheduler

SEE ALSO:
  - api/server.go: Router configuration
  - api/scheduler.go: Background close scheduler
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ledgerkit/schedule-engine/api"
	"github.com/ledgerkit/schedule-engine/store/sqlite"
)

func main() {
	// .env is optional; missing file is not an error
	godotenv.Load()

	defaultPort := 8080
	if p, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		defaultPort = p
	}
	defaultDB := "schedule.db"
	if p := os.Getenv("DB_PATH"); p != "" {
		defaultDB = p
	}

	// Flags
	port := flag.Int("port", defaultPort, "HTTP server port")
	dbPath := flag.String("db", defaultDB, "SQLite database path")
	closeInterval := flag.Duration("close-interval", time.Hour, "close scheduler check interval")
	noScheduler := flag.Bool("no-scheduler", false, "disable the background close scheduler")
	flag.Parse()

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Initialize handler
	handler := api.NewHandler(store)

	// Start the close scheduler
	scheduler := api.NewCloseScheduler(store, handler)
	scheduler.CheckInterval = *closeInterval
	scheduler.Enabled = !*noScheduler
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(handler)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on http://localhost:%d", *port)
		log.Printf("📊 API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
