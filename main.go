package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"inkpress/app/auth"
	"inkpress/app/routes"

	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
)

const cliVersion = "1.0.0"

// exit is swapped out in tests so command dispatch can be exercised
// without killing the test process.
var exit = os.Exit

func main() {
	RealMain()
}

// RealMain dispatches the CLI command from os.Args.
func RealMain() {
	if len(os.Args) < 2 {
		printHelp()
		exit(1)
		return
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("inkpress version %s\n", cliVersion)
	case "serve":
		serve()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		exit(1)
	}
}

func printHelp() {
	helpText := `Usage: inkpress <command>
Commands:
  help     Display this help message.
  version  Show version information.
  serve    Run the blog server.

Environment (a .env file is read when present):
  INKPRESS_ADDR            Listen address (default :8080).
  INKPRESS_DB_PATH         Badger database directory (default data/badger).
  INKPRESS_SESSION_SECRET  Secret used to sign session tokens (required).
`
	fmt.Println(helpText)
}

// serve opens the database and runs the HTTP server until interrupted.
func serve() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	addr := envOr("INKPRESS_ADDR", ":8080")
	dbPath := envOr("INKPRESS_DB_PATH", "data/badger")
	secret := os.Getenv("INKPRESS_SESSION_SECRET")
	if secret == "" {
		log.Fatal("INKPRESS_SESSION_SECRET environment variable is not set")
	}

	opts := badger.DefaultOptions(dbPath).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open Badger DB: %v", err)
	}
	defer db.Close()

	tokens := auth.NewTokenManager(secret, 7*24*time.Hour)
	router := routes.SetupRoutes(db, tokens)

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Printf("Starting blog server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
