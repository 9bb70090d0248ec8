package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/banshee-data/surround.view/internal/api"
	"github.com/banshee-data/surround.view/internal/config"
	"github.com/banshee-data/surround.view/internal/plandb"
	"github.com/banshee-data/surround.view/internal/version"
)

var (
	configFile  = flag.String("config", config.DefaultConfigPath, "Rig configuration JSON file")
	dbFile      = flag.String("db", "stitch_plans.db", "Plan database path (empty disables storage)")
	listen      = flag.String("listen", ":8080", "Listen address")
	rigName     = flag.String("rig", "default", "Name the configured rig is stored under")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

// Main
func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [migrate up|down|status]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("surround-view %s\n", version.String())
		return
	}

	if args := flag.Args(); len(args) > 0 {
		if args[0] != "migrate" {
			flag.Usage()
			os.Exit(2)
		}
		if err := plandb.RunMigrateCommand(args[1:], *dbFile, os.Stdout); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		return
	}

	if *listen == "" {
		log.Fatal("Listen address is required")
	}

	rig, err := config.LoadRigConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load rig config: %v", err)
	}

	var db *plandb.DB
	if *dbFile != "" {
		db, err = plandb.OpenDB(*dbFile)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
	}

	apiServer, err := api.NewServer(*rigName, rig, db)
	if err != nil {
		log.Fatalf("Failed to create API server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              *listen,
		Handler:           api.LoggingMiddleware(apiServer.ServeMux()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Start server in a goroutine so it doesn't block
	go func() {
		log.Printf("surround-view %s listening on %s", version.String(), *listen)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for context cancellation to shut down server
	<-ctx.Done()
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
		// Force close the server if graceful shutdown fails
		if err := server.Close(); err != nil {
			log.Printf("HTTP server force close error: %v", err)
		}
	}

	log.Printf("Graceful shutdown complete")
}
