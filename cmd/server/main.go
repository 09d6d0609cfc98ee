package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/patronacct/draftboard/internal/config"
	"github.com/patronacct/draftboard/internal/db"
	"github.com/patronacct/draftboard/internal/pdf"
	"github.com/patronacct/draftboard/internal/server"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func main() {
	flag.Parse()
	_ = godotenv.Load()
	cfg := config.Load()
	log := config.Logger()

	dbConn, err := db.ConnectAndMigrate(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db connection failed: %v", err)
	}
	if *migrateOnlyFlag {
		log.Info("migrations completed; exiting as requested")
		return
	}
	if err := db.SeedAdmin(dbConn, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("admin bootstrap failed: %v", err)
	}

	renderer := pdf.NewChromeRenderer()
	defer func() { _ = renderer.Close() }()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.New(dbConn, renderer),
	}

	go func() {
		log.WithField("addr", srv.Addr).WithField("env", cfg.Env).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("error during shutdown: %v", err)
	}
	log.Info("server gracefully stopped")
}
