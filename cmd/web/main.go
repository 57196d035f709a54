package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ovs/storefront/internal/config"
	"ovs/storefront/internal/ovs"
	"ovs/storefront/internal/session"
	"ovs/storefront/internal/web"

	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logic
	apiClient := ovs.NewClient(ovs.Config{
		BaseURL: cfg.OVSAPIURL,
		Timeout: cfg.Timeout(),
	})
	sessions := session.NewManager(cfg.CookieSecure)
	h := web.NewHandler(apiClient, sessions, log)

	// 3. Setup Server
	server := &http.Server{
		Addr:    cfg.Address,
		Handler: h,
	}

	// 4. Run Server with Graceful Shutdown
	go func() {
		log.WithField("address", cfg.Address).Info("Starting storefront")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 2)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exiting")
}
