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

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"maitred/internal/api"
	"maitred/internal/channel"
	"maitred/internal/config"
	"maitred/internal/database"
	"maitred/internal/notify"
	"maitred/internal/session"
	"maitred/internal/store"
	"maitred/internal/views"
)

var (
	port        = flag.Int("port", 0, "View server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort != 0 {
		cfg.Metrics.Port = *metricsPort
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Local snapshot cache; the client still runs without it.
	var cache store.SnapshotCache
	db, err := database.Open(cfg.Store.CachePath)
	if err != nil {
		log.Printf("Order cache unavailable: %v", err)
	} else {
		cache = db
		defer db.Close()
	}

	sessions := session.NewManager(cfg.Session.Path, cfg.Session.Secret)

	apiClient := api.NewClient(cfg.Backend.BaseURL)
	eventChannel := channel.New(cfg.Backend.ChannelURL, cfg.Channel.ReconnectAttempts, cfg.Channel.ReconnectDelay.Std())
	defer eventChannel.Close()

	orderStore := store.New(apiClient, eventChannel, cache, cfg.Store.RefreshInterval.Std())

	tracker := notify.NewTracker()
	orderStore.OnChange(tracker.Observe)

	orderStore.Start(ctx)
	defer orderStore.Stop()

	if cfg.Metrics.Enabled {
		go startMetricsServer(cfg.Metrics.Port)
	}

	viewServer := views.NewServer(orderStore, tracker, sessions)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: viewServer.Router(),
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("View server shutdown error: %v", err)
		}

		cancel()
	}()

	log.Printf("Starting view server on port %d", cfg.Server.Port)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("View server error: %v", err)
	}
}

func startMetricsServer(port int) {
	metricsRouter := gin.Default()
	metricsRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
