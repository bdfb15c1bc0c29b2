package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mseongj/seoul-transit-proxy/cache"
	"github.com/mseongj/seoul-transit-proxy/config"
	"github.com/mseongj/seoul-transit-proxy/handlers"
	"github.com/mseongj/seoul-transit-proxy/metrics"
	"github.com/mseongj/seoul-transit-proxy/routes"
	"github.com/mseongj/seoul-transit-proxy/upstream"
)

func initLogging() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}

func main() {
	initLogging()

	// API_KEY가 없으면 여기서 종료
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	collector := metrics.NewCollector()
	store, err := cache.Open(cfg.Cache)
	if err != nil {
		log.Fatalf("cache error: %v", err)
	}
	defer store.Close()

	client := upstream.NewClient(cfg.APIKey, cfg.UpstreamTimeout, collector)
	h := handlers.New(cfg, client, store, collector)
	router := routes.SetupRoutes(h, collector)

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           enableCORS(cfg.CORSOrigins, router),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// 실시간 위치는 업스트림 두 번 호출하므로 여유를 둠
		WriteTimeout: 2*cfg.UpstreamTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("Server is running on http://localhost%s", addr)

	<-ctx.Done()
	log.Printf("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	} else {
		log.Printf("server shut down successfully")
	}
}
