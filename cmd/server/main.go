package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/collinskipkorir28/surfaypro/config"
	"github.com/collinskipkorir28/surfaypro/internal/router"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded environment from .env")
	}
	cfg := config.Load()

	engine := router.Setup(cfg)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		env := "PRODUCTION (Live)"
		if cfg.Mpesa.Sandbox() {
			env = "SANDBOX (Testing)"
		}
		log.Printf("server listening on http://localhost:%s", cfg.Server.Port)
		log.Printf("M-PESA API: %s", cfg.Mpesa.APIURL)
		log.Printf("business shortcode: %s", cfg.Mpesa.BusinessShortCode)
		log.Printf("environment: %s", env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server shutdown:", err)
	}
	log.Println("server stopped")
}
