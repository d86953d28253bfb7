package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/finwallet/wallet-bff/internal/config"
	"github.com/finwallet/wallet-bff/mockapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error running mock API: %s\n", err)
	}
	log.Printf("Mock API stopped\n")
}

func run() error {
	_ = godotenv.Load() // optional .env file

	signingSecret := config.GetEnv("MOCK_API_SIGNING_SECRET", "wallet-bff-demo-secret")
	demoPassword := config.GetEnv("MOCK_API_DEMO_PASSWORD", "pass123")
	port := config.GetEnv("MOCK_API_PORT", "3000")

	api, err := mockapi.New([]byte(signingSecret), demoPassword)
	if err != nil {
		return fmt.Errorf("mockapi.New: %w", err)
	}

	httpServer := &http.Server{Addr: ":" + port, Handler: api}

	go func() {
		log.Printf("Mock API listening on %s\n", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("server.ListenAndServe: %s\n", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}
