package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Black-And-White-Club/xp-bot/app"
	"github.com/Black-And-White-Club/xp-bot/config"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	migrate := flag.Bool("migrate", false, "Apply pending migrations before starting")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	if *migrate {
		if err := application.DB.Migrate(ctx); err != nil {
			log.Printf("Failed to run migrations: %v", err)
			return
		}
	}

	fmt.Println("Waiting for shutdown signal...")
	if err := application.Run(ctx); err != nil {
		log.Printf("Application stopped with error: %v", err)
		return
	}
	fmt.Println("Application shut down gracefully.")
}
