package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tedlabs/users-api/internal/config"
	"github.com/tedlabs/users-api/internal/database"
	"github.com/tedlabs/users-api/internal/log"
	"github.com/tedlabs/users-api/internal/models/account"
	"github.com/tedlabs/users-api/internal/models/user"
	"github.com/tedlabs/users-api/internal/services"
	"github.com/tedlabs/users-api/internal/web"
)

func main() {
	production := flag.Bool("production", false, "use the production MongoDB URI composed from MONGO_* variables")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	// Load environment variables from a .env file, if one exists
	_ = godotenv.Load()

	logger, err := log.NewLogger(!*production, *debug)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load(*production)
	if err != nil {
		logger.Fatal("Invalid configuration: ", err)
	}

	// Establish the store connection up front. A failure here is logged but
	// not fatal: the provider retries lazily on the first request.
	provider := database.NewProvider(cfg, logger)
	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if _, err := provider.Client(connectCtx); err != nil {
		logger.Error("Initial MongoDB connection failed: ", err)
	}
	cancel()

	userManager := user.NewUserManager(provider, logger)
	accountManager := account.NewAccountManager(provider, logger)

	var eventService *services.EventService
	if cfg.RabbitMQAddr != "" {
		eventService, err = services.NewEventService(cfg.RabbitMQAddr, cfg.RabbitMQUser, cfg.RabbitMQPass, logger)
		if err != nil {
			logger.Fatal("Error initializing event service: ", err)
		}
	}

	clientService := services.NewClientService(userManager, accountManager, eventService, logger)
	server := web.NewWebServer(cfg.TokenSecret, clientService, logger)

	errChan := make(chan error, 1)
	go func() {
		fmt.Println("REST API is listening.")
		errChan <- server.Run(cfg.Port)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("Error starting web server: ", err)
		}
	case sig := <-sigChan:
		logger.Infof("Received %s, shutting down", sig)
		if err := server.Shutdown(); err != nil {
			logger.Error("Server shutdown failed: ", err)
		}
		eventService.Close()
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Disconnect(disconnectCtx); err != nil {
			logger.Error("MongoDB disconnect failed: ", err)
		}
	}
}
