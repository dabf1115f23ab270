// main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"nexusmarket/controllers"
	"nexusmarket/engine"
	"nexusmarket/mailer"
	"nexusmarket/recommend"
	"nexusmarket/routes"
	"nexusmarket/store"
	"nexusmarket/verify"
	"nexusmarket/workers"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using environment variables")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to MongoDB
	connectCtx, connectCancel := context.WithTimeout(ctx, 15*time.Second)
	client, err := store.Connect(connectCtx, os.Getenv("MONGO_URI"))
	connectCancel()
	if err != nil {
		logger.Fatal("connecting to mongodb failed", zap.Error(err))
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error("disconnecting from mongodb failed", zap.Error(err))
		}
	}()

	users := client.Database("nexusMarketDB").Collection("users")
	st := store.NewMongo(users)

	sender, err := mailer.FromEnv()
	if err != nil {
		logger.Fatal("configuring email provider failed", zap.Error(err))
	}

	otps := verify.FromEnv()

	catalogPath := os.Getenv("PRODUCTS_FILE")
	if catalogPath == "" {
		catalogPath = "products.json"
	}
	catalog, err := recommend.LoadCatalog(catalogPath)
	if err != nil {
		logger.Warn("loading product catalog failed, recommendations disabled",
			zap.String("path", catalogPath), zap.Error(err))
		catalog = &recommend.Catalog{}
	}

	eng := engine.New()

	// Background workers
	var wg sync.WaitGroup

	recommender := recommend.NewWorker(st, catalog, logger)
	recommender.Start(ctx, &wg)

	statusWorker := workers.NewStatusWorker(st, eng, sender, logger, workers.DefaultInterval)
	statusWorker.Start(ctx, &wg)

	// Initialize controllers
	authController := controllers.NewAuthController(users, sender, otps, logger)
	userController := controllers.NewUserController(st, eng, sender, logger)
	cartController := controllers.NewCartController(users, sender, recommender, logger)
	orderController := controllers.NewOrderController(st, eng, sender, logger)
	reviewController := controllers.NewReviewController(st, sender, logger)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, authController, userController, cartController, orderController, reviewController)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	// Shut down on SIGINT/SIGTERM: stop accepting requests, then stop workers.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	cancel()
	wg.Wait()
}
