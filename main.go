package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/grantbelcher/DevConnector/config"
	"github.com/grantbelcher/DevConnector/database"
	"github.com/grantbelcher/DevConnector/handlers"
	"github.com/grantbelcher/DevConnector/routes"
	"github.com/grantbelcher/DevConnector/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config: ", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Println("Connecting to MongoDB...")

	client, err := connectWithRetry(cfg.MongoURI, 3)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB: ", err)
	}

	db := database.New(client, cfg.MongoDB)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.EnsureIndexes(ctx); err != nil {
		cancel()
		log.Fatal("Failed to create indexes: ", err)
	}
	cancel()

	log.Println("MongoDB connected")

	tokens := token.New(cfg.JWTSecret, token.DefaultTTL)
	api := handlers.NewAPI(db.Users, db.Profiles, db.Posts, tokens, cfg.GithubToken)
	router := routes.Setup(api, tokens, cfg.AllowedOrigins)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("Forced shutdown: ", err)
	}

	if err := db.Disconnect(context.Background()); err != nil {
		log.Println("MongoDB disconnect: ", err)
	}

	log.Println("Server stopped")
}

func connectWithRetry(uri string, attempts int) (*mongo.Client, error) {
	var err error
	for i := 1; i <= attempts; i++ {
		var client *mongo.Client
		client, err = database.Connect(context.Background(), uri)
		if err == nil {
			return client, nil
		}
		log.Printf("MongoDB connection attempt %d failed: %v", i, err)
		time.Sleep(2 * time.Second)
	}
	return nil, err
}
