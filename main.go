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

	"inkwell/assets"
	"inkwell/config"
	"inkwell/database"
	"inkwell/handlers"
	"inkwell/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Inkwell API server...")

	cfg := config.Load()
	if cfg.JWTSecret == "" || cfg.MongoURI == "" {
		log.Fatal("JWT_SECRET and MONGODB_URI must be set")
	}

	gin.SetMode(cfg.GinMode)

	log.Println("Connecting to MongoDB...")

	var db *database.Mongo
	var dbErr error
	for i := 1; i <= 3; i++ {
		db, dbErr = database.Connect(context.Background(), cfg)
		if dbErr != nil {
			log.Printf("MongoDB connection attempt %d failed: %v", i, dbErr)
			time.Sleep(2 * time.Second)
			continue
		}
		break
	}
	if dbErr != nil {
		log.Fatal("Failed to connect to MongoDB:", dbErr)
	}
	defer db.Close()

	uploads, err := assets.NewCloudinary(cfg.CloudinaryURL)
	if err != nil {
		log.Fatal("Failed to configure asset host:", err)
	}

	handler := handlers.New(
		database.NewUserStore(db),
		database.NewPostStore(db),
		uploads,
		cfg,
	)

	router := routes.SetupRouter(handler, cfg)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server running on port %d", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("Forced shutdown:", err)
	}

	log.Println("Server stopped gracefully")
}
