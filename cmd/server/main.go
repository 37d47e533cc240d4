package main

import (
	"context"
	"fmt"
	"log"
	"mandalart/internal/auth"
	"mandalart/internal/config"
	"mandalart/internal/db"
	"mandalart/internal/mandalart"
	"mandalart/internal/middleware"
	"mandalart/internal/user"
	"mandalart/internal/worker"
	"mandalart/redis"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	config.LoadConfig()
	config.ValidateServer()

	// Connect to database
	db.ConnectDb()
	defer db.CloseDb()

	// Migrate database schema
	db.Migrate()

	// Seed database with initial data (for development)
	db.SeedData()

	// Initialize Redis
	redis.InitRedis()
	cache := redis.NewCache(redis.RedisClient)

	// Background workers for cache population
	pool := worker.NewWorkerPool(4)

	// Initialize repositories
	userRepo := user.NewRepository(db.AppDb)
	sessionRepo := auth.NewSessionRepository(db.AppDb)
	mandalartRepo := mandalart.NewRepository(db.AppDb)

	// Initialize services
	provider := auth.NewGoogleProvider(auth.GoogleProviderConfig{
		ClientID:     config.AppConfig.GoogleClientID,
		ClientSecret: config.AppConfig.GoogleClientSecret,
	})
	authService := auth.NewService(provider, userRepo, sessionRepo, config.AppConfig.SessionSecret)
	mandalartService := mandalart.NewService(mandalartRepo, cache, pool)

	// Initialize handlers
	authHandler := auth.NewHandler(authService)
	mandalartHandler := mandalart.NewHandler(mandalartService)
	mandalart.RegisterValidators()

	// Initialize Gin router
	router := gin.Default()
	router.Use(middleware.ErrorHandler())

	// cors setting
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}

	if config.AppConfig.Environment == "development" {
		// Allow all origins in development
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		// Restrict origins in production
		corsConfig.AllowOrigins = []string{config.AppConfig.FrontendAddress}
	}
	router.Use(cors.New(corsConfig))

	// Auth routes
	router.GET("/api/auth/login", authHandler.Login)
	router.GET("/api/auth/callback/google", authHandler.Callback)
	router.POST("/api/auth/logout", authHandler.Logout)
	router.GET("/api/auth/me", authHandler.Me)

	// Mandalart routes; the session is re-checked on every request
	authorized := router.Group("/api/mandalart", middleware.SessionAuth(authService))
	authorized.GET("", mandalartHandler.List)
	authorized.POST("", mandalartHandler.Save)
	authorized.DELETE("/:id", mandalartHandler.Delete)

	// Server configuration
	serverPort := config.AppConfig.ServerPort
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", serverPort),
		Handler: router.Handler(),
	}

	// Start server
	go func() {
		log.Printf("Server listening on port %s", serverPort)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Println("Server shutdown error:", err)
	}

	pool.Shutdown()

	<-ctx.Done()
	log.Println("Server shutdown complete")
}
