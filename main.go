package main

import (
	"fmt"
	"time"

	"github.com/apex/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"trashmap/config"
	"trashmap/database"
	"trashmap/handlers"
	"trashmap/middleware"
	"trashmap/photos"
	"trashmap/utils"
)

const (
	EndPointHealth      = "/health"
	EndPointCreateTrash = "/trash"
	EndPointGetTrash    = "/trash"
	EndPointGetStats    = "/stats"
	EndPointGetMap      = "/map"
	EndPointGetPhoto    = "/photos/:filename"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.Info("Starting the trashmap service...")

	// Connect to database
	db, err := utils.DBConnect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize database schema
	if err := database.InitSchema(db, cfg.DBDriver); err != nil {
		log.Fatalf("Failed to initialize database schema: %v", err)
	}

	// Initialize services
	trashService := database.NewTrashService(db)
	photoStore, err := photos.NewStore(cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		log.Fatalf("Failed to initialize photo store: %v", err)
	}

	// Initialize handlers
	trashHandler := handlers.NewTrashHandler(trashService, photoStore)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPM, cfg.RateLimitBurst)
	defer rateLimiter.Stop()

	// Setup router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		AllowOrigins:     []string{"*"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health endpoint stays outside the rate-limited API group
	router.GET(EndPointHealth, trashHandler.HealthCheck)

	api := router.Group("/api", rateLimiter.Limit())
	{
		api.POST(EndPointCreateTrash, trashHandler.CreateTrash)
		api.GET(EndPointGetTrash, trashHandler.GetTrash)
		api.GET(EndPointGetStats, trashHandler.GetStats)
		api.GET(EndPointGetMap, trashHandler.GetMap)
		api.GET(EndPointGetPhoto, trashHandler.ServePhoto)
	}

	// Start server
	log.Infof("Trashmap service starting on port %s", cfg.Port)
	if err := router.Run(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
