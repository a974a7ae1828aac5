package main

import (
	"log"

	"quizhub/config"
	"quizhub/handlers"
	"quizhub/middleware"
	"quizhub/models"
	"quizhub/routes"
	"quizhub/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Quiz{},
		&models.Question{},
		&models.Choice{},
		&models.Message{},
		&models.QuizShare{},
		&models.Favorite{},
		&models.Comment{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis (session store)
	redisClient := config.InitRedis(cfg)

	// Initialize services
	authService := services.NewAuthService(db, redisClient)
	quizService := services.NewQuizService(db)
	messageService := services.NewMessageService(db)
	shareService := services.NewShareService(db)
	favoriteService := services.NewFavoriteService(db)
	commentService := services.NewCommentService(db)

	// Initialize notification hub
	hub := services.NewHub()
	go hub.Run()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	quizHandler := handlers.NewQuizHandler(quizService)
	commentHandler := handlers.NewCommentHandler(commentService)
	messageHandler := handlers.NewMessageHandler(messageService, hub)
	shareHandler := handlers.NewShareHandler(shareService, hub)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	uploadHandler := handlers.NewUploadHandler(cfg)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, cfg,
		authService,
		authHandler,
		quizHandler,
		commentHandler,
		messageHandler,
		shareHandler,
		favoriteHandler,
		uploadHandler,
		hub,
	)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
