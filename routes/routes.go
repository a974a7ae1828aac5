package routes

import (
	"log"
	"net/http"

	"quizhub/config"
	"quizhub/handlers"
	"quizhub/middleware"
	"quizhub/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

func SetupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	authService *services.AuthService,
	authHandler *handlers.AuthHandler,
	quizHandler *handlers.QuizHandler,
	commentHandler *handlers.CommentHandler,
	messageHandler *handlers.MessageHandler,
	shareHandler *handlers.ShareHandler,
	favoriteHandler *handlers.FavoriteHandler,
	uploadHandler *handlers.UploadHandler,
	hub *services.Hub,
) {
	// API routes
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/current-user", authHandler.CurrentUser)
		}

		// Public quiz routes: anyone can browse and take quizzes
		api.GET("/quizzes", quizHandler.ListQuizzes)
		api.GET("/quizzes/:id", quizHandler.GetQuiz)
		api.GET("/quizzes/:id/comments", commentHandler.ListComments)

		// Vote toggling is driven by client-held state and needs no account
		api.POST("/quizzes/:id/like", quizHandler.LikeQuiz)
		api.POST("/quizzes/:id/dislike", quizHandler.DislikeQuiz)

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(authService))
		{
			protected.GET("/users", authHandler.ListUsers)

			// Quiz authoring and reactions
			quizzes := protected.Group("/quizzes")
			{
				quizzes.POST("", quizHandler.CreateQuiz)
				quizzes.PUT("/:id", quizHandler.UpdateQuiz)
				quizzes.PATCH("/:id", quizHandler.UpdateQuiz)
				quizzes.DELETE("/:id", quizHandler.DeleteQuiz)
				quizzes.POST("/:id/comments", commentHandler.PostComment)
			}

			protected.POST("/upload-image", uploadHandler.UploadImage)

			// Messaging
			messages := protected.Group("/messages")
			{
				messages.GET("", messageHandler.ListMessages)
				messages.POST("", messageHandler.SendMessage)
				messages.GET("/conversation", messageHandler.Conversation)
				messages.POST("/:id/mark_read", messageHandler.MarkRead)
			}

			// Quiz sharing
			shares := protected.Group("/quiz-shares")
			{
				shares.GET("", shareHandler.ListSent)
				shares.POST("", shareHandler.ShareQuiz)
				shares.GET("/received", shareHandler.ListReceived)
				shares.POST("/:id/mark_viewed", shareHandler.MarkViewed)
			}

			// Favorites
			favorites := protected.Group("/favorites")
			{
				favorites.GET("", favoriteHandler.ListFavorites)
				favorites.POST("", favoriteHandler.AddFavorite)
				favorites.DELETE("/:quiz_id", favoriteHandler.RemoveFavorite)
			}
		}
	}

	// Uploaded images are served straight from the media root
	router.Static(cfg.MediaURL, cfg.MediaRoot)

	// WebSocket endpoint for message/share notifications
	router.GET("/ws/notifications", func(c *gin.Context) {
		userID, username, ok := middleware.ResolveSession(c, authService)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed for user %d (%s): %v", userID, username, err)
			return
		}

		// Register client with hub - this will handle all message processing
		hub.RegisterClient(conn, userID, username)
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
