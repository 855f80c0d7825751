package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/grantbelcher/DevConnector/handlers"
	"github.com/grantbelcher/DevConnector/middleware"
	"github.com/grantbelcher/DevConnector/token"
)

// Setup wires the API surface: public reads and registration/login,
// everything else behind the auth gate.
func Setup(api *handlers.API, tokens *token.Service, allowedOrigins []string) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.RequestID())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "x-auth-token"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/", func(c *gin.Context) {
		c.String(200, "API running")
	})

	auth := middleware.Auth(tokens)

	router.POST("/api/users", api.Register)
	router.POST("/api/auth", api.Login)
	router.GET("/api/auth", auth, api.CurrentUser)

	profiles := router.Group("/api/profiles")
	{
		profiles.GET("", api.AllProfiles)
		profiles.GET("/user/:user_id", api.ProfileByUser)
		profiles.GET("/github/:username", api.GithubRepos)

		profiles.GET("/me", auth, api.MyProfile)
		profiles.POST("", auth, api.UpsertProfile)
		profiles.PUT("/experience", auth, api.AddExperience)
		profiles.DELETE("/experience/:exp_id", auth, api.DeleteExperience)
		profiles.PUT("/education", auth, api.AddEducation)
		profiles.DELETE("/education/:edu_id", auth, api.DeleteEducation)
	}

	posts := router.Group("/api/posts", auth)
	{
		posts.POST("", api.CreatePost)
		posts.GET("", api.Posts)
		posts.GET("/:id", api.Post)
		posts.DELETE("/:id", api.DeletePost)
		posts.PUT("/:id/like", api.LikePost)
		posts.PUT("/:id/unlike", api.UnlikePost)
		posts.POST("/:id/comments", api.AddComment)
		posts.DELETE("/:id/comments/:comment_id", api.DeleteComment)
	}

	return router
}
