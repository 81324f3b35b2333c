package routes

import (
	"net/http"
	"strings"
	"time"

	"inkwell/config"
	"inkwell/handlers"
	"inkwell/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires the route table. Reads on posts are public; every
// mutation sits behind the auth middleware.
func SetupRouter(h *handlers.Handler, cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.ClientURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "Inkwell API running", "service": "healthy"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	auth := middleware.Auth(h.Users, cfg.JWTSecret)

	// Auth
	router.POST("/api/auth/register", h.Register)
	router.POST("/api/auth/login", h.Login)
	router.POST("/api/auth/logout", auth, h.Logout)

	// Posts: public reads, authenticated mutations
	router.GET("/api/posts", h.GetAllPosts)
	router.GET("/api/users/:userId/posts", h.GetPostsByUser)
	router.GET("/api/posts/:id", h.GetPostByID)
	router.POST("/api/posts", auth, h.CreatePost)
	router.PUT("/api/posts/:id", auth, h.UpdatePost)
	router.DELETE("/api/posts/:id", auth, h.DeletePost)

	// Profile
	router.GET("/api/user/profile", auth, h.GetProfile)
	router.PUT("/api/user/profile", auth, h.UpdateProfile)
	router.DELETE("/api/user/profile", auth, h.DeleteAccount)

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "Endpoint not found",
				"path":    c.Request.URL.Path,
			})
			return
		}
		c.Next()
	})

	return router
}
