package auth

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/crickside/config"
	mw "github.com/DhavalSuthar-24/crickside/internal/middleware"
)

// RegisterAuthRoutes sets up authentication endpoints.
func RegisterAuthRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewAuthRepository(db)
	controller := NewAuthController(repo, appConfig)

	public := router.Group("/auth")
	{
		public.POST("/register", controller.Register)
		public.POST("/login", controller.Login)
	}

	protected := router.Group("/auth")
	protected.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		protected.GET("/me", controller.GetProfile)
	}
}
