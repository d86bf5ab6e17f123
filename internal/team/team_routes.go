package team

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/crickside/config"
	mw "github.com/DhavalSuthar-24/crickside/internal/middleware"
)

// TeamRoutes sets up all team and roster routes.
func TeamRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, repo TeamRepository) {
	controller := NewTeamController(repo)

	teams := router.Group("/teams")

	teams.GET("", controller.GetTeams)
	teams.GET("/:id", controller.GetTeam)
	teams.GET("/:id/members", controller.GetRoster)

	protected := teams.Group("")
	protected.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		protected.POST("", controller.CreateTeam)
		protected.PUT("/:id", controller.UpdateTeam)
		protected.POST("/:id/members", controller.AddMember)
		protected.DELETE("/:id/members/:userId", controller.RemoveMember)
	}
}
