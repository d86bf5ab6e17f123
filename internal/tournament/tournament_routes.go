package tournament

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/crickside/config"
	mw "github.com/DhavalSuthar-24/crickside/internal/middleware"
)

// TournamentRoutes sets up tournament routes.
func TournamentRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewGormTournamentRepository(db)
	controller := NewTournamentController(repo)

	tournaments := router.Group("/tournaments")

	tournaments.GET("", controller.GetTournaments)
	tournaments.GET("/:id", controller.GetTournament)

	protected := tournaments.Group("")
	protected.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		protected.POST("", controller.CreateTournament)
		protected.POST("/:id/register", controller.RegisterTeam)
		protected.POST("/:id/unregister", controller.UnregisterTeam)
	}
}
