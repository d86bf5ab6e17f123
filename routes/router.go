package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/crickside/config"
	"github.com/DhavalSuthar-24/crickside/internal/auth"
	"github.com/DhavalSuthar-24/crickside/internal/live"
	"github.com/DhavalSuthar-24/crickside/internal/scoring"
	"github.com/DhavalSuthar-24/crickside/internal/team"
	"github.com/DhavalSuthar-24/crickside/internal/tournament"
)

// SetupRoutes builds the gin engine with every route group registered.
func SetupRoutes(db *gorm.DB, appConfig *config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	hub := live.NewHub()
	teamRepo := team.NewTeamRepository(db)

	api := r.Group("/api")
	auth.RegisterAuthRoutes(api, db, appConfig)
	team.TeamRoutes(api, db, appConfig, teamRepo)
	tournament.TournamentRoutes(api, db, appConfig)
	scoring.ScoringRoutes(api, db, appConfig, teamRepo, hub)

	return r
}
