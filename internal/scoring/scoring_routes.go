package scoring

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/crickside/config"
	"github.com/DhavalSuthar-24/crickside/internal/live"
	mw "github.com/DhavalSuthar-24/crickside/internal/middleware"
	"github.com/DhavalSuthar-24/crickside/internal/team"
)

// ScoringRoutes wires the live-scoring endpoints. Reads and the websocket
// feed are public; every mutation requires an authenticated scorer.
func ScoringRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, teamRepo team.TeamRepository, hub *live.Hub) {
	matchRepo := NewGormMatchRepository(db)
	eventStore := NewGormEventStore(db)
	service := NewService(matchRepo, eventStore, team.NewRosterAdapter(teamRepo), hub)
	controller := NewScoringController(service)

	matches := router.Group("/matches")

	// Public read surface: spectators re-fetch state on every change signal.
	matches.GET("", controller.GetMatches)
	matches.GET("/:id", controller.GetMatch)
	matches.GET("/:id/state", controller.GetState)
	matches.GET("/:id/events", controller.GetEvents)
	matches.GET("/:id/live", hub.HandleWS)

	scorer := matches.Group("")
	scorer.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		scorer.POST("", controller.CreateMatch)
		scorer.POST("/:id/start", controller.StartMatch)
		scorer.POST("/:id/balls", controller.RecordBall)
		scorer.POST("/:id/undo", controller.UndoBall)
		scorer.POST("/:id/bowler", controller.SelectBowler)
		scorer.POST("/:id/batsman", controller.SelectBatsman)
		scorer.POST("/:id/swap-strike", controller.SwapStrike)
		scorer.POST("/:id/innings/next", controller.NextInnings)
		scorer.POST("/:id/complete", controller.CompleteMatch)
		scorer.PUT("/:id/settings", controller.UpdateSettings)
	}
}
