package main

import (
	"log"

	"github.com/DhavalSuthar-24/crickside/config"
	_ "github.com/DhavalSuthar-24/crickside/docs"
	"github.com/DhavalSuthar-24/crickside/internal/scoring"
	"github.com/DhavalSuthar-24/crickside/internal/team"
	"github.com/DhavalSuthar-24/crickside/internal/tournament"
	"github.com/DhavalSuthar-24/crickside/internal/user"
	"github.com/DhavalSuthar-24/crickside/routes"
)

// @title Crickside Live Scoring API
// @version 1.0
// @description Ball-by-ball live scoring for club cricket matches.
// @host localhost:8088
// @BasePath /api
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&user.User{},
		&team.Team{}, &team.TeamMember{},
		&tournament.Tournament{}, &tournament.TournamentTeam{},
		&scoring.Match{}, &scoring.MatchSettings{}, &scoring.BallEvent{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	r := routes.SetupRoutes(config.DB, cfg)

	log.Printf("Starting server on port %s in %s mode", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
