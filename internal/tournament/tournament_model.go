package tournament

import (
	"time"

	"gorm.io/gorm"
)

// Tournament groups matches and team registrations for a club competition.
type Tournament struct {
	gorm.Model
	Name                 string    `json:"name" gorm:"not null"`
	Description          string    `json:"description" gorm:"type:text"`
	CreatedByUserID      uint      `json:"created_by_user_id" gorm:"index"`
	StartDate            time.Time `json:"start_date"`
	EndDate              time.Time `json:"end_date"`
	RegistrationDeadline time.Time `json:"registration_deadline"`
	MaxTeams             int       `json:"max_teams,omitempty"`
	CurrentTeams         int       `json:"current_teams" gorm:"default:0"`
	Status               string    `json:"status" gorm:"default:'registration_open'"`
}

// TournamentTeam records a team's registration in a tournament.
type TournamentTeam struct {
	gorm.Model
	TournamentID uint      `json:"tournament_id" gorm:"index;not null;uniqueIndex:idx_tournament_team_unique"`
	TeamID       uint      `json:"team_id" gorm:"index;not null;uniqueIndex:idx_tournament_team_unique"`
	RegisteredAt time.Time `json:"registered_at"`
	Status       string    `json:"status" gorm:"default:'approved'"`
}
