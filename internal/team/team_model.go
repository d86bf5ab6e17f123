package team

import (
	"time"

	"gorm.io/gorm"
)

// Team represents a club side that can be fielded in a match.
type Team struct {
	gorm.Model
	Name         string `json:"name" gorm:"not null;uniqueIndex"`
	Description  string `json:"description"`
	Logo         string `json:"logo"`
	CreatedByID  uint   `json:"created_by_id" gorm:"index"`
	TournamentID *uint  `json:"tournament_id,omitempty" gorm:"index"`
}

// TeamMember is one player's spot on a team roster. BattingOrder fixes the
// ordering used when the roster is handed to the scoring engine.
type TeamMember struct {
	gorm.Model
	TeamID       uint      `json:"team_id" gorm:"index;uniqueIndex:idx_team_member"`
	UserID       uint      `json:"user_id" gorm:"index;uniqueIndex:idx_team_member"`
	Role         string    `json:"role" gorm:"default:'player'"`
	JoinedAt     time.Time `json:"joined_at"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	IsCaptain    bool      `json:"is_captain" gorm:"default:false"`
	BattingOrder int       `json:"batting_order" gorm:"default:0"`
}
