package scoring

import (
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/crickside/internal/team"
	"github.com/DhavalSuthar-24/crickside/internal/user"
)

// MatchStatus is the lifecycle state of a scored match.
type MatchStatus string

const (
	StatusScheduled MatchStatus = "scheduled"
	StatusLive      MatchStatus = "live"
	StatusCompleted MatchStatus = "completed"
)

// TossDecision is what the toss winner chose to do first.
type TossDecision string

const (
	TossBat  TossDecision = "bat"
	TossBowl TossDecision = "bowl"
)

// ExtraType classifies runs not scored off the bat. Empty means a normal delivery.
type ExtraType string

const (
	ExtraNone   ExtraType = ""
	ExtraWide   ExtraType = "wide"
	ExtraNoBall ExtraType = "no_ball"
	ExtraBye    ExtraType = "bye"
	ExtraLegBye ExtraType = "leg_bye"
)

// BallsPerOver is fixed; the overs limit is per match.
const BallsPerOver = 6

// Match is the authoritative record of one fixture. The Current* pointers are
// mutated only by the scoring service under per-match serialization; everything
// else about the live score is derived from the ball event log.
type Match struct {
	gorm.Model
	TeamAID uint       `json:"team_a_id" gorm:"index;not null"`
	TeamA   *team.Team `json:"team_a,omitempty" gorm:"foreignKey:TeamAID"`
	TeamBID uint       `json:"team_b_id" gorm:"index;not null"`
	TeamB   *team.Team `json:"team_b,omitempty" gorm:"foreignKey:TeamBID"`

	TournamentID *uint `json:"tournament_id,omitempty" gorm:"index"`
	OversLimit   int   `json:"overs_limit" gorm:"not null"`

	Status MatchStatus `json:"status" gorm:"index;default:'scheduled'"`

	TossWinnerTeamID *uint        `json:"toss_winner_team_id,omitempty" gorm:"index"`
	TossDecision     TossDecision `json:"toss_decision,omitempty"`

	CurrentInnings       int   `json:"current_innings" gorm:"default:1"`
	CurrentBattingTeamID *uint `json:"current_batting_team_id,omitempty" gorm:"index"`
	CurrentStrikerID     *uint `json:"current_striker_id,omitempty"`
	CurrentNonStrikerID  *uint `json:"current_non_striker_id,omitempty"`
	CurrentBowlerID      *uint `json:"current_bowler_id,omitempty"`

	WinningTeamID   *uint      `json:"winning_team_id,omitempty" gorm:"index"`
	ManOfTheMatchID *uint      `json:"man_of_the_match_id,omitempty" gorm:"index"`
	ManOfTheMatch   *user.User `json:"man_of_the_match,omitempty" gorm:"foreignKey:ManOfTheMatchID"`
	ResultSummary   string     `json:"result_summary,omitempty" gorm:"type:text"`
}

// BowlingTeamID returns the side not currently batting.
func (m *Match) BowlingTeamID() uint {
	if m.CurrentBattingTeamID != nil && *m.CurrentBattingTeamID == m.TeamAID {
		return m.TeamBID
	}
	return m.TeamAID
}

// HasTeam reports whether the given team is one of the two competing sides.
func (m *Match) HasTeam(teamID uint) bool {
	return teamID == m.TeamAID || teamID == m.TeamBID
}

// MatchSettings holds per-match scoring rules. Kept in its own table so the
// scoreboard client can update rules without touching the match row.
type MatchSettings struct {
	gorm.Model
	MatchID uint `json:"match_id" gorm:"uniqueIndex;not null"`
	// When true, wides and no-balls must be re-bowled and do not count toward
	// the six-ball over.
	RebowlWideNoBall bool `json:"rebowl_wide_no_ball" gorm:"default:true"`
}

// BallEvent is the atomic scoring fact. Events are append-only: once stored
// they are never edited, only removed newest-first by undo. Within a
// match+innings the log is totally ordered by insertion (primary key).
type BallEvent struct {
	gorm.Model
	MatchID uint `json:"match_id" gorm:"index:idx_ball_match_innings;not null"`
	Innings int  `json:"innings" gorm:"index:idx_ball_match_innings;not null"`

	OverNumber int `json:"over_number" gorm:"not null"` // 0-based
	BallNumber int `json:"ball_number" gorm:"not null"` // 1-based within the over

	StrikerID     uint `json:"striker_id" gorm:"index;not null"`
	NonStrikerID  uint `json:"non_striker_id" gorm:"not null"`
	BowlerID      uint `json:"bowler_id" gorm:"index;not null"`
	BattingTeamID uint `json:"batting_team_id" gorm:"index;not null"`

	RunsScored  int       `json:"runs_scored" gorm:"default:0"` // off the bat (byes/leg-byes use this field too)
	IsWicket    bool      `json:"is_wicket" gorm:"default:false"`
	Extras      int       `json:"extras" gorm:"default:0"`
	ExtraType   ExtraType `json:"extra_type,omitempty"`
	IsValidBall bool      `json:"is_valid_ball" gorm:"default:true"` // counts toward the 6-ball over
}

// TotalRuns is everything this delivery added to the team score.
func (e *BallEvent) TotalRuns() int {
	return e.RunsScored + e.Extras
}
