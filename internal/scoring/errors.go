package scoring

import "errors"

// Every rejected transition maps to one of these, so the HTTP layer can return
// an actionable message instead of a generic failure.
var (
	ErrMatchNotFound      = errors.New("match not found")
	ErrMatchNotLive       = errors.New("match is not live")
	ErrMatchNotScheduled  = errors.New("match has already been started")
	ErrPlayersNotSelected = errors.New("both batters and the bowler must be selected before scoring")
	ErrOversLimitReached  = errors.New("overs limit reached for this innings")
	ErrInvalidBowler      = errors.New("bowler cannot be from the batting team")
	ErrInvalidBatsman     = errors.New("batsman must belong to the batting team")
	ErrDuplicateBatsman   = errors.New("new batsman must differ from the batter at the other end")
	ErrInningsOver        = errors.New("side is all out; no further deliveries in this innings")
	ErrInvalidTossWinner  = errors.New("toss winner must be one of the competing teams")
	ErrInvalidWinner      = errors.New("winning team must be one of the competing teams")
	ErrSameTeams          = errors.New("a match needs two different teams")
	ErrInningsNotOver     = errors.New("current innings is still in progress")
	ErrSecondInnings      = errors.New("match is already in its final innings")

	// ErrEmptyLog is returned by undo when there is nothing to remove. It is a
	// state signal, not a failure of the store.
	ErrEmptyLog = errors.New("no ball events recorded for this match")
)
