package scoring

import "fmt"

// BatterFigures are the live numbers for one of the two batters at the crease.
type BatterFigures struct {
	PlayerID uint `json:"player_id"`
	Runs     int  `json:"runs"`
	Balls    int  `json:"balls"`
}

// BowlerFigures are the live numbers for the current bowler.
type BowlerFigures struct {
	PlayerID     uint   `json:"player_id"`
	RunsConceded int    `json:"runs_conceded"`
	Balls        int    `json:"balls"`
	Wickets      int    `json:"wickets"`
	Overs        string `json:"overs"`
}

// LiveState is the full derived picture of an innings. It is recomputed from
// the event log on every read; nothing in it is stored.
type LiveState struct {
	Innings    int    `json:"innings"`
	Score      int    `json:"score"`
	Wickets    int    `json:"wickets"`
	ValidBalls int    `json:"valid_balls"`
	Overs      string `json:"overs"`

	// RunRate is runs per over so far; 0 until the first valid ball.
	RunRate float64 `json:"run_rate"`

	// ThisOver lists the deliveries of the over in progress, newest last,
	// rendered as run value, "W", or the extra code.
	ThisOver []string `json:"this_over"`

	Striker    *BatterFigures `json:"striker,omitempty"`
	NonStriker *BatterFigures `json:"non_striker,omitempty"`
	Bowler     *BowlerFigures `json:"bowler,omitempty"`
}

// OversDisplay renders a valid-ball count as the conventional "O.B" string,
// e.g. 12 balls -> "2.0", 13 -> "2.1".
func OversDisplay(validBalls int) string {
	return fmt.Sprintf("%d.%d", validBalls/BallsPerOver, validBalls%BallsPerOver)
}

// renderBall is how one delivery shows up in the "this over" strip.
func renderBall(e *BallEvent) string {
	if e.IsWicket {
		return "W"
	}
	switch e.ExtraType {
	case ExtraWide:
		return "wd"
	case ExtraNoBall:
		return "nb"
	case ExtraBye:
		return "b"
	case ExtraLegBye:
		return "lb"
	}
	return fmt.Sprintf("%d", e.RunsScored)
}

// Rebuild derives the live state of an innings from its ordered event
// sequence and the current control pointers. It is a pure function: same
// events and pointers in, same state out, and the input slice is not touched.
func Rebuild(innings int, events []BallEvent, strikerID, nonStrikerID, bowlerID *uint) LiveState {
	state := LiveState{
		Innings:  innings,
		ThisOver: []string{},
	}

	for i := range events {
		e := &events[i]
		state.Score += e.TotalRuns()
		if e.IsWicket {
			state.Wickets++
		}
		if e.IsValidBall {
			state.ValidBalls++
		}
	}

	state.Overs = OversDisplay(state.ValidBalls)
	if state.ValidBalls > 0 {
		state.RunRate = float64(state.Score) / float64(state.ValidBalls) * BallsPerOver
	}

	currentOver := state.ValidBalls / BallsPerOver
	for i := range events {
		e := &events[i]
		if e.OverNumber == currentOver {
			state.ThisOver = append(state.ThisOver, renderBall(e))
		}
	}

	if strikerID != nil {
		state.Striker = batterFigures(*strikerID, events)
	}
	if nonStrikerID != nil {
		state.NonStriker = batterFigures(*nonStrikerID, events)
	}
	if bowlerID != nil {
		state.Bowler = bowlerFigures(*bowlerID, events)
	}

	return state
}

func batterFigures(playerID uint, events []BallEvent) *BatterFigures {
	f := &BatterFigures{PlayerID: playerID}
	for i := range events {
		e := &events[i]
		if e.StrikerID != playerID {
			continue
		}
		f.Runs += e.RunsScored
		if e.IsValidBall {
			f.Balls++
		}
	}
	return f
}

func bowlerFigures(playerID uint, events []BallEvent) *BowlerFigures {
	f := &BowlerFigures{PlayerID: playerID}
	for i := range events {
		e := &events[i]
		if e.BowlerID != playerID {
			continue
		}
		f.RunsConceded += e.TotalRuns()
		if e.IsValidBall {
			f.Balls++
		}
		if e.IsWicket {
			f.Wickets++
		}
	}
	f.Overs = OversDisplay(f.Balls)
	return f
}
