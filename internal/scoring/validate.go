package scoring

// BallIsValid reports whether a delivery counts toward the six-ball over.
// Wides and no-balls are invalid only while the re-bowl rule is on. The result
// is computed at record time and stored on the event, so flipping the rule
// mid-match never rewrites history.
func BallIsValid(extraType ExtraType, rebowlWideNoBall bool) bool {
	if extraType == ExtraWide || extraType == ExtraNoBall {
		return !rebowlWideNoBall
	}
	return true
}

// validateDelivery enforces the transition rules for recording a ball, in
// order, failing on the first violation. rosterSize is the batting side's
// player count; state is the innings state derived before this delivery.
func validateDelivery(m *Match, state *LiveState, rosterSize int) error {
	if m.Status != StatusLive {
		return ErrMatchNotLive
	}
	if m.CurrentStrikerID == nil || m.CurrentNonStrikerID == nil || m.CurrentBowlerID == nil {
		return ErrPlayersNotSelected
	}
	if m.OversLimit > 0 && state.ValidBalls >= m.OversLimit*BallsPerOver {
		return ErrOversLimitReached
	}
	// Hard block once the side is all out: the innings is over regardless of
	// what the client tries to submit.
	if rosterSize > 1 && state.Wickets >= rosterSize-1 {
		return ErrInningsOver
	}
	return nil
}

// validateBowler checks team membership whenever a bowler is (re)selected.
func validateBowler(m *Match, bowlerID uint, bowlingRoster []uint) error {
	if m.Status != StatusLive {
		return ErrMatchNotLive
	}
	if !containsPlayer(bowlingRoster, bowlerID) {
		return ErrInvalidBowler
	}
	return nil
}

// validateBatsman checks a replacement batter: on the batting roster and not
// already at the crease.
func validateBatsman(m *Match, batsmanID uint, battingRoster []uint) error {
	if m.Status != StatusLive {
		return ErrMatchNotLive
	}
	if !containsPlayer(battingRoster, batsmanID) {
		return ErrInvalidBatsman
	}
	if m.CurrentNonStrikerID != nil && *m.CurrentNonStrikerID == batsmanID {
		return ErrDuplicateBatsman
	}
	if m.CurrentStrikerID != nil && *m.CurrentStrikerID == batsmanID {
		return ErrDuplicateBatsman
	}
	return nil
}

func containsPlayer(roster []uint, playerID uint) bool {
	for _, id := range roster {
		if id == playerID {
			return true
		}
	}
	return false
}
