package scoring

import (
	"sync"
)

// Roster is the collaborator that knows team membership. Implemented by the
// team package; the scoring core only needs ordered player ids.
type Roster interface {
	ActivePlayerIDs(teamID uint) ([]uint, error)
}

// Notifier receives a signal after every successful mutation. Subscribers are
// expected to re-fetch authoritative state; the signal carries no payload
// beyond the match id.
type Notifier interface {
	MatchChanged(matchID uint)
}

// Service is the match controller: it owns the control pointers and is the
// only writer of match state. All mutations for one match are serialized
// behind a per-match mutex; different matches proceed independently.
type Service struct {
	matches  MatchRepository
	events   EventStore
	roster   Roster
	notifier Notifier

	locks sync.Map // match id -> *sync.Mutex
}

// NewService creates a scoring service.
func NewService(matches MatchRepository, events EventStore, roster Roster, notifier Notifier) *Service {
	return &Service{
		matches:  matches,
		events:   events,
		roster:   roster,
		notifier: notifier,
	}
}

func (s *Service) lock(matchID uint) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(matchID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// CreateMatchInput describes a new scheduled match.
type CreateMatchInput struct {
	TeamAID      uint
	TeamBID      uint
	TournamentID *uint
	OversLimit   int
}

// CreateMatch registers a scheduled fixture with default settings.
func (s *Service) CreateMatch(in CreateMatchInput) (*Match, error) {
	if in.TeamAID == in.TeamBID {
		return nil, ErrSameTeams
	}
	match := &Match{
		TeamAID:        in.TeamAID,
		TeamBID:        in.TeamBID,
		TournamentID:   in.TournamentID,
		OversLimit:     in.OversLimit,
		Status:         StatusScheduled,
		CurrentInnings: 1,
	}
	if err := s.matches.CreateMatch(match); err != nil {
		return nil, err
	}
	return match, nil
}

// StartInput carries everything needed to move a match from scheduled to live.
type StartInput struct {
	TossWinnerTeamID uint
	TossDecision     TossDecision
	StrikerID        uint
	NonStrikerID     uint
	BowlerID         uint
}

// Start performs the SCHEDULED -> LIVE transition: records the toss, derives
// the batting side, validates the opening players against the rosters and
// persists the initial control pointers.
func (s *Service) Start(matchID uint, in StartInput) (*Match, error) {
	mu := s.lock(matchID)
	mu.Lock()
	defer mu.Unlock()

	match, err := s.matches.GetMatchByID(matchID)
	if err != nil {
		return nil, err
	}
	if match.Status != StatusScheduled {
		return nil, ErrMatchNotScheduled
	}
	if !match.HasTeam(in.TossWinnerTeamID) {
		return nil, ErrInvalidTossWinner
	}

	battingTeamID := in.TossWinnerTeamID
	if in.TossDecision == TossBowl {
		if in.TossWinnerTeamID == match.TeamAID {
			battingTeamID = match.TeamBID
		} else {
			battingTeamID = match.TeamAID
		}
	}
	bowlingTeamID := match.TeamAID
	if battingTeamID == match.TeamAID {
		bowlingTeamID = match.TeamBID
	}

	battingRoster, err := s.roster.ActivePlayerIDs(battingTeamID)
	if err != nil {
		return nil, err
	}
	bowlingRoster, err := s.roster.ActivePlayerIDs(bowlingTeamID)
	if err != nil {
		return nil, err
	}
	if in.StrikerID == in.NonStrikerID {
		return nil, ErrDuplicateBatsman
	}
	if !containsPlayer(battingRoster, in.StrikerID) || !containsPlayer(battingRoster, in.NonStrikerID) {
		return nil, ErrInvalidBatsman
	}
	if !containsPlayer(bowlingRoster, in.BowlerID) {
		return nil, ErrInvalidBowler
	}

	err = s.matches.UpdateControl(matchID, map[string]interface{}{
		"status":                  StatusLive,
		"toss_winner_team_id":     in.TossWinnerTeamID,
		"toss_decision":           in.TossDecision,
		"current_innings":         1,
		"current_batting_team_id": battingTeamID,
		"current_striker_id":      in.StrikerID,
		"current_non_striker_id":  in.NonStrikerID,
		"current_bowler_id":       in.BowlerID,
	})
	if err != nil {
		return nil, err
	}

	s.notifier.MatchChanged(matchID)
	return s.matches.GetMatchByID(matchID)
}

// BallInput is what the scorer submits for one delivery. Over and ball
// numbers are assigned by the service, never by the client.
type BallInput struct {
	RunsScored int
	IsWicket   bool
	Extras     int
	ExtraType  ExtraType
}

// RecordBall validates, numbers, appends and applies one delivery, then
// recomputes the innings state and performs the player-rotation side effects.
func (s *Service) RecordBall(matchID uint, in BallInput) (*BallEvent, *LiveState, error) {
	mu := s.lock(matchID)
	mu.Lock()
	defer mu.Unlock()

	match, err := s.matches.GetMatchByID(matchID)
	if err != nil {
		return nil, nil, err
	}
	settings, err := s.matches.GetSettings(matchID)
	if err != nil {
		return nil, nil, err
	}

	events, err := s.events.ListForInnings(matchID, match.CurrentInnings)
	if err != nil {
		return nil, nil, err
	}
	before := Rebuild(match.CurrentInnings, events, match.CurrentStrikerID, match.CurrentNonStrikerID, match.CurrentBowlerID)

	rosterSize := 0
	var battingRoster []uint
	if match.CurrentBattingTeamID != nil {
		battingRoster, err = s.roster.ActivePlayerIDs(*match.CurrentBattingTeamID)
		if err != nil {
			return nil, nil, err
		}
		rosterSize = len(battingRoster)
	}

	if err := validateDelivery(match, &before, rosterSize); err != nil {
		return nil, nil, err
	}

	extras := in.Extras
	if in.ExtraType != ExtraNone && extras == 0 {
		extras = 1
	}

	event := &BallEvent{
		MatchID:       matchID,
		Innings:       match.CurrentInnings,
		OverNumber:    before.ValidBalls / BallsPerOver,
		BallNumber:    before.ValidBalls%BallsPerOver + 1,
		StrikerID:     *match.CurrentStrikerID,
		NonStrikerID:  *match.CurrentNonStrikerID,
		BowlerID:      *match.CurrentBowlerID,
		BattingTeamID: derefOrZero(match.CurrentBattingTeamID),
		RunsScored:    in.RunsScored,
		IsWicket:      in.IsWicket,
		Extras:        extras,
		ExtraType:     in.ExtraType,
		IsValidBall:   BallIsValid(in.ExtraType, settings.RebowlWideNoBall),
	}
	if err := s.events.Append(event); err != nil {
		return nil, nil, err
	}

	events = append(events, *event)

	strikerID := match.CurrentStrikerID
	nonStrikerID := match.CurrentNonStrikerID
	bowlerID := match.CurrentBowlerID
	fields := map[string]interface{}{}

	// Odd runs (including byes and leg-byes) mean the batters crossed.
	if in.RunsScored%2 == 1 {
		strikerID, nonStrikerID = nonStrikerID, strikerID
		fields["current_striker_id"] = strikerID
		fields["current_non_striker_id"] = nonStrikerID
	}

	after := Rebuild(match.CurrentInnings, events, strikerID, nonStrikerID, bowlerID)

	// A wicket vacates the striker's end; a replacement is requested only
	// while the side still has a batter to send in.
	if event.IsWicket {
		if rosterSize > 1 && after.Wickets < rosterSize-1 {
			strikerID = nil
			fields["current_striker_id"] = nil
		}
	}

	// Over complete: a new bowler is required before the next delivery,
	// unless the innings just ended at the overs limit.
	if event.IsValidBall && after.ValidBalls > 0 && after.ValidBalls%BallsPerOver == 0 {
		if match.OversLimit == 0 || after.ValidBalls < match.OversLimit*BallsPerOver {
			bowlerID = nil
			fields["current_bowler_id"] = nil
		}
	}

	if err := s.matches.UpdateControl(matchID, fields); err != nil {
		return nil, nil, err
	}

	after = Rebuild(match.CurrentInnings, events, strikerID, nonStrikerID, bowlerID)
	s.notifier.MatchChanged(matchID)
	return event, &after, nil
}

// SelectBowler sets the bowler pointer, typically after an over completes.
func (s *Service) SelectBowler(matchID, playerID uint) error {
	mu := s.lock(matchID)
	mu.Lock()
	defer mu.Unlock()

	match, err := s.matches.GetMatchByID(matchID)
	if err != nil {
		return err
	}
	bowlingRoster, err := s.roster.ActivePlayerIDs(match.BowlingTeamID())
	if err != nil {
		return err
	}
	if err := validateBowler(match, playerID, bowlingRoster); err != nil {
		return err
	}
	if err := s.matches.UpdateControl(matchID, map[string]interface{}{
		"current_bowler_id": playerID,
	}); err != nil {
		return err
	}
	s.notifier.MatchChanged(matchID)
	return nil
}

// BatterSlot names the end a selected batter takes.
type BatterSlot string

const (
	SlotStriker    BatterSlot = "striker"
	SlotNonStriker BatterSlot = "non_striker"
)

// SelectBatsman fills a vacant batting slot: the striker's end after a
// wicket, or either end when a fresh innings starts with no batters set.
func (s *Service) SelectBatsman(matchID, playerID uint, slot BatterSlot) error {
	mu := s.lock(matchID)
	mu.Lock()
	defer mu.Unlock()

	match, err := s.matches.GetMatchByID(matchID)
	if err != nil {
		return err
	}
	if match.CurrentBattingTeamID == nil {
		return ErrPlayersNotSelected
	}
	battingRoster, err := s.roster.ActivePlayerIDs(*match.CurrentBattingTeamID)
	if err != nil {
		return err
	}
	if err := validateBatsman(match, playerID, battingRoster); err != nil {
		return err
	}
	column := "current_striker_id"
	if slot == SlotNonStriker {
		column = "current_non_striker_id"
	}
	if err := s.matches.UpdateControl(matchID, map[string]interface{}{
		column: playerID,
	}); err != nil {
		return err
	}
	s.notifier.MatchChanged(matchID)
	return nil
}

// SwapStrike is an operator correction that exchanges the two batters.
func (s *Service) SwapStrike(matchID uint) error {
	mu := s.lock(matchID)
	mu.Lock()
	defer mu.Unlock()

	match, err := s.matches.GetMatchByID(matchID)
	if err != nil {
		return err
	}
	if match.Status != StatusLive {
		return ErrMatchNotLive
	}
	if match.CurrentStrikerID == nil || match.CurrentNonStrikerID == nil {
		return ErrPlayersNotSelected
	}
	if err := s.matches.UpdateControl(matchID, map[string]interface{}{
		"current_striker_id":     *match.CurrentNonStrikerID,
		"current_non_striker_id": *match.CurrentStrikerID,
	}); err != nil {
		return err
	}
	s.notifier.MatchChanged(matchID)
	return nil
}

// StartSecondInnings swaps the batting side once the first innings is over
// (all out or overs limit reached) and clears the pointers for fresh
// selections.
func (s *Service) StartSecondInnings(matchID uint) error {
	mu := s.lock(matchID)
	mu.Lock()
	defer mu.Unlock()

	match, err := s.matches.GetMatchByID(matchID)
	if err != nil {
		return err
	}
	if match.Status != StatusLive {
		return ErrMatchNotLive
	}
	if match.CurrentInnings != 1 {
		return ErrSecondInnings
	}

	events, err := s.events.ListForInnings(matchID, match.CurrentInnings)
	if err != nil {
		return err
	}
	state := Rebuild(match.CurrentInnings, events, nil, nil, nil)

	rosterSize := 0
	if match.CurrentBattingTeamID != nil {
		roster, err := s.roster.ActivePlayerIDs(*match.CurrentBattingTeamID)
		if err != nil {
			return err
		}
		rosterSize = len(roster)
	}

	allOut := rosterSize > 1 && state.Wickets >= rosterSize-1
	oversDone := match.OversLimit > 0 && state.ValidBalls >= match.OversLimit*BallsPerOver
	if !allOut && !oversDone {
		return ErrInningsNotOver
	}

	newBattingTeamID := match.BowlingTeamID()
	if err := s.matches.UpdateControl(matchID, map[string]interface{}{
		"current_innings":         2,
		"current_batting_team_id": newBattingTeamID,
		"current_striker_id":      nil,
		"current_non_striker_id":  nil,
		"current_bowler_id":       nil,
	}); err != nil {
		return err
	}
	s.notifier.MatchChanged(matchID)
	return nil
}

// CompleteInput is the operator's final verdict. Result derivation across the
// two innings is deliberately manual.
type CompleteInput struct {
	WinningTeamID   *uint
	ManOfTheMatchID *uint
	ResultSummary   string
}

// Complete performs the LIVE -> COMPLETED transition.
func (s *Service) Complete(matchID uint, in CompleteInput) error {
	mu := s.lock(matchID)
	mu.Lock()
	defer mu.Unlock()

	match, err := s.matches.GetMatchByID(matchID)
	if err != nil {
		return err
	}
	if match.Status != StatusLive {
		return ErrMatchNotLive
	}
	if in.WinningTeamID != nil && !match.HasTeam(*in.WinningTeamID) {
		return ErrInvalidWinner
	}
	if err := s.matches.UpdateControl(matchID, map[string]interface{}{
		"status":              StatusCompleted,
		"winning_team_id":     in.WinningTeamID,
		"man_of_the_match_id": in.ManOfTheMatchID,
		"result_summary":      in.ResultSummary,
	}); err != nil {
		return err
	}
	s.notifier.MatchChanged(matchID)
	return nil
}

// Undo removes the most recent delivery of the current innings and recomputes
// the state. Control pointers are left as they are: the recomputed log is the
// truth, and any selection that was pending because of the removed ball is
// simply no longer pending.
func (s *Service) Undo(matchID uint) (*BallEvent, *LiveState, error) {
	mu := s.lock(matchID)
	mu.Lock()
	defer mu.Unlock()

	match, err := s.matches.GetMatchByID(matchID)
	if err != nil {
		return nil, nil, err
	}

	events, err := s.events.ListForInnings(matchID, match.CurrentInnings)
	if err != nil {
		return nil, nil, err
	}
	if len(events) == 0 {
		return nil, nil, ErrEmptyLog
	}

	removed, err := s.events.RemoveLast(matchID)
	if err != nil {
		return nil, nil, err
	}

	events, err = s.events.ListForInnings(matchID, match.CurrentInnings)
	if err != nil {
		return nil, nil, err
	}
	state := Rebuild(match.CurrentInnings, events, match.CurrentStrikerID, match.CurrentNonStrikerID, match.CurrentBowlerID)
	s.notifier.MatchChanged(matchID)
	return removed, &state, nil
}

// State rebuilds the derived state for the current innings from the log.
func (s *Service) State(matchID uint) (*Match, *LiveState, error) {
	mu := s.lock(matchID)
	mu.Lock()
	defer mu.Unlock()

	match, err := s.matches.GetMatchByID(matchID)
	if err != nil {
		return nil, nil, err
	}
	events, err := s.events.ListForInnings(matchID, match.CurrentInnings)
	if err != nil {
		return nil, nil, err
	}
	state := Rebuild(match.CurrentInnings, events, match.CurrentStrikerID, match.CurrentNonStrikerID, match.CurrentBowlerID)
	return match, &state, nil
}

// Events exposes the raw log of one innings.
func (s *Service) Events(matchID uint, innings int) ([]BallEvent, error) {
	return s.events.ListForInnings(matchID, innings)
}

// UpdateSettings changes the re-bowl rule. Already-stored events keep the
// validity computed when they were recorded.
func (s *Service) UpdateSettings(matchID uint, rebowl bool) (*MatchSettings, error) {
	mu := s.lock(matchID)
	mu.Lock()
	defer mu.Unlock()

	if _, err := s.matches.GetMatchByID(matchID); err != nil {
		return nil, err
	}
	settings, err := s.matches.GetSettings(matchID)
	if err != nil {
		return nil, err
	}
	settings.RebowlWideNoBall = rebowl
	if err := s.matches.SaveSettings(settings); err != nil {
		return nil, err
	}
	s.notifier.MatchChanged(matchID)
	return settings, nil
}

// Match returns the match row without derived state.
func (s *Service) Match(matchID uint) (*Match, error) {
	return s.matches.GetMatchByID(matchID)
}

// Matches lists fixtures with pagination.
func (s *Service) Matches(filters map[string]interface{}, page, pageSize int) ([]Match, int64, error) {
	return s.matches.GetMatches(filters, page, pageSize)
}

func derefOrZero(p *uint) uint {
	if p == nil {
		return 0
	}
	return *p
}
