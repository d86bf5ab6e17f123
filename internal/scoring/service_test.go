package scoring

import (
	"errors"
	"testing"
)

// fakeRepo is an in-memory MatchRepository.
type fakeRepo struct {
	matches  map[uint]*Match
	settings map[uint]*MatchSettings
	nextID   uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		matches:  map[uint]*Match{},
		settings: map[uint]*MatchSettings{},
	}
}

func (r *fakeRepo) CreateMatch(match *Match) error {
	r.nextID++
	match.ID = r.nextID
	stored := *match
	r.matches[match.ID] = &stored
	r.settings[match.ID] = &MatchSettings{MatchID: match.ID, RebowlWideNoBall: true}
	return nil
}

func (r *fakeRepo) GetMatchByID(id uint) (*Match, error) {
	m, ok := r.matches[id]
	if !ok {
		return nil, ErrMatchNotFound
	}
	c := *m
	return &c, nil
}

func (r *fakeRepo) UpdateControl(matchID uint, fields map[string]interface{}) error {
	m, ok := r.matches[matchID]
	if !ok {
		return ErrMatchNotFound
	}
	for column, value := range fields {
		switch column {
		case "status":
			m.Status = value.(MatchStatus)
		case "toss_winner_team_id":
			m.TossWinnerTeamID = toUintPtr(value)
		case "toss_decision":
			m.TossDecision = value.(TossDecision)
		case "current_innings":
			m.CurrentInnings = value.(int)
		case "current_batting_team_id":
			m.CurrentBattingTeamID = toUintPtr(value)
		case "current_striker_id":
			m.CurrentStrikerID = toUintPtr(value)
		case "current_non_striker_id":
			m.CurrentNonStrikerID = toUintPtr(value)
		case "current_bowler_id":
			m.CurrentBowlerID = toUintPtr(value)
		case "winning_team_id":
			m.WinningTeamID = toUintPtr(value)
		case "man_of_the_match_id":
			m.ManOfTheMatchID = toUintPtr(value)
		case "result_summary":
			m.ResultSummary = value.(string)
		}
	}
	return nil
}

func (r *fakeRepo) GetMatches(filters map[string]interface{}, page, pageSize int) ([]Match, int64, error) {
	var out []Match
	for _, m := range r.matches {
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepo) GetSettings(matchID uint) (*MatchSettings, error) {
	s, ok := r.settings[matchID]
	if !ok {
		return nil, ErrMatchNotFound
	}
	c := *s
	return &c, nil
}

func (r *fakeRepo) SaveSettings(settings *MatchSettings) error {
	c := *settings
	r.settings[settings.MatchID] = &c
	return nil
}

func toUintPtr(v interface{}) *uint {
	switch x := v.(type) {
	case uint:
		u := x
		return &u
	case *uint:
		if x == nil {
			return nil
		}
		u := *x
		return &u
	}
	return nil
}

// fakeStore is an in-memory append-only EventStore.
type fakeStore struct {
	events []BallEvent
	nextID uint
}

func (s *fakeStore) Append(event *BallEvent) error {
	s.nextID++
	event.ID = s.nextID
	s.events = append(s.events, *event)
	return nil
}

func (s *fakeStore) ListForInnings(matchID uint, innings int) ([]BallEvent, error) {
	var out []BallEvent
	for _, e := range s.events {
		if e.MatchID == matchID && e.Innings == innings {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeStore) RemoveLast(matchID uint) (*BallEvent, error) {
	last := -1
	for i, e := range s.events {
		if e.MatchID == matchID {
			last = i
		}
	}
	if last < 0 {
		return nil, ErrEmptyLog
	}
	removed := s.events[last]
	s.events = append(s.events[:last], s.events[last+1:]...)
	return &removed, nil
}

type fakeRoster map[uint][]uint

func (r fakeRoster) ActivePlayerIDs(teamID uint) ([]uint, error) {
	return r[teamID], nil
}

type fakeNotifier struct {
	signals []uint
}

func (n *fakeNotifier) MatchChanged(matchID uint) {
	n.signals = append(n.signals, matchID)
}

// Teams 10 and 20 with eleven players each: 101..111 and 201..211.
func fullRosters() fakeRoster {
	roster := fakeRoster{}
	for i := uint(0); i < 11; i++ {
		roster[10] = append(roster[10], 101+i)
		roster[20] = append(roster[20], 201+i)
	}
	return roster
}

func newTestService(roster fakeRoster) (*Service, *fakeRepo, *fakeStore, *fakeNotifier) {
	repo := newFakeRepo()
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	return NewService(repo, store, roster, notifier), repo, store, notifier
}

// startLive schedules a match and takes it live with team 10 batting first.
func startLive(t *testing.T, svc *Service, oversLimit int) uint {
	t.Helper()
	match, err := svc.CreateMatch(CreateMatchInput{TeamAID: 10, TeamBID: 20, OversLimit: oversLimit})
	if err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	_, err = svc.Start(match.ID, StartInput{
		TossWinnerTeamID: 10,
		TossDecision:     TossBat,
		StrikerID:        101,
		NonStrikerID:     102,
		BowlerID:         201,
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return match.ID
}

func TestCreateMatchRejectsSameTeams(t *testing.T) {
	svc, _, _, _ := newTestService(fullRosters())
	if _, err := svc.CreateMatch(CreateMatchInput{TeamAID: 10, TeamBID: 10}); !errors.Is(err, ErrSameTeams) {
		t.Errorf("CreateMatch with same teams = %v, expected %v", err, ErrSameTeams)
	}
}

func TestStartSetsUpLiveMatch(t *testing.T) {
	svc, repo, _, _ := newTestService(fullRosters())
	id := startLive(t, svc, 20)

	m := repo.matches[id]
	if m.Status != StatusLive {
		t.Errorf("status = %q, expected %q", m.Status, StatusLive)
	}
	if m.CurrentBattingTeamID == nil || *m.CurrentBattingTeamID != 10 {
		t.Errorf("batting team = %v, expected 10", m.CurrentBattingTeamID)
	}
	if m.CurrentStrikerID == nil || *m.CurrentStrikerID != 101 {
		t.Errorf("striker = %v, expected 101", m.CurrentStrikerID)
	}
	if m.CurrentBowlerID == nil || *m.CurrentBowlerID != 201 {
		t.Errorf("bowler = %v, expected 201", m.CurrentBowlerID)
	}

	// A live match cannot be started again.
	_, err := svc.Start(id, StartInput{TossWinnerTeamID: 10, TossDecision: TossBat, StrikerID: 101, NonStrikerID: 102, BowlerID: 201})
	if !errors.Is(err, ErrMatchNotScheduled) {
		t.Errorf("second Start = %v, expected %v", err, ErrMatchNotScheduled)
	}
}

func TestStartTossBowlSwapsBattingSide(t *testing.T) {
	svc, repo, _, _ := newTestService(fullRosters())
	match, err := svc.CreateMatch(CreateMatchInput{TeamAID: 10, TeamBID: 20, OversLimit: 20})
	if err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}

	// Team 10 wins the toss and bowls, so team 20 opens the batting.
	_, err = svc.Start(match.ID, StartInput{
		TossWinnerTeamID: 10,
		TossDecision:     TossBowl,
		StrikerID:        201,
		NonStrikerID:     202,
		BowlerID:         101,
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	m := repo.matches[match.ID]
	if m.CurrentBattingTeamID == nil || *m.CurrentBattingTeamID != 20 {
		t.Errorf("batting team = %v, expected 20", m.CurrentBattingTeamID)
	}
}

func TestStartValidation(t *testing.T) {
	tests := []struct {
		name     string
		input    StartInput
		expected error
	}{
		{
			name:     "toss winner not playing",
			input:    StartInput{TossWinnerTeamID: 99, TossDecision: TossBat, StrikerID: 101, NonStrikerID: 102, BowlerID: 201},
			expected: ErrInvalidTossWinner,
		},
		{
			name:     "striker from the bowling side",
			input:    StartInput{TossWinnerTeamID: 10, TossDecision: TossBat, StrikerID: 201, NonStrikerID: 102, BowlerID: 202},
			expected: ErrInvalidBatsman,
		},
		{
			name:     "bowler from the batting side",
			input:    StartInput{TossWinnerTeamID: 10, TossDecision: TossBat, StrikerID: 101, NonStrikerID: 102, BowlerID: 103},
			expected: ErrInvalidBowler,
		},
		{
			name:     "same player at both ends",
			input:    StartInput{TossWinnerTeamID: 10, TossDecision: TossBat, StrikerID: 101, NonStrikerID: 101, BowlerID: 201},
			expected: ErrDuplicateBatsman,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, _, _ := newTestService(fullRosters())
			match, err := svc.CreateMatch(CreateMatchInput{TeamAID: 10, TeamBID: 20, OversLimit: 20})
			if err != nil {
				t.Fatalf("CreateMatch: %v", err)
			}
			if _, err := svc.Start(match.ID, tc.input); !errors.Is(err, tc.expected) {
				t.Errorf("Start = %v, expected %v", err, tc.expected)
			}
		})
	}
}

func TestRecordBallNumbersDeliveries(t *testing.T) {
	svc, _, store, _ := newTestService(fullRosters())
	id := startLive(t, svc, 20)

	first, _, err := svc.RecordBall(id, BallInput{RunsScored: 0})
	if err != nil {
		t.Fatalf("RecordBall: %v", err)
	}
	if first.OverNumber != 0 || first.BallNumber != 1 {
		t.Errorf("first delivery numbered %d.%d, expected 0.1", first.OverNumber, first.BallNumber)
	}

	// A wide must be re-bowled, so the next valid delivery reuses its number.
	wide, _, err := svc.RecordBall(id, BallInput{ExtraType: ExtraWide})
	if err != nil {
		t.Fatalf("RecordBall wide: %v", err)
	}
	if wide.IsValidBall {
		t.Error("wide recorded as a valid ball with re-bowl on")
	}
	if wide.OverNumber != 0 || wide.BallNumber != 2 {
		t.Errorf("wide numbered %d.%d, expected 0.2", wide.OverNumber, wide.BallNumber)
	}

	rebowled, _, err := svc.RecordBall(id, BallInput{RunsScored: 0})
	if err != nil {
		t.Fatalf("RecordBall re-bowl: %v", err)
	}
	if rebowled.OverNumber != 0 || rebowled.BallNumber != 2 {
		t.Errorf("re-bowled delivery numbered %d.%d, expected 0.2", rebowled.OverNumber, rebowled.BallNumber)
	}

	if len(store.events) != 3 {
		t.Errorf("stored %d events, expected 3", len(store.events))
	}
}

func TestRecordBallDefaultsExtrasToOne(t *testing.T) {
	svc, _, _, _ := newTestService(fullRosters())
	id := startLive(t, svc, 20)

	event, state, err := svc.RecordBall(id, BallInput{ExtraType: ExtraWide})
	if err != nil {
		t.Fatalf("RecordBall: %v", err)
	}
	if event.Extras != 1 {
		t.Errorf("extras = %d, expected the one-run default", event.Extras)
	}
	if state.Score != 1 {
		t.Errorf("score = %d, expected 1", state.Score)
	}
	if state.ValidBalls != 0 {
		t.Errorf("valid balls = %d, expected 0", state.ValidBalls)
	}
}

func TestRecordBallStrikerRotation(t *testing.T) {
	svc, repo, _, _ := newTestService(fullRosters())
	id := startLive(t, svc, 20)

	// Odd runs swap the batters.
	if _, _, err := svc.RecordBall(id, BallInput{RunsScored: 1}); err != nil {
		t.Fatalf("RecordBall: %v", err)
	}
	m := repo.matches[id]
	if *m.CurrentStrikerID != 102 || *m.CurrentNonStrikerID != 101 {
		t.Errorf("after a single: striker %d, non-striker %d, expected 102 and 101", *m.CurrentStrikerID, *m.CurrentNonStrikerID)
	}

	// Even runs leave them where they are.
	if _, _, err := svc.RecordBall(id, BallInput{RunsScored: 2}); err != nil {
		t.Fatalf("RecordBall: %v", err)
	}
	m = repo.matches[id]
	if *m.CurrentStrikerID != 102 || *m.CurrentNonStrikerID != 101 {
		t.Errorf("after a two: striker %d, non-striker %d, expected 102 and 101", *m.CurrentStrikerID, *m.CurrentNonStrikerID)
	}

	// An odd number of byes also means the batters crossed.
	if _, _, err := svc.RecordBall(id, BallInput{RunsScored: 3, ExtraType: ExtraBye}); err != nil {
		t.Fatalf("RecordBall: %v", err)
	}
	m = repo.matches[id]
	if *m.CurrentStrikerID != 101 {
		t.Errorf("after three byes: striker %d, expected 101", *m.CurrentStrikerID)
	}
}

func TestRecordBallWicketVacatesStriker(t *testing.T) {
	svc, repo, _, _ := newTestService(fullRosters())
	id := startLive(t, svc, 20)

	_, state, err := svc.RecordBall(id, BallInput{IsWicket: true})
	if err != nil {
		t.Fatalf("RecordBall: %v", err)
	}
	if state.Wickets != 1 {
		t.Errorf("wickets = %d, expected 1", state.Wickets)
	}
	if repo.matches[id].CurrentStrikerID != nil {
		t.Error("striker pointer still set after a wicket")
	}

	// No delivery until a replacement comes in.
	if _, _, err := svc.RecordBall(id, BallInput{RunsScored: 1}); !errors.Is(err, ErrPlayersNotSelected) {
		t.Errorf("RecordBall without a striker = %v, expected %v", err, ErrPlayersNotSelected)
	}

	// The not-out batter cannot bat twice.
	if err := svc.SelectBatsman(id, 102, SlotStriker); !errors.Is(err, ErrDuplicateBatsman) {
		t.Errorf("SelectBatsman(102) = %v, expected %v", err, ErrDuplicateBatsman)
	}
	if err := svc.SelectBatsman(id, 103, SlotStriker); err != nil {
		t.Fatalf("SelectBatsman(103): %v", err)
	}
	if _, _, err := svc.RecordBall(id, BallInput{RunsScored: 1}); err != nil {
		t.Errorf("RecordBall after replacement: %v", err)
	}
}

func TestRecordBallOverCompletion(t *testing.T) {
	svc, repo, _, _ := newTestService(fullRosters())
	id := startLive(t, svc, 20)

	for i := 0; i < BallsPerOver; i++ {
		if _, _, err := svc.RecordBall(id, BallInput{RunsScored: 0}); err != nil {
			t.Fatalf("RecordBall %d: %v", i+1, err)
		}
	}

	if repo.matches[id].CurrentBowlerID != nil {
		t.Error("bowler pointer still set after the over completed")
	}
	if _, _, err := svc.RecordBall(id, BallInput{RunsScored: 0}); !errors.Is(err, ErrPlayersNotSelected) {
		t.Errorf("RecordBall without a bowler = %v, expected %v", err, ErrPlayersNotSelected)
	}

	// The new bowler must come from the bowling side.
	if err := svc.SelectBowler(id, 103); !errors.Is(err, ErrInvalidBowler) {
		t.Errorf("SelectBowler(batter) = %v, expected %v", err, ErrInvalidBowler)
	}
	if err := svc.SelectBowler(id, 202); err != nil {
		t.Fatalf("SelectBowler(202): %v", err)
	}

	_, state, err := svc.RecordBall(id, BallInput{RunsScored: 4})
	if err != nil {
		t.Fatalf("RecordBall in second over: %v", err)
	}
	if state.Overs != "1.1" {
		t.Errorf("overs = %q, expected \"1.1\"", state.Overs)
	}
}

func TestOversLimitEndsInnings(t *testing.T) {
	svc, repo, _, _ := newTestService(fullRosters())
	id := startLive(t, svc, 1)

	var state *LiveState
	for i := 0; i < BallsPerOver; i++ {
		var err error
		_, state, err = svc.RecordBall(id, BallInput{RunsScored: 1})
		if err != nil {
			t.Fatalf("RecordBall %d: %v", i+1, err)
		}
	}

	if state.Score != 6 || state.Wickets != 0 {
		t.Errorf("score %d/%d, expected 6/0", state.Score, state.Wickets)
	}
	if state.Overs != "1.0" {
		t.Errorf("overs = %q, expected \"1.0\"", state.Overs)
	}

	// The over completed at the limit, so no new bowler is requested.
	if repo.matches[id].CurrentBowlerID == nil {
		t.Error("bowler pointer cleared even though the innings ended")
	}
	if _, _, err := svc.RecordBall(id, BallInput{RunsScored: 0}); !errors.Is(err, ErrOversLimitReached) {
		t.Errorf("RecordBall past the limit = %v, expected %v", err, ErrOversLimitReached)
	}
}

func TestAllOutBlocksFurtherDeliveries(t *testing.T) {
	// Three-a-side: the innings ends at the second wicket.
	roster := fakeRoster{
		10: {101, 102, 103},
		20: {201, 202, 203},
	}
	svc, repo, _, _ := newTestService(roster)
	id := startLive(t, svc, 0)

	if _, _, err := svc.RecordBall(id, BallInput{IsWicket: true}); err != nil {
		t.Fatalf("first wicket: %v", err)
	}
	if err := svc.SelectBatsman(id, 103, SlotStriker); err != nil {
		t.Fatalf("SelectBatsman: %v", err)
	}

	_, state, err := svc.RecordBall(id, BallInput{IsWicket: true})
	if err != nil {
		t.Fatalf("second wicket: %v", err)
	}
	if state.Wickets != 2 {
		t.Errorf("wickets = %d, expected 2", state.Wickets)
	}

	// All out: no replacement is requested and no further ball is accepted.
	if repo.matches[id].CurrentStrikerID == nil {
		t.Error("striker pointer cleared with no batter left to come in")
	}
	if _, _, err := svc.RecordBall(id, BallInput{RunsScored: 1}); !errors.Is(err, ErrInningsOver) {
		t.Errorf("RecordBall when all out = %v, expected %v", err, ErrInningsOver)
	}
}

func TestRebowlSettingChangesFutureBallsOnly(t *testing.T) {
	svc, _, store, _ := newTestService(fullRosters())
	id := startLive(t, svc, 20)

	wide, _, err := svc.RecordBall(id, BallInput{ExtraType: ExtraWide})
	if err != nil {
		t.Fatalf("RecordBall: %v", err)
	}
	if wide.IsValidBall {
		t.Error("wide counted as valid with re-bowl on")
	}

	if _, err := svc.UpdateSettings(id, false); err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}

	wide2, state, err := svc.RecordBall(id, BallInput{ExtraType: ExtraWide})
	if err != nil {
		t.Fatalf("RecordBall: %v", err)
	}
	if !wide2.IsValidBall {
		t.Error("wide not counted as valid with re-bowl off")
	}
	if state.ValidBalls != 1 {
		t.Errorf("valid balls = %d, expected 1", state.ValidBalls)
	}

	// The first wide keeps the validity computed when it was recorded.
	if store.events[0].IsValidBall {
		t.Error("stored event rewritten by a later settings change")
	}
	if state.Score != 2 {
		t.Errorf("score = %d, expected 2", state.Score)
	}
}

func TestStartSecondInnings(t *testing.T) {
	svc, repo, _, _ := newTestService(fullRosters())
	id := startLive(t, svc, 1)

	if err := svc.StartSecondInnings(id); !errors.Is(err, ErrInningsNotOver) {
		t.Errorf("StartSecondInnings mid-innings = %v, expected %v", err, ErrInningsNotOver)
	}

	for i := 0; i < BallsPerOver; i++ {
		if _, _, err := svc.RecordBall(id, BallInput{RunsScored: 0}); err != nil {
			t.Fatalf("RecordBall %d: %v", i+1, err)
		}
	}

	if err := svc.StartSecondInnings(id); err != nil {
		t.Fatalf("StartSecondInnings: %v", err)
	}

	m := repo.matches[id]
	if m.CurrentInnings != 2 {
		t.Errorf("innings = %d, expected 2", m.CurrentInnings)
	}
	if m.CurrentBattingTeamID == nil || *m.CurrentBattingTeamID != 20 {
		t.Errorf("batting team = %v, expected 20", m.CurrentBattingTeamID)
	}
	if m.CurrentStrikerID != nil || m.CurrentNonStrikerID != nil || m.CurrentBowlerID != nil {
		t.Error("player pointers not cleared for the new innings")
	}

	// The fresh innings starts from an empty log.
	_, state, err := svc.State(id)
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if state.Score != 0 || state.ValidBalls != 0 {
		t.Errorf("second innings state = %d off %d balls, expected a clean slate", state.Score, state.ValidBalls)
	}

	if err := svc.StartSecondInnings(id); !errors.Is(err, ErrSecondInnings) {
		t.Errorf("third innings = %v, expected %v", err, ErrSecondInnings)
	}
}

func TestSecondInningsScoring(t *testing.T) {
	svc, repo, _, _ := newTestService(fullRosters())
	id := startLive(t, svc, 1)

	for i := 0; i < BallsPerOver; i++ {
		if _, _, err := svc.RecordBall(id, BallInput{RunsScored: 0}); err != nil {
			t.Fatalf("RecordBall %d: %v", i+1, err)
		}
	}
	if err := svc.StartSecondInnings(id); err != nil {
		t.Fatalf("StartSecondInnings: %v", err)
	}

	// No deliveries until both ends and the bowler are staffed.
	if _, _, err := svc.RecordBall(id, BallInput{RunsScored: 0}); !errors.Is(err, ErrPlayersNotSelected) {
		t.Fatalf("RecordBall with no batters = %v, expected %v", err, ErrPlayersNotSelected)
	}
	if err := svc.SelectBatsman(id, 201, SlotStriker); err != nil {
		t.Fatalf("SelectBatsman striker: %v", err)
	}
	if _, _, err := svc.RecordBall(id, BallInput{RunsScored: 0}); !errors.Is(err, ErrPlayersNotSelected) {
		t.Fatalf("RecordBall with vacant non-striker end = %v, expected %v", err, ErrPlayersNotSelected)
	}
	if err := svc.SelectBatsman(id, 201, SlotNonStriker); !errors.Is(err, ErrDuplicateBatsman) {
		t.Fatalf("SelectBatsman same player at both ends = %v, expected %v", err, ErrDuplicateBatsman)
	}
	if err := svc.SelectBatsman(id, 202, SlotNonStriker); err != nil {
		t.Fatalf("SelectBatsman non-striker: %v", err)
	}
	if _, _, err := svc.RecordBall(id, BallInput{RunsScored: 0}); !errors.Is(err, ErrPlayersNotSelected) {
		t.Fatalf("RecordBall with no bowler = %v, expected %v", err, ErrPlayersNotSelected)
	}
	if err := svc.SelectBowler(id, 101); err != nil {
		t.Fatalf("SelectBowler: %v", err)
	}

	event, state, err := svc.RecordBall(id, BallInput{RunsScored: 1})
	if err != nil {
		t.Fatalf("RecordBall: %v", err)
	}
	if event.Innings != 2 {
		t.Errorf("event innings = %d, expected 2", event.Innings)
	}
	if event.StrikerID != 201 || event.NonStrikerID != 202 {
		t.Errorf("event batters = %d/%d, expected 201/202", event.StrikerID, event.NonStrikerID)
	}
	if event.BattingTeamID != 20 {
		t.Errorf("event batting team = %d, expected 20", event.BattingTeamID)
	}
	if event.OverNumber != 0 || event.BallNumber != 1 {
		t.Errorf("delivery numbered %d.%d, expected a fresh 0.1", event.OverNumber, event.BallNumber)
	}
	if state.Score != 1 || state.Overs != "0.1" {
		t.Errorf("state = %d off %s, expected 1 off 0.1", state.Score, state.Overs)
	}

	// The single crossed the batters; both ends stay occupied.
	m := repo.matches[id]
	if m.CurrentStrikerID == nil || m.CurrentNonStrikerID == nil {
		t.Fatal("a batting end became vacant after an odd single")
	}
	if *m.CurrentStrikerID != 202 || *m.CurrentNonStrikerID != 201 {
		t.Errorf("batters = %d/%d, expected 202/201", *m.CurrentStrikerID, *m.CurrentNonStrikerID)
	}
}

func TestComplete(t *testing.T) {
	svc, repo, _, _ := newTestService(fullRosters())
	id := startLive(t, svc, 20)

	if err := svc.Complete(id, CompleteInput{WinningTeamID: uptr(99)}); !errors.Is(err, ErrInvalidWinner) {
		t.Errorf("Complete with outside winner = %v, expected %v", err, ErrInvalidWinner)
	}

	err := svc.Complete(id, CompleteInput{
		WinningTeamID:   uptr(10),
		ManOfTheMatchID: uptr(101),
		ResultSummary:   "won by 24 runs",
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	m := repo.matches[id]
	if m.Status != StatusCompleted {
		t.Errorf("status = %q, expected %q", m.Status, StatusCompleted)
	}
	if m.WinningTeamID == nil || *m.WinningTeamID != 10 {
		t.Errorf("winning team = %v, expected 10", m.WinningTeamID)
	}
	if m.ResultSummary != "won by 24 runs" {
		t.Errorf("result summary = %q", m.ResultSummary)
	}

	// Completed matches accept no more scoring.
	if _, _, err := svc.RecordBall(id, BallInput{RunsScored: 1}); !errors.Is(err, ErrMatchNotLive) {
		t.Errorf("RecordBall after completion = %v, expected %v", err, ErrMatchNotLive)
	}
	if err := svc.Complete(id, CompleteInput{}); !errors.Is(err, ErrMatchNotLive) {
		t.Errorf("double Complete = %v, expected %v", err, ErrMatchNotLive)
	}
}

func TestCompleteRequiresLiveMatch(t *testing.T) {
	svc, _, _, _ := newTestService(fullRosters())
	match, err := svc.CreateMatch(CreateMatchInput{TeamAID: 10, TeamBID: 20})
	if err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	if err := svc.Complete(match.ID, CompleteInput{}); !errors.Is(err, ErrMatchNotLive) {
		t.Errorf("Complete on scheduled match = %v, expected %v", err, ErrMatchNotLive)
	}
}

func TestUndoRestoresPreviousState(t *testing.T) {
	svc, _, _, _ := newTestService(fullRosters())
	id := startLive(t, svc, 20)

	if _, _, err := svc.RecordBall(id, BallInput{RunsScored: 4}); err != nil {
		t.Fatalf("RecordBall: %v", err)
	}
	_, beforeWicket, err := svc.State(id)
	if err != nil {
		t.Fatalf("State: %v", err)
	}

	if _, _, err := svc.RecordBall(id, BallInput{IsWicket: true}); err != nil {
		t.Fatalf("RecordBall wicket: %v", err)
	}

	removed, state, err := svc.Undo(id)
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if !removed.IsWicket {
		t.Error("Undo removed the wrong event")
	}
	if state.Score != beforeWicket.Score || state.Wickets != beforeWicket.Wickets || state.Overs != beforeWicket.Overs {
		t.Errorf("state after undo = %d/%d %s, expected %d/%d %s",
			state.Score, state.Wickets, state.Overs,
			beforeWicket.Score, beforeWicket.Wickets, beforeWicket.Overs)
	}

	if _, _, err := svc.Undo(id); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if _, _, err := svc.Undo(id); !errors.Is(err, ErrEmptyLog) {
		t.Errorf("Undo on empty log = %v, expected %v", err, ErrEmptyLog)
	}
}

func TestUndoOnlyTouchesCurrentInnings(t *testing.T) {
	svc, _, store, _ := newTestService(fullRosters())
	id := startLive(t, svc, 1)

	for i := 0; i < BallsPerOver; i++ {
		if _, _, err := svc.RecordBall(id, BallInput{RunsScored: 0}); err != nil {
			t.Fatalf("RecordBall %d: %v", i+1, err)
		}
	}
	if err := svc.StartSecondInnings(id); err != nil {
		t.Fatalf("StartSecondInnings: %v", err)
	}

	// The second innings has no events yet, so there is nothing to undo even
	// though the first-innings log is full.
	if _, _, err := svc.Undo(id); !errors.Is(err, ErrEmptyLog) {
		t.Errorf("Undo in fresh innings = %v, expected %v", err, ErrEmptyLog)
	}
	if len(store.events) != BallsPerOver {
		t.Errorf("first-innings log shrank to %d events", len(store.events))
	}
}

func TestEveryMutationNotifiesOnce(t *testing.T) {
	svc, _, _, notifier := newTestService(fullRosters())
	id := startLive(t, svc, 20)

	if len(notifier.signals) != 1 {
		t.Fatalf("signals after Start = %d, expected 1", len(notifier.signals))
	}

	if _, _, err := svc.RecordBall(id, BallInput{RunsScored: 1}); err != nil {
		t.Fatalf("RecordBall: %v", err)
	}
	if err := svc.SwapStrike(id); err != nil {
		t.Fatalf("SwapStrike: %v", err)
	}
	if _, _, err := svc.Undo(id); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if err := svc.Complete(id, CompleteInput{WinningTeamID: uptr(10)}); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if len(notifier.signals) != 5 {
		t.Errorf("signals = %d, expected one per mutation (5)", len(notifier.signals))
	}
	for _, got := range notifier.signals {
		if got != id {
			t.Errorf("signal for match %d, expected %d", got, id)
		}
	}

	// Rejected mutations signal nothing.
	if _, _, err := svc.RecordBall(id, BallInput{RunsScored: 1}); !errors.Is(err, ErrMatchNotLive) {
		t.Fatalf("RecordBall on completed match = %v, expected %v", err, ErrMatchNotLive)
	}
	if len(notifier.signals) != 5 {
		t.Errorf("signals after rejected mutation = %d, expected 5", len(notifier.signals))
	}
}

func TestSwapStrike(t *testing.T) {
	svc, repo, _, _ := newTestService(fullRosters())
	id := startLive(t, svc, 20)

	if err := svc.SwapStrike(id); err != nil {
		t.Fatalf("SwapStrike: %v", err)
	}
	m := repo.matches[id]
	if *m.CurrentStrikerID != 102 || *m.CurrentNonStrikerID != 101 {
		t.Errorf("after swap: striker %d, non-striker %d, expected 102 and 101", *m.CurrentStrikerID, *m.CurrentNonStrikerID)
	}

	// With the striker's end vacant there is nothing to swap.
	if _, _, err := svc.RecordBall(id, BallInput{IsWicket: true}); err != nil {
		t.Fatalf("RecordBall: %v", err)
	}
	if err := svc.SwapStrike(id); !errors.Is(err, ErrPlayersNotSelected) {
		t.Errorf("SwapStrike with vacant end = %v, expected %v", err, ErrPlayersNotSelected)
	}
}

func TestUnknownMatch(t *testing.T) {
	svc, _, _, _ := newTestService(fullRosters())

	if _, _, err := svc.RecordBall(42, BallInput{}); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("RecordBall = %v, expected %v", err, ErrMatchNotFound)
	}
	if _, _, err := svc.State(42); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("State = %v, expected %v", err, ErrMatchNotFound)
	}
	if err := svc.SelectBowler(42, 201); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("SelectBowler = %v, expected %v", err, ErrMatchNotFound)
	}
}
