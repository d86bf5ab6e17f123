package scoring

import (
	"errors"
	"testing"
)

func TestBallIsValid(t *testing.T) {
	tests := []struct {
		name      string
		extraType ExtraType
		rebowl    bool
		expected  bool
	}{
		{"normal delivery", ExtraNone, true, true},
		{"wide with re-bowl on", ExtraWide, true, false},
		{"wide with re-bowl off", ExtraWide, false, true},
		{"no-ball with re-bowl on", ExtraNoBall, true, false},
		{"no-ball with re-bowl off", ExtraNoBall, false, true},
		{"bye always counts", ExtraBye, true, true},
		{"leg bye always counts", ExtraLegBye, true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := BallIsValid(tc.extraType, tc.rebowl); got != tc.expected {
				t.Errorf("BallIsValid(%q, %v) = %v, expected %v", tc.extraType, tc.rebowl, got, tc.expected)
			}
		})
	}
}

func TestValidateDelivery(t *testing.T) {
	liveMatch := func() *Match {
		return &Match{
			Status:              StatusLive,
			OversLimit:          2,
			CurrentStrikerID:    uptr(101),
			CurrentNonStrikerID: uptr(102),
			CurrentBowlerID:     uptr(201),
		}
	}

	tests := []struct {
		name       string
		mutate     func(*Match)
		state      LiveState
		rosterSize int
		expected   error
	}{
		{
			name:       "happy path",
			mutate:     func(*Match) {},
			state:      LiveState{ValidBalls: 3},
			rosterSize: 11,
			expected:   nil,
		},
		{
			name:       "match not live",
			mutate:     func(m *Match) { m.Status = StatusScheduled },
			state:      LiveState{},
			rosterSize: 11,
			expected:   ErrMatchNotLive,
		},
		{
			name:       "completed match",
			mutate:     func(m *Match) { m.Status = StatusCompleted },
			state:      LiveState{},
			rosterSize: 11,
			expected:   ErrMatchNotLive,
		},
		{
			name:       "no striker selected",
			mutate:     func(m *Match) { m.CurrentStrikerID = nil },
			state:      LiveState{},
			rosterSize: 11,
			expected:   ErrPlayersNotSelected,
		},
		{
			name:       "no non-striker selected",
			mutate:     func(m *Match) { m.CurrentNonStrikerID = nil },
			state:      LiveState{},
			rosterSize: 11,
			expected:   ErrPlayersNotSelected,
		},
		{
			name:       "no bowler selected",
			mutate:     func(m *Match) { m.CurrentBowlerID = nil },
			state:      LiveState{},
			rosterSize: 11,
			expected:   ErrPlayersNotSelected,
		},
		{
			name:       "overs limit reached",
			mutate:     func(*Match) {},
			state:      LiveState{ValidBalls: 12},
			rosterSize: 11,
			expected:   ErrOversLimitReached,
		},
		{
			name:       "no limit when overs limit is zero",
			mutate:     func(m *Match) { m.OversLimit = 0 },
			state:      LiveState{ValidBalls: 300},
			rosterSize: 11,
			expected:   nil,
		},
		{
			name:       "all out",
			mutate:     func(*Match) {},
			state:      LiveState{Wickets: 10},
			rosterSize: 11,
			expected:   ErrInningsOver,
		},
		{
			name:       "one wicket standing",
			mutate:     func(*Match) {},
			state:      LiveState{Wickets: 9},
			rosterSize: 11,
			expected:   nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := liveMatch()
			tc.mutate(m)
			err := validateDelivery(m, &tc.state, tc.rosterSize)
			if !errors.Is(err, tc.expected) {
				t.Errorf("validateDelivery() = %v, expected %v", err, tc.expected)
			}
		})
	}
}

func TestValidateDeliveryStatusCheckedFirst(t *testing.T) {
	// Several rules broken at once: the status rule wins.
	m := &Match{Status: StatusScheduled, OversLimit: 1}
	state := LiveState{ValidBalls: 50, Wickets: 10}

	if err := validateDelivery(m, &state, 11); !errors.Is(err, ErrMatchNotLive) {
		t.Errorf("validateDelivery() = %v, expected %v", err, ErrMatchNotLive)
	}
}

func TestValidateBowler(t *testing.T) {
	roster := []uint{201, 202, 203}

	m := &Match{Status: StatusLive}
	if err := validateBowler(m, 202, roster); err != nil {
		t.Errorf("validateBowler(202) = %v, expected nil", err)
	}
	if err := validateBowler(m, 101, roster); !errors.Is(err, ErrInvalidBowler) {
		t.Errorf("validateBowler(101) = %v, expected %v", err, ErrInvalidBowler)
	}

	m.Status = StatusCompleted
	if err := validateBowler(m, 202, roster); !errors.Is(err, ErrMatchNotLive) {
		t.Errorf("validateBowler on completed match = %v, expected %v", err, ErrMatchNotLive)
	}
}

func TestValidateBatsman(t *testing.T) {
	roster := []uint{101, 102, 103}
	m := &Match{
		Status:              StatusLive,
		CurrentStrikerID:    uptr(101),
		CurrentNonStrikerID: uptr(102),
	}

	if err := validateBatsman(m, 103, roster); err != nil {
		t.Errorf("validateBatsman(103) = %v, expected nil", err)
	}
	if err := validateBatsman(m, 999, roster); !errors.Is(err, ErrInvalidBatsman) {
		t.Errorf("validateBatsman(999) = %v, expected %v", err, ErrInvalidBatsman)
	}
	if err := validateBatsman(m, 101, roster); !errors.Is(err, ErrDuplicateBatsman) {
		t.Errorf("validateBatsman(striker) = %v, expected %v", err, ErrDuplicateBatsman)
	}
	if err := validateBatsman(m, 102, roster); !errors.Is(err, ErrDuplicateBatsman) {
		t.Errorf("validateBatsman(non-striker) = %v, expected %v", err, ErrDuplicateBatsman)
	}
}
