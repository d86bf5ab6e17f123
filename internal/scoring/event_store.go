package scoring

import (
	"errors"

	"gorm.io/gorm"
)

// EventStore is the append-only log of ball events. Append is the single
// mutation entry point; RemoveLast exists only to serve undo.
type EventStore interface {
	Append(event *BallEvent) error
	ListForInnings(matchID uint, innings int) ([]BallEvent, error)
	// RemoveLast deletes the newest event for the match (across innings) and
	// returns it. ErrEmptyLog if the match has no events.
	RemoveLast(matchID uint) (*BallEvent, error)
}

// GormEventStore persists ball events through GORM.
type GormEventStore struct {
	db *gorm.DB
}

// NewGormEventStore creates a new GormEventStore.
func NewGormEventStore(db *gorm.DB) *GormEventStore {
	return &GormEventStore{db: db}
}

// Append stores a new ball event. Events are never updated in place.
func (s *GormEventStore) Append(event *BallEvent) error {
	return s.db.Create(event).Error
}

// ListForInnings returns the events of one innings in append order.
func (s *GormEventStore) ListForInnings(matchID uint, innings int) ([]BallEvent, error) {
	var events []BallEvent
	err := s.db.
		Where("match_id = ? AND innings = ?", matchID, innings).
		Order("id asc").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// RemoveLast hard-deletes the most recent event for the match. A soft delete
// would leave the row visible to raw queries of the log, so undo removes it
// outright.
func (s *GormEventStore) RemoveLast(matchID uint) (*BallEvent, error) {
	var event BallEvent
	err := s.db.
		Where("match_id = ?", matchID).
		Order("id desc").
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmptyLog
		}
		return nil, err
	}
	if err := s.db.Unscoped().Delete(&BallEvent{}, event.ID).Error; err != nil {
		return nil, err
	}
	return &event, nil
}
