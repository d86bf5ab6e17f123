package scoring

import (
	"errors"

	"gorm.io/gorm"
)

// MatchRepository defines persistence for matches and their settings. The
// ball event log lives behind EventStore, not here.
type MatchRepository interface {
	CreateMatch(match *Match) error
	GetMatchByID(id uint) (*Match, error)
	// UpdateControl persists a partial set of match columns (status, toss
	// fields, control pointers, result fields). Nil values clear a pointer.
	UpdateControl(matchID uint, fields map[string]interface{}) error
	GetMatches(filters map[string]interface{}, page, pageSize int) ([]Match, int64, error)

	GetSettings(matchID uint) (*MatchSettings, error)
	SaveSettings(settings *MatchSettings) error
}

// GormMatchRepository implements MatchRepository using GORM.
type GormMatchRepository struct {
	db *gorm.DB
}

// NewGormMatchRepository creates a new GormMatchRepository.
func NewGormMatchRepository(db *gorm.DB) *GormMatchRepository {
	return &GormMatchRepository{db: db}
}

// CreateMatch creates a match together with its settings row.
func (r *GormMatchRepository) CreateMatch(match *Match) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(match).Error; err != nil {
			return err
		}
		settings := MatchSettings{MatchID: match.ID, RebowlWideNoBall: true}
		return tx.Create(&settings).Error
	})
}

// GetMatchByID retrieves a match with its teams preloaded.
func (r *GormMatchRepository) GetMatchByID(id uint) (*Match, error) {
	var match Match
	result := r.db.
		Preload("TeamA").
		Preload("TeamB").
		First(&match, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, result.Error
	}
	return &match, nil
}

// UpdateControl applies a partial column update. A map is used rather than a
// struct so that pointer columns can be set back to NULL.
func (r *GormMatchRepository) UpdateControl(matchID uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.Model(&Match{}).Where("id = ?", matchID).Updates(fields).Error
}

// GetMatches retrieves matches based on filters with pagination.
func (r *GormMatchRepository) GetMatches(filters map[string]interface{}, page, pageSize int) ([]Match, int64, error) {
	var matches []Match
	var total int64

	query := r.db.Model(&Match{})
	for key, value := range filters {
		query = query.Where(key, value)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	result := query.
		Preload("TeamA").
		Preload("TeamB").
		Order("created_at desc").
		Offset(offset).Limit(pageSize).
		Find(&matches)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return matches, total, nil
}

// GetSettings returns the settings row for a match, creating defaults if the
// match predates the settings table.
func (r *GormMatchRepository) GetSettings(matchID uint) (*MatchSettings, error) {
	var settings MatchSettings
	err := r.db.Where("match_id = ?", matchID).First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			settings = MatchSettings{MatchID: matchID, RebowlWideNoBall: true}
			if err := r.db.Create(&settings).Error; err != nil {
				return nil, err
			}
			return &settings, nil
		}
		return nil, err
	}
	return &settings, nil
}

// SaveSettings persists updated scoring rules.
func (r *GormMatchRepository) SaveSettings(settings *MatchSettings) error {
	return r.db.Save(settings).Error
}
