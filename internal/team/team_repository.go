package team

import (
	"errors"

	"gorm.io/gorm"
)

// TeamRepository defines the interface for team and roster data operations.
type TeamRepository interface {
	CreateTeam(team *Team) error
	GetTeamByID(id uint) (*Team, error)
	GetTeamByName(name string) (*Team, error)
	GetAllTeams(page, limit int, filters map[string]interface{}) ([]Team, int64, error)
	UpdateTeam(team *Team) error
	DeleteTeam(id uint) error

	AddTeamMember(member *TeamMember) error
	GetTeamMember(teamID, userID uint) (*TeamMember, error)
	GetTeamMembers(teamID uint) ([]TeamMember, error)
	RemoveTeamMember(teamID, userID uint) error
	IsUserTeamCreator(teamID, userID uint) (bool, error)

	// ListActivePlayerIDs returns the active roster in batting order. This is
	// the view the scoring engine consumes for membership checks and the
	// all-out threshold.
	ListActivePlayerIDs(teamID uint) ([]uint, error)
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new instance of TeamRepository.
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) CreateTeam(team *Team) error {
	return r.db.Create(team).Error
}

func (r *teamRepository) GetTeamByID(id uint) (*Team, error) {
	var team Team
	if err := r.db.First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) GetTeamByName(name string) (*Team, error) {
	var team Team
	if err := r.db.Where("name = ?", name).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) GetAllTeams(page, limit int, filters map[string]interface{}) ([]Team, int64, error) {
	var teams []Team
	var total int64

	query := r.db.Model(&Team{})
	for key, value := range filters {
		query = query.Where(key, value)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("name asc").Offset(offset).Limit(limit).Find(&teams).Error; err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

func (r *teamRepository) UpdateTeam(team *Team) error {
	return r.db.Save(team).Error
}

func (r *teamRepository) DeleteTeam(id uint) error {
	return r.db.Delete(&Team{}, id).Error
}

func (r *teamRepository) AddTeamMember(member *TeamMember) error {
	return r.db.Create(member).Error
}

func (r *teamRepository) GetTeamMember(teamID, userID uint) (*TeamMember, error) {
	var member TeamMember
	err := r.db.Where("team_id = ? AND user_id = ?", teamID, userID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *teamRepository) GetTeamMembers(teamID uint) ([]TeamMember, error) {
	var members []TeamMember
	err := r.db.
		Where("team_id = ? AND is_active = ?", teamID, true).
		Order("batting_order asc, id asc").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *teamRepository) RemoveTeamMember(teamID, userID uint) error {
	return r.db.Where("team_id = ? AND user_id = ?", teamID, userID).Delete(&TeamMember{}).Error
}

func (r *teamRepository) IsUserTeamCreator(teamID, userID uint) (bool, error) {
	var team Team
	if err := r.db.Select("created_by_id").First(&team, teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return team.CreatedByID == userID, nil
}

func (r *teamRepository) ListActivePlayerIDs(teamID uint) ([]uint, error) {
	members, err := r.GetTeamMembers(teamID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	return ids, nil
}

// RosterAdapter narrows TeamRepository to the roster view the scoring engine
// depends on, keeping the scoring package free of team internals.
type RosterAdapter struct {
	repo TeamRepository
}

// NewRosterAdapter wraps a team repository as a scoring roster source.
func NewRosterAdapter(repo TeamRepository) *RosterAdapter {
	return &RosterAdapter{repo: repo}
}

// ActivePlayerIDs returns the ordered active roster of a team.
func (a *RosterAdapter) ActivePlayerIDs(teamID uint) ([]uint, error) {
	return a.repo.ListActivePlayerIDs(teamID)
}
