package tournament

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// TournamentRepository defines tournament persistence.
type TournamentRepository interface {
	CreateTournament(tournament *Tournament) error
	GetTournamentByID(id uint) (*Tournament, error)
	GetTournaments(page, pageSize int) ([]Tournament, int64, error)
	UpdateTournament(tournament *Tournament) error
	RegisterTeam(tournamentID, teamID uint) error
	UnregisterTeam(tournamentID, teamID uint) error
}

// GormTournamentRepository implements TournamentRepository using GORM.
type GormTournamentRepository struct {
	db *gorm.DB
}

// NewGormTournamentRepository creates a new GormTournamentRepository.
func NewGormTournamentRepository(db *gorm.DB) *GormTournamentRepository {
	return &GormTournamentRepository{db: db}
}

func (r *GormTournamentRepository) CreateTournament(tournament *Tournament) error {
	return r.db.Create(tournament).Error
}

func (r *GormTournamentRepository) GetTournamentByID(id uint) (*Tournament, error) {
	var tournament Tournament
	if err := r.db.First(&tournament, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tournament, nil
}

func (r *GormTournamentRepository) GetTournaments(page, pageSize int) ([]Tournament, int64, error) {
	var tournaments []Tournament
	var total int64

	if err := r.db.Model(&Tournament{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.Order("created_at desc").Offset(offset).Limit(pageSize).Find(&tournaments).Error
	if err != nil {
		return nil, 0, err
	}
	return tournaments, total, nil
}

func (r *GormTournamentRepository) UpdateTournament(tournament *Tournament) error {
	return r.db.Save(tournament).Error
}

// RegisterTeam registers a team, enforcing the deadline and team cap inside a
// transaction.
func (r *GormTournamentRepository) RegisterTeam(tournamentID, teamID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var tournament Tournament
		if err := tx.First(&tournament, tournamentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("tournament not found")
			}
			return err
		}

		if tournament.Status != "registration_open" {
			return errors.New("tournament registration is not open")
		}
		if !tournament.RegistrationDeadline.IsZero() && time.Now().After(tournament.RegistrationDeadline) {
			return errors.New("registration deadline has passed")
		}
		if tournament.MaxTeams > 0 && tournament.CurrentTeams >= tournament.MaxTeams {
			return errors.New("tournament has reached its maximum number of teams")
		}

		var existing TournamentTeam
		err := tx.Where("tournament_id = ? AND team_id = ?", tournamentID, teamID).First(&existing).Error
		if err == nil {
			return errors.New("team is already registered in this tournament")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		registration := TournamentTeam{
			TournamentID: tournamentID,
			TeamID:       teamID,
			RegisteredAt: time.Now(),
			Status:       "approved",
		}
		if err := tx.Create(&registration).Error; err != nil {
			return err
		}

		return tx.Model(&Tournament{}).
			Where("id = ?", tournamentID).
			Update("current_teams", tournament.CurrentTeams+1).Error
	})
}

// UnregisterTeam removes a registration and decrements the team count.
func (r *GormTournamentRepository) UnregisterTeam(tournamentID, teamID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var tournament Tournament
		if err := tx.First(&tournament, tournamentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("tournament not found")
			}
			return err
		}

		var registration TournamentTeam
		if err := tx.Where("tournament_id = ? AND team_id = ?", tournamentID, teamID).First(&registration).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("team is not registered in this tournament")
			}
			return err
		}

		if err := tx.Delete(&registration).Error; err != nil {
			return err
		}

		if tournament.CurrentTeams > 0 {
			return tx.Model(&Tournament{}).
				Where("id = ?", tournamentID).
				Update("current_teams", tournament.CurrentTeams-1).Error
		}
		return nil
	})
}
