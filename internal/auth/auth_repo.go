package auth

import (
	"errors"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/crickside/internal/user"
)

// AuthRepository defines user lookup and creation for authentication.
type AuthRepository interface {
	CreateUser(u *user.User) error
	GetUserByID(id uint) (*user.User, error)
	FindByEmailOrUsername(identifier string) (*user.User, error)
}

type authRepository struct {
	db *gorm.DB
}

// NewAuthRepository creates a new AuthRepository.
func NewAuthRepository(db *gorm.DB) AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) CreateUser(u *user.User) error {
	return r.db.Create(u).Error
}

func (r *authRepository) GetUserByID(id uint) (*user.User, error) {
	var u user.User
	if err := r.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *authRepository) FindByEmailOrUsername(identifier string) (*user.User, error) {
	var u user.User
	err := r.db.Where("email = ? OR username = ?", identifier, identifier).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
