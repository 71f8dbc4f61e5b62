package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bus_booking/internal/apperr"
	"bus_booking/internal/models"
	"bus_booking/internal/policy"
)

// UserService covers the account surface outside of auth: the admin-only
// passenger listing and self-service profile reads/updates. Roles are never
// writable here.
type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) UserService {
	return UserService{DB: db}
}

// ListPassengers returns the passenger accounts; admin only.
func (s UserService) ListPassengers(caller *models.User) ([]models.User, error) {
	if err := policy.Allow(caller, policy.ResourceUser, policy.ActionList); err != nil {
		return nil, err
	}
	var users []models.User
	if err := s.DB.Where("role = ?", models.RolePassenger).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetProfile returns an account to its own user only.
func (s UserService) GetProfile(caller *models.User, id uint) (*models.User, error) {
	if err := policy.Allow(caller, policy.ResourceUser, policy.ActionDetail); err != nil {
		return nil, err
	}
	if err := policy.AllowSelf(caller, id); err != nil {
		return nil, err
	}
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

type ProfileUpdate struct {
	Username *string
	Password *string
}

// UpdateProfile lets a user change their own username or password. The role
// field is deliberately unreachable from this path.
func (s UserService) UpdateProfile(caller *models.User, id uint, in ProfileUpdate) (*models.User, error) {
	if err := policy.Allow(caller, policy.ResourceUser, policy.ActionUpdate); err != nil {
		return nil, err
	}
	if err := policy.AllowSelf(caller, id); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	if in.Username != nil && *in.Username != user.Username {
		if err := validate.Var(*in.Username, "required,min=3,max=64"); err != nil {
			return nil, fmt.Errorf("%w: username must be 3-64 characters", apperr.ErrValidation)
		}
		var existing models.User
		err := s.DB.Where("username = ? AND role = ?", *in.Username, user.Role).First(&existing).Error
		if err == nil {
			return nil, apperr.ErrDuplicateUsername
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Username = *in.Username
	}

	if in.Password != nil {
		if err := validate.Var(*in.Password, "required,min=8,max=64"); err != nil {
			return nil, apperr.ErrWeakPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}

	if err := s.DB.Save(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, apperr.ErrDuplicateUsername
		}
		return nil, err
	}
	return &user, nil
}
