package services

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bus_booking/internal/apperr"
	"bus_booking/internal/middleware"
	"bus_booking/internal/models"
)

// validate is the strength/shape validator collaborator. Limits follow the
// account rules: usernames 3..64, passwords 8..64.
var validate = validator.New()

// AuthService implements role-scoped registration and login. Both are
// partitioned by role: the same username may live once per role, and a login
// endpoint for one role never authenticates an account of another.
type AuthService struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) AuthService {
	return AuthService{DB: db}
}

// Register creates an account in the given role partition and issues its
// token. The role is fixed here forever; no update path may change it.
func (s AuthService) Register(role, username, password, passwordConfirm string) (*models.User, string, error) {
	if !models.ValidRole(role) {
		return nil, "", fmt.Errorf("%w: unknown role %q", apperr.ErrValidation, role)
	}
	if err := validate.Var(username, "required,min=3,max=64"); err != nil {
		return nil, "", fmt.Errorf("%w: username must be 3-64 characters", apperr.ErrValidation)
	}
	if password != passwordConfirm {
		return nil, "", apperr.ErrPasswordMismatch
	}
	if err := validate.Var(password, "required,min=8,max=64"); err != nil {
		return nil, "", apperr.ErrWeakPassword
	}

	var existing models.User
	err := s.DB.Where("username = ? AND role = ?", username, role).First(&existing).Error
	if err == nil {
		return nil, "", apperr.ErrDuplicateUsername
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := models.User{
		Username: username,
		Password: string(hash),
		Role:     role,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, "", apperr.ErrDuplicateUsername
		}
		return nil, "", err
	}

	token, err := s.issueToken(&user)
	if err != nil {
		return nil, "", err
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("account registered")
	return &user, token, nil
}

// Login authenticates username/password against the given role partition.
// Every failure mode answers the same generic error so callers cannot probe
// which factor was wrong.
func (s AuthService) Login(role, username, password string) (*models.User, string, error) {
	if !models.ValidRole(role) {
		return nil, "", fmt.Errorf("%w: unknown role %q", apperr.ErrValidation, role)
	}

	var user models.User
	if err := s.DB.Where("username = ? AND role = ?", username, role).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperr.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", apperr.ErrInvalidCredentials
	}

	token, err := s.issueToken(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// issueToken returns the user's persistent token, minting a fresh one only
// when none exists yet or the stored key has expired. Repeated logins see the
// same key.
func (s AuthService) issueToken(user *models.User) (string, error) {
	var stored models.AuthToken
	err := s.DB.Where("user_id = ?", user.ID).First(&stored).Error
	switch {
	case err == nil:
		if _, verr := middleware.ValidateToken(stored.Key); verr == nil {
			return stored.Key, nil
		}
		key, gerr := middleware.GenerateToken(user.ID, user.Role)
		if gerr != nil {
			return "", gerr
		}
		stored.Key = key
		if serr := s.DB.Save(&stored).Error; serr != nil {
			return "", serr
		}
		return key, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		key, gerr := middleware.GenerateToken(user.ID, user.Role)
		if gerr != nil {
			return "", gerr
		}
		token := models.AuthToken{UserID: user.ID, Key: key}
		if cerr := s.DB.Create(&token).Error; cerr != nil {
			return "", cerr
		}
		return key, nil
	default:
		return "", err
	}
}

// isDuplicateKey recognizes unique-constraint violations from both the gorm
// error translation layer and the raw postgres error code.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return false
}
