package user

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"shopmanager/internal/database"
	pauth "shopmanager/internal/platform/auth"
)

// ErrNotFound is shared with the auth flows so errors.Is works across the
// store boundary.
var ErrNotFound = pauth.ErrNotFound

type UserService struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// NormalizeEmail lowercases an email so storage uniqueness and login
// lookup agree on case-insensitive comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) Create(user *database.User) error {
	user.Email = NormalizeEmail(user.Email)

	result := s.db.Create(user)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func (s *UserService) GetUserByID(userID int) (*database.User, error) {
	var user database.User

	result := s.db.First(&user, "id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

func (s *UserService) GetUserByEmail(email string) (*database.User, error) {
	var user database.User

	result := s.db.First(&user, "email = ?", NormalizeEmail(email))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

func (s *UserService) EmailExists(email string) (bool, error) {
	var count int64
	result := s.db.Model(&database.User{}).Where("email = ?", NormalizeEmail(email)).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// GetUserByResetToken finds a user whose reset token matches and has not
// expired yet. Not-found and expired are one and the same outcome.
func (s *UserService) GetUserByResetToken(token string, now time.Time) (*database.User, error) {
	var user database.User

	result := s.db.First(&user, "reset_token = ? AND reset_token_expiry > ?", token, now)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

func (s *UserService) Update(user *database.User) error {
	result := s.db.Save(user)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes a user; login history rows cascade at the storage layer.
func (s *UserService) Delete(userID int) error {
	result := s.db.Delete(&database.User{}, "id = ?", userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *UserService) GetAllUsers(limit, offset int) ([]database.User, error) {
	var users []database.User
	result := s.db.Limit(limit).Offset(offset).Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

func (s *UserService) AppendLoginHistory(entry *database.LoginHistory) error {
	result := s.db.Create(entry)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// LatestOpenLogin returns the most recent history entry for the user that
// has no logout recorded yet.
func (s *UserService) LatestOpenLogin(userID int) (*database.LoginHistory, error) {
	var entry database.LoginHistory

	result := s.db.Where("user_id = ? AND logout_time IS NULL", userID).
		Order("login_time DESC").
		First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &entry, nil
}

func (s *UserService) SaveLoginHistory(entry *database.LoginHistory) error {
	result := s.db.Save(entry)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func (s *UserService) LoginHistoryForUser(userID int) ([]database.LoginHistory, error) {
	var entries []database.LoginHistory
	result := s.db.Where("user_id = ?", userID).Order("login_time DESC").Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}
	return entries, nil
}

// Transaction runs fn against a store bound to a single database
// transaction: one flow, one transaction.
func (s *UserService) Transaction(fn func(pauth.Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewService(tx))
	})
}
