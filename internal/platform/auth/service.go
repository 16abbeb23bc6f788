// Package auth coordinates the credential store, password hasher, login
// history recorder and token issuer into the login, registration and
// password lifecycle flows.
package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"shopmanager/internal/auth"
	"shopmanager/internal/database"
	"shopmanager/pkg/utils"
)

const resetTokenValidity = time.Hour

// Expected business outcomes. Anything else bubbling out of a flow is an
// infrastructure failure.
var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already exists")
	ErrWrongPassword      = errors.New("wrong password")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

// Store is the persistence surface the flows run against. Transaction
// yields a store bound to a single database transaction.
type Store interface {
	GetUserByID(userID int) (*database.User, error)
	GetUserByEmail(email string) (*database.User, error)
	GetUserByResetToken(token string, now time.Time) (*database.User, error)
	EmailExists(email string) (bool, error)
	Create(user *database.User) error
	Update(user *database.User) error
	AppendLoginHistory(entry *database.LoginHistory) error
	LatestOpenLogin(userID int) (*database.LoginHistory, error)
	SaveLoginHistory(entry *database.LoginHistory) error
	Transaction(fn func(Store) error) error
}

// Notifier delivers the reset token to the user. Delivery is outside the
// flow's outcome; failures are logged, not surfaced.
type Notifier interface {
	SendPasswordReset(user *database.User, token string) error
}

type AuthResult struct {
	Token string         `json:"token"`
	User  *database.User `json:"user"`
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      database.Role
	IsActive  bool
}

type Service struct {
	store    Store
	issuer   *auth.TokenIssuer
	notifier Notifier
}

func NewService(store Store, issuer *auth.TokenIssuer, notifier Notifier) *Service {
	return &Service{store: store, issuer: issuer, notifier: notifier}
}

// Login verifies credentials and, on success, stamps the user's last-login
// fields and appends a successful history entry in one transaction before
// issuing a token. Failed attempts are recorded only for known users so
// anonymous probing leaves no trace.
func (s *Service) Login(email, password, ip, userAgent string) (*AuthResult, error) {
	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive || !utils.VerifyPassword(password, user.PasswordHash) {
		failed := database.LoginHistory{
			UserID:       user.ID,
			IPAddress:    ip,
			UserAgent:    userAgent,
			LoginTime:    time.Now().UTC(),
			IsSuccessful: false,
		}
		if err := s.store.AppendLoginHistory(&failed); err != nil {
			return nil, err
		}
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	err = s.store.Transaction(func(tx Store) error {
		user.LastLoginAt = &now
		user.LastLoginIP = &ip
		if err := tx.Update(user); err != nil {
			return err
		}

		return tx.AppendLoginHistory(&database.LoginHistory{
			UserID:       user.ID,
			IPAddress:    ip,
			UserAgent:    userAgent,
			LoginTime:    now,
			IsSuccessful: true,
		})
	})
	if err != nil {
		return nil, err
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: user}, nil
}

// Register creates a user and issues a token for the new account. A
// duplicate email is a distinct conflict outcome.
func (s *Service) Register(input RegisterInput) (*AuthResult, error) {
	exists, err := s.store.EmailExists(input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := database.User{
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         input.Role,
		IsActive:     input.IsActive,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.Create(&user); err != nil {
		return nil, err
	}

	token, err := s.issuer.Issue(&user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: &user}, nil
}

// ChangePassword replaces the hash after verifying the current password.
// Unknown user and wrong password are the same outcome.
func (s *Service) ChangePassword(userID int, currentPassword, newPassword string) error {
	user, err := s.store.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrWrongPassword
		}
		return err
	}

	if !utils.VerifyPassword(currentPassword, user.PasswordHash) {
		return ErrWrongPassword
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	return s.store.Update(user)
}

// AdminUpdatePassword sets a user's password without the current one.
func (s *Service) AdminUpdatePassword(email, newPassword string) error {
	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		return err
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	return s.store.Update(user)
}

// ResetPassword issues a fresh opaque reset token valid for one hour and
// hands it to the notifier. An unknown email reports ErrNotFound to the
// caller, exactly as the system has always behaved.
func (s *Service) ResetPassword(email string) error {
	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		return err
	}

	token := uuid.NewString()
	expiry := time.Now().UTC().Add(resetTokenValidity)
	user.ResetToken = &token
	user.ResetTokenExpiry = &expiry

	if err := s.store.Update(user); err != nil {
		return err
	}

	if s.notifier != nil {
		if err := s.notifier.SendPasswordReset(user, token); err != nil {
			log.Errorf("failed to send password reset notification: %v", err)
		}
	}

	return nil
}

// ConfirmResetPassword consumes a reset token: the stored token must match
// and its expiry must be strictly in the future. Not-found and expired are
// one generic outcome.
func (s *Service) ConfirmResetPassword(token, newPassword string) error {
	user, err := s.store.GetUserByResetToken(token, time.Now().UTC())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.ResetToken = nil
	user.ResetTokenExpiry = nil

	return s.store.Update(user)
}

// Logout closes the most recent open history entry for the user. No open
// entry is a no-op, not an error. The bearer token itself stays valid
// until expiry; only the bookkeeping closes.
func (s *Service) Logout(userID int, ip string) error {
	_ = ip

	entry, err := s.store.LatestOpenLogin(userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	now := time.Now().UTC()
	entry.LogoutTime = &now

	return s.store.SaveLoginHistory(entry)
}
