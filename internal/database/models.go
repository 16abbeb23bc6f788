package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents a user account in the system. Password hash and reset
// token state never leave the API surface.
type User struct {
	ID               int            `json:"id" gorm:"primaryKey"`
	Email            string         `json:"email" gorm:"uniqueIndex;size:256"`
	PasswordHash     string         `json:"-"`
	FirstName        string         `json:"first_name" gorm:"size:100"`
	LastName         string         `json:"last_name" gorm:"size:100"`
	Role             Role           `json:"role"`
	IsActive         bool           `json:"is_active" gorm:"default:true"`
	CreatedAt        time.Time      `json:"created_at"`
	LastLoginAt      *time.Time     `json:"last_login_at"`
	LastLoginIP      *string        `json:"-" gorm:"size:45"`
	ResetToken       *string        `json:"-" gorm:"index"`
	ResetTokenExpiry *time.Time     `json:"-"`
	LoginHistories   []LoginHistory `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for the User model
func (u *User) TableName() string {
	return "user"
}

// LoginHistory records one login attempt. A row stays open until a logout
// stamps it; the logout time is set at most once.
type LoginHistory struct {
	ID           int        `json:"id" gorm:"primaryKey"`
	UserID       int        `json:"-" gorm:"index;not null"`
	IPAddress    string     `json:"ip_address" gorm:"size:45"`
	UserAgent    string     `json:"user_agent" gorm:"size:500"`
	LoginTime    time.Time  `json:"login_time"`
	LogoutTime   *time.Time `json:"logout_time"`
	IsSuccessful bool       `json:"is_successful" gorm:"default:true"`
}

func (lh *LoginHistory) TableName() string {
	return "login_history"
}

type Product struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Code        string          `json:"code" gorm:"uniqueIndex;size:20"`
	Name        string          `json:"name" gorm:"size:200"`
	Unit        string          `json:"unit" gorm:"size:20"`
	RefPrice    decimal.Decimal `json:"ref_price" gorm:"type:decimal(18,2)"`
	Image       *string         `json:"image" gorm:"size:255"`
	Description *string         `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at" gorm:"autoUpdateTime:false"`
}

func (p *Product) TableName() string {
	return "product"
}
