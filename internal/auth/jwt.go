package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"shopmanager/internal/database"
)

// Claims is the self-contained token payload. The role travels as its
// stable name so the access gate never needs a database read.
type Claims struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// UserID returns the subject as the numeric user id.
func (c *Claims) UserID() (int, error) {
	return strconv.Atoi(c.Subject)
}

// TokenIssuer mints and verifies stateless HS256 bearer tokens. The same
// secret signs and verifies; there is no server-side token table, so a
// token stays valid until its natural expiry even after logout.
type TokenIssuer struct {
	secret   []byte
	validity time.Duration
}

func NewTokenIssuer(secret string, expiryDays int) *TokenIssuer {
	return &TokenIssuer{
		secret:   []byte(secret),
		validity: time.Duration(expiryDays) * 24 * time.Hour,
	}
}

func (ti *TokenIssuer) Issue(user *database.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:     user.Email,
		Name:      fmt.Sprintf("%s %s", user.FirstName, user.LastName),
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.validity)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ti.secret)
}

// Verify parses and validates a token. Malformed, mis-signed and expired
// tokens all come back as a single error.
func (ti *TokenIssuer) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return ti.secret, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}
