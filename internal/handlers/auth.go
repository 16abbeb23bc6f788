package handlers

import (
	"errors"
	"unicode"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"shopmanager/internal/auth"
	"shopmanager/internal/config"
	"shopmanager/internal/database"
	"shopmanager/internal/mail"
	pauth "shopmanager/internal/platform/auth"
	puser "shopmanager/internal/platform/user"
)

func clientIP(c *fiber.Ctx) string {
	ip := c.IP()
	if len(c.IPs()) > 1 {
		ip = c.IPs()[0]
	}
	return ip
}

func authService(c *fiber.Ctx) *pauth.Service {
	cfg := c.Locals("config").(*config.Config)
	db := c.Locals("db").(*gorm.DB)
	issuer := c.Locals("tokens").(*auth.TokenIssuer)

	var notifier pauth.Notifier
	if cfg.MailgunDomain != "" {
		notifier = mail.NewMailer(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunAPIBase)
	}

	return pauth.NewService(puser.NewService(db), issuer, notifier)
}

// validPassword enforces the registration password policy: at least six
// characters with one upper, one lower, one digit and one special.
func validPassword(password string) bool {
	if len(password) < 6 {
		return false
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	return upper && lower && digit && special
}

func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	result, err := authService(c).Login(input.Email, input.Password, clientIP(c), c.Get(fiber.HeaderUserAgent))
	if err != nil {
		if errors.Is(err, pauth.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid email or password"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(result)
}

type registerInput struct {
	Email     string        `json:"email" validate:"required,email"`
	Password  string        `json:"password" validate:"required,min=6"`
	FirstName string        `json:"first_name" validate:"required,min=2,max=50"`
	LastName  string        `json:"last_name" validate:"required,min=2,max=50"`
	Role      database.Role `json:"role"`
	IsActive  *bool         `json:"is_active"`
}

func (in *registerInput) toRegister() pauth.RegisterInput {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	return pauth.RegisterInput{
		Email:     in.Email,
		Password:  in.Password,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Role:      in.Role,
		IsActive:  active,
	}
}

func parseRegisterInput(c *fiber.Ctx) (*registerInput, error) {
	var input registerInput
	if err := c.BodyParser(&input); err != nil {
		return nil, errors.New("Invalid input")
	}

	if err := config.Validate.Struct(input); err != nil {
		return nil, err
	}

	if !validPassword(input.Password) {
		return nil, errors.New("Password must contain at least one uppercase letter, one lowercase letter, one number and one special character")
	}

	if !input.Role.Valid() {
		return nil, errors.New("Invalid role specified")
	}

	return &input, nil
}

func Register(c *fiber.Ctx) error {
	input, err := parseRegisterInput(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	result, err := authService(c).Register(input.toRegister())
	if err != nil {
		if errors.Is(err, pauth.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "User with this email already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(result)
}

// CreateUser is the admin-driven variant of Register. The role must be a
// defined member, but any defined role may be assigned, a second Admin
// included.
func CreateUser(c *fiber.Ctx) error {
	input, err := parseRegisterInput(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	result, err := authService(c).Register(input.toRegister())
	if err != nil {
		if errors.Is(err, pauth.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "User with this email already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(fiber.Map{
		"message": "User created successfully with role " + input.Role.String(),
		"user":    result.User,
	})
}

func GetRoles(c *fiber.Ctx) error {
	type roleView struct {
		Value       int    `json:"value"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	roles := make([]roleView, 0, len(database.Roles()))
	for _, role := range database.Roles() {
		roles = append(roles, roleView{
			Value:       int(role),
			Name:        role.String(),
			Description: role.Description(),
		})
	}

	return c.JSON(roles)
}

func ChangePassword(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*auth.Claims)

	type ChangePasswordInput struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=6"`
	}

	var input ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	userID, err := claims.UserID()
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	if err := authService(c).ChangePassword(userID, input.CurrentPassword, input.NewPassword); err != nil {
		if errors.Is(err, pauth.ErrWrongPassword) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Current password is incorrect"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(fiber.Map{"message": "Password changed successfully"})
}

func AdminUpdatePassword(c *fiber.Ctx) error {
	type AdminUpdatePasswordInput struct {
		Email       string `json:"email" validate:"required,email"`
		NewPassword string `json:"new_password" validate:"required,min=6"`
	}

	var input AdminUpdatePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := authService(c).AdminUpdatePassword(input.Email, input.NewPassword); err != nil {
		if errors.Is(err, pauth.ErrNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

// ResetPassword reports "User not found" for unknown emails. That leaks
// account existence to a careful caller; it is the contract as shipped.
func ResetPassword(c *fiber.Ctx) error {
	type ResetPasswordInput struct {
		Email string `json:"email" validate:"required,email"`
	}

	var input ResetPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := authService(c).ResetPassword(input.Email); err != nil {
		if errors.Is(err, pauth.ErrNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(fiber.Map{"message": "Password reset email sent"})
}

func ConfirmResetPassword(c *fiber.Ctx) error {
	type ConfirmResetPasswordInput struct {
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=6"`
	}

	var input ConfirmResetPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := authService(c).ConfirmResetPassword(input.Token, input.NewPassword); err != nil {
		if errors.Is(err, pauth.ErrInvalidResetToken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid or expired reset token"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(fiber.Map{"message": "Password reset successfully"})
}

func Logout(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*auth.Claims)

	userID, err := claims.UserID()
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	if err := authService(c).Logout(userID, clientIP(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// GetCurrentUser answers from the token claims alone.
func GetCurrentUser(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*auth.Claims)

	userID, err := claims.UserID()
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	return c.JSON(fiber.Map{
		"id":         userID,
		"email":      claims.Email,
		"first_name": claims.FirstName,
		"last_name":  claims.LastName,
		"role":       claims.Role,
	})
}
