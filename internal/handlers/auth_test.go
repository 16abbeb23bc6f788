package handlers

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"

	"shopmanager/internal/config"
)

func TestValidPassword(t *testing.T) {
	cases := []struct {
		password string
		want     bool
	}{
		{"Abcdef1!", true},
		{"aB3$xy", true},
		{"Ab1!", false},       // too short
		{"abcdef1!", false},   // no upper
		{"ABCDEF1!", false},   // no lower
		{"Abcdefg!", false},   // no digit
		{"Abcdefg1", false},   // no special
		{"", false},
	}

	for _, tc := range cases {
		if got := validPassword(tc.password); got != tc.want {
			t.Errorf("validPassword(%q) = %v, want %v", tc.password, got, tc.want)
		}
	}
}

func registerInputApp() *fiber.App {
	config.Validate = validator.New()

	app := fiber.New()
	app.Post("/register", func(c *fiber.Ctx) error {
		if _, err := parseRegisterInput(c); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func postRegisterInput(t *testing.T, app *fiber.App, role string) int {
	t.Helper()
	body := fmt.Sprintf(`{"email":"new@example.com","password":"Abcdef1!","first_name":"New","last_name":"User","role":%s}`, role)
	req := httptest.NewRequest("POST", "/register", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode
}

func TestRegisterInputRejectsUndefinedRole(t *testing.T) {
	app := registerInputApp()

	for _, role := range []string{"99", "-1", "6", `"Superuser"`} {
		if status := postRegisterInput(t, app, role); status != fiber.StatusBadRequest {
			t.Errorf("role %s: got status %d, want %d", role, status, fiber.StatusBadRequest)
		}
	}
}

func TestRegisterInputAcceptsDefinedRoles(t *testing.T) {
	app := registerInputApp()

	for _, role := range []string{"0", "5", `"Admin"`, `"Requester"`} {
		if status := postRegisterInput(t, app, role); status != fiber.StatusOK {
			t.Errorf("role %s: got status %d, want %d", role, status, fiber.StatusOK)
		}
	}
}
