package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmanager/internal/auth"
	"shopmanager/internal/database"
)

func newTestApp(issuer *auth.TokenIssuer, roles ...database.Role) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("tokens", issuer)
		return c.Next()
	})

	chain := []fiber.Handler{AuthMiddleware}
	if len(roles) > 0 {
		chain = append(chain, RequireRole(roles...))
	}
	chain = append(chain, func(c *fiber.Ctx) error {
		claims := c.Locals("claims").(*auth.Claims)
		return c.JSON(fiber.Map{"email": claims.Email})
	})

	app.Get("/protected", chain...)
	return app
}

func issueFor(t *testing.T, issuer *auth.TokenIssuer, role database.Role) string {
	t.Helper()
	token, err := issuer.Issue(&database.User{
		ID:        1,
		Email:     "user@example.com",
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
	})
	require.NoError(t, err)
	return token
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	app := newTestApp(auth.NewTokenIssuer("secret", 7))

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret", 7)
	app := newTestApp(issuer)
	token := issueFor(t, issuer, database.RoleUser)

	for _, header := range []string{token, "Basic " + token, "bearer " + token} {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, header)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "header %q", header)
	}
}

func TestAuthMiddlewareRejectsForeignToken(t *testing.T) {
	app := newTestApp(auth.NewTokenIssuer("secret", 7))
	foreign := issueFor(t, auth.NewTokenIssuer("other", 7), database.RoleAdmin)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+foreign)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret", 7)
	app := newTestApp(issuer)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+issueFor(t, issuer, database.RoleUser))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRoleForbidsOtherRoles(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret", 7)
	app := newTestApp(issuer, database.RoleAdmin)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+issueFor(t, issuer, database.RoleRequester))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireRoleAllowsAnyListedRole(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret", 7)
	app := newTestApp(issuer, database.RoleAdmin, database.RolePurchase)

	for _, role := range []database.Role{database.RoleAdmin, database.RolePurchase} {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+issueFor(t, issuer, role))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, role.String())
	}
}
