package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"

	"shopmanager/internal/auth"
	"shopmanager/internal/config"
	"shopmanager/internal/database"
	"shopmanager/internal/handlers"
	"shopmanager/internal/middleware"
	puser "shopmanager/internal/platform/user"
	"shopmanager/pkg/utils"
)

// seedAdmin creates the initial administrator account when the user table
// is empty.
func seedAdmin(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&database.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword(cfg.SeedAdminPass)
	if err != nil {
		return err
	}

	admin := database.User{
		Email:        cfg.SeedAdminEmail,
		PasswordHash: hash,
		FirstName:    "System",
		LastName:     "Administrator",
		Role:         database.RoleAdmin,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	return puser.NewService(db).Create(&admin)
}

// seedCatalog inserts the starter products when the catalog is empty.
func seedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&database.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := database.SeedProducts()
	return db.Create(&products).Error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if err := seedAdmin(db, cfg); err != nil {
		log.Fatal(err)
	}

	if err := seedCatalog(db); err != nil {
		log.Fatal(err)
	}

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenExpiryDays)

	app := fiber.New()

	app.Use(compress.New())
	app.Use(helmet.New())
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(healthcheck.New())

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("config", cfg)
		c.Locals("db", db)
		c.Locals("tokens", issuer)
		return c.Next()
	})

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", handlers.Login)
	authGroup.Post("/reset-password", handlers.ResetPassword)
	authGroup.Post("/confirm-reset-password", handlers.ConfirmResetPassword)
	authGroup.Post("/register", middleware.AuthMiddleware, middleware.RequireRole(database.RoleAdmin), handlers.Register)
	authGroup.Post("/create-user", middleware.AuthMiddleware, middleware.RequireRole(database.RoleAdmin), handlers.CreateUser)
	authGroup.Get("/roles", middleware.AuthMiddleware, middleware.RequireRole(database.RoleAdmin), handlers.GetRoles)
	authGroup.Post("/admin-update-password", middleware.AuthMiddleware, middleware.RequireRole(database.RoleAdmin), handlers.AdminUpdatePassword)
	authGroup.Post("/change-password", middleware.AuthMiddleware, handlers.ChangePassword)
	authGroup.Post("/logout", middleware.AuthMiddleware, handlers.Logout)
	authGroup.Get("/me", middleware.AuthMiddleware, handlers.GetCurrentUser)

	users := api.Group("/users", middleware.AuthMiddleware, middleware.RequireRole(database.RoleAdmin))
	users.Get("/", handlers.GetAllUsers)
	users.Post("/", handlers.AddUser)
	users.Get("/:user_id", handlers.GetUser)
	users.Put("/:user_id", handlers.UpdateUser)
	users.Delete("/:user_id", handlers.DeleteUser)
	users.Patch("/:user_id/toggle-status", handlers.ToggleUserStatus)
	users.Get("/:user_id/login-history", handlers.GetUserLoginHistory)

	product := api.Group("/product", middleware.AuthMiddleware, middleware.RequireRole(database.RoleAdmin, database.RolePurchase))
	product.Get("/", handlers.GetAllProducts)
	product.Post("/", handlers.CreateProduct)
	product.Get("/by-code/:code", handlers.GetProductByCode)
	product.Get("/check-code/:code", handlers.CheckProductCode)
	product.Get("/:product_id", handlers.GetProduct)
	product.Put("/:product_id", handlers.UpdateProduct)
	product.Delete("/:product_id", handlers.DeleteProduct)
	product.Post("/:product_id/image", handlers.UploadProductImage)

	app.Use(func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})

	log.Fatal(app.Listen(fmt.Sprintf(":%d", cfg.ServerPort)))
}
