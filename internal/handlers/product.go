package handlers

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"shopmanager/internal/config"
	pproduct "shopmanager/internal/platform/product"
	"shopmanager/internal/platform/storage"
)

type productInput struct {
	Code        string          `json:"code" validate:"required,min=1,max=20"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Unit        string          `json:"unit" validate:"required,min=1,max=20"`
	RefPrice    decimal.Decimal `json:"ref_price"`
	Image       *string         `json:"image" validate:"omitempty,max=255"`
	Description *string         `json:"description"`
}

func parseProductInput(c *fiber.Ctx) (*pproduct.ProductInput, error) {
	var input productInput
	if err := c.BodyParser(&input); err != nil {
		return nil, errors.New("Invalid input")
	}

	if err := config.Validate.Struct(input); err != nil {
		return nil, err
	}

	if input.RefPrice.IsNegative() {
		return nil, errors.New("Reference price must be a positive number")
	}

	return &pproduct.ProductInput{
		Code:        input.Code,
		Name:        input.Name,
		Unit:        input.Unit,
		RefPrice:    input.RefPrice,
		Image:       input.Image,
		Description: input.Description,
	}, nil
}

func parseProductID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("product_id"))
}

func GetAllProducts(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	products, err := pproduct.NewService(db).GetAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(products)
}

func GetProduct(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	id, err := parseProductID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid product ID"})
	}

	product, err := pproduct.NewService(db).GetByID(id)
	if err != nil {
		if errors.Is(err, pproduct.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(product)
}

func GetProductByCode(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	product, err := pproduct.NewService(db).GetByCode(c.Params("code"))
	if err != nil {
		if errors.Is(err, pproduct.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(product)
}

func CreateProduct(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	input, err := parseProductInput(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	product, err := pproduct.NewService(db).Create(*input)
	if err != nil {
		if errors.Is(err, pproduct.ErrCodeTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Product with this code already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

func UpdateProduct(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	id, err := parseProductID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid product ID"})
	}

	input, err := parseProductInput(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	product, err := pproduct.NewService(db).Update(id, *input)
	if err != nil {
		switch {
		case errors.Is(err, pproduct.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
		case errors.Is(err, pproduct.ErrCodeTaken):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Product with this code already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(product)
}

func DeleteProduct(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	id, err := parseProductID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid product ID"})
	}

	if err := pproduct.NewService(db).Delete(id); err != nil {
		if errors.Is(err, pproduct.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

func CheckProductCode(c *fiber.Ctx) error {
	db := c.Locals("db").(*gorm.DB)

	var excludeID *uuid.UUID
	if raw := c.Query("exclude_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid product ID"})
		}
		excludeID = &id
	}

	exists, err := pproduct.NewService(db).CodeExists(c.Params("code"), excludeID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(fiber.Map{"exists": exists})
}

// UploadProductImage stores the image object and persists its key on the
// product record.
func UploadProductImage(c *fiber.Ctx) error {
	cfg := c.Locals("config").(*config.Config)
	db := c.Locals("db").(*gorm.DB)

	id, err := parseProductID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid product ID"})
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing image file"})
	}

	storageService := storage.NewStorageService(cfg.Storage())

	if !storageService.IsFileExtensionAllowed(file.Filename) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "File type not allowed"})
	}

	key := fmt.Sprintf("product/%s%s", storageService.GenerateKeyName(), filepath.Ext(file.Filename))
	if err := storageService.SaveFile(file, key, c); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	product, err := pproduct.NewService(db).SetImage(id, key)
	if err != nil {
		if errors.Is(err, pproduct.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(product)
}
