// Package product manages the product catalog. Codes are unique across
// the catalog; the conflict check on update excludes the product itself.
package product

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"shopmanager/internal/database"
)

var (
	ErrNotFound  = errors.New("product not found")
	ErrCodeTaken = errors.New("product code already exists")
)

// Store is the persistence surface the catalog runs against.
type Store interface {
	List() ([]database.Product, error)
	GetByID(id uuid.UUID) (*database.Product, error)
	GetByCode(code string) (*database.Product, error)
	Insert(product *database.Product) error
	Save(product *database.Product) error
	Remove(id uuid.UUID) error
	CountByCode(code string, excludeID *uuid.UUID) (int64, error)
}

type ProductService struct {
	store Store
}

func NewService(db *gorm.DB) *ProductService {
	return &ProductService{store: &gormStore{db: db}}
}

type ProductInput struct {
	Code        string
	Name        string
	Unit        string
	RefPrice    decimal.Decimal
	Image       *string
	Description *string
}

func (s *ProductService) GetAll() ([]database.Product, error) {
	return s.store.List()
}

func (s *ProductService) GetByID(id uuid.UUID) (*database.Product, error) {
	return s.store.GetByID(id)
}

func (s *ProductService) GetByCode(code string) (*database.Product, error) {
	return s.store.GetByCode(code)
}

func (s *ProductService) Create(input ProductInput) (*database.Product, error) {
	exists, err := s.CodeExists(input.Code, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCodeTaken
	}

	product := database.Product{
		ID:          uuid.New(),
		Code:        input.Code,
		Name:        input.Name,
		Unit:        input.Unit,
		RefPrice:    input.RefPrice,
		Image:       input.Image,
		Description: input.Description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.store.Insert(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Update replaces the product fields; the code conflict check excludes the
// product itself.
func (s *ProductService) Update(id uuid.UUID, input ProductInput) (*database.Product, error) {
	product, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}

	exists, err := s.CodeExists(input.Code, &id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCodeTaken
	}

	now := time.Now().UTC()
	product.Code = input.Code
	product.Name = input.Name
	product.Unit = input.Unit
	product.RefPrice = input.RefPrice
	product.Image = input.Image
	product.Description = input.Description
	product.UpdatedAt = &now

	if err := s.store.Save(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Delete(id uuid.UUID) error {
	return s.store.Remove(id)
}

func (s *ProductService) SetImage(id uuid.UUID, key string) (*database.Product, error) {
	product, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product.Image = &key
	product.UpdatedAt = &now

	if err := s.store.Save(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) CodeExists(code string, excludeID *uuid.UUID) (bool, error) {
	count, err := s.store.CountByCode(code, excludeID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// gormStore is the database-backed Store.
type gormStore struct {
	db *gorm.DB
}

func (g *gormStore) List() ([]database.Product, error) {
	var products []database.Product
	result := g.db.Order("name").Find(&products)
	if result.Error != nil {
		return nil, result.Error
	}
	return products, nil
}

func (g *gormStore) GetByID(id uuid.UUID) (*database.Product, error) {
	var product database.Product

	result := g.db.First(&product, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &product, nil
}

func (g *gormStore) GetByCode(code string) (*database.Product, error) {
	var product database.Product

	result := g.db.First(&product, "code = ?", code)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &product, nil
}

func (g *gormStore) Insert(product *database.Product) error {
	result := g.db.Create(product)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func (g *gormStore) Save(product *database.Product) error {
	result := g.db.Save(product)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func (g *gormStore) Remove(id uuid.UUID) error {
	result := g.db.Delete(&database.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *gormStore) CountByCode(code string, excludeID *uuid.UUID) (int64, error) {
	query := g.db.Model(&database.Product{}).Where("code = ?", code)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	result := query.Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}
