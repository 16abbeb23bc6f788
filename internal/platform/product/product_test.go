package product

import (
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmanager/internal/database"
)

type stubStore struct {
	products map[uuid.UUID]*database.Product
}

func newStubStore() *stubStore {
	return &stubStore{products: make(map[uuid.UUID]*database.Product)}
}

func (s *stubStore) List() ([]database.Product, error) {
	products := make([]database.Product, 0, len(s.products))
	for _, product := range s.products {
		products = append(products, *product)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

func (s *stubStore) GetByID(id uuid.UUID) (*database.Product, error) {
	if product, ok := s.products[id]; ok {
		copied := *product
		return &copied, nil
	}
	return nil, ErrNotFound
}

func (s *stubStore) GetByCode(code string) (*database.Product, error) {
	for _, product := range s.products {
		if product.Code == code {
			copied := *product
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *stubStore) Insert(product *database.Product) error {
	copied := *product
	s.products[product.ID] = &copied
	return nil
}

func (s *stubStore) Save(product *database.Product) error {
	copied := *product
	s.products[product.ID] = &copied
	return nil
}

func (s *stubStore) Remove(id uuid.UUID) error {
	if _, ok := s.products[id]; !ok {
		return ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *stubStore) CountByCode(code string, excludeID *uuid.UUID) (int64, error) {
	var count int64
	for _, product := range s.products {
		if product.Code != code {
			continue
		}
		if excludeID != nil && product.ID == *excludeID {
			continue
		}
		count++
	}
	return count, nil
}

func newTestService() (*ProductService, *stubStore) {
	store := newStubStore()
	return &ProductService{store: store}, store
}

func paperInput() ProductInput {
	return ProductInput{
		Code:     "PAPER001",
		Name:     "A4 Copy Paper",
		Unit:     "REAM",
		RefPrice: decimal.RequireFromString("4.99"),
	}
}

func TestCreateProduct(t *testing.T) {
	svc, store := newTestService()

	product, err := svc.Create(paperInput())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, product.ID)
	assert.Equal(t, "PAPER001", product.Code)
	assert.False(t, product.CreatedAt.IsZero())
	assert.Nil(t, product.UpdatedAt)
	assert.Len(t, store.products, 1)
}

func TestCreateProductDuplicateCode(t *testing.T) {
	svc, store := newTestService()

	_, err := svc.Create(paperInput())
	require.NoError(t, err)

	input := paperInput()
	input.Name = "Different Paper"
	_, err = svc.Create(input)
	assert.ErrorIs(t, err, ErrCodeTaken)
	assert.Len(t, store.products, 1)
}

func TestUpdateProductConflictExcludesSelf(t *testing.T) {
	svc, _ := newTestService()

	paper, err := svc.Create(paperInput())
	require.NoError(t, err)

	// Keeping its own code is not a conflict.
	input := paperInput()
	input.Name = "A4 Copy Paper, 80gsm"
	updated, err := svc.Update(paper.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "A4 Copy Paper, 80gsm", updated.Name)
	require.NotNil(t, updated.UpdatedAt)
}

func TestUpdateProductConflictsWithOtherProduct(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(paperInput())
	require.NoError(t, err)

	pens, err := svc.Create(ProductInput{
		Code:     "PEN001",
		Name:     "Ballpoint Pen Set",
		Unit:     "SET",
		RefPrice: decimal.RequireFromString("12.50"),
	})
	require.NoError(t, err)

	input := paperInput()
	_, err = svc.Update(pens.ID, input)
	assert.ErrorIs(t, err, ErrCodeTaken)

	kept, err := svc.GetByID(pens.ID)
	require.NoError(t, err)
	assert.Equal(t, "PEN001", kept.Code)
}

func TestUpdateProductNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Update(uuid.New(), paperInput())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCodeExists(t *testing.T) {
	svc, _ := newTestService()

	paper, err := svc.Create(paperInput())
	require.NoError(t, err)

	exists, err := svc.CodeExists("PAPER001", nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.CodeExists("PAPER001", &paper.ID)
	require.NoError(t, err)
	assert.False(t, exists, "a product does not conflict with itself")

	other := uuid.New()
	exists, err = svc.CodeExists("PAPER001", &other)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.CodeExists("MONITOR001", nil)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDeleteProduct(t *testing.T) {
	svc, store := newTestService()

	paper, err := svc.Create(paperInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(paper.ID))
	assert.Empty(t, store.products)

	assert.ErrorIs(t, svc.Delete(paper.ID), ErrNotFound)
}

func TestSetImage(t *testing.T) {
	svc, _ := newTestService()

	paper, err := svc.Create(paperInput())
	require.NoError(t, err)

	updated, err := svc.SetImage(paper.ID, "product/abc123.png")
	require.NoError(t, err)
	require.NotNil(t, updated.Image)
	assert.Equal(t, "product/abc123.png", *updated.Image)
	require.NotNil(t, updated.UpdatedAt)

	_, err = svc.SetImage(uuid.New(), "product/missing.png")
	assert.ErrorIs(t, err, ErrNotFound)
}
