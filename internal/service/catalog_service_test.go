package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadhh/menuweb/internal/cache"
	"github.com/vadhh/menuweb/internal/domain"
	"github.com/vadhh/menuweb/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockCategoryRepository struct {
	m          sync.RWMutex
	categories []*domain.Category
	err        error
}

func (m *mockCategoryRepository) Create(_ context.Context, category *domain.Category) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, existing := range m.categories {
		if existing.Name == category.Name {
			return repository.ErrDuplicateCategory
		}
	}
	category.ID = primitive.NewObjectID()
	m.categories = append(m.categories, category)
	return nil
}

func (m *mockCategoryRepository) GetAll(_ context.Context) ([]*domain.Category, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.categories, nil
}

func (m *mockCategoryRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Category, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, category := range m.categories {
		if category.ID == id {
			return category, nil
		}
	}
	return nil, repository.ErrCategoryNotFound
}

func (m *mockCategoryRepository) Update(_ context.Context, id primitive.ObjectID, update domain.CategoryUpdate) (*domain.Category, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, category := range m.categories {
		if category.ID == id {
			if update.Name != nil {
				category.Name = *update.Name
			}
			if update.Description != nil {
				category.Description = *update.Description
			}
			if update.ImageURL != nil {
				category.ImageURL = *update.ImageURL
			}
			return category, nil
		}
	}
	return nil, repository.ErrCategoryNotFound
}

func (m *mockCategoryRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for i, category := range m.categories {
		if category.ID == id {
			m.categories = append(m.categories[:i], m.categories[i+1:]...)
			return nil
		}
	}
	return repository.ErrCategoryNotFound
}

type mockProductRepository struct {
	m        sync.RWMutex
	products []*domain.Product
	err      error
}

func (m *mockProductRepository) Create(_ context.Context, product *domain.Product) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	product.ID = primitive.NewObjectID()
	m.products = append(m.products, product)
	return nil
}

func (m *mockProductRepository) GetAll(_ context.Context) ([]*domain.Product, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

func (m *mockProductRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Product, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, product := range m.products {
		if product.ID == id {
			return product, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m *mockProductRepository) Update(_ context.Context, id primitive.ObjectID, update domain.ProductUpdate) (*domain.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, product := range m.products {
		if product.ID == id {
			if update.Name != nil {
				product.Name = *update.Name
			}
			if update.Price != nil {
				product.Price = *update.Price
			}
			if update.Description != nil {
				product.Description = *update.Description
			}
			if update.ImageURL != nil {
				product.ImageURL = *update.ImageURL
			}
			if update.CategoryID != nil {
				product.CategoryID = *update.CategoryID
			}
			return product, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m *mockProductRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for i, product := range m.products {
		if product.ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return repository.ErrProductNotFound
}

type mockCatalogCache struct {
	m          sync.RWMutex
	products   []*domain.Product
	categories []*domain.Category
	err        error
}

func (m *mockCatalogCache) GetProducts(context.Context) ([]*domain.Product, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.products == nil {
		return nil, cache.ErrCacheMiss
	}
	return m.products, nil
}

func (m *mockCatalogCache) SetProducts(_ context.Context, products []*domain.Product) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.products = products
	return m.err
}

func (m *mockCatalogCache) InvalidateProducts(context.Context) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.products = nil
	return m.err
}

func (m *mockCatalogCache) GetCategories(context.Context) ([]*domain.Category, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.categories == nil {
		return nil, cache.ErrCacheMiss
	}
	return m.categories, nil
}

func (m *mockCatalogCache) SetCategories(_ context.Context, categories []*domain.Category) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.categories = categories
	return m.err
}

func (m *mockCatalogCache) InvalidateCategories(context.Context) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.categories = nil
	return m.err
}

func (m *mockCatalogCache) getProducts() []*domain.Product {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.products
}

func (m *mockCatalogCache) getCategories() []*domain.Category {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.categories
}

func TestListProducts_CacheMissFillsCache(t *testing.T) {
	mockProducts := &mockProductRepository{
		products: []*domain.Product{
			{ID: primitive.NewObjectID(), Name: "Spring Rolls", Price: 8.99},
		},
	}
	mockC := &mockCatalogCache{}

	sut := NewCatalogService(&mockCategoryRepository{}, mockProducts, mockC)
	products, err := sut.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 1)

	require.Eventually(t, func() bool {
		return mockC.getProducts() != nil
	}, 100*time.Millisecond, 10*time.Millisecond, "products were not cached")
}

func TestListProducts_CacheHitSkipsRepo(t *testing.T) {
	mockProducts := &mockProductRepository{
		err: fmt.Errorf("repo must not be called"),
	}
	mockC := &mockCatalogCache{
		products: []*domain.Product{
			{Name: "Fried Rice", Price: 12.50},
		},
	}

	sut := NewCatalogService(&mockCategoryRepository{}, mockProducts, mockC)
	products, err := sut.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Fried Rice", products[0].Name)
}

func TestCreateProduct_InvalidatesCache(t *testing.T) {
	mockProducts := &mockProductRepository{}
	mockC := &mockCatalogCache{
		products: []*domain.Product{{Name: "stale"}},
	}

	sut := NewCatalogService(&mockCategoryRepository{}, mockProducts, mockC)
	_, err := sut.CreateProduct(context.Background(), CreateProductRequest{
		Name:     "Spring Rolls",
		Price:    floatPtr(8.99),
		Category: primitive.NewObjectID().Hex(),
	})
	require.NoError(t, err)

	assert.Nil(t, mockC.getProducts())
}

func TestCreateProduct_MissingFields(t *testing.T) {
	sut := NewCatalogService(&mockCategoryRepository{}, &mockProductRepository{}, &mockCatalogCache{})

	_, err := sut.CreateProduct(context.Background(), CreateProductRequest{Name: "no price or category"})

	require.ErrorIs(t, err, ErrProductFieldsMissing)
}

func TestCreateProduct_NegativePrice(t *testing.T) {
	sut := NewCatalogService(&mockCategoryRepository{}, &mockProductRepository{}, &mockCatalogCache{})

	_, err := sut.CreateProduct(context.Background(), CreateProductRequest{
		Name:     "Spring Rolls",
		Price:    floatPtr(-1),
		Category: primitive.NewObjectID().Hex(),
	})

	require.ErrorIs(t, err, ErrNegativePrice)
}

func TestUpdateProduct_EmptyUpdateRejected(t *testing.T) {
	sut := NewCatalogService(&mockCategoryRepository{}, &mockProductRepository{}, &mockCatalogCache{})

	_, err := sut.UpdateProduct(context.Background(), primitive.NewObjectID().Hex(), domain.ProductUpdate{})

	require.ErrorIs(t, err, ErrNoUpdateFields)
}

func TestUpdateProduct_PartialFieldsOnly(t *testing.T) {
	product := &domain.Product{
		ID:          primitive.NewObjectID(),
		Name:        "Spring Rolls",
		Description: "crispy",
		Price:       8.99,
	}
	mockProducts := &mockProductRepository{products: []*domain.Product{product}}

	sut := NewCatalogService(&mockCategoryRepository{}, mockProducts, &mockCatalogCache{})
	price := 9.49
	updated, err := sut.UpdateProduct(context.Background(), product.ID.Hex(), domain.ProductUpdate{Price: &price})
	require.NoError(t, err)

	assert.Equal(t, 9.49, updated.Price)
	assert.Equal(t, "Spring Rolls", updated.Name)
	assert.Equal(t, "crispy", updated.Description)
}

func TestCreateCategory_NameRequired(t *testing.T) {
	sut := NewCatalogService(&mockCategoryRepository{}, &mockProductRepository{}, &mockCatalogCache{})

	_, err := sut.CreateCategory(context.Background(), CreateCategoryRequest{})

	require.ErrorIs(t, err, ErrCategoryNameRequired)
}

func TestDeleteCategory_LeavesReferencingProductsUntouched(t *testing.T) {
	category := &domain.Category{ID: primitive.NewObjectID(), Name: "Starters"}
	product := &domain.Product{
		ID:         primitive.NewObjectID(),
		Name:       "Spring Rolls",
		Price:      8.99,
		CategoryID: category.ID,
	}
	mockCategories := &mockCategoryRepository{categories: []*domain.Category{category}}
	mockProducts := &mockProductRepository{products: []*domain.Product{product}}

	sut := NewCatalogService(mockCategories, mockProducts, &mockCatalogCache{})
	require.NoError(t, sut.DeleteCategory(context.Background(), category.ID.Hex()))

	// The product survives with its dangling category reference
	assert.Empty(t, mockCategories.categories)
	require.Len(t, mockProducts.products, 1)
	assert.Equal(t, category.ID, mockProducts.products[0].CategoryID)

	_, err := sut.GetCategory(context.Background(), category.ID.Hex())
	require.ErrorIs(t, err, repository.ErrCategoryNotFound)
}

func TestListCategories_CacheMissFillsCache(t *testing.T) {
	mockCategories := &mockCategoryRepository{
		categories: []*domain.Category{{Name: "Starters"}},
	}
	mockC := &mockCatalogCache{}

	sut := NewCatalogService(mockCategories, &mockProductRepository{}, mockC)
	categories, err := sut.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 1)

	require.Eventually(t, func() bool {
		return mockC.getCategories() != nil
	}, 100*time.Millisecond, 10*time.Millisecond, "categories were not cached")
}

func TestGetProduct_InvalidID(t *testing.T) {
	sut := NewCatalogService(&mockCategoryRepository{}, &mockProductRepository{}, &mockCatalogCache{})

	_, err := sut.GetProduct(context.Background(), "nope")

	require.ErrorIs(t, err, ErrInvalidID)
}
