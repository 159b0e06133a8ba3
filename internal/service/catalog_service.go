package service

import (
	"context"
	"errors"
	"log"

	"github.com/vadhh/menuweb/internal/cache"
	"github.com/vadhh/menuweb/internal/domain"
	"github.com/vadhh/menuweb/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/singleflight"
)

var (
	ErrInvalidID            = errors.New("invalid id format")
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrProductFieldsMissing = errors.New("name, price, and category are required")
	ErrNegativePrice        = errors.New("price cannot be negative")
	ErrNoUpdateFields       = errors.New("no update fields provided")
)

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

type CreateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    string   `json:"imageUrl"`
	Category    string   `json:"category"`
}

// CatalogService manages the category and product collections. List
// reads go through the Redis cache; every write invalidates it.
type CatalogService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	cache      cache.CatalogCache
	sfg        singleflight.Group // Prevents cache stampede
}

func NewCatalogService(categories repository.CategoryRepository, products repository.ProductRepository, c cache.CatalogCache) *CatalogService {
	return &CatalogService{
		categories: categories,
		products:   products,
		cache:      c,
	}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	v, err, _ := s.sfg.Do("categories", func() (interface{}, error) {
		categories, err := s.cache.GetCategories(ctx)
		if err == nil {
			return categories, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v \n", err) // log cache error but continue
		}

		categories, errGet := s.categories.GetAll(ctx)
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			if errSet := s.cache.SetCategories(context.Background(), categories); errSet != nil {
				log.Printf("cache set error: %v \n", errSet)
			}
		}()

		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Category), nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	return s.categories.GetByID(ctx, oid)
}

func (s *CatalogService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*domain.Category, error) {
	if req.Name == "" {
		return nil, ErrCategoryNameRequired
	}

	category := &domain.Category{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	s.invalidateCategories()
	return category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id string, update domain.CategoryUpdate) (*domain.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	if update.IsEmpty() {
		return nil, ErrNoUpdateFields
	}

	category, err := s.categories.Update(ctx, oid, update)
	if err != nil {
		return nil, err
	}

	s.invalidateCategories()
	return category, nil
}

// DeleteCategory removes only the category. Products that reference it
// are left untouched with a dangling reference.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	if err := s.categories.Delete(ctx, oid); err != nil {
		return err
	}

	s.invalidateCategories()
	return nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	v, err, _ := s.sfg.Do("products", func() (interface{}, error) {
		products, err := s.cache.GetProducts(ctx)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v \n", err)
		}

		products, errGet := s.products.GetAll(ctx)
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			if errSet := s.cache.SetProducts(context.Background(), products); errSet != nil {
				log.Printf("cache set error: %v \n", errSet)
			}
		}()

		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Product), nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	return s.products.GetByID(ctx, oid)
}

// CreateProduct stores the product as submitted. The category reference
// is not checked against the categories collection.
func (s *CatalogService) CreateProduct(ctx context.Context, req CreateProductRequest) (*domain.Product, error) {
	if req.Name == "" || req.Price == nil || req.Category == "" {
		return nil, ErrProductFieldsMissing
	}
	if *req.Price < 0 {
		return nil, ErrNegativePrice
	}

	categoryID, err := primitive.ObjectIDFromHex(req.Category)
	if err != nil {
		return nil, ErrInvalidID
	}

	product := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		ImageURL:    req.ImageURL,
		CategoryID:  categoryID,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateProducts()
	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, update domain.ProductUpdate) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	if update.IsEmpty() {
		return nil, ErrNoUpdateFields
	}
	if update.Price != nil && *update.Price < 0 {
		return nil, ErrNegativePrice
	}

	product, err := s.products.Update(ctx, oid, update)
	if err != nil {
		return nil, err
	}

	s.invalidateProducts()
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	if err := s.products.Delete(ctx, oid); err != nil {
		return err
	}

	s.invalidateProducts()
	return nil
}

func (s *CatalogService) invalidateCategories() {
	ctx, cancel := newInvalidateContext()
	defer cancel()
	if err := s.cache.InvalidateCategories(ctx); err != nil {
		log.Printf("cache invalidate error: %v \n", err)
	}
}

func (s *CatalogService) invalidateProducts() {
	ctx, cancel := newInvalidateContext()
	defer cancel()
	if err := s.cache.InvalidateProducts(ctx); err != nil {
		log.Printf("cache invalidate error: %v \n", err)
	}
}
