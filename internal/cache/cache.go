package cache

import (
	"context"
	"errors"

	"github.com/vadhh/menuweb/internal/domain"
)

// CatalogCache fronts the read-heavy storefront catalog queries.
type CatalogCache interface {
	GetProducts(ctx context.Context) ([]*domain.Product, error)
	SetProducts(ctx context.Context, products []*domain.Product) error
	InvalidateProducts(ctx context.Context) error

	GetCategories(ctx context.Context) ([]*domain.Category, error)
	SetCategories(ctx context.Context, categories []*domain.Category) error
	InvalidateCategories(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")
