package usecase

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/fiveka-shop/internal/domain"
	"github.com/Gunvolt24/fiveka-shop/internal/ports"
)

// CatalogService — категории и товары витрины.
type CatalogService struct {
	products  ports.ProductRepository
	cache     ports.Cache
	log       ports.Logger
	validator ports.ProductValidator
}

func NewCatalogService(
	products ports.ProductRepository,
	cache ports.Cache,
	log ports.Logger,
	validator ports.ProductValidator,
) *CatalogService {
	return &CatalogService{products: products, cache: cache, log: log, validator: validator}
}

// Categories — различные категории активных товаров в порядке первой встречи.
// Вызывающий должен считать результат множеством.
func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	return readThrough(ctx, s.cache, s.log, keyCategories, ttlCategories,
		func(ctx context.Context) ([]string, error) {
			all, err := s.products.ActiveCategories(ctx)
			if err != nil {
				s.log.Errorf(ctx, "products.ActiveCategories failed err=%v", err)
				return nil, err
			}
			return distinct(all), nil
		})
}

// Products — активные товары, новые сначала; category == "" — все.
func (s *CatalogService) Products(ctx context.Context, category string) ([]*domain.Product, error) {
	return readThrough(ctx, s.cache, s.log, productsKey(category), ttlProducts,
		func(ctx context.Context) ([]*domain.Product, error) {
			products, err := s.products.ListActive(ctx, category)
			if err != nil {
				s.log.Errorf(ctx, "products.ListActive failed category=%q err=%v", category, err)
				return nil, err
			}
			return products, nil
		})
}

// CreateProduct сохраняет товар и сбрасывает все списки товаров.
// Кэш категорий при этом не трогается и живёт до истечения TTL.
func (s *CatalogService) CreateProduct(ctx context.Context, draft domain.ProductDraft) (*domain.Product, error) {
	product := &domain.Product{
		Name:        draft.Name,
		Description: draft.Description,
		Price:       draft.Price,
		Photo:       draft.Photo,
		Category:    draft.Category,
		IsActive:    true,
	}
	if err := s.validator.Validate(ctx, product); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.products.Create(ctx, product); err != nil {
		s.log.Errorf(ctx, "products.Create failed name=%q err=%v", product.Name, err)
		return nil, err
	}
	s.cache.InvalidatePattern(ctx, patternProducts)

	s.log.Infof(ctx, "product created id=%s category=%q", product.ID, product.Category)
	return product, nil
}

// InvalidateProductLists — сброс списков товаров после записи в обход CreateProduct (сидер).
func (s *CatalogService) InvalidateProductLists(ctx context.Context) {
	s.cache.InvalidatePattern(ctx, patternProducts)
}

func distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
