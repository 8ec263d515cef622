package ports

import (
	"context"

	"github.com/Gunvolt24/fiveka-shop/internal/domain"
)

// ProductRepository — хранилище товаров.
type ProductRepository interface {
	// ListActive — активные товары, новые сначала; category == "" — без фильтра.
	ListActive(ctx context.Context, category string) ([]*domain.Product, error)
	// ActiveCategories — значения category всех активных товаров (с повторами, в порядке выборки).
	ActiveCategories(ctx context.Context) ([]string, error)
	// Create — сохраняет товар, заполняя ID и временные метки.
	Create(ctx context.Context, product *domain.Product) error
	Count(ctx context.Context) (int64, error)
}
