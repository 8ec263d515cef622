package ports

import (
	"context"

	"github.com/Gunvolt24/fiveka-shop/internal/domain"
)

// ShopStatusRepository — хранилище единственной записи статуса магазина.
type ShopStatusRepository interface {
	// First — первая (единственная) запись; (nil, nil), если её ещё нет.
	First(ctx context.Context) (*domain.ShopStatus, error)
	Create(ctx context.Context, isOpen bool) (*domain.ShopStatus, error)
	Update(ctx context.Context, id string, isOpen bool) (*domain.ShopStatus, error)
}
