package ports

import (
	"context"

	"github.com/Gunvolt24/fiveka-shop/internal/domain"
)

// OrderEventPublisher — публикация событий о заказах во внешнюю шину.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, order *domain.Order) error
	Close() error
}
