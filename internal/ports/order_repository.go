package ports

import (
	"context"

	"github.com/Gunvolt24/fiveka-shop/internal/domain"
)

type OrderRepository interface {
	// Create — транзакционно сохраняет заказ с позициями и возвращает его
	// вместе с пользователем и товарами позиций.
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// ListByUser — заказы пользователя с позициями и товарами, новые сначала.
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	// Recent — последние n заказов с пользователем, позициями и товарами.
	Recent(ctx context.Context, n int) ([]*domain.Order, error)
	Count(ctx context.Context) (int64, error)
	// CompletedRevenue — сумма totalAmount по заказам в статусе COMPLETED.
	CompletedRevenue(ctx context.Context) (float64, error)
}
