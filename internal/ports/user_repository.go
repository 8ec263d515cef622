package ports

import (
	"context"

	"github.com/Gunvolt24/fiveka-shop/internal/domain"
)

// UserRepository — хранилище пользователей.
type UserRepository interface {
	// FindByTelegramID — (nil, nil), если пользователя нет.
	FindByTelegramID(ctx context.Context, telegramID string) (*domain.User, error)
	// Create — сохраняет пользователя, заполняя ID и временные метки.
	Create(ctx context.Context, user *domain.User) error
	// ListNewestFirst — все пользователи, новые сначала.
	ListNewestFirst(ctx context.Context) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

// AdminRepository — хранилище администраторов.
type AdminRepository interface {
	// FindByTelegramID — (nil, nil), если администратора нет.
	FindByTelegramID(ctx context.Context, telegramID string) (*domain.Admin, error)
}
