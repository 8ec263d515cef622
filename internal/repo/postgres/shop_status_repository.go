package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/fiveka-shop/internal/domain"
	"github.com/Gunvolt24/fiveka-shop/internal/ports"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ ports.ShopStatusRepository = (*ShopStatusRepository)(nil)

// ShopStatusRepository — единственная строка shop_status (уникальный singleton).
type ShopStatusRepository struct {
	pool *pgxpool.Pool
}

func NewShopStatusRepository(pool *pgxpool.Pool) *ShopStatusRepository {
	return &ShopStatusRepository{pool: pool}
}

// First — (nil, nil), если строки ещё нет.
func (r *ShopStatusRepository) First(ctx context.Context) (*domain.ShopStatus, error) {
	var s domain.ShopStatus
	err := r.pool.QueryRow(ctx, `SELECT id, is_open, updated_at FROM shop_status LIMIT 1`).
		Scan(&s.ID, &s.IsOpen, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select shop status: %w", err)
	}
	return &s, nil
}

// Create — создаёт строку; если она уже есть, возвращает существующую без изменений.
func (r *ShopStatusRepository) Create(ctx context.Context, isOpen bool) (*domain.ShopStatus, error) {
	var s domain.ShopStatus
	err := r.pool.QueryRow(ctx, `
		INSERT INTO shop_status (id, is_open) VALUES ($1, $2)
		ON CONFLICT (singleton) DO UPDATE SET singleton = shop_status.singleton
		RETURNING id, is_open, updated_at
	`, uuid.NewString(), isOpen).Scan(&s.ID, &s.IsOpen, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert shop status: %w", err)
	}
	return &s, nil
}

func (r *ShopStatusRepository) Update(ctx context.Context, id string, isOpen bool) (*domain.ShopStatus, error) {
	var s domain.ShopStatus
	err := r.pool.QueryRow(ctx, `
		UPDATE shop_status SET is_open = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, is_open, updated_at
	`, id, isOpen).Scan(&s.ID, &s.IsOpen, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update shop status: %w", err)
	}
	return &s, nil
}
