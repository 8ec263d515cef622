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

var (
	_ ports.UserRepository  = (*UserRepository)(nil)
	_ ports.AdminRepository = (*AdminRepository)(nil)
)

const userColumns = `id, telegram_id, username, first_name, last_name, created_at, updated_at`

// UserRepository — пользователи на Postgres (pgxpool).
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository { return &UserRepository{pool: pool} }

// FindByTelegramID — (nil, nil), если пользователя нет.
func (r *UserRepository) FindByTelegramID(ctx context.Context, telegramID string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE telegram_id = $1`, telegramID)
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return user, nil
}

// Create — вставка; при гонке двух первых входов возвращается уже существующая строка.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if user == nil || user.TelegramID == "" {
		return errors.New("user is empty or telegram_id is required")
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, telegram_id, username, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (telegram_id) DO UPDATE SET telegram_id = EXCLUDED.telegram_id
		RETURNING `+userColumns,
		user.ID, user.TelegramID, user.Username, user.FirstName, user.LastName,
	)
	saved, err := scanUser(row)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	*user = *saved
	return nil
}

// ListNewestFirst — все пользователи, новые сначала.
func (r *UserRepository) ListNewestFirst(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("users rows: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.pool, "users")
}

// byIDs — пользователи по набору ID (для заказов админ-панели).
func (r *UserRepository) byIDs(ctx context.Context, ids []string) (map[string]*domain.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1::text[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("select users by ids: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*domain.User, len(ids))
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out[user.ID] = user
	}
	return out, rows.Err()
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.TelegramID, &u.Username, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// AdminRepository — администраторы. Записи заводятся вручную (SQL/сидер).
type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository { return &AdminRepository{pool: pool} }

// FindByTelegramID — (nil, nil), если администратора нет.
func (r *AdminRepository) FindByTelegramID(ctx context.Context, telegramID string) (*domain.Admin, error) {
	var a domain.Admin
	err := r.pool.QueryRow(ctx, `
		SELECT id, telegram_id, username, created_at FROM admins WHERE telegram_id = $1
	`, telegramID).Scan(&a.ID, &a.TelegramID, &a.Username, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select admin: %w", err)
	}
	return &a, nil
}

// Grant — выдаёт права администратора (идемпотентно).
func (r *AdminRepository) Grant(ctx context.Context, telegramID string, username *string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO admins (id, telegram_id, username) VALUES ($1, $2, $3)
		ON CONFLICT (telegram_id) DO NOTHING
	`, uuid.NewString(), telegramID, username)
	if err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}
