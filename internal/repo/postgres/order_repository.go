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

// Проверка, что OrderRepository удовлетворяет интерфейсу OrderRepository.
var _ ports.OrderRepository = (*OrderRepository)(nil)

const orderColumns = `id, user_id, delivery_type, room, status, total_amount::float8, created_at, updated_at`

// OrderRepository — заказы и их позиции на Postgres (pgxpool).
type OrderRepository struct {
	pool  *pgxpool.Pool
	users *UserRepository
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool, users: NewUserRepository(pool)}
}

// Create — транзакционно сохраняет заказ и позиции, затем дочитывает его
// вместе с пользователем и товарами позиций.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil || order.UserID == "" {
		return nil, errors.New("order is empty or user_id is required")
	}
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.Status == "" {
		order.Status = domain.OrderPending
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer rollback(ctx, tx)

	if _, err = tx.Exec(ctx, `
		INSERT INTO orders (id, user_id, delivery_type, room, status, total_amount)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, order.ID, order.UserID, string(order.DeliveryType), order.Room, string(order.Status), order.TotalAmount,
	); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	if len(order.Items) > 0 {
		if err = copyItems(ctx, tx, order.ID, order.Items); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	saved, err := r.query(ctx, true, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, order.ID)
	if err != nil {
		return nil, err
	}
	if len(saved) == 0 {
		return nil, fmt.Errorf("order %s vanished after commit", order.ID)
	}
	return saved[0], nil
}

// ListByUser — заказы пользователя с позициями и товарами, новые сначала.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	return r.query(ctx, false, `
		SELECT `+orderColumns+` FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
}

// Recent — последние n заказов с пользователем, позициями и товарами.
func (r *OrderRepository) Recent(ctx context.Context, n int) ([]*domain.Order, error) {
	if n <= 0 {
		return []*domain.Order{}, nil
	}
	return r.query(ctx, true, `
		SELECT `+orderColumns+` FROM orders
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, n)
}

func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.pool, "orders")
}

// CompletedRevenue — сумма total_amount по COMPLETED; 0, если таких нет.
func (r *OrderRepository) CompletedRevenue(ctx context.Context) (float64, error) {
	var sum float64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_amount), 0)::float8 FROM orders WHERE status = $1
	`, string(domain.OrderCompleted)).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum revenue: %w", err)
	}
	return sum, nil
}

// query — базовая выборка заказов + позиции с товарами (+ пользователи)
// отдельными запросами по ANY($1), склейка в памяти с сохранением порядка.
func (r *OrderRepository) query(ctx context.Context, withUser bool, sql string, args ...any) ([]*domain.Order, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	byID := make(map[string]*domain.Order)
	ids := make([]string, 0)
	userIDs := make([]string, 0)

	for rows.Next() {
		o := &domain.Order{Items: []domain.OrderItem{}}
		var delivery, status string
		if err := rows.Scan(&o.ID, &o.UserID, &delivery, &o.Room, &status, &o.TotalAmount,
			&o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.DeliveryType = domain.DeliveryType(delivery)
		o.Status = domain.OrderStatus(status)

		orders = append(orders, o)
		byID[o.ID] = o
		ids = append(ids, o.ID)
		userIDs = append(userIDs, o.UserID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orders rows: %w", err)
	}
	rows.Close()
	if len(orders) == 0 {
		return orders, nil
	}

	if err := r.attachItems(ctx, ids, byID); err != nil {
		return nil, err
	}

	if withUser {
		users, err := r.users.byIDs(ctx, userIDs)
		if err != nil {
			return nil, err
		}
		for _, o := range orders {
			o.User = users[o.UserID]
		}
	}
	return orders, nil
}

func (r *OrderRepository) attachItems(ctx context.Context, ids []string, byID map[string]*domain.Order) error {
	rows, err := r.pool.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price::float8,
			p.id, p.name, p.description, p.price::float8, p.photo, p.category, p.is_active, p.created_at, p.updated_at
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1::text[])
		ORDER BY oi.order_id, oi.id
	`, ids)
	if err != nil {
		return fmt.Errorf("select items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item domain.OrderItem
			p    domain.Product
		)
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price,
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Photo, &p.Category, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return fmt.Errorf("scan item: %w", err)
		}
		item.Product = &p
		if o := byID[item.OrderID]; o != nil {
			o.Items = append(o.Items, item)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("items rows: %w", err)
	}
	return nil
}

// copyItems — вставка позиций через COPY (CopyFromRows); быстрее, чем INSERT в цикле.
func copyItems(ctx context.Context, tx pgx.Tx, orderID string, items []domain.OrderItem) error {
	rows := make([][]any, 0, len(items))
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
		items[i].OrderID = orderID
		rows = append(rows, []any{items[i].ID, orderID, items[i].ProductID, items[i].Quantity, items[i].Price})
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"order_items"},
		[]string{"id", "order_id", "product_id", "quantity", "price"},
		pgx.CopyFromRows(rows),
	); err != nil {
		return fmt.Errorf("copy items: %w", err)
	}
	return nil
}
