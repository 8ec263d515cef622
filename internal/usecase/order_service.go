package usecase

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/fiveka-shop/internal/domain"
	"github.com/Gunvolt24/fiveka-shop/internal/ports"
	"github.com/Gunvolt24/fiveka-shop/pkg/metrics"
)

// OrderService — оформление и история заказов. Заказы не кэшируются.
type OrderService struct {
	repo      ports.OrderRepository
	publisher ports.OrderEventPublisher
	log       ports.Logger
}

func NewOrderService(
	repo ports.OrderRepository,
	publisher ports.OrderEventPublisher,
	log ports.Logger,
) *OrderService {
	return &OrderService{repo: repo, publisher: publisher, log: log}
}

// Create проверяет черновик, считает сумму и сохраняет заказ в статусе PENDING.
// Сбой публикации события только логируется.
func (s *OrderService) Create(ctx context.Context, draft domain.OrderDraft) (*domain.Order, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	order := &domain.Order{
		UserID:       draft.UserID,
		DeliveryType: draft.DeliveryType,
		Room:         draft.Room,
		Status:       domain.OrderPending,
		TotalAmount:  draft.Total(),
		Items:        make([]domain.OrderItem, 0, len(draft.Items)),
	}
	for _, item := range draft.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	saved, err := s.repo.Create(ctx, order)
	if err != nil {
		s.log.Errorf(ctx, "orders.Create failed user_id=%s err=%v", draft.UserID, err)
		return nil, err
	}
	metrics.OrdersCreated.Inc()
	s.log.Infof(ctx, "order created id=%s user_id=%s total=%.2f items=%d",
		saved.ID, saved.UserID, saved.TotalAmount, len(saved.Items))

	if err := s.publisher.PublishOrderCreated(ctx, saved); err != nil {
		s.log.Warnf(ctx, "publish order.created failed id=%s err=%v", saved.ID, err)
	}
	return saved, nil
}

// ListByUser — заказы пользователя, новые сначала.
func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id обязателен", ErrValidation)
	}
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.log.Errorf(ctx, "orders.ListByUser failed user_id=%s err=%v", userID, err)
		return nil, err
	}
	return orders, nil
}

func validateDraft(d domain.OrderDraft) error {
	switch {
	case d.UserID == "":
		return fmt.Errorf("%w: userId обязателен", ErrValidation)
	case !d.DeliveryType.Valid():
		return fmt.Errorf("%w: deliveryType %q не поддерживается", ErrValidation, d.DeliveryType)
	case d.Room == "":
		return fmt.Errorf("%w: room обязателен", ErrValidation)
	case len(d.Items) == 0:
		return fmt.Errorf("%w: items не должен быть пустым", ErrValidation)
	}
	for i, item := range d.Items {
		if item.ProductID == "" {
			return fmt.Errorf("%w: items[%d].productId обязателен", ErrValidation, i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: items[%d].quantity должен быть положительным", ErrValidation, i)
		}
		if item.Price < 0 {
			return fmt.Errorf("%w: items[%d].price должен быть неотрицательным", ErrValidation, i)
		}
	}
	return nil
}
