package kafka

import (
	"context"

	"github.com/Gunvolt24/fiveka-shop/internal/domain"
	"github.com/Gunvolt24/fiveka-shop/internal/ports"
)

var _ ports.OrderEventPublisher = NoopPublisher{}

// NoopPublisher — публикация выключена конфигурацией.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderCreated(context.Context, *domain.Order) error { return nil }
func (NoopPublisher) Close() error                                              { return nil }
