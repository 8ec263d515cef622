package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Gunvolt24/fiveka-shop/internal/domain"
	"github.com/Gunvolt24/fiveka-shop/internal/ports"
	"github.com/Gunvolt24/fiveka-shop/pkg/ctxmeta"
	"github.com/Gunvolt24/fiveka-shop/pkg/httpx"
	"github.com/Gunvolt24/fiveka-shop/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

// Проверка, что Producer удовлетворяет интерфейсу ports.OrderEventPublisher.
var _ ports.OrderEventPublisher = (*Producer)(nil)

// EventOrderCreated — тип события в заголовке и теле сообщения.
const EventOrderCreated = "order.created"

// writer — минимальный контракт над kafka.Writer для подмены в тестах.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderCreatedEvent — тело события о новом заказе.
type OrderCreatedEvent struct {
	Type         string    `json:"type"`
	OrderID      string    `json:"orderId"`
	UserID       string    `json:"userId"`
	DeliveryType string    `json:"deliveryType"`
	Room         string    `json:"room"`
	TotalAmount  float64   `json:"totalAmount"`
	ItemsCount   int       `json:"itemsCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Producer публикует события заказов в Kafka.
type Producer struct {
	writer       writer
	topic        string
	writeTimeout time.Duration
	log          ports.Logger
	closeOnce    sync.Once
}

func NewProducer(cfg *ProducerConfig, log ports.Logger) *Producer {
	wt := cfg.WriteTimeout
	if wt <= 0 {
		wt = 5 * time.Second
	}
	cfg.WriteTimeout = wt

	return &Producer{
		writer:       cfg.writer(),
		topic:        cfg.Topic,
		writeTimeout: wt,
		log:          log,
	}
}

// PublishOrderCreated — синхронная запись события; ключ — ID заказа.
func (p *Producer) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return nil
	}
	msg, err := p.message(ctx, order)
	if err != nil {
		return err
	}

	writeCtx, cancel := context.WithTimeout(ctx, p.writeTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(writeCtx, msg); err != nil {
		metrics.KafkaMessagesFailed.WithLabelValues(p.topic).Inc()
		return fmt.Errorf("write %s order=%s: %w", EventOrderCreated, order.ID, err)
	}
	metrics.KafkaMessagesProduced.WithLabelValues(p.topic).Inc()
	p.log.Infof(ctx, "event published type=%s order=%s topic=%s", EventOrderCreated, order.ID, p.topic)
	return nil
}

func (p *Producer) message(ctx context.Context, order *domain.Order) (kafka.Message, error) {
	body, err := json.Marshal(OrderCreatedEvent{
		Type:         EventOrderCreated,
		OrderID:      order.ID,
		UserID:       order.UserID,
		DeliveryType: string(order.DeliveryType),
		Room:         order.Room,
		TotalAmount:  order.TotalAmount,
		ItemsCount:   len(order.Items),
		CreatedAt:    order.CreatedAt,
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal event: %w", err)
	}

	headers := []kafka.Header{{Key: "event-type", Value: []byte(EventOrderCreated)}}
	if rid, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		headers = append(headers, kafka.Header{Key: httpx.HeaderRequestID, Value: []byte(rid)})
	}
	return kafka.Message{Key: []byte(order.ID), Value: body, Headers: headers}, nil
}

// Close — закрывает writer один раз (досылает буфер).
func (p *Producer) Close() error {
	var err error
	p.closeOnce.Do(func() {
		err = p.writer.Close()
	})
	return err
}
