package domain

import "time"

// DeliveryType — способ получения заказа.
type DeliveryType string

const (
	DeliveryPickup   DeliveryType = "PICKUP"
	DeliveryDelivery DeliveryType = "DELIVERY"
)

// Valid — известен ли способ получения.
func (d DeliveryType) Valid() bool {
	return d == DeliveryPickup || d == DeliveryDelivery
}

// OrderStatus — статус заказа.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Order — заказ вместе с позициями (и, при чтении, с пользователем).
type Order struct {
	ID           string       `json:"id"`
	UserID       string       `json:"userId"`
	User         *User        `json:"user,omitempty"`
	DeliveryType DeliveryType `json:"deliveryType"`
	Room         string       `json:"room"`
	Status       OrderStatus  `json:"status"`
	TotalAmount  float64      `json:"totalAmount"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
	Items        []OrderItem  `json:"items"`
}

// OrderItem — позиция заказа; цена фиксируется на момент оформления.
type OrderItem struct {
	ID        string   `json:"id"`
	OrderID   string   `json:"orderId"`
	ProductID string   `json:"productId"`
	Product   *Product `json:"product,omitempty"`
	Quantity  int      `json:"quantity"`
	Price     float64  `json:"price"`
}

// OrderDraft — данные для оформления заказа.
type OrderDraft struct {
	UserID       string
	DeliveryType DeliveryType
	Room         string
	Items        []OrderItemDraft
}

// OrderItemDraft — позиция оформляемого заказа.
type OrderItemDraft struct {
	ProductID string
	Quantity  int
	Price     float64
}

// Total — Σ(price × quantity) по всем позициям.
func (d OrderDraft) Total() float64 {
	var total float64
	for _, item := range d.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
