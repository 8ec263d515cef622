package rest

import "github.com/Gunvolt24/fiveka-shop/internal/domain"

// Тела запросов. Лишние поля игнорируются: Telegram присылает больше, чем нам нужно.

type telegramUserRequest struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type authRequest struct {
	TelegramUser *telegramUserRequest `json:"telegramUser"`
}

type createProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Photo       string   `json:"photo" binding:"required"`
	Category    string   `json:"category" binding:"required"`
}

func (r createProductRequest) draft() domain.ProductDraft {
	return domain.ProductDraft{
		Name:        r.Name,
		Description: r.Description,
		Price:       *r.Price,
		Photo:       r.Photo,
		Category:    r.Category,
	}
}

type orderItemRequest struct {
	ProductID string   `json:"productId" binding:"required"`
	Quantity  int      `json:"quantity" binding:"required,min=1"`
	Price     *float64 `json:"price" binding:"required,gte=0"`
}

type createOrderRequest struct {
	UserID       string             `json:"userId" binding:"required"`
	Items        []orderItemRequest `json:"items" binding:"required,min=1,dive"`
	DeliveryType string             `json:"deliveryType" binding:"required,oneof=PICKUP DELIVERY"`
	Room         string             `json:"room" binding:"required"`
}

func (r createOrderRequest) draft() domain.OrderDraft {
	items := make([]domain.OrderItemDraft, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, domain.OrderItemDraft{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     *it.Price,
		})
	}
	return domain.OrderDraft{
		UserID:       r.UserID,
		DeliveryType: domain.DeliveryType(r.DeliveryType),
		Room:         r.Room,
		Items:        items,
	}
}

type shopStatusRequest struct {
	IsOpen *bool `json:"isOpen" binding:"required"`
}
