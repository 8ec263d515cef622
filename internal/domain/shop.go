package domain

import "time"

// ShopStatus — единственная запись о том, открыт ли магазин.
type ShopStatus struct {
	ID        string    `json:"id"`
	IsOpen    bool      `json:"isOpen"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DashboardStats — агрегаты для админ-панели.
type DashboardStats struct {
	UsersCount    int64   `json:"usersCount"`
	ProductsCount int64   `json:"productsCount"`
	OrdersCount   int64   `json:"ordersCount"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

// Dashboard — содержимое админ-панели.
type Dashboard struct {
	Stats        DashboardStats `json:"stats"`
	RecentOrders []*Order       `json:"recentOrders"`
	Users        []*User        `json:"users"`
}

// BotMessage — входящее текстовое сообщение боту.
type BotMessage struct {
	SenderID int64
	ChatID   int64
	Text     string
}

// BotReply — результат обработки команды: краткое описание и текст ответа.
type BotReply struct {
	Description string
	Text        string
}
