package domain

import "time"

// User — покупатель, идентифицируемый по Telegram ID.
// Создаётся при первом обращении и никогда не удаляется сервисом.
type User struct {
	ID         string    `json:"id"`
	TelegramID string    `json:"telegramId"`
	Username   *string   `json:"username"`
	FirstName  *string   `json:"firstName"`
	LastName   *string   `json:"lastName"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TelegramIdentity — идентичность пользователя в том виде, в каком её прислал клиент
// (или подписанные init-data Mini App).
type TelegramIdentity struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}

// Admin — запись администратора; наличие записи даёт флаг isAdmin.
type Admin struct {
	ID         string    `json:"id"`
	TelegramID string    `json:"telegramId"`
	Username   *string   `json:"username"`
	CreatedAt  time.Time `json:"createdAt"`
}

// OptionalString — пустая строка превращается в NULL.
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
