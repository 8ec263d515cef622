package domain

import "time"

// Product — товар каталога. Категория — свободная строка, отдельной сущности нет.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Photo       string    `json:"photo"`
	Category    string    `json:"category"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductDraft — данные для создания товара.
type ProductDraft struct {
	Name        string
	Description string
	Price       float64
	Photo       string
	Category    string
}
