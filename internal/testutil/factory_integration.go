//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/Gunvolt24/fiveka-shop/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeProduct — валидный активный товар с уникальным именем.
func MakeProduct(opts ...func(*domain.Product)) *domain.Product {
	p := &domain.Product{
		Name:        "Товар " + UniqSuffix(),
		Description: "Описание",
		Price:       100,
		Photo:       "https://cdn.example.com/" + UniqSuffix() + ".jpg",
		Category:    "Еда",
		IsActive:    true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// MakeUser — пользователь с уникальным Telegram ID.
func MakeUser(opts ...func(*domain.User)) *domain.User {
	u := &domain.User{
		TelegramID: "tg-" + UniqSuffix(),
		Username:   domain.OptionalString("user_" + UniqSuffix()),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}
