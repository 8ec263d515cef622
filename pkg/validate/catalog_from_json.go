package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/fiveka-shop/internal/domain"
	"github.com/Gunvolt24/fiveka-shop/internal/ports"
)

// CatalogEntry — запись товара во входном файле каталога.
type CatalogEntry struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Photo       string  `json:"photo"`
	Category    string  `json:"category"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// Product — товар из записи; без isActive товар активен.
func (e CatalogEntry) Product() *domain.Product {
	active := true
	if e.IsActive != nil {
		active = *e.IsActive
	}
	return &domain.Product{
		Name:        e.Name,
		Description: e.Description,
		Price:       e.Price,
		Photo:       e.Photo,
		Category:    e.Category,
		IsActive:    active,
	}
}

// ProductFromJSON — строгий разбор одной записи и валидация товара.
func ProductFromJSON(ctx context.Context, validator ports.ProductValidator, raw []byte) (*domain.Product, error) {
	var entry CatalogEntry
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&entry); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("invalid json: trailing data")
	}
	product := entry.Product()
	if err := validator.Validate(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// ProductsFromJSON разбирает JSON-массив записей (или один объект).
// Невалидные элементы массива пропускаются и считаются.
func ProductsFromJSON(ctx context.Context, validator ports.ProductValidator, raw []byte) ([]*domain.Product, int, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		product, err := ProductFromJSON(ctx, validator, trimmed)
		if err != nil {
			return nil, 1, err
		}
		return []*domain.Product{product}, 0, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, 0, fmt.Errorf("invalid json: %w", err)
	}
	products := make([]*domain.Product, 0, len(items))
	invalid := 0
	for _, item := range items {
		product, err := ProductFromJSON(ctx, validator, item)
		if err != nil {
			invalid++
			continue
		}
		products = append(products, product)
	}
	return products, invalid, nil
}
