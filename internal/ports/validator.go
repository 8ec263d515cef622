package ports

import (
	"context"

	"github.com/Gunvolt24/fiveka-shop/internal/domain"
)

type ProductValidator interface {
	Validate(ctx context.Context, product *domain.Product) error
}
