package validate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Gunvolt24/fiveka-shop/internal/domain"
	"github.com/Gunvolt24/fiveka-shop/internal/ports"
	"github.com/go-playground/validator/v10"
)

// Проверка, что ProductValidator удовлетворяет интерфейсу ports.ProductValidator.
var _ ports.ProductValidator = (*ProductValidator)(nil)

// ErrInvalidProduct — базовая (sentinel error) ошибка валидации товара.
var ErrInvalidProduct = errors.New("product validation failed")

// productRules — правила для domain.Product без тегов в доменном типе.
var productRules = map[string]string{
	"Name":        "required,max=255",
	"Description": "required,max=2000",
	"Price":       "gte=0",
	"Photo":       "required,max=1024",
	"Category":    "required,max=100",
}

// ProductValidator проверяет товар перед записью в Store.
type ProductValidator struct {
	v *validator.Validate
}

func NewProductValidator() *ProductValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidationMapRules(productRules, domain.Product{})
	return &ProductValidator{v: v}
}

// Validate возвращает ErrInvalidProduct с перечнем нарушенных полей.
func (pv *ProductValidator) Validate(ctx context.Context, product *domain.Product) error {
	if product == nil {
		return fmt.Errorf("%w: товар не может быть nil", ErrInvalidProduct)
	}
	err := pv.v.StructCtx(ctx, product)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidProduct, err)
	}
	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidProduct, strings.Join(problems, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " обязателен"
	case "gte":
		return field + " должен быть не меньше " + fe.Param()
	case "max":
		return field + " длиннее " + fe.Param()
	default:
		return field + " некорректен (" + fe.Tag() + ")"
	}
}
