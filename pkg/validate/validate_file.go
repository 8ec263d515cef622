package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/fiveka-shop/internal/domain"
	"github.com/Gunvolt24/fiveka-shop/internal/ports"
)

// InputFormat допустимые значения.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// Summary — итог проверки файла каталога.
type Summary struct {
	Valid   int
	Invalid int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d valid / %d invalid", s.Valid, s.Invalid)
}

// ValidateFile — валидирует файл каталога (JSON или JSONL), пишет
// канонический JSON валидных товаров построчно в writer и возвращает их.
func ValidateFile(ctx context.Context, validator ports.ProductValidator, filePath string, format InputFormat, ow io.Writer) (Summary, []*domain.Product, error) {
	if format == FormatAuto {
		format = FormatJSON
		if strings.EqualFold(filepath.Ext(filePath), ".jsonl") {
			format = FormatJSONL
		}
	}

	file, err := os.Open(filePath)
	if err != nil {
		return Summary{}, nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	var (
		products []*domain.Product
		invalid  int
	)
	switch format {
	case FormatJSON:
		raw, err := io.ReadAll(file)
		if err != nil {
			return Summary{}, nil, fmt.Errorf("read file: %w", err)
		}
		products, invalid, err = ProductsFromJSON(ctx, validator, raw)
		if err != nil {
			return Summary{Invalid: invalid}, nil, err
		}
	case FormatJSONL:
		products, invalid, err = ReadJSONLStream(ctx, validator, file)
		if err != nil {
			return Summary{Valid: len(products), Invalid: invalid}, nil, err
		}
	default:
		return Summary{}, nil, fmt.Errorf("unsupported format: %s", format)
	}

	for _, p := range products {
		canonical, _ := json.Marshal(p)
		if _, err := ow.Write(append(canonical, '\n')); err != nil {
			return Summary{}, nil, fmt.Errorf("write json: %w", err)
		}
	}
	return Summary{Valid: len(products), Invalid: invalid}, products, nil
}
