package validate

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/Gunvolt24/fiveka-shop/internal/domain"
	"github.com/Gunvolt24/fiveka-shop/internal/ports"
)

// ReadJSONLStream — читает JSONL, валидирует каждую строку.
// Пустые строки пропускаются, невалидные считаются и не прерывают чтение.
func ReadJSONLStream(ctx context.Context, validator ports.ProductValidator, ir io.Reader) ([]*domain.Product, int, error) {
	var (
		products []*domain.Product
		invalid  int
	)

	scanner := bufio.NewScanner(ir)
	// запас на длинные описания
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		product, err := ProductFromJSON(ctx, validator, line)
		if err != nil {
			invalid++
			continue
		}
		products = append(products, product)
	}
	if err := scanner.Err(); err != nil {
		return products, invalid, fmt.Errorf("scan: %w", err)
	}
	return products, invalid, nil
}
