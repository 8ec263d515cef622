//go:build integration

package testutil

import (
	"context"

	pgrepo "github.com/Gunvolt24/fiveka-shop/internal/repo/postgres"
)

// ApplyMigrations — те же встроенные goose-миграции, что и при старте сервиса.
func ApplyMigrations(ctx context.Context, dsn string) error {
	return pgrepo.Migrate(ctx, dsn, "")
}
