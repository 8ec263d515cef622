package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/Gunvolt24/fiveka-shop/config"
	"github.com/Gunvolt24/fiveka-shop/internal/app"
	"github.com/Gunvolt24/fiveka-shop/internal/domain"
	"github.com/Gunvolt24/fiveka-shop/internal/repo/postgres"
	"github.com/Gunvolt24/fiveka-shop/internal/usecase"
	"github.com/Gunvolt24/fiveka-shop/pkg/logger"
	"github.com/Gunvolt24/fiveka-shop/pkg/validate"
)

// CLI для проверки и загрузки каталога товаров.
// Без -apply только печатает канонический JSON валидных товаров.
func main() {
	inputPath := flag.String("in", "", "path to input (.json or .jsonl). If empty, reads from stdin.")
	formatStr := flag.String("format", "auto", "input format: auto|json|jsonl")
	apply := flag.Bool("apply", false, "insert valid products into Postgres and reset cached product lists")
	grantAdmin := flag.String("grant-admin", "", "telegram id to grant admin rights (requires -apply)")
	adminUsername := flag.String("admin-username", "", "optional username for -grant-admin")
	flag.Parse()

	if err := checkFlags(*apply, *grantAdmin, *adminUsername); err != nil {
		fmt.Fprintf(os.Stderr, "usage: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	productValidator := validate.NewProductValidator()
	format := validate.InputFormat(*formatStr)

	path := *inputPath
	// stdin вариант: считаем, что jsonl
	if path == "" {
		path = "/dev/stdin"
		if format == validate.FormatAuto {
			format = validate.FormatJSONL
		}
	}

	summary, products, err := validate.ValidateFile(ctx, productValidator, path, format, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "validation: %v (%s)\n", err, summary)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "validation ok (%s)\n", summary)

	if !*apply {
		return
	}
	if err := seed(ctx, products, *grantAdmin, *adminUsername); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

// checkFlags — флаги администратора имеют смысл только вместе с -apply.
func checkFlags(apply bool, grantAdmin, adminUsername string) error {
	if apply {
		if adminUsername != "" && grantAdmin == "" {
			return errors.New("-admin-username requires -grant-admin")
		}
		return nil
	}
	if grantAdmin != "" {
		return errors.New("-grant-admin requires -apply")
	}
	if adminUsername != "" {
		return errors.New("-admin-username requires -grant-admin and -apply")
	}
	return nil
}

func seed(ctx context.Context, products []*domain.Product, adminID, adminUsername string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return err
	}
	defer func() { _ = cleanupLogger() }()

	if cfg.Postgres.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.Postgres.DSN, cfg.Postgres.MigrationsDir); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()

	repo := postgres.NewProductRepository(pool)
	if err := repo.CreateBatch(ctx, products); err != nil {
		return err
	}
	logg.Infof(ctx, "catalog seeded products=%d", len(products))

	admins := postgres.NewAdminRepository(pool)
	if adminID != "" {
		if err := admins.Grant(ctx, adminID, domain.OptionalString(adminUsername)); err != nil {
			return err
		}
		logg.Infof(ctx, "admin granted telegram_id=%s", adminID)
	}

	// Без кэша сид всё равно успешен, старые списки истекут по TTL.
	shopCache, closeCache, err := app.OpenCache(ctx, cfg, logg)
	if err != nil {
		logg.Warnf(ctx, "cache unavailable, cached lists not reset: %v", err)
		return nil
	}
	defer closeCache()

	usecase.NewCatalogService(repo, shopCache, logg, validate.NewProductValidator()).InvalidateProductLists(ctx)
	if adminID != "" {
		usecase.NewAuthService(postgres.NewUserRepository(pool), admins, shopCache, logg).InvalidateAdmin(ctx, adminID)
	}
	return nil
}
