//go:build integration

package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/fiveka-shop/internal/cache"
	cacheredis "github.com/Gunvolt24/fiveka-shop/internal/cache/redis"
	"github.com/Gunvolt24/fiveka-shop/internal/kafka"
	pgrepo "github.com/Gunvolt24/fiveka-shop/internal/repo/postgres"
	"github.com/Gunvolt24/fiveka-shop/internal/testutil"
	rest "github.com/Gunvolt24/fiveka-shop/internal/transport/http"
	"github.com/Gunvolt24/fiveka-shop/internal/usecase"
	"github.com/Gunvolt24/fiveka-shop/pkg/logger"
	"github.com/Gunvolt24/fiveka-shop/pkg/validate"
)

// Полный путь: Postgres + Redis в контейнерах, настоящие сервисы и роутер.
func TestHTTP_Storefront_TC(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pg, stopPG, err := testutil.StartPostgresTC(ctx)
	require.NoError(t, err)
	defer func() { _ = stopPG(context.Background()) }()
	require.NoError(t, testutil.ApplyMigrations(ctx, pg.DSN))

	rd, stopRedis, err := testutil.StartRedisTC(ctx)
	require.NoError(t, err)
	defer func() { _ = stopRedis(context.Background()) }()

	client := cacheredis.NewClient(cacheredis.Options{Addr: rd.Addr})
	defer client.Close()
	require.NoError(t, cacheredis.Ping(ctx, client))

	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	c := cache.New(cacheredis.NewKVStore(client), logg)
	users := pgrepo.NewUserRepository(pg.Pool)
	products := pgrepo.NewProductRepository(pg.Pool)
	orders := pgrepo.NewOrderRepository(pg.Pool)
	shopSvc := usecase.NewShopService(pgrepo.NewShopStatusRepository(pg.Pool), c, logg)

	h := rest.NewHandler(rest.Services{
		Auth:    usecase.NewAuthService(users, pgrepo.NewAdminRepository(pg.Pool), c, logg),
		Catalog: usecase.NewCatalogService(products, c, logg, validate.NewProductValidator()),
		Shop:    shopSvc,
		Orders:  usecase.NewOrderService(orders, kafka.NoopPublisher{}, logg),
		Admin:   usecase.NewAdminService(users, products, orders, logg),
		Bot:     usecase.NewBotService(shopSvc, "", logg),
	}, logg, 5*time.Second)
	ts := httptest.NewServer(rest.NewRouter(h, rest.RouterOptions{}))
	defer ts.Close()

	call := func(method, path string, body any) map[string]any {
		t.Helper()
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req, err := http.NewRequestWithContext(ctx, method, ts.URL+path, &buf)
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode, "%s %s", method, path)

		var got map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		return got
	}

	// вход создаёт пользователя и кладёт его в Redis
	auth := call(http.MethodPost, "/auth", map[string]any{"telegramUser": map[string]any{"id": 1001, "username": "buyer"}})
	userID := auth["user"].(map[string]any)["id"].(string)
	require.NotEmpty(t, userID)
	n, err := client.Exists(ctx, "user:1001", "admin:1001").Result()
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	// пустой каталог кэшируется, создание товара сбрасывает списки
	require.Empty(t, call(http.MethodGet, "/products", nil)["products"])
	product := call(http.MethodPost, "/products", map[string]any{
		"name": "Сок", "description": "Яблочный", "price": 120, "photo": "https://cdn/juice.jpg", "category": "Напитки",
	})["product"].(map[string]any)
	list := call(http.MethodGet, "/products", nil)["products"].([]any)
	require.Len(t, list, 1)

	// статус магазина: ленивое создание и обновление
	require.Equal(t, false, call(http.MethodGet, "/shop-status", nil)["status"].(map[string]any)["isOpen"])
	call(http.MethodPost, "/shop-status", map[string]any{"isOpen": true})
	require.Equal(t, true, call(http.MethodGet, "/shop-status", nil)["status"].(map[string]any)["isOpen"])

	// заказ
	order := call(http.MethodPost, "/orders", map[string]any{
		"userId": userID, "deliveryType": "PICKUP", "room": "12",
		"items": []map[string]any{{"productId": product["id"], "quantity": 3, "price": 120}},
	})["order"].(map[string]any)
	require.InDelta(t, 360.0, order["totalAmount"], 1e-9)
	require.Len(t, call(http.MethodGet, "/orders?userId="+userID, nil)["orders"], 1)

	dash := call(http.MethodGet, "/admin", nil)
	require.EqualValues(t, 1, dash["stats"].(map[string]any)["ordersCount"])

	reply := call(http.MethodPost, "/telegram-webhook", map[string]any{
		"message": map[string]any{"from": map[string]any{"id": 1001}, "chat": map[string]any{"id": 1001}, "text": "/status"},
	})
	require.Equal(t, "Status message sent: shop is open", reply["message"])
}
