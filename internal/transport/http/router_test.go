package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/fiveka-shop/internal/cache"
	"github.com/Gunvolt24/fiveka-shop/internal/cache/memory"
	"github.com/Gunvolt24/fiveka-shop/internal/domain"
	"github.com/Gunvolt24/fiveka-shop/internal/ports/mocks"
	rest "github.com/Gunvolt24/fiveka-shop/internal/transport/http"
	"github.com/Gunvolt24/fiveka-shop/internal/usecase"
	"github.com/Gunvolt24/fiveka-shop/pkg/validate"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

var errDB = errors.New("db error")

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// testEnv — настоящие сервисы и кэш в памяти поверх мок-репозиториев.
type testEnv struct {
	users     *mocks.MockUserRepository
	admins    *mocks.MockAdminRepository
	products  *mocks.MockProductRepository
	orders    *mocks.MockOrderRepository
	shop      *mocks.MockShopStatusRepository
	publisher *mocks.MockOrderEventPublisher
	router    *gin.Engine
}

func newEnv(t testing.TB, opts rest.RouterOptions) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := noopLogger{}

	env := &testEnv{
		users:     mocks.NewMockUserRepository(ctrl),
		admins:    mocks.NewMockAdminRepository(ctrl),
		products:  mocks.NewMockProductRepository(ctrl),
		orders:    mocks.NewMockOrderRepository(ctrl),
		shop:      mocks.NewMockShopStatusRepository(ctrl),
		publisher: mocks.NewMockOrderEventPublisher(ctrl),
	}
	c := cache.New(memory.NewKVStore(256), log)

	shopSvc := usecase.NewShopService(env.shop, c, log)
	h := rest.NewHandler(rest.Services{
		Auth:    usecase.NewAuthService(env.users, env.admins, c, log),
		Catalog: usecase.NewCatalogService(env.products, c, log, validate.NewProductValidator()),
		Shop:    shopSvc,
		Orders:  usecase.NewOrderService(env.orders, env.publisher, log),
		Admin:   usecase.NewAdminService(env.users, env.products, env.orders, log),
		Bot:     usecase.NewBotService(shopSvc, "https://shop.example.com", log),
	}, log, 2*time.Second)
	env.router = rest.NewRouter(h, opts)
	return env
}

func (e *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got), "body=%s", w.Body.String())
	return got
}

func TestPing_200(t *testing.T) {
	env := newEnv(t, rest.RouterOptions{})
	w := env.do(http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestMetrics_200(t *testing.T) {
	env := newEnv(t, rest.RouterOptions{})
	w := env.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotZero(t, w.Body.Len())
}

func TestNoRoute_404(t *testing.T) {
	env := newEnv(t, rest.RouterOptions{})
	w := env.do(http.MethodGet, "/no-such-route", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMethodNotAllowed_405(t *testing.T) {
	env := newEnv(t, rest.RouterOptions{})
	w := env.do(http.MethodPost, "/categories", `{}`)
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "GET", w.Header().Get("Allow"))
	assert.Equal(t, "method not allowed", decode(t, w)["error"])
}

func TestRequestID_Echoed(t *testing.T) {
	env := newEnv(t, rest.RouterOptions{})
	w := env.do(http.MethodGet, "/ping", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAuth_MissingTelegramID_400(t *testing.T) {
	env := newEnv(t, rest.RouterOptions{})

	for _, body := range []string{`{}`, `{"telegramUser":{}}`, `{"telegramUser":{"username":"x"}}`, `not json`} {
		w := env.do(http.MethodPost, "/auth", body)
		require.Equal(t, http.StatusBadRequest, w.Code, "body=%s", body)
		assert.Equal(t, "Invalid telegram user data", decode(t, w)["error"])
	}
}

// Telegram передаёт id числом; строка или дробная запись отвергаются до Store.
func TestAuth_NonIntegerTelegramID_400(t *testing.T) {
	env := newEnv(t, rest.RouterOptions{})

	for _, body := range []string{`{"telegramUser":{"id":"123"}}`, `{"telegramUser":{"id":123.0}}`, `{"telegramUser":{"id":true}}`} {
		w := env.do(http.MethodPost, "/auth", body)
		require.Equal(t, http.StatusBadRequest, w.Code, "body=%s", body)
		assert.Equal(t, "Invalid telegram user data", decode(t, w)["error"])
	}
}

func TestAuth_CreatesUserOnFirstSight(t *testing.T) {
	env := newEnv(t, rest.RouterOptions{})

	env.users.EXPECT().FindByTelegramID(gomock.Any(), "42").Return(nil, nil)
	env.users.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *domain.User) error {
			require.NotNil(t, u.Username)
			assert.Equal(t, "vasya", *u.Username)
			assert.Nil(t, u.LastName)
			u.ID = "u-42"
			return nil
		})
	env.admins.EXPECT().FindByTelegramID(gomock.Any(), "42").Return(nil, nil)

	w := env.do(http.MethodPost, "/auth", map[string]any{
		"telegramUser": map[string]any{"id": 42, "username": "vasya", "first_name": "Вася", "language_code": "ru"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got := decode(t, w)
	assert.Equal(t, true, got["success"])
	assert.Equal(t, false, got["isAdmin"])
	assert.Equal(t, "u-42", got["user"].(map[string]any)["id"])
}

func TestAuth_SecondLoginServedFromCache(t *testing.T) {
	env := newEnv(t, rest.RouterOptions{})

	env.users.EXPECT().FindByTelegramID(gomock.Any(), "7").
		Return(&domain.User{ID: "u-7", TelegramID: "7"}, nil).Times(1)
	env.admins.EXPECT().FindByTelegramID(gomock.Any(), "7").
		Return(&domain.Admin{ID: "a-1", TelegramID: "7"}, nil).Times(1)

	for i := 0; i < 2; i++ {
		w := env.do(http.MethodPost, "/auth", `{"telegramUser":{"id":7}}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, decode(t, w)["isAdmin"])
	}
}

func TestAuth_StoreError_500(t *testing.T) {
	env := newEnv(t, rest.RouterOptions{})
	env.users.EXPECT().FindByTelegramID(gomock.Any(), "9").Return(nil, errDB)

	w := env.do(http.MethodPost, "/auth", `{"telegramUser":{"id":9}}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", decode(t, w)["error"])
}

func TestCategories_DistinctAndCached(t *testing.T) {
	env := newEnv(t, rest.RouterOptions{})
	env.products.EXPECT().ActiveCategories(gomock.Any()).
		Return([]string{"Еда", "Напитки", "Еда"}, nil).Times(1)

	for i := 0; i < 2; i++ {
		w := env.do(http.MethodGet, "/categories", nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decode(t, w)
		assert.Equal(t, []any{"Еда", "Напитки"}, got["categories"])
		assert.Equal(t, true, got["success"])
	}
}

func TestProducts_CreateInvalidatesLists(t *testing.T) {
	env := newEnv(t, rest.RouterOptions{})

	old := &domain.Product{ID: "p-1", Name: "Хлеб", Category: "Еда", Price: 50, IsActive: true}
	fresh := &domain.Product{ID: "p-2", Name: "Сыр", Category: "Еда", Price: 300, IsActive: true}

	gomock.InOrder(
		env.products.EXPECT().ListActive(gomock.Any(), "").Return([]*domain.Product{old}, nil),
		env.products.EXPECT().ListActive(gomock.Any(), "Еда").Return([]*domain.Product{old}, nil),
		env.products.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *domain.Product) error {
				assert.True(t, p.IsActive)
				p.ID = fresh.ID
				return nil
			}),
		env.products.EXPECT().ListActive(gomock.Any(), "").Return([]*domain.Product{fresh, old}, nil),
		env.products.EXPECT().ListActive(gomock.Any(), "Еда").Return([]*domain.Product{fresh, old}, nil),
	)

	require.Equal(t, http.StatusOK, env.do(http.MethodGet, "/products", nil).Code)
	require.Equal(t, http.StatusOK, env.do(http.MethodGet, "/products?category=Еда", nil).Code)
	// повторное чтение: из кэша
	require.Equal(t, http.StatusOK, env.do(http.MethodGet, "/products", nil).Code)

	w := env.do(http.MethodPost, "/products", map[string]any{
		"name": "Сыр", "description": "Твёрдый", "price": 300, "photo": "https://cdn/x.jpg", "category": "Еда",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "p-2", decode(t, w)["product"].(map[string]any)["id"])

	for _, path := range []string{"/products", "/products?category=Еда"} {
		w = env.do(http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode(t, w)["products"], 2, path)
	}
}

func TestProducts_CreateDoesNotTouchCategories(t *testing.T) {
	env := newEnv(t, rest.RouterOptions{})

	env.products.EXPECT().ActiveCategories(gomock.Any()).Return([]string{"Еда"}, nil).Times(1)
	env.products.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	require.Equal(t, http.StatusOK, env.do(http.MethodGet, "/categories", nil).Code)
	w := env.do(http.MethodPost, "/products", map[string]any{
		"name": "Чай", "description": "Зелёный", "price": 90, "photo": "https://cdn/t.jpg", "category": "Напитки",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/categories", nil)
	assert.Equal(t, []any{"Еда"}, decode(t, w)["categories"])
}

func TestProducts_Create_Validation(t *testing.T) {
	env := newEnv(t, rest.RouterOptions{})

	cases := map[string]string{
		"missing name":   `{"description":"d","price":1,"photo":"p","category":"c"}`,
		"missing price":  `{"name":"n","description":"d","photo":"p","category":"c"}`,
		"negative price": `{"name":"n","description":"d","price":-1,"photo":"p","category":"c"}`,
		"price string":   `{"name":"n","description":"d","price":"10","photo":"p","category":"c"}`,
	}
	for name, body := range cases {
		w := env.do(http.MethodPost, "/products", body)
		require.Equal(t, http.StatusBadRequest, w.Code, name)
		assert.Equal(t, "Missing required fields", decode(t, w)["error"], name)
	}
}

func TestProducts_Create_TooLongName_400(t *testing.T) {
	env := newEnv(t, rest.RouterOptions{})

	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}
	w := env.do(http.MethodPost, "/products", map[string]any{
		"name": string(long), "description": "d", "price": 1, "photo": "p", "category": "c",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "name")
}

func TestProducts_StoreError_500(t *testing.T) {
	env := newEnv(t, rest.RouterOptions{})
	env.products.EXPECT().ListActive(gomock.Any(), "").Return(nil, errDB)

	w := env.do(http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", decode(t, w)["error"])
}

func TestOrders_List_RequiresUserID(t *testing.T) {
	env := newEnv(t, rest.RouterOptions{})
	w := env.do(http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User ID required", decode(t, w)["error"])
}

func TestOrders_List_NotCached(t *testing.T) {
	env := newEnv(t, rest.RouterOptions{})
	env.orders.EXPECT().ListByUser(gomock.Any(), "u-1").
		Return([]*domain.Order{{ID: "o-1", Items: []domain.OrderItem{}}}, nil).Times(2)

	for i := 0; i < 2; i++ {
		w := env.do(http.MethodGet, "/orders?userId=u-1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode(t, w)["orders"], 1)
	}
}

func TestOrders_Create_MissingItems_NoStoreWrites(t *testing.T) {
	env := newEnv(t, rest.RouterOptions{})
	// ни Create, ни PublishOrderCreated не ожидаются

	for _, body := range []string{
		`{"userId":"u-1","deliveryType":"PICKUP","room":"101"}`,
		`{"userId":"u-1","deliveryType":"PICKUP","room":"101","items":[]}`,
		`{"userId":"u-1","deliveryType":"TELEPORT","room":"101","items":[{"productId":"p","quantity":1,"price":1}]}`,
		`{"deliveryType":"PICKUP","room":"101","items":[{"productId":"p","quantity":1,"price":1}]}`,
		`{"userId":"u-1","deliveryType":"PICKUP","room":"101","items":[{"productId":"p","quantity":0,"price":1}]}`,
	} {
		w := env.do(http.MethodPost, "/orders", body)
		require.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, "Missing required fields", decode(t, w)["error"])
	}
}

func TestOrders_Create_TotalAndEvent(t *testing.T) {
	env := newEnv(t, rest.RouterOptions{})

	env.orders.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, o *domain.Order) (*domain.Order, error) {
			assert.InDelta(t, 250.0, o.TotalAmount, 1e-9)
			assert.Equal(t, domain.OrderPending, o.Status)
			assert.Equal(t, domain.DeliveryDelivery, o.DeliveryType)
			saved := *o
			saved.ID = "o-new"
			saved.User = &domain.User{ID: o.UserID}
			return &saved, nil
		})
	env.publisher.EXPECT().PublishOrderCreated(gomock.Any(), gomock.Any()).Return(errors.New("kafka down"))

	w := env.do(http.MethodPost, "/orders", map[string]any{
		"userId":       "u-1",
		"deliveryType": "DELIVERY",
		"room":         "305",
		"items": []map[string]any{
			{"productId": "p-1", "quantity": 2, "price": 100},
			{"productId": "p-2", "quantity": 1, "price": 50},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	order := decode(t, w)["order"].(map[string]any)
	assert.Equal(t, "o-new", order["id"])
	assert.InDelta(t, 250.0, order["totalAmount"], 1e-9)
	assert.Equal(t, "PENDING", order["status"])
	assert.NotNil(t, order["user"])
}

func TestShopStatus_LazySingleton(t *testing.T) {
	env := newEnv(t, rest.RouterOptions{})

	created := &domain.ShopStatus{ID: "s-1", IsOpen: false}
	env.shop.EXPECT().First(gomock.Any()).Return(nil, nil).Times(1)
	env.shop.EXPECT().Create(gomock.Any(), false).Return(created, nil).Times(1)

	for i := 0; i < 2; i++ {
		w := env.do(http.MethodGet, "/shop-status", nil)
		require.Equal(t, http.StatusOK, w.Code)
		status := decode(t, w)["status"].(map[string]any)
		assert.Equal(t, "s-1", status["id"])
		assert.Equal(t, false, status["isOpen"])
	}
}

func TestShopStatus_Set_InvalidatesCache(t *testing.T) {
	env := newEnv(t, rest.RouterOptions{})

	closed := &domain.ShopStatus{ID: "s-1", IsOpen: false}
	open := &domain.ShopStatus{ID: "s-1", IsOpen: true}
	gomock.InOrder(
		env.shop.EXPECT().First(gomock.Any()).Return(closed, nil),
		env.shop.EXPECT().First(gomock.Any()).Return(closed, nil),
		env.shop.EXPECT().Update(gomock.Any(), "s-1", true).Return(open, nil),
		env.shop.EXPECT().First(gomock.Any()).Return(open, nil),
	)

	w := env.do(http.MethodGet, "/shop-status", nil)
	assert.Equal(t, false, decode(t, w)["status"].(map[string]any)["isOpen"])

	w = env.do(http.MethodPost, "/shop-status", `{"isOpen":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["status"].(map[string]any)["isOpen"])

	w = env.do(http.MethodGet, "/shop-status", nil)
	assert.Equal(t, true, decode(t, w)["status"].(map[string]any)["isOpen"])
}

func TestShopStatus_Set_NonBoolean_400(t *testing.T) {
	env := newEnv(t, rest.RouterOptions{})

	for _, body := range []string{`{"isOpen":"yes"}`, `{"isOpen":1}`, `{}`, `{"isOpen":null}`} {
		w := env.do(http.MethodPost, "/shop-status", body)
		require.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, "Invalid status value", decode(t, w)["error"])
	}
}

func TestAdmin_Dashboard(t *testing.T) {
	env := newEnv(t, rest.RouterOptions{})

	env.users.EXPECT().Count(gomock.Any()).Return(int64(3), nil)
	env.products.EXPECT().Count(gomock.Any()).Return(int64(5), nil)
	env.orders.EXPECT().Count(gomock.Any()).Return(int64(2), nil)
	env.orders.EXPECT().CompletedRevenue(gomock.Any()).Return(450.5, nil)
	env.orders.EXPECT().Recent(gomock.Any(), 10).Return([]*domain.Order{{ID: "o-2"}, {ID: "o-1"}}, nil)
	env.users.EXPECT().ListNewestFirst(gomock.Any()).Return([]*domain.User{{ID: "u-3"}}, nil)

	w := env.do(http.MethodGet, "/admin", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got := decode(t, w)
	stats := got["stats"].(map[string]any)
	assert.EqualValues(t, 3, stats["usersCount"])
	assert.EqualValues(t, 5, stats["productsCount"])
	assert.EqualValues(t, 2, stats["ordersCount"])
	assert.InDelta(t, 450.5, stats["totalRevenue"], 1e-9)
	assert.Len(t, got["recentOrders"], 2)
	assert.Len(t, got["users"], 1)
	assert.Equal(t, true, got["success"])
}

func TestAdmin_Dashboard_StoreError_500(t *testing.T) {
	env := newEnv(t, rest.RouterOptions{})

	env.users.EXPECT().Count(gomock.Any()).Return(int64(0), errDB).AnyTimes()
	env.products.EXPECT().Count(gomock.Any()).Return(int64(0), nil).AnyTimes()
	env.orders.EXPECT().Count(gomock.Any()).Return(int64(0), nil).AnyTimes()
	env.orders.EXPECT().CompletedRevenue(gomock.Any()).Return(0.0, nil).AnyTimes()
	env.orders.EXPECT().Recent(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	env.users.EXPECT().ListNewestFirst(gomock.Any()).Return(nil, nil).AnyTimes()

	w := env.do(http.MethodGet, "/admin", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestWebhook_Info(t *testing.T) {
	env := newEnv(t, rest.RouterOptions{})
	w := env.do(http.MethodGet, "/telegram-webhook", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Telegram webhook endpoint", decode(t, w)["message"])
}

func TestWebhook_MissingMessage_400(t *testing.T) {
	env := newEnv(t, rest.RouterOptions{})
	w := env.do(http.MethodPost, "/telegram-webhook", `{"update_id":1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid message format", decode(t, w)["error"])
}

func webhookBody(text string) string {
	return `{"update_id":1,"message":{"message_id":5,"from":{"id":42,"first_name":"Вася"},"chat":{"id":42,"type":"private"},"date":1700000000,"text":"` + text + `"}}`
}

func TestWebhook_Commands(t *testing.T) {
	env := newEnv(t, rest.RouterOptions{})

	cases := map[string]string{
		"/start":  "Welcome message sent",
		"/help":   "Help message sent",
		"/shop":   "Shop link sent",
		"/hello":  "Unknown command handled",
		"/START ": "Unknown command handled",
	}
	for text, want := range cases {
		w := env.do(http.MethodPost, "/telegram-webhook", webhookBody(text))
		require.Equal(t, http.StatusOK, w.Code, text)
		got := decode(t, w)
		assert.Equal(t, true, got["success"])
		assert.Equal(t, want, got["message"], text)
	}
}

func TestWebhook_StatusReflectsShop(t *testing.T) {
	env := newEnv(t, rest.RouterOptions{})
	env.shop.EXPECT().First(gomock.Any()).Return(&domain.ShopStatus{ID: "s-1", IsOpen: true}, nil)

	w := env.do(http.MethodPost, "/telegram-webhook", webhookBody("/status"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Status message sent: shop is open", decode(t, w)["message"])
}

func TestWebhook_StatusStoreError_500(t *testing.T) {
	env := newEnv(t, rest.RouterOptions{})
	env.shop.EXPECT().First(gomock.Any()).Return(nil, errDB)

	w := env.do(http.MethodPost, "/telegram-webhook", webhookBody("/status"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCORS_Preflight(t *testing.T) {
	env := newEnv(t, rest.RouterOptions{CORSOrigins: []string{"https://mini.example.com"}})

	req := httptest.NewRequest(http.MethodOptions, "/products", http.NoBody)
	req.Header.Set("Origin", "https://mini.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://mini.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
