package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Gunvolt24/fiveka-shop/internal/domain"
	"github.com/Gunvolt24/fiveka-shop/internal/ports"
	"github.com/Gunvolt24/fiveka-shop/internal/usecase"
	"github.com/gin-gonic/gin"
)

// Сообщения об ошибках, которые видит клиент Mini App.
const (
	msgMissingFields   = "Missing required fields"
	msgUserIDRequired  = "User ID required"
	msgInvalidTgUser   = "Invalid telegram user data"
	msgInvalidStatus   = "Invalid status value"
	msgInvalidMessage  = "Invalid message format"
	msgInternalError   = "Internal server error"
	msgWebhookEndpoint = "Telegram webhook endpoint"
)

type AuthService interface {
	Authenticate(ctx context.Context, identity domain.TelegramIdentity) (*domain.User, bool, error)
}

type CatalogService interface {
	Categories(ctx context.Context) ([]string, error)
	Products(ctx context.Context, category string) ([]*domain.Product, error)
	CreateProduct(ctx context.Context, draft domain.ProductDraft) (*domain.Product, error)
}

type ShopService interface {
	Status(ctx context.Context) (*domain.ShopStatus, error)
	SetStatus(ctx context.Context, isOpen bool) (*domain.ShopStatus, error)
}

type OrderService interface {
	Create(ctx context.Context, draft domain.OrderDraft) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
}

type AdminService interface {
	Dashboard(ctx context.Context) (*domain.Dashboard, error)
}

type BotService interface {
	Handle(ctx context.Context, msg domain.BotMessage) (domain.BotReply, error)
}

// Services — сервисы, которые обслуживает HTTP-слой.
type Services struct {
	Auth    AuthService
	Catalog CatalogService
	Shop    ShopService
	Orders  OrderService
	Admin   AdminService
	Bot     BotService
}

type Handler struct {
	auth    AuthService
	catalog CatalogService
	shop    ShopService
	orders  OrderService
	admin   AdminService
	bot     BotService
	log     ports.Logger
	timeout time.Duration
}

// NewHandler — timeout <= 0 отключает ограничение времени обработки запроса.
func NewHandler(svc Services, log ports.Logger, timeout time.Duration) *Handler {
	return &Handler{
		auth:    svc.Auth,
		catalog: svc.Catalog,
		shop:    svc.Shop,
		orders:  svc.Orders,
		admin:   svc.Admin,
		bot:     svc.Bot,
		log:     log,
		timeout: timeout,
	}
}

func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// fail — ErrValidation из сервисов превращается в 400 с текстом ошибки, остальное в 500.
func (h *Handler) fail(ctx context.Context, c *gin.Context, op string, err error) {
	if errors.Is(err, usecase.ErrValidation) {
		badRequest(c, err.Error())
		return
	}
	h.log.Errorf(ctx, "%s failed: %v", op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternalError})
}
