package rest

import (
	"net/http"
	"time"

	"github.com/Gunvolt24/fiveka-shop/pkg/httpx"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type RouterOptions struct {
	// OTelServiceName — имя сервиса для otelgin; пусто — middleware не подключается.
	OTelServiceName string
	// CORSOrigins — разрешённые origin фронтенда Mini App; пусто — CORS не настраивается.
	CORSOrigins []string
	// VerifyInitData — требовать подписанные init-data на /auth.
	VerifyInitData bool
	BotToken       string
	InitDataMaxAge time.Duration
}

func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	if opts.OTelServiceName != "" {
		r.Use(otelgin.Middleware(opts.OTelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))
	if len(opts.CORSOrigins) > 0 {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = opts.CORSOrigins
		cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
		cfg.AllowHeaders = []string{"Content-Type", "Accept", httpx.HeaderRequestID, HeaderInitData}
		cfg.ExposeHeaders = []string{httpx.HeaderRequestID}
		r.Use(cors.New(cfg))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := []gin.HandlerFunc{h.authenticate}
	if opts.VerifyInitData {
		auth = append([]gin.HandlerFunc{InitDataMiddleware(opts.BotToken, opts.InitDataMaxAge, h.log)}, auth...)
	}
	r.POST("/auth", auth...)

	r.GET("/categories", h.listCategories)
	r.GET("/products", h.listProducts)
	r.POST("/products", h.createProduct)
	r.GET("/orders", h.listOrders)
	r.POST("/orders", h.createOrder)
	r.GET("/shop-status", h.getShopStatus)
	r.POST("/shop-status", h.setShopStatus)
	r.GET("/admin", h.dashboard)
	r.GET("/telegram-webhook", h.telegramWebhookInfo)
	r.POST("/telegram-webhook", h.telegramWebhook)

	return r
}
