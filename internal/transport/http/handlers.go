package rest

import (
	"net/http"

	"github.com/Gunvolt24/fiveka-shop/internal/domain"
	"github.com/gin-gonic/gin"
	tele "gopkg.in/telebot.v3"
)

// POST /auth
func (h *Handler) authenticate(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	identity, verified := verifiedIdentity(c)
	if !verified {
		var req authRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.TelegramUser == nil || req.TelegramUser.ID == 0 {
			badRequest(c, msgInvalidTgUser)
			return
		}
		identity = domain.TelegramIdentity{
			ID:        req.TelegramUser.ID,
			Username:  req.TelegramUser.Username,
			FirstName: req.TelegramUser.FirstName,
			LastName:  req.TelegramUser.LastName,
		}
	}

	user, isAdmin, err := h.auth.Authenticate(ctx, identity)
	if err != nil {
		h.fail(ctx, c, "Authenticate", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "isAdmin": isAdmin, "success": true})
}

// GET /categories
func (h *Handler) listCategories(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	categories, err := h.catalog.Categories(ctx)
	if err != nil {
		h.fail(ctx, c, "Categories", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories, "success": true})
}

// GET /products?category=
func (h *Handler) listProducts(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	category := c.Query("category")
	products, err := h.catalog.Products(ctx, category)
	if err != nil {
		h.fail(ctx, c, "Products category="+category, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "success": true})
}

// POST /products
func (h *Handler) createProduct(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgMissingFields)
		return
	}

	product, err := h.catalog.CreateProduct(ctx, req.draft())
	if err != nil {
		h.fail(ctx, c, "CreateProduct", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product, "success": true})
}

// GET /orders?userId=
func (h *Handler) listOrders(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	userID := c.Query("userId")
	if userID == "" {
		badRequest(c, msgUserIDRequired)
		return
	}

	orders, err := h.orders.ListByUser(ctx, userID)
	if err != nil {
		h.fail(ctx, c, "ListByUser user_id="+userID, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "success": true})
}

// POST /orders
func (h *Handler) createOrder(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgMissingFields)
		return
	}

	order, err := h.orders.Create(ctx, req.draft())
	if err != nil {
		h.fail(ctx, c, "CreateOrder", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order, "success": true})
}

// GET /shop-status
func (h *Handler) getShopStatus(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	status, err := h.shop.Status(ctx)
	if err != nil {
		h.fail(ctx, c, "ShopStatus", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "success": true})
}

// POST /shop-status
func (h *Handler) setShopStatus(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	var req shopStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgInvalidStatus)
		return
	}

	status, err := h.shop.SetStatus(ctx, *req.IsOpen)
	if err != nil {
		h.fail(ctx, c, "SetShopStatus", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "success": true})
}

// GET /admin: без проверки прав, как и вся админка Mini App.
func (h *Handler) dashboard(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	d, err := h.admin.Dashboard(ctx)
	if err != nil {
		h.fail(ctx, c, "Dashboard", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"stats":        d.Stats,
		"recentOrders": d.RecentOrders,
		"users":        d.Users,
		"success":      true,
	})
}

// POST /telegram-webhook
func (h *Handler) telegramWebhook(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	var upd tele.Update
	if err := c.ShouldBindJSON(&upd); err != nil || upd.Message == nil {
		badRequest(c, msgInvalidMessage)
		return
	}

	msg := domain.BotMessage{Text: upd.Message.Text}
	if upd.Message.Sender != nil {
		msg.SenderID = upd.Message.Sender.ID
	}
	if upd.Message.Chat != nil {
		msg.ChatID = upd.Message.Chat.ID
	}

	reply, err := h.bot.Handle(ctx, msg)
	if err != nil {
		h.fail(ctx, c, "TelegramWebhook", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": reply.Description})
}

// GET /telegram-webhook
func (h *Handler) telegramWebhookInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": msgWebhookEndpoint})
}
