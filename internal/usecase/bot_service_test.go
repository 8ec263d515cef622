package usecase_test

import (
	"context"
	"testing"

	"github.com/Gunvolt24/fiveka-shop/internal/domain"
	"github.com/Gunvolt24/fiveka-shop/internal/ports/mocks"
	"github.com/Gunvolt24/fiveka-shop/internal/usecase"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBot(t *testing.T, isOpen bool) *usecase.BotService {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockShopStatusRepository(ctrl)
	repo.EXPECT().First(gomock.Any()).Return(&domain.ShopStatus{ID: "s-1", IsOpen: isOpen}, nil).AnyTimes()
	c, _ := newMemoryCache()
	return usecase.NewBotService(usecase.NewShopService(repo, c, noopLogger{}), "https://shop.example.com/", noopLogger{})
}

func TestBot_Commands(t *testing.T) {
	bot := newBot(t, false)
	ctx := context.Background()

	tests := []struct {
		text        string
		description string
		contains    string
	}{
		{"/start", "Welcome message sent", "https://shop.example.com"},
		{"/help", "Help message sent", "/status - Статус магазина"},
		{"/shop", "Shop link sent", "https://shop.example.com?tg_user_id=42"},
		{"/status", "Status message sent: shop is closed", "Закрыт"},
		{"/buy", "Unknown command handled", "Неизвестная команда: /buy"},
		{"", "Unknown command handled", "Неизвестная команда"},
	}
	for _, tt := range tests {
		reply, err := bot.Handle(ctx, domain.BotMessage{SenderID: 42, ChatID: 42, Text: tt.text})
		require.NoError(t, err, tt.text)
		assert.Equal(t, tt.description, reply.Description, tt.text)
		assert.Contains(t, reply.Text, tt.contains, tt.text)
	}
}

func TestBot_StatusReflectsOpenShop(t *testing.T) {
	reply, err := newBot(t, true).Handle(context.Background(), domain.BotMessage{SenderID: 1, Text: "/status"})
	require.NoError(t, err)
	assert.Equal(t, "Status message sent: shop is open", reply.Description)
	assert.Contains(t, reply.Text, "Открыт")
}

func TestBot_StatusStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockShopStatusRepository(ctrl)
	repo.EXPECT().First(gomock.Any()).Return(nil, errStore)
	c, _ := newMemoryCache()

	bot := usecase.NewBotService(usecase.NewShopService(repo, c, noopLogger{}), "", noopLogger{})
	_, err := bot.Handle(context.Background(), domain.BotMessage{Text: "/status"})
	assert.ErrorIs(t, err, errStore)
}

func TestBot_DefaultWebAppURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	c, _ := newMemoryCache()
	bot := usecase.NewBotService(usecase.NewShopService(mocks.NewMockShopStatusRepository(ctrl), c, noopLogger{}), "", noopLogger{})

	reply, err := bot.Handle(context.Background(), domain.BotMessage{SenderID: 7, Text: "/shop"})
	require.NoError(t, err)
	assert.Contains(t, reply.Text, usecase.DefaultWebAppURL+"?tg_user_id=7")
}
