package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gunvolt24/fiveka-shop/internal/domain"
	"github.com/Gunvolt24/fiveka-shop/internal/ports"
)

// Команды бота (точное совпадение текста).
const (
	CommandStart  = "/start"
	CommandHelp   = "/help"
	CommandShop   = "/shop"
	CommandStatus = "/status"
)

// DefaultWebAppURL — адрес Mini App, если он не задан конфигурацией.
const DefaultWebAppURL = "http://localhost:3000"

// shopStatusReader — источник статуса для команды /status.
type shopStatusReader interface {
	Status(ctx context.Context) (*domain.ShopStatus, error)
}

// BotService разбирает команды из вебхука и формирует ответы.
// Ответ только логируется, в Telegram ничего не отправляется.
type BotService struct {
	shop      shopStatusReader
	webAppURL string
	log       ports.Logger
}

func NewBotService(shop shopStatusReader, webAppURL string, log ports.Logger) *BotService {
	if webAppURL == "" {
		webAppURL = DefaultWebAppURL
	}
	return &BotService{shop: shop, webAppURL: strings.TrimRight(webAppURL, "/"), log: log}
}

// Handle — ответ на сообщение. Неизвестная команда — не ошибка.
func (s *BotService) Handle(ctx context.Context, msg domain.BotMessage) (domain.BotReply, error) {
	var reply domain.BotReply

	switch msg.Text {
	case CommandStart:
		reply = domain.BotReply{Description: "Welcome message sent", Text: s.welcomeText()}
	case CommandHelp:
		reply = domain.BotReply{Description: "Help message sent", Text: helpText}
	case CommandShop:
		reply = domain.BotReply{Description: "Shop link sent", Text: s.shopText(msg.SenderID)}
	case CommandStatus:
		status, err := s.shop.Status(ctx)
		if err != nil {
			return domain.BotReply{}, err
		}
		reply = statusReply(status.IsOpen)
	default:
		reply = domain.BotReply{Description: "Unknown command handled", Text: unknownText(msg.Text)}
	}

	s.log.Infof(ctx, "bot reply user=%d chat=%d command=%q: %s", msg.SenderID, msg.ChatID, msg.Text, reply.Text)
	return reply, nil
}

const helpText = `📚 Доступные команды:

/start - Начать работу с ботом
/help - Показать эту справку
/shop - Открыть магазин
/status - Статус магазина`

func (s *BotService) welcomeText() string {
	return fmt.Sprintf(`🎉 Добро пожаловать в Fiveka Shop!

Для доступа к магазину перейдите по ссылке:
%s

Используйте команду /help для получения справки.`, s.webAppURL)
}

func (s *BotService) shopText(userID int64) string {
	return fmt.Sprintf(`🛍️ Открыть магазин:

%s?tg_user_id=%d

Нажмите на ссылку выше, чтобы перейти в магазин.`, s.webAppURL, userID)
}

func statusReply(isOpen bool) domain.BotReply {
	if isOpen {
		return domain.BotReply{
			Description: "Status message sent: shop is open",
			Text:        "🏪 Статус магазина:\n\n🟢 Открыт\n\nВы можете делать заказы прямо сейчас!",
		}
	}
	return domain.BotReply{
		Description: "Status message sent: shop is closed",
		Text:        "🏪 Статус магазина:\n\n🔴 Закрыт\n\nМагазин временно закрыт. Попробуйте позже.",
	}
}

func unknownText(text string) string {
	return fmt.Sprintf("❓ Неизвестная команда: %s\n\nИспользуйте /help для получения списка доступных команд.", text)
}
