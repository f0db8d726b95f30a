package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/matheusmoreno/quichesaver/internal/domain"
	"go.uber.org/zap"
)

// Notifier renders monitor events into chat messages and delivers them.
// Delivery failures are returned for the caller to log; they never affect
// tracking state.
type Notifier struct {
	api    *tgbotapi.BotAPI
	logger *zap.Logger
}

func NewNotifier(api *tgbotapi.BotAPI, logger *zap.Logger) *Notifier {
	return &Notifier{api: api, logger: logger}
}

func (n *Notifier) Notify(event domain.NotificationEvent) error {
	text := renderEvent(event)
	n.logger.Info(
		"telegram notify send",
		zap.Int64("telegram_user_id", event.TelegramUserID),
		zap.Uint("item_id", event.ItemID),
		zap.String("kind", string(event.Kind)),
	)
	msg := tgbotapi.NewMessage(event.TelegramUserID, text)
	if _, err := n.api.Send(msg); err != nil {
		n.logger.Warn("failed to notify", zap.Error(err))
		return err
	}
	return nil
}

func renderEvent(event domain.NotificationEvent) string {
	name := event.ItemName
	if name == "" {
		name = event.URL
	}

	switch event.Kind {
	case domain.EventBackInStock:
		if event.Snapshot.Price != nil {
			return fmt.Sprintf("The product %s is back in stock, costing R$ %s. %s",
				name, event.Snapshot.Price.StringFixed(2), event.URL)
		}
		return fmt.Sprintf("The product %s is back in stock. %s", name, event.URL)
	case domain.EventPriceDropped:
		price := "?"
		if event.Snapshot.Price != nil {
			price = event.Snapshot.Price.StringFixed(2)
		}
		return fmt.Sprintf("Hey!! The item %s is now costing R$ %s! Go buy it! %s",
			name, price, event.URL)
	case domain.EventFetchFailing:
		return fmt.Sprintf("I'm having trouble checking %s: the last few checks failed in a row. "+
			"The link may be broken or the store may be blocking me. I'll keep trying. %s", name, event.URL)
	default:
		return fmt.Sprintf("Update on %s: %s", name, event.URL)
	}
}
