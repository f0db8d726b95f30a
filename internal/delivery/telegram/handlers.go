package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/matheusmoreno/quichesaver/internal/domain"
	"github.com/matheusmoreno/quichesaver/internal/usecase"
	"go.uber.org/zap"
)

type Handlers struct {
	userUC   *usecase.UserUsecase
	subUC    *usecase.SubscriptionUsecase
	helpText string
	logger   *zap.Logger
}

func NewHandlers(userUC *usecase.UserUsecase, subUC *usecase.SubscriptionUsecase, stores []string, logger *zap.Logger) *Handlers {
	return &Handlers{userUC: userUC, subUC: subUC, helpText: HelpText(stores), logger: logger}
}

func (h *Handlers) HandleUpdate(ctx context.Context, api *tgbotapi.BotAPI, update tgbotapi.Update) {
	if update.Message == nil {
		return
	}
	if update.Message.From == nil {
		return
	}
	if update.Message.IsCommand() {
		h.handleCommand(ctx, api, update)
		return
	}
}

func (h *Handlers) handleCommand(ctx context.Context, api *tgbotapi.BotAPI, update tgbotapi.Update) {
	command := update.Message.Command()
	args := update.Message.CommandArguments()
	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID
	username := update.Message.From.UserName

	h.logger.Info(
		"telegram command received",
		zap.Int64("chat_id", chatID),
		zap.Int64("telegram_user_id", userID),
		zap.String("username", username),
		zap.String("command", command),
		zap.String("args", args),
	)

	switch command {
	case "start":
		_, err := h.userUC.StartOrGetUser(ctx, userID, username)
		if err != nil {
			h.logger.Warn("start command failed", zap.Int64("telegram_user_id", userID), zap.Error(err))
			h.reply(api, chatID, "Failed to register. Please try again.")
			return
		}
		h.logger.Info("start command complete", zap.Int64("telegram_user_id", userID))
		h.reply(api, chatID, "Hi! I'll be your price monitor today.\n\n"+h.helpText)
	case "help":
		h.reply(api, chatID, h.helpText)
	case "ping":
		h.reply(api, chatID, "Pong!")
	case "add":
		url, price, err := ParseAddArgs(args)
		if err != nil {
			h.logger.Warn("add invalid args", zap.Int64("telegram_user_id", userID), zap.String("args", args))
			h.reply(api, chatID, "Usage: /add <link> <target price>\nTip: write the price as XXXXXX,XX or XXXXXX.XX, with no currency symbol.")
			return
		}
		item, err := h.subUC.AddItem(ctx, userID, url, price)
		if err != nil {
			h.logger.Warn("add failed", zap.Int64("telegram_user_id", userID), zap.Error(err))
			h.reply(api, chatID, h.errorMessage(err))
			return
		}
		h.logger.Info("add complete", zap.Int64("telegram_user_id", userID), zap.Uint("item_id", item.ID))
		h.reply(api, chatID, formatAdded(item))
	case "remove":
		itemID, err := ParseItemID(args)
		if err != nil {
			h.logger.Warn("remove invalid args", zap.Int64("telegram_user_id", userID), zap.String("args", args))
			h.reply(api, chatID, "Usage: /remove <item_id>")
			return
		}
		if err := h.subUC.RemoveItem(ctx, userID, itemID); err != nil {
			h.logger.Warn("remove failed", zap.Int64("telegram_user_id", userID), zap.Uint("item_id", itemID), zap.Error(err))
			h.reply(api, chatID, h.errorMessage(err))
			return
		}
		h.logger.Info("remove complete", zap.Int64("telegram_user_id", userID), zap.Uint("item_id", itemID))
		h.reply(api, chatID, fmt.Sprintf("Item #%d removed.", itemID))
	case "status":
		items, err := h.subUC.ListItems(ctx, userID)
		if err != nil {
			h.logger.Warn("status failed", zap.Int64("telegram_user_id", userID), zap.Error(err))
			h.reply(api, chatID, h.errorMessage(err))
			return
		}
		if len(items) == 0 {
			h.reply(api, chatID, "You're not monitoring anything yet. Use /add to track a product.")
			return
		}
		h.logger.Info("status complete", zap.Int64("telegram_user_id", userID), zap.Int("count", len(items)))
		h.reply(api, chatID, formatStatus(items))
	default:
		h.logger.Warn("unknown command", zap.Int64("telegram_user_id", userID), zap.String("command", command))
		h.reply(api, chatID, "I don't know what you want me to do.\n\n"+h.helpText)
	}
}

func (h *Handlers) errorMessage(err error) string {
	switch {
	case errors.Is(err, usecase.ErrUserNotRegistered):
		return "Please /start to register first."
	case errors.Is(err, domain.ErrUnsupportedSite):
		return "I can't monitor that store. Use /help to see the supported ones."
	case errors.Is(err, domain.ErrDuplicateSubscription):
		return "You're already monitoring that link."
	case errors.Is(err, usecase.ErrInvalidTargetPrice):
		return "Invalid price. Write it as XXXXXX,XX or XXXXXX.XX, with no currency symbol."
	case errors.Is(err, usecase.ErrItemNotFound):
		return "Item not found. Did you pass the right item ID? Check /status."
	}

	h.logger.Warn("unhandled error", zap.Error(err))
	return "Something went wrong. Please try again."
}

func formatAdded(item *domain.TrackedItem) string {
	name := item.Name
	if name == "" {
		name = item.URL
	}
	target := ""
	if item.TargetPrice != nil {
		target = fmt.Sprintf(" I'll warn you when the price drops below R$ %s.", item.TargetPrice.StringFixed(2))
	}
	return fmt.Sprintf("Ok, I'm now monitoring %s at %s (item #%d).%s", name, item.SiteID, item.ID, target)
}

func formatStatus(items []domain.TrackedItem) string {
	var builder strings.Builder
	builder.WriteString("I'm currently monitoring the following items:\n\n")
	for _, item := range items {
		name := item.Name
		if name == "" {
			name = item.URL
		}
		builder.WriteString(fmt.Sprintf("#%d %s at %s\n", item.ID, name, item.SiteID))
		switch {
		case item.LastSnapshot == nil:
			builder.WriteString("Not checked yet\n\n")
		case !item.LastSnapshot.Available || item.LastSnapshot.Price == nil:
			builder.WriteString("Currently unavailable\n\n")
		default:
			builder.WriteString(fmt.Sprintf("Current price: R$ %s\n\n", item.LastSnapshot.Price.StringFixed(2)))
		}
	}
	return builder.String()
}

func (h *Handlers) reply(api *tgbotapi.BotAPI, chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := api.Send(msg); err != nil {
		h.logger.Warn("failed to send message", zap.Error(err))
	}
}
