package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/matheusmoreno/quichesaver/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrUserNotRegistered  = errors.New("user not registered")
	ErrInvalidTargetPrice = errors.New("invalid target price")
	ErrItemNotFound       = errors.New("item not found")
)

type SubscriptionUsecase struct {
	users    domain.UserRepository
	items    domain.ItemRepository
	registry domain.ParserRegistry
	fetcher  domain.Fetcher
	logger   *zap.Logger
}

func NewSubscriptionUsecase(users domain.UserRepository, items domain.ItemRepository, registry domain.ParserRegistry, fetcher domain.Fetcher, logger *zap.Logger) *SubscriptionUsecase {
	return &SubscriptionUsecase{users: users, items: items, registry: registry, fetcher: fetcher, logger: logger}
}

// AddItem subscribes a user to a product URL. An unsupported store is
// rejected here, at subscription time, never at poll time. The first fetch
// runs immediately so the confirmation can carry the product name and the
// comparison baseline; if it fails the subscription still stands and the
// monitor retries on its next pass.
func (u *SubscriptionUsecase) AddItem(ctx context.Context, telegramUserID int64, rawURL, rawTarget string) (*domain.TrackedItem, error) {
	user, err := u.users.GetByTelegramID(ctx, telegramUserID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, ErrUserNotRegistered
		}
		return nil, err
	}

	target, err := parseTargetPrice(rawTarget)
	if err != nil {
		return nil, ErrInvalidTargetPrice
	}

	siteParser, siteID, err := u.registry.Resolve(rawURL)
	if err != nil {
		return nil, err
	}

	item := &domain.TrackedItem{
		UserID:         user.ID,
		TelegramUserID: telegramUserID,
		URL:            strings.TrimSpace(rawURL),
		SiteID:         siteID,
		TargetPrice:    &target,
	}

	if html, err := u.fetcher.Fetch(ctx, item.URL); err != nil {
		u.logger.Warn("initial fetch failed", zap.String("url", item.URL), zap.Error(err))
	} else if parsed, err := siteParser.Parse(html); err != nil {
		u.logger.Warn("initial parse failed", zap.String("url", item.URL), zap.Error(err))
	} else {
		item.Name = parsed.Name
		item.LastSnapshot = &parsed.Snapshot
	}

	if err := u.items.Create(ctx, item); err != nil {
		return nil, err
	}

	u.logger.Info(
		"item tracked",
		zap.Uint("item_id", item.ID),
		zap.String("site", item.SiteID),
		zap.Int64("telegram_user_id", telegramUserID),
	)
	return item, nil
}

func (u *SubscriptionUsecase) ListItems(ctx context.Context, telegramUserID int64) ([]domain.TrackedItem, error) {
	user, err := u.users.GetByTelegramID(ctx, telegramUserID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, ErrUserNotRegistered
		}
		return nil, err
	}

	return u.items.ListByUser(ctx, user.ID)
}

func (u *SubscriptionUsecase) RemoveItem(ctx context.Context, telegramUserID int64, itemID uint) error {
	user, err := u.users.GetByTelegramID(ctx, telegramUserID)
	if err != nil {
		if err == domain.ErrNotFound {
			return ErrUserNotRegistered
		}
		return err
	}

	if err := u.items.Delete(ctx, user.ID, itemID); err != nil {
		if err == domain.ErrNotFound {
			return ErrItemNotFound
		}
		return err
	}

	return nil
}

// parseTargetPrice accepts "1234.56" and "1234,56"; no currency sign, no
// thousands separators.
func parseTargetPrice(raw string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	value, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, err
	}
	if value.IsNegative() || value.IsZero() {
		return decimal.Zero, ErrInvalidTargetPrice
	}
	return value, nil
}
