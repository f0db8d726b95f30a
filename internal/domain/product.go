package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductSnapshot is a single point-in-time observation of a product page.
// A nil Price means no purchasable price was observed (typically because the
// item is out of stock). Snapshots are values and never mutated after creation.
type ProductSnapshot struct {
	Price      *decimal.Decimal
	Available  bool
	ObservedAt time.Time
}

// TrackedItem is a subscriber's standing request to monitor one product URL.
// LastSnapshot is replaced wholesale by the monitor each successful poll.
type TrackedItem struct {
	ID             uint
	UserID         uint
	TelegramUserID int64
	URL            string
	SiteID         string
	Name           string
	TargetPrice    *decimal.Decimal
	LastSnapshot   *ProductSnapshot
	FetchFailures  int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ParsedProduct is the successful output of a site parser.
type ParsedProduct struct {
	Name     string
	Snapshot ProductSnapshot
}

type EventKind string

const (
	EventPriceDropped EventKind = "price_dropped"
	EventBackInStock  EventKind = "back_in_stock"
	EventFetchFailing EventKind = "fetch_failing"
)

// NotificationEvent is emitted by the monitor on a qualifying transition and
// consumed exactly once by the notifier. It is not persisted.
type NotificationEvent struct {
	ItemID         uint
	TelegramUserID int64
	Kind           EventKind
	ItemName       string
	URL            string
	Snapshot       ProductSnapshot
	TargetPrice    *decimal.Decimal
}
