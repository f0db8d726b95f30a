package domain

import (
	"context"
)

type UserRepository interface {
	GetByTelegramID(ctx context.Context, telegramUserID int64) (*User, error)
	GetByID(ctx context.Context, userID uint) (*User, error)
	Create(ctx context.Context, user *User) error
}

type ItemRepository interface {
	Create(ctx context.Context, item *TrackedItem) error
	ListByUser(ctx context.Context, userID uint) ([]TrackedItem, error)
	ListAll(ctx context.Context) ([]TrackedItem, error)
	Delete(ctx context.Context, userID uint, itemID uint) error
	UpdateSnapshot(ctx context.Context, itemID uint, name string, snapshot ProductSnapshot) error
	IncrementFetchFailures(ctx context.Context, itemID uint) (int, error)
}

// Fetcher retrieves the raw HTML document for a product URL. Implementations
// must bound the request with a timeout so one hung fetch cannot stall the
// monitor loop.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// SiteParser extracts a product snapshot from a raw document. Parsers are pure
// functions of the document: no network, no state.
type SiteParser interface {
	Parse(html string) (*ParsedProduct, error)
}

// ParserRegistry resolves the parser responsible for a product URL or a
// previously resolved site identifier.
type ParserRegistry interface {
	Resolve(rawURL string) (SiteParser, string, error)
	BySite(siteID string) (SiteParser, error)
}
