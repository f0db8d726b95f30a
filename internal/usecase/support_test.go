package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/matheusmoreno/quichesaver/internal/domain"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User)}
}

func (r *fakeUserRepo) GetByTelegramID(_ context.Context, telegramUserID int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[telegramUserID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID uint) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ID == userID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = r.nextID
	copied := *user
	r.users[user.TelegramUserID] = &copied
	return nil
}

type fakeItemRepo struct {
	mu     sync.Mutex
	nextID uint
	items  map[uint]*domain.TrackedItem
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[uint]*domain.TrackedItem)}
}

func (r *fakeItemRepo) Create(_ context.Context, item *domain.TrackedItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.UserID == item.UserID && existing.URL == item.URL {
			return domain.ErrDuplicateSubscription
		}
	}
	r.nextID++
	item.ID = r.nextID
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeItemRepo) ListByUser(_ context.Context, userID uint) ([]domain.TrackedItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []domain.TrackedItem
	for _, item := range r.items {
		if item.UserID == userID {
			items = append(items, *item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *fakeItemRepo) ListAll(_ context.Context) ([]domain.TrackedItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]domain.TrackedItem, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *fakeItemRepo) Delete(_ context.Context, userID uint, itemID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok || item.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.items, itemID)
	return nil
}

func (r *fakeItemRepo) UpdateSnapshot(_ context.Context, itemID uint, name string, snapshot domain.ProductSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok {
		return domain.ErrNotFound
	}
	copied := snapshot
	item.LastSnapshot = &copied
	item.FetchFailures = 0
	if name != "" {
		item.Name = name
	}
	return nil
}

func (r *fakeItemRepo) IncrementFetchFailures(_ context.Context, itemID uint) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	item.FetchFailures++
	return item.FetchFailures, nil
}

func (r *fakeItemRepo) get(itemID uint) (domain.TrackedItem, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok {
		return domain.TrackedItem{}, false
	}
	return *item, true
}

type fakeFetcher struct {
	mu      sync.Mutex
	times   []time.Time
	respond func(url string) (string, error)
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.mu.Lock()
	f.times = append(f.times, time.Now())
	f.mu.Unlock()
	if f.respond == nil {
		return "", nil
	}
	return f.respond(url)
}

func (f *fakeFetcher) fetchTimes() []time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Time(nil), f.times...)
}

// scriptedParser returns its queued results in order; the final result
// repeats once the script is exhausted.
type scriptedParser struct {
	mu      sync.Mutex
	results []parseResult
}

type parseResult struct {
	product *domain.ParsedProduct
	err     error
}

func (p *scriptedParser) Parse(string) (*domain.ParsedProduct, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.results) == 0 {
		return nil, &domain.ParseError{Site: "fake", Reason: domain.ParseElementNotFound}
	}
	next := p.results[0]
	if len(p.results) > 1 {
		p.results = p.results[1:]
	}
	return next.product, next.err
}

type fakeRegistry struct {
	parser domain.SiteParser
	siteID string
}

func (r *fakeRegistry) Resolve(rawURL string) (domain.SiteParser, string, error) {
	if rawURL == "" || r.parser == nil {
		return nil, "", domain.ErrUnsupportedSite
	}
	return r.parser, r.siteID, nil
}

func (r *fakeRegistry) BySite(siteID string) (domain.SiteParser, error) {
	if r.parser == nil || siteID != r.siteID {
		return nil, domain.ErrUnsupportedSite
	}
	return r.parser, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	err    error
	events []domain.NotificationEvent
}

func (n *fakeNotifier) Notify(event domain.NotificationEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return n.err
}

func (n *fakeNotifier) byKind(kind domain.EventKind) []domain.NotificationEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []domain.NotificationEvent
	for _, event := range n.events {
		if event.Kind == kind {
			out = append(out, event)
		}
	}
	return out
}
