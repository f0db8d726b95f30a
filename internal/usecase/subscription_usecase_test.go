package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/matheusmoreno/quichesaver/internal/domain"
	"go.uber.org/zap"
)

func registeredUser(t *testing.T, users *fakeUserRepo) int64 {
	t.Helper()
	const telegramID = int64(42)
	if err := users.Create(context.Background(), &domain.User{TelegramUserID: telegramID}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return telegramID
}

func newTestSubscription(users *fakeUserRepo, items *fakeItemRepo, p domain.SiteParser, fetcher *fakeFetcher) *SubscriptionUsecase {
	registry := &fakeRegistry{parser: p, siteID: testSite}
	return NewSubscriptionUsecase(users, items, registry, fetcher, zap.NewNop())
}

func TestAddItemSeedsSnapshot(t *testing.T) {
	users := newFakeUserRepo()
	telegramID := registeredUser(t, users)
	items := newFakeItemRepo()
	parser := &scriptedParser{results: []parseResult{observation("199.90", true)}}
	uc := newTestSubscription(users, items, parser, &fakeFetcher{})

	item, err := uc.AddItem(context.Background(), telegramID, "https://fake.com.br/p/1", "150,00")
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if item.Name != "Widget" {
		t.Errorf("name = %q, want Widget", item.Name)
	}
	if item.SiteID != testSite {
		t.Errorf("site = %q, want %q", item.SiteID, testSite)
	}
	if item.LastSnapshot == nil || !item.LastSnapshot.Price.Equal(dec("199.90")) {
		t.Error("first snapshot not seeded")
	}
	if item.TargetPrice == nil || !item.TargetPrice.Equal(dec("150")) {
		t.Errorf("target = %v, want 150 (comma decimal accepted)", item.TargetPrice)
	}
}

func TestAddItemAcceptedWhenFirstFetchFails(t *testing.T) {
	users := newFakeUserRepo()
	telegramID := registeredUser(t, users)
	items := newFakeItemRepo()
	fetcher := &fakeFetcher{respond: func(string) (string, error) {
		return "", &domain.FetchError{Kind: domain.FetchTimeout, URL: "x"}
	}}
	uc := newTestSubscription(users, items, &scriptedParser{}, fetcher)

	item, err := uc.AddItem(context.Background(), telegramID, "https://fake.com.br/p/1", "150")
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if item.LastSnapshot != nil {
		t.Error("expected no snapshot after failed first fetch")
	}
	if _, ok := items.get(item.ID); !ok {
		t.Error("item not persisted despite failed first fetch")
	}
}

func TestAddItemRejectsUnsupportedStore(t *testing.T) {
	users := newFakeUserRepo()
	telegramID := registeredUser(t, users)
	items := newFakeItemRepo()
	uc := NewSubscriptionUsecase(users, items, &fakeRegistry{}, &fakeFetcher{}, zap.NewNop())

	_, err := uc.AddItem(context.Background(), telegramID, "https://unknown-store.com/p/1", "150")
	if !errors.Is(err, domain.ErrUnsupportedSite) {
		t.Errorf("error = %v, want ErrUnsupportedSite", err)
	}
	if all, _ := items.ListAll(context.Background()); len(all) != 0 {
		t.Error("unsupported store must be rejected before anything is stored")
	}
}

func TestAddItemRejectsDuplicate(t *testing.T) {
	users := newFakeUserRepo()
	telegramID := registeredUser(t, users)
	items := newFakeItemRepo()
	parser := &scriptedParser{results: []parseResult{observation("199.90", true)}}
	uc := newTestSubscription(users, items, parser, &fakeFetcher{})

	if _, err := uc.AddItem(context.Background(), telegramID, "https://fake.com.br/p/1", "150"); err != nil {
		t.Fatalf("first AddItem: %v", err)
	}
	_, err := uc.AddItem(context.Background(), telegramID, "https://fake.com.br/p/1", "120")
	if !errors.Is(err, domain.ErrDuplicateSubscription) {
		t.Errorf("error = %v, want ErrDuplicateSubscription", err)
	}
}

func TestAddItemValidatesTargetPrice(t *testing.T) {
	users := newFakeUserRepo()
	telegramID := registeredUser(t, users)
	items := newFakeItemRepo()
	parser := &scriptedParser{results: []parseResult{observation("199.90", true)}}
	uc := newTestSubscription(users, items, parser, &fakeFetcher{})

	for _, price := range []string{"abc", "", "-10", "0", "R$ 10"} {
		if _, err := uc.AddItem(context.Background(), telegramID, "https://fake.com.br/p/1", price); !errors.Is(err, ErrInvalidTargetPrice) {
			t.Errorf("AddItem with price %q: error = %v, want ErrInvalidTargetPrice", price, err)
		}
	}
}

func TestAddItemRequiresRegistration(t *testing.T) {
	uc := newTestSubscription(newFakeUserRepo(), newFakeItemRepo(), &scriptedParser{}, &fakeFetcher{})
	_, err := uc.AddItem(context.Background(), 7, "https://fake.com.br/p/1", "150")
	if !errors.Is(err, ErrUserNotRegistered) {
		t.Errorf("error = %v, want ErrUserNotRegistered", err)
	}
}

func TestRemoveItem(t *testing.T) {
	users := newFakeUserRepo()
	telegramID := registeredUser(t, users)
	items := newFakeItemRepo()
	parser := &scriptedParser{results: []parseResult{observation("199.90", true)}}
	uc := newTestSubscription(users, items, parser, &fakeFetcher{})

	item, err := uc.AddItem(context.Background(), telegramID, "https://fake.com.br/p/1", "150")
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if err := uc.RemoveItem(context.Background(), telegramID, item.ID); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if err := uc.RemoveItem(context.Background(), telegramID, item.ID); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("second remove: error = %v, want ErrItemNotFound", err)
	}
}

func TestListItemsOnlyOwn(t *testing.T) {
	users := newFakeUserRepo()
	telegramID := registeredUser(t, users)
	if err := users.Create(context.Background(), &domain.User{TelegramUserID: 99}); err != nil {
		t.Fatal(err)
	}
	items := newFakeItemRepo()
	parser := &scriptedParser{results: []parseResult{observation("199.90", true)}}
	uc := newTestSubscription(users, items, parser, &fakeFetcher{})

	if _, err := uc.AddItem(context.Background(), telegramID, "https://fake.com.br/p/1", "150"); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.AddItem(context.Background(), 99, "https://fake.com.br/p/2", "80"); err != nil {
		t.Fatal(err)
	}

	listed, err := uc.ListItems(context.Background(), telegramID)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("listed %d items, want 1", len(listed))
	}
}
