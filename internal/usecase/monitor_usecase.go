package usecase

import (
	"context"
	"time"

	"github.com/matheusmoreno/quichesaver/internal/domain"
	"go.uber.org/zap"
)

type Notifier interface {
	Notify(event domain.NotificationEvent) error
}

type MonitorConfig struct {
	// MonitorInterval separates full passes over the tracked set.
	MonitorInterval time.Duration
	// ItemInterval is the minimum spacing between consecutive fetches, a
	// politeness delay against store rate limiting. It is enforced as
	// spacing between fetch starts, so slow parsing never shrinks it.
	ItemInterval time.Duration
	// MaxFetchFailures is the consecutive failure count at which the
	// subscriber is told their item cannot be checked. Zero disables the
	// report; the item is retried forever either way.
	MaxFetchFailures int
	// RemoveOnMatch deletes an item once its price target is hit.
	RemoveOnMatch bool
}

// Monitor is the polling loop: one sequential worker that walks every tracked
// item, fetches and parses its page, compares against the last snapshot and
// notifies on qualifying transitions. Fetching is deliberately not parallel;
// the politeness spacing is the whole point.
type Monitor struct {
	items    domain.ItemRepository
	registry domain.ParserRegistry
	fetcher  domain.Fetcher
	notifier Notifier
	cfg      MonitorConfig
	logger   *zap.Logger

	lastFetch time.Time
}

func NewMonitor(items domain.ItemRepository, registry domain.ParserRegistry, fetcher domain.Fetcher, notifier Notifier, cfg MonitorConfig, logger *zap.Logger) *Monitor {
	return &Monitor{
		items:    items,
		registry: registry,
		fetcher:  fetcher,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled. Cancellation is honored between items,
// so shutdown latency is bounded by a single fetch+parse.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info(
		"monitor loop started",
		zap.Duration("monitor_interval", m.cfg.MonitorInterval),
		zap.Duration("item_interval", m.cfg.ItemInterval),
	)

	for {
		m.pass(ctx)
		if err := sleepCtx(ctx, m.cfg.MonitorInterval); err != nil {
			m.logger.Info("monitor loop stopped")
			return nil
		}
	}
}

func (m *Monitor) pass(ctx context.Context) {
	items, err := m.items.ListAll(ctx)
	if err != nil {
		m.logger.Error("failed to list tracked items", zap.Error(err))
		return
	}

	for _, item := range items {
		if ctx.Err() != nil {
			return
		}
		if err := m.waitTurn(ctx); err != nil {
			return
		}
		m.checkItem(ctx, item)
	}
}

// waitTurn sleeps whatever remains of ItemInterval since the previous fetch
// started.
func (m *Monitor) waitTurn(ctx context.Context) error {
	if !m.lastFetch.IsZero() {
		if wait := m.cfg.ItemInterval - time.Since(m.lastFetch); wait > 0 {
			if err := sleepCtx(ctx, wait); err != nil {
				return err
			}
		}
	}
	m.lastFetch = time.Now()
	return nil
}

func (m *Monitor) checkItem(ctx context.Context, item domain.TrackedItem) {
	html, err := m.fetcher.Fetch(ctx, item.URL)
	if err != nil {
		m.logger.Warn("item fetch failed", zap.Uint("item_id", item.ID), zap.String("url", item.URL), zap.Error(err))
		m.recordFailure(ctx, item)
		return
	}

	siteParser, err := m.registry.BySite(item.SiteID)
	if err != nil {
		// Only reachable if a store was unregistered after items were
		// accepted for it.
		m.logger.Error("no parser for tracked item", zap.Uint("item_id", item.ID), zap.String("site", item.SiteID))
		return
	}

	parsed, err := siteParser.Parse(html)
	if err != nil {
		m.logger.Warn("item parse failed", zap.Uint("item_id", item.ID), zap.String("site", item.SiteID), zap.Error(err))
		m.recordFailure(ctx, item)
		return
	}

	events := evaluate(item, parsed.Snapshot)

	// The snapshot replaces the stored one no matter what notification
	// delivery does.
	if err := m.items.UpdateSnapshot(ctx, item.ID, parsed.Name, parsed.Snapshot); err != nil {
		if err == domain.ErrNotFound {
			// Unsubscribed mid-pass; nothing to report.
			return
		}
		m.logger.Error("failed to update snapshot", zap.Uint("item_id", item.ID), zap.Error(err))
	}

	for _, kind := range events {
		m.emit(item, parsed, kind)
	}

	if m.cfg.RemoveOnMatch && hasKind(events, domain.EventPriceDropped) {
		if err := m.items.Delete(ctx, item.UserID, item.ID); err != nil && err != domain.ErrNotFound {
			m.logger.Error("failed to remove matched item", zap.Uint("item_id", item.ID), zap.Error(err))
		}
	}
}

func (m *Monitor) recordFailure(ctx context.Context, item domain.TrackedItem) {
	count, err := m.items.IncrementFetchFailures(ctx, item.ID)
	if err != nil {
		if err != domain.ErrNotFound {
			m.logger.Error("failed to record fetch failure", zap.Uint("item_id", item.ID), zap.Error(err))
		}
		return
	}

	// Report exactly once, when the budget is first exhausted; a later
	// success resets the counter and re-arms the report.
	if m.cfg.MaxFetchFailures > 0 && count == m.cfg.MaxFetchFailures {
		snapshot := domain.ProductSnapshot{}
		if item.LastSnapshot != nil {
			snapshot = *item.LastSnapshot
		}
		m.notify(domain.NotificationEvent{
			ItemID:         item.ID,
			TelegramUserID: item.TelegramUserID,
			Kind:           domain.EventFetchFailing,
			ItemName:       item.Name,
			URL:            item.URL,
			Snapshot:       snapshot,
			TargetPrice:    item.TargetPrice,
		})
	}
}

func (m *Monitor) emit(item domain.TrackedItem, parsed *domain.ParsedProduct, kind domain.EventKind) {
	name := parsed.Name
	if name == "" {
		name = item.Name
	}
	m.notify(domain.NotificationEvent{
		ItemID:         item.ID,
		TelegramUserID: item.TelegramUserID,
		Kind:           kind,
		ItemName:       name,
		URL:            item.URL,
		Snapshot:       parsed.Snapshot,
		TargetPrice:    item.TargetPrice,
	})
}

func (m *Monitor) notify(event domain.NotificationEvent) {
	if err := m.notifier.Notify(event); err != nil {
		m.logger.Warn(
			"notification delivery failed",
			zap.Uint("item_id", event.ItemID),
			zap.Int64("telegram_user_id", event.TelegramUserID),
			zap.Error(err),
		)
	}
}

// evaluate compares the new snapshot against the item's last known state and
// returns the events for every condition that crossed from false to true.
// Holding conditions never re-fire: the price trigger is armed only while the
// previous price is unknown or at/above target, and availability only while
// the item was last seen missing.
func evaluate(item domain.TrackedItem, next domain.ProductSnapshot) []domain.EventKind {
	var events []domain.EventKind
	prev := item.LastSnapshot

	if next.Available && (prev == nil || !prev.Available) {
		events = append(events, domain.EventBackInStock)
	}

	if item.TargetPrice != nil && next.Price != nil && next.Price.LessThan(*item.TargetPrice) {
		armed := prev == nil || prev.Price == nil || prev.Price.GreaterThanOrEqual(*item.TargetPrice)
		if armed {
			events = append(events, domain.EventPriceDropped)
		}
	}

	return events
}

func hasKind(events []domain.EventKind, kind domain.EventKind) bool {
	for _, k := range events {
		if k == kind {
			return true
		}
	}
	return false
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
