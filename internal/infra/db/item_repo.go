package db

import (
	"context"

	"github.com/matheusmoreno/quichesaver/internal/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Create(ctx context.Context, item *domain.TrackedItem) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&itemModel{}).
		Where("user_id = ? AND url = ?", item.UserID, item.URL).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrDuplicateSubscription
	}

	model := mapItemToModel(*item)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	item.ID = model.ID
	item.CreatedAt = model.CreatedAt
	item.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *ItemRepository) ListByUser(ctx context.Context, userID uint) ([]domain.TrackedItem, error) {
	var rows []itemRow
	if err := r.db.WithContext(ctx).
		Model(&itemModel{}).
		Select("items.*, users.telegram_user_id").
		Joins("JOIN users ON users.id = items.user_id").
		Where("items.user_id = ?", userID).
		Order("items.id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return mapItemsToDomain(rows), nil
}

// ListAll returns detached copies of every tracked item; the monitor iterates
// the returned slice while the front-end keeps mutating the table.
func (r *ItemRepository) ListAll(ctx context.Context) ([]domain.TrackedItem, error) {
	var rows []itemRow
	if err := r.db.WithContext(ctx).
		Model(&itemModel{}).
		Select("items.*, users.telegram_user_id").
		Joins("JOIN users ON users.id = items.user_id").
		Order("items.id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return mapItemsToDomain(rows), nil
}

func (r *ItemRepository) Delete(ctx context.Context, userID uint, itemID uint) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", itemID, userID).Delete(&itemModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateSnapshot replaces the stored snapshot wholesale and clears the
// consecutive-failure counter. The name is refreshed only when the parser
// extracted one.
func (r *ItemRepository) UpdateSnapshot(ctx context.Context, itemID uint, name string, snapshot domain.ProductSnapshot) error {
	updates := map[string]interface{}{
		"last_price":       priceToColumn(snapshot.Price),
		"last_available":   snapshot.Available,
		"last_observed_at": snapshot.ObservedAt,
		"fetch_failures":   0,
	}
	if name != "" {
		updates["name"] = name
	}

	result := r.db.WithContext(ctx).Model(&itemModel{}).Where("id = ?", itemID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ItemRepository) IncrementFetchFailures(ctx context.Context, itemID uint) (int, error) {
	var count int
	result := r.db.WithContext(ctx).
		Raw("UPDATE items SET fetch_failures = fetch_failures + 1, updated_at = NOW() WHERE id = ? RETURNING fetch_failures", itemID).
		Scan(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, domain.ErrNotFound
	}
	return count, nil
}

type itemRow struct {
	itemModel
	TelegramUserID int64
}

func mapItemsToDomain(rows []itemRow) []domain.TrackedItem {
	items := make([]domain.TrackedItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapItemToDomain(row))
	}
	return items
}

func mapItemToDomain(row itemRow) domain.TrackedItem {
	item := domain.TrackedItem{
		ID:             row.ID,
		UserID:         row.UserID,
		TelegramUserID: row.TelegramUserID,
		URL:            row.URL,
		SiteID:         row.SiteID,
		Name:           row.Name,
		TargetPrice:    columnToPrice(row.TargetPrice),
		FetchFailures:  row.FetchFailures,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
	if row.LastAvailable != nil && row.LastObservedAt != nil {
		item.LastSnapshot = &domain.ProductSnapshot{
			Price:      columnToPrice(row.LastPrice),
			Available:  *row.LastAvailable,
			ObservedAt: *row.LastObservedAt,
		}
	}
	return item
}

func mapItemToModel(item domain.TrackedItem) itemModel {
	model := itemModel{
		ID:            item.ID,
		UserID:        item.UserID,
		URL:           item.URL,
		SiteID:        item.SiteID,
		Name:          item.Name,
		TargetPrice:   priceToColumn(item.TargetPrice),
		FetchFailures: item.FetchFailures,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
	if item.LastSnapshot != nil {
		model.LastPrice = priceToColumn(item.LastSnapshot.Price)
		available := item.LastSnapshot.Available
		model.LastAvailable = &available
		observed := item.LastSnapshot.ObservedAt
		model.LastObservedAt = &observed
	}
	return model
}

func priceToColumn(price *decimal.Decimal) *string {
	if price == nil {
		return nil
	}
	s := price.String()
	return &s
}

func columnToPrice(column *string) *decimal.Decimal {
	if column == nil {
		return nil
	}
	value, err := decimal.NewFromString(*column)
	if err != nil {
		return nil
	}
	return &value
}
