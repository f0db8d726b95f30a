package db

import (
	"time"

	"gorm.io/gorm"
)

type userModel struct {
	ID             uint   `gorm:"primaryKey"`
	TelegramUserID int64  `gorm:"uniqueIndex;not null"`
	Username       string `gorm:""`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (userModel) TableName() string { return "users" }

// Prices are persisted as the decimal's canonical string so no driver float
// conversion can introduce rounding drift. Items are hard-deleted: the
// (user_id, url) unique index must free the slot on unsubscribe.
type itemModel struct {
	ID             uint   `gorm:"primaryKey"`
	UserID         uint   `gorm:"uniqueIndex:idx_items_user_url,priority:1;not null"`
	URL            string `gorm:"uniqueIndex:idx_items_user_url,priority:2;not null"`
	SiteID         string `gorm:"not null"`
	Name           string
	TargetPrice    *string
	LastPrice      *string
	LastAvailable  *bool
	LastObservedAt *time.Time
	FetchFailures  int `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (itemModel) TableName() string { return "items" }
