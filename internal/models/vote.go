package models

import (
	"time"
)

type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_item" json:"user_id"`
	ItemID    uint      `gorm:"not null;uniqueIndex:idx_user_item" json:"item_id"`
	Value     string    `gorm:"size:8;not null" json:"value"` // "up" / "down" / ""(已撤销)
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// One vote row per (user, item): the composite unique index enforces it,
// and writes go through an upsert on that key. 撤销投票时保留记录，Value 置空，
// 与"从未投票"（无记录）区分开。
