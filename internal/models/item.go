package models

import (
	"time"
)

// 可回收状态枚举值
const (
	StatusRecyclable    = "Recyclable"
	StatusNonRecyclable = "Non-Recyclable"
	StatusUnknown       = "Unknown"
)

type Item struct {
	ID                  uint      `gorm:"primaryKey" json:"-"`
	Iid                 string    `gorm:"uniqueIndex;size:8;not null" json:"id"`
	UserID              uint      `gorm:"not null;index" json:"user_id"`
	User                User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserEmail           string    `gorm:"not null" json:"user_email"` // 冗余存储，避免列表页关联查询
	Name                string    `gorm:"size:100;not null" json:"name"`
	Description         string    `gorm:"size:500" json:"description"`
	RecyclabilityStatus string    `gorm:"size:20;not null;default:'Unknown'" json:"recyclability_status"`
	ImageURL            string    `json:"image_url"` // Optional
	Upvotes             int       `gorm:"default:0" json:"upvotes"`
	Downvotes           int       `gorm:"default:0" json:"downvotes"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// ValidStatus 检查可回收状态是否为合法枚举值
func ValidStatus(s string) bool {
	switch s {
	case StatusRecyclable, StatusNonRecyclable, StatusUnknown:
		return true
	}
	return false
}
