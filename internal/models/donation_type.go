package models

import (
	"time"
)

// DonationType 献血类型表（全血、成分血等）
type DonationType struct {
	ID          uint      `gorm:"primarykey" json:"id"`                 // 主键
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`     // 类型名称
	Description string    `gorm:"type:varchar(200)" json:"description"` // 类型说明
	CreatedAt   time.Time `gorm:"index" json:"created_at"`              // 创建时间
	UpdatedAt   time.Time `gorm:"index" json:"updated_at"`              // 更新时间
}

// TableName 指定表名
func (DonationType) TableName() string {
	return "donation_types"
}
