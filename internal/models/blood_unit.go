package models

import (
	"time"
)

// BloodUnit 血液单位库存表
// 与 Donation 一对一；status 仅允许 stored -> used 单向流转。
type BloodUnit struct {
	ID           uint       `gorm:"primarykey" json:"id"`                 // 主键
	DonationID   uint       `gorm:"uniqueIndex;not null" json:"donation_id"`
	BloodGroup   string     `gorm:"type:varchar(8);index;not null" json:"blood_group"`
	CenterID     uint       `gorm:"index;not null" json:"center_id"`      // 所属血站ID
	StorageDate  time.Time  `gorm:"index;not null" json:"storage_date"`   // 入库日期
	ExpiryDate   time.Time  `gorm:"index;not null" json:"expiry_date"`    // 到期日期（入库 + 90 天）
	LatestResult string     `gorm:"type:varchar(32)" json:"latest_result"` // 最近检测结果
	Status       string     `gorm:"index;not null" json:"status"`         // 状态（stored/used）
	UsedAt       *time.Time `gorm:"index" json:"used_at,omitempty"`       // 使用时间
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`              // 创建时间
	UpdatedAt    time.Time  `gorm:"index" json:"updated_at"`              // 更新时间

	Center *BloodCenter `gorm:"foreignKey:CenterID" json:"center,omitempty"`
}

// TableName 指定表名
func (BloodUnit) TableName() string {
	return "blood_units"
}
