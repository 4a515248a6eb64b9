package models

import (
	"time"
)

// DeliveryRecord 血液交付记录表
// 每个已交付申请恰好一条，创建后不可变。
type DeliveryRecord struct {
	ID            uint      `gorm:"primarykey" json:"id"`                  // 主键
	RequestID     uint      `gorm:"uniqueIndex;not null" json:"request_id"`
	BloodUnitID   uint      `gorm:"uniqueIndex;not null" json:"blood_unit_id"`
	DeliveryDate  time.Time `gorm:"index;not null" json:"delivery_date"`   // 交付时间
	DeliveredByID uint      `gorm:"index;not null" json:"delivered_by_id"` // 交付工作人员ID
	Condition     string    `gorm:"type:varchar(100)" json:"condition"`    // 血液状态说明
	CreatedAt     time.Time `gorm:"index" json:"created_at"`               // 创建时间

	Unit        *BloodUnit `gorm:"foreignKey:BloodUnitID" json:"unit,omitempty"`
	DeliveredBy *Staff     `gorm:"foreignKey:DeliveredByID" json:"delivered_by,omitempty"`
}

// TableName 指定表名
func (DeliveryRecord) TableName() string {
	return "delivery_records"
}
