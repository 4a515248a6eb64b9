package models

import (
	"time"
)

// Donation 献血记录表
// 记录一经创建不再修改。
type Donation struct {
	ID             uint      `gorm:"primarykey" json:"id"`                   // 主键
	DonorID        uint      `gorm:"index;not null" json:"donor_id"`         // 献血者ID
	DonationTypeID uint      `gorm:"index;not null" json:"donation_type_id"` // 献血类型ID
	DonationDate   time.Time `gorm:"index;not null" json:"donation_date"`    // 献血日期
	AmountML       int       `gorm:"not null" json:"amount_ml"`              // 采集量（毫升）
	CollectedByID  uint      `gorm:"index;not null" json:"collected_by_id"`  // 采集工作人员ID
	CreatedAt      time.Time `gorm:"index" json:"created_at"`                // 创建时间

	Donor       *Donor        `gorm:"foreignKey:DonorID" json:"donor,omitempty"`
	Type        *DonationType `gorm:"foreignKey:DonationTypeID" json:"type,omitempty"`
	CollectedBy *Staff        `gorm:"foreignKey:CollectedByID" json:"collected_by,omitempty"`
	Unit        *BloodUnit    `gorm:"foreignKey:DonationID" json:"unit,omitempty"` // 派生的血液单位
}

// TableName 指定表名
func (Donation) TableName() string {
	return "donations"
}
