package models

import (
	"time"
)

// Donor 献血者档案表
type Donor struct {
	ID               uint       `gorm:"primarykey" json:"id"`                    // 主键
	Name             string     `gorm:"not null" json:"name"`                    // 姓名
	DateOfBirth      time.Time  `gorm:"not null" json:"date_of_birth"`           // 出生日期
	Gender           string     `gorm:"type:varchar(20);not null" json:"gender"` // 性别
	BloodGroup       string     `gorm:"type:varchar(8);index;not null" json:"blood_group"`
	ContactNo        string     `gorm:"type:varchar(32);index" json:"contact_no"` // 联系电话
	Email            string     `gorm:"uniqueIndex;not null" json:"email"`        // 邮箱
	Street           string     `gorm:"type:varchar(200)" json:"street"`          // 街道地址
	City             string     `gorm:"type:varchar(100);index" json:"city"`      // 城市
	LastDonationDate *time.Time `gorm:"index" json:"last_donation_date"`          // 最近一次献血日期（首次献血前为空）
	CreatedAt        time.Time  `gorm:"index" json:"created_at"`                  // 创建时间
	UpdatedAt        time.Time  `gorm:"index" json:"updated_at"`                  // 更新时间

	Donations []Donation `gorm:"foreignKey:DonorID" json:"donations,omitempty"` // 献血记录
}

// TableName 指定表名
func (Donor) TableName() string {
	return "donors"
}
