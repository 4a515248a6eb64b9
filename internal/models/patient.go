package models

import (
	"time"
)

// Patient 受血患者档案表
type Patient struct {
	ID          uint      `gorm:"primarykey" json:"id"`                              // 主键
	Name        string    `gorm:"not null" json:"name"`                              // 姓名
	DateOfBirth time.Time `gorm:"not null" json:"date_of_birth"`                     // 出生日期
	Gender      string    `gorm:"type:varchar(20)" json:"gender"`                    // 性别
	BloodGroup  string    `gorm:"type:varchar(8);index;not null" json:"blood_group"` // 血型
	HospitalID  uint      `gorm:"index;not null" json:"hospital_id"`                 // 就诊医院ID
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                           // 创建时间
	UpdatedAt   time.Time `gorm:"index" json:"updated_at"`                           // 更新时间

	Hospital *Hospital `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
}

// TableName 指定表名
func (Patient) TableName() string {
	return "patients"
}
