package models

import (
	"time"
)

// Doctor 医生档案表
type Doctor struct {
	ID         uint      `gorm:"primarykey" json:"id"`                      // 主键
	Name       string    `gorm:"not null" json:"name"`                      // 姓名
	Speciality string    `gorm:"type:varchar(100)" json:"speciality"`       // 专科
	HospitalID uint      `gorm:"index;not null" json:"hospital_id"`         // 所属医院ID
	ContactNo  string    `gorm:"type:varchar(32)" json:"contact_no"`        // 联系电话
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                   // 创建时间
	UpdatedAt  time.Time `gorm:"index" json:"updated_at"`                   // 更新时间

	Hospital *Hospital `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
}

// TableName 指定表名
func (Doctor) TableName() string {
	return "doctors"
}
