package models

import (
	"time"
)

// Hospital 合作医院档案表
type Hospital struct {
	ID        uint      `gorm:"primarykey" json:"id"`                // 主键
	Name      string    `gorm:"not null" json:"name"`                // 医院名称
	ContactNo string    `gorm:"type:varchar(32)" json:"contact_no"`  // 联系电话
	Street    string    `gorm:"type:varchar(200)" json:"street"`     // 街道地址
	City      string    `gorm:"type:varchar(100);index" json:"city"` // 城市
	CreatedAt time.Time `gorm:"index" json:"created_at"`             // 创建时间
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`             // 更新时间
}

// TableName 指定表名
func (Hospital) TableName() string {
	return "hospitals"
}
