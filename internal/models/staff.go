package models

import (
	"time"
)

// Staff 血站工作人员表
type Staff struct {
	ID        uint      `gorm:"primarykey" json:"id"`                     // 主键
	Name      string    `gorm:"not null" json:"name"`                     // 姓名
	Role      string    `gorm:"type:varchar(50);index" json:"role"`       // 岗位
	CenterID  uint      `gorm:"index;not null" json:"center_id"`          // 所属血站ID
	ContactNo string    `gorm:"type:varchar(32)" json:"contact_no"`       // 联系电话
	CreatedAt time.Time `gorm:"index" json:"created_at"`                  // 创建时间
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`                  // 更新时间

	Center *BloodCenter `gorm:"foreignKey:CenterID" json:"center,omitempty"`
}

// TableName 指定表名
func (Staff) TableName() string {
	return "staff"
}
