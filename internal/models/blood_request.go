package models

import (
	"time"
)

// BloodRequest 医院用血申请表
// status 仅允许 pending -> delivered 单向流转，由交付事务触发。
type BloodRequest struct {
	ID            uint      `gorm:"primarykey" json:"id"`             // 主键
	HospitalID    uint      `gorm:"index;not null" json:"hospital_id"`
	DoctorID      uint      `gorm:"index;not null" json:"doctor_id"`
	PatientID     uint      `gorm:"index;not null" json:"patient_id"`
	BloodGroup    string    `gorm:"type:varchar(8);index;not null" json:"blood_group"` // 申请血型
	RequiredUnits int       `gorm:"not null" json:"required_units"`   // 需求单位数
	Urgency       string    `gorm:"type:varchar(20);not null" json:"urgency"`
	Status        string    `gorm:"index;not null" json:"status"`     // 状态（pending/delivered）
	RequestDate   time.Time `gorm:"index;not null" json:"request_date"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"` // 创建时间
	UpdatedAt     time.Time `gorm:"index" json:"updated_at"` // 更新时间

	Hospital *Hospital       `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
	Doctor   *Doctor         `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient  *Patient        `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Delivery *DeliveryRecord `gorm:"foreignKey:RequestID" json:"delivery,omitempty"` // 交付记录
}

// TableName 指定表名
func (BloodRequest) TableName() string {
	return "blood_requests"
}
