package repository

import (
	"errors"
	"time"

	"github.com/bloodlink-next/internal/constants"
	"github.com/bloodlink-next/internal/models"

	"gorm.io/gorm"
)

// BloodRequestListFilter 用血申请检索条件
type BloodRequestListFilter struct {
	Status     string
	Urgency    string
	BloodGroup string
	HospitalID uint
}

// BloodRequestRepository 用血申请数据访问接口
type BloodRequestRepository interface {
	Create(request *models.BloodRequest) error
	GetByID(id uint) (*models.BloodRequest, error)
	List(filter BloodRequestListFilter, page, pageSize int) ([]models.BloodRequest, int64, error)
	MarkDelivered(id uint, deliveredAt time.Time) (int64, error)
	CountByStatus(status string) (int64, error)
	WithTx(tx *gorm.DB) *GormBloodRequestRepository
}

// GormBloodRequestRepository GORM 实现
type GormBloodRequestRepository struct {
	db *gorm.DB
}

// NewBloodRequestRepository 创建用血申请仓库
func NewBloodRequestRepository(db *gorm.DB) *GormBloodRequestRepository {
	return &GormBloodRequestRepository{db: db}
}

// WithTx 绑定事务
func (r *GormBloodRequestRepository) WithTx(tx *gorm.DB) *GormBloodRequestRepository {
	if tx == nil {
		return r
	}
	return &GormBloodRequestRepository{db: tx}
}

// Create 创建用血申请
func (r *GormBloodRequestRepository) Create(request *models.BloodRequest) error {
	return r.db.Create(request).Error
}

// GetByID 根据 ID 获取用血申请
func (r *GormBloodRequestRepository) GetByID(id uint) (*models.BloodRequest, error) {
	var request models.BloodRequest
	err := r.db.
		Preload("Hospital").
		Preload("Doctor").
		Preload("Patient").
		Preload("Delivery").
		Preload("Delivery.Unit").
		First(&request, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// List 按条件获取用血申请列表
func (r *GormBloodRequestRepository) List(filter BloodRequestListFilter, page, pageSize int) ([]models.BloodRequest, int64, error) {
	query := r.db.Model(&models.BloodRequest{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Urgency != "" {
		query = query.Where("urgency = ?", filter.Urgency)
	}
	if filter.BloodGroup != "" {
		query = query.Where("blood_group = ?", filter.BloodGroup)
	}
	if filter.HospitalID > 0 {
		query = query.Where("hospital_id = ?", filter.HospitalID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []models.BloodRequest
	err := applyPagination(query, page, pageSize).
		Preload("Hospital").
		Preload("Doctor").
		Preload("Patient").
		Order("CASE WHEN status = 'pending' THEN 0 ELSE 1 END, request_date DESC, id DESC").
		Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// MarkDelivered 标记申请已交付
// 条件更新保证 pending -> delivered 只发生一次；返回受影响行数供调用方判定。
func (r *GormBloodRequestRepository) MarkDelivered(id uint, deliveredAt time.Time) (int64, error) {
	if id == 0 {
		return 0, nil
	}
	if deliveredAt.IsZero() {
		deliveredAt = time.Now()
	}
	result := r.db.Model(&models.BloodRequest{}).
		Where("id = ? AND status = ?", id, constants.RequestStatusPending).
		Updates(map[string]interface{}{
			"status":     constants.RequestStatusDelivered,
			"updated_at": deliveredAt,
		})
	return result.RowsAffected, result.Error
}

// CountByStatus 按状态统计申请数量
func (r *GormBloodRequestRepository) CountByStatus(status string) (int64, error) {
	query := r.db.Model(&models.BloodRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
