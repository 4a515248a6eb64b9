package repository

import (
	"errors"

	"github.com/bloodlink-next/internal/models"

	"gorm.io/gorm"
)

// DeliveryRecordRepository 交付记录数据访问接口
type DeliveryRecordRepository interface {
	Create(record *models.DeliveryRecord) error
	GetByRequestID(requestID uint) (*models.DeliveryRecord, error)
	List(page, pageSize int) ([]models.DeliveryRecord, int64, error)
	WithTx(tx *gorm.DB) *GormDeliveryRecordRepository
}

// GormDeliveryRecordRepository GORM 实现
type GormDeliveryRecordRepository struct {
	db *gorm.DB
}

// NewDeliveryRecordRepository 创建交付记录仓库
func NewDeliveryRecordRepository(db *gorm.DB) *GormDeliveryRecordRepository {
	return &GormDeliveryRecordRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDeliveryRecordRepository) WithTx(tx *gorm.DB) *GormDeliveryRecordRepository {
	if tx == nil {
		return r
	}
	return &GormDeliveryRecordRepository{db: tx}
}

// Create 创建交付记录
func (r *GormDeliveryRecordRepository) Create(record *models.DeliveryRecord) error {
	return r.db.Create(record).Error
}

// GetByRequestID 根据申请获取交付记录
func (r *GormDeliveryRecordRepository) GetByRequestID(requestID uint) (*models.DeliveryRecord, error) {
	if requestID == 0 {
		return nil, errors.New("invalid request id")
	}
	var record models.DeliveryRecord
	err := r.db.
		Where("request_id = ?", requestID).
		Preload("Unit").
		Preload("DeliveredBy").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// List 获取交付记录列表
func (r *GormDeliveryRecordRepository) List(page, pageSize int) ([]models.DeliveryRecord, int64, error) {
	query := r.db.Model(&models.DeliveryRecord{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.DeliveryRecord
	err := applyPagination(query, page, pageSize).
		Preload("Unit").
		Preload("DeliveredBy").
		Order("delivery_date DESC, id DESC").
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
