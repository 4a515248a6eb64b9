package repository

import (
	"errors"
	"time"

	"github.com/bloodlink-next/internal/constants"
	"github.com/bloodlink-next/internal/models"

	"gorm.io/gorm"
)

// BloodUnitRepository 血液单位数据访问接口
type BloodUnitRepository interface {
	Create(unit *models.BloodUnit) error
	GetByID(id uint) (*models.BloodUnit, error)
	GetByDonationID(donationID uint) (*models.BloodUnit, error)
	ListStored(bloodGroup string, centerID uint, page, pageSize int) ([]models.BloodUnit, int64, error)
	FindCandidates(bloodGroup string, onDate time.Time, limit int) ([]models.BloodUnit, error)
	ClaimForDelivery(id uint, usedAt time.Time) (int64, error)
	CountStored(bloodGroup string) (int64, error)
	WithTx(tx *gorm.DB) *GormBloodUnitRepository
}

// GormBloodUnitRepository GORM 实现
type GormBloodUnitRepository struct {
	db *gorm.DB
}

// NewBloodUnitRepository 创建血液单位仓库
func NewBloodUnitRepository(db *gorm.DB) *GormBloodUnitRepository {
	return &GormBloodUnitRepository{db: db}
}

// WithTx 绑定事务
func (r *GormBloodUnitRepository) WithTx(tx *gorm.DB) *GormBloodUnitRepository {
	if tx == nil {
		return r
	}
	return &GormBloodUnitRepository{db: tx}
}

// Create 创建血液单位
func (r *GormBloodUnitRepository) Create(unit *models.BloodUnit) error {
	return r.db.Create(unit).Error
}

// GetByID 根据 ID 获取血液单位
func (r *GormBloodUnitRepository) GetByID(id uint) (*models.BloodUnit, error) {
	var unit models.BloodUnit
	if err := r.db.Preload("Center").First(&unit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &unit, nil
}

// GetByDonationID 根据献血记录获取血液单位
func (r *GormBloodUnitRepository) GetByDonationID(donationID uint) (*models.BloodUnit, error) {
	if donationID == 0 {
		return nil, errors.New("invalid donation id")
	}
	var unit models.BloodUnit
	if err := r.db.Where("donation_id = ?", donationID).First(&unit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &unit, nil
}

// ListStored 获取在库血液单位列表
func (r *GormBloodUnitRepository) ListStored(bloodGroup string, centerID uint, page, pageSize int) ([]models.BloodUnit, int64, error) {
	query := r.db.Model(&models.BloodUnit{}).
		Where("status = ?", constants.BloodUnitStatusStored)
	if bloodGroup != "" {
		query = query.Where("blood_group = ?", bloodGroup)
	}
	if centerID > 0 {
		query = query.Where("center_id = ?", centerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var units []models.BloodUnit
	err := applyPagination(query, page, pageSize).
		Preload("Center").
		Order("expiry_date asc, id asc").
		Find(&units).Error
	if err != nil {
		return nil, 0, err
	}
	return units, total, nil
}

// FindCandidates 获取可交付候选单位
// 按到期日升序（先到期先出库），仅含同血型、未过期、在库单位。
func (r *GormBloodUnitRepository) FindCandidates(bloodGroup string, onDate time.Time, limit int) ([]models.BloodUnit, error) {
	if bloodGroup == "" {
		return nil, errors.New("invalid blood group")
	}
	if limit <= 0 {
		limit = 5
	}
	var units []models.BloodUnit
	err := r.db.
		Where("blood_group = ? AND status = ? AND expiry_date > ?", bloodGroup, constants.BloodUnitStatusStored, onDate).
		Preload("Center").
		Order("expiry_date asc, id asc").
		Limit(limit).
		Find(&units).Error
	if err != nil {
		return nil, err
	}
	return units, nil
}

// ClaimForDelivery 占用血液单位用于交付
// 条件更新保证 stored -> used 只发生一次；返回受影响行数供调用方判定。
func (r *GormBloodUnitRepository) ClaimForDelivery(id uint, usedAt time.Time) (int64, error) {
	if id == 0 {
		return 0, nil
	}
	if usedAt.IsZero() {
		usedAt = time.Now()
	}
	result := r.db.Model(&models.BloodUnit{}).
		Where("id = ? AND status = ?", id, constants.BloodUnitStatusStored).
		Updates(map[string]interface{}{
			"status":     constants.BloodUnitStatusUsed,
			"used_at":    usedAt,
			"updated_at": usedAt,
		})
	return result.RowsAffected, result.Error
}

// CountStored 统计在库数量
func (r *GormBloodUnitRepository) CountStored(bloodGroup string) (int64, error) {
	query := r.db.Model(&models.BloodUnit{}).
		Where("status = ?", constants.BloodUnitStatusStored)
	if bloodGroup != "" {
		query = query.Where("blood_group = ?", bloodGroup)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
