package repository

import (
	"errors"
	"time"

	"github.com/bloodlink-next/internal/models"

	"gorm.io/gorm"
)

// DonationListFilter 献血记录检索条件
type DonationListFilter struct {
	DonorID        uint
	DonationTypeID uint
	StartDate      *time.Time
	EndDate        *time.Time
}

// DonationRepository 献血记录数据访问接口
type DonationRepository interface {
	Create(donation *models.Donation) error
	GetByID(id uint) (*models.Donation, error)
	List(filter DonationListFilter, page, pageSize int) ([]models.Donation, int64, error)
	ListByDonor(donorID uint) ([]models.Donation, error)
	WithTx(tx *gorm.DB) *GormDonationRepository
}

// GormDonationRepository GORM 实现
type GormDonationRepository struct {
	db *gorm.DB
}

// NewDonationRepository 创建献血记录仓库
func NewDonationRepository(db *gorm.DB) *GormDonationRepository {
	return &GormDonationRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDonationRepository) WithTx(tx *gorm.DB) *GormDonationRepository {
	if tx == nil {
		return r
	}
	return &GormDonationRepository{db: tx}
}

// Create 创建献血记录
func (r *GormDonationRepository) Create(donation *models.Donation) error {
	return r.db.Create(donation).Error
}

// GetByID 根据 ID 获取献血记录
func (r *GormDonationRepository) GetByID(id uint) (*models.Donation, error) {
	var donation models.Donation
	err := r.db.
		Preload("Donor").
		Preload("Type").
		Preload("Unit").
		First(&donation, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &donation, nil
}

// List 按条件获取献血记录列表
func (r *GormDonationRepository) List(filter DonationListFilter, page, pageSize int) ([]models.Donation, int64, error) {
	query := r.db.Model(&models.Donation{})
	if filter.DonorID > 0 {
		query = query.Where("donor_id = ?", filter.DonorID)
	}
	if filter.DonationTypeID > 0 {
		query = query.Where("donation_type_id = ?", filter.DonationTypeID)
	}
	if filter.StartDate != nil {
		query = query.Where("donation_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("donation_date < ?", *filter.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var donations []models.Donation
	err := applyPagination(query, page, pageSize).
		Preload("Donor").
		Preload("Type").
		Order("donation_date DESC, id DESC").
		Find(&donations).Error
	if err != nil {
		return nil, 0, err
	}
	return donations, total, nil
}

// ListByDonor 获取献血者的全部献血记录
func (r *GormDonationRepository) ListByDonor(donorID uint) ([]models.Donation, error) {
	if donorID == 0 {
		return nil, errors.New("invalid donor id")
	}
	var donations []models.Donation
	err := r.db.
		Where("donor_id = ?", donorID).
		Preload("Type").
		Preload("Unit").
		Order("donation_date DESC").
		Find(&donations).Error
	if err != nil {
		return nil, err
	}
	return donations, nil
}
