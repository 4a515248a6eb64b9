package repository

import (
	"errors"
	"time"

	"github.com/bloodlink-next/internal/models"

	"gorm.io/gorm"
)

// DonorSearchFilter 献血者检索条件
type DonorSearchFilter struct {
	Keyword    string // 姓名/邮箱/电话模糊匹配
	BloodGroup string
	City       string
}

// DonorRepository 献血者数据访问接口
type DonorRepository interface {
	Create(donor *models.Donor) error
	GetByID(id uint) (*models.Donor, error)
	GetByEmail(email string) (*models.Donor, error)
	GetWithDonations(id uint) (*models.Donor, error)
	Search(filter DonorSearchFilter, page, pageSize int) ([]models.Donor, int64, error)
	Update(donor *models.Donor) error
	UpdateLastDonationDate(id uint, donatedAt time.Time) (int64, error)
	WithTx(tx *gorm.DB) *GormDonorRepository
}

// GormDonorRepository GORM 实现
type GormDonorRepository struct {
	db *gorm.DB
}

// NewDonorRepository 创建献血者仓库
func NewDonorRepository(db *gorm.DB) *GormDonorRepository {
	return &GormDonorRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDonorRepository) WithTx(tx *gorm.DB) *GormDonorRepository {
	if tx == nil {
		return r
	}
	return &GormDonorRepository{db: tx}
}

// Create 创建献血者档案
func (r *GormDonorRepository) Create(donor *models.Donor) error {
	return r.db.Create(donor).Error
}

// GetByID 根据 ID 获取献血者
func (r *GormDonorRepository) GetByID(id uint) (*models.Donor, error) {
	var donor models.Donor
	if err := r.db.First(&donor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &donor, nil
}

// GetByEmail 根据邮箱获取献血者
func (r *GormDonorRepository) GetByEmail(email string) (*models.Donor, error) {
	if email == "" {
		return nil, errors.New("invalid email")
	}
	var donor models.Donor
	if err := r.db.Where("email = ?", email).First(&donor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &donor, nil
}

// GetWithDonations 获取献血者及其献血历史
func (r *GormDonorRepository) GetWithDonations(id uint) (*models.Donor, error) {
	var donor models.Donor
	err := r.db.
		Preload("Donations", func(db *gorm.DB) *gorm.DB {
			return db.Order("donation_date DESC")
		}).
		Preload("Donations.Type").
		Preload("Donations.Unit").
		First(&donor, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &donor, nil
}

// Search 按条件检索献血者
func (r *GormDonorRepository) Search(filter DonorSearchFilter, page, pageSize int) ([]models.Donor, int64, error) {
	query := r.db.Model(&models.Donor{})
	if filter.Keyword != "" {
		keyword := "%" + filter.Keyword + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR contact_no LIKE ?", keyword, keyword, keyword)
	}
	if filter.BloodGroup != "" {
		query = query.Where("blood_group = ?", filter.BloodGroup)
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var donors []models.Donor
	if err := applyPagination(query, page, pageSize).Order("id asc").Find(&donors).Error; err != nil {
		return nil, 0, err
	}
	return donors, total, nil
}

// Update 更新献血者档案
func (r *GormDonorRepository) Update(donor *models.Donor) error {
	return r.db.Save(donor).Error
}

// UpdateLastDonationDate 更新最近献血日期
func (r *GormDonorRepository) UpdateLastDonationDate(id uint, donatedAt time.Time) (int64, error) {
	if id == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.Donor{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_donation_date": donatedAt,
			"updated_at":         time.Now(),
		})
	return result.RowsAffected, result.Error
}
