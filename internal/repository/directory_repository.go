package repository

import (
	"errors"

	"github.com/bloodlink-next/internal/models"

	"gorm.io/gorm"
)

// DirectoryRepository 基础档案数据访问接口
// 说明：血站、工作人员、医院、医生、患者、献血类型均为简单参照数据，统一收口。
type DirectoryRepository interface {
	ListCenters(page, pageSize int) ([]models.BloodCenter, int64, error)
	GetCenterByID(id uint) (*models.BloodCenter, error)
	CreateCenter(center *models.BloodCenter) error
	UpdateCenter(center *models.BloodCenter) error

	ListStaff(centerID uint, page, pageSize int) ([]models.Staff, int64, error)
	GetStaffByID(id uint) (*models.Staff, error)
	CreateStaff(staff *models.Staff) error
	UpdateStaff(staff *models.Staff) error

	ListHospitals(page, pageSize int) ([]models.Hospital, int64, error)
	GetHospitalByID(id uint) (*models.Hospital, error)
	CreateHospital(hospital *models.Hospital) error
	UpdateHospital(hospital *models.Hospital) error

	ListDoctors(hospitalID uint, page, pageSize int) ([]models.Doctor, int64, error)
	GetDoctorByID(id uint) (*models.Doctor, error)
	CreateDoctor(doctor *models.Doctor) error
	UpdateDoctor(doctor *models.Doctor) error

	ListPatients(hospitalID uint, page, pageSize int) ([]models.Patient, int64, error)
	GetPatientByID(id uint) (*models.Patient, error)
	CreatePatient(patient *models.Patient) error
	UpdatePatient(patient *models.Patient) error

	ListDonationTypes() ([]models.DonationType, error)
	GetDonationTypeByID(id uint) (*models.DonationType, error)
	CreateDonationType(donationType *models.DonationType) error

	WithTx(tx *gorm.DB) *GormDirectoryRepository
}

// GormDirectoryRepository GORM 实现
type GormDirectoryRepository struct {
	db *gorm.DB
}

// NewDirectoryRepository 创建基础档案仓库
func NewDirectoryRepository(db *gorm.DB) *GormDirectoryRepository {
	return &GormDirectoryRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDirectoryRepository) WithTx(tx *gorm.DB) *GormDirectoryRepository {
	if tx == nil {
		return r
	}
	return &GormDirectoryRepository{db: tx}
}

func firstOrNil[T any](db *gorm.DB, id uint) (*T, error) {
	var record T
	if err := db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// ListCenters 获取血站列表
func (r *GormDirectoryRepository) ListCenters(page, pageSize int) ([]models.BloodCenter, int64, error) {
	query := r.db.Model(&models.BloodCenter{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var centers []models.BloodCenter
	if err := applyPagination(query, page, pageSize).Order("id asc").Find(&centers).Error; err != nil {
		return nil, 0, err
	}
	return centers, total, nil
}

// GetCenterByID 根据 ID 获取血站
func (r *GormDirectoryRepository) GetCenterByID(id uint) (*models.BloodCenter, error) {
	return firstOrNil[models.BloodCenter](r.db, id)
}

// CreateCenter 创建血站
func (r *GormDirectoryRepository) CreateCenter(center *models.BloodCenter) error {
	return r.db.Create(center).Error
}

// UpdateCenter 更新血站
func (r *GormDirectoryRepository) UpdateCenter(center *models.BloodCenter) error {
	return r.db.Save(center).Error
}

// ListStaff 获取工作人员列表
func (r *GormDirectoryRepository) ListStaff(centerID uint, page, pageSize int) ([]models.Staff, int64, error) {
	query := r.db.Model(&models.Staff{})
	if centerID > 0 {
		query = query.Where("center_id = ?", centerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var staff []models.Staff
	if err := applyPagination(query, page, pageSize).Preload("Center").Order("id asc").Find(&staff).Error; err != nil {
		return nil, 0, err
	}
	return staff, total, nil
}

// GetStaffByID 根据 ID 获取工作人员
func (r *GormDirectoryRepository) GetStaffByID(id uint) (*models.Staff, error) {
	return firstOrNil[models.Staff](r.db, id)
}

// CreateStaff 创建工作人员
func (r *GormDirectoryRepository) CreateStaff(staff *models.Staff) error {
	return r.db.Create(staff).Error
}

// UpdateStaff 更新工作人员
func (r *GormDirectoryRepository) UpdateStaff(staff *models.Staff) error {
	return r.db.Save(staff).Error
}

// ListHospitals 获取医院列表
func (r *GormDirectoryRepository) ListHospitals(page, pageSize int) ([]models.Hospital, int64, error) {
	query := r.db.Model(&models.Hospital{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var hospitals []models.Hospital
	if err := applyPagination(query, page, pageSize).Order("id asc").Find(&hospitals).Error; err != nil {
		return nil, 0, err
	}
	return hospitals, total, nil
}

// GetHospitalByID 根据 ID 获取医院
func (r *GormDirectoryRepository) GetHospitalByID(id uint) (*models.Hospital, error) {
	return firstOrNil[models.Hospital](r.db, id)
}

// CreateHospital 创建医院
func (r *GormDirectoryRepository) CreateHospital(hospital *models.Hospital) error {
	return r.db.Create(hospital).Error
}

// UpdateHospital 更新医院
func (r *GormDirectoryRepository) UpdateHospital(hospital *models.Hospital) error {
	return r.db.Save(hospital).Error
}

// ListDoctors 获取医生列表
func (r *GormDirectoryRepository) ListDoctors(hospitalID uint, page, pageSize int) ([]models.Doctor, int64, error) {
	query := r.db.Model(&models.Doctor{})
	if hospitalID > 0 {
		query = query.Where("hospital_id = ?", hospitalID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var doctors []models.Doctor
	if err := applyPagination(query, page, pageSize).Preload("Hospital").Order("id asc").Find(&doctors).Error; err != nil {
		return nil, 0, err
	}
	return doctors, total, nil
}

// GetDoctorByID 根据 ID 获取医生
func (r *GormDirectoryRepository) GetDoctorByID(id uint) (*models.Doctor, error) {
	return firstOrNil[models.Doctor](r.db, id)
}

// CreateDoctor 创建医生
func (r *GormDirectoryRepository) CreateDoctor(doctor *models.Doctor) error {
	return r.db.Create(doctor).Error
}

// UpdateDoctor 更新医生
func (r *GormDirectoryRepository) UpdateDoctor(doctor *models.Doctor) error {
	return r.db.Save(doctor).Error
}

// ListPatients 获取患者列表
func (r *GormDirectoryRepository) ListPatients(hospitalID uint, page, pageSize int) ([]models.Patient, int64, error) {
	query := r.db.Model(&models.Patient{})
	if hospitalID > 0 {
		query = query.Where("hospital_id = ?", hospitalID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var patients []models.Patient
	if err := applyPagination(query, page, pageSize).Preload("Hospital").Order("id asc").Find(&patients).Error; err != nil {
		return nil, 0, err
	}
	return patients, total, nil
}

// GetPatientByID 根据 ID 获取患者
func (r *GormDirectoryRepository) GetPatientByID(id uint) (*models.Patient, error) {
	return firstOrNil[models.Patient](r.db, id)
}

// CreatePatient 创建患者
func (r *GormDirectoryRepository) CreatePatient(patient *models.Patient) error {
	return r.db.Create(patient).Error
}

// UpdatePatient 更新患者
func (r *GormDirectoryRepository) UpdatePatient(patient *models.Patient) error {
	return r.db.Save(patient).Error
}

// ListDonationTypes 获取献血类型列表
func (r *GormDirectoryRepository) ListDonationTypes() ([]models.DonationType, error) {
	var types []models.DonationType
	if err := r.db.Order("id asc").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// GetDonationTypeByID 根据 ID 获取献血类型
func (r *GormDirectoryRepository) GetDonationTypeByID(id uint) (*models.DonationType, error) {
	return firstOrNil[models.DonationType](r.db, id)
}

// CreateDonationType 创建献血类型
func (r *GormDirectoryRepository) CreateDonationType(donationType *models.DonationType) error {
	return r.db.Create(donationType).Error
}
