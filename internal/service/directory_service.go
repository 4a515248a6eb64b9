package service

import (
	"strings"

	"github.com/bloodlink-next/internal/constants"
	"github.com/bloodlink-next/internal/models"
	"github.com/bloodlink-next/internal/repository"
)

// DirectoryService 基础档案服务
type DirectoryService struct {
	directoryRepo repository.DirectoryRepository
}

// NewDirectoryService 创建基础档案服务
func NewDirectoryService(directoryRepo repository.DirectoryRepository) *DirectoryService {
	return &DirectoryService{directoryRepo: directoryRepo}
}

// ListCenters 获取血站列表
func (s *DirectoryService) ListCenters(page, pageSize int) ([]models.BloodCenter, int64, error) {
	return s.directoryRepo.ListCenters(page, pageSize)
}

// CreateCenter 创建血站
func (s *DirectoryService) CreateCenter(center *models.BloodCenter) error {
	if center == nil || strings.TrimSpace(center.Name) == "" {
		return ErrValidationFailed
	}
	if err := s.directoryRepo.CreateCenter(center); err != nil {
		return ErrDirectoryFailed
	}
	return nil
}

// GetCenter 获取血站详情
func (s *DirectoryService) GetCenter(id uint) (*models.BloodCenter, error) {
	center, err := s.directoryRepo.GetCenterByID(id)
	if err != nil {
		return nil, ErrDirectoryFailed
	}
	if center == nil {
		return nil, ErrCenterNotFound
	}
	return center, nil
}

// ListStaff 获取工作人员列表
func (s *DirectoryService) ListStaff(centerID uint, page, pageSize int) ([]models.Staff, int64, error) {
	return s.directoryRepo.ListStaff(centerID, page, pageSize)
}

// CreateStaff 创建工作人员
func (s *DirectoryService) CreateStaff(staff *models.Staff) error {
	if staff == nil || strings.TrimSpace(staff.Name) == "" || staff.CenterID == 0 {
		return ErrValidationFailed
	}
	center, err := s.directoryRepo.GetCenterByID(staff.CenterID)
	if err != nil {
		return ErrDirectoryFailed
	}
	if center == nil {
		return ErrCenterNotFound
	}
	if err := s.directoryRepo.CreateStaff(staff); err != nil {
		return ErrDirectoryFailed
	}
	return nil
}

// ListHospitals 获取医院列表
func (s *DirectoryService) ListHospitals(page, pageSize int) ([]models.Hospital, int64, error) {
	return s.directoryRepo.ListHospitals(page, pageSize)
}

// CreateHospital 创建医院
func (s *DirectoryService) CreateHospital(hospital *models.Hospital) error {
	if hospital == nil || strings.TrimSpace(hospital.Name) == "" {
		return ErrValidationFailed
	}
	if err := s.directoryRepo.CreateHospital(hospital); err != nil {
		return ErrDirectoryFailed
	}
	return nil
}

// ListDoctors 获取医生列表
func (s *DirectoryService) ListDoctors(hospitalID uint, page, pageSize int) ([]models.Doctor, int64, error) {
	return s.directoryRepo.ListDoctors(hospitalID, page, pageSize)
}

// CreateDoctor 创建医生
func (s *DirectoryService) CreateDoctor(doctor *models.Doctor) error {
	if doctor == nil || strings.TrimSpace(doctor.Name) == "" || doctor.HospitalID == 0 {
		return ErrValidationFailed
	}
	hospital, err := s.directoryRepo.GetHospitalByID(doctor.HospitalID)
	if err != nil {
		return ErrDirectoryFailed
	}
	if hospital == nil {
		return ErrHospitalNotFound
	}
	if err := s.directoryRepo.CreateDoctor(doctor); err != nil {
		return ErrDirectoryFailed
	}
	return nil
}

// ListPatients 获取患者列表
func (s *DirectoryService) ListPatients(hospitalID uint, page, pageSize int) ([]models.Patient, int64, error) {
	return s.directoryRepo.ListPatients(hospitalID, page, pageSize)
}

// CreatePatient 创建患者
func (s *DirectoryService) CreatePatient(patient *models.Patient) error {
	if patient == nil || strings.TrimSpace(patient.Name) == "" || patient.HospitalID == 0 {
		return ErrValidationFailed
	}
	if !constants.IsValidBloodGroup(patient.BloodGroup) {
		return ErrBloodGroupInvalid
	}
	hospital, err := s.directoryRepo.GetHospitalByID(patient.HospitalID)
	if err != nil {
		return ErrDirectoryFailed
	}
	if hospital == nil {
		return ErrHospitalNotFound
	}
	if err := s.directoryRepo.CreatePatient(patient); err != nil {
		return ErrDirectoryFailed
	}
	return nil
}

// ListDonationTypes 获取献血类型列表
func (s *DirectoryService) ListDonationTypes() ([]models.DonationType, error) {
	types, err := s.directoryRepo.ListDonationTypes()
	if err != nil {
		return nil, ErrDirectoryFailed
	}
	return types, nil
}

// CreateDonationType 创建献血类型
func (s *DirectoryService) CreateDonationType(donationType *models.DonationType) error {
	if donationType == nil || strings.TrimSpace(donationType.Name) == "" {
		return ErrValidationFailed
	}
	if err := s.directoryRepo.CreateDonationType(donationType); err != nil {
		return ErrDirectoryFailed
	}
	return nil
}
