package service

import (
	"time"

	"github.com/bloodlink-next/internal/constants"
	"github.com/bloodlink-next/internal/logger"
	"github.com/bloodlink-next/internal/models"
	"github.com/bloodlink-next/internal/repository"
)

// RequestService 用血申请服务
type RequestService struct {
	requestRepo   repository.BloodRequestRepository
	directoryRepo repository.DirectoryRepository
}

// NewRequestService 创建用血申请服务
func NewRequestService(requestRepo repository.BloodRequestRepository, directoryRepo repository.DirectoryRepository) *RequestService {
	return &RequestService{
		requestRepo:   requestRepo,
		directoryRepo: directoryRepo,
	}
}

// CreateRequestInput 用血申请输入
type CreateRequestInput struct {
	HospitalID    uint
	DoctorID      uint
	PatientID     uint
	BloodGroup    string
	RequiredUnits int
	Urgency       string
}

// CreateRequest 创建用血申请
func (s *RequestService) CreateRequest(input CreateRequestInput) (*models.BloodRequest, error) {
	if input.HospitalID == 0 || input.DoctorID == 0 || input.PatientID == 0 {
		return nil, ErrValidationFailed
	}
	if input.RequiredUnits <= 0 {
		return nil, ErrValidationFailed
	}
	if !constants.IsValidBloodGroup(input.BloodGroup) {
		return nil, ErrBloodGroupInvalid
	}
	if !constants.IsValidUrgency(input.Urgency) {
		return nil, ErrValidationFailed
	}

	hospital, err := s.directoryRepo.GetHospitalByID(input.HospitalID)
	if err != nil {
		return nil, ErrRequestCreateFailed
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}
	doctor, err := s.directoryRepo.GetDoctorByID(input.DoctorID)
	if err != nil {
		return nil, ErrRequestCreateFailed
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	patient, err := s.directoryRepo.GetPatientByID(input.PatientID)
	if err != nil {
		return nil, ErrRequestCreateFailed
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	request := &models.BloodRequest{
		HospitalID:    input.HospitalID,
		DoctorID:      input.DoctorID,
		PatientID:     input.PatientID,
		BloodGroup:    input.BloodGroup,
		RequiredUnits: input.RequiredUnits,
		Urgency:       input.Urgency,
		Status:        constants.RequestStatusPending,
		RequestDate:   time.Now(),
	}
	if err := s.requestRepo.Create(request); err != nil {
		logger.Errorw("request_create_failed", "hospital_id", input.HospitalID, "error", err)
		return nil, ErrRequestCreateFailed
	}

	logger.Infow("request_created",
		"request_id", request.ID,
		"blood_group", request.BloodGroup,
		"urgency", request.Urgency,
	)
	return request, nil
}

// GetRequest 获取用血申请详情
func (s *RequestService) GetRequest(id uint) (*models.BloodRequest, error) {
	request, err := s.requestRepo.GetByID(id)
	if err != nil {
		return nil, ErrRequestFetchFailed
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}
	return request, nil
}

// ListRequests 获取用血申请列表
func (s *RequestService) ListRequests(filter repository.BloodRequestListFilter, page, pageSize int) ([]models.BloodRequest, int64, error) {
	return s.requestRepo.List(filter, page, pageSize)
}
