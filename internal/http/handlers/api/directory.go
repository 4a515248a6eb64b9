package api

import (
	"time"

	"github.com/bloodlink-next/internal/http/response"
	"github.com/bloodlink-next/internal/models"

	"github.com/gin-gonic/gin"
)

// ListCenters 获取血站列表
func (h *Handler) ListCenters(c *gin.Context) {
	page, pageSize := parsePagination(c)
	centers, total, err := h.DirectoryService.ListCenters(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.directory_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, centers, buildPagination(page, pageSize, total))
}

// CreateCenterRequest 血站创建请求
type CreateCenterRequest struct {
	Name      string `json:"name" binding:"required"`
	ContactNo string `json:"contact_no"`
	Street    string `json:"street"`
	City      string `json:"city"`
}

// CreateCenter 创建血站
func (h *Handler) CreateCenter(c *gin.Context) {
	var req CreateCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	center := &models.BloodCenter{
		Name:      req.Name,
		ContactNo: req.ContactNo,
		Street:    req.Street,
		City:      req.City,
	}
	if err := h.DirectoryService.CreateCenter(center); err != nil {
		respondDirectoryError(c, err)
		return
	}
	response.Success(c, center)
}

// ListStaff 获取工作人员列表
func (h *Handler) ListStaff(c *gin.Context) {
	page, pageSize := parsePagination(c)
	centerID, _ := queryUint(c, "center_id")
	staff, total, err := h.DirectoryService.ListStaff(centerID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.directory_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, staff, buildPagination(page, pageSize, total))
}

// CreateStaffRequest 工作人员创建请求
type CreateStaffRequest struct {
	Name      string `json:"name" binding:"required"`
	Role      string `json:"role"`
	CenterID  uint   `json:"center_id" binding:"required"`
	ContactNo string `json:"contact_no"`
}

// CreateStaff 创建工作人员
func (h *Handler) CreateStaff(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	staff := &models.Staff{
		Name:      req.Name,
		Role:      req.Role,
		CenterID:  req.CenterID,
		ContactNo: req.ContactNo,
	}
	if err := h.DirectoryService.CreateStaff(staff); err != nil {
		respondDirectoryError(c, err)
		return
	}
	response.Success(c, staff)
}

// ListHospitals 获取医院列表
func (h *Handler) ListHospitals(c *gin.Context) {
	page, pageSize := parsePagination(c)
	hospitals, total, err := h.DirectoryService.ListHospitals(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.directory_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, hospitals, buildPagination(page, pageSize, total))
}

// CreateHospitalRequest 医院创建请求
type CreateHospitalRequest struct {
	Name      string `json:"name" binding:"required"`
	ContactNo string `json:"contact_no"`
	Street    string `json:"street"`
	City      string `json:"city"`
}

// CreateHospital 创建医院
func (h *Handler) CreateHospital(c *gin.Context) {
	var req CreateHospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	hospital := &models.Hospital{
		Name:      req.Name,
		ContactNo: req.ContactNo,
		Street:    req.Street,
		City:      req.City,
	}
	if err := h.DirectoryService.CreateHospital(hospital); err != nil {
		respondDirectoryError(c, err)
		return
	}
	response.Success(c, hospital)
}

// ListDoctors 获取医生列表
func (h *Handler) ListDoctors(c *gin.Context) {
	page, pageSize := parsePagination(c)
	hospitalID, _ := queryUint(c, "hospital_id")
	doctors, total, err := h.DirectoryService.ListDoctors(hospitalID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.directory_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, doctors, buildPagination(page, pageSize, total))
}

// CreateDoctorRequest 医生创建请求
type CreateDoctorRequest struct {
	Name       string `json:"name" binding:"required"`
	Speciality string `json:"speciality"`
	HospitalID uint   `json:"hospital_id" binding:"required"`
	ContactNo  string `json:"contact_no"`
}

// CreateDoctor 创建医生
func (h *Handler) CreateDoctor(c *gin.Context) {
	var req CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	doctor := &models.Doctor{
		Name:       req.Name,
		Speciality: req.Speciality,
		HospitalID: req.HospitalID,
		ContactNo:  req.ContactNo,
	}
	if err := h.DirectoryService.CreateDoctor(doctor); err != nil {
		respondDirectoryError(c, err)
		return
	}
	response.Success(c, doctor)
}

// ListPatients 获取患者列表
func (h *Handler) ListPatients(c *gin.Context) {
	page, pageSize := parsePagination(c)
	hospitalID, _ := queryUint(c, "hospital_id")
	patients, total, err := h.DirectoryService.ListPatients(hospitalID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.directory_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, patients, buildPagination(page, pageSize, total))
}

// CreatePatientRequest 患者创建请求
type CreatePatientRequest struct {
	Name        string `json:"name" binding:"required"`
	DateOfBirth string `json:"date_of_birth" binding:"required"`
	Gender      string `json:"gender"`
	BloodGroup  string `json:"blood_group" binding:"required"`
	HospitalID  uint   `json:"hospital_id" binding:"required"`
}

// CreatePatient 创建患者
func (h *Handler) CreatePatient(c *gin.Context) {
	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.validation_failed", nil)
		return
	}
	patient := &models.Patient{
		Name:        req.Name,
		DateOfBirth: dob,
		Gender:      req.Gender,
		BloodGroup:  req.BloodGroup,
		HospitalID:  req.HospitalID,
	}
	if err := h.DirectoryService.CreatePatient(patient); err != nil {
		respondDirectoryError(c, err)
		return
	}
	response.Success(c, patient)
}

// ListDonationTypes 获取献血类型列表
func (h *Handler) ListDonationTypes(c *gin.Context) {
	types, err := h.DirectoryService.ListDonationTypes()
	if err != nil {
		respondError(c, response.CodeInternal, "error.directory_fetch_failed", err)
		return
	}
	response.Success(c, types)
}

// CreateDonationTypeRequest 献血类型创建请求
type CreateDonationTypeRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateDonationType 创建献血类型
func (h *Handler) CreateDonationType(c *gin.Context) {
	var req CreateDonationTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	donationType := &models.DonationType{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.DirectoryService.CreateDonationType(donationType); err != nil {
		respondDirectoryError(c, err)
		return
	}
	response.Success(c, donationType)
}
