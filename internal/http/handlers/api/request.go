package api

import (
	"github.com/bloodlink-next/internal/http/response"
	"github.com/bloodlink-next/internal/repository"
	"github.com/bloodlink-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateBloodRequestRequest 用血申请请求
type CreateBloodRequestRequest struct {
	HospitalID    uint   `json:"hospital_id" binding:"required"`
	DoctorID      uint   `json:"doctor_id" binding:"required"`
	PatientID     uint   `json:"patient_id" binding:"required"`
	BloodGroup    string `json:"blood_group" binding:"required"`
	RequiredUnits int    `json:"required_units" binding:"required"`
	Urgency       string `json:"urgency" binding:"required"`
}

// CreateBloodRequest 创建用血申请
func (h *Handler) CreateBloodRequest(c *gin.Context) {
	var req CreateBloodRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	request, err := h.RequestService.CreateRequest(service.CreateRequestInput{
		HospitalID:    req.HospitalID,
		DoctorID:      req.DoctorID,
		PatientID:     req.PatientID,
		BloodGroup:    req.BloodGroup,
		RequiredUnits: req.RequiredUnits,
		Urgency:       req.Urgency,
	})
	if err != nil {
		respondRequestError(c, err)
		return
	}
	response.Success(c, request)
}

// GetBloodRequest 获取用血申请详情
func (h *Handler) GetBloodRequest(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	request, err := h.RequestService.GetRequest(id)
	if err != nil {
		respondRequestError(c, err)
		return
	}
	response.Success(c, request)
}

// ListBloodRequests 获取用血申请列表
func (h *Handler) ListBloodRequests(c *gin.Context) {
	page, pageSize := parsePagination(c)
	filter := repository.BloodRequestListFilter{
		Status:     c.Query("status"),
		Urgency:    c.Query("urgency"),
		BloodGroup: c.Query("blood_group"),
	}
	if hospitalID, ok := queryUint(c, "hospital_id"); ok {
		filter.HospitalID = hospitalID
	}

	requests, total, err := h.RequestService.ListRequests(filter, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.request_create_failed", err)
		return
	}
	response.SuccessWithPage(c, requests, buildPagination(page, pageSize, total))
}
