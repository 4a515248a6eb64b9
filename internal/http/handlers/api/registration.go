package api

import (
	"time"

	"github.com/bloodlink-next/internal/http/response"
	"github.com/bloodlink-next/internal/service"

	"github.com/gin-gonic/gin"
)

// StartRegistration 启动献血者登记流程
func (h *Handler) StartRegistration(c *gin.Context) {
	state, err := h.RegistrationService.Start(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.registration_start_failed", err)
		return
	}
	response.Success(c, gin.H{
		"token": state.Token,
		"state": state.State,
	})
}

// GetRegistration 获取登记流程当前状态
func (h *Handler) GetRegistration(c *gin.Context) {
	token := c.Param("token")
	state, err := h.RegistrationService.Get(c.Request.Context(), token)
	if err != nil {
		respondRegistrationError(c, err)
		return
	}
	response.Success(c, state)
}

// RegistrationInfoRequest 登记基础信息请求
type RegistrationInfoRequest struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	BloodGroup  string `json:"blood_group"`
	ContactNo   string `json:"contact_no"`
	Email       string `json:"email"`
	Street      string `json:"street"`
	City        string `json:"city"`
}

// SubmitRegistrationInfo 提交登记基础信息
func (h *Handler) SubmitRegistrationInfo(c *gin.Context) {
	token := c.Param("token")
	var req RegistrationInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	state, err := h.RegistrationService.SubmitInfo(c.Request.Context(), token, service.RegistrationInfoInput{
		Name:        req.Name,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		BloodGroup:  req.BloodGroup,
		ContactNo:   req.ContactNo,
		Email:       req.Email,
		Street:      req.Street,
		City:        req.City,
	})
	if err != nil {
		respondRegistrationError(c, err)
		return
	}
	response.Success(c, state)
}

// RegistrationScreeningRequest 体检筛查结果请求
type RegistrationScreeningRequest struct {
	Passed  *bool  `json:"passed" binding:"required"`
	Remarks string `json:"remarks"`
}

// SubmitRegistrationScreening 提交体检筛查结果
func (h *Handler) SubmitRegistrationScreening(c *gin.Context) {
	token := c.Param("token")
	var req RegistrationScreeningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	state, err := h.RegistrationService.SubmitScreening(c.Request.Context(), token, service.ScreeningInput{
		Passed:  *req.Passed,
		Remarks: req.Remarks,
	})
	if err != nil {
		respondRegistrationError(c, err)
		return
	}
	response.Success(c, state)
}

// RegistrationDecisionRequest 捐献决策请求
type RegistrationDecisionRequest struct {
	DonateNow *bool `json:"donate_now" binding:"required"`
}

// SubmitRegistrationDecision 提交是否立即献血的决策
func (h *Handler) SubmitRegistrationDecision(c *gin.Context) {
	token := c.Param("token")
	var req RegistrationDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	state, err := h.RegistrationService.SubmitDecision(c.Request.Context(), token, *req.DonateNow)
	if err != nil {
		respondRegistrationError(c, err)
		return
	}
	response.Success(c, state)
}

// RegistrationDonationRequest 登记流程内献血录入请求
type RegistrationDonationRequest struct {
	DonationTypeID uint   `json:"donation_type_id" binding:"required"`
	DonationDate   string `json:"donation_date"`
	AmountML       int    `json:"amount_ml" binding:"required"`
	CollectedByID  uint   `json:"collected_by_id" binding:"required"`
	CenterID       uint   `json:"center_id" binding:"required"`
}

// RecordRegistrationDonation 完成登记流程内的首次献血
func (h *Handler) RecordRegistrationDonation(c *gin.Context) {
	token := c.Param("token")
	var req RegistrationDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	state, err := h.RegistrationService.GetForDonation(c.Request.Context(), token)
	if err != nil {
		respondRegistrationError(c, err)
		return
	}

	donationDate := time.Now()
	if req.DonationDate != "" {
		parsed, err := time.Parse("2006-01-02", req.DonationDate)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.validation_failed", nil)
			return
		}
		donationDate = parsed
	}

	donation, err := h.DonationService.RecordDonation(service.RecordDonationInput{
		DonorID:        state.DonorID,
		DonationTypeID: req.DonationTypeID,
		DonationDate:   donationDate,
		AmountML:       req.AmountML,
		CollectedByID:  req.CollectedByID,
		CenterID:       req.CenterID,
	})
	if err != nil {
		respondDonationError(c, err)
		return
	}

	if err := h.RegistrationService.Complete(c.Request.Context(), token); err != nil {
		requestLog(c).Warnw("registration_complete_failed", "token", token, "error", err)
	}
	response.Success(c, donation)
}
