package api

import (
	"time"

	"github.com/bloodlink-next/internal/http/response"
	"github.com/bloodlink-next/internal/repository"
	"github.com/bloodlink-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateDonationRequest 回访献血录入请求
type CreateDonationRequest struct {
	DonorID        uint   `json:"donor_id" binding:"required"`
	DonationTypeID uint   `json:"donation_type_id" binding:"required"`
	DonationDate   string `json:"donation_date"`
	AmountML       int    `json:"amount_ml" binding:"required"`
	CollectedByID  uint   `json:"collected_by_id" binding:"required"`
	CenterID       uint   `json:"center_id" binding:"required"`
}

// CreateDonation 录入已建档献血者的回访献血
func (h *Handler) CreateDonation(c *gin.Context) {
	var req CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
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
		DonorID:        req.DonorID,
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
	response.Success(c, donation)
}

// DirectDonationRequest 老献血者直接献血请求
type DirectDonationRequest struct {
	Email          string `json:"email" binding:"required,email"`
	DonationTypeID uint   `json:"donation_type_id" binding:"required"`
	DonationDate   string `json:"donation_date"`
	AmountML       int    `json:"amount_ml" binding:"required"`
	CollectedByID  uint   `json:"collected_by_id" binding:"required"`
	CenterID       uint   `json:"center_id" binding:"required"`
}

// CreateDirectDonation 老献血者凭邮箱直接献血
func (h *Handler) CreateDirectDonation(c *gin.Context) {
	var req DirectDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
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

	donation, err := h.DonationService.RecordDirectDonation(service.DirectDonationInput{
		Email:          req.Email,
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
	response.Success(c, donation)
}

// GetDonation 获取献血记录详情
func (h *Handler) GetDonation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	donation, err := h.DonationService.GetDonation(id)
	if err != nil {
		respondWithMappedError(c, err, donationErrorRules, response.CodeNotFound, "error.not_found")
		return
	}
	response.Success(c, donation)
}

// ListDonations 获取献血记录列表
func (h *Handler) ListDonations(c *gin.Context) {
	page, pageSize := parsePagination(c)

	filter := repository.DonationListFilter{}
	if donorID, ok := queryUint(c, "donor_id"); ok {
		filter.DonorID = donorID
	}
	if typeID, ok := queryUint(c, "donation_type_id"); ok {
		filter.DonationTypeID = typeID
	}

	donations, total, err := h.DonationService.ListDonations(filter, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.donation_record_failed", err)
		return
	}
	response.SuccessWithPage(c, donations, buildPagination(page, pageSize, total))
}
