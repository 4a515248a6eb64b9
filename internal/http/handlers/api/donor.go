package api

import (
	"time"

	"github.com/bloodlink-next/internal/http/response"
	"github.com/bloodlink-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// SearchDonors 按条件检索献血者
func (h *Handler) SearchDonors(c *gin.Context) {
	page, pageSize := parsePagination(c)
	filter := repository.DonorSearchFilter{
		Keyword:    c.Query("keyword"),
		BloodGroup: c.Query("blood_group"),
		City:       c.Query("city"),
	}

	donors, total, err := h.DonorService.SearchDonors(filter, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.donor_not_found", err)
		return
	}
	response.SuccessWithPage(c, donors, buildPagination(page, pageSize, total))
}

// GetDonor 获取献血者详情
func (h *Handler) GetDonor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	detail, err := h.DonorService.GetDonorDetail(id)
	if err != nil {
		respondWithMappedError(c, err, donationErrorRules, response.CodeInternal, "error.donor_not_found")
		return
	}
	response.Success(c, detail)
}

// GetDonorEligibility 获取献血者献血资格
func (h *Handler) GetDonorEligibility(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	onDate := time.Now()
	if raw := c.Query("on_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		onDate = parsed
	}

	result, err := h.DonorService.CheckEligibility(id, onDate)
	if err != nil {
		respondWithMappedError(c, err, donationErrorRules, response.CodeInternal, "error.donor_not_found")
		return
	}
	response.Success(c, result)
}

// ListDonorDonations 获取献血者献血历史
func (h *Handler) ListDonorDonations(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	donations, err := h.DonorService.ListDonorDonations(id)
	if err != nil {
		respondWithMappedError(c, err, donationErrorRules, response.CodeInternal, "error.donor_not_found")
		return
	}
	response.Success(c, donations)
}
