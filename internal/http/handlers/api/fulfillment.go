package api

import (
	"strconv"

	"github.com/bloodlink-next/internal/http/response"
	"github.com/bloodlink-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListRequestCandidates 获取申请的可交付候选单位
func (h *Handler) ListRequestCandidates(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	request, candidates, err := h.FulfillmentService.ListCandidates(id, limit)
	if err != nil {
		respondFulfillmentError(c, err)
		return
	}
	response.Success(c, gin.H{
		"request":    request,
		"candidates": candidates,
	})
}

// FulfillRequestRequest 交付请求
type FulfillRequestRequest struct {
	BloodUnitID   uint `json:"blood_unit_id" binding:"required"`
	DeliveredByID uint `json:"delivered_by_id" binding:"required"`
}

// FulfillRequest 交付用血申请
func (h *Handler) FulfillRequest(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req FulfillRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	record, err := h.FulfillmentService.Fulfill(service.FulfillInput{
		RequestID:     id,
		BloodUnitID:   req.BloodUnitID,
		DeliveredByID: req.DeliveredByID,
	})
	if err != nil {
		respondFulfillmentError(c, err)
		return
	}
	response.Success(c, record)
}

// ListDeliveries 获取交付记录列表
func (h *Handler) ListDeliveries(c *gin.Context) {
	page, pageSize := parsePagination(c)
	records, total, err := h.DeliveryRepo.List(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.fulfillment_failed", err)
		return
	}
	response.SuccessWithPage(c, records, buildPagination(page, pageSize, total))
}
