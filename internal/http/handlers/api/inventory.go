package api

import (
	"strconv"

	"github.com/bloodlink-next/internal/constants"
	"github.com/bloodlink-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetInventory 获取按血型库存
func (h *Handler) GetInventory(c *gin.Context) {
	response.Success(c, gin.H{
		"by_group":  h.InventoryService.GetStock(),
		"by_center": h.InventoryService.GetCenterStock(),
	})
}

// ListStoredUnits 获取在库血液单位列表
func (h *Handler) ListStoredUnits(c *gin.Context) {
	page, pageSize := parsePagination(c)
	centerID, _ := queryUint(c, "center_id")

	units, total, err := h.BloodUnitRepo.ListStored(c.Query("blood_group"), centerID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.inventory_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, units, buildPagination(page, pageSize, total))
}

// GetExpiryAlerts 获取临期预警
func (h *Handler) GetExpiryAlerts(c *gin.Context) {
	windowDays, _ := strconv.Atoi(c.DefaultQuery("window_days", strconv.Itoa(constants.ExpiryAlertWindowDays)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	response.Success(c, h.InventoryService.GetExpiryAlerts(windowDays, limit))
}

// GetAnalytics 获取分析统计
func (h *Handler) GetAnalytics(c *gin.Context) {
	response.Success(c, h.InventoryService.GetAnalytics())
}

// GetDashboard 获取总览统计
func (h *Handler) GetDashboard(c *gin.Context) {
	overview := h.InventoryService.GetDashboard()
	response.Success(c, gin.H{
		"donors_total":        overview.DonorsTotal,
		"donations_total":     overview.DonationsTotal,
		"units_stored":        overview.UnitsStored,
		"units_expiring_soon": overview.UnitsExpiringSoon,
		"requests_pending":    overview.RequestsPending,
		"requests_delivered":  overview.RequestsDelivered,
	})
}
