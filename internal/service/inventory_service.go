package service

import (
	"time"

	"github.com/bloodlink-next/internal/logger"
	"github.com/bloodlink-next/internal/models"
	"github.com/bloodlink-next/internal/repository"
)

// InventoryService 库存与统计查询服务
// 查询失败时记录日志并降级为空结果，不向上抛错。
type InventoryService struct {
	inventoryRepo repository.InventoryRepository
}

// NewInventoryService 创建库存统计服务
func NewInventoryService(inventoryRepo repository.InventoryRepository) *InventoryService {
	return &InventoryService{inventoryRepo: inventoryRepo}
}

// GetStock 获取按血型库存
func (s *InventoryService) GetStock() []repository.InventoryStockRow {
	rows, err := s.inventoryRepo.GetStockByGroup(time.Now())
	if err != nil {
		logger.Warnw("inventory_stock_query_failed", "error", err)
		return []repository.InventoryStockRow{}
	}
	return rows
}

// GetCenterStock 获取按血站库存
func (s *InventoryService) GetCenterStock() []repository.InventoryCenterStockRow {
	rows, err := s.inventoryRepo.GetStockByCenter(time.Now())
	if err != nil {
		logger.Warnw("inventory_center_stock_query_failed", "error", err)
		return []repository.InventoryCenterStockRow{}
	}
	return rows
}

// GetExpiryAlerts 获取临期预警单位
func (s *InventoryService) GetExpiryAlerts(windowDays, limit int) []models.BloodUnit {
	units, err := s.inventoryRepo.GetExpiringUnits(time.Now(), windowDays, limit)
	if err != nil {
		logger.Warnw("inventory_expiry_alert_query_failed", "error", err)
		return []models.BloodUnit{}
	}
	return units
}

// AnalyticsSummary 分析统计汇总
type AnalyticsSummary struct {
	DemandByGroup []repository.DemandRankingRow   `json:"demand_by_group"`
	TopDonors     []repository.DonorRankingRow    `json:"top_donors"`
	TopHospitals  []repository.HospitalRankingRow `json:"top_hospitals"`
	MonthlyTrend  []repository.DonationTrendRow   `json:"monthly_trend"`
}

// GetAnalytics 获取分析统计汇总
func (s *InventoryService) GetAnalytics() AnalyticsSummary {
	summary := AnalyticsSummary{
		DemandByGroup: []repository.DemandRankingRow{},
		TopDonors:     []repository.DonorRankingRow{},
		TopHospitals:  []repository.HospitalRankingRow{},
		MonthlyTrend:  []repository.DonationTrendRow{},
	}

	if rows, err := s.inventoryRepo.GetDemandByGroup(5); err != nil {
		logger.Warnw("analytics_demand_query_failed", "error", err)
	} else {
		summary.DemandByGroup = rows
	}
	if rows, err := s.inventoryRepo.GetTopDonors(10); err != nil {
		logger.Warnw("analytics_top_donors_query_failed", "error", err)
	} else {
		summary.TopDonors = rows
	}
	if rows, err := s.inventoryRepo.GetTopHospitals(5); err != nil {
		logger.Warnw("analytics_top_hospitals_query_failed", "error", err)
	} else {
		summary.TopHospitals = rows
	}

	now := time.Now()
	startAt := time.Date(now.Year()-1, now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if rows, err := s.inventoryRepo.GetMonthlyDonationTrend(startAt, now); err != nil {
		logger.Warnw("analytics_trend_query_failed", "error", err)
	} else {
		summary.MonthlyTrend = rows
	}
	return summary
}

// GetDashboard 获取总览统计
func (s *InventoryService) GetDashboard() repository.OverviewRow {
	overview, err := s.inventoryRepo.GetOverview(time.Now())
	if err != nil {
		logger.Warnw("dashboard_query_failed", "error", err)
		return repository.OverviewRow{}
	}
	return overview
}
