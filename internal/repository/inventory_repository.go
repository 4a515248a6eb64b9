package repository

import (
	"fmt"
	"time"

	"github.com/bloodlink-next/internal/constants"
	"github.com/bloodlink-next/internal/models"

	"gorm.io/gorm"
)

// InventoryRepository 库存与统计聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type InventoryRepository interface {
	GetStockByGroup(onDate time.Time) ([]InventoryStockRow, error)
	GetStockByCenter(onDate time.Time) ([]InventoryCenterStockRow, error)
	GetExpiringUnits(onDate time.Time, windowDays, limit int) ([]models.BloodUnit, error)
	GetExpiredStoredUnits(onDate time.Time) ([]models.BloodUnit, error)
	GetDemandByGroup(limit int) ([]DemandRankingRow, error)
	GetTopDonors(limit int) ([]DonorRankingRow, error)
	GetTopHospitals(limit int) ([]HospitalRankingRow, error)
	GetMonthlyDonationTrend(startAt, endAt time.Time) ([]DonationTrendRow, error)
	GetOverview(onDate time.Time) (OverviewRow, error)
}

// InventoryStockRow 按血型库存统计
type InventoryStockRow struct {
	BloodGroup string
	Units      int64
	TotalML    int64
}

// InventoryCenterStockRow 按血站库存统计
type InventoryCenterStockRow struct {
	CenterID   uint
	CenterName string
	BloodGroup string
	Units      int64
}

// DemandRankingRow 待处理需求排行
type DemandRankingRow struct {
	BloodGroup    string
	PendingCount  int64
	RequiredUnits int64
}

// DonorRankingRow 献血者排行
type DonorRankingRow struct {
	DonorID    uint
	Name       string
	BloodGroup string
	Donations  int64
	TotalML    int64
}

// HospitalRankingRow 医院用血排行
type HospitalRankingRow struct {
	HospitalID uint
	Name       string
	Requests   int64
	Delivered  int64
}

// DonationTrendRow 献血趋势统计
type DonationTrendRow struct {
	Month     string
	Donations int64
	TotalML   int64
}

// OverviewRow 总览统计原始结果
type OverviewRow struct {
	DonorsTotal       int64
	DonationsTotal    int64
	UnitsStored       int64
	UnitsExpiringSoon int64
	RequestsPending   int64
	RequestsDelivered int64
}

// GormInventoryRepository GORM 聚合实现
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository 创建库存统计仓库
func NewInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

func (r *GormInventoryRepository) storedUnitBase(onDate time.Time) *gorm.DB {
	return r.db.Model(&models.BloodUnit{}).
		Where("blood_units.status = ? AND blood_units.expiry_date > ?", constants.BloodUnitStatusStored, onDate)
}

// GetStockByGroup 按血型统计可用库存
func (r *GormInventoryRepository) GetStockByGroup(onDate time.Time) ([]InventoryStockRow, error) {
	var rows []InventoryStockRow
	err := r.storedUnitBase(onDate).
		Select("blood_units.blood_group, COUNT(*) as units, COALESCE(SUM(donations.amount_ml), 0) as total_ml").
		Joins("LEFT JOIN donations ON donations.id = blood_units.donation_id").
		Group("blood_units.blood_group").
		Order("blood_units.blood_group asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetStockByCenter 按血站与血型统计可用库存
func (r *GormInventoryRepository) GetStockByCenter(onDate time.Time) ([]InventoryCenterStockRow, error) {
	var rows []InventoryCenterStockRow
	err := r.storedUnitBase(onDate).
		Select("blood_units.center_id, blood_centers.name as center_name, blood_units.blood_group, COUNT(*) as units").
		Joins("LEFT JOIN blood_centers ON blood_centers.id = blood_units.center_id").
		Group("blood_units.center_id, blood_centers.name, blood_units.blood_group").
		Order("blood_units.center_id asc, blood_units.blood_group asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetExpiringUnits 获取临期血液单位
// 按到期日升序返回窗口期内仍在库的单位。
func (r *GormInventoryRepository) GetExpiringUnits(onDate time.Time, windowDays, limit int) ([]models.BloodUnit, error) {
	if windowDays <= 0 {
		windowDays = constants.ExpiryAlertWindowDays
	}
	deadline := onDate.AddDate(0, 0, windowDays)

	query := r.db.
		Where("status = ? AND expiry_date > ? AND expiry_date <= ?", constants.BloodUnitStatusStored, onDate, deadline).
		Preload("Center").
		Order("expiry_date asc, id asc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var units []models.BloodUnit
	if err := query.Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// GetExpiredStoredUnits 获取已过期但仍标记在库的单位
func (r *GormInventoryRepository) GetExpiredStoredUnits(onDate time.Time) ([]models.BloodUnit, error) {
	var units []models.BloodUnit
	err := r.db.
		Where("status = ? AND expiry_date <= ?", constants.BloodUnitStatusStored, onDate).
		Order("expiry_date asc, id asc").
		Find(&units).Error
	if err != nil {
		return nil, err
	}
	return units, nil
}

// GetDemandByGroup 获取待处理需求最高的血型排行
func (r *GormInventoryRepository) GetDemandByGroup(limit int) ([]DemandRankingRow, error) {
	if limit <= 0 {
		limit = 5
	}
	var rows []DemandRankingRow
	err := r.db.Model(&models.BloodRequest{}).
		Select("blood_group, COUNT(*) as pending_count, COALESCE(SUM(required_units), 0) as required_units").
		Where("status = ?", constants.RequestStatusPending).
		Group("blood_group").
		Order("pending_count DESC, blood_group asc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetTopDonors 获取献血次数最多的献血者排行
func (r *GormInventoryRepository) GetTopDonors(limit int) ([]DonorRankingRow, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []DonorRankingRow
	err := r.db.Model(&models.Donation{}).
		Select("donations.donor_id, donors.name, donors.blood_group, COUNT(*) as donations, COALESCE(SUM(donations.amount_ml), 0) as total_ml").
		Joins("LEFT JOIN donors ON donors.id = donations.donor_id").
		Group("donations.donor_id, donors.name, donors.blood_group").
		Order("donations DESC, donations.donor_id asc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetTopHospitals 获取申请用血最多的医院排行
func (r *GormInventoryRepository) GetTopHospitals(limit int) ([]HospitalRankingRow, error) {
	if limit <= 0 {
		limit = 5
	}
	var rows []HospitalRankingRow
	err := r.db.Model(&models.BloodRequest{}).
		Select("blood_requests.hospital_id, hospitals.name, COUNT(*) as requests, COALESCE(SUM(CASE WHEN blood_requests.status = ? THEN 1 ELSE 0 END), 0) as delivered", constants.RequestStatusDelivered).
		Joins("LEFT JOIN hospitals ON hospitals.id = blood_requests.hospital_id").
		Group("blood_requests.hospital_id, hospitals.name").
		Order("requests DESC, blood_requests.hospital_id asc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetMonthlyDonationTrend 获取按月献血趋势
func (r *GormInventoryRepository) GetMonthlyDonationTrend(startAt, endAt time.Time) ([]DonationTrendRow, error) {
	var rows []DonationTrendRow
	monthExpr := "substr(CAST(date(donation_date) AS TEXT), 1, 7)"
	err := r.db.Model(&models.Donation{}).
		Select(fmt.Sprintf("%s as month, COUNT(*) as donations, COALESCE(SUM(amount_ml), 0) as total_ml", monthExpr)).
		Where("donation_date >= ? AND donation_date < ?", startAt, endAt).
		Group(monthExpr).
		Order("month asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetOverview 获取总览统计
func (r *GormInventoryRepository) GetOverview(onDate time.Time) (OverviewRow, error) {
	result := OverviewRow{}

	if err := r.db.Model(&models.Donor{}).Count(&result.DonorsTotal).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Donation{}).Count(&result.DonationsTotal).Error; err != nil {
		return result, err
	}
	if err := r.storedUnitBase(onDate).Count(&result.UnitsStored).Error; err != nil {
		return result, err
	}

	deadline := onDate.AddDate(0, 0, constants.ExpiryAlertWindowDays)
	if err := r.db.Model(&models.BloodUnit{}).
		Where("status = ? AND expiry_date > ? AND expiry_date <= ?", constants.BloodUnitStatusStored, onDate, deadline).
		Count(&result.UnitsExpiringSoon).Error; err != nil {
		return result, err
	}

	if err := r.db.Model(&models.BloodRequest{}).
		Where("status = ?", constants.RequestStatusPending).
		Count(&result.RequestsPending).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.BloodRequest{}).
		Where("status = ?", constants.RequestStatusDelivered).
		Count(&result.RequestsDelivered).Error; err != nil {
		return result, err
	}
	return result, nil
}
