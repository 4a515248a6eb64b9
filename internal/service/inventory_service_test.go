package service

import (
	"errors"
	"testing"
	"time"

	"github.com/bloodlink-next/internal/models"
	"github.com/bloodlink-next/internal/repository"
)

type failingInventoryRepository struct{}

var errInventoryUnavailable = errors.New("inventory backend unavailable")

func (failingInventoryRepository) GetStockByGroup(onDate time.Time) ([]repository.InventoryStockRow, error) {
	return nil, errInventoryUnavailable
}

func (failingInventoryRepository) GetStockByCenter(onDate time.Time) ([]repository.InventoryCenterStockRow, error) {
	return nil, errInventoryUnavailable
}

func (failingInventoryRepository) GetExpiringUnits(onDate time.Time, windowDays, limit int) ([]models.BloodUnit, error) {
	return nil, errInventoryUnavailable
}

func (failingInventoryRepository) GetExpiredStoredUnits(onDate time.Time) ([]models.BloodUnit, error) {
	return nil, errInventoryUnavailable
}

func (failingInventoryRepository) GetDemandByGroup(limit int) ([]repository.DemandRankingRow, error) {
	return nil, errInventoryUnavailable
}

func (failingInventoryRepository) GetTopDonors(limit int) ([]repository.DonorRankingRow, error) {
	return nil, errInventoryUnavailable
}

func (failingInventoryRepository) GetTopHospitals(limit int) ([]repository.HospitalRankingRow, error) {
	return nil, errInventoryUnavailable
}

func (failingInventoryRepository) GetMonthlyDonationTrend(startAt, endAt time.Time) ([]repository.DonationTrendRow, error) {
	return nil, errInventoryUnavailable
}

func (failingInventoryRepository) GetOverview(onDate time.Time) (repository.OverviewRow, error) {
	return repository.OverviewRow{}, errInventoryUnavailable
}

func TestInventoryServiceDegradesToEmpty(t *testing.T) {
	svc := NewInventoryService(failingInventoryRepository{})

	if stock := svc.GetStock(); stock == nil || len(stock) != 0 {
		t.Fatalf("stock want empty slice got %#v", stock)
	}
	if stock := svc.GetCenterStock(); stock == nil || len(stock) != 0 {
		t.Fatalf("center stock want empty slice got %#v", stock)
	}
	if alerts := svc.GetExpiryAlerts(7, 10); alerts == nil || len(alerts) != 0 {
		t.Fatalf("alerts want empty slice got %#v", alerts)
	}

	summary := svc.GetAnalytics()
	if summary.DemandByGroup == nil || len(summary.DemandByGroup) != 0 {
		t.Fatalf("demand want empty slice got %#v", summary.DemandByGroup)
	}
	if summary.TopDonors == nil || len(summary.TopDonors) != 0 {
		t.Fatalf("top donors want empty slice got %#v", summary.TopDonors)
	}
	if summary.TopHospitals == nil || len(summary.TopHospitals) != 0 {
		t.Fatalf("top hospitals want empty slice got %#v", summary.TopHospitals)
	}
	if summary.MonthlyTrend == nil || len(summary.MonthlyTrend) != 0 {
		t.Fatalf("monthly trend want empty slice got %#v", summary.MonthlyTrend)
	}

	overview := svc.GetDashboard()
	if overview != (repository.OverviewRow{}) {
		t.Fatalf("overview want zero value got %+v", overview)
	}
}
