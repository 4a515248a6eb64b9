package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/bloodlink-next/internal/constants"
	"github.com/bloodlink-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupInventoryRepositoryTest(t *testing.T) (*GormInventoryRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:inventory_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.BloodCenter{},
		&models.Hospital{},
		&models.Donor{},
		&models.Donation{},
		&models.BloodUnit{},
		&models.BloodRequest{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewInventoryRepository(db), db
}

func TestInventoryStockByGroup(t *testing.T) {
	repo, db := setupInventoryRepositoryTest(t)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	donor := models.Donor{
		Name:        "Zhou Qiang",
		DateOfBirth: time.Date(1990, 7, 20, 0, 0, 0, 0, time.UTC),
		Gender:      "male",
		BloodGroup:  "O-",
		Email:       "zhou.qiang@example.com",
	}
	if err := db.Create(&donor).Error; err != nil {
		t.Fatalf("create donor failed: %v", err)
	}

	donations := []models.Donation{
		{DonorID: donor.ID, DonationTypeID: 1, DonationDate: now.AddDate(0, 0, -10), AmountML: 450, CollectedByID: 1},
		{DonorID: donor.ID, DonationTypeID: 1, DonationDate: now.AddDate(0, 0, -5), AmountML: 350, CollectedByID: 1},
		{DonorID: donor.ID, DonationTypeID: 1, DonationDate: now.AddDate(0, 0, -3), AmountML: 400, CollectedByID: 1},
	}
	if err := db.Create(&donations).Error; err != nil {
		t.Fatalf("create donations failed: %v", err)
	}

	units := []models.BloodUnit{
		{DonationID: donations[0].ID, BloodGroup: "O-", CenterID: 1, StorageDate: now.AddDate(0, 0, -10), ExpiryDate: now.AddDate(0, 0, 80), Status: constants.BloodUnitStatusStored},
		{DonationID: donations[1].ID, BloodGroup: "O-", CenterID: 1, StorageDate: now.AddDate(0, 0, -5), ExpiryDate: now.AddDate(0, 0, 85), Status: constants.BloodUnitStatusStored},
		// 已使用的单位不计入库存
		{DonationID: donations[2].ID, BloodGroup: "O-", CenterID: 1, StorageDate: now.AddDate(0, 0, -3), ExpiryDate: now.AddDate(0, 0, 87), Status: constants.BloodUnitStatusUsed},
	}
	if err := db.Create(&units).Error; err != nil {
		t.Fatalf("create units failed: %v", err)
	}

	rows, err := repo.GetStockByGroup(now)
	if err != nil {
		t.Fatalf("stock by group failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows len want 1 got %d", len(rows))
	}
	if rows[0].BloodGroup != "O-" {
		t.Fatalf("blood group want O- got %s", rows[0].BloodGroup)
	}
	if rows[0].Units != 2 {
		t.Fatalf("units want 2 got %d", rows[0].Units)
	}
	if rows[0].TotalML != 800 {
		t.Fatalf("total_ml want 800 got %d", rows[0].TotalML)
	}
}

func TestInventoryExpiringUnits(t *testing.T) {
	repo, db := setupInventoryRepositoryTest(t)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	units := []models.BloodUnit{
		{DonationID: 1, BloodGroup: "A+", CenterID: 1, StorageDate: now.AddDate(0, 0, -87), ExpiryDate: now.AddDate(0, 0, 3), Status: constants.BloodUnitStatusStored},
		{DonationID: 2, BloodGroup: "A+", CenterID: 1, StorageDate: now.AddDate(0, 0, -85), ExpiryDate: now.AddDate(0, 0, 5), Status: constants.BloodUnitStatusStored},
		// 窗口外
		{DonationID: 3, BloodGroup: "A+", CenterID: 1, StorageDate: now.AddDate(0, 0, -30), ExpiryDate: now.AddDate(0, 0, 60), Status: constants.BloodUnitStatusStored},
		// 已过期
		{DonationID: 4, BloodGroup: "A+", CenterID: 1, StorageDate: now.AddDate(0, 0, -95), ExpiryDate: now.AddDate(0, 0, -5), Status: constants.BloodUnitStatusStored},
	}
	if err := db.Create(&units).Error; err != nil {
		t.Fatalf("create units failed: %v", err)
	}

	rows, err := repo.GetExpiringUnits(now, constants.ExpiryAlertWindowDays, 0)
	if err != nil {
		t.Fatalf("expiring units failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows len want 2 got %d", len(rows))
	}
	if !rows[0].ExpiryDate.Before(rows[1].ExpiryDate) {
		t.Fatalf("expected expiry ascending, got %s then %s", rows[0].ExpiryDate, rows[1].ExpiryDate)
	}

	expired, err := repo.GetExpiredStoredUnits(now)
	if err != nil {
		t.Fatalf("expired units failed: %v", err)
	}
	if len(expired) != 1 {
		t.Fatalf("expired len want 1 got %d", len(expired))
	}
}

func TestInventoryDemandAndOverview(t *testing.T) {
	repo, db := setupInventoryRepositoryTest(t)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	hospital := models.Hospital{Name: "Union Hospital", City: "Beijing"}
	if err := db.Create(&hospital).Error; err != nil {
		t.Fatalf("create hospital failed: %v", err)
	}

	requests := []models.BloodRequest{
		{HospitalID: hospital.ID, DoctorID: 1, PatientID: 1, BloodGroup: "A+", RequiredUnits: 2, Urgency: constants.UrgencyUrgent, Status: constants.RequestStatusPending, RequestDate: now},
		{HospitalID: hospital.ID, DoctorID: 1, PatientID: 2, BloodGroup: "A+", RequiredUnits: 1, Urgency: constants.UrgencyNormal, Status: constants.RequestStatusPending, RequestDate: now},
		{HospitalID: hospital.ID, DoctorID: 1, PatientID: 3, BloodGroup: "O-", RequiredUnits: 1, Urgency: constants.UrgencyCritical, Status: constants.RequestStatusDelivered, RequestDate: now},
	}
	if err := db.Create(&requests).Error; err != nil {
		t.Fatalf("create requests failed: %v", err)
	}

	rows, err := repo.GetDemandByGroup(5)
	if err != nil {
		t.Fatalf("demand by group failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows len want 1 got %d", len(rows))
	}
	if rows[0].BloodGroup != "A+" || rows[0].PendingCount != 2 || rows[0].RequiredUnits != 3 {
		t.Fatalf("unexpected demand row: %+v", rows[0])
	}

	overview, err := repo.GetOverview(now)
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	if overview.RequestsPending != 2 {
		t.Fatalf("requests_pending want 2 got %d", overview.RequestsPending)
	}
	if overview.RequestsDelivered != 1 {
		t.Fatalf("requests_delivered want 1 got %d", overview.RequestsDelivered)
	}

	hospitals, err := repo.GetTopHospitals(5)
	if err != nil {
		t.Fatalf("top hospitals failed: %v", err)
	}
	if len(hospitals) != 1 {
		t.Fatalf("hospitals len want 1 got %d", len(hospitals))
	}
	if hospitals[0].Requests != 3 || hospitals[0].Delivered != 1 {
		t.Fatalf("unexpected hospital row: %+v", hospitals[0])
	}
}

func TestInventoryMonthlyDonationTrend(t *testing.T) {
	repo, db := setupInventoryRepositoryTest(t)

	donations := []models.Donation{
		{DonorID: 1, DonationTypeID: 1, DonationDate: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), AmountML: 450, CollectedByID: 1},
		{DonorID: 2, DonationTypeID: 1, DonationDate: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), AmountML: 350, CollectedByID: 1},
		{DonorID: 3, DonationTypeID: 1, DonationDate: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), AmountML: 400, CollectedByID: 1},
		// 区间外
		{DonorID: 4, DonationTypeID: 1, DonationDate: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), AmountML: 450, CollectedByID: 1},
	}
	if err := db.Create(&donations).Error; err != nil {
		t.Fatalf("create donations failed: %v", err)
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	rows, err := repo.GetMonthlyDonationTrend(start, end)
	if err != nil {
		t.Fatalf("monthly trend failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows len want 2 got %d", len(rows))
	}
	if rows[0].Month != "2024-01" || rows[0].Donations != 2 || rows[0].TotalML != 800 {
		t.Fatalf("unexpected january row: %+v", rows[0])
	}
	if rows[1].Month != "2024-02" || rows[1].Donations != 1 {
		t.Fatalf("unexpected february row: %+v", rows[1])
	}
}
