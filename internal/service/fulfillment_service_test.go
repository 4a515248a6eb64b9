package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bloodlink-next/internal/constants"
	"github.com/bloodlink-next/internal/models"
	"github.com/bloodlink-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupFulfillmentServiceTest(t *testing.T) (*FulfillmentService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:fulfillment_svc_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.BloodCenter{},
		&models.Staff{},
		&models.Hospital{},
		&models.Doctor{},
		&models.Patient{},
		&models.BloodUnit{},
		&models.BloodRequest{},
		&models.DeliveryRecord{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	svc := NewFulfillmentService(
		repository.NewBloodRequestRepository(db),
		repository.NewBloodUnitRepository(db),
		repository.NewDeliveryRecordRepository(db),
		nil,
	)
	return svc, db
}

func seedFulfillmentFixtures(t *testing.T, db *gorm.DB) (models.BloodRequest, models.Staff) {
	t.Helper()
	center := models.BloodCenter{Name: "Center One", City: "Beijing"}
	if err := db.Create(&center).Error; err != nil {
		t.Fatalf("create center failed: %v", err)
	}
	staff := models.Staff{Name: "Wang Jing", Role: "courier", CenterID: center.ID}
	if err := db.Create(&staff).Error; err != nil {
		t.Fatalf("create staff failed: %v", err)
	}
	hospital := models.Hospital{Name: "Union Hospital", City: "Beijing"}
	if err := db.Create(&hospital).Error; err != nil {
		t.Fatalf("create hospital failed: %v", err)
	}
	doctor := models.Doctor{Name: "Chen Hua", Speciality: "Hematology", HospitalID: hospital.ID}
	if err := db.Create(&doctor).Error; err != nil {
		t.Fatalf("create doctor failed: %v", err)
	}
	patient := models.Patient{
		Name:        "Zhao Min",
		DateOfBirth: time.Date(1988, 5, 12, 0, 0, 0, 0, time.UTC),
		Gender:      "female",
		BloodGroup:  "A+",
		HospitalID:  hospital.ID,
	}
	if err := db.Create(&patient).Error; err != nil {
		t.Fatalf("create patient failed: %v", err)
	}
	request := models.BloodRequest{
		HospitalID:    hospital.ID,
		DoctorID:      doctor.ID,
		PatientID:     patient.ID,
		BloodGroup:    "A+",
		RequiredUnits: 1,
		Urgency:       constants.UrgencyUrgent,
		Status:        constants.RequestStatusPending,
		RequestDate:   time.Now(),
	}
	if err := db.Create(&request).Error; err != nil {
		t.Fatalf("create blood request failed: %v", err)
	}
	return request, staff
}

func seedStoredUnit(t *testing.T, db *gorm.DB, donationID uint, bloodGroup string, expiryDate time.Time) models.BloodUnit {
	t.Helper()
	unit := models.BloodUnit{
		DonationID:   donationID,
		BloodGroup:   bloodGroup,
		CenterID:     1,
		StorageDate:  expiryDate.AddDate(0, 0, -constants.BloodUnitShelfLifeDays),
		ExpiryDate:   expiryDate,
		LatestResult: constants.TestResultClear,
		Status:       constants.BloodUnitStatusStored,
	}
	if err := db.Create(&unit).Error; err != nil {
		t.Fatalf("create blood unit failed: %v", err)
	}
	return unit
}

func TestListCandidatesOrdersByExpiry(t *testing.T) {
	svc, db := setupFulfillmentServiceTest(t)
	request, _ := seedFulfillmentFixtures(t, db)

	now := time.Now()
	late := seedStoredUnit(t, db, 101, "A+", now.AddDate(0, 0, 60))
	early := seedStoredUnit(t, db, 102, "A+", now.AddDate(0, 0, 10))
	middle := seedStoredUnit(t, db, 103, "A+", now.AddDate(0, 0, 30))
	// 不同血型、已过期、已使用的单位都不应出现在候选中
	seedStoredUnit(t, db, 104, "B+", now.AddDate(0, 0, 20))
	seedStoredUnit(t, db, 105, "A+", now.AddDate(0, 0, -1))
	used := seedStoredUnit(t, db, 106, "A+", now.AddDate(0, 0, 5))
	if err := db.Model(&models.BloodUnit{}).Where("id = ?", used.ID).
		Update("status", constants.BloodUnitStatusUsed).Error; err != nil {
		t.Fatalf("mark unit used failed: %v", err)
	}

	got, candidates, err := svc.ListCandidates(request.ID, 5)
	if err != nil {
		t.Fatalf("list candidates failed: %v", err)
	}
	if got.ID != request.ID {
		t.Fatalf("request id want %d got %d", request.ID, got.ID)
	}
	if len(candidates) != 3 {
		t.Fatalf("candidates len want 3 got %d", len(candidates))
	}
	wantOrder := []uint{early.ID, middle.ID, late.ID}
	for i, want := range wantOrder {
		if candidates[i].ID != want {
			t.Fatalf("candidate %d want unit %d got %d", i, want, candidates[i].ID)
		}
	}

	t.Run("limit applies", func(t *testing.T) {
		_, limited, err := svc.ListCandidates(request.ID, 2)
		if err != nil {
			t.Fatalf("list candidates failed: %v", err)
		}
		if len(limited) != 2 {
			t.Fatalf("candidates len want 2 got %d", len(limited))
		}
		if limited[0].ID != early.ID {
			t.Fatalf("first candidate want earliest expiry unit %d got %d", early.ID, limited[0].ID)
		}
	})
}

func TestFulfillDeliversExactlyOnce(t *testing.T) {
	svc, db := setupFulfillmentServiceTest(t)
	request, staff := seedFulfillmentFixtures(t, db)
	unit := seedStoredUnit(t, db, 201, "A+", time.Now().AddDate(0, 0, 45))

	record, err := svc.Fulfill(FulfillInput{
		RequestID:     request.ID,
		BloodUnitID:   unit.ID,
		DeliveredByID: staff.ID,
	})
	if err != nil {
		t.Fatalf("fulfill failed: %v", err)
	}
	if record.Condition != constants.DeliveryConditionDefault {
		t.Fatalf("delivery condition want %q got %q", constants.DeliveryConditionDefault, record.Condition)
	}

	var updatedUnit models.BloodUnit
	if err := db.First(&updatedUnit, unit.ID).Error; err != nil {
		t.Fatalf("load unit failed: %v", err)
	}
	if updatedUnit.Status != constants.BloodUnitStatusUsed {
		t.Fatalf("unit status want used got %s", updatedUnit.Status)
	}
	if updatedUnit.UsedAt == nil {
		t.Fatal("expected used_at to be set")
	}

	var updatedRequest models.BloodRequest
	if err := db.First(&updatedRequest, request.ID).Error; err != nil {
		t.Fatalf("load request failed: %v", err)
	}
	if updatedRequest.Status != constants.RequestStatusDelivered {
		t.Fatalf("request status want delivered got %s", updatedRequest.Status)
	}

	// 重复交付同一申请被拒绝
	if _, err := svc.Fulfill(FulfillInput{
		RequestID:     request.ID,
		BloodUnitID:   unit.ID,
		DeliveredByID: staff.ID,
	}); !errors.Is(err, ErrRequestAlreadyDelivered) {
		t.Fatalf("want ErrRequestAlreadyDelivered got %v", err)
	}

	var deliveries int64
	if err := db.Model(&models.DeliveryRecord{}).Count(&deliveries).Error; err != nil {
		t.Fatalf("count deliveries failed: %v", err)
	}
	if deliveries != 1 {
		t.Fatalf("delivery count want 1 got %d", deliveries)
	}
}

func TestFulfillRejectsUnusableUnits(t *testing.T) {
	svc, db := setupFulfillmentServiceTest(t)
	request, staff := seedFulfillmentFixtures(t, db)

	t.Run("blood group mismatch", func(t *testing.T) {
		unit := seedStoredUnit(t, db, 301, "B-", time.Now().AddDate(0, 0, 30))
		if _, err := svc.Fulfill(FulfillInput{
			RequestID:     request.ID,
			BloodUnitID:   unit.ID,
			DeliveredByID: staff.ID,
		}); !errors.Is(err, ErrUnitBloodGroupMismatch) {
			t.Fatalf("want ErrUnitBloodGroupMismatch got %v", err)
		}
	})

	t.Run("expired unit", func(t *testing.T) {
		unit := seedStoredUnit(t, db, 302, "A+", time.Now().AddDate(0, 0, -1))
		if _, err := svc.Fulfill(FulfillInput{
			RequestID:     request.ID,
			BloodUnitID:   unit.ID,
			DeliveredByID: staff.ID,
		}); !errors.Is(err, ErrUnitExpired) {
			t.Fatalf("want ErrUnitExpired got %v", err)
		}
	})

	t.Run("already used unit", func(t *testing.T) {
		unit := seedStoredUnit(t, db, 303, "A+", time.Now().AddDate(0, 0, 30))
		if err := db.Model(&models.BloodUnit{}).Where("id = ?", unit.ID).
			Update("status", constants.BloodUnitStatusUsed).Error; err != nil {
			t.Fatalf("mark unit used failed: %v", err)
		}
		if _, err := svc.Fulfill(FulfillInput{
			RequestID:     request.ID,
			BloodUnitID:   unit.ID,
			DeliveredByID: staff.ID,
		}); !errors.Is(err, ErrUnitUnavailable) {
			t.Fatalf("want ErrUnitUnavailable got %v", err)
		}
	})

	t.Run("unknown unit", func(t *testing.T) {
		if _, err := svc.Fulfill(FulfillInput{
			RequestID:     request.ID,
			BloodUnitID:   9999,
			DeliveredByID: staff.ID,
		}); !errors.Is(err, ErrUnitNotFound) {
			t.Fatalf("want ErrUnitNotFound got %v", err)
		}
	})

	t.Run("unknown request", func(t *testing.T) {
		unit := seedStoredUnit(t, db, 304, "A+", time.Now().AddDate(0, 0, 30))
		if _, err := svc.Fulfill(FulfillInput{
			RequestID:     9999,
			BloodUnitID:   unit.ID,
			DeliveredByID: staff.ID,
		}); !errors.Is(err, ErrRequestNotFound) {
			t.Fatalf("want ErrRequestNotFound got %v", err)
		}
	})

	// 所有失败路径都不应产生交付记录
	var deliveries int64
	if err := db.Model(&models.DeliveryRecord{}).Count(&deliveries).Error; err != nil {
		t.Fatalf("count deliveries failed: %v", err)
	}
	if deliveries != 0 {
		t.Fatalf("delivery count want 0 got %d", deliveries)
	}
}
