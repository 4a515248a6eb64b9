package service

import (
	"context"
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

func setupWorkflowTest(t *testing.T) (*RegistrationService, *DonationService, *DonorService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:workflow_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.BloodCenter{},
		&models.Staff{},
		&models.DonationType{},
		&models.Donor{},
		&models.Donation{},
		&models.BloodUnit{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	donorRepo := repository.NewDonorRepository(db)
	donationRepo := repository.NewDonationRepository(db)

	registration := NewRegistrationService(NewMemoryRegistrationStore(10*time.Minute), donorRepo)
	donation := NewDonationService(
		donorRepo,
		donationRepo,
		repository.NewBloodUnitRepository(db),
		repository.NewDirectoryRepository(db),
	)
	donor := NewDonorService(donorRepo, donationRepo)
	return registration, donation, donor, db
}

// 新献血者从登记到首次献血再到下一次资格判定的完整链路。
func TestDonorLifecycle(t *testing.T) {
	registration, donationSvc, donorSvc, db := setupWorkflowTest(t)
	ctx := context.Background()

	center := models.BloodCenter{Name: "Center One", City: "Beijing"}
	if err := db.Create(&center).Error; err != nil {
		t.Fatalf("create center failed: %v", err)
	}
	staff := models.Staff{Name: "Li Wen", Role: "phlebotomist", CenterID: center.ID}
	if err := db.Create(&staff).Error; err != nil {
		t.Fatalf("create staff failed: %v", err)
	}
	donationType := models.DonationType{Name: "Whole Blood"}
	if err := db.Create(&donationType).Error; err != nil {
		t.Fatalf("create donation type failed: %v", err)
	}

	started, err := registration.Start(ctx)
	if err != nil {
		t.Fatalf("start registration failed: %v", err)
	}
	token := started.Token

	if _, err := registration.SubmitInfo(ctx, token, RegistrationInfoInput{
		Name:        "Han Mei",
		DateOfBirth: "1992-03-10",
		Gender:      "female",
		BloodGroup:  "A+",
		ContactNo:   "138-0000-9001",
		Email:       "han.mei@example.com",
		Street:      "9 Lake Road",
		City:        "Beijing",
	}); err != nil {
		t.Fatalf("submit info failed: %v", err)
	}

	screened, err := registration.SubmitScreening(ctx, token, ScreeningInput{Passed: true})
	if err != nil {
		t.Fatalf("submit screening failed: %v", err)
	}
	if screened.DonorID == 0 {
		t.Fatal("expected donor record after screening pass")
	}

	if _, err := registration.SubmitDecision(ctx, token, true); err != nil {
		t.Fatalf("submit decision failed: %v", err)
	}
	pending, err := registration.GetForDonation(ctx, token)
	if err != nil {
		t.Fatalf("get for donation failed: %v", err)
	}

	donationDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	created, err := donationSvc.RecordDonation(RecordDonationInput{
		DonorID:        pending.DonorID,
		DonationTypeID: donationType.ID,
		DonationDate:   donationDate,
		AmountML:       450,
		CollectedByID:  staff.ID,
		CenterID:       center.ID,
	})
	if err != nil {
		t.Fatalf("record donation failed: %v", err)
	}
	if err := registration.Complete(ctx, token); err != nil {
		t.Fatalf("complete registration failed: %v", err)
	}
	if _, err := registration.Get(ctx, token); !errors.Is(err, ErrRegistrationTokenInvalid) {
		t.Fatalf("expected token to be cleared, got %v", err)
	}

	wantExpiry := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	if created.Unit == nil || !created.Unit.ExpiryDate.Equal(wantExpiry) {
		t.Fatalf("unit expiry want %s got %+v", wantExpiry, created.Unit)
	}
	if created.Unit.Status != constants.BloodUnitStatusStored {
		t.Fatalf("unit status want stored got %s", created.Unit.Status)
	}

	checkDate := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	result, err := donorSvc.CheckEligibility(pending.DonorID, checkDate)
	if err != nil {
		t.Fatalf("check eligibility failed: %v", err)
	}
	if result.Eligible {
		t.Fatal("expected donor to be in cooldown on 2024-02-01")
	}
	if result.RemainingDays != 59 {
		t.Fatalf("remaining days want 59 got %d", result.RemainingDays)
	}
}
