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

func setupRegistrationServiceTest(t *testing.T) (*RegistrationService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:registration_svc_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Donor{}, &models.Donation{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	store := NewMemoryRegistrationStore(10 * time.Minute)
	return NewRegistrationService(store, repository.NewDonorRepository(db)), db
}

func validRegistrationInfo() RegistrationInfoInput {
	return RegistrationInfoInput{
		Name:        "Lin Mei",
		DateOfBirth: "1992-04-18",
		Gender:      "female",
		BloodGroup:  "A+",
		ContactNo:   "138-0000-3001",
		Email:       "lin.mei@example.com",
		Street:      "88 Garden Road",
		City:        "Shanghai",
	}
}

func TestRegistrationSubmitInfoValidation(t *testing.T) {
	svc, _ := setupRegistrationServiceTest(t)
	ctx := context.Background()

	state, err := svc.Start(ctx)
	if err != nil {
		t.Fatalf("start registration failed: %v", err)
	}

	t.Run("missing name", func(t *testing.T) {
		input := validRegistrationInfo()
		input.Name = "  "
		if _, err := svc.SubmitInfo(ctx, state.Token, input); !errors.Is(err, ErrValidationFailed) {
			t.Fatalf("want ErrValidationFailed got %v", err)
		}
	})

	t.Run("bad date of birth", func(t *testing.T) {
		input := validRegistrationInfo()
		input.DateOfBirth = "18/04/1992"
		if _, err := svc.SubmitInfo(ctx, state.Token, input); !errors.Is(err, ErrValidationFailed) {
			t.Fatalf("want ErrValidationFailed got %v", err)
		}
	})

	t.Run("bad blood group", func(t *testing.T) {
		input := validRegistrationInfo()
		input.BloodGroup = "C+"
		if _, err := svc.SubmitInfo(ctx, state.Token, input); !errors.Is(err, ErrBloodGroupInvalid) {
			t.Fatalf("want ErrBloodGroupInvalid got %v", err)
		}
	})

	// 校验失败后流程仍停留在填写态
	current, err := svc.Get(ctx, state.Token)
	if err != nil {
		t.Fatalf("get registration failed: %v", err)
	}
	if current.State != constants.RegistrationStateCollectingInfo {
		t.Fatalf("state want collecting_info got %s", current.State)
	}
}

func TestRegistrationDuplicateEmail(t *testing.T) {
	svc, db := setupRegistrationServiceTest(t)
	ctx := context.Background()

	existing := models.Donor{
		Name:        "Existing Donor",
		DateOfBirth: time.Date(1985, 2, 1, 0, 0, 0, 0, time.UTC),
		Gender:      "male",
		BloodGroup:  "B+",
		ContactNo:   "138-0000-3999",
		Email:       "lin.mei@example.com",
		Street:      "1 Old Street",
		City:        "Shanghai",
	}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatalf("create existing donor failed: %v", err)
	}

	state, err := svc.Start(ctx)
	if err != nil {
		t.Fatalf("start registration failed: %v", err)
	}
	if _, err := svc.SubmitInfo(ctx, state.Token, validRegistrationInfo()); !errors.Is(err, ErrDonorEmailExists) {
		t.Fatalf("want ErrDonorEmailExists got %v", err)
	}
}

func TestRegistrationScreeningRejected(t *testing.T) {
	svc, db := setupRegistrationServiceTest(t)
	ctx := context.Background()

	state, err := svc.Start(ctx)
	if err != nil {
		t.Fatalf("start registration failed: %v", err)
	}
	if _, err := svc.SubmitInfo(ctx, state.Token, validRegistrationInfo()); err != nil {
		t.Fatalf("submit info failed: %v", err)
	}

	result, err := svc.SubmitScreening(ctx, state.Token, ScreeningInput{Passed: false, Remarks: "low hemoglobin"})
	if err != nil {
		t.Fatalf("submit screening failed: %v", err)
	}
	if result.State != constants.RegistrationStateRejected {
		t.Fatalf("state want rejected got %s", result.State)
	}

	// 未通过体检不建档
	var count int64
	if err := db.Model(&models.Donor{}).Count(&count).Error; err != nil {
		t.Fatalf("count donors failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("donor count want 0 got %d", count)
	}

	// 流程快照已清理
	if _, err := svc.Get(ctx, state.Token); !errors.Is(err, ErrRegistrationTokenInvalid) {
		t.Fatalf("want ErrRegistrationTokenInvalid got %v", err)
	}
}

func TestRegistrationStateGuards(t *testing.T) {
	svc, _ := setupRegistrationServiceTest(t)
	ctx := context.Background()

	state, err := svc.Start(ctx)
	if err != nil {
		t.Fatalf("start registration failed: %v", err)
	}

	// 信息未提交时不允许体检与决策
	if _, err := svc.SubmitScreening(ctx, state.Token, ScreeningInput{Passed: true}); !errors.Is(err, ErrRegistrationStateInvalid) {
		t.Fatalf("want ErrRegistrationStateInvalid got %v", err)
	}
	if _, err := svc.SubmitDecision(ctx, state.Token, true); !errors.Is(err, ErrRegistrationStateInvalid) {
		t.Fatalf("want ErrRegistrationStateInvalid got %v", err)
	}
	if _, err := svc.GetForDonation(ctx, state.Token); !errors.Is(err, ErrRegistrationStateInvalid) {
		t.Fatalf("want ErrRegistrationStateInvalid got %v", err)
	}

	// 非法令牌
	if _, err := svc.Get(ctx, "no-such-token"); !errors.Is(err, ErrRegistrationTokenInvalid) {
		t.Fatalf("want ErrRegistrationTokenInvalid got %v", err)
	}
}

func TestRegistrationHappyPath(t *testing.T) {
	svc, db := setupRegistrationServiceTest(t)
	ctx := context.Background()

	state, err := svc.Start(ctx)
	if err != nil {
		t.Fatalf("start registration failed: %v", err)
	}
	if state.State != constants.RegistrationStateCollectingInfo {
		t.Fatalf("initial state want collecting_info got %s", state.State)
	}

	if _, err := svc.SubmitInfo(ctx, state.Token, validRegistrationInfo()); err != nil {
		t.Fatalf("submit info failed: %v", err)
	}

	passed, err := svc.SubmitScreening(ctx, state.Token, ScreeningInput{Passed: true, Remarks: "all clear"})
	if err != nil {
		t.Fatalf("submit screening failed: %v", err)
	}
	if passed.State != constants.RegistrationStateAwaitingDonationDecision {
		t.Fatalf("state want awaiting_donation_decision got %s", passed.State)
	}
	if passed.DonorID == 0 {
		t.Fatal("expected donor to be created on screening pass")
	}
	if passed.ScreeningResult != constants.TestResultClear {
		t.Fatalf("screening result want %s got %s", constants.TestResultClear, passed.ScreeningResult)
	}

	var donor models.Donor
	if err := db.First(&donor, passed.DonorID).Error; err != nil {
		t.Fatalf("load created donor failed: %v", err)
	}
	if donor.Email != "lin.mei@example.com" {
		t.Fatalf("donor email want lin.mei@example.com got %s", donor.Email)
	}
	if donor.LastDonationDate != nil {
		t.Fatal("new donor should have no last donation date")
	}

	decided, err := svc.SubmitDecision(ctx, state.Token, true)
	if err != nil {
		t.Fatalf("submit decision failed: %v", err)
	}
	if decided.State != constants.RegistrationStateDonationInProgress {
		t.Fatalf("state want donation_in_progress got %s", decided.State)
	}

	forDonation, err := svc.GetForDonation(ctx, state.Token)
	if err != nil {
		t.Fatalf("get for donation failed: %v", err)
	}
	if forDonation.DonorID != passed.DonorID {
		t.Fatalf("donor_id want %d got %d", passed.DonorID, forDonation.DonorID)
	}

	if err := svc.Complete(ctx, state.Token); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if _, err := svc.Get(ctx, state.Token); !errors.Is(err, ErrRegistrationTokenInvalid) {
		t.Fatalf("want ErrRegistrationTokenInvalid after complete got %v", err)
	}
}

func TestRegistrationDeclineDonation(t *testing.T) {
	svc, _ := setupRegistrationServiceTest(t)
	ctx := context.Background()

	state, err := svc.Start(ctx)
	if err != nil {
		t.Fatalf("start registration failed: %v", err)
	}
	if _, err := svc.SubmitInfo(ctx, state.Token, validRegistrationInfo()); err != nil {
		t.Fatalf("submit info failed: %v", err)
	}
	if _, err := svc.SubmitScreening(ctx, state.Token, ScreeningInput{Passed: true}); err != nil {
		t.Fatalf("submit screening failed: %v", err)
	}

	decided, err := svc.SubmitDecision(ctx, state.Token, false)
	if err != nil {
		t.Fatalf("submit decision failed: %v", err)
	}
	if decided.State != constants.RegistrationStateCompleted {
		t.Fatalf("state want completed got %s", decided.State)
	}
	if _, err := svc.Get(ctx, state.Token); !errors.Is(err, ErrRegistrationTokenInvalid) {
		t.Fatalf("want ErrRegistrationTokenInvalid after completion got %v", err)
	}
}
