package service

import (
	"testing"
	"time"

	"github.com/bloodlink-next/internal/models"
)

func TestEvaluateEligibilityFirstDonation(t *testing.T) {
	onDate := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)

	result := EvaluateEligibility(nil, onDate)
	if !result.Eligible {
		t.Fatalf("expected first-time donor to be eligible, got %+v", result)
	}
	if !result.FirstDonation {
		t.Fatalf("expected first_donation flag, got %+v", result)
	}

	zero := time.Time{}
	result = EvaluateEligibility(&zero, onDate)
	if !result.Eligible || !result.FirstDonation {
		t.Fatalf("zero last donation date should count as first donation, got %+v", result)
	}
}

func TestEvaluateEligibilityCooldown(t *testing.T) {
	last := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)

	t.Run("exactly 90 days", func(t *testing.T) {
		onDate := time.Date(2024, 3, 31, 8, 0, 0, 0, time.UTC)
		result := EvaluateEligibility(&last, onDate)
		if !result.Eligible {
			t.Fatalf("90 days since last donation should be eligible, got %+v", result)
		}
		if result.DaysSince != 90 {
			t.Fatalf("days_since want 90 got %d", result.DaysSince)
		}
	})

	t.Run("89 days remaining one", func(t *testing.T) {
		onDate := time.Date(2024, 3, 30, 23, 0, 0, 0, time.UTC)
		result := EvaluateEligibility(&last, onDate)
		if result.Eligible {
			t.Fatalf("89 days since last donation should be ineligible, got %+v", result)
		}
		if result.DaysSince != 89 {
			t.Fatalf("days_since want 89 got %d", result.DaysSince)
		}
		if result.RemainingDays != 1 {
			t.Fatalf("remaining_days want 1 got %d", result.RemainingDays)
		}
		if result.NextEligibleDate == nil {
			t.Fatal("expected next_eligible_date to be set")
		}
		wantNext := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
		if !result.NextEligibleDate.Equal(wantNext) {
			t.Fatalf("next_eligible_date want %s got %s", wantNext, result.NextEligibleDate)
		}
	})

	t.Run("same day", func(t *testing.T) {
		onDate := time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)
		result := EvaluateEligibility(&last, onDate)
		if result.Eligible {
			t.Fatalf("same-day repeat donation should be ineligible, got %+v", result)
		}
		if result.RemainingDays != 90 {
			t.Fatalf("remaining_days want 90 got %d", result.RemainingDays)
		}
	})

	t.Run("well past cooldown", func(t *testing.T) {
		onDate := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
		result := EvaluateEligibility(&last, onDate)
		if !result.Eligible {
			t.Fatalf("335 days since last donation should be eligible, got %+v", result)
		}
	})
}

func TestEvaluateDonorEligibility(t *testing.T) {
	onDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	if result := EvaluateDonorEligibility(nil, onDate); result.Eligible {
		t.Fatalf("nil donor should be ineligible, got %+v", result)
	}

	donor := &models.Donor{BloodGroup: "O+"}
	if result := EvaluateDonorEligibility(donor, onDate); !result.Eligible || !result.FirstDonation {
		t.Fatalf("donor without donation history should be eligible, got %+v", result)
	}

	last := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	donor.LastDonationDate = &last
	if result := EvaluateDonorEligibility(donor, onDate); result.Eligible {
		t.Fatalf("donor inside cooldown should be ineligible, got %+v", result)
	}
}
