package service

import (
	"time"

	"github.com/bloodlink-next/internal/constants"
	"github.com/bloodlink-next/internal/models"
)

// EligibilityResult 献血资格判定结果
type EligibilityResult struct {
	Eligible         bool       `json:"eligible"`
	FirstDonation    bool       `json:"first_donation"`
	DaysSince        int        `json:"days_since,omitempty"`
	RemainingDays    int        `json:"remaining_days"`
	NextEligibleDate *time.Time `json:"next_eligible_date,omitempty"`
}

// EvaluateEligibility 判定献血者在指定日期是否可献血
// 规则：从未献血直接可献；否则距最近一次献血须满冷却期天数。
// 天数按日历日差计算，不足一天不计。
func EvaluateEligibility(lastDonationDate *time.Time, onDate time.Time) EligibilityResult {
	if lastDonationDate == nil || lastDonationDate.IsZero() {
		return EligibilityResult{Eligible: true, FirstDonation: true}
	}

	last := truncateToDate(*lastDonationDate)
	on := truncateToDate(onDate)
	daysSince := int(on.Sub(last).Hours() / 24)

	if daysSince >= constants.DonorCooldownDays {
		return EligibilityResult{Eligible: true, DaysSince: daysSince}
	}

	remaining := constants.DonorCooldownDays - daysSince
	next := last.AddDate(0, 0, constants.DonorCooldownDays)
	return EligibilityResult{
		Eligible:         false,
		DaysSince:        daysSince,
		RemainingDays:    remaining,
		NextEligibleDate: &next,
	}
}

// EvaluateDonorEligibility 判定献血者档案在指定日期的献血资格
func EvaluateDonorEligibility(donor *models.Donor, onDate time.Time) EligibilityResult {
	if donor == nil {
		return EligibilityResult{Eligible: false, RemainingDays: constants.DonorCooldownDays}
	}
	return EvaluateEligibility(donor.LastDonationDate, onDate)
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
