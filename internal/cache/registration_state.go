package cache

import (
	"context"
	"fmt"
	"time"
)

// PendingRegistration 登记流程服务端快照
// 以登记令牌为键缓存，整个流程不落库，直到最终建档。
type PendingRegistration struct {
	Token            string `json:"token"`
	State            string `json:"state"`
	Name             string `json:"name"`
	DateOfBirth      string `json:"date_of_birth"`
	Gender           string `json:"gender"`
	BloodGroup       string `json:"blood_group"`
	ContactNo        string `json:"contact_no"`
	Email            string `json:"email"`
	Street           string `json:"street"`
	City             string `json:"city"`
	ScreeningResult  string `json:"screening_result"`
	ScreeningRemarks string `json:"screening_remarks"`
	DonorID          uint   `json:"donor_id"`
	UpdatedAt        int64  `json:"updated_at"`
}

func pendingRegistrationKey(token string) string {
	return fmt.Sprintf("registration:pending:%s", token)
}

// GetPendingRegistration 获取登记快照
func GetPendingRegistration(ctx context.Context, token string) (*PendingRegistration, bool, error) {
	if token == "" {
		return nil, false, nil
	}
	var state PendingRegistration
	hit, err := GetJSON(ctx, pendingRegistrationKey(token), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetPendingRegistration 写入登记快照
func SetPendingRegistration(ctx context.Context, state *PendingRegistration, ttl time.Duration) error {
	if state == nil || state.Token == "" {
		return nil
	}
	state.UpdatedAt = time.Now().Unix()
	return SetJSON(ctx, pendingRegistrationKey(state.Token), state, ttl)
}

// DelPendingRegistration 删除登记快照
func DelPendingRegistration(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return Del(ctx, pendingRegistrationKey(token))
}
