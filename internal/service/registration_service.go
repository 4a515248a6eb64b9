package service

import (
	"context"
	"strings"
	"time"

	"github.com/bloodlink-next/internal/cache"
	"github.com/bloodlink-next/internal/constants"
	"github.com/bloodlink-next/internal/logger"
	"github.com/bloodlink-next/internal/models"
	"github.com/bloodlink-next/internal/repository"

	"github.com/google/uuid"
)

// RegistrationService 献血者登记流程服务
// 流程状态保存在登记存储中，体检通过前不产生任何档案数据。
type RegistrationService struct {
	store     RegistrationStore
	donorRepo repository.DonorRepository
}

// NewRegistrationService 创建登记流程服务
func NewRegistrationService(store RegistrationStore, donorRepo repository.DonorRepository) *RegistrationService {
	return &RegistrationService{
		store:     store,
		donorRepo: donorRepo,
	}
}

// RegistrationInfoInput 登记基础信息输入
type RegistrationInfoInput struct {
	Name        string
	DateOfBirth string
	Gender      string
	BloodGroup  string
	ContactNo   string
	Email       string
	Street      string
	City        string
}

// ScreeningInput 体检筛查结果输入
type ScreeningInput struct {
	Passed  bool
	Remarks string
}

// Start 启动登记流程，返回登记令牌
func (s *RegistrationService) Start(ctx context.Context) (*cache.PendingRegistration, error) {
	state := &cache.PendingRegistration{
		Token: uuid.NewString(),
		State: constants.RegistrationStateCollectingInfo,
	}
	if err := s.store.Set(ctx, state); err != nil {
		logger.Errorw("registration_start_failed", "error", err)
		return nil, ErrRegistrationStoreFailed
	}
	logger.Infow("registration_started", "token", state.Token)
	return state, nil
}

// Get 获取登记流程当前状态
func (s *RegistrationService) Get(ctx context.Context, token string) (*cache.PendingRegistration, error) {
	state, hit, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, ErrRegistrationStoreFailed
	}
	if !hit {
		return nil, ErrRegistrationTokenInvalid
	}
	return state, nil
}

// SubmitInfo 提交登记基础信息
// 校验失败停留在填写态；成功进入待体检态。
func (s *RegistrationService) SubmitInfo(ctx context.Context, token string, input RegistrationInfoInput) (*cache.PendingRegistration, error) {
	state, err := s.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if state.State != constants.RegistrationStateCollectingInfo {
		return nil, ErrRegistrationStateInvalid
	}

	input = normalizeRegistrationInput(input)
	if err := validateRegistrationInput(input); err != nil {
		return nil, err
	}

	existing, err := s.donorRepo.GetByEmail(input.Email)
	if err != nil {
		return nil, ErrDonorFetchFailed
	}
	if existing != nil {
		return nil, ErrDonorEmailExists
	}

	state.Name = input.Name
	state.DateOfBirth = input.DateOfBirth
	state.Gender = input.Gender
	state.BloodGroup = input.BloodGroup
	state.ContactNo = input.ContactNo
	state.Email = input.Email
	state.Street = input.Street
	state.City = input.City
	state.State = constants.RegistrationStateAwaitingScreening

	if err := s.store.Set(ctx, state); err != nil {
		return nil, ErrRegistrationStoreFailed
	}
	logger.Infow("registration_info_submitted", "token", token, "blood_group", input.BloodGroup)
	return state, nil
}

// SubmitScreening 提交体检筛查结果
// 通过则建档并进入捐献决策态；未通过则清空流程数据，不建档。
func (s *RegistrationService) SubmitScreening(ctx context.Context, token string, input ScreeningInput) (*cache.PendingRegistration, error) {
	state, err := s.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if state.State != constants.RegistrationStateAwaitingScreening {
		return nil, ErrRegistrationStateInvalid
	}

	if !input.Passed {
		state.State = constants.RegistrationStateRejected
		state.ScreeningResult = "failed"
		state.ScreeningRemarks = strings.TrimSpace(input.Remarks)
		if err := s.store.Del(ctx, token); err != nil {
			logger.Warnw("registration_state_cleanup_failed", "token", token, "error", err)
		}
		logger.Infow("registration_rejected", "token", token)
		return state, nil
	}

	dob, err := time.Parse("2006-01-02", state.DateOfBirth)
	if err != nil {
		return nil, ErrValidationFailed
	}

	donor := &models.Donor{
		Name:        state.Name,
		DateOfBirth: dob,
		Gender:      state.Gender,
		BloodGroup:  state.BloodGroup,
		ContactNo:   state.ContactNo,
		Email:       state.Email,
		Street:      state.Street,
		City:        state.City,
	}
	if err := s.donorRepo.Create(donor); err != nil {
		logger.Errorw("registration_donor_create_failed", "token", token, "error", err)
		return nil, ErrDonorFetchFailed
	}

	state.State = constants.RegistrationStateAwaitingDonationDecision
	state.ScreeningResult = constants.TestResultClear
	state.ScreeningRemarks = strings.TrimSpace(input.Remarks)
	state.DonorID = donor.ID

	if err := s.store.Set(ctx, state); err != nil {
		return nil, ErrRegistrationStoreFailed
	}
	logger.Infow("registration_donor_created", "token", token, "donor_id", donor.ID)
	return state, nil
}

// SubmitDecision 提交是否立即献血的决策
// 立即献血进入献血进行态；否则流程结束，清理快照。
func (s *RegistrationService) SubmitDecision(ctx context.Context, token string, donateNow bool) (*cache.PendingRegistration, error) {
	state, err := s.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if state.State != constants.RegistrationStateAwaitingDonationDecision {
		return nil, ErrRegistrationStateInvalid
	}

	if !donateNow {
		state.State = constants.RegistrationStateCompleted
		if err := s.store.Del(ctx, token); err != nil {
			logger.Warnw("registration_state_cleanup_failed", "token", token, "error", err)
		}
		logger.Infow("registration_completed", "token", token, "donor_id", state.DonorID)
		return state, nil
	}

	state.State = constants.RegistrationStateDonationInProgress
	if err := s.store.Set(ctx, state); err != nil {
		return nil, ErrRegistrationStoreFailed
	}
	logger.Infow("registration_donation_started", "token", token, "donor_id", state.DonorID)
	return state, nil
}

// GetForDonation 获取处于献血进行态的登记快照
func (s *RegistrationService) GetForDonation(ctx context.Context, token string) (*cache.PendingRegistration, error) {
	state, err := s.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if state.State != constants.RegistrationStateDonationInProgress {
		return nil, ErrRegistrationStateInvalid
	}
	return state, nil
}

// Complete 结束登记流程并清理快照
func (s *RegistrationService) Complete(ctx context.Context, token string) error {
	if err := s.store.Del(ctx, token); err != nil {
		logger.Warnw("registration_state_cleanup_failed", "token", token, "error", err)
	}
	return nil
}

func normalizeRegistrationInput(input RegistrationInfoInput) RegistrationInfoInput {
	input.Name = strings.TrimSpace(input.Name)
	input.DateOfBirth = strings.TrimSpace(input.DateOfBirth)
	input.Gender = strings.TrimSpace(input.Gender)
	input.BloodGroup = strings.TrimSpace(input.BloodGroup)
	input.ContactNo = strings.TrimSpace(input.ContactNo)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Street = strings.TrimSpace(input.Street)
	input.City = strings.TrimSpace(input.City)
	return input
}

func validateRegistrationInput(input RegistrationInfoInput) error {
	if input.Name == "" || input.Gender == "" || input.ContactNo == "" ||
		input.Email == "" || input.Street == "" || input.City == "" {
		return ErrValidationFailed
	}
	if !strings.Contains(input.Email, "@") {
		return ErrValidationFailed
	}
	if input.DateOfBirth == "" {
		return ErrValidationFailed
	}
	if _, err := time.Parse("2006-01-02", input.DateOfBirth); err != nil {
		return ErrValidationFailed
	}
	if !constants.IsValidBloodGroup(input.BloodGroup) {
		return ErrBloodGroupInvalid
	}
	return nil
}
