package service

import (
	"time"

	"github.com/bloodlink-next/internal/constants"
	"github.com/bloodlink-next/internal/logger"
	"github.com/bloodlink-next/internal/models"
	"github.com/bloodlink-next/internal/repository"

	"gorm.io/gorm"
)

// DonationService 献血记录服务
type DonationService struct {
	donorRepo     repository.DonorRepository
	donationRepo  repository.DonationRepository
	unitRepo      repository.BloodUnitRepository
	directoryRepo repository.DirectoryRepository
}

// NewDonationService 创建献血记录服务
func NewDonationService(donorRepo repository.DonorRepository, donationRepo repository.DonationRepository, unitRepo repository.BloodUnitRepository, directoryRepo repository.DirectoryRepository) *DonationService {
	return &DonationService{
		donorRepo:     donorRepo,
		donationRepo:  donationRepo,
		unitRepo:      unitRepo,
		directoryRepo: directoryRepo,
	}
}

// RecordDonationInput 献血录入输入
type RecordDonationInput struct {
	DonorID        uint
	DonationTypeID uint
	DonationDate   time.Time
	AmountML       int
	CollectedByID  uint
	CenterID       uint
}

// RecordDonation 录入献血并入库血液单位
// 献血记录、血液单位与献血者最近献血日期在同一事务内落库，
// 任一步失败则全部回滚。
func (s *DonationService) RecordDonation(input RecordDonationInput) (*models.Donation, error) {
	if input.DonorID == 0 || input.DonationTypeID == 0 || input.CollectedByID == 0 || input.CenterID == 0 {
		return nil, ErrInvalidInput
	}
	if input.AmountML <= 0 {
		return nil, ErrDonationAmountInvalid
	}
	if input.DonationDate.IsZero() {
		input.DonationDate = time.Now()
	}
	if truncateToDate(input.DonationDate).After(truncateToDate(time.Now())) {
		return nil, ErrDonationDateInvalid
	}

	donor, err := s.donorRepo.GetByID(input.DonorID)
	if err != nil {
		return nil, ErrDonorFetchFailed
	}
	if donor == nil {
		return nil, ErrDonorNotFound
	}

	donationType, err := s.directoryRepo.GetDonationTypeByID(input.DonationTypeID)
	if err != nil {
		return nil, ErrDonationRecordFailed
	}
	if donationType == nil {
		return nil, ErrDonationTypeNotFound
	}

	center, err := s.directoryRepo.GetCenterByID(input.CenterID)
	if err != nil {
		return nil, ErrDonationRecordFailed
	}
	if center == nil {
		return nil, ErrCenterNotFound
	}

	collector, err := s.directoryRepo.GetStaffByID(input.CollectedByID)
	if err != nil {
		return nil, ErrDonationRecordFailed
	}
	if collector == nil {
		return nil, ErrStaffNotFound
	}

	eligibility := EvaluateDonorEligibility(donor, input.DonationDate)
	if !eligibility.Eligible {
		return nil, ErrDonorIneligible
	}

	var created *models.Donation
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		donationRepo := s.donationRepo.WithTx(tx)
		unitRepo := s.unitRepo.WithTx(tx)
		donorRepo := s.donorRepo.WithTx(tx)

		donation := &models.Donation{
			DonorID:        input.DonorID,
			DonationTypeID: input.DonationTypeID,
			DonationDate:   input.DonationDate,
			AmountML:       input.AmountML,
			CollectedByID:  input.CollectedByID,
		}
		if err := donationRepo.Create(donation); err != nil {
			return err
		}

		unit := &models.BloodUnit{
			DonationID:   donation.ID,
			BloodGroup:   donor.BloodGroup,
			CenterID:     input.CenterID,
			StorageDate:  input.DonationDate,
			ExpiryDate:   input.DonationDate.AddDate(0, 0, constants.BloodUnitShelfLifeDays),
			LatestResult: constants.TestResultClear,
			Status:       constants.BloodUnitStatusStored,
		}
		if err := unitRepo.Create(unit); err != nil {
			return err
		}

		if _, err := donorRepo.UpdateLastDonationDate(donor.ID, input.DonationDate); err != nil {
			return err
		}

		donation.Unit = unit
		created = donation
		return nil
	})
	if err != nil {
		logger.Errorw("donation_record_failed",
			"donor_id", input.DonorID,
			"error", err,
		)
		return nil, ErrDonationRecordFailed
	}

	logger.Infow("donation_recorded",
		"donation_id", created.ID,
		"donor_id", input.DonorID,
		"blood_group", donor.BloodGroup,
		"amount_ml", input.AmountML,
	)
	return created, nil
}

// DirectDonationInput 老献血者直接献血输入
type DirectDonationInput struct {
	Email          string
	DonationTypeID uint
	DonationDate   time.Time
	AmountML       int
	CollectedByID  uint
	CenterID       uint
}

// RecordDirectDonation 老献血者凭邮箱直接献血
// 先按邮箱定位档案，再走常规录入（含 90 天冷却判定）。
func (s *DonationService) RecordDirectDonation(input DirectDonationInput) (*models.Donation, error) {
	if input.Email == "" {
		return nil, ErrInvalidInput
	}
	donor, err := s.donorRepo.GetByEmail(input.Email)
	if err != nil {
		return nil, ErrDonorFetchFailed
	}
	if donor == nil {
		return nil, ErrDonorNotFound
	}
	return s.RecordDonation(RecordDonationInput{
		DonorID:        donor.ID,
		DonationTypeID: input.DonationTypeID,
		DonationDate:   input.DonationDate,
		AmountML:       input.AmountML,
		CollectedByID:  input.CollectedByID,
		CenterID:       input.CenterID,
	})
}

// GetDonation 获取献血记录详情
func (s *DonationService) GetDonation(id uint) (*models.Donation, error) {
	donation, err := s.donationRepo.GetByID(id)
	if err != nil {
		return nil, ErrDonationRecordFailed
	}
	if donation == nil {
		return nil, ErrInvalidInput
	}
	return donation, nil
}

// ListDonations 获取献血记录列表
func (s *DonationService) ListDonations(filter repository.DonationListFilter, page, pageSize int) ([]models.Donation, int64, error) {
	return s.donationRepo.List(filter, page, pageSize)
}
