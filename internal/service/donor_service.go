package service

import (
	"time"

	"github.com/bloodlink-next/internal/models"
	"github.com/bloodlink-next/internal/repository"
)

// DonorService 献血者档案服务
type DonorService struct {
	donorRepo    repository.DonorRepository
	donationRepo repository.DonationRepository
}

// NewDonorService 创建献血者服务
func NewDonorService(donorRepo repository.DonorRepository, donationRepo repository.DonationRepository) *DonorService {
	return &DonorService{
		donorRepo:    donorRepo,
		donationRepo: donationRepo,
	}
}

// DonorDetail 献血者详情
type DonorDetail struct {
	Donor       *models.Donor     `json:"donor"`
	Eligibility EligibilityResult `json:"eligibility"`
}

// SearchDonors 按条件检索献血者
func (s *DonorService) SearchDonors(filter repository.DonorSearchFilter, page, pageSize int) ([]models.Donor, int64, error) {
	return s.donorRepo.Search(filter, page, pageSize)
}

// GetDonorDetail 获取献血者详情及当前献血资格
func (s *DonorService) GetDonorDetail(id uint) (*DonorDetail, error) {
	donor, err := s.donorRepo.GetWithDonations(id)
	if err != nil {
		return nil, ErrDonorFetchFailed
	}
	if donor == nil {
		return nil, ErrDonorNotFound
	}
	return &DonorDetail{
		Donor:       donor,
		Eligibility: EvaluateDonorEligibility(donor, time.Now()),
	}, nil
}

// CheckEligibility 判定献血者在指定日期的献血资格
func (s *DonorService) CheckEligibility(id uint, onDate time.Time) (*EligibilityResult, error) {
	donor, err := s.donorRepo.GetByID(id)
	if err != nil {
		return nil, ErrDonorFetchFailed
	}
	if donor == nil {
		return nil, ErrDonorNotFound
	}
	if onDate.IsZero() {
		onDate = time.Now()
	}
	result := EvaluateDonorEligibility(donor, onDate)
	return &result, nil
}

// ListDonorDonations 获取献血者的献血历史
func (s *DonorService) ListDonorDonations(id uint) ([]models.Donation, error) {
	donor, err := s.donorRepo.GetByID(id)
	if err != nil {
		return nil, ErrDonorFetchFailed
	}
	if donor == nil {
		return nil, ErrDonorNotFound
	}
	donations, err := s.donationRepo.ListByDonor(id)
	if err != nil {
		return nil, ErrDonorFetchFailed
	}
	return donations, nil
}
