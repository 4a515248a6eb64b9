package service

import (
	"errors"
	"time"

	"github.com/bloodlink-next/internal/constants"
	"github.com/bloodlink-next/internal/logger"
	"github.com/bloodlink-next/internal/models"
	"github.com/bloodlink-next/internal/queue"
	"github.com/bloodlink-next/internal/repository"

	"gorm.io/gorm"
)

// FulfillmentService 用血申请交付服务
type FulfillmentService struct {
	requestRepo  repository.BloodRequestRepository
	unitRepo     repository.BloodUnitRepository
	deliveryRepo repository.DeliveryRecordRepository
	queueClient  *queue.Client
}

// NewFulfillmentService 创建交付服务
func NewFulfillmentService(requestRepo repository.BloodRequestRepository, unitRepo repository.BloodUnitRepository, deliveryRepo repository.DeliveryRecordRepository, queueClient *queue.Client) *FulfillmentService {
	return &FulfillmentService{
		requestRepo:  requestRepo,
		unitRepo:     unitRepo,
		deliveryRepo: deliveryRepo,
		queueClient:  queueClient,
	}
}

// ListCandidates 获取申请的可交付候选单位
// 候选按到期日升序排列，先到期的优先出库。
func (s *FulfillmentService) ListCandidates(requestID uint, limit int) (*models.BloodRequest, []models.BloodUnit, error) {
	request, err := s.requestRepo.GetByID(requestID)
	if err != nil {
		return nil, nil, ErrRequestFetchFailed
	}
	if request == nil {
		return nil, nil, ErrRequestNotFound
	}
	if request.Status != constants.RequestStatusPending {
		return nil, nil, ErrRequestAlreadyDelivered
	}

	candidates, err := s.unitRepo.FindCandidates(request.BloodGroup, time.Now(), limit)
	if err != nil {
		return nil, nil, ErrRequestFetchFailed
	}
	return request, candidates, nil
}

// FulfillInput 交付输入
type FulfillInput struct {
	RequestID     uint
	BloodUnitID   uint
	DeliveredByID uint
}

// Fulfill 交付用血申请
// 血液单位占用、申请状态流转与交付记录创建在同一事务内完成；
// 条件更新保证同一单位与同一申请都只会成功交付一次。
func (s *FulfillmentService) Fulfill(input FulfillInput) (*models.DeliveryRecord, error) {
	if input.RequestID == 0 || input.BloodUnitID == 0 || input.DeliveredByID == 0 {
		return nil, ErrInvalidInput
	}

	request, err := s.requestRepo.GetByID(input.RequestID)
	if err != nil {
		return nil, ErrRequestFetchFailed
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}
	if request.Status != constants.RequestStatusPending {
		return nil, ErrRequestAlreadyDelivered
	}

	unit, err := s.unitRepo.GetByID(input.BloodUnitID)
	if err != nil {
		return nil, ErrRequestFetchFailed
	}
	if unit == nil {
		return nil, ErrUnitNotFound
	}
	if unit.Status != constants.BloodUnitStatusStored {
		return nil, ErrUnitUnavailable
	}
	if unit.BloodGroup != request.BloodGroup {
		return nil, ErrUnitBloodGroupMismatch
	}

	now := time.Now()
	if !unit.ExpiryDate.After(now) {
		return nil, ErrUnitExpired
	}

	var created *models.DeliveryRecord
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		unitRepo := s.unitRepo.WithTx(tx)
		requestRepo := s.requestRepo.WithTx(tx)
		deliveryRepo := s.deliveryRepo.WithTx(tx)

		claimed, err := unitRepo.ClaimForDelivery(unit.ID, now)
		if err != nil {
			return err
		}
		if claimed == 0 {
			return ErrUnitUnavailable
		}

		delivered, err := requestRepo.MarkDelivered(request.ID, now)
		if err != nil {
			return err
		}
		if delivered == 0 {
			return ErrRequestAlreadyDelivered
		}

		record := &models.DeliveryRecord{
			RequestID:     request.ID,
			BloodUnitID:   unit.ID,
			DeliveryDate:  now,
			DeliveredByID: input.DeliveredByID,
			Condition:     constants.DeliveryConditionDefault,
		}
		if err := deliveryRepo.Create(record); err != nil {
			return err
		}
		created = record
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrUnitUnavailable) || errors.Is(err, ErrRequestAlreadyDelivered) {
			return nil, err
		}
		logger.Errorw("request_fulfill_failed",
			"request_id", input.RequestID,
			"blood_unit_id", input.BloodUnitID,
			"error", err,
		)
		return nil, ErrFulfillmentFailed
	}

	logger.Infow("request_fulfilled",
		"request_id", request.ID,
		"blood_unit_id", unit.ID,
		"blood_group", request.BloodGroup,
	)

	if s.queueClient != nil {
		if err := s.queueClient.EnqueueRequestStatusNotify(request.ID); err != nil {
			logger.Warnw("request_status_notify_enqueue_failed", "request_id", request.ID, "error", err)
		}
	}
	return created, nil
}
