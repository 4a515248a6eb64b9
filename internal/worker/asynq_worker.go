package worker

import (
	"context"
	"encoding/json"

	"github.com/bloodlink-next/internal/constants"
	"github.com/bloodlink-next/internal/logger"
	"github.com/bloodlink-next/internal/provider"
	"github.com/bloodlink-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskRequestStatusNotify, c.handleRequestStatusNotify)
	mux.HandleFunc(queue.TaskInventoryExpiryScan, c.handleInventoryExpiryScan)
}

func (c *Consumer) handleRequestStatusNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_request_status_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.RequestStatusNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_request_status_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.RequestID == 0 {
		logger.Debugw("worker_request_status_notify_skip_invalid_payload", "request_id", payload.RequestID)
		return nil
	}
	request, err := c.RequestRepo.GetByID(payload.RequestID)
	if err != nil {
		logger.Warnw("worker_request_status_notify_fetch_failed", "request_id", payload.RequestID, "error", err)
		return err
	}
	if request == nil {
		logger.Debugw("worker_request_status_notify_skip_not_found", "request_id", payload.RequestID)
		return nil
	}

	hospitalName := ""
	if request.Hospital != nil {
		hospitalName = request.Hospital.Name
	}
	logger.Infow("request_status_notified",
		"request_id", request.ID,
		"status", request.Status,
		"blood_group", request.BloodGroup,
		"hospital", hospitalName,
	)
	return nil
}

func (c *Consumer) handleInventoryExpiryScan(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_inventory_expiry_scan_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.InventoryExpiryScanPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_inventory_expiry_scan_unmarshal_failed", "error", err)
		return err
	}
	windowDays := payload.WindowDays
	if windowDays <= 0 {
		windowDays = constants.ExpiryAlertWindowDays
	}
	c.runExpiryScan(windowDays)
	return nil
}

func (c *Consumer) runExpiryScan(windowDays int) {
	if c == nil || c.InventoryService == nil {
		return
	}
	units := c.InventoryService.GetExpiryAlerts(windowDays, 0)
	if len(units) == 0 {
		logger.Debugw("inventory_expiry_scan_clear", "window_days", windowDays)
		return
	}
	for _, unit := range units {
		logger.Warnw("blood_unit_expiring_soon",
			"blood_unit_id", unit.ID,
			"blood_group", unit.BloodGroup,
			"center_id", unit.CenterID,
			"expiry_date", unit.ExpiryDate.Format("2006-01-02"),
		)
	}
	logger.Infow("inventory_expiry_scan_done", "window_days", windowDays, "expiring_units", len(units))
}
