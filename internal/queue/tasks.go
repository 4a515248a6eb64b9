package queue

import (
	"encoding/json"

	"github.com/bloodlink-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskRequestStatusNotify 用血申请状态通知任务
	TaskRequestStatusNotify = constants.TaskRequestStatusNotify
	// TaskInventoryExpiryScan 库存到期扫描任务
	TaskInventoryExpiryScan = constants.TaskInventoryExpiryScan
)

// RequestStatusNotifyPayload 申请状态通知任务载荷
type RequestStatusNotifyPayload struct {
	RequestID uint `json:"request_id"`
}

// InventoryExpiryScanPayload 库存到期扫描任务载荷
type InventoryExpiryScanPayload struct {
	WindowDays int `json:"window_days"`
}

// NewRequestStatusNotifyTask 创建申请状态通知任务
func NewRequestStatusNotifyTask(payload RequestStatusNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRequestStatusNotify, body), nil
}

// NewInventoryExpiryScanTask 创建库存到期扫描任务
func NewInventoryExpiryScanTask(payload InventoryExpiryScanPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskInventoryExpiryScan, body), nil
}
