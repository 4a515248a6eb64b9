package worker

import (
	"context"
	"errors"
	"time"

	"github.com/bloodlink-next/internal/config"
	"github.com/bloodlink-next/internal/constants"
	"github.com/bloodlink-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Service 异步队列服务
type Service struct {
	name         string
	server       *asynq.Server
	mux          *asynq.ServeMux
	consumer     *Consumer
	scanInterval time.Duration
}

// NewService 创建异步队列服务
func NewService(cfg *config.Config, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Queue.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(&cfg.Queue)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)

	scanInterval := time.Duration(cfg.Workflow.ExpiryScanIntervalMinutes) * time.Minute
	if scanInterval <= 0 {
		scanInterval = time.Hour
	}
	return &Service{
		name:         "worker",
		server:       server,
		mux:          mux,
		consumer:     consumer,
		scanInterval: scanInterval,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.InventoryService != nil {
		go s.runExpiryScanLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

func (s *Service) runExpiryScanLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.InventoryService == nil {
		return
	}
	runOnce := func() {
		s.consumer.runExpiryScan(constants.ExpiryAlertWindowDays)
	}
	runOnce()

	ticker := time.NewTicker(s.scanInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
