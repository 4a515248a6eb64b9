package provider

import (
	"time"

	"github.com/bloodlink-next/internal/cache"
	"github.com/bloodlink-next/internal/config"
	"github.com/bloodlink-next/internal/logger"
	"github.com/bloodlink-next/internal/models"
	"github.com/bloodlink-next/internal/queue"
	"github.com/bloodlink-next/internal/repository"
	"github.com/bloodlink-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	DonorRepo     repository.DonorRepository
	DonationRepo  repository.DonationRepository
	BloodUnitRepo repository.BloodUnitRepository
	RequestRepo   repository.BloodRequestRepository
	DeliveryRepo  repository.DeliveryRecordRepository
	DirectoryRepo repository.DirectoryRepository
	InventoryRepo repository.InventoryRepository

	// Services
	RegistrationService *service.RegistrationService
	DonorService        *service.DonorService
	DonationService     *service.DonationService
	RequestService      *service.RequestService
	FulfillmentService  *service.FulfillmentService
	InventoryService    *service.InventoryService
	DirectoryService    *service.DirectoryService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.DonorRepo = repository.NewDonorRepository(db)
	c.DonationRepo = repository.NewDonationRepository(db)
	c.BloodUnitRepo = repository.NewBloodUnitRepository(db)
	c.RequestRepo = repository.NewBloodRequestRepository(db)
	c.DeliveryRepo = repository.NewDeliveryRecordRepository(db)
	c.DirectoryRepo = repository.NewDirectoryRepository(db)
	c.InventoryRepo = repository.NewInventoryRepository(db)
}

func (c *Container) initServices() {
	pendingTTL := time.Duration(c.Config.Workflow.PendingTTLMinutes) * time.Minute
	registrationStore := service.NewRegistrationStore(pendingTTL)

	c.RegistrationService = service.NewRegistrationService(registrationStore, c.DonorRepo)
	c.DonorService = service.NewDonorService(c.DonorRepo, c.DonationRepo)
	c.DonationService = service.NewDonationService(c.DonorRepo, c.DonationRepo, c.BloodUnitRepo, c.DirectoryRepo)
	c.RequestService = service.NewRequestService(c.RequestRepo, c.DirectoryRepo)
	c.FulfillmentService = service.NewFulfillmentService(c.RequestRepo, c.BloodUnitRepo, c.DeliveryRepo, c.QueueClient)
	c.InventoryService = service.NewInventoryService(c.InventoryRepo)
	c.DirectoryService = service.NewDirectoryService(c.DirectoryRepo)
}
