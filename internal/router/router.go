package router

import (
	"fmt"
	"strings"

	"github.com/bloodlink-next/internal/cache"
	"github.com/bloodlink-next/internal/config"
	apihandlers "github.com/bloodlink-next/internal/http/handlers/api"
	"github.com/bloodlink-next/internal/http/response"
	"github.com/bloodlink-next/internal/logger"
	"github.com/bloodlink-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := apihandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "bl"
	}
	redisClient := cache.Client()
	registrationRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:registration", redisPrefix),
		WindowSeconds: cfg.Security.RegistrationRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.RegistrationRateLimit.MaxAttempts,
		MessageKey:    "error.too_many_requests",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 健康检查
	r.GET("/healthz", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "ok"})
	})

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 献血者登记流程
		registrations := apiV1.Group("/registrations")
		{
			registrations.POST("", RateLimitMiddleware(redisClient, registrationRule, KeyByIP), handler.StartRegistration)
			registrations.GET("/:token", handler.GetRegistration)
			registrations.POST("/:token/info", handler.SubmitRegistrationInfo)
			registrations.POST("/:token/screening", handler.SubmitRegistrationScreening)
			registrations.POST("/:token/decision", handler.SubmitRegistrationDecision)
			registrations.POST("/:token/donation", handler.RecordRegistrationDonation)
		}

		// 献血者档案
		donors := apiV1.Group("/donors")
		{
			donors.GET("", handler.SearchDonors)
			donors.GET("/:id", handler.GetDonor)
			donors.GET("/:id/eligibility", handler.GetDonorEligibility)
			donors.GET("/:id/donations", handler.ListDonorDonations)
		}

		// 献血记录
		donations := apiV1.Group("/donations")
		{
			donations.POST("", handler.CreateDonation)
			donations.POST("/direct", handler.CreateDirectDonation)
			donations.GET("", handler.ListDonations)
			donations.GET("/:id", handler.GetDonation)
		}

		// 用血申请与交付
		requests := apiV1.Group("/requests")
		{
			requests.POST("", handler.CreateBloodRequest)
			requests.GET("", handler.ListBloodRequests)
			requests.GET("/:id", handler.GetBloodRequest)
			requests.GET("/:id/candidates", handler.ListRequestCandidates)
			requests.POST("/:id/fulfill", handler.FulfillRequest)
		}
		apiV1.GET("/deliveries", handler.ListDeliveries)

		// 库存与统计
		inventory := apiV1.Group("/inventory")
		{
			inventory.GET("", handler.GetInventory)
			inventory.GET("/units", handler.ListStoredUnits)
			inventory.GET("/alerts", handler.GetExpiryAlerts)
		}
		apiV1.GET("/analytics", handler.GetAnalytics)
		apiV1.GET("/dashboard", handler.GetDashboard)

		// 基础档案
		directory := apiV1.Group("/directory")
		{
			directory.GET("/centers", handler.ListCenters)
			directory.POST("/centers", handler.CreateCenter)
			directory.GET("/staff", handler.ListStaff)
			directory.POST("/staff", handler.CreateStaff)
			directory.GET("/hospitals", handler.ListHospitals)
			directory.POST("/hospitals", handler.CreateHospital)
			directory.GET("/doctors", handler.ListDoctors)
			directory.POST("/doctors", handler.CreateDoctor)
			directory.GET("/patients", handler.ListPatients)
			directory.POST("/patients", handler.CreatePatient)
			directory.GET("/donation-types", handler.ListDonationTypes)
			directory.POST("/donation-types", handler.CreateDonationType)
		}
	}

	return r
}
