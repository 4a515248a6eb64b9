package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/bloodlink-next/internal/app"
	"github.com/bloodlink-next/internal/config"
	"github.com/bloodlink-next/internal/logger"
	"github.com/bloodlink-next/internal/models"

	"github.com/gin-gonic/gin"
)

const banner = `
  ____  _                 _ _     _       _
 | __ )| | ___   ___   __| | |   (_)_ __ | | __
 |  _ \| |/ _ \ / _ \ / _' | |   | | '_ \| |/ /
 | |_) | | (_) | (_) | (_| | |___| | | | |   <
 |____/|_|\___/ \___/ \__,_|_____|_|_| |_|_|\_\

 BloodLink Next - Blood Bank Records & Workflow
`

func main() {
	fmt.Print(banner)

	mode := flag.String("mode", app.ModeAll, "运行模式: all / api / worker")
	flag.Parse()

	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	// 初始化数据库
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移数据库表
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 设置 Gin 模式
	if strings.EqualFold(cfg.Server.Mode, "release") {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{os.Interrupt, syscall.SIGTERM},
		Mode:    *mode,
	}); err != nil {
		stdLog.Fatalf("Server exited with error: %v", err)
	}
}
