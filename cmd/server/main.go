package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/abrhamtibebu/lp-ERP/internal/config"
	"github.com/abrhamtibebu/lp-ERP/internal/erp/entity"
	"github.com/abrhamtibebu/lp-ERP/internal/erp/handler"
	"github.com/abrhamtibebu/lp-ERP/internal/erp/repository"
	"github.com/abrhamtibebu/lp-ERP/internal/erp/service"
	"github.com/abrhamtibebu/lp-ERP/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting lp-erp service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	// 初始化数据库
	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// 自动迁移并播种默认工序
	if err := entity.AutoMigrate(db); err != nil {
		zapLogger.Fatal("Failed to auto-migrate tables", zap.Error(err))
	}
	if err := entity.SeedDefaultStages(db); err != nil {
		zapLogger.Fatal("Failed to seed production stages", zap.Error(err))
	}
	zapLogger.Info("Database migration completed")

	// 初始化 Redis
	rdb := initRedis(cfg.Redis)

	// 初始化 MinIO，不可用时降级为仅元数据
	minioClient := initMinIO(cfg.MinIO, zapLogger)

	// 初始化依赖
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, minioClient, cfg.MinIO.Bucket, zapLogger)
	handlers := handler.NewHandlers(services)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())

	registerRoutes(router, handlers, cfg)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func registerRoutes(router *gin.Engine, handlers *handler.Handlers, cfg *config.Config) {
	// 健康检查
	router.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "lp-erp"})
	})
	router.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "lp-erp"})
	})

	// 版本信息
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service":    "lp-erp",
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.JWTAuth(cfg.JWT.Secret))
	{
		// 生产批次
		batches := v1.Group("/batches")
		{
			batches.GET("", handlers.Batch.List)
			batches.GET("/:id", handlers.Batch.Get)
			batches.PUT("/:id", handlers.Batch.Update)
			batches.DELETE("/:id", handlers.Batch.Delete)
			batches.POST("/:id/move-stage", handlers.Batch.MoveStage)
			batches.GET("/:id/wip-status", handlers.Batch.WipStatus)
		}

		// 订单
		orders := v1.Group("/orders")
		{
			orders.GET("", handlers.Order.List)
			orders.POST("", handlers.Order.Create)
			orders.GET("/:id", handlers.Order.Get)
			orders.POST("/:id/create-batch", handlers.Order.CreateBatch)
		}

		// 工序目录
		stages := v1.Group("/production-stages")
		{
			stages.GET("", handlers.Stage.List)
			stages.POST("", handlers.Stage.Create)
		}

		// 皮革库存
		leather := v1.Group("/inventory/leather")
		{
			leather.GET("", handlers.Inventory.ListLeather)
			leather.POST("", handlers.Inventory.CreateLeather)
			leather.POST("/:id/adjust", handlers.Inventory.AdjustLeather)
			leather.DELETE("/:id", handlers.Inventory.DeleteLeather)
		}

		// 辅料库存
		accessories := v1.Group("/inventory/accessories")
		{
			accessories.GET("", handlers.Inventory.ListAccessories)
			accessories.POST("", handlers.Inventory.CreateAccessory)
			accessories.POST("/:id/deduct", handlers.Inventory.DeductAccessory)
			accessories.DELETE("/:id", handlers.Inventory.DeleteAccessory)
		}

		// 成品库存
		finishedGoods := v1.Group("/finished-goods")
		{
			finishedGoods.GET("", handlers.FinishedGoods.List)
			finishedGoods.GET("/:id", handlers.FinishedGoods.Get)
			finishedGoods.POST("/:id/adjust", handlers.FinishedGoods.AdjustQuantity)
		}

		// 产品档案
		products := v1.Group("/products")
		{
			products.GET("", handlers.Product.List)
			products.POST("", handlers.Product.Create)
			products.GET("/:id", handlers.Product.Get)
			products.PUT("/:id", handlers.Product.Update)
			products.DELETE("/:id", handlers.Product.Delete)
		}

		// 供应商
		suppliers := v1.Group("/suppliers")
		{
			suppliers.GET("", handlers.Supplier.List)
			suppliers.POST("", handlers.Supplier.Create)
			suppliers.DELETE("/:id", handlers.Supplier.Delete)
		}

		// 租户生产设置
		settings := v1.Group("/settings")
		{
			settings.GET("/production", handlers.Settings.GetProduction)
			settings.PUT("/production", handlers.Settings.UpdateProduction)
		}

		// 报表
		reports := v1.Group("/reports")
		{
			reports.GET("/wip-tracker", handlers.Report.WipTracker)
			reports.GET("/inventory-levels", handlers.Report.InventoryLevels)
			reports.GET("/inventory-levels/export", handlers.Report.ExportInventoryLevels)
			reports.GET("/finished-goods-aging", handlers.Report.FinishedGoodsAging)
		}

		// 商业发票
		invoices := v1.Group("/invoices")
		{
			invoices.GET("", handlers.Invoice.List)
			invoices.GET("/:id", handlers.Invoice.Get)
			invoices.POST("/:id/attachments", handlers.Invoice.UploadAttachment)
			invoices.GET("/:id/attachments/:attachmentID/download", handlers.Invoice.DownloadAttachment)
		}
	}
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}
	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func initMinIO(cfg config.MinIOConfig, zapLogger *zap.Logger) *minio.Client {
	if cfg.Endpoint == "" {
		return nil
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		zapLogger.Warn("MinIO unavailable, attachments disabled", zap.Error(err))
		return nil
	}
	return client
}
