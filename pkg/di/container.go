package di

import (
	"context"
	"time"

	"gorm.io/gorm"

	"storyreel/application/serviceimpl"
	"storyreel/domain/ports"
	"storyreel/domain/repositories"
	"storyreel/domain/services"
	"storyreel/infrastructure/deepseek"
	"storyreel/infrastructure/higgsfield"
	"storyreel/infrastructure/mediatool"
	"storyreel/infrastructure/messaging"
	"storyreel/infrastructure/postgres"
	redispkg "storyreel/infrastructure/redis"
	"storyreel/infrastructure/storage"
	"storyreel/interfaces/api/handlers"
	"storyreel/pkg/config"
	"storyreel/pkg/logger"
	"storyreel/pkg/scheduler"
)

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	DB                *gorm.DB
	RedisClient       *redispkg.Client // optional — lock degrade เป็น in-process
	ProgressPublisher ports.ProgressPublisherPort
	Storage           ports.StoragePort
	MediaTool         ports.MediaToolPort
	VideoGen          ports.VideoGenPort
	Chat              ports.ChatPort
	ProjectLock       ports.ProjectLockPort
	EventScheduler    scheduler.EventScheduler

	// Repositories
	ProjectRepository    repositories.ProjectRepository
	GenerationRepository repositories.GenerationRepository
	SegmentRepository    repositories.SegmentRepository

	// Services
	ProjectService    services.ProjectService
	GenerationService services.GenerationService
	StoryService      services.StoryService
	PipelineService   *serviceimpl.PipelineServiceImpl
	SuggestionService services.SuggestionService
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	c.initRepositories()
	c.initServices()

	if err := c.initScheduler(); err != nil {
		return err
	}

	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	logger.Info("Configuration loaded")
	return nil
}

func (c *Container) initLogger() error {
	logConfig := logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	}

	if err := logger.Init(logConfig); err != nil {
		return err
	}

	logger.Info("Logger initialized",
		"level", c.Config.Log.Level,
		"format", c.Config.Log.Format,
		"output", c.Config.Log.Output,
	)
	return nil
}

func (c *Container) initInfrastructure() error {
	// Database
	dbConfig := postgres.DatabaseConfig{
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
	}

	db, err := postgres.NewDatabase(dbConfig)
	if err != nil {
		return err
	}
	c.DB = db
	logger.Info("Database connected", "host", c.Config.Database.Host, "db", c.Config.Database.DBName)

	if err := postgres.Migrate(db); err != nil {
		return err
	}
	logger.Info("Database migrated")

	// Redis (optional — ไม่มีก็ใช้ lock แบบ in-process)
	if c.Config.Redis.URL != "" {
		redisClient, err := redispkg.NewClient(&c.Config.Redis)
		if err != nil {
			logger.Warn("Redis client initialization failed (distributed lock disabled)", "error", err)
		} else {
			c.RedisClient = redisClient
		}
	}
	c.ProjectLock = redispkg.NewProjectLock(c.RedisClient)

	// NATS (optional — ไม่มีก็ไม่ส่ง progress events)
	if c.Config.NATS.URL != "" {
		publisher, err := messaging.NewNATSProgressPublisher(messaging.PublisherConfig{
			URL: c.Config.NATS.URL,
		})
		if err != nil {
			logger.Warn("NATS publisher initialization failed (progress events disabled)", "error", err)
			c.ProgressPublisher = messaging.NoopProgressPublisher{}
		} else {
			c.ProgressPublisher = publisher
		}
	} else {
		c.ProgressPublisher = messaging.NoopProgressPublisher{}
	}

	// S3 storage
	s3, err := storage.NewS3Storage(storage.S3StorageConfig{
		Endpoint:  c.Config.Storage.Endpoint,
		AccessKey: c.Config.Storage.AccessKey,
		SecretKey: c.Config.Storage.SecretKey,
		Bucket:    c.Config.Storage.Bucket,
		UseSSL:    c.Config.Storage.UseSSL,
		Region:    c.Config.Storage.Region,
		PublicURL: c.Config.Storage.PublicURL,
	})
	if err != nil {
		return err
	}
	c.Storage = s3

	// ffmpeg/ffprobe
	media, err := mediatool.NewFFmpegTool(mediatool.FFmpegConfig{})
	if err != nil {
		return err
	}
	c.MediaTool = media
	logger.Info("Media tool initialized")

	// Higgsfield
	c.VideoGen = higgsfield.NewClient(higgsfield.ClientConfig{
		BaseURL:   c.Config.Higgsfield.BaseURL,
		APIKey:    c.Config.Higgsfield.APIKey,
		APISecret: c.Config.Higgsfield.APISecret,
		Timeout:   c.Config.Higgsfield.Timeout,
	})

	// DeepSeek
	c.Chat = deepseek.NewClient(deepseek.ClientConfig{
		BaseURL: c.Config.DeepSeek.BaseURL,
		APIKey:  c.Config.DeepSeek.APIKey,
		Model:   c.Config.DeepSeek.Model,
		Timeout: c.Config.DeepSeek.Timeout,
	})

	return nil
}

func (c *Container) initRepositories() {
	c.ProjectRepository = postgres.NewProjectRepository(c.DB)
	c.GenerationRepository = postgres.NewGenerationRepository(c.DB)
	c.SegmentRepository = postgres.NewSegmentRepository(c.DB)
	logger.Info("Repositories initialized")
}

func (c *Container) initServices() {
	c.PipelineService = serviceimpl.NewPipelineService(
		c.VideoGen,
		c.MediaTool,
		c.Storage,
		c.ProgressPublisher,
		c.Config.Higgsfield,
		c.Config.Pipeline,
	)

	c.ProjectService = serviceimpl.NewProjectService(
		c.ProjectRepository,
		c.GenerationRepository,
		c.VideoGen,
		c.Config.Higgsfield,
	)

	c.GenerationService = serviceimpl.NewGenerationService(
		c.ProjectRepository,
		c.GenerationRepository,
		c.VideoGen,
		c.Config.Higgsfield,
	)

	c.StoryService = serviceimpl.NewStoryService(
		c.ProjectRepository,
		c.GenerationRepository,
		c.SegmentRepository,
		c.PipelineService,
		c.MediaTool,
		c.Storage,
		c.ProjectLock,
		c.ProgressPublisher,
		c.Config.Pipeline,
	)

	c.SuggestionService = serviceimpl.NewSuggestionService(c.Chat)

	logger.Info("Services initialized")
}

// initScheduler ตั้ง background jobs: status sweep + scratch cleanup
func (c *Container) initScheduler() error {
	c.EventScheduler = scheduler.NewEventScheduler()

	if err := c.EventScheduler.AddIntervalJob("generation-status-sweep", time.Minute, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := c.GenerationService.SweepPending(ctx); err != nil {
			logger.Error("Generation status sweep failed", "error", err)
		}
	}); err != nil {
		return err
	}

	maxAge := c.Config.Pipeline.ScratchMaxAge
	if err := c.EventScheduler.AddIntervalJob("scratch-cleanup", time.Hour, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := serviceimpl.CleanupStaleScratch(ctx, c.Config.Pipeline.WorkDir, maxAge); err != nil {
			logger.Error("Scratch cleanup failed", "error", err)
		}
	}); err != nil {
		return err
	}

	c.EventScheduler.Start()
	logger.Info("Background jobs scheduled")
	return nil
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetHandlerServices ประกอบ services สำหรับ HTTP handlers
func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		ProjectService:    c.ProjectService,
		GenerationService: c.GenerationService,
		StoryService:      c.StoryService,
		PipelineService:   c.PipelineService,
		SuggestionService: c.SuggestionService,
	}
}

// Cleanup ปิด connection ทั้งหมดตอน shutdown
func (c *Container) Cleanup() error {
	if c.EventScheduler != nil {
		c.EventScheduler.Stop()
	}
	if c.ProgressPublisher != nil {
		c.ProgressPublisher.Close()
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis client", "error", err)
		}
	}
	if c.DB != nil {
		if sqlDB, err := c.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("Failed to close database", "error", err)
			}
		}
	}
	return nil
}
