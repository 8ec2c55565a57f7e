package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	NATS       NATSConfig
	Redis      RedisConfig
	Log        LogConfig
	Storage    StorageConfig
	Higgsfield HiggsfieldConfig
	DeepSeek   DeepSeekConfig
	Pipeline   PipelineConfig
}

type AppConfig struct {
	Name string
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// NATSConfig สำหรับ publish pipeline progress events
type NATSConfig struct {
	URL string // nats://localhost:4222
}

// RedisConfig สำหรับ per-project continuation lock
type RedisConfig struct {
	URL      string // redis://localhost:6379
	Password string
	DB       int
}

type LogConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, text
	Output     string // stdout, file, both
	FilePath   string // logs/app.log
	MaxSize    int    // MB
	MaxBackups int    // จำนวน backup files
	MaxAge     int    // วัน
	Compress   bool   // บีบอัด backup
}

// StorageConfig สำหรับ S3-Compatible Storage (MinIO / DO Spaces / R2)
type StorageConfig struct {
	Endpoint  string // minio:9000 หรือ fra1.digitaloceanspaces.com
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
	PublicURL string // CDN base URL สำหรับเข้าถึงไฟล์ public
}

// HiggsfieldConfig credentials และ defaults ของ video generation provider
type HiggsfieldConfig struct {
	BaseURL   string
	APIKey    string
	APISecret string
	Timeout   time.Duration // per-request HTTP timeout

	DefaultModel       string // minimax-t2v
	DefaultDuration    int    // วินาที
	DefaultResolution  string // "768"
	DefaultAspectRatio string // "16:9"
}

// DeepSeekConfig สำหรับ prompt suggestion (OpenAI-compatible chat API)
type DeepSeekConfig struct {
	BaseURL string // https://api.deepseek.com/v1
	APIKey  string
	Model   string // deepseek-chat
	Timeout time.Duration
}

// PipelineConfig การตั้งค่า continuation pipeline
type PipelineConfig struct {
	WorkDir          string        // scratch directory สำหรับไฟล์ชั่วคราว
	PollInterval     time.Duration // ระยะห่างระหว่าง poll (default 30s)
	PollTimeout      time.Duration // deadline รวมของการรอ job (0 = ไม่จำกัด)
	PreflightTimeout time.Duration // timeout ของ HEAD/ranged GET
	LockTTL          time.Duration // TTL ของ per-project lock
	ScratchMaxAge    time.Duration // อายุสูงสุดของ scratch dir ก่อนถูกเก็บกวาด
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		// ไม่ error ถ้าไม่มี .env file (ใช้ environment variables แทน)
	}

	logMaxSize, _ := strconv.Atoi(getEnv("LOG_MAX_SIZE", "100"))
	logMaxBackups, _ := strconv.Atoi(getEnv("LOG_MAX_BACKUPS", "5"))
	logMaxAge, _ := strconv.Atoi(getEnv("LOG_MAX_AGE", "30"))
	logCompress := getEnv("LOG_COMPRESS", "true") == "true"

	s3UseSSL := getEnv("S3_USE_SSL", "false") == "true"
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	hfDuration, _ := strconv.Atoi(getEnv("HF_DEFAULT_DURATION", "10"))

	config := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "StoryReel"),
			Port: getEnv("APP_PORT", "8080"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "storyreel"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		NATS: NATSConfig{
			URL: getEnv("NATS_URL", "nats://localhost:4222"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			Output:     getEnv("LOG_OUTPUT", "both"),
			FilePath:   getEnv("LOG_FILE", "logs/app.log"),
			MaxSize:    logMaxSize,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAge,
			Compress:   logCompress,
		},
		Storage: StorageConfig{
			Endpoint:  getEnv("S3_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("S3_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("S3_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("S3_BUCKET", "storyreel"),
			UseSSL:    s3UseSSL,
			Region:    getEnv("S3_REGION", "fra1"),
			PublicURL: getEnv("S3_PUBLIC_URL", ""),
		},
		Higgsfield: HiggsfieldConfig{
			BaseURL:            getEnv("HF_BASE_URL", "https://platform.higgsfield.ai"),
			APIKey:             getEnv("HF_API_KEY", ""),
			APISecret:          getEnv("HF_API_SECRET", ""),
			Timeout:            getDurationEnv("HF_REQUEST_TIMEOUT", 120*time.Second),
			DefaultModel:       getEnv("HF_DEFAULT_MODEL", "minimax-t2v"),
			DefaultDuration:    hfDuration,
			DefaultResolution:  getEnv("HF_DEFAULT_RESOLUTION", "768"),
			DefaultAspectRatio: getEnv("HF_DEFAULT_ASPECT_RATIO", "16:9"),
		},
		DeepSeek: DeepSeekConfig{
			BaseURL: getEnv("DEEPSEEK_API_BASE", "https://api.deepseek.com/v1"),
			APIKey:  getEnv("DEEPSEEK_API_KEY", ""),
			Model:   getEnv("DEEPSEEK_MODEL", "deepseek-chat"),
			Timeout: getDurationEnv("DEEPSEEK_TIMEOUT", 30*time.Second),
		},
		Pipeline: PipelineConfig{
			WorkDir:          getEnv("PIPELINE_WORKDIR", "./work"),
			PollInterval:     getDurationEnv("PIPELINE_POLL_INTERVAL", 30*time.Second),
			PollTimeout:      getDurationEnv("PIPELINE_POLL_TIMEOUT", 30*time.Minute),
			PreflightTimeout: getDurationEnv("PIPELINE_PREFLIGHT_TIMEOUT", 30*time.Second),
			LockTTL:          getDurationEnv("PIPELINE_LOCK_TTL", 45*time.Minute),
			ScratchMaxAge:    getDurationEnv("PIPELINE_SCRATCH_MAX_AGE", 6*time.Hour),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getDurationEnv อ่าน duration จาก env (รูปแบบ "30s", "10m")
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

// IsDevelopment ตรวจสอบว่าเป็น development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction ตรวจสอบว่าเป็น production mode
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
