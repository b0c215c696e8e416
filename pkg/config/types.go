package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Storage    StorageConfig    `mapstructure:"storage"`
	FFmpeg     FFmpegConfig     `mapstructure:"ffmpeg"`
	Capture    CaptureConfig    `mapstructure:"capture"`
	Processing ProcessingConfig `mapstructure:"processing"`
	Questions  QuestionsConfig  `mapstructure:"questions"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limiting"`
	Security   SecurityConfig   `mapstructure:"security"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host" validate:"required"`
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path                  string        `mapstructure:"path"`
	MaxConnections        int           `mapstructure:"max_connections" validate:"gte=0"`
	MaxIdleConnections    int           `mapstructure:"max_idle_connections" validate:"gte=0"`
	ConnectionMaxLifetime time.Duration `mapstructure:"connection_max_lifetime"`
	EnableWAL             bool          `mapstructure:"enable_wal"`
	EnableForeignKeys     bool          `mapstructure:"enable_foreign_keys"`
	LogQueries            bool          `mapstructure:"log_queries"`
}

// StorageConfig contains the interview directory layout settings
type StorageConfig struct {
	BaseDir     string `mapstructure:"base_dir" validate:"required"`
	FragmentExt string `mapstructure:"fragment_ext" validate:"required,alphanum"`
}

// FFmpegConfig contains the media tool settings
type FFmpegConfig struct {
	FFmpegPath  string        `mapstructure:"ffmpeg_path" validate:"required"`
	FFprobePath string        `mapstructure:"ffprobe_path" validate:"required"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gte=0"`
	VideoCodec  string        `mapstructure:"video_codec" validate:"required"`
	AudioCodec  string        `mapstructure:"audio_codec" validate:"required"`
	Preset      string        `mapstructure:"preset"`
	CRF         int           `mapstructure:"crf" validate:"gte=0,lte=51"`
}

// CaptureConfig contains live recording settings
type CaptureConfig struct {
	Resolution  string        `mapstructure:"resolution" validate:"oneof=720p"`
	Codec       string        `mapstructure:"codec" validate:"required"`
	AudioCodec  string        `mapstructure:"audio_codec" validate:"required"`
	FrameRate   int           `mapstructure:"framerate" validate:"gte=1,lte=120"`
	VideoDevice string        `mapstructure:"video_device"`
	AudioDevice string        `mapstructure:"audio_device"`
	StopTimeout time.Duration `mapstructure:"stop_timeout" validate:"gte=0"`
}

// ProcessingConfig contains background job settings
type ProcessingConfig struct {
	Workers      int           `mapstructure:"workers"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	JobTimeout   time.Duration `mapstructure:"job_timeout"`
	JobRetention time.Duration `mapstructure:"job_retention"`
}

// QuestionsConfig points at an optional question catalog file
type QuestionsConfig struct {
	File string `mapstructure:"file"`
}

// RateLimitConfig contains rate limiting settings
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute" validate:"gte=0"`
	Burst             int  `mapstructure:"burst" validate:"gte=0"`
}

// SecurityConfig contains security settings
type SecurityConfig struct {
	EnableCORS  bool     `mapstructure:"enable_cors"`
	CORSOrigins []string `mapstructure:"cors_origins"`
	CORSMethods []string `mapstructure:"cors_methods"`
	CORSHeaders []string `mapstructure:"cors_headers"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}
