package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// DefaultConfigPath is read when no other file was selected
const DefaultConfigPath = "./config/settings.yaml"

var (
	once       sync.Once
	initErr    error
	configPath = DefaultConfigPath
	validate   = validator.New()
)

// SetConfigPath selects the settings file. It must be called before Init.
func SetConfigPath(path string) {
	if path != "" {
		configPath = path
	}
}

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		initErr = load(configPath)
	})

	return initErr
}

// load reads defaults, the optional settings file and environment overrides
func load(path string) error {
	setDefaults()

	// Set up environment variable reading for overrides
	viper.SetEnvPrefix("INTERVIEWCUT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	path = filepath.Clean(path)
	viper.SetConfigFile(path)

	// Try to read the config file
	if err := viper.ReadInConfig(); err != nil {
		// If the config file doesn't exist, just use defaults and env vars
		var notFound viper.ConfigFileNotFoundError
		if !os.IsNotExist(err) && !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	cfg, err := GetConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Auto-correct invalid worker count
	if viper.GetInt("processing.workers") <= 0 {
		viper.Set("processing.workers", 1)
	}

	return nil
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// ConfigFileUsed returns the settings file path, empty if none was read
func ConfigFileUsed() string {
	if _, err := os.Stat(viper.ConfigFileUsed()); err != nil {
		return ""
	}
	return viper.ConfigFileUsed()
}

// Get returns a config value by key using Viper directly
func Get(key string) any {
	return viper.Get(key)
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// Validate checks a Config struct against its validation tags
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}

	if c.Processing.Workers <= 0 {
		c.Processing.Workers = 1
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "127.0.0.1")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)
	viper.SetDefault("server.max_body_bytes", 1048576)

	// Database defaults
	viper.SetDefault("database.path", "./data/interviewcut.db")
	viper.SetDefault("database.max_connections", 10)
	viper.SetDefault("database.max_idle_connections", 5)
	viper.SetDefault("database.connection_max_lifetime", 30*time.Minute)
	viper.SetDefault("database.enable_wal", true)
	viper.SetDefault("database.enable_foreign_keys", true)
	viper.SetDefault("database.log_queries", false)

	// Storage defaults
	viper.SetDefault("storage.base_dir", "./data")
	viper.SetDefault("storage.fragment_ext", "mp4")

	// FFmpeg defaults
	viper.SetDefault("ffmpeg.ffmpeg_path", "ffmpeg")
	viper.SetDefault("ffmpeg.ffprobe_path", "ffprobe")
	viper.SetDefault("ffmpeg.timeout", 10*time.Minute)
	viper.SetDefault("ffmpeg.video_codec", "libx264")
	viper.SetDefault("ffmpeg.audio_codec", "aac")
	viper.SetDefault("ffmpeg.preset", "veryfast")
	viper.SetDefault("ffmpeg.crf", 23)

	// Capture defaults
	viper.SetDefault("capture.resolution", "720p")
	viper.SetDefault("capture.codec", "H.264")
	viper.SetDefault("capture.audio_codec", "AAC")
	viper.SetDefault("capture.framerate", 30)
	viper.SetDefault("capture.video_device", "")
	viper.SetDefault("capture.audio_device", "")
	viper.SetDefault("capture.stop_timeout", 5*time.Second)

	// Processing defaults
	viper.SetDefault("processing.workers", 1)
	viper.SetDefault("processing.poll_interval", 2*time.Second)
	viper.SetDefault("processing.job_timeout", 60*time.Minute)
	viper.SetDefault("processing.job_retention", 7*24*time.Hour)

	// Question catalog
	viper.SetDefault("questions.file", "")

	// Rate limiting defaults
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.requests_per_minute", 120)
	viper.SetDefault("rate_limiting.burst", 20)

	// Security defaults
	viper.SetDefault("security.enable_cors", true)
	viper.SetDefault("security.cors_origins", []string{"*"})
	viper.SetDefault("security.cors_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	viper.SetDefault("security.cors_headers", []string{"Content-Type", "Authorization"})

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
}
