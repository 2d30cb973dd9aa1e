package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the album downloader
type Config struct {
	// Upstream API settings
	API APIConfig `yaml:"api" json:"api"`

	// Download settings
	Download DownloadConfig `yaml:"download" json:"download"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Cache settings
	Cache CacheConfig `yaml:"cache" json:"cache"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// APIConfig holds upstream API configuration
type APIConfig struct {
	BaseURL     string        `yaml:"base_url" json:"base_url"`
	UserAgent   string        `yaml:"user_agent" json:"user_agent"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`
	MaxAttempts int           `yaml:"max_attempts" json:"max_attempts"`
}

// DownloadConfig holds download-specific configuration
type DownloadConfig struct {
	PhotosPerAlbum int           `yaml:"photos_per_album" json:"photos_per_album"`
	RequestDelay   time.Duration `yaml:"request_delay" json:"request_delay"`
}

// OutputConfig holds output directory configuration
type OutputConfig struct {
	BaseDirectory string `yaml:"base_directory" json:"base_directory"`
}

// CacheConfig holds persistent cache configuration
type CacheConfig struct {
	Directory string        `yaml:"directory" json:"directory"`
	Namespace string        `yaml:"namespace" json:"namespace"`
	TTL       time.Duration `yaml:"ttl" json:"ttl"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level     string `yaml:"level" json:"level"`
	File      string `yaml:"file" json:"file"`
	ErrorFile string `yaml:"error_file" json:"error_file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:     "https://jsonplaceholder.typicode.com",
			UserAgent:   "albumdl/1.0",
			Timeout:     30 * time.Second,
			MaxAttempts: 10,
		},
		Download: DownloadConfig{
			PhotosPerAlbum: 5,
			RequestDelay:   3 * time.Second,
		},
		Output: OutputConfig{
			BaseDirectory: "photos",
		},
		Cache: CacheConfig{
			Directory: ".albumdl-cache",
			Namespace: "fetch",
			TTL:       7 * 24 * time.Hour,
		},
		Logging: LoggingConfig{
			Level:     "info",
			File:      "",
			ErrorFile: "",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if baseURL := os.Getenv("ALBUMDL_BASE_URL"); baseURL != "" {
		c.API.BaseURL = baseURL
	}
	if userAgent := os.Getenv("ALBUMDL_USER_AGENT"); userAgent != "" {
		c.API.UserAgent = userAgent
	}
	if attempts := os.Getenv("ALBUMDL_MAX_ATTEMPTS"); attempts != "" {
		if val, err := strconv.Atoi(attempts); err == nil && val > 0 {
			c.API.MaxAttempts = val
		}
	}
	if cap := os.Getenv("ALBUMDL_PHOTOS_PER_ALBUM"); cap != "" {
		if val, err := strconv.Atoi(cap); err == nil && val > 0 {
			c.Download.PhotosPerAlbum = val
		}
	}
	if delay := os.Getenv("ALBUMDL_REQUEST_DELAY"); delay != "" {
		if val, err := time.ParseDuration(delay); err == nil && val >= 0 {
			c.Download.RequestDelay = val
		}
	}
	if outputDir := os.Getenv("ALBUMDL_OUTPUT_DIR"); outputDir != "" {
		c.Output.BaseDirectory = outputDir
	}
	if cacheDir := os.Getenv("ALBUMDL_CACHE_DIR"); cacheDir != "" {
		c.Cache.Directory = cacheDir
	}
	if ttl := os.Getenv("ALBUMDL_CACHE_TTL"); ttl != "" {
		if val, err := time.ParseDuration(ttl); err == nil && val > 0 {
			c.Cache.TTL = val
		}
	}
	if logLevel := os.Getenv("ALBUMDL_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFile := os.Getenv("ALBUMDL_LOG_FILE"); logFile != "" {
		c.Logging.File = logFile
	}
	if errFile := os.Getenv("ALBUMDL_ERROR_LOG_FILE"); errFile != "" {
		c.Logging.ErrorFile = errFile
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	// Check in order of precedence
	locations := []string{
		".albumdl.yaml",
		".albumdl.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "albumdl", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "albumdl", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".albumdl.yaml"),
		filepath.Join(os.Getenv("HOME"), ".albumdl.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	// Validate API settings
	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("API base URL is required"))
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		errs = append(errs, errors.New("API base URL must be an http(s) URL"))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, errors.New("API timeout must be positive"))
	}
	if c.API.MaxAttempts <= 0 {
		errs = append(errs, errors.New("max attempts must be positive"))
	}

	// Validate download settings
	if c.Download.PhotosPerAlbum <= 0 {
		errs = append(errs, errors.New("photos per album must be positive"))
	}
	if c.Download.RequestDelay < 0 {
		errs = append(errs, errors.New("request delay cannot be negative"))
	}

	// Validate output settings
	if c.Output.BaseDirectory == "" {
		errs = append(errs, errors.New("output directory is required"))
	}

	// Validate cache settings
	if c.Cache.Directory == "" {
		errs = append(errs, errors.New("cache directory is required"))
	}
	if c.Cache.Namespace == "" {
		errs = append(errs, errors.New("cache namespace is required"))
	}
	if c.Cache.TTL <= 0 {
		errs = append(errs, errors.New("cache TTL must be positive"))
	}

	// Validate logging
	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if baseURL, ok := flags["base-url"].(string); ok && baseURL != "" {
		c.API.BaseURL = baseURL
	}
	if outputDir, ok := flags["output"].(string); ok && outputDir != "" {
		c.Output.BaseDirectory = outputDir
	}
	if cacheDir, ok := flags["cache-dir"].(string); ok && cacheDir != "" {
		c.Cache.Directory = cacheDir
	}
	if cap, ok := flags["photos-per-album"].(int); ok && cap > 0 {
		c.Download.PhotosPerAlbum = cap
	}
	if delay, ok := flags["request-delay"].(time.Duration); ok && delay >= 0 {
		c.Download.RequestDelay = delay
	}
	if attempts, ok := flags["max-attempts"].(int); ok && attempts > 0 {
		c.API.MaxAttempts = attempts
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".albumdl.env"))

	// Start with defaults
	config := DefaultConfig()

	// Load from config file
	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// Override with environment variables (includes values from .env)
	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Override with command line flags
	config.MergeCommandLineFlags(flags)

	// Validate final configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
