package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "jobpulse/internal/errors"
)

// EnvPrefix namespaces every environment variable
const EnvPrefix = "JOBPULSE"

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
	Dataset   DatasetConfig   `yaml:"dataset" envconfig:"DATASET"`
	Analytics AnalyticsConfig `yaml:"analytics" envconfig:"ANALYTICS"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"HOST" default:"0.0.0.0"`
	Port            int           `yaml:"port" envconfig:"PORT" default:"5000"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES" default:"1048576"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT" default:"15s"`
	ExportTimeout   time.Duration `yaml:"export_timeout" envconfig:"EXPORT_TIMEOUT" default:"2m"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5000"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format      string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output      string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/jobpulse.log"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT" default:"false"`
}

// TelemetryConfig controls the OpenTelemetry providers
type TelemetryConfig struct {
	ServiceName   string `yaml:"service_name" envconfig:"SERVICE_NAME" default:"jobpulse"`
	TraceExporter string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" default:"none"`
	Metrics       bool   `yaml:"metrics" envconfig:"METRICS" default:"true"`
}

// DatasetConfig locates the employment data file
type DatasetConfig struct {
	Path          string   `yaml:"path" envconfig:"PATH" default:"attached_assets/employment_dataset.csv"`
	FallbackPaths []string `yaml:"fallback_paths" envconfig:"FALLBACK_PATHS"`
	Preload       bool     `yaml:"preload" envconfig:"PRELOAD" default:"false"`
}

// AnalyticsConfig tunes the aggregation layer
type AnalyticsConfig struct {
	RankConvention  string  `yaml:"rank_convention" envconfig:"RANK_CONVENTION" default:"nearest"`
	KDEBandwidth    float64 `yaml:"kde_bandwidth" envconfig:"KDE_BANDWIDTH" default:"10000"`
	KDEThresholds   int     `yaml:"kde_thresholds" envconfig:"KDE_THRESHOLDS" default:"100"`
	TopTitles       int     `yaml:"top_titles" envconfig:"TOP_TITLES" default:"10"`
	DefaultPageSize int     `yaml:"default_page_size" envconfig:"DEFAULT_PAGE_SIZE" default:"20"`
	MaxPageSize     int     `yaml:"max_page_size" envconfig:"MAX_PAGE_SIZE" default:"1000"`
}

// Load loads configuration from environment variables and the first config
// file found in the usual locations
func Load() (*Config, error) {
	return LoadFile(getConfigFilePath())
}

// LoadFile loads configuration from environment variables and configFile.
// An empty configFile means environment and defaults only.
func LoadFile(configFile string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, apperrors.NewConfigError("failed to load config file", err).WithContext("path", configFile)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, apperrors.NewConfigError("config validation failed", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs overlays file values on the env config. A variable present in
// the environment always wins; otherwise a non-zero file value replaces the
// envconfig default.
func mergeConfigs(fileConfig, envConfig Config) Config {
	mergeStruct(reflect.ValueOf(&envConfig).Elem(), reflect.ValueOf(fileConfig), EnvPrefix)
	return envConfig
}

func mergeStruct(dst, src reflect.Value, prefix string) {
	t := dst.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		key := prefix + "_" + field.Tag.Get("envconfig")
		d, s := dst.Field(i), src.Field(i)

		if field.Type.Kind() == reflect.Struct {
			mergeStruct(d, s, key)
			continue
		}
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if !s.IsZero() {
			d.Set(s)
		}
	}
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Security.EnableCORS && len(c.Security.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin must be specified")
	}

	switch strings.ToLower(c.Logging.Output) {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid logging output %q", c.Logging.Output)
	}

	if c.Logging.Format != "json" {
		c.Logging.Format = "json"
	}

	if c.Dataset.Path == "" {
		return fmt.Errorf("dataset path is required")
	}

	switch strings.ToLower(c.Analytics.RankConvention) {
	case "nearest", "floor":
	default:
		return fmt.Errorf("invalid rank convention %q", c.Analytics.RankConvention)
	}

	if c.Analytics.KDEBandwidth <= 0 {
		return fmt.Errorf("kde bandwidth must be positive")
	}

	if c.Analytics.DefaultPageSize < 1 || c.Analytics.DefaultPageSize > c.Analytics.MaxPageSize {
		return fmt.Errorf("default page size %d outside [1, %d]", c.Analytics.DefaultPageSize, c.Analytics.MaxPageSize)
	}

	switch c.Telemetry.TraceExporter {
	case "none", "stdout":
	default:
		return fmt.Errorf("invalid trace exporter %q", c.Telemetry.TraceExporter)
	}

	return nil
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20,
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  DefaultRequestTimeout,
			ExportTimeout:   DefaultExportTimeout,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:5000"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     DefaultRateLimit,
				Burst:   DefaultBurstSize,
			},
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "console",
			FilePath: "logs/jobpulse.log",
		},
		Telemetry: TelemetryConfig{
			ServiceName:   AppName,
			TraceExporter: "none",
			Metrics:       true,
		},
		Dataset: DatasetConfig{
			Path: DefaultDatasetPath,
		},
		Analytics: AnalyticsConfig{
			RankConvention:  "nearest",
			KDEBandwidth:    DefaultKDEBandwidth,
			KDEThresholds:   DefaultKDEThresholds,
			TopTitles:       DefaultTopTitles,
			DefaultPageSize: DefaultPageSize,
			MaxPageSize:     MaxPageSize,
		},
	}
}
