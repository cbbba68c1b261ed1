package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	// Upstreams
	BackendURL     string `mapstructure:"backend_url"`
	NegotiationURL string `mapstructure:"negotiation_url"`
	GatewayURL     string `mapstructure:"gateway_url"`

	// Negotiation history
	DatabasePath string `mapstructure:"database_path"`

	// Upload limits and archive
	MaxUploadSize  int64 `mapstructure:"max_upload_size"`
	ArchiveUploads bool  `mapstructure:"archive_uploads"`

	// S3
	S3Endpoint        string `mapstructure:"s3_endpoint"`
	S3AccessKeyID     string `mapstructure:"s3_access_key_id"`
	S3SecretAccessKey string `mapstructure:"s3_secret_access_key"`
	S3BucketName      string `mapstructure:"s3_bucket_name"`
	S3UseSSL          bool   `mapstructure:"s3_use_ssl"`

	// Client-side upload and polling policy
	UploadTimeout  time.Duration `mapstructure:"upload_timeout"`
	UploadAttempts int           `mapstructure:"upload_attempts"`
	PollInterval   time.Duration `mapstructure:"poll_interval"`
	PollMaxTicks   int           `mapstructure:"poll_max_ticks"`

	// EmailJS
	EmailJSServiceID  string `mapstructure:"emailjs_service_id"`
	EmailJSTemplateID string `mapstructure:"emailjs_template_id"`
	EmailJSPublicKey  string `mapstructure:"emailjs_public_key"`
}

var defaults = map[string]any{
	"port":                 "8080",
	"log_level":            "info",
	"backend_url":          "http://localhost:5000",
	"negotiation_url":      "https://convo-legal-mistral.onrender.com",
	"gateway_url":          "http://localhost:8080",
	"database_path":        "data/vakeel.db",
	"max_upload_size":      32 << 20,
	"archive_uploads":      false,
	"s3_endpoint":          "localhost:9000",
	"s3_access_key_id":     "minioadmin",
	"s3_secret_access_key": "minioadmin",
	"s3_bucket_name":       "contract-uploads",
	"s3_use_ssl":           false,
	"upload_timeout":       5 * time.Minute,
	"upload_attempts":      3,
	"poll_interval":        5 * time.Second,
	"poll_max_ticks":       12,
	"emailjs_service_id":   "",
	"emailjs_template_id":  "",
	"emailjs_public_key":   "",
}

// Load reads configuration from the environment. If path is non-empty the
// file is read first and environment variables still win.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")
	cfg.NegotiationURL = strings.TrimRight(cfg.NegotiationURL, "/")
	cfg.GatewayURL = strings.TrimRight(cfg.GatewayURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	for name, raw := range map[string]string{
		"BACKEND_URL":     c.BackendURL,
		"NEGOTIATION_URL": c.NegotiationURL,
		"GATEWAY_URL":     c.GatewayURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s must be an absolute URL, got %q", name, raw))
		}
	}

	if c.MaxUploadSize <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_SIZE must be positive"))
	}
	if c.UploadAttempts <= 0 {
		errs = append(errs, errors.New("UPLOAD_ATTEMPTS must be positive"))
	}
	if c.UploadTimeout <= 0 {
		errs = append(errs, errors.New("UPLOAD_TIMEOUT must be positive"))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, errors.New("POLL_INTERVAL must be positive"))
	}
	if c.PollMaxTicks <= 0 {
		errs = append(errs, errors.New("POLL_MAX_TICKS must be positive"))
	}
	if c.ArchiveUploads && c.S3BucketName == "" {
		errs = append(errs, errors.New("S3_BUCKET_NAME is required when ARCHIVE_UPLOADS is enabled"))
	}

	return errors.Join(errs...)
}

// EmailJSConfigured reports whether all contact form identifiers are set.
func (c *Config) EmailJSConfigured() bool {
	return c.EmailJSServiceID != "" && c.EmailJSTemplateID != "" && c.EmailJSPublicKey != ""
}
