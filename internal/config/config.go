package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultEnvFile   = ".env"
	minSecretKeySize = 32
)

var insecureSecretPlaceholders = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

var (
	ErrSecretKeyRequired = errors.New("SECRET_KEY is required")
	ErrSecretKeyInsecure = errors.New("SECRET_KEY must be at least 32 characters and not a placeholder")
	ErrAccessKeyRequired = errors.New("WEB3FORMS_ACCESS_KEY is required")
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Web3Forms Web3FormsConfig `mapstructure:"web3forms"`
	Log       LogConfig       `mapstructure:"log"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
}

type ServerConfig struct {
	Port            int     `mapstructure:"port" validate:"min=1,max=65535"`
	CookieSecure    bool    `mapstructure:"cookie_secure"`
	SecretKey       string  `mapstructure:"secret_key"`
	DefaultLanguage string  `mapstructure:"default_language" validate:"oneof=en hi mr"`
	SubmitRate      float64 `mapstructure:"submit_rate" validate:"gt=0"`
	SubmitBurst     int     `mapstructure:"submit_burst" validate:"min=1"`
}

type Web3FormsConfig struct {
	Endpoint      string        `mapstructure:"endpoint" validate:"required,url"`
	AccessKey     string        `mapstructure:"access_key"`
	FromName      string        `mapstructure:"from_name" validate:"required"`
	SubjectPrefix string        `mapstructure:"subject_prefix" validate:"required"`
	Timeout       time.Duration `mapstructure:"timeout" validate:"min=0"`
}

type LogConfig struct {
	Level       string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Development bool   `mapstructure:"development"`
}

// TracingConfig enables OTLP/gRPC span export when an endpoint is set.
type TracingConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	ServiceName  string `mapstructure:"service_name" validate:"required"`
}

type LoadOptions struct {
	// ConfigFile is an optional YAML, JSON or TOML file. Environment variables override it.
	ConfigFile string
	// EnvFile is loaded into the process environment first; a missing file is ignored.
	EnvFile string
}

var envBindings = map[string]string{
	"server.port":              "PORT",
	"server.cookie_secure":     "COOKIE_SECURE",
	"server.secret_key":        "SECRET_KEY",
	"server.default_language":  "DEFAULT_LANGUAGE",
	"server.submit_rate":       "SUBMIT_RATE",
	"server.submit_burst":      "SUBMIT_BURST",
	"web3forms.endpoint":       "WEB3FORMS_ENDPOINT",
	"web3forms.access_key":     "WEB3FORMS_ACCESS_KEY",
	"web3forms.from_name":      "WEB3FORMS_FROM_NAME",
	"web3forms.subject_prefix": "WEB3FORMS_SUBJECT_PREFIX",
	"web3forms.timeout":        "WEB3FORMS_TIMEOUT",
	"log.level":                "LOG_LEVEL",
	"log.development":          "LOG_DEVELOPMENT",
	"tracing.otlp_endpoint":    "OTEL_EXPORTER_OTLP_ENDPOINT",
	"tracing.service_name":     "OTEL_SERVICE_NAME",
}

func setDefaults(config *viper.Viper) {
	config.SetDefault("server.port", 8080)
	config.SetDefault("server.cookie_secure", false)
	config.SetDefault("server.secret_key", "")
	config.SetDefault("server.default_language", "en")
	config.SetDefault("server.submit_rate", 0.2)
	config.SetDefault("server.submit_burst", 3)
	config.SetDefault("web3forms.endpoint", "https://api.web3forms.com/submit")
	config.SetDefault("web3forms.access_key", "")
	config.SetDefault("web3forms.from_name", "Fitness Form")
	config.SetDefault("web3forms.subject_prefix", "New Customer Registration")
	config.SetDefault("web3forms.timeout", "0s")
	config.SetDefault("log.level", "info")
	config.SetDefault("log.development", false)
	config.SetDefault("tracing.otlp_endpoint", "")
	config.SetDefault("tracing.service_name", "fitform")
}

// Load reads defaults, then the optional config file, then the environment.
func Load(options LoadOptions) (Config, error) {
	envFile := options.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
	}

	config := viper.New()
	setDefaults(config)
	for key, env := range envBindings {
		if err := config.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if options.ConfigFile != "" {
		config.SetConfigFile(options.ConfigFile)
		if err := config.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{}
	if err := config.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Server.DefaultLanguage = strings.ToLower(strings.TrimSpace(cfg.Server.DefaultLanguage))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Server.SecretKey = strings.TrimSpace(cfg.Server.SecretKey)
	cfg.Web3Forms.AccessKey = strings.TrimSpace(cfg.Web3Forms.AccessKey)

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ValidateForServe checks the settings only the HTTP server needs.
func (cfg Config) ValidateForServe() error {
	if err := ValidateSecretKey(cfg.Server.SecretKey); err != nil {
		return err
	}
	if cfg.Web3Forms.AccessKey == "" {
		return ErrAccessKeyRequired
	}
	return nil
}

func ValidateSecretKey(secret string) error {
	if secret == "" {
		return ErrSecretKeyRequired
	}
	if _, placeholder := insecureSecretPlaceholders[strings.ToLower(secret)]; placeholder {
		return ErrSecretKeyInsecure
	}
	if len(secret) < minSecretKeySize {
		return ErrSecretKeyInsecure
	}
	return nil
}

func (cfg Config) Address() string {
	return fmt.Sprintf(":%d", cfg.Server.Port)
}
