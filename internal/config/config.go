package config

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Review   ReviewConfig   `mapstructure:"review"`
	Reminder ReminderConfig `mapstructure:"reminder"`
}

type DatabaseConfig struct {
	Driver          string            `mapstructure:"driver" validate:"oneof=sqlite3 mysql postgres"`
	Path            string            `mapstructure:"path" validate:"omitempty,parentdir"`
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port" validate:"min=0,max=65535"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns" validate:"min=0"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds" validate:"min=0"`
	AutoMigrate     bool              `mapstructure:"auto_migrate"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"min=1,max=65535"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CacheConfig sizes the in-process term cache. MaxTerms 0 disables it.
type CacheConfig struct {
	MaxTerms int64 `mapstructure:"max_terms" validate:"min=0"`
}

// ReviewConfig is the default selection of a review session.
type ReviewConfig struct {
	Levels        []int    `mapstructure:"levels" validate:"dive,min=1,max=6"`
	Tags          []string `mapstructure:"tags"`
	UseSuspension bool     `mapstructure:"use_suspension"`
}

type ReminderConfig struct {
	IntervalMinutes int `mapstructure:"interval_minutes" validate:"min=1"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/memorizer")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.path", "memorizer.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 0)
	v.SetDefault("database.database", "memorizer")
	v.SetDefault("database.username", "memorizer")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("cache.max_terms", 1000)
	v.SetDefault("review.levels", []int{})
	v.SetDefault("review.tags", []string{})
	v.SetDefault("review.use_suspension", true)
	v.SetDefault("reminder.interval_minutes", 60)

	// Bind database credentials to environment variables only (not from config file)
	if err := v.BindEnv("database.password", "MEMORIZER_DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind MEMORIZER_DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("database.path", "MEMORIZER_DB_PATH"); err != nil {
		return nil, fmt.Errorf("failed to bind MEMORIZER_DB_PATH environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

// Load reads the configuration from configFile, or from the default locations when it is empty.
func Load(configFile string) (*Config, error) {
	loader, err := NewConfigLoader(configFile)
	if err != nil {
		return nil, err
	}
	return loader.Load()
}
