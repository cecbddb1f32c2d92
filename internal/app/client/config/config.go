package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerAddress  = "localhost:8080"
	defaultLogLevel       = "info"
	defaultEnv            = "local"
	defaultConfigDir      = ".shiftbill"
	defaultDraftFile      = "drafts.db"
	defaultTimeZone       = "America/Los_Angeles"
	defaultClockFormat    = "12h"
	defaultRequestTimeout = 30
)

type Config struct {
	Env            string        `mapstructure:"app_env"`
	ServerAddress  string        `mapstructure:"server_address"`
	EnableTLS      bool          `mapstructure:"enable_tls"`
	LogLevel       string        `mapstructure:"log_level"`
	ConfigDir      string        `mapstructure:"config_dir"`
	DraftPath      string        `mapstructure:"draft_path"`
	TimeZone       string        `mapstructure:"time_zone"`
	ClockFormat    string        `mapstructure:"clock_format"`
	RequestTimeout time.Duration `mapstructure:"-"`
}

// MustLoad загружает конфигурацию клиента из окружения, .env и,
// если указан, YAML-файла configFile.
func MustLoad(configFile string) *Config {
	cfg, err := Load(configFile)
	if err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}
	return cfg
}

func Load(configFile string) (*Config, error) {
	// Определяем путь к .env файлу (относительно места запуска)
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("Ошибка загрузки .env файла: %v\n", err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", defaultEnv)
	v.SetDefault("SERVER_ADDRESS", defaultServerAddress)
	v.SetDefault("ENABLE_TLS", false)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("CONFIG_DIR", defaultConfigDir)
	v.SetDefault("TIME_ZONE", defaultTimeZone)
	v.SetDefault("CLOCK_FORMAT", defaultClockFormat)
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", defaultRequestTimeout)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := v.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		configDir = filepath.Join(homeDir, configDir)
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("ошибка создания директории конфигурации: %w", err)
	}

	draftPath := v.GetString("DRAFT_PATH")
	if draftPath == "" {
		draftPath = filepath.Join(configDir, defaultDraftFile)
	}

	cfg := &Config{
		Env:            v.GetString("APP_ENV"),
		ServerAddress:  v.GetString("SERVER_ADDRESS"),
		EnableTLS:      v.GetBool("ENABLE_TLS"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		ConfigDir:      configDir,
		DraftPath:      draftPath,
		TimeZone:       v.GetString("TIME_ZONE"),
		ClockFormat:    v.GetString("CLOCK_FORMAT"),
		RequestTimeout: time.Duration(v.GetInt("REQUEST_TIMEOUT_SECONDS")) * time.Second,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("server_address не может быть пустым")
	}
	if c.ClockFormat != "12h" && c.ClockFormat != "24h" {
		return fmt.Errorf("clock_format должен быть 12h или 24h, получено %q", c.ClockFormat)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout_seconds должен быть положительным")
	}
	return nil
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == "local" || c.Env == ""
}
