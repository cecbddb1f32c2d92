package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	DefaultTimeZone = "America/Los_Angeles"
)

type Config struct {
	Env      string
	TimeZone string
	DB       DB
	Server   Server
	Logger   Logger
}

type DB struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type Server struct {
	RunAddress      string        `env:"RUN_ADDRESS"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

type Logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// MustLoad читает конфигурацию сервера из окружения и .env файла.
func MustLoad() *Config {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("app_env", EnvLocal)
	v.SetDefault("run_address", ":8080")
	v.SetDefault("migrations_path", "migrations")
	v.SetDefault("log_level", "info")
	v.SetDefault("time_zone", DefaultTimeZone)
	v.SetDefault("shutdown_timeout", 10*time.Second)

	return &Config{
		Env:      v.GetString("app_env"),
		TimeZone: v.GetString("time_zone"),
		DB: DB{
			DatabaseURI: v.GetString("database_uri"),
			Migrations:  v.GetString("migrations_path"),
		},
		Server: Server{
			RunAddress:      v.GetString("run_address"),
			ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		},
		Logger: Logger{LogLevel: v.GetString("log_level")},
	}
}

// Location опорный часовой пояс для часов смен.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.TimeZone)
}
