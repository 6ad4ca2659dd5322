// Package config загружает настройки клиента и сервера через viper:
// значения по умолчанию, необязательный файл конфигурации и переменные
// окружения с префиксом CREDADMIN_ (например CREDADMIN_SERVER_URL).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables.
const EnvPrefix = "CREDADMIN"

// Log описывает настройки логирования
type Log struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// Client настройки CLI клиента
type Client struct {
	ServerURL string `mapstructure:"server_url"`
	DBPath    string `mapstructure:"db"`
	Log       Log    `mapstructure:"log"`
	PageSize  int    `mapstructure:"page_size"`
}

// Server настройки REST сервера
type Server struct {
	Addr          string        `mapstructure:"addr"`
	DBPath        string        `mapstructure:"db"`
	JWTSecret     string        `mapstructure:"jwt_secret"`
	AdminLogin    string        `mapstructure:"admin_login"`
	AdminPassword string        `mapstructure:"admin_password"`
	Log           Log           `mapstructure:"log"`
	CORSOrigins   []string      `mapstructure:"cors_origins"`
	TokenTTL      time.Duration `mapstructure:"token_ttl"`
	RememberMeTTL time.Duration `mapstructure:"remember_me_ttl"`
	LoginRate     float64       `mapstructure:"login_rate"`
	LoginBurst    int           `mapstructure:"login_burst"`
}

// NewViper returns a viper instance reading CREDADMIN_* variables.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func setLogDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("log.compress", true)
}

// readFile читает файл конфигурации, если он указан
func readFile(v *viper.Viper, configFile string) error {
	if configFile == "" {
		return nil
	}
	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}
	return nil
}

// LoadClient loads client settings. Flags bound to v take precedence over env and file.
func LoadClient(v *viper.Viper, configFile string) (*Client, error) {
	v.SetDefault("server_url", "http://localhost:8080")
	v.SetDefault("db", "credadmin-client.db")
	v.SetDefault("page_size", 20)
	setLogDefaults(v)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")

	if err := readFile(v, configFile); err != nil {
		return nil, err
	}

	var cfg Client
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode client config: %w", err)
	}
	if cfg.ServerURL == "" {
		return nil, errors.New("server_url must not be empty")
	}
	if cfg.PageSize < 0 {
		return nil, fmt.Errorf("page_size must not be negative, got %d", cfg.PageSize)
	}
	return &cfg, nil
}

// LoadServer loads server settings.
func LoadServer(v *viper.Viper, configFile string) (*Server, error) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("db", "credadmin.db")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("admin_login", "admin")
	v.SetDefault("admin_password", "")
	v.SetDefault("cors_origins", []string{})
	v.SetDefault("token_ttl", 24*time.Hour)
	v.SetDefault("remember_me_ttl", 30*24*time.Hour)
	v.SetDefault("login_rate", 1.0)
	v.SetDefault("login_burst", 5)
	setLogDefaults(v)

	if err := readFile(v, configFile); err != nil {
		return nil, err
	}

	var cfg Server
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode server config: %w", err)
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, errors.New("jwt_secret must be at least 32 characters (set CREDADMIN_JWT_SECRET)")
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("token_ttl must be positive, got %s", cfg.TokenTTL)
	}
	if cfg.LoginRate <= 0 || cfg.LoginBurst <= 0 {
		return nil, errors.New("login_rate and login_burst must be positive")
	}
	return &cfg, nil
}
