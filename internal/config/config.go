package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Store   StoreConfig
	Redis   RedisConfig
}

// ServerConfig describes the local gateway the POS front-end talks to.
type ServerConfig struct {
	Port     string `mapstructure:"port"`
	Mode     string `mapstructure:"mode"` // "debug" or "release"
	UIOrigin string `mapstructure:"ui_origin"`
}

// BackendConfig points at the remote POS REST API.
type BackendConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// StoreConfig selects the persistent store backend.
type StoreConfig struct {
	Driver     string `mapstructure:"driver"` // "file" or "redis"
	Dir        string `mapstructure:"dir"`
	TerminalID string `mapstructure:"terminal_id"`
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.port", "7373")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.ui_origin", "http://localhost:5173")
	v.SetDefault("backend.base_url", "http://localhost:8000")
	v.SetDefault("backend.timeout", 15*time.Second)
	v.SetDefault("store.driver", "file")
	v.SetDefault("store.dir", "./data")
	v.SetDefault("store.terminal_id", "default")
	v.SetDefault("redis.db", 0)

	// Environment variable settings
	v.SetEnvPrefix("POS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file settings (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// Config file not found is fine, we rely on env vars or defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
