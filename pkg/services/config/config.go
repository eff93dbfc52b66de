package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type ImportConfig struct {
	// Workers bounds the batch transform/classification worker pools.
	Workers int `mapstructure:"workers"`
}

type StorageConfig struct {
	DBPath string `mapstructure:"db_path"`
}

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Import  ImportConfig  `mapstructure:"import"`
	Storage StorageConfig `mapstructure:"storage"`
}

// LoadConfig reads an engine profile file. Missing keys fall back to
// defaults, a missing file is an error.
func LoadConfig(profilePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(profilePath)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse engine config: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when no profile file is given.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("default config is unparseable: %v", err))
	}
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("import.workers", 4)
	v.SetDefault("storage.db_path", "assetorbit.db")
}
